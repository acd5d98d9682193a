package draftly

import (
	"strings"
)

// SectionOther is the residual bucket for fields whose id matches no known
// section prefix.
const SectionOther = "other"

// sectionPrefixes are the known section scopes, in display order. A field
// belongs to a section when its id starts with the prefix followed by a dot.
var sectionPrefixes = []string{
	"employer",
	"employee",
	"employment",
	"client",
	"contractor",
	"service",
}

// Section is a named bucket of fields used for form layout and preview
// organization.
type Section struct {
	Name   string        `json:"name"`
	Fields []FieldSchema `json:"fields"`
}

// SectionFields partitions a field list into named sections by id prefix.
// Fields keep their original order inside each bucket; unmatched fields land
// in the "other" bucket, which is emitted last. Empty buckets are omitted.
//
// The partition has no identity of its own and is recomputed from the field
// list on every call rather than cached.
func SectionFields(fields []FieldSchema) []Section {
	buckets := make(map[string][]FieldSchema, len(sectionPrefixes)+1)

	for _, f := range fields {
		name := sectionFor(f.ID)
		buckets[name] = append(buckets[name], f)
	}

	sections := make([]Section, 0, len(buckets))
	for _, name := range sectionPrefixes {
		if fs := buckets[name]; len(fs) > 0 {
			sections = append(sections, Section{Name: name, Fields: fs})
		}
	}
	if fs := buckets[SectionOther]; len(fs) > 0 {
		sections = append(sections, Section{Name: SectionOther, Fields: fs})
	}
	return sections
}

// sectionFor resolves the section name for a field id.
func sectionFor(id string) string {
	for _, prefix := range sectionPrefixes {
		if strings.HasPrefix(id, prefix+".") {
			return prefix
		}
	}
	return SectionOther
}
