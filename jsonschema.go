package draftly

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// FormSchema derives a JSON Schema from a template's field list. Clients use
// it to generate the multi-step form; the schema mirrors the rules of
// BuildValidator (number fields are non-negative, select fields enumerate
// their option values, required fields are listed) so a client-side check
// agrees with the server.
func FormSchema(tpl *Template) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(tpl.Fields))
	required := make([]string, 0)

	for _, f := range tpl.Fields {
		properties[f.ID] = propertySchema(f)
		if f.Required {
			required = append(required, f.ID)
		}
	}

	return &jsonschema.Schema{
		Type:       "object",
		Title:      tpl.Title,
		Properties: properties,
		Required:   required,
	}
}

func propertySchema(f FieldSchema) *jsonschema.Schema {
	s := &jsonschema.Schema{
		Title:       f.Label,
		Description: f.Placeholder,
	}

	switch f.Type {
	case FieldTypeNumber:
		min := 0.0
		s.Type = "number"
		s.Minimum = &min
	case FieldTypeSelect:
		s.Type = "string"
		enum := make([]any, 0, len(f.Options))
		for _, opt := range f.Options {
			enum = append(enum, opt.Value)
		}
		s.Enum = enum
	case FieldTypeDate:
		s.Type = "string"
		s.Format = "date"
	case FieldTypeTime:
		s.Type = "string"
		s.Format = "time"
	default:
		s.Type = "string"
	}
	return s
}
