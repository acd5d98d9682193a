package draftly

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// placeholderFieldID keys the degenerate rule used when a template carries no
// usable field list. It is never a semantic field; its only purpose is to keep
// an empty submission from being rejected.
const placeholderFieldID = "_placeholder"

// FieldRule is the runtime validation rule derived from one FieldSchema.
type FieldRule struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
}

// Validator is an aggregate of per-field rules keyed by field id, built at
// request time from a template's stored field metadata. It is pure and safe
// for concurrent use.
type Validator struct {
	rules map[string]FieldRule
	order []string
}

// BuildValidator derives a validator from a template's field list.
//
// A nil or empty field list (including the degraded result of a malformed
// stored fields payload) yields a validator with a single optional
// placeholder rule, so the empty-schema case never rejects an empty
// submission.
func BuildValidator(fields []FieldSchema) *Validator {
	v := &Validator{rules: make(map[string]FieldRule)}

	if len(fields) == 0 {
		v.rules[placeholderFieldID] = FieldRule{
			ID:    placeholderFieldID,
			Label: "Placeholder",
			Type:  FieldTypeText,
		}
		v.order = []string{placeholderFieldID}
		return v
	}

	for _, f := range fields {
		v.rules[f.ID] = FieldRule{
			ID:       f.ID,
			Label:    f.Label,
			Type:     f.Type,
			Required: f.Required,
		}
		v.order = append(v.order, f.ID)
	}
	return v
}

// Rules returns the per-field rules in field-list order.
func (v *Validator) Rules() []FieldRule {
	rules := make([]FieldRule, 0, len(v.order))
	for _, id := range v.order {
		rules = append(rules, v.rules[id])
	}
	return rules
}

// Validate checks a candidate record against the rule set and returns a
// coerced copy of it.
//
// Every present key must satisfy its rule and every required key must be
// present and non-empty. Keys with no matching rule pass through untouched.
// Number fields are coerced to float64 in the returned map; all other values
// are carried as submitted.
func (v *Validator) Validate(data map[string]any) (map[string]any, error) {
	verrs := NewValidationErrors()
	coerced := make(map[string]any, len(data))

	for key, value := range data {
		coerced[key] = value
	}

	for _, id := range v.order {
		rule := v.rules[id]
		// absent and empty are treated alike
		value := data[id]

		if isEmptyValue(value) {
			if rule.Required {
				verrs.Add(NewFieldValidationError(ErrCodeRequiredFieldMissing, rule.ID,
					fmt.Sprintf("%s is required", rule.Label)))
			}
			continue
		}

		out, err := rule.check(value)
		if err != nil {
			verrs.Add(err)
			continue
		}
		coerced[id] = out
	}

	if verrs.HasErrors() {
		return nil, verrs
	}
	return coerced, nil
}

// check validates a single present, non-empty value against the rule.
func (r FieldRule) check(value any) (any, *DraftlyError) {
	switch r.Type {
	case FieldTypeNumber:
		n, ok := toNumber(value)
		if !ok {
			return nil, NewFieldValidationError(ErrCodeInvalidFieldValue, r.ID,
				fmt.Sprintf("%s must be a number", r.Label))
		}
		if n < 0 {
			return nil, NewFieldValidationError(ErrCodeInvalidFieldValue, r.ID,
				fmt.Sprintf("%s must be zero or greater", r.Label))
		}
		return n, nil
	case FieldTypeDate:
		s, ok := value.(string)
		if !ok || s == "" {
			return nil, NewFieldValidationError(ErrCodeInvalidFieldValue, r.ID,
				fmt.Sprintf("%s must be a non-empty string", r.Label))
		}
		return s, nil
	default:
		// text, select and time are plain strings; no length constraint
		// beyond required-ness, and select options are not cross-checked
		// at this layer.
		s, ok := value.(string)
		if !ok {
			return nil, NewFieldValidationError(ErrCodeInvalidFieldValue, r.ID,
				fmt.Sprintf("%s must be a string", r.Label))
		}
		return s, nil
	}
}

// isEmptyValue reports whether a value counts as absent for required-ness:
// nil, missing (the zero any) and the empty string.
func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// toNumber coerces JSON-decoded values to a float64 quantity.
func toNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
