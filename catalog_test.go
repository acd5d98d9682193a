package draftly

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTemplatesCatalog(t *testing.T) {
	templates := BuiltinTemplates()
	require.Len(t, templates, 4)

	names := make([]string, 0, len(templates))
	for _, tpl := range templates {
		names = append(names, tpl.Name)
	}
	assert.ElementsMatch(t, []string{"employment", "service", "rental", "nda"}, names)
}

func TestBuiltinTemplatesFieldIDsUnique(t *testing.T) {
	for _, tpl := range BuiltinTemplates() {
		t.Run(tpl.Name, func(t *testing.T) {
			seen := make(map[string]bool)
			for _, f := range tpl.Fields {
				assert.False(t, seen[f.ID], "duplicate field id %q", f.ID)
				seen[f.ID] = true
			}
		})
	}
}

func TestBuiltinTemplatesSelectFieldsHaveOptions(t *testing.T) {
	for _, tpl := range BuiltinTemplates() {
		t.Run(tpl.Name, func(t *testing.T) {
			for _, f := range tpl.Fields {
				if f.Type != FieldTypeSelect {
					continue
				}
				require.NotEmpty(t, f.Options, "select field %q has no options", f.ID)
				values := make(map[string]bool)
				for _, opt := range f.Options {
					assert.False(t, values[opt.Value], "duplicate option value %q in field %q", opt.Value, f.ID)
					values[opt.Value] = true
				}
			}
		})
	}
}

func TestBuiltinTemplatesPlaceholdersResolveToFields(t *testing.T) {
	tokenPattern := regexp.MustCompile(`\{\{([^{}#/][^{}]*)\}\}`)

	for _, tpl := range BuiltinTemplates() {
		t.Run(tpl.Name, func(t *testing.T) {
			ids := make(map[string]bool, len(tpl.Fields))
			for _, f := range tpl.Fields {
				ids[f.ID] = true
			}
			for _, m := range tokenPattern.FindAllStringSubmatch(tpl.Body, -1) {
				assert.True(t, ids[m[1]], "placeholder %q has no field", m[1])
			}
		})
	}
}

func TestEmploymentTemplateCarriesConditionalMarker(t *testing.T) {
	for _, tpl := range BuiltinTemplates() {
		if tpl.Name != "employment" {
			continue
		}
		assert.True(t, strings.Contains(tpl.Body, "{{#if "))
		assert.True(t, strings.Contains(tpl.Body, "{{/if}}"))
		return
	}
	t.Fatal("employment template missing from catalog")
}

func TestBuiltinTemplatesValidatorAcceptsFilledForm(t *testing.T) {
	// every template's own required fields, filled, must validate
	for _, tpl := range BuiltinTemplates() {
		t.Run(tpl.Name, func(t *testing.T) {
			data := make(map[string]any)
			for _, f := range tpl.Fields {
				if !f.Required {
					continue
				}
				switch f.Type {
				case FieldTypeNumber:
					data[f.ID] = "1000"
				default:
					data[f.ID] = "filled"
				}
			}
			_, err := BuildValidator(tpl.Fields).Validate(data)
			assert.NoError(t, err)
		})
	}
}
