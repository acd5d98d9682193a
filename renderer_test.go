package draftly

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBodySubstitutesEveryOccurrence(t *testing.T) {
	body := "Employer: {{employer.companyName}}. Signed for {{employer.companyName}}."
	out := RenderBody(body, map[string]any{"employer.companyName": "Acme"})

	assert.Equal(t, "Employer: Acme. Signed for Acme.", out)
	assert.NotContains(t, out, "{{")
}

func TestRenderBodyLeftoverPlaceholderCleanup(t *testing.T) {
	body := "A: {{a}}, B: {{b}}, C: {{c}}"
	out := RenderBody(body, map[string]any{"b": "resolved"})

	// one resolved placeholder, two unresolved swept to the sentinel
	assert.Equal(t, "A: ___, B: resolved, C: ___", out)
}

func TestRenderBodyFalsyValuesFallToSentinel(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"empty string", ""},
		{"zero float", float64(0)},
		{"zero int", 0},
		{"nil", nil},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderBody("Value: {{x}}", map[string]any{"x": tt.value})
			assert.Equal(t, "Value: ___", out)
		})
	}
}

func TestRenderBodyNumericValues(t *testing.T) {
	out := RenderBody("Salary: {{employment.salary}}", map[string]any{
		"employment.salary": float64(300000),
	})
	assert.Equal(t, "Salary: 300000", out)

	out = RenderBody("Rate: {{rate}}", map[string]any{"rate": 12.5})
	assert.Equal(t, "Rate: 12.5", out)
}

func TestRenderBodyExactTokenSpans(t *testing.T) {
	// {{a}} must not rewrite inside {{ab}}
	body := "{{a}} and {{ab}}"
	out := RenderBody(body, map[string]any{"a": "X"})
	assert.Equal(t, "X and ___", out)
}

func TestRenderBodyMetacharactersInFieldID(t *testing.T) {
	// field ids contain no regex metacharacters by construction, but the
	// substitution must not break if one did
	body := "{{weird.[0]+}} end"
	out := RenderBody(body, map[string]any{"weird.[0]+": "ok"})
	assert.Equal(t, "ok end", out)
}

func TestRenderBodyConditionalMarkerNotEvaluated(t *testing.T) {
	body := "{{#if employment.probationMonths}}Probation lasts {{employment.probationMonths}} months.{{/if}}"

	// marker fragments collapse to the sentinel, enclosed text is kept and
	// its inner placeholder still resolves
	out := RenderBody(body, map[string]any{"employment.probationMonths": float64(3)})
	assert.Equal(t, "___Probation lasts 3 months.___", out)

	// same without data: inner placeholder is swept too
	out = RenderBody(body, nil)
	assert.Equal(t, "___Probation lasts ___ months.___", out)
}

func TestRenderBodyIsPure(t *testing.T) {
	body := "{{a}} {{b}} {{c}}"
	data := map[string]any{"a": "1", "b": "2"}

	first := RenderBody(body, data)
	second := RenderBody(body, data)
	assert.Equal(t, first, second)
}

func TestRenderBodyNoHTMLEscaping(t *testing.T) {
	// values are inserted verbatim into the HTML context
	out := RenderBody("<p>{{x}}</p>", map[string]any{"x": "<b>bold</b>"})
	assert.Equal(t, "<p><b>bold</b></p>", out)
}

func TestRenderDocumentWrapsBody(t *testing.T) {
	tpl := &Template{Title: "Employment Contract", Body: "<p>{{employee.name}}</p>"}
	c := &Contract{Title: "My first contract", Data: map[string]any{"employee.name": "Jane Doe"}}

	out := RenderDocument(tpl, c)
	assert.Contains(t, out, "<title>My first contract</title>")
	assert.Contains(t, out, "<p>Jane Doe</p>")
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
}

func TestRenderDocumentFallsBackToTemplateTitle(t *testing.T) {
	tpl := &Template{Title: "Rental Agreement", Body: "<p>x</p>"}
	c := &Contract{Data: map[string]any{}}

	out := RenderDocument(tpl, c)
	require.Contains(t, out, "<title>Rental Agreement</title>")
}
