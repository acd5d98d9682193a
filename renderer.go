package draftly

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// UnresolvedSentinel replaces any placeholder left standing after known-value
// substitution, so rendered output never leaks template syntax to the reader.
const UnresolvedSentinel = "___"

// leftoverPlaceholderPattern matches any remaining {{...}} span whose inner
// text contains no braces. This sweep also consumes the {{#if x}} and {{/if}}
// fragments of the conditional marker, which the renderer deliberately does
// not evaluate: both fragments collapse to the sentinel and the text between
// them is left intact.
var leftoverPlaceholderPattern = regexp.MustCompile(`\{\{[^{}]+\}\}`)

// RenderBody substitutes contract data into a template's raw text body.
//
// The pass is a two-phase token rewrite:
//
//  1. For every field id in data with a truthy value, every exact occurrence
//     of the literal token {{<id>}} is replaced with the value's string form.
//     Tokens are disjoint literals, so map iteration order cannot affect the
//     result.
//  2. Any remaining placeholder is swept to UnresolvedSentinel.
//
// Values that are falsy (empty string, zero, nil, false) are intentionally
// not substituted and fall through to the sentinel sweep. A legitimate 0 is
// therefore indistinguishable from an absent value. Interpolated values are
// inserted verbatim with no HTML escaping.
//
// RenderBody is pure: same inputs, byte-identical output.
func RenderBody(body string, data map[string]any) string {
	out := body
	for id, value := range data {
		s, ok := displayString(value)
		if !ok {
			continue
		}
		out = strings.ReplaceAll(out, "{{"+id+"}}", s)
	}
	return leftoverPlaceholderPattern.ReplaceAllLiteralString(out, UnresolvedSentinel)
}

// displayString converts a data value to its rendered string form. The
// boolean result is false for falsy values, which must not be substituted.
func displayString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case bool:
		if !v {
			return "", false
		}
		return "true", true
	case float64:
		if v == 0 {
			return "", false
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return displayString(float64(v))
	case int:
		return displayString(float64(v))
	case int32:
		return displayString(float64(v))
	case int64:
		return displayString(float64(v))
	default:
		s := fmt.Sprintf("%v", v)
		return s, s != ""
	}
}

// documentShell wraps a rendered body for on-screen preview and PDF source.
// Both paths use the identical markup so the preview is a faithful proxy for
// the exported document.
const documentShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: Georgia, 'Times New Roman', serif; font-size: 12pt; line-height: 1.6; color: #1a1a1a; }
h1 { font-size: 16pt; text-align: center; text-transform: uppercase; letter-spacing: 1px; }
h2 { font-size: 13pt; margin-top: 1.4em; }
.signatures { margin-top: 3em; display: flex; justify-content: space-between; }
.signatures .line { border-top: 1px solid #1a1a1a; width: 40%%; padding-top: 4px; }
</style>
</head>
<body>
%s
</body>
</html>
`

// RenderDocument produces the finished HTML document for a contract: the
// template body with the contract's data substituted, wrapped in the shared
// document shell.
func RenderDocument(tpl *Template, c *Contract) string {
	title := c.Title
	if title == "" {
		title = tpl.Title
	}
	return fmt.Sprintf(documentShell, title, RenderBody(tpl.Body, c.Data))
}
