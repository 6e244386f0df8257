package rules

import (
	"strings"
	"unicode"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/lint"
)

const imageAltTODO = "// TODO: Add descriptive alt text in quotation marks for accessibility."

// ImageAltRule checks that block image macros carry quoted alt text.
type ImageAltRule struct {
	lint.BaseRule
}

// NewImageAltRule builds the AD006 image alt text check.
func NewImageAltRule() *ImageAltRule {
	return &ImageAltRule{BaseRule: lint.NewBaseRule(
		"AD006",
		"image-alt-text",
		"Block images should carry quoted alt text",
		[]string{"images"},
		true, // Fix fills in placeholder alt text.
	)}
}

// Apply checks every block image macro. Missing alt text earns a comment
// below the macro; unquoted alt text is rewritten in place.
func (r *ImageAltRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	var out []lint.Diagnostic
	for i := 1; i <= doc.LineCount(); i++ {
		raw := doc.LineText(i)
		prefix, alt, _, ok := adoc.ImageMacroParts(raw)
		if !ok {
			continue
		}

		if strings.TrimSpace(alt) == "" {
			if lineEquals(doc, i+1, imageAltTODO) {
				continue
			}
			d := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, i), "Image macro has no alt text").
				WithSeverity(config.SeverityWarning).WithSuggestion("Describe the image for screen readers").
				WithEdit(insertBefore(doc, i+1, imageAltTODO)).Build()
			out = append(out, d)
			continue
		}

		if strings.HasPrefix(alt, `"`) && strings.HasSuffix(alt, `"`) {
			continue
		}

		lead := strings.IndexFunc(raw, func(c rune) bool { return !unicode.IsSpace(c) })
		start := doc.Lines[i-1].StartOffset + lead + len(prefix)
		d := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, i), "Image alt text is not quoted").
			WithSeverity(config.SeverityWarning).WithSuggestion("Wrap the alt text in double quotes").
			WithEdit(fix.TextEdit{
				StartOffset: start,
				EndOffset:   start + len(alt),
				NewText:     `"` + strings.TrimSpace(alt) + `"`,
			}).Build()
		out = append(out, d)
	}
	return out, nil
}
