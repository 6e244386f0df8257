package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/langdetect"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// reSourceAttr matches a [source] attribute line and captures the declared
// language, if any. Percent options like [source%nowrap,bash] are left to
// the author.
var reSourceAttr = regexp.MustCompile(`^\[source(?:\s*,\s*([^\s,\]]+))?(?:,[^\]]*)?\]$`)

// SourceLanguageRule reports source blocks whose attribute declares no
// language, or one that no highlighter will recognize. It never rewrites
// the attribute; guessing the language wrong is worse than the finding.
type SourceLanguageRule struct {
	lint.BaseRule
}

// NewSourceLanguageRule creates a new source language rule.
func NewSourceLanguageRule() *SourceLanguageRule {
	return &SourceLanguageRule{
		BaseRule: lint.NewBaseRule(
			"AD401",
			"source-language",
			"Source blocks should declare a recognized language",
			[]string{"source"},
			false,
		),
	}
}

// DefaultSeverity marks language findings as informational.
func (r *SourceLanguageRule) DefaultSeverity() config.Severity {
	return config.SeverityInfo
}

// Apply inspects every [source] attribute that introduces a fenced block.
func (r *SourceLanguageRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	var mask adoc.CodeBlockMask
	for i := 1; i <= doc.LineCount(); i++ {
		line := doc.LineText(i)
		if mask.Observe(line) || mask.Active() {
			continue
		}
		m := reSourceAttr.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}

		fence := nextSubstantive(doc, i)
		if fence == 0 || !adoc.IsFence(doc.LineText(fence)) {
			continue
		}

		lang := m[1]
		if lang != "" && langdetect.Recognized(lang) {
			continue
		}

		msg := fmt.Sprintf("Unknown source language %q", lang)
		if lang == "" {
			msg = "Source block does not declare a language"
		}
		b := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, i), msg).
			WithSeverity(config.SeverityInfo)
		if det := langdetect.Detect(blockBody(doc, fence)); det != "" && det != "text" {
			b = b.WithSuggestion(fmt.Sprintf("Declare the language, for example [source,%s]", det))
		}
		diags = append(diags, b.Build())
	}
	return diags, nil
}

// nextSubstantive returns the first non-blank line after n, or 0.
func nextSubstantive(doc *adoc.Document, n int) int {
	for j := n + 1; j <= doc.LineCount(); j++ {
		if !adoc.IsBlank(doc.LineText(j)) {
			return j
		}
	}
	return 0
}

// blockBody returns the text between the fence opening on line fence and
// the closing delimiter, or to the end of the document when unterminated.
func blockBody(doc *adoc.Document, fence int) []byte {
	var b strings.Builder
	for j := fence + 1; j <= doc.LineCount(); j++ {
		line := doc.LineText(j)
		if adoc.IsFence(line) {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
