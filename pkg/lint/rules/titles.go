package rules

import (
	"strings"
	"unicode"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/lint"
)

const (
	singleTitleTODO = `// TODO: Review this file to ensure it has only one level zero "= " title .`
	shortIntroTODO  = "// TODO: Add a short introductory sentence here that explains the purpose of this module or assembly."
)

// SingleTitleRule checks that modules carry exactly one level zero title.
type SingleTitleRule struct {
	lint.BaseRule
}

// NewSingleTitleRule creates a new single title rule.
func NewSingleTitleRule() *SingleTitleRule {
	return &SingleTitleRule{
		BaseRule: lint.NewBaseRule(
			"AD003",
			"single-title",
			"Modules should have exactly one level zero title",
			[]string{"titles"},
			true, // Fix flags each extra title.
		),
	}
}

// Apply flags the second level zero title, one per pass.
func (r *SingleTitleRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	titles := 0
	for i := 1; i <= doc.LineCount(); i++ {
		if !adoc.IsDocumentTitle(doc.LineText(i)) {
			continue
		}
		titles++
		if titles < 2 {
			continue
		}
		if alreadyFlagged(doc, i, singleTitleTODO) {
			return nil, nil
		}
		d := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, i),
			"Multiple level zero titles").
			WithSuggestion("Keep a single = title per module").
			WithEdit(insertBefore(doc, i, singleTitleTODO)).
			WithSeverity(config.SeverityWarning).Build()
		return []lint.Diagnostic{d}, nil
	}
	return nil, nil
}

// TitleBlankLineRule checks that the module title is followed by a blank
// line.
type TitleBlankLineRule struct {
	lint.BaseRule
}

// NewTitleBlankLineRule creates a new title blank line rule.
func NewTitleBlankLineRule() *TitleBlankLineRule {
	return &TitleBlankLineRule{
		BaseRule: lint.NewBaseRule(
			"AD004",
			"title-blank-line",
			"The module title should be followed by a blank line",
			[]string{"titles"},
			true, // Fix inserts the blank line.
		),
	}
}

// Apply checks the line after the first title.
func (r *TitleBlankLineRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	for i := 1; i <= doc.LineCount(); i++ {
		if !adoc.IsDocumentTitle(doc.LineText(i)) {
			continue
		}
		if i == doc.LineCount() || adoc.IsBlank(doc.LineText(i+1)) {
			return nil, nil
		}
		off := doc.InsertOffset(i + 1)
		d := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, i),
			"Title is not followed by a blank line").
			WithSuggestion("Insert a blank line after the title").
			WithEdit(fix.TextEdit{StartOffset: off, EndOffset: off, NewText: "\n"}).
			WithSeverity(config.SeverityWarning).Build()
		return []lint.Diagnostic{d}, nil
	}
	return nil, nil
}

// ShortIntroRule checks that modules open with a short introductory
// paragraph directly after the title.
type ShortIntroRule struct {
	lint.BaseRule
}

// NewShortIntroRule creates a new short intro rule.
func NewShortIntroRule() *ShortIntroRule {
	return &ShortIntroRule{
		BaseRule: lint.NewBaseRule(
			"AD005",
			"short-intro",
			"Modules should open with a short introductory paragraph",
			[]string{"titles"},
			true, // Fix drops in an intro placeholder.
		),
	}
}

// Apply inspects the first content line after the title. Blank lines,
// comments, and attribute declarations are skipped; the line qualifies as
// an intro when it reads as prose rather than a structural element.
func (r *ShortIntroRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	minLen := rc.OptionInt("min_length", 10)

	h1 := 0
	for i := 1; i <= doc.LineCount(); i++ {
		if adoc.IsDocumentTitle(doc.LineText(i)) {
			h1 = i
			break
		}
	}
	if h1 == 0 {
		return nil, nil
	}

	for i := h1 + 1; i <= doc.LineCount(); i++ {
		line := doc.LineText(i)
		s := strings.TrimSpace(line)
		if s == shortIntroTODO {
			return nil, nil
		}
		if s == "" || adoc.IsComment(line) || strings.HasPrefix(s, ":") {
			continue
		}
		if introShape(s, minLen) {
			return nil, nil
		}
		break
	}

	// Keep the blank line after the title above the inserted comment.
	anchor := h1 + 1
	if h1 < doc.LineCount() && adoc.IsBlank(doc.LineText(h1+1)) {
		anchor = h1 + 2
	}
	d := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, h1),
		"Missing short introductory paragraph").
		WithSuggestion("Open the module with one or two sentences explaining its purpose").
		WithEdit(insertBefore(doc, anchor, shortIntroTODO+"\n\n")).
		WithSeverity(config.SeverityWarning).Build()
	return []lint.Diagnostic{d}, nil
}

// introShape reports whether a first content line reads as prose rather
// than a structural element.
func introShape(s string, minLen int) bool {
	structural := []string{".", "*", "-", "+", "=", "[", "include::", "image::", "----"}
	for _, p := range structural {
		if strings.HasPrefix(s, p) {
			return false
		}
	}
	if len(s) <= minLen {
		return false
	}
	hasLower := strings.IndexFunc(s, unicode.IsLower) >= 0
	return hasLower && (strings.HasSuffix(s, ".") || len(strings.Fields(s)) > 5)
}
