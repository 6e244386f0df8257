package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

const (
	noInstructionsTODO = "// TODO: Avoid instructions in concept and reference modules."
	nonProcedureTODO   = "// TODO: Consider changing the :_mod-docs-content-type: to PROCEDURE or moving this procedure to a new file."
	deepHeadingTODO    = "// TODO: This file should not contain a level 2 (===) section title (H3) or lower."
	blockTitleTODO     = "// TODO: Unexpected block title. Use only `.Next steps` or `.Additional resources` in concept/reference modules."
)

// imperativeVerbs are the leading words that mark a sentence as an
// instruction rather than a description.
var imperativeVerbs = map[string]struct{}{
	"configure": {},
	"add":       {},
	"set":       {},
	"click":     {},
	"open":      {},
	"run":       {},
	"create":    {},
	"delete":    {},
	"update":    {},
	"install":   {},
	"enable":    {},
	"disable":   {},
}

// NoInstructionsRule flags instructional sentences in concept and reference
// modules. List items that only carry links, or that point the reader at
// further reading, are not instructions.
type NoInstructionsRule struct {
	lint.BaseRule
}

// NewNoInstructionsRule creates a new no instructions rule.
func NewNoInstructionsRule() *NoInstructionsRule {
	return &NoInstructionsRule{
		BaseRule: lint.NewBaseRule(
			"AD201",
			"no-instructions",
			"Concept and reference modules should not contain instructional content",
			[]string{"concept", "reference"},
			true, // Fix flags the imperative line with a comment.
			adoc.TypeConcept,
			adoc.TypeReference,
		),
	}
}

// Apply reports the first instructional line that has not been flagged yet.
func (r *NoInstructionsRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	var mask adoc.CodeBlockMask
	inItem := false
	for i := 1; i <= doc.LineCount(); i++ {
		line := doc.LineText(i)
		if mask.Observe(line) || mask.Active() {
			continue
		}
		if adoc.IsComment(line) {
			continue
		}
		if adoc.IsBlank(line) {
			inItem = false
			continue
		}

		if adoc.IsListItem(line) {
			inItem = true
			if linkAllowance(line) || !itemInstructs(line) {
				continue
			}
			if alreadyFlagged(doc, i, noInstructionsTODO) {
				continue
			}
			return []lint.Diagnostic{r.flag(doc, i)}, nil
		}
		if inItem {
			// Continuation text belongs to the item above it.
			continue
		}
		if _, ok := imperativeVerbs[firstWord(line)]; !ok {
			continue
		}
		if alreadyFlagged(doc, i, noInstructionsTODO) {
			continue
		}
		return []lint.Diagnostic{r.flag(doc, i)}, nil
	}
	return nil, nil
}

func (r *NoInstructionsRule) flag(doc *adoc.Document, line int) lint.Diagnostic {
	return lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, line),
		"Instruction found in a non-procedure module").
		WithSeverity(config.SeverityWarning).
		WithSuggestion("Move step-by-step instructions into a procedure module").
		WithEdit(insertBefore(doc, line, noInstructionsTODO)).
		Build()
}

// linkAllowance reports whether a list item is pointing the reader at
// further material rather than instructing them.
func linkAllowance(line string) bool {
	if adoc.IsLinkOnlyItem(line) {
		return true
	}
	text := strings.ToLower(itemText(line))
	if strings.HasPrefix(text, "link:") || strings.Contains(text, "see link:") {
		return true
	}
	if strings.HasPrefix(text, "for more information") && strings.Contains(text, "see") {
		return true
	}
	return false
}

// itemInstructs reports whether a list item opens with an imperative verb.
// Label prefixes such as "Prerequisites:" are stripped before the check.
func itemInstructs(line string) bool {
	text := itemText(line)
	if idx := strings.Index(text, ":"); idx >= 0 {
		text = strings.TrimSpace(text[idx+1:])
	}
	_, ok := imperativeVerbs[firstWord(text)]
	return ok
}

// itemText returns a list item's content with the marker stripped.
func itemText(line string) string {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}

// firstWord returns the lowercased first field of s, or "".
func firstWord(s string) string {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// NoProcedureBlockRule flags a .Procedure block title inside a concept or
// reference module, a sign the content belongs in a procedure module.
type NoProcedureBlockRule struct {
	lint.BaseRule
}

// NewNoProcedureBlockRule creates a new no procedure block rule.
func NewNoProcedureBlockRule() *NoProcedureBlockRule {
	return &NoProcedureBlockRule{
		BaseRule: lint.NewBaseRule(
			"AD202",
			"no-procedure-block",
			"Concept and reference modules should not contain a .Procedure block",
			[]string{"concept", "reference"},
			true, // Fix marks the offending block.
			adoc.TypeConcept,
			adoc.TypeReference,
		),
	}
}

// Apply flags the last .Procedure or .Prerequisites title in the document,
// the one whose surrounding steps most likely belong in their own module.
func (r *NoProcedureBlockRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	var mask adoc.CodeBlockMask
	last := 0
	title := ""
	for i := 1; i <= doc.LineCount(); i++ {
		line := doc.LineText(i)
		if mask.Observe(line) || mask.Active() {
			continue
		}
		s := strings.TrimSpace(line)
		if s == ".Procedure" || s == ".Prerequisites" {
			last = i
			title = s
		}
	}
	if last == 0 || alreadyFlagged(doc, last, nonProcedureTODO) {
		return nil, nil
	}

	diag := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, last),
		fmt.Sprintf("%s block title in a non-procedure module", title)).
		WithSeverity(config.SeverityWarning).
		WithSuggestion("Move the procedure to its own module or retype this one").
		WithEdit(insertBefore(doc, last, nonProcedureTODO)).
		Build()
	return []lint.Diagnostic{diag}, nil
}

// NoStepListRule flags numbered step lists in concept and reference modules
// when the steps open with imperative verbs.
type NoStepListRule struct {
	lint.BaseRule
}

// NewNoStepListRule creates a new no step list rule.
func NewNoStepListRule() *NoStepListRule {
	return &NoStepListRule{
		BaseRule: lint.NewBaseRule(
			"AD203",
			"no-step-list",
			"Concept and reference modules should not contain numbered step lists",
			[]string{"concept", "reference"},
			true, // Fix marks the list with a comment.
			adoc.TypeConcept,
			adoc.TypeReference,
		),
	}
}

// Apply reports the first unflagged dot-numbered step led by an imperative.
func (r *NoStepListRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	var mask adoc.CodeBlockMask
	for i := 1; i <= doc.LineCount(); i++ {
		line := doc.LineText(i)
		if mask.Observe(line) || mask.Active() {
			continue
		}
		if adoc.IsComment(line) {
			continue
		}
		verb, ok := adoc.NumberedStepVerb(line)
		if !ok {
			continue
		}
		if _, known := imperativeVerbs[strings.ToLower(verb)]; !known {
			continue
		}
		if alreadyFlagged(doc, i, nonProcedureTODO) {
			continue
		}
		diag := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, i),
			"Numbered step list in a non-procedure module").
			WithSeverity(config.SeverityWarning).
			WithSuggestion("Move the steps to a procedure module").
			WithEdit(insertBefore(doc, i, nonProcedureTODO)).
			Build()
		return []lint.Diagnostic{diag}, nil
	}
	return nil, nil
}

// NoDeepHeadingRule flags section titles of level 2 or deeper, which signal
// a module that should be split.
type NoDeepHeadingRule struct {
	lint.BaseRule
}

// NewNoDeepHeadingRule creates a new no deep heading rule.
func NewNoDeepHeadingRule() *NoDeepHeadingRule {
	return &NoDeepHeadingRule{
		BaseRule: lint.NewBaseRule(
			"AD204",
			"no-deep-heading",
			"Concept and reference modules should stay above level 2 headings",
			[]string{"concept", "reference"},
			true, // Fix annotates the deep heading.
			adoc.TypeConcept,
			adoc.TypeReference,
		),
	}
}

// Apply reports the first deep heading in the module.
func (r *NoDeepHeadingRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	var mask adoc.CodeBlockMask
	for i := 1; i <= doc.LineCount(); i++ {
		line := doc.LineText(i)
		if mask.Observe(line) || mask.Active() {
			continue
		}
		if adoc.IsComment(line) || !adoc.IsDeepHeading(line) {
			continue
		}
		if alreadyFlagged(doc, i, deepHeadingTODO) {
			return nil, nil
		}
		diag := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, i),
			"Section heading of level 2 or deeper").
			WithSeverity(config.SeverityWarning).
			WithSuggestion("Split deep sections into separate modules").
			WithEdit(insertBefore(doc, i, deepHeadingTODO)).
			Build()
		return []lint.Diagnostic{diag}, nil
	}
	return nil, nil
}

// structuralMarkers are delimiter prefixes a block title may legitimately
// introduce, such as listings and tables. Longer delimiter runs still count.
var structuralMarkers = []string{"----", "....", "|====", "|===", "===="}

// conceptTitleAllowlist holds the block titles permitted in concept and
// reference modules when they do not introduce a delimited block.
var conceptTitleAllowlist = map[string]struct{}{
	".Additional resources": {},
	".Next steps":           {},
}

// BlockTitleAllowlistRule restricts standalone block titles in concept and
// reference modules to the allowed section markers.
type BlockTitleAllowlistRule struct {
	lint.BaseRule
}

// NewBlockTitleAllowlistRule creates a new block title allowlist rule.
func NewBlockTitleAllowlistRule() *BlockTitleAllowlistRule {
	return &BlockTitleAllowlistRule{
		BaseRule: lint.NewBaseRule(
			"AD205",
			"block-title-allowlist",
			"Concept and reference modules allow only .Next steps and .Additional resources block titles",
			[]string{"concept", "reference"},
			true, // Fix annotates the disallowed title.
			adoc.TypeConcept,
			adoc.TypeReference,
		),
	}
}

// Apply flags every standalone block title outside the allowlist. Titles
// that introduce a listing, literal, example, or table block are fine.
func (r *BlockTitleAllowlistRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
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
		if adoc.IsComment(line) || !adoc.IsAlphaBlockTitle(line) {
			continue
		}
		s := strings.TrimSpace(line)
		if s == ".Procedure" || s == ".Prerequisites" {
			// Bare procedure titles are the no-procedure-block finding.
			continue
		}
		if _, ok := conceptTitleAllowlist[s]; ok {
			continue
		}
		if introducesBlock(doc, i) {
			continue
		}
		if alreadyFlagged(doc, i, blockTitleTODO) {
			continue
		}
		diag := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, i),
			fmt.Sprintf("Block title %s is not in the allowed set", s)).
			WithSeverity(config.SeverityWarning).
			WithSuggestion("Use .Next steps or .Additional resources, or promote the section to a heading").
			WithEdit(insertBefore(doc, i, blockTitleTODO)).
			Build()
		diags = append(diags, diag)
	}
	return diags, nil
}

// introducesBlock reports whether the block title on line title is followed,
// within a few lines, by a delimited block it captions.
func introducesBlock(doc *adoc.Document, title int) bool {
	for j := title + 1; j <= title+5 && j <= doc.LineCount(); j++ {
		s := strings.TrimSpace(doc.LineText(j))
		if s == "" || adoc.IsAttributeLine(s) {
			continue
		}
		for _, marker := range structuralMarkers {
			if strings.HasPrefix(s, marker) {
				return true
			}
		}
		return false
	}
	return false
}
