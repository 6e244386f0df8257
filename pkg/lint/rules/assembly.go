package rules

import (
	"strings"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/lint"
)

const (
	contextAttrTODO     = "// TODO: set a :context: attribute"
	assemblyHeadingTODO = "// TODO: Remove or revise level 2+ heading"
	assemblyTitleTODO   = "// TODO: Replace the following block title with a `== <subheading>`."

	assemblyTopIfdef     = "ifdef::context[:parent-context: {context}]"
	assemblyBottomIfdef  = "ifdef::parent-context[:context: {parent-context}]"
	assemblyBottomIfndef = "ifndef::parent-context[:!context:]"
)

// ContextConditionalsRule checks that an assembly saves and restores the
// {context} attribute around its includes, so nesting assemblies inside one
// another keeps IDs stable.
type ContextConditionalsRule struct {
	lint.BaseRule
}

// NewContextConditionalsRule creates a new context conditionals rule.
func NewContextConditionalsRule() *ContextConditionalsRule {
	return &ContextConditionalsRule{
		BaseRule: lint.NewBaseRule(
			"AD301",
			"context-conditionals",
			"Assemblies should guard :context: with parent-context conditionals",
			[]string{"assembly"},
			true, // Fix inserts the ifdef preamble.
			adoc.TypeAssembly,
		),
	}
}

// Apply checks the head of the file for the parent-context save and the
// tail for the restore pair.
func (r *ContextConditionalsRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	var out []lint.Diagnostic

	if !containsLine(doc, 1, 10, assemblyTopIfdef) {
		d := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, 1),
			"Assembly does not save the parent context").
			WithSuggestion("Open the assembly with "+assemblyTopIfdef).
			WithEdit(insertBefore(doc, 1, assemblyTopIfdef)).
			WithSeverity(config.SeverityWarning).Build()
		out = append(out, d)
	}

	last := doc.LineCount()
	if last < 1 {
		last = 1
	}
	if !containsLine(doc, last-4, last, assemblyBottomIfdef) ||
		!containsLine(doc, last-4, last, assemblyBottomIfndef) {
		text := "\n" + assemblyBottomIfdef + "\n" + assemblyBottomIfndef + "\n"
		if n := len(doc.Content); n > 0 && doc.Content[n-1] != '\n' {
			text = "\n" + text
		}
		d := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, last),
			"Assembly does not restore the parent context").
			WithSuggestion("Close the assembly with the parent-context restore pair").
			WithEdit(fix.TextEdit{
				StartOffset: doc.EndOffset(),
				EndOffset:   doc.EndOffset(),
				NewText:     text,
			}).
			WithSeverity(config.SeverityWarning).Build()
		out = append(out, d)
	}

	return out, nil
}

// containsLine reports whether any line in [from, to] equals text after
// trimming. Bounds are clamped to the document.
func containsLine(doc *adoc.Document, from, to int, text string) bool {
	if from < 1 {
		from = 1
	}
	if to > doc.LineCount() {
		to = doc.LineCount()
	}
	for i := from; i <= to; i++ {
		if strings.TrimSpace(doc.LineText(i)) == text {
			return true
		}
	}
	return false
}

// ContextAttributeRule checks that an assembly declares :context: so the
// modules it includes can build their IDs from it.
type ContextAttributeRule struct {
	lint.BaseRule
}

// NewContextAttributeRule creates a new context attribute rule.
func NewContextAttributeRule() *ContextAttributeRule {
	return &ContextAttributeRule{
		BaseRule: lint.NewBaseRule(
			"AD302",
			"context-attribute",
			"Assemblies should declare a :context: attribute",
			[]string{"assembly"},
			true, // Fix leaves a reminder comment at the top.
			adoc.TypeAssembly,
		),
	}
}

// Apply reports a missing :context: declaration once per file.
func (r *ContextAttributeRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}
	for i := 1; i <= doc.LineCount(); i++ {
		if adoc.IsContextDecl(doc.LineText(i)) {
			return nil, nil
		}
	}
	// Top-of-file inserts from other rules move this comment around, so
	// look for it anywhere rather than at a fixed line.
	if hasComment(doc, contextAttrTODO) {
		return nil, nil
	}
	d := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, 1),
		"Assembly does not declare :context:").
		WithSuggestion("Declare :context: near the top of the assembly").
		WithEdit(insertBefore(doc, 1, contextAttrTODO)).
		WithSeverity(config.SeverityWarning).Build()
	return []lint.Diagnostic{d}, nil
}

// IncludeSpacingRule checks that consecutive include directives are
// separated by a blank line, which AsciiDoc needs to keep the included
// modules from running together.
type IncludeSpacingRule struct {
	lint.BaseRule
}

// NewIncludeSpacingRule creates a new include spacing rule.
func NewIncludeSpacingRule() *IncludeSpacingRule {
	return &IncludeSpacingRule{
		BaseRule: lint.NewBaseRule(
			"AD303",
			"include-spacing",
			"Adjacent include directives should be separated by a blank line",
			[]string{"assembly"},
			true, // Fix inserts the blank separator line.
			adoc.TypeAssembly,
		),
	}
}

// Apply flags every pair of directly adjacent includes.
func (r *IncludeSpacingRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	var out []lint.Diagnostic
	for i := 1; i < doc.LineCount(); i++ {
		if !adoc.IsInclude(doc.LineText(i)) || !adoc.IsInclude(doc.LineText(i+1)) {
			continue
		}
		off := doc.InsertOffset(i + 1)
		d := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, i+1),
			"Include directive directly follows another include").
			WithSuggestion("Separate include directives with a blank line").
			WithEdit(fix.TextEdit{StartOffset: off, EndOffset: off, NewText: "\n"}).
			WithSeverity(config.SeverityWarning).Build()
		out = append(out, d)
	}
	return out, nil
}

// AssemblyHeadingRule flags deep section headings in assemblies, which
// should structure their content through included modules instead.
type AssemblyHeadingRule struct {
	lint.BaseRule
}

// NewAssemblyHeadingRule creates a new assembly heading rule.
func NewAssemblyHeadingRule() *AssemblyHeadingRule {
	return &AssemblyHeadingRule{
		BaseRule: lint.NewBaseRule(
			"AD304",
			"assembly-heading",
			"Assemblies should not declare level 2 or deeper headings",
			[]string{"assembly"},
			true, // Fix marks the heading with a comment.
			adoc.TypeAssembly,
		),
	}
}

// Apply reports the first deep heading in the assembly.
func (r *AssemblyHeadingRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
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
		if alreadyFlagged(doc, i, assemblyHeadingTODO) {
			return nil, nil
		}
		d := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, i),
			"Deep section heading in an assembly").
			WithSuggestion("Move the section into an included module").
			WithEdit(insertBefore(doc, i, assemblyHeadingTODO)).
			WithSeverity(config.SeverityWarning).Build()
		return []lint.Diagnostic{d}, nil
	}
	return nil, nil
}

// AssemblyBlockTitleRule flags block titles in assemblies. Assemblies
// structure their content with == subheadings; standalone block titles
// usually mark content that belongs in a module.
type AssemblyBlockTitleRule struct {
	lint.BaseRule
}

// NewAssemblyBlockTitleRule creates a new assembly block title rule.
func NewAssemblyBlockTitleRule() *AssemblyBlockTitleRule {
	return &AssemblyBlockTitleRule{
		BaseRule: lint.NewBaseRule(
			"AD305",
			"assembly-block-title",
			"Assemblies should use == subheadings instead of block titles",
			[]string{"assembly"},
			true, // Fix marks the title with a comment.
			adoc.TypeAssembly,
		),
	}
}

// Apply reports the first block title outside the universal trailing set.
func (r *AssemblyBlockTitleRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
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
		if adoc.IsComment(line) || !adoc.IsAlphaBlockTitle(line) {
			continue
		}
		if _, ok := conceptTitleAllowlist[strings.TrimSpace(line)]; ok {
			continue
		}
		if alreadyFlagged(doc, i, assemblyTitleTODO) {
			return nil, nil
		}
		d := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, i),
			"Block title in an assembly").
			WithSuggestion("Replace the block title with a == subheading").
			WithEdit(insertBefore(doc, i, assemblyTitleTODO)).
			WithSeverity(config.SeverityWarning).Build()
		return []lint.Diagnostic{d}, nil
	}
	return nil, nil
}
