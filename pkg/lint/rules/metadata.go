package rules

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// contentTypeTODO precedes the TBD stub when no content type can be
// inferred for a module.
const contentTypeTODO = "// TODO: Set the :_mod-docs-content-type: attribute and value"

// ContentTypeAttrRule checks that modules declare a content-type attribute.
type ContentTypeAttrRule struct {
	lint.BaseRule
}

// NewContentTypeAttrRule creates a new content type attribute rule.
func NewContentTypeAttrRule() *ContentTypeAttrRule {
	return &ContentTypeAttrRule{
		BaseRule: lint.NewBaseRule(
			"AD001",
			"content-type-attr",
			"Modules should declare a :_mod-docs-content-type: attribute",
			[]string{"metadata"},
			true, // Fix inserts the attribute at the top.
		),
	}
}

// Apply checks for a content-type attribute declaration anywhere in the
// file. The fix inserts the attribute at the top, deriving the value from
// the filename prefix or the resolved content type; when neither is known
// it stubs a TBD value for a human to fill in.
func (r *ContentTypeAttrRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	for i := 1; i <= doc.LineCount(); i++ {
		if adoc.IsContentTypeAttr(doc.LineText(i)) {
			return nil, nil
		}
	}

	typ := adoc.ContentTypeFromFilename(doc.Path)
	if !typ.Known() && rc.ContentType.Known() {
		typ = rc.ContentType
	}

	pos := lint.LineSpan(doc, 1)
	if typ.Known() {
		d := lint.NewDiagnosticAt(r.ID(), doc.Path, pos,
			"Missing :_mod-docs-content-type: attribute").
			WithSuggestion(fmt.Sprintf("Declare :_mod-docs-content-type: %s at the top of the file", typ)).
			WithEdit(insertBefore(doc, 1, ":_mod-docs-content-type: "+typ.String())).
			WithSeverity(config.SeverityWarning).Build()
		return []lint.Diagnostic{d}, nil
	}

	stub := contentTypeTODO + "\n:_mod-docs-content-type: TBD"
	d := lint.NewDiagnosticAt(r.ID(), doc.Path, pos,
		"Missing :_mod-docs-content-type: attribute and no type could be inferred").
		WithSuggestion("Set the content type to PROCEDURE, CONCEPT, REFERENCE, or ASSEMBLY").
		WithEdit(insertBefore(doc, 1, stub)).
		WithSeverity(config.SeverityWarning).Build()
	return []lint.Diagnostic{d}, nil
}

// TopicIDRule checks that modules declare a topic ID anchor carrying the
// context suffix.
type TopicIDRule struct {
	lint.BaseRule
}

// NewTopicIDRule creates a new topic ID rule.
func NewTopicIDRule() *TopicIDRule {
	return &TopicIDRule{
		BaseRule: lint.NewBaseRule(
			"AD002",
			"topic-id",
			"Modules should carry a topic ID anchor ending in _{context}",
			[]string{"metadata"},
			true, // Fix inserts a derived id anchor.
		),
	}
}

// Apply checks for a topic ID declaration. The fix derives the anchor name
// from the filename, so in-memory documents without a path are skipped.
func (r *TopicIDRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil || doc.Path == "" {
		return nil, nil
	}

	for i := 1; i <= doc.LineCount(); i++ {
		if adoc.IsTopicID(doc.LineText(i)) {
			return nil, nil
		}
	}

	base := strings.TrimSuffix(filepath.Base(doc.Path), filepath.Ext(doc.Path))
	if base == "" || base == "." {
		return nil, nil
	}

	id := `[id="` + base + `_{context}"]`
	d := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, 1),
		"Missing topic ID anchor").
		WithSuggestion(fmt.Sprintf("Add %s above the title", id)).
		WithEdit(insertBefore(doc, 1, id)).
		WithSeverity(config.SeverityWarning).Build()
	return []lint.Diagnostic{d}, nil
}
