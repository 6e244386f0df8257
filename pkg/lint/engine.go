package lint

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
)

// FileResult is the outcome of linting one file.
type FileResult struct {
	Doc           *adoc.Document   // document that was linted
	ContentType   adoc.ContentType // module type the rules ran under
	Diagnostics   []Diagnostic     // every issue found, in rule order
	Edits         []fix.TextEdit   // validated, sorted edits for auto-fix
	SkippedEdits  []fix.TextEdit   // edits dropped by conflict filtering
	EditConflicts bool             // whether any edits were dropped
	RuleErrors    map[string]error // rule ID to the error that aborted it
}

// HasIssues reports whether any diagnostics were found.
func (res *FileResult) HasIssues() bool {
	return len(res.Diagnostics) > 0
}

// HasFixes reports whether any fixes are available.
func (res *FileResult) HasFixes() bool {
	return len(res.Edits) > 0
}

// IssueCount returns the total number of diagnostics.
func (res *FileResult) IssueCount() int {
	return len(res.Diagnostics)
}

// FixableCount returns the number of diagnostics that carry a fix.
func (res *FileResult) FixableCount() int {
	n := 0
	for _, dg := range res.Diagnostics {
		if dg.HasFix() {
			n++
		}
	}
	return n
}

// attachEdits validates and installs the collected edits, merging adjacent
// deletions and filtering conflicts; when edits overlap, the earlier one by
// start position wins. A validation failure (an edit out of bounds) drops
// every edit but keeps the diagnostics.
func (res *FileResult) attachEdits(edits []fix.TextEdit, contentLen int) {
	if len(edits) == 0 {
		return
	}

	accepted, skipped, _, err := fix.PrepareEditsFiltered(edits, contentLen)
	if err != nil {
		res.Edits = nil
		res.SkippedEdits = nil
		res.EditConflicts = true
		return
	}

	res.Edits = accepted
	res.SkippedEdits = skipped
	res.EditConflicts = len(skipped) > 0
}

// Engine runs the registered rules over parsed documents.
type Engine struct {
	Registry *Registry // all available rules
}

// NewEngine creates an Engine backed by reg.
func NewEngine(reg *Registry) *Engine {
	return &Engine{Registry: reg}
}

// LintFile lints a single file's content.
//
// The document and its content type are rebuilt from the raw bytes on
// every call, so repeated invocations over progressively fixed content
// always see current state.
func (en *Engine) LintFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	doc := adoc.NewDocument(path, content)
	contentType := resolveContentType(doc, cfg)

	// Only rules gated to this module type run.
	resolved := FilterByContentType(ResolveRules(en.Registry, cfg), contentType)

	fr := &FileResult{Doc: doc, ContentType: contentType, RuleErrors: make(map[string]error)}

	var pending []fix.TextEdit
	for _, rs := range resolved {
		if err := ctx.Err(); err != nil {
			return fr, fmt.Errorf("linting cancelled: %w", err)
		}

		rc := NewRuleContext(ctx, doc, contentType, cfg, rs.Config)
		rc.Registry = en.Registry

		diags, err := rs.Rule.Apply(rc)
		if err != nil {
			fr.RuleErrors[rs.Rule.ID()] = err
			continue
		}

		pending = append(pending, stampDiagnostics(diags, rs, path)...)
		fr.Diagnostics = append(fr.Diagnostics, diags...)
	}

	fr.attachEdits(pending, len(content))

	return fr, nil
}

// stampDiagnostics overlays the resolved severity, backfills per-file
// metadata a rule left blank, and returns the fix edits eligible for
// auto-apply.
func stampDiagnostics(diags []Diagnostic, rs ResolvedRule, path string) []fix.TextEdit {
	var edits []fix.TextEdit
	for i := range diags {
		diags[i].Severity = rs.Severity
		if diags[i].FilePath == "" {
			diags[i].FilePath = path
		}
		if diags[i].RuleName == "" {
			diags[i].RuleName = rs.Rule.Name()
		}
		if rs.AutoFix && len(diags[i].FixEdits) > 0 {
			edits = append(edits, diags[i].FixEdits...)
		}
	}
	return edits
}

// resolveContentType determines the module content type for a document.
// A CLI override wins; otherwise the declared attribute is used, falling
// back to the filename prefix.
func resolveContentType(doc *adoc.Document, cfg *config.Config) adoc.ContentType {
	if cfg != nil && cfg.ContentType != "" {
		ct := adoc.ContentType(strings.ToUpper(cfg.ContentType))
		if ct.Known() {
			return ct
		}
	}
	if ct := adoc.DetectContentType(doc); ct != adoc.TypeUnknown {
		return ct
	}
	return adoc.ContentTypeFromFilename(doc.Path)
}
