// Package lint holds the linting engine: the rule interface, the registry,
// diagnostics, and per-file orchestration.
package lint

import (
	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
)

// Position locates a diagnostic within a file.
// Line and column numbers are 1-based.
type Position struct {
	StartLine, StartColumn int
	EndLine, EndColumn     int
}

// LineSpan returns a Position covering the whole of line n in doc.
func LineSpan(doc *adoc.Document, n int) Position {
	end := 1
	if doc != nil && n >= 1 && n <= doc.LineCount() {
		end = len(doc.LineText(n)) + 1
	}
	return Position{
		StartLine:   n,
		StartColumn: 1,
		EndLine:     n,
		EndColumn:   end,
	}
}

// Diagnostic is a single issue one rule found in one file. Line and column
// numbers are 1-based. FixEdits may be empty even when the rule is fixable
// in general.
type Diagnostic struct {
	RuleID      string
	RuleName    string
	Message     string
	Severity    config.Severity
	FilePath    string
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
	Suggestion  string // optional remediation hint shown to the user
	FixEdits    []fix.TextEdit
}

// HasFix reports whether any edits accompany the diagnostic.
func (diag *Diagnostic) HasFix() bool {
	return len(diag.FixEdits) != 0
}

// Pos returns the diagnostic location as a Position.
func (diag *Diagnostic) Pos() Position {
	return Position{diag.StartLine, diag.StartColumn, diag.EndLine, diag.EndColumn}
}

// Rule is one lint check. Implementations register themselves once at init
// and must tolerate concurrent Apply calls, since files are linted in
// parallel.
type Rule interface {
	ID() string          // stable identifier, e.g. "AD101"
	Name() string        // kebab-case name, e.g. "procedure-structure"
	Description() string // one-line summary for rule listings

	DefaultEnabled() bool             // whether the rule runs without explicit config
	DefaultSeverity() config.Severity // severity applied when the config is silent
	Tags() []string                   // rule groups a config can address together
	CanFix() bool                     // whether the rule can propose edits

	// ContentTypes limits the rule to the given module types. Empty means
	// the rule runs for every document, including those whose type could
	// not be determined.
	ContentTypes() []adoc.ContentType

	// Apply runs the rule and returns one diagnostic per violation. An
	// error means the rule itself failed, not that the document has
	// problems; cancellation flows in through the carried context.
	Apply(rc *RuleContext) ([]Diagnostic, error)
}
