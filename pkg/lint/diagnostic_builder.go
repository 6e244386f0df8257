package lint

import (
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
)

// DiagnosticBuilder assembles a Diagnostic through chained setters.
type DiagnosticBuilder struct {
	diag Diagnostic
}

func diagnosticAt(ruleID, filePath string, pos Position, message string) Diagnostic {
	d := Diagnostic{RuleID: ruleID, Message: message, FilePath: filePath}
	d.StartLine, d.StartColumn = pos.StartLine, pos.StartColumn
	d.EndLine, d.EndColumn = pos.EndLine, pos.EndColumn
	return d
}

// NewDiagnosticAt starts a diagnostic for ruleID at pos.
func NewDiagnosticAt(ruleID, filePath string, pos Position, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{diag: diagnosticAt(ruleID, filePath, pos, message)}
}

// NewDiagnosticAtWithRegistry starts a diagnostic and resolves the rule
// name through reg when it is available.
func NewDiagnosticAtWithRegistry(ruleID, filePath string, pos Position, message string, reg *Registry) *DiagnosticBuilder {
	db := NewDiagnosticAt(ruleID, filePath, pos, message)
	if reg == nil {
		return db
	}
	if rule, ok := reg.GetByID(ruleID); ok {
		db.diag.RuleName = rule.Name()
	}
	return db
}

// WithSeverity sets the diagnostic severity. The engine overlays the
// resolved severity for registered rules, so this mostly matters in tests
// and for ad-hoc diagnostics.
func (db *DiagnosticBuilder) WithSeverity(sev config.Severity) *DiagnosticBuilder {
	db.diag.Severity = sev
	return db
}

// WithSuggestion attaches a human-readable remediation hint.
func (db *DiagnosticBuilder) WithSuggestion(hint string) *DiagnosticBuilder {
	db.diag.Suggestion = hint
	return db
}

// WithEdit appends a single fix edit.
func (db *DiagnosticBuilder) WithEdit(e fix.TextEdit) *DiagnosticBuilder {
	db.diag.FixEdits = append(db.diag.FixEdits, e)
	return db
}

// WithFix appends every edit accumulated by an EditBuilder. A nil
// builder is a no-op.
func (db *DiagnosticBuilder) WithFix(eb *fix.EditBuilder) *DiagnosticBuilder {
	if eb != nil {
		db.diag.FixEdits = append(db.diag.FixEdits, eb.Edits...)
	}
	return db
}

// Build returns the assembled Diagnostic.
func (db *DiagnosticBuilder) Build() Diagnostic {
	return db.diag
}
