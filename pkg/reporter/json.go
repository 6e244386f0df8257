package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// jsonSchemaVersion identifies the output schema, not the tool release.
const jsonSchemaVersion = "1.0.0"

// severityWarning is the fallback severity for diagnostics that carry none.
const severityWarning = "warning"

// JSONOutput is the top-level JSON document.
type JSONOutput struct {
	Version string            `json:"version"`
	Files   []JSONFileOutcome `json:"files"`
	Summary JSONSummary       `json:"summary"`
}

// JSONFileOutcome holds one file's diagnostics and outcome.
type JSONFileOutcome struct {
	Path        string `json:"path"`
	ContentType string `json:"contentType,omitempty"`
	Modified    bool   `json:"modified,omitempty"`
	Error       string `json:"error,omitempty"`

	Diagnostics []JSONDiagnostic `json:"diagnostics"` // non-null even when empty
}

// JSONDiagnostic is the wire form of a single diagnostic.
type JSONDiagnostic struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Severity string `json:"severity"`
	Message  string `json:"message"`

	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`

	Suggestion string     `json:"suggestion,omitempty"`
	Fixable    bool       `json:"fixable"`
	Fixes      []JSONEdit `json:"fixes,omitempty"`
}

// JSONEdit is a proposed text replacement, offsets in bytes.
type JSONEdit struct {
	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`

	NewText string `json:"newText"`
}

// JSONSummary aggregates counts across the whole run.
type JSONSummary struct {
	FilesChecked    int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesModified   int `json:"filesModified"`
	FilesErrored    int `json:"filesErrored"`

	TotalIssues int            `json:"totalIssues"`
	BySeverity  map[string]int `json:"bySeverity"`
}

// observe folds one file's outcome into the running totals.
func (s *JSONSummary) observe(file JSONFileOutcome) {
	s.FilesChecked++
	s.TotalIssues += len(file.Diagnostics)
	if file.Error != "" {
		s.FilesErrored++
	}
	if file.Modified {
		s.FilesModified++
	}
	if len(file.Diagnostics) > 0 {
		s.FilesWithIssues++
	}
	for _, diag := range file.Diagnostics {
		severity := diag.Severity
		if severity == "" {
			severity = severityWarning
		}
		s.BySeverity[severity]++
	}
}

// JSONReporter formats results as a single JSON document.
type JSONReporter struct {
	bw  *bufio.Writer
	enc *json.Encoder
}

// NewJSONReporter wires a JSON reporter to opts.Writer.
func NewJSONReporter(opts Options) *JSONReporter {
	bw := bufio.NewWriterSize(opts.Writer, writeBufSize)
	enc := json.NewEncoder(bw)
	if !opts.Compact {
		enc.SetIndent("", "  ")
	}
	return &JSONReporter{bw: bw, enc: enc}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer flush(r.bw, &err)

	doc := buildJSONOutput(result)
	if err := r.enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encode json: %w", err)
	}
	return doc.Summary.TotalIssues, nil
}

func buildJSONOutput(result *runner.Result) *JSONOutput {
	doc := &JSONOutput{
		Version: jsonSchemaVersion,
		// Keep files non-nil so empty runs serialize as [] rather than null.
		Files:   []JSONFileOutcome{},
		Summary: JSONSummary{BySeverity: make(map[string]int)},
	}
	if result == nil || len(result.Files) == 0 {
		return doc
	}

	doc.Files = make([]JSONFileOutcome, 0, len(result.Files))
	for _, outcome := range result.Files {
		file := jsonFile(outcome)
		doc.Summary.observe(file)
		doc.Files = append(doc.Files, file)
	}
	return doc
}

func jsonFile(outcome runner.FileOutcome) JSONFileOutcome {
	file := JSONFileOutcome{
		Path:        outcome.Path,
		Diagnostics: []JSONDiagnostic{},
	}
	if outcome.Error != nil {
		file.Error = outcome.Error.Error()
	}
	if outcome.Result == nil {
		return file
	}

	file.Modified = outcome.Result.Written
	if outcome.Result.FileResult == nil {
		return file
	}

	file.ContentType = string(outcome.Result.ContentType)
	for _, diag := range outcome.Result.Diagnostics {
		file.Diagnostics = append(file.Diagnostics, jsonDiagnostic(diag))
	}
	return file
}

func jsonDiagnostic(diag lint.Diagnostic) JSONDiagnostic {
	jd := JSONDiagnostic{
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Severity:    string(diag.Severity),
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
		Fixable:     len(diag.FixEdits) > 0,
	}
	for _, edit := range diag.FixEdits {
		jd.Fixes = append(jd.Fixes, JSONEdit{
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}
	return jd
}
