package runner

import "github.com/yaklabco/adoclint/pkg/lint"

// FileOutcome pairs a resolved path with its pipeline result.
type FileOutcome struct {
	Path   string               // as resolved by discovery
	Result *lint.PipelineResult // nil when the file failed before the pipeline produced one
	Error  error                // set when the file could not be processed
}

// Stats aggregates counters for a whole run.
type Stats struct {
	FilesDiscovered int // everything discovery matched
	FilesProcessed  int // ran the pipeline to completion
	FilesSkipped    int // concurrent-modification skips
	FilesErrored    int // failed before or inside the pipeline
	FilesWithIssues int // at least one diagnostic
	FilesModified   int // rewritten by fixes

	DiagnosticsTotal   int // findings across all files
	DiagnosticsFixable int // findings carrying fix edits
	DiagnosticsFixed   int // edits applied across all fix passes

	DiagnosticsBySeverity map[string]int // keyed by severity name
	FilesByContentType    map[string]int // keyed by content type, "UNKNOWN" when unresolved
}

// Result collects everything a run produced.
type Result struct {
	Files  []FileOutcome // per-file outcomes in deterministic path order
	Stats  Stats         // aggregates for the run
	Errors []error       // failures not tied to a specific file
}

// HasFailures reports whether any error-severity diagnostics occurred.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity["error"] > 0
}

// HasIssues reports whether the run produced any diagnostics.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

func newStats() Stats {
	var s Stats
	s.DiagnosticsBySeverity = make(map[string]int)
	s.FilesByContentType = make(map[string]int)
	return s
}

// accumulate folds one outcome into the result.
func (r *Result) accumulate(fo FileOutcome) {
	r.Files = append(r.Files, fo)

	st := &r.Stats
	if fo.Error != nil {
		st.FilesErrored++
		return
	}
	if fo.Result == nil {
		return
	}

	st.FilesProcessed++
	if fo.Result.Skipped {
		st.FilesSkipped++
	}
	if fo.Result.Written {
		st.FilesModified++
	}
	st.DiagnosticsFixed += fo.Result.TotalEditsApplied

	if fo.Result.FileResult != nil {
		r.tallyDiagnostics(fo.Result)
	}
}

// tallyDiagnostics counts the lint findings of one processed file.
func (r *Result) tallyDiagnostics(pr *lint.PipelineResult) {
	contentType := string(pr.ContentType)
	if contentType == "" {
		contentType = "UNKNOWN"
	}
	r.Stats.FilesByContentType[contentType]++

	r.Stats.DiagnosticsTotal += len(pr.Diagnostics)
	r.Stats.DiagnosticsFixable += pr.FixableCount()
	if len(pr.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range pr.Diagnostics {
		severity := string(diag.Severity)
		if severity == "" {
			severity = "warning"
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
