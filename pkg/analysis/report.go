package analysis

import "time"

// Report holds the pre-computed views of a lint run. Analyze builds it once;
// every renderer (summary tables, JSON, one-line) reads from the same report.
type Report struct {
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"` // flat list, file order
	ByFile      []FileAnalysis    `json:"byFile,omitempty"`
	ByRule      []RuleAnalysis    `json:"byRule,omitempty"`
	Totals      Totals            `json:"summary"`
	Version     string            `json:"version"` // report format version
	Timestamp   time.Time         `json:"timestamp"`
}

// DiagnosticEntry is one diagnostic flattened for serialization.
type DiagnosticEntry struct {
	FilePath string `json:"filePath"`
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Severity string `json:"severity"`
	Message  string `json:"message"`

	StartLine   int `json:"startLine"` // 1-based, as in editor gutters
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`

	Suggestion string     `json:"suggestion,omitempty"`
	Fixable    bool       `json:"fixable"`
	Fixes      []FixEntry `json:"fixes,omitempty"`
}

// FixEntry is a text edit attached to a diagnostic.
type FixEntry struct {
	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`

	NewText string `json:"newText"`
}

// Totals aggregates counts across the whole run.
type Totals struct {
	Files           int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	Issues          int            `json:"totalIssues"`
	Errors          int            `json:"errors"`
	Warnings        int            `json:"warnings"`
	Infos           int            `json:"infos"`
	Fixable         int            `json:"fixable"`
	ContentTypes    map[string]int `json:"filesByContentType,omitempty"`
}

// HasIssues reports whether any diagnostics were counted.
func (tot Totals) HasIssues() bool {
	return tot.Issues > 0
}

// HasErrors reports whether any error-severity diagnostics were counted.
func (tot Totals) HasErrors() bool {
	return tot.Errors > 0
}

// FileAnalysis aggregates the diagnostics of a single file.
type FileAnalysis struct {
	Path        string   `json:"path"`
	ContentType string   `json:"contentType,omitempty"`
	Issues      int      `json:"issues"`
	Errors      int      `json:"errors"`
	Warnings    int      `json:"warnings"`
	Infos       int      `json:"infos"`
	Rules       []string `json:"rules,omitempty"`
}

// RuleAnalysis aggregates the diagnostics of a single rule.
type RuleAnalysis struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`

	Issues   int  `json:"issues"`
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
	Infos    int  `json:"infos"`
	Fixable  bool `json:"fixable"`

	Files []string `json:"files,omitempty"`
}
