package analysis

import "github.com/yaklabco/adoclint/pkg/config"

// SortField selects the ordering for grouped analysis results.
type SortField string

const (
	SortByCount    SortField = "count"    // by issue count
	SortByAlpha    SortField = "alpha"    // lexicographic
	SortBySeverity SortField = "severity" // errors first
)

// IsValid reports whether f names a known sort field.
func (f SortField) IsValid() bool {
	return f == SortByCount || f == SortByAlpha || f == SortBySeverity
}

// Options configures Analyze.
type Options struct {
	IncludeDiagnostics bool // retain the flat diagnostics list on the report
	IncludeByFile      bool // build the per-file grouped view
	IncludeByRule      bool // build the per-rule grouped view

	SortBy   SortField // ordering for ByFile and ByRule
	SortDesc bool      // highest first

	RuleFormat config.RuleFormat // how rule identifiers render in messages
	WorkingDir string            // relativize paths; empty keeps them as discovered
}

// DefaultOptions returns Options with every view enabled, sorted by
// descending issue count.
func DefaultOptions() Options {
	opts := Options{IncludeDiagnostics: true, IncludeByFile: true, IncludeByRule: true}
	opts.SortBy = SortByCount
	opts.SortDesc = true
	opts.RuleFormat = config.RuleFormatName
	return opts
}
