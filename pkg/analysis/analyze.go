package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/runner"
)

const (
	// ReportVersion identifies the report payload layout.
	ReportVersion = "1.0.0"

	sevError   = "error"
	sevWarning = "warning"
	sevInfo    = "info"
)

// Analyze transforms a runner.Result into a Report in a single pass over
// the diagnostics.
func Analyze(res *runner.Result, o Options) *Report {
	rep := &Report{Version: ReportVersion, Timestamp: time.Now()}
	if res == nil {
		return rep
	}

	acc := newAccumulator()
	rep.Totals.ContentTypes = make(map[string]int)

	for _, fr := range res.Files {
		rep.Totals.Files++
		if fr.Result == nil || fr.Result.FileResult == nil {
			continue
		}
		if len(fr.Result.Diagnostics) > 0 {
			rep.Totals.FilesWithIssues++
		}

		ct := string(fr.Result.ContentType)
		if ct == "" {
			ct = "UNKNOWN"
		}
		rep.Totals.ContentTypes[ct]++

		path := displayPath(fr.Path, o.WorkingDir)
		fa := acc.file(path)
		fa.analysis.ContentType = ct

		for _, dg := range fr.Result.Diagnostics {
			sev := normalizeSeverity(string(dg.Severity))
			fixable := len(dg.FixEdits) > 0

			rep.Totals.Issues++
			bumpSeverity(sev, &rep.Totals.Errors, &rep.Totals.Warnings, &rep.Totals.Infos)
			if fixable {
				rep.Totals.Fixable++
			}

			fa.analysis.Issues++
			bumpSeverity(sev, &fa.analysis.Errors, &fa.analysis.Warnings, &fa.analysis.Infos)
			fa.rules[dg.RuleID] = true

			ra := acc.rule(dg.RuleID, dg.RuleName)
			ra.analysis.Issues++
			bumpSeverity(sev, &ra.analysis.Errors, &ra.analysis.Warnings, &ra.analysis.Infos)
			if fixable {
				ra.analysis.Fixable = true
			}
			ra.files[path] = true

			if o.IncludeDiagnostics {
				rep.Diagnostics = append(rep.Diagnostics, diagnosticEntry(path, sev, dg))
			}
		}
	}

	if o.IncludeByRule {
		rep.ByRule = acc.byRule(o.SortBy, o.SortDesc)
	}
	if o.IncludeByFile {
		rep.ByFile = acc.byFile(o.SortBy, o.SortDesc)
	}

	return rep
}

// displayPath makes path relative to base for presentation. An empty base
// or a failed conversion leaves the path untouched.
func displayPath(path, base string) string {
	if base == "" {
		return path
	}
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}

// normalizeSeverity defaults empty severities to warning.
func normalizeSeverity(s string) string {
	if s != "" {
		return s
	}
	return sevWarning
}

func bumpSeverity(s string, errors, warnings, infos *int) {
	switch s {
	case sevError:
		*errors++
	case sevWarning:
		*warnings++
	case sevInfo:
		*infos++
	}
}

func diagnosticEntry(path, sev string, dg lint.Diagnostic) DiagnosticEntry {
	e := DiagnosticEntry{
		FilePath:    path,
		RuleID:      dg.RuleID,
		RuleName:    dg.RuleName,
		Severity:    sev,
		Message:     dg.Message,
		StartLine:   dg.StartLine,
		StartColumn: dg.StartColumn,
		EndLine:     dg.EndLine,
		EndColumn:   dg.EndColumn,
		Suggestion:  dg.Suggestion,
		Fixable:     len(dg.FixEdits) > 0,
	}
	for _, ed := range dg.FixEdits {
		e.Fixes = append(e.Fixes, FixEntry{StartOffset: ed.StartOffset, EndOffset: ed.EndOffset, NewText: ed.NewText})
	}
	return e
}

// accumulator gathers per-rule and per-file tallies keyed by rule ID and
// display path.
type accumulator struct {
	rules map[string]*ruleAccum
	files map[string]*fileAccum
}

type ruleAccum struct {
	analysis RuleAnalysis
	files    map[string]bool
}

type fileAccum struct {
	analysis FileAnalysis
	rules    map[string]bool
}

func newAccumulator() *accumulator {
	return &accumulator{
		rules: make(map[string]*ruleAccum),
		files: make(map[string]*fileAccum),
	}
}

func (a *accumulator) rule(id, name string) *ruleAccum {
	ra, ok := a.rules[id]
	if !ok {
		ra = &ruleAccum{
			analysis: RuleAnalysis{RuleID: id, RuleName: name},
			files:    make(map[string]bool),
		}
		a.rules[id] = ra
	}
	return ra
}

func (a *accumulator) file(path string) *fileAccum {
	fa, ok := a.files[path]
	if !ok {
		fa = &fileAccum{
			analysis: FileAnalysis{Path: path},
			rules:    make(map[string]bool),
		}
		a.files[path] = fa
	}
	return fa
}

func (a *accumulator) byRule(by SortField, desc bool) []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(a.rules))
	for _, ra := range a.rules {
		analysis := ra.analysis
		analysis.Files = slices.Sorted(maps.Keys(ra.files))
		out = append(out, analysis)
	}
	sortAnalyses(out, ruleSortKey, by, desc)
	return out
}

func (a *accumulator) byFile(by SortField, desc bool) []FileAnalysis {
	var out []FileAnalysis
	for _, fa := range a.files {
		if fa.analysis.Issues == 0 {
			continue
		}
		analysis := fa.analysis
		analysis.Rules = slices.Sorted(maps.Keys(fa.rules))
		out = append(out, analysis)
	}
	sortAnalyses(out, fileSortKey, by, desc)
	return out
}

// sortKey is the per-item ordering tuple shared by the grouped views.
type sortKey struct {
	alpha    string
	errors   int
	warnings int
	issues   int
}

func ruleSortKey(ra RuleAnalysis) sortKey {
	return sortKey{alpha: ra.RuleID, errors: ra.Errors, warnings: ra.Warnings, issues: ra.Issues}
}

func fileSortKey(fa FileAnalysis) sortKey {
	return sortKey{alpha: fa.Path, errors: fa.Errors, warnings: fa.Warnings, issues: fa.Issues}
}

// sortAnalyses orders items by the requested field. Alphabetic order is
// always ascending; severity order always puts the highest error counts
// first; desc only applies to count order.
func sortAnalyses[T any](items []T, key func(T) sortKey, by SortField, desc bool) {
	slices.SortFunc(items, func(left, right T) int {
		lk, rk := key(left), key(right)
		if by == SortByAlpha {
			return cmp.Compare(lk.alpha, rk.alpha)
		}
		if by == SortBySeverity {
			if c := cmp.Compare(rk.errors, lk.errors); c != 0 {
				return c
			}
			if c := cmp.Compare(rk.warnings, lk.warnings); c != 0 {
				return c
			}
			return cmp.Compare(rk.issues, lk.issues)
		}
		c := cmp.Compare(lk.issues, rk.issues)
		if desc {
			c = -c
		}
		return c
	})
}
