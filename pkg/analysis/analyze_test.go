package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// outcome builds the nested FileOutcome wrapper the runner produces for one
// linted module.
func outcome(path string, contentType adoc.ContentType, diags ...lint.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &lint.PipelineResult{
			FileResult: &lint.FileResult{
				ContentType: contentType,
				Diagnostics: diags,
			},
		},
	}
}

func diag(ruleID, ruleName string, severity config.Severity) lint.Diagnostic {
	return lint.Diagnostic{RuleID: ruleID, RuleName: ruleName, Severity: severity}
}

func fixableDiag(ruleID, ruleName string, severity config.Severity) lint.Diagnostic {
	d := diag(ruleID, ruleName, severity)
	d.FixEdits = []fix.TextEdit{{}}
	return d
}

func TestAnalyzeEmpty(t *testing.T) {
	t.Parallel()

	rep := Analyze(&runner.Result{Files: []runner.FileOutcome{}}, DefaultOptions())

	require.NotNil(t, rep)
	assert.Zero(t, rep.Totals.Issues)
	assert.Empty(t, rep.Diagnostics)
	assert.Empty(t, rep.ByFile)
	assert.Empty(t, rep.ByRule)
}

func TestAnalyzeTotals(t *testing.T) {
	t.Parallel()

	res := &runner.Result{Files: []runner.FileOutcome{
		outcome("proc_installing.adoc", adoc.TypeProcedure,
			diag("AD101", "procedure-structure", config.SeverityError),
			diag("AD101", "procedure-structure", config.SeverityError),
			diag("AD004", "title-blank-line", config.SeverityWarning),
		),
		outcome("con_overview.adoc", adoc.TypeConcept,
			diag("AD004", "title-blank-line", config.SeverityWarning),
		),
	}}

	rep := Analyze(res, DefaultOptions())

	assert.Equal(t, 4, rep.Totals.Issues)
	assert.Equal(t, 2, rep.Totals.Errors)
	assert.Equal(t, 2, rep.Totals.Warnings)
	assert.Equal(t, 2, rep.Totals.Files)
	assert.Equal(t, 2, rep.Totals.FilesWithIssues)
	assert.Equal(t, 1, rep.Totals.ContentTypes["PROCEDURE"])
	assert.Equal(t, 1, rep.Totals.ContentTypes["CONCEPT"])
}

func TestAnalyzeByRule(t *testing.T) {
	t.Parallel()

	res := &runner.Result{Files: []runner.FileOutcome{
		outcome("ref_options.adoc", adoc.TypeReference,
			diag("AD003", "single-title", config.SeverityError),
			fixableDiag("AD004", "title-blank-line", config.SeverityWarning),
		),
		outcome("ref_commands.adoc", adoc.TypeReference,
			fixableDiag("AD004", "title-blank-line", config.SeverityWarning),
		),
	}}

	rep := Analyze(res, DefaultOptions())

	require.Len(t, rep.ByRule, 2)

	// Count-descending order puts AD004 (two hits) ahead of AD003.
	first, second := rep.ByRule[0], rep.ByRule[1]
	assert.Equal(t, "AD004", first.RuleID)
	assert.Equal(t, 2, first.Issues)
	assert.True(t, first.Fixable)
	assert.ElementsMatch(t, []string{"ref_options.adoc", "ref_commands.adoc"}, first.Files)

	assert.Equal(t, "AD003", second.RuleID)
	assert.Equal(t, 1, second.Issues)
	assert.False(t, second.Fixable)
}

func TestAnalyzeByFile(t *testing.T) {
	t.Parallel()

	res := &runner.Result{Files: []runner.FileOutcome{
		outcome("con_intro.adoc", adoc.TypeConcept,
			diag("AD003", "", config.SeverityError),
		),
		outcome("proc_upgrading.adoc", adoc.TypeProcedure,
			diag("AD003", "", config.SeverityError),
			diag("AD004", "", config.SeverityWarning),
			diag("AD005", "", config.SeverityWarning),
		),
	}}

	rep := Analyze(res, DefaultOptions())

	require.Len(t, rep.ByFile, 2)

	// Count-descending order puts proc_upgrading (three hits) first.
	busy, quiet := rep.ByFile[0], rep.ByFile[1]
	assert.Equal(t, "proc_upgrading.adoc", busy.Path)
	assert.Equal(t, "PROCEDURE", busy.ContentType)
	assert.Equal(t, 3, busy.Issues)
	assert.Equal(t, 1, busy.Errors)
	assert.Equal(t, 2, busy.Warnings)

	assert.Equal(t, "con_intro.adoc", quiet.Path)
	assert.Equal(t, 1, quiet.Issues)
}

func TestAnalyzeAlphaSort(t *testing.T) {
	t.Parallel()

	res := &runner.Result{Files: []runner.FileOutcome{
		outcome("proc_zoning.adoc", adoc.TypeProcedure,
			diag("AD003", "", config.SeverityError),
		),
		outcome("proc_adding.adoc", adoc.TypeProcedure,
			diag("AD003", "", config.SeverityError),
			diag("AD003", "", config.SeverityError),
		),
	}}

	alpha := DefaultOptions()
	alpha.SortBy = SortByAlpha

	rep := Analyze(res, alpha)

	require.Len(t, rep.ByFile, 2)
	assert.Equal(t, "proc_adding.adoc", rep.ByFile[0].Path)
	assert.Equal(t, "proc_zoning.adoc", rep.ByFile[1].Path)
}

func TestAnalyzeViewToggles(t *testing.T) {
	t.Parallel()

	res := &runner.Result{Files: []runner.FileOutcome{
		outcome("proc_installing.adoc", adoc.TypeProcedure,
			diag("AD003", "", config.SeverityError),
		),
	}}

	views := DefaultOptions()
	views.IncludeDiagnostics = false
	views.IncludeByFile = false

	rep := Analyze(res, views)

	assert.Empty(t, rep.Diagnostics, "diagnostics view disabled")
	assert.Empty(t, rep.ByFile, "per-file view disabled")
	assert.NotEmpty(t, rep.ByRule, "per-rule view still enabled")
	assert.Equal(t, 1, rep.Totals.Issues, "totals ignore view toggles")
}

func TestTotalsPredicates(t *testing.T) {
	t.Parallel()

	var zero Totals
	assert.False(t, zero.HasIssues())
	assert.False(t, zero.HasErrors())

	warn := Totals{Issues: 5, Warnings: 5}
	assert.True(t, warn.HasIssues())
	assert.False(t, warn.HasErrors(), "warnings are not errors")

	hard := Totals{Issues: 3, Errors: 3}
	assert.True(t, hard.HasIssues())
	assert.True(t, hard.HasErrors())
}

func TestDefaultOptionsEnableEveryView(t *testing.T) {
	t.Parallel()

	got := DefaultOptions()

	assert.True(t, got.IncludeDiagnostics && got.IncludeByFile && got.IncludeByRule,
		"every view enabled by default: %+v", got)
	assert.Equal(t, SortByCount, got.SortBy)
	assert.True(t, got.SortDesc, "descending by default")
	assert.Equal(t, config.RuleFormatName, got.RuleFormat)
}

func TestSortFieldIsValid(t *testing.T) {
	t.Parallel()

	for _, field := range []SortField{SortByCount, SortByAlpha, SortBySeverity} {
		assert.True(t, field.IsValid(), "field %q", field)
	}
	assert.False(t, SortField("created").IsValid())
}
