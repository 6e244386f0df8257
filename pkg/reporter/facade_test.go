package reporter_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	"github.com/yaklabco/adoclint/pkg/reporter"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// Every reporter built by New returns the same issue count for the same
// result. The diff reporter is the exception: it counts changed files, and
// a result without pending fixes has none.
func TestReportersAgreeOnIssueCount(t *testing.T) {
	t.Parallel()

	formats := []reporter.Format{
		reporter.FormatText,
		reporter.FormatTable,
		reporter.FormatJSON,
		reporter.FormatSARIF,
		reporter.FormatSummary,
		reporter.FormatDiff,
	}

	for _, fv := range formats {
		t.Run(string(fv), func(t *testing.T) {
			want := 2
			if fv == reporter.FormatDiff {
				want = 0
			}

			buf := &bytes.Buffer{}
			rep, err := reporter.New(reporter.Options{Writer: buf, Format: fv, Color: "never"})
			require.NoError(t, err)

			count, err := rep.Report(context.Background(), sampleResult())
			require.NoError(t, err)
			assert.Equal(t, want, count, "format %s", fv)
		})
	}
}

func TestSummaryReportThroughFacade(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	rep, err := reporter.New(reporter.Options{Writer: buf, Format: reporter.FormatSummary, Color: "never"})
	require.NoError(t, err)
	require.NotNil(t, rep)

	structure := lint.Diagnostic{RuleID: "AD101", RuleName: "procedure-structure", Severity: config.SeverityError}
	blank := lint.Diagnostic{RuleID: "AD004", RuleName: "title-blank-line", Severity: config.SeverityWarning}

	res := &runner.Result{Files: []runner.FileOutcome{{
		Path: "proc_creating-backups.adoc",
		Result: &lint.PipelineResult{
			FileResult: &lint.FileResult{Diagnostics: []lint.Diagnostic{structure, blank, blank}},
		},
	}}}

	count, err := rep.Report(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	out := buf.String()
	assert.Contains(t, out, "Rules Summary")
	assert.Contains(t, out, "procedure-structure")
	assert.Contains(t, out, "title-blank-line")
	assert.Contains(t, out, "proc_creating-backups.adoc")
}
