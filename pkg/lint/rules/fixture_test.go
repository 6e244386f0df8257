package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// runRule applies a single rule to input and returns its diagnostics.
func runRule(t *testing.T, rule lint.Rule, path string, ct adoc.ContentType, input string) []lint.Diagnostic {
	t.Helper()
	doc := adoc.NewDocument(path, []byte(input))
	rc := lint.NewRuleContext(context.Background(), doc, ct, config.NewConfig(), nil)
	diags, err := rule.Apply(rc)
	require.NoError(t, err)
	return diags
}

// applyFixes applies every fix edit carried by diags to input.
func applyFixes(t *testing.T, input string, diags []lint.Diagnostic) string {
	t.Helper()
	var edits []fix.TextEdit
	for _, d := range diags {
		edits = append(edits, d.FixEdits...)
	}
	if len(edits) == 0 {
		return input
	}
	accepted, skipped, _, err := fix.PrepareEditsFiltered(edits, len(input))
	require.NoError(t, err)
	require.Empty(t, skipped, "no edit should be dropped as conflicting")
	return string(fix.ApplyEdits([]byte(input), accepted))
}

// fixUntilClean runs rule over input, applying fixes, until a pass reports
// nothing. Each pass with diagnostics must change the content.
func fixUntilClean(t *testing.T, rule lint.Rule, path string, ct adoc.ContentType, input string) string {
	t.Helper()
	content := input
	for pass := 0; pass < 10; pass++ {
		diags := runRule(t, rule, path, ct, content)
		if len(diags) == 0 {
			return content
		}
		next := applyFixes(t, content, diags)
		require.NotEqual(t, content, next, "pass %d reported diagnostics but changed nothing", pass)
		content = next
	}
	t.Fatal("content did not converge within 10 fix passes")
	return content
}
