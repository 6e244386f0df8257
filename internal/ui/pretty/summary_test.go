package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/runner"
)

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name    string
		stats   runner.Stats
		want    []string
		notWant []string
	}{
		{
			name: "counts and severities",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       3,
				DiagnosticsTotal:      15,
				DiagnosticsBySeverity: map[string]int{"error": 5, "warning": 10},
			},
			want: []string{
				"Summary",
				"Files checked:", "10",
				"Files with issues:", "3",
				"Total issues:", "15",
				"Errors:", "5",
				"Warnings:",
			},
		},
		{
			name: "clean run",
			stats: runner.Stats{
				FilesProcessed:        5,
				DiagnosticsBySeverity: map[string]int{},
			},
			want:    []string{"Lint passed"},
			notWant: []string{"Files with issues:"},
		},
		{
			name: "errors fail the run",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       2,
				DiagnosticsTotal:      5,
				DiagnosticsBySeverity: map[string]int{"error": 2, "warning": 3},
			},
			want: []string{"Lint failed with errors"},
		},
		{
			name: "warnings alone do not fail",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       2,
				DiagnosticsTotal:      5,
				DiagnosticsBySeverity: map[string]int{"warning": 5},
			},
			want: []string{"Lint completed with warnings"},
		},
		{
			name: "modified files reported",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       2,
				FilesModified:         2,
				DiagnosticsTotal:      5,
				DiagnosticsBySeverity: map[string]int{"warning": 5},
			},
			want: []string{"Files modified:", "2"},
		},
		{
			name: "module type breakdown",
			stats: runner.Stats{
				FilesProcessed:        6,
				FilesWithIssues:       1,
				DiagnosticsTotal:      2,
				DiagnosticsBySeverity: map[string]int{"warning": 2},
				FilesByContentType: map[string]int{
					"PROCEDURE": 3,
					"CONCEPT":   2,
					"ASSEMBLY":  1,
				},
			},
			want: []string{"Modules by type:", "PROCEDURE:", "CONCEPT:", "ASSEMBLY:"},
		},
		{
			name: "info-only issues still pass",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       1,
				DiagnosticsTotal:      3,
				DiagnosticsBySeverity: map[string]int{"info": 3},
			},
			want: []string{"Info:", "3", "Lint passed"},
		},
	}

	styles := pretty.NewStyles(false)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := styles.FormatSummary(tt.stats)
			for _, want := range tt.want {
				assert.Contains(t, result, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, result, notWant)
			}
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	tests := []struct {
		name    string
		stats   runner.Stats
		want    []string
		notWant []string
	}{
		{
			name: "clean run",
			stats: runner.Stats{
				FilesProcessed:        5,
				DiagnosticsBySeverity: map[string]int{},
			},
			want: []string{"No issues found", "5 files checked"},
		},
		{
			name: "issues with fixable count",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       3,
				DiagnosticsTotal:      12,
				DiagnosticsFixable:    8,
				DiagnosticsBySeverity: map[string]int{"error": 4, "warning": 8},
			},
			want: []string{"12 issues", "4 errors", "8 warnings", "in 3 files", "8 fixable"},
		},
		{
			name: "singular forms",
			stats: runner.Stats{
				FilesProcessed:        1,
				FilesWithIssues:       1,
				DiagnosticsTotal:      1,
				DiagnosticsFixable:    1,
				DiagnosticsBySeverity: map[string]int{"warning": 1},
			},
			want: []string{"1 issue", "in 1 file", "1 fixable"},
		},
		{
			name: "fixed counts after a fix run",
			stats: runner.Stats{
				FilesProcessed:        10,
				FilesWithIssues:       3,
				FilesModified:         2,
				DiagnosticsFixed:      7,
				DiagnosticsTotal:      5,
				DiagnosticsFixable:    5,
				DiagnosticsBySeverity: map[string]int{"warning": 5},
			},
			want: []string{"5 issues", "7 fixed in 2 files"},
		},
		{
			name: "fixable omitted when zero",
			stats: runner.Stats{
				FilesProcessed:        5,
				FilesWithIssues:       2,
				DiagnosticsTotal:      3,
				DiagnosticsBySeverity: map[string]int{"error": 3},
			},
			want:    []string{"3 issues", "3 errors"},
			notWant: []string{"fixable"},
		},
	}

	styles := pretty.NewStyles(false)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := styles.FormatSummaryOneLine(tt.stats)
			for _, want := range tt.want {
				assert.Contains(t, result, want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, result, notWant)
			}
		})
	}
}
