package pretty

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/adoclint/pkg/runner"
)

const (
	dividerWidth = 40
	labelWidth   = 21
)

// severityBucket ties a severity key to its display forms and style.
type severityBucket struct {
	key   string
	noun  string // one-line form, e.g. "4 errors"
	label string // block form, e.g. "Errors:"
	style lipgloss.Style
}

// severityBuckets returns the severity buckets in display order.
func (s *Styles) severityBuckets() []severityBucket {
	return []severityBucket{
		{key: "error", noun: "errors", label: "Errors:", style: s.Error},
		{key: "warning", noun: "warnings", label: "Warnings:", style: s.Warning},
		{key: "info", noun: "info", label: "Info:", style: s.Info},
	}
}

// pluralWord returns word with an "s" tacked on unless n is exactly one.
func pluralWord(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// padLabel pads a summary label so values line up in one column.
func padLabel(label string) string {
	if len(label) >= labelWidth {
		return label + " "
	}
	return label + strings.Repeat(" ", labelWidth-len(label))
}

// row writes one aligned "label value" summary line.
func row(sb *strings.Builder, label, value string) {
	sb.WriteString(padLabel(label))
	sb.WriteString(value)
	sb.WriteString("\n")
}

// fixedClause renders the "N fixed in M files" fragment shared by both
// summary forms.
func (s *Styles) fixedClause(rs runner.Stats) string {
	return s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
		rs.DiagnosticsFixed, rs.FilesModified, pluralWord(rs.FilesModified, "file")))
}

// FormatSummaryOneLine renders run statistics on a single line, in the
// shape "12 issues (8 errors, 4 warnings) in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(rs runner.Stats) string {
	if rs.DiagnosticsTotal == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", rs.FilesProcessed))
		// A fix run can clear every issue; still report what it did.
		if rs.DiagnosticsFixed > 0 {
			msg += ", " + s.fixedClause(rs)
		}
		return msg + "\n"
	}

	head := fmt.Sprintf("%d %s", rs.DiagnosticsTotal, pluralWord(rs.DiagnosticsTotal, "issue"))

	var sevParts []string
	for _, bucket := range s.severityBuckets() {
		if n := rs.DiagnosticsBySeverity[bucket.key]; n > 0 {
			sevParts = append(sevParts, bucket.style.Render(fmt.Sprintf("%d %s", n, bucket.noun)))
		}
	}
	if len(sevParts) > 0 {
		head += fmt.Sprintf(" (%s)", strings.Join(sevParts, ", "))
	}

	parts := []string{
		head,
		fmt.Sprintf("in %d %s", rs.FilesWithIssues, pluralWord(rs.FilesWithIssues, "file")),
	}
	if rs.DiagnosticsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", rs.DiagnosticsFixable)))
	}
	if rs.DiagnosticsFixed > 0 {
		parts = append(parts, s.fixedClause(rs))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary renders the multi-line summary block.
func (s *Styles) FormatSummary(rs runner.Stats) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(s.SummaryTitle.Render("Summary"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", dividerWidth))
	sb.WriteString("\n")

	row(&sb, "  Files checked:", s.SummaryValue.Render(strconv.Itoa(rs.FilesProcessed)))
	if rs.FilesWithIssues > 0 {
		row(&sb, "  Files with issues:", s.Failure.Render(strconv.Itoa(rs.FilesWithIssues)))
	}
	if rs.FilesModified > 0 {
		row(&sb, "  Files modified:", s.Success.Render(strconv.Itoa(rs.FilesModified)))
	}

	if len(rs.FilesByContentType) > 0 {
		sb.WriteString("\n")
		sb.WriteString("  Modules by type:\n")
		types := make([]string, 0, len(rs.FilesByContentType))
		for ct := range rs.FilesByContentType {
			types = append(types, ct)
		}
		slices.Sort(types)
		for _, ct := range types {
			row(&sb, "    "+ct+":", s.ContentType.Render(strconv.Itoa(rs.FilesByContentType[ct])))
		}
	}

	sb.WriteString("\n")

	row(&sb, "  Total issues:", s.SummaryValue.Render(strconv.Itoa(rs.DiagnosticsTotal)))
	for _, bucket := range s.severityBuckets() {
		if n := rs.DiagnosticsBySeverity[bucket.key]; n > 0 {
			row(&sb, "    "+bucket.label, bucket.style.Render(strconv.Itoa(n)))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(s.verdict(rs))
	sb.WriteString("\n")

	return sb.String()
}

// verdict summarizes the run's worst severity as a closing line.
func (s *Styles) verdict(rs runner.Stats) string {
	if rs.DiagnosticsBySeverity["error"] > 0 {
		return s.Failure.Render("Lint failed with errors")
	}
	if rs.DiagnosticsBySeverity["warning"] > 0 {
		return s.Warning.Render("Lint completed with warnings")
	}
	return s.Success.Render("Lint passed")
}
