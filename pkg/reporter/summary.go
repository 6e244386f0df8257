package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/analysis"
	"github.com/yaklabco/adoclint/pkg/config"
)

// Cell caps keep summary tables stable on narrow terminals.
const (
	maxRuleNameLength = 28
	maxFilePathLength = 48
)

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	order  config.SummaryOrder
	styles *pretty.Styles // zero value renders plain text
	w      io.Writer
}

// NewSummaryRenderer builds a renderer honoring the order and color options.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		order:  opts.SummaryOrder,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		w:      opts.Writer,
	}
}

// Render writes the rule and file tables for rep, then a totals line.
func (sr *SummaryRenderer) Render(_ context.Context, rep *analysis.Report) error {
	if rep.Totals.Issues == 0 {
		fmt.Fprintln(sr.w, sr.styles.Success.Render("No issues found"))
		return nil
	}

	if sr.order == config.SummaryOrderFiles {
		sr.renderFileTable(rep.ByFile)
		fmt.Fprintln(sr.w)
		sr.renderRuleTable(rep.ByRule)
	} else {
		sr.renderRuleTable(rep.ByRule)
		fmt.Fprintln(sr.w)
		sr.renderFileTable(rep.ByFile)
	}

	fmt.Fprintln(sr.w)
	sr.renderTotals(rep.Totals)

	return nil
}

func (sr *SummaryRenderer) renderRuleTable(byRule []analysis.RuleAnalysis) {
	if len(byRule) == 0 {
		return
	}

	tbl := sr.summaryTable(func(row, col int) lipgloss.Style {
		if col == 4 {
			return sr.styles.Success
		}
		return sr.severityStyle(byRule[row].Errors, byRule[row].Warnings)
	}, "Rule", "Count", "Errors", "Warnings", "Fixable")

	for _, ra := range byRule {
		name := ra.RuleName
		if name == "" {
			name = ra.RuleID
		}
		fixable := ""
		if ra.Fixable {
			fixable = "✓"
		}
		tbl.Row(truncateEnd(name, maxRuleNameLength),
			strconv.Itoa(ra.Issues),
			strconv.Itoa(ra.Errors),
			strconv.Itoa(ra.Warnings),
			fixable)
	}

	fmt.Fprintln(sr.w, sr.styles.Bold.Render("Rules Summary"))
	fmt.Fprintln(sr.w, tbl.Render())
}

func (sr *SummaryRenderer) renderFileTable(byFile []analysis.FileAnalysis) {
	if len(byFile) == 0 {
		return
	}

	tbl := sr.summaryTable(func(row, col int) lipgloss.Style {
		if col == 1 {
			return sr.styles.ContentType
		}
		return sr.severityStyle(byFile[row].Errors, byFile[row].Warnings)
	}, "File", "Type", "Count", "Errors", "Warnings")

	for _, fa := range byFile {
		tbl.Row(truncateStart(fa.Path, maxFilePathLength),
			fa.ContentType,
			strconv.Itoa(fa.Issues),
			strconv.Itoa(fa.Errors),
			strconv.Itoa(fa.Warnings))
	}

	fmt.Fprintln(sr.w, sr.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(sr.w, tbl.Render())
}

// summaryTable builds the shared table chrome; cellStyle styles data cells
// and receives zero-based row indices.
func (sr *SummaryRenderer) summaryTable(cellStyle func(row, col int) lipgloss.Style, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(sr.styles.TableDivider).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return sr.styles.TableHeader.Padding(0, 1)
			}
			return cellStyle(row, col).Padding(0, 1)
		})
}

func (sr *SummaryRenderer) severityStyle(errors, warnings int) lipgloss.Style {
	switch {
	case errors > 0:
		return sr.styles.TableErrorRow
	case warnings > 0:
		return sr.styles.TableWarnRow
	default:
		return lipgloss.NewStyle()
	}
}

func (sr *SummaryRenderer) renderTotals(tot analysis.Totals) {
	head := fmt.Sprintf("%d %s", tot.Issues, plural(tot.Issues, "issue", "issues"))

	var parts []string
	if tot.Errors > 0 {
		parts = append(parts, sr.styles.Error.Render(fmt.Sprintf("%d errors", tot.Errors)))
	}
	if tot.Warnings > 0 {
		parts = append(parts, sr.styles.Warning.Render(fmt.Sprintf("%d warnings", tot.Warnings)))
	}
	if len(parts) > 0 {
		head += " (" + strings.Join(parts, ", ") + ")"
	}

	fmt.Fprintf(sr.w, "%s%s in %d %s\n",
		sr.styles.Bold.Render("Total: "), head,
		tot.FilesWithIssues, plural(tot.FilesWithIssues, "file", "files"))
}

// truncateEnd caps s, marking the cut with an ellipsis.
func truncateEnd(s string, limit int) string {
	if len(s) > limit {
		s = s[:limit] + "…"
	}
	return s
}

// truncateStart keeps the tail of s, preserving the file name part of long
// paths.
func truncateStart(s string, limit int) string {
	if len(s) > limit {
		s = "…" + s[len(s)-limit+1:]
	}
	return s
}
