package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// fixMark flags rows whose diagnostic carries automatic fixes.
const fixMark = "+"

// fallbackTableWidth guards against a zero terminal width from the caller.
const fallbackTableWidth = 100

// tableRow is one diagnostic flattened for tabular display.
type tableRow struct {
	path   string
	loc    string
	msg    string
	rule   string
	sev    config.Severity
	canFix bool
}

// TableFormatter renders diagnostics as styled tables.
type TableFormatter struct {
	styles *Styles
	color  bool
	width  int
}

// NewTableFormatter builds a formatter bounded by the given terminal width.
func NewTableFormatter(st *Styles, color bool, width int) *TableFormatter {
	if width <= 0 {
		width = fallbackTableWidth
	}
	return &TableFormatter{styles: st, color: color, width: width}
}

// FormatTable renders all diagnostics across files as a single table,
// followed by a legend.
func (tf *TableFormatter) FormatTable(res *runner.Result) string {
	if res == nil {
		return ""
	}

	var rows []tableRow
	for _, fo := range res.Files {
		rows = append(rows, rowsFrom(fo)...)
	}
	if len(rows) == 0 {
		return ""
	}

	tbl := tf.newTable(rows, "FILE", "LOC", "MESSAGE", "RULE", "FIX")
	for _, r := range rows {
		tbl.Row(r.path, r.loc, r.msg, r.rule, fixCell(r))
	}

	return tf.renderFitted(tbl) + "\n" + tf.legend() + "\n"
}

// FormatFileTable renders a single file's diagnostics without the FILE
// column, followed by a per-file tally.
func (tf *TableFormatter) FormatFileTable(fo runner.FileOutcome) string {
	rows := rowsFrom(fo)
	if len(rows) == 0 {
		return ""
	}

	tbl := tf.newTable(rows, "LOC", "MESSAGE", "RULE", "FIX")
	for _, r := range rows {
		tbl.Row(r.loc, r.msg, r.rule, fixCell(r))
	}

	footer := pipeJoin(tf.tallyParts(tallyOf(rows)))
	return tf.renderFitted(tbl) + "\n" + footer + "\n"
}

// newTable builds the shared scaffolding: horizontal rules only, header
// styling, and severity-tinted data rows.
func (tf *TableFormatter) newTable(rows []tableRow, headers ...string) *table.Table {
	sevs := make([]config.Severity, len(rows))
	for i, r := range rows {
		sevs[i] = r.sev
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tf.styles.TableDivider).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tf.styles.TableHeader.Padding(0, 1)
			}
			return tf.rowStyle(sevs[row]).Padding(0, 1)
		})
}

// renderFitted renders the table, re-rendering with a width cap when the
// natural layout overflows the terminal.
func (tf *TableFormatter) renderFitted(tbl *table.Table) string {
	out := tbl.Render()
	if lipgloss.Width(out) > tf.width {
		tbl.Width(tf.width)
		out = tbl.Render()
	}
	return out
}

func fixCell(r tableRow) string {
	if r.canFix {
		return fixMark
	}
	return ""
}

// rowStyle maps a severity to its tinted row style.
func (tf *TableFormatter) rowStyle(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return tf.styles.TableErrorRow
	case config.SeverityWarning:
		return tf.styles.TableWarnRow
	case config.SeverityInfo:
		return tf.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

// rowsFrom flattens one file's diagnostics into table rows.
func rowsFrom(fo runner.FileOutcome) []tableRow {
	if fo.Result == nil || fo.Result.FileResult == nil {
		return nil
	}

	out := make([]tableRow, 0, len(fo.Result.Diagnostics))
	for _, d := range fo.Result.Diagnostics {
		out = append(out, tableRow{
			path:   fo.Path,
			loc:    fmt.Sprintf("%d:%d", d.StartLine, d.StartColumn),
			msg:    d.Message,
			rule:   d.RuleID,
			sev:    d.Severity,
			canFix: len(d.FixEdits) > 0,
		})
	}
	return out
}

// tally counts rendered rows by severity plus how many carry fixes.
type tally struct {
	errs, warns, infos, fixes int
}

func tallyOf(rows []tableRow) tally {
	var tl tally
	bySev := make(map[config.Severity]int)
	for _, r := range rows {
		bySev[r.sev]++
		if r.canFix {
			tl.fixes++
		}
	}
	tl.errs = bySev[config.SeverityError]
	tl.warns = bySev[config.SeverityWarning]
	tl.infos = bySev[config.SeverityInfo]
	return tl
}

// tallyParts renders the non-zero counts, prefixed by any lead segments.
func (tf *TableFormatter) tallyParts(tl tally, lead ...string) []string {
	st := tf.styles
	parts := lead
	if tl.errs > 0 {
		parts = append(parts, st.Error.Render(fmt.Sprintf("%d errors", tl.errs)))
	}
	if tl.warns > 0 {
		parts = append(parts, st.Warning.Render(fmt.Sprintf("%d warnings", tl.warns)))
	}
	if tl.infos > 0 {
		parts = append(parts, st.Info.Render(fmt.Sprintf("%d info", tl.infos)))
	}
	if tl.fixes > 0 {
		parts = append(parts, st.TableFixable.Render(fmt.Sprintf("%d fixable", tl.fixes)))
	}
	return parts
}

// pipeJoin glues summary segments into a single indented line.
func pipeJoin(segs []string) string {
	return " " + strings.Join(segs, " | ")
}

// legend explains the fix marker and row tints.
func (tf *TableFormatter) legend() string {
	if !tf.color {
		text := fmt.Sprintf(" Legend: E = error | W = warning | %s = fixable", fixMark)
		return tf.styles.TableLegend.Render(text)
	}

	errSwatch := tf.styles.TableErrorRow.Render(" error ")
	warnSwatch := tf.styles.TableWarnRow.Render(" warning ")
	fixSwatch := tf.styles.TableFixable.Render(fixMark)

	return tf.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = error  %s = warning  %s = fixable",
		errSwatch, warnSwatch, fixSwatch))
}

// FormatTableSummary renders the overall run tally for table output.
func (tf *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	tl := tally{
		errs:  stats.DiagnosticsBySeverity["error"],
		warns: stats.DiagnosticsBySeverity["warning"],
		infos: stats.DiagnosticsBySeverity["info"],
		fixes: stats.DiagnosticsFixable,
	}

	parts := tf.tallyParts(tl, fmt.Sprintf("%d files checked", stats.FilesProcessed))
	if duration != "" {
		parts = append(parts, tf.styles.Dim.Render(duration))
	}
	return pipeJoin(parts)
}
