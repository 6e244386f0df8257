package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// Fallback width when the writer is not a terminal.
const fallbackWidth = 100

// TableReporter renders diagnostics as severity-colored tables.
type TableReporter struct {
	showSummary bool
	perFile     bool
	styles      *pretty.Styles
	formatter   *pretty.TableFormatter
	bw          *bufio.Writer
}

// NewTableReporter sizes the table chrome to the writer's terminal.
func NewTableReporter(opts Options) *TableReporter {
	color := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(color)

	return &TableReporter{
		showSummary: opts.ShowSummary,
		perFile:     opts.PerFile,
		styles:      styles,
		formatter:   pretty.NewTableFormatter(styles, color, terminalWidth(opts.Writer)),
		bw:          bufio.NewWriterSize(opts.Writer, writeBufSize),
	}
}

// Report writes the table view and returns the issue count.
func (tr *TableReporter) Report(_ context.Context, res *runner.Result) (_ int, err error) {
	defer flush(tr.bw, &err)

	if res == nil || len(res.Files) == 0 {
		if tr.showSummary {
			fmt.Fprintln(tr.bw, tr.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	issues, fixable := issueTotals(res)
	if issues == 0 {
		tr.printAllPassed(res.Stats.FilesProcessed)
		return 0, nil
	}

	if tr.perFile {
		tr.reportPerFile(res, fixable > 0)
	} else {
		tr.reportCombined(res, fixable > 0)
	}
	return issues, nil
}

// printAllPassed writes the clean-run note when summaries are on.
func (tr *TableReporter) printAllPassed(checked int) {
	if !tr.showSummary {
		return
	}
	fmt.Fprintln(tr.bw)
	fmt.Fprintln(tr.bw, tr.styles.Success.Render("All files passed!"))
	fmt.Fprintln(tr.bw, tr.styles.Dim.Render(fmt.Sprintf("%d files checked", checked)))
}

// reportCombined renders one table covering every file.
func (tr *TableReporter) reportCombined(res *runner.Result, anyFixable bool) {
	fmt.Fprint(tr.bw, tr.formatter.FormatTable(res))

	if tr.showSummary {
		fmt.Fprintln(tr.bw, tr.formatter.FormatTableSummary(res.Stats, ""))
		fmt.Fprintln(tr.bw)
		tr.printFixHint(anyFixable)
	}
}

// reportPerFile renders a separate table for each file carrying issues.
func (tr *TableReporter) reportPerFile(res *runner.Result, anyFixable bool) {
	shown := 0

	for _, fo := range res.Files {
		if fo.Result == nil || fo.Result.FileResult == nil || len(fo.Result.Diagnostics) == 0 {
			continue
		}
		shown++

		fmt.Fprintln(tr.bw)
		fmt.Fprintln(tr.bw, tr.styles.FormatFileHeaderWithType(
			fo.Path, string(fo.Result.ContentType), 0))
		fmt.Fprint(tr.bw, tr.formatter.FormatFileTable(fo))
	}

	if tr.showSummary && shown > 0 {
		fmt.Fprintln(tr.bw)
		fmt.Fprintln(tr.bw, tr.styles.TableDivider.Render(strings.Repeat("═", 80)))
		fmt.Fprintln(tr.bw, tr.styles.Bold.Render("Overall Summary"))
		fmt.Fprintln(tr.bw, tr.formatter.FormatTableSummary(res.Stats, ""))
		if anyFixable {
			fmt.Fprintln(tr.bw)
		}
		tr.printFixHint(anyFixable)
	}
}

func (tr *TableReporter) printFixHint(anyFixable bool) {
	if anyFixable {
		fmt.Fprintln(tr.bw, tr.styles.Dim.Render("Run with --fix to auto-repair fixable issues"))
	}
}

// issueTotals counts all diagnostics and how many carry fixes.
func issueTotals(res *runner.Result) (issues, fixable int) {
	for _, fo := range res.Files {
		if fo.Result == nil || fo.Result.FileResult == nil {
			continue
		}
		issues += len(fo.Result.Diagnostics)
		for _, d := range fo.Result.Diagnostics {
			if len(d.FixEdits) > 0 {
				fixable++
			}
		}
	}
	return issues, fixable
}

// terminalWidth reports the width of the writer's terminal, when it is one.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return fallbackWidth
}
