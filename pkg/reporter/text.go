package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// TextReporter writes diagnostics as styled, human-readable terminal
// output. It unpacks the option fields it needs at construction.
type TextReporter struct {
	styles *pretty.Styles
	bw     *bufio.Writer

	showContext bool
	showSummary bool
	groupByFile bool
	ruleFormat  config.RuleFormat
}

// NewTextReporter builds a styled text reporter for opts.Writer.
func NewTextReporter(opts Options) *TextReporter {
	r := &TextReporter{
		showContext: opts.ShowContext,
		showSummary: opts.ShowSummary,
		groupByFile: opts.GroupByFile,
		ruleFormat:  opts.RuleFormat,
	}
	r.styles = pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	r.bw = bufio.NewWriterSize(opts.Writer, writeBufSize)
	return r
}

// Report writes result to the configured writer and counts issues.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer flush(r.bw, &err)

	if result == nil || len(result.Files) == 0 {
		r.writeNoFiles()
		return 0, nil
	}

	issues := 0
	for _, outcome := range result.Files {
		issues += r.writeFile(outcome)
	}
	r.writeSummary(result.Stats)
	return issues, nil
}

// writeNoFiles reports an empty run, respecting the summary toggle.
func (r *TextReporter) writeNoFiles() {
	if r.showSummary {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
	}
}

// writeSummary appends the one-line aggregate footer.
func (r *TextReporter) writeSummary(stats runner.Stats) {
	if r.showSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(stats))
	}
}

// writeFile emits one file's diagnostics, or its processing error, and
// returns the number of diagnostics written. With grouping enabled the
// diagnostics are preceded by a header naming the file and its resolved
// module type, and followed by a blank separator line.
func (r *TextReporter) writeFile(outcome runner.FileOutcome) int {
	if outcome.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(outcome.Path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", outcome.Error)),
		)
		return 0
	}

	if outcome.Result == nil || outcome.Result.FileResult == nil {
		return 0
	}

	diagnostics := outcome.Result.Diagnostics
	if len(diagnostics) == 0 {
		return 0
	}

	if r.groupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeaderWithType(
			outcome.Path, string(outcome.Result.ContentType), len(diagnostics)))
	}

	for i := range diagnostics {
		diag := &diagnostics[i]
		fmt.Fprint(r.bw, r.styles.FormatDiagnosticWithFormat(
			diag, r.showContext, r.sourceLine(outcome, diag.StartLine), r.ruleFormat))
	}

	if r.groupByFile {
		fmt.Fprintln(r.bw) // separator between files
	}

	return len(diagnostics)
}

// sourceLine returns the flagged line's text for context display. The
// document keeps a line index, so the lookup is O(1) per diagnostic.
func (r *TextReporter) sourceLine(outcome runner.FileOutcome, lineNum int) string {
	if !r.showContext || outcome.Result.Doc == nil {
		return ""
	}
	return string(outcome.Result.Doc.LineContent(lineNum))
}
