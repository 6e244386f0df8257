package reporter

import (
	"bufio"
	"io"
	"os"

	"github.com/yaklabco/adoclint/pkg/config"
)

const writeBufSize = 64 << 10 // bufio writer size shared by every renderer

// flush empties bw into the underlying writer, keeping the first error
// seen. Reporters defer it so short-write failures still surface.
func flush(bw *bufio.Writer, err *error) {
	if ferr := bw.Flush(); *err == nil {
		*err = ferr
	}
}

// Options configures how reports are rendered and where they go.
type Options struct {
	// Output destinations, defaulting to os.Stdout and os.Stderr.
	Writer      io.Writer
	ErrorWriter io.Writer // receives failures, never report output

	// Format selects the renderer and Color gates styling: "auto"
	// (default), "always", or "never".
	Format  Format
	Color   string
	Compact bool // minified output where the format supports it

	// Presentation toggles. The first three apply to the text renderer,
	// PerFile to the table renderer.
	ShowContext bool // print the offending source line under each diagnostic
	ShowSummary bool // append aggregate statistics after the results
	GroupByFile bool // group diagnostics under per-file headers
	PerFile     bool // render a separate table per file

	RuleFormat   config.RuleFormat   // label rules by name, by ID, or both
	SummaryOrder config.SummaryOrder // rule table or file table first in the summary

	// WorkingDir is the base for relativizing reported paths. When empty,
	// paths are reported as-is.
	WorkingDir string
}

// normalized fills the zero-value fields every reporter assumes are set.
func (o Options) normalized() Options {
	if o.Writer == nil {
		o.Writer = os.Stdout
	}
	if o.Format == "" {
		o.Format = FormatText
	}
	return o
}

// DefaultOptions returns the stdout, text-format configuration the CLI
// starts from: colored automatically, grouped by file, with source context
// and a trailing summary.
func DefaultOptions() Options {
	opts := Options{Writer: os.Stdout, ErrorWriter: os.Stderr, Format: FormatText, Color: "auto"}
	opts.ShowContext = true
	opts.ShowSummary = true
	opts.GroupByFile = true
	opts.RuleFormat = config.RuleFormatName
	opts.SummaryOrder = config.SummaryOrderRules
	return opts
}
