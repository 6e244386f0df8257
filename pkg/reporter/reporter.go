// Package reporter formats lint results for terminals, editors, and CI.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/adoclint/pkg/analysis"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// A Reporter writes lint results in one of the supported output formats.
type Reporter interface {
	// Report writes formatted output for the given result. It returns the
	// number of issues reported and any write error.
	Report(ctx context.Context, res *runner.Result) (int, error)
}

// New creates a Reporter for the requested format. An empty format selects
// text output; the writer defaults to stdout.
func New(opts Options) (Reporter, error) {
	opts = opts.normalized()

	var rep Reporter
	switch opts.Format {
	case FormatText:
		rep = NewTextReporter(opts)
	case FormatTable:
		rep = NewTableReporter(opts)
	case FormatJSON:
		rep = NewJSONReporter(opts)
	case FormatSARIF:
		rep = NewSARIFReporter(opts)
	case FormatDiff:
		rep = NewDiffReporter(opts)
	case FormatSummary:
		rep = wrapRenderer(NewSummaryRenderer(opts), opts)
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return rep, nil
}

// Renderer turns an analysis.Report into formatted output. Implementations
// hold presentation state only; aggregation happens in pkg/analysis.
type Renderer interface {
	Render(ctx context.Context, rep *analysis.Report) error
}

// renderFacade adapts a Renderer to the Reporter interface by running the
// full analysis pass over the result before rendering.
type renderFacade struct {
	renderer Renderer
	opts     analysis.Options
}

var _ Reporter = (*renderFacade)(nil)

func wrapRenderer(renderer Renderer, opts Options) *renderFacade {
	return &renderFacade{renderer: renderer, opts: analysisOptions(opts)}
}

// analysisOptions derives the analysis pass configuration a renderer needs.
func analysisOptions(opts Options) analysis.Options {
	aopts := analysis.DefaultOptions()
	aopts.RuleFormat = opts.RuleFormat
	aopts.WorkingDir = opts.WorkingDir
	return aopts
}

func (rf *renderFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	rpt := analysis.Analyze(result, rf.opts)
	if err := rf.renderer.Render(ctx, rpt); err != nil {
		return 0, fmt.Errorf("render report: %w", err)
	}
	return rpt.Totals.Issues, nil
}
