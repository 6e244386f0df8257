package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// Runner fans multi-file linting out over a worker pool, one pipeline pass
// per file.
type Runner struct {
	Pipeline *lint.Pipeline // performs the masked single-file pass
}

// New wires a Runner around p.
func New(p *lint.Pipeline) *Runner {
	return &Runner{Pipeline: p}
}

// workItem pairs a file path with its slot in the outcome slice, so workers
// can record results without coordinating on order.
type workItem struct {
	idx  int
	path string
}

// Run discovers files under opts.Paths and processes them concurrently
// with a worker pool. Outcomes are reported in discovery order regardless
// of completion order, and cancellation yields a partial result plus an
// error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	paths, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Files: make([]FileOutcome, 0, len(paths)),
		Stats: newStats(),
	}
	res.Stats.FilesDiscovered = len(paths)
	if len(paths) == 0 {
		return res, nil
	}

	popts := lint.PipelineOptionsFromConfig(opts.Config)

	// Each worker writes only its own slots, so no locking is needed.
	out := make([]FileOutcome, len(paths))
	workCh := make(chan workItem)

	var wg sync.WaitGroup
	for range workerCount(opts.Jobs, len(paths)) {
		wg.Go(func() {
			for item := range workCh {
				if ctx.Err() != nil {
					return
				}
				out[item.idx] = r.processOne(ctx, item.path, opts.Config, popts)
			}
		})
	}

	dispatch(ctx, workCh, paths)
	wg.Wait()

	for _, fo := range out {
		// Zero-value slots belong to files never reached before cancellation.
		if fo.Path == "" {
			continue
		}
		res.accumulate(fo)
	}

	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("run cancelled: %w", err)
	}
	return res, nil
}

// dispatch feeds every path to workCh in order, stopping early on
// cancellation, and closes the channel when done.
func dispatch(ctx context.Context, workCh chan<- workItem, paths []string) {
	defer close(workCh)
	for idx, path := range paths {
		select {
		case workCh <- workItem{idx: idx, path: path}:
		case <-ctx.Done():
			return
		}
	}
}

// processOne runs the pipeline for a single file and wraps the outcome.
func (r *Runner) processOne(ctx context.Context, path string, cfg *config.Config, opts lint.PipelineOptions) FileOutcome {
	outcome := FileOutcome{Path: path}

	pr, err := r.Pipeline.ProcessFile(ctx, path, cfg, opts)
	if err != nil {
		outcome.Error = err
	} else {
		outcome.Result = pr
	}
	return outcome
}

// workerCount clamps the requested job count to the number of files,
// defaulting to the CPU count.
func workerCount(jobs, files int) int {
	if jobs > 0 {
		return min(jobs, files)
	}
	return min(runtime.NumCPU(), files)
}
