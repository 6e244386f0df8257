package cli

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/yaklabco/adoclint/internal/logging"
)

// startProfiling starts the profiles requested via --cpuprofile, --memprofile,
// and --trace. The returned stop function flushes and closes them; it must be
// called exactly once, after the lint run completes.
func startProfiling(opts *lintOptions) (func(), error) {
	var stops []func()

	stop := func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}

	if opts.cpuprofile != "" {
		f, err := os.Create(opts.cpuprofile)
		if err != nil {
			return nil, fmt.Errorf("create cpu profile %s: %w", opts.cpuprofile, err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("start cpu profile: %w", err)
		}
		stops = append(stops, func() {
			pprof.StopCPUProfile()
			f.Close()
		})
	}

	if opts.trace != "" {
		f, err := os.Create(opts.trace)
		if err != nil {
			stop()
			return nil, fmt.Errorf("create trace file %s: %w", opts.trace, err)
		}
		if err := trace.Start(f); err != nil {
			f.Close()
			stop()
			return nil, fmt.Errorf("start trace: %w", err)
		}
		stops = append(stops, func() {
			trace.Stop()
			f.Close()
		})
	}

	if opts.memprofile != "" {
		// The heap profile is written at stop time, after the run.
		path := opts.memprofile
		stops = append(stops, func() {
			f, err := os.Create(path)
			if err != nil {
				logging.Default().Error("create memory profile", "path", path, "error", err)
				return
			}
			defer f.Close()
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				logging.Default().Error("write memory profile", "path", path, "error", err)
			}
		})
	}

	return stop, nil
}
