// Package runner walks a documentation tree and lints its files concurrently.
package runner

import "github.com/yaklabco/adoclint/pkg/config"

// Options controls a multi-file lint run. The zero value lints the current
// working directory with the default extensions and one worker per CPU.
type Options struct {
	Paths      []string // files or directories to process; empty means "."
	WorkingDir string   // anchors relative Paths; empty means the process cwd
	Extensions []string // lowercase, with leading dot; empty selects DefaultExtensions()

	IncludeGlobs []string // narrows discovery; empty includes every extension match
	ExcludeGlobs []string // skip patterns combined from config ignores and --ignore

	FollowSymlinks bool // traverse directory symlinks during discovery
	Jobs           int  // concurrent workers; zero or negative means one per CPU

	Config *config.Config // resolved configuration for the run
}

// DefaultExtensions returns the extensions recognized as AsciiDoc sources.
func DefaultExtensions() []string {
	return []string{".adoc", ".asciidoc"}
}

func (opts Options) effectiveExtensions() []string {
	if len(opts.Extensions) > 0 {
		return opts.Extensions
	}
	return DefaultExtensions()
}

func (opts Options) effectivePaths() []string {
	if len(opts.Paths) > 0 {
		return opts.Paths
	}
	return []string{"."}
}
