// Package main is the entry point for the adoclint CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/adoclint/internal/cli"
	"github.com/yaklabco/adoclint/internal/logging"

	// Blank import wires the built-in rules into the default registry.
	_ "github.com/yaklabco/adoclint/pkg/lint/rules"
)

// Injected at build time via ldflags.
//
//nolint:gochecknoglobals // ldflags targets
var version, commit, date = "dev", "none", "unknown"

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			logging.Default().Error("internal error", "panic", r)
			code = cli.ExitInternalError
		}
	}()

	rootCmd := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})

	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitSuccess
	}

	// Lint findings are already reported by the command itself; anything
	// else gets logged here before the process exits.
	var lintErr *cli.LintIssuesError
	if !errors.As(err, &lintErr) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCodeForError(err)
}
