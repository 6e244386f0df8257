package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/adoclint/pkg/runner"
)

// Process exit codes. Codes above 2 follow BSD sysexits.h so scripts can
// tell a bad invocation from a failed run.
const (
	ExitSuccess       = 0
	ExitLintErrors    = 1  // diagnostics at error severity, or an uncategorized failure
	ExitLintWarnings  = 2  // diagnostics at warning severity under --strict
	ExitInvalidUsage  = 64 // EX_USAGE: bad flags or arguments
	ExitConfigError   = 65 // EX_DATAERR: unreadable or invalid configuration
	ExitInternalError = 70 // EX_SOFTWARE: panic or other internal failure
	ExitIOError       = 74 // EX_IOERR: file system failure outside the lint loop
)

// ErrUsage marks command-line usage mistakes so the process exits with
// ExitInvalidUsage instead of the generic failure code.
var ErrUsage = errors.New("invalid usage")

// ErrConfig marks configuration loading failures for ExitConfigError.
var ErrConfig = errors.New("failed to load configuration")

// LintIssuesError reports that a lint run found issues. It unwraps to
// ErrLintIssuesFound and carries the exit code derived from the run:
// ExitLintErrors, or ExitLintWarnings under --strict.
type LintIssuesError struct {
	Code int
}

func (e *LintIssuesError) Error() string { return ErrLintIssuesFound.Error() }

func (e *LintIssuesError) Unwrap() error { return ErrLintIssuesFound }

// ExitCodeFromResult maps a finished run to its exit code. Warnings only
// raise the code in strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	bySeverity := result.Stats.DiagnosticsBySeverity
	switch {
	case bySeverity["error"] > 0:
		return ExitLintErrors
	case strict && bySeverity["warning"] > 0:
		return ExitLintWarnings
	default:
		return ExitSuccess
	}
}

// ExitCodeForError classifies a fatal error from the command tree into an
// exit code. Lint findings carry their own code; everything else falls back
// to the generic failure code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var lintErr *LintIssuesError
	var pathErr *fs.PathError
	switch {
	case errors.As(err, &lintErr):
		return lintErr.Code
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.As(err, &pathErr):
		return ExitIOError
	default:
		return ExitLintErrors
	}
}
