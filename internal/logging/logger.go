// Package logging wraps charmbracelet/log with a process-wide default logger,
// level parsing, and the shared structured-field names used across commands.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// defaults holds the process-wide logger, guarded so SetDefault and the lazy
// first-use init cannot race.
//
//nolint:gochecknoglobals // Single process-wide logger.
var defaults struct {
	sync.Mutex
	logger *log.Logger
}

//nolint:gochecknoglobals // Static name table.
var levelNames = map[string]log.Level{
	"debug":   log.DebugLevel,
	"info":    log.InfoLevel,
	"warn":    log.WarnLevel,
	"warning": log.WarnLevel,
	"error":   log.ErrorLevel,
}

// New builds a stderr logger at the named level. Levels are matched
// case-insensitively: debug, info, warn (or warning), error.
func New(lvl string) *log.Logger {
	lg := newStderrLogger()
	lg.SetLevel(parseLevel(lvl))
	return lg
}

// NewInteractive builds a logger for user-facing command output. It writes to
// stderr at info level without timestamps, suiting commands that report
// progress rather than diagnostics.
func NewInteractive() *log.Logger {
	lg := newStderrLogger()
	lg.SetLevel(log.InfoLevel)
	return lg
}

func newStderrLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false, ReportCaller: false})
}

// parseLevel resolves a level name. Unknown names fall back to info.
func parseLevel(name string) log.Level {
	if lvl, ok := levelNames[strings.ToLower(name)]; ok {
		return lvl
	}
	return log.InfoLevel
}

// Default returns the process-wide logger, creating it on first use.
func Default() *log.Logger {
	defaults.Lock()
	defer defaults.Unlock()
	if defaults.logger == nil {
		defaults.logger = New("info")
	}
	return defaults.logger
}

// SetDefault replaces the process-wide logger.
func SetDefault(lg *log.Logger) {
	defaults.Lock()
	defer defaults.Unlock()
	defaults.logger = lg
}

// SetLevel adjusts the level of the process-wide logger.
func SetLevel(name string) {
	Default().SetLevel(parseLevel(name))
}
