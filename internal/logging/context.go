package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// loggerKey carries the run-scoped logger in a context.
type loggerKey struct{}

// WithLogger attaches lg to ctx for downstream FromContext calls.
func WithLogger(ctx context.Context, lg *log.Logger) context.Context {
	parent := ctx
	if parent == nil {
		parent = context.Background()
	}
	return context.WithValue(parent, loggerKey{}, lg)
}

// FromContext returns the logger attached to ctx, or the package default
// when none is attached.
func FromContext(ctx context.Context) *log.Logger {
	var lg *log.Logger
	if ctx != nil {
		lg, _ = ctx.Value(loggerKey{}).(*log.Logger)
	}
	if lg == nil {
		lg = Default()
	}
	return lg
}
