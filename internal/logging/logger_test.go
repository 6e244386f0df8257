package logging_test

import (
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/adoclint/internal/logging"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		level string
		want  log.Level
	}{
		{"debug", "debug", log.DebugLevel},
		{"info", "info", log.InfoLevel},
		{"warn", "warn", log.WarnLevel},
		{"warning alias", "warning", log.WarnLevel},
		{"error", "error", log.ErrorLevel},
		{"uppercase", "DEBUG", log.DebugLevel},
		{"mixed case", "Info", log.InfoLevel},
		{"unknown falls back to info", "verbose", log.InfoLevel},
		{"empty falls back to info", "", log.InfoLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lg := logging.New(tc.level)
			if lg == nil {
				t.Fatal("New() = nil")
			}
			if got := lg.GetLevel(); got != tc.want {
				t.Errorf("level = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestInteractiveLogger(t *testing.T) {
	t.Parallel()

	lg := logging.NewInteractive()
	if lg == nil {
		t.Fatal("NewInteractive() = nil")
	}
	if got := lg.GetLevel(); got != log.InfoLevel {
		t.Errorf("level = %v, want %v", got, log.InfoLevel)
	}
}

func TestDefaultLogger(t *testing.T) {
	t.Parallel()

	if logging.Default() == nil {
		t.Fatal("Default() = nil")
	}
}

func TestSwapDefault(t *testing.T) {
	// Mutates package state, so no t.Parallel.
	prev := logging.Default()
	defer logging.SetDefault(prev)

	replacement := logging.New("error")
	logging.SetDefault(replacement)

	if logging.Default() != replacement {
		t.Error("SetDefault did not replace the default logger")
	}
}

func TestLevelOverride(t *testing.T) {
	// Mutates package state, so no t.Parallel.
	prev := logging.Default()
	defer logging.SetDefault(prev)

	logging.SetDefault(logging.New("info"))

	for _, lv := range []struct {
		set  string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"error", log.ErrorLevel},
	} {
		logging.SetLevel(lv.set)
		if got := logging.Default().GetLevel(); got != lv.want {
			t.Errorf("level after SetLevel(%s) = %v", lv.set, got)
		}
	}
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	lg := logging.New("debug")
	ctx := logging.WithLogger(context.Background(), lg)

	if got := logging.FromContext(ctx); got != lg {
		t.Error("FromContext did not return the attached logger")
	}
}

func TestFromContext_Fallback(t *testing.T) {
	t.Parallel()

	if logging.FromContext(context.Background()) == nil {
		t.Error("expected default logger for bare context")
	}

	var nilCtx context.Context
	if logging.FromContext(nilCtx) == nil {
		t.Error("expected default logger for nil context")
	}
}
