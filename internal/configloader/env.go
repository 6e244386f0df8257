package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/adoclint/pkg/config"
)

// envVarPrefix is the prefix for all adoclint environment variables.
const envVarPrefix = "ADOCLINT_"

// envVar binds one ADOCLINT_* variable to the config field it overrides.
// The usage string doubles as user-facing documentation, see EnvVarDocs.
type envVar struct {
	usage string
	apply func(cfg *config.Config, value string) error
}

// envVars maps environment variable names (without prefix) to their bindings.
//
//nolint:gochecknoglobals // Static binding table.
var envVars = map[string]envVar{
	"CONTENT_TYPE": {
		usage: "Force module content type: procedure, concept, reference, or assembly",
		apply: envString(func(cfg *config.Config, v string) { cfg.ContentType = v }),
	},
	"SEVERITY_DEFAULT": {
		usage: "Default severity: error, warning, or info",
		apply: envString(func(cfg *config.Config, v string) { cfg.SeverityDefault = v }),
	},
	"FIX": {
		usage: "Enable auto-fix: true or false",
		apply: envBool(func(cfg *config.Config, v bool) { cfg.Fix = v }),
	},
	"DRY_RUN": {
		usage: "Dry-run mode: true or false",
		apply: envBool(func(cfg *config.Config, v bool) { cfg.DryRun = v }),
	},
	"JOBS": {
		usage: "Number of parallel workers (0 = auto)",
		apply: envInt(func(cfg *config.Config, v int) { cfg.Jobs = v }),
	},
	"FORMAT": {
		usage: "Output format: text, table, json, sarif, diff, or summary",
		apply: envString(func(cfg *config.Config, v string) { cfg.Format = config.OutputFormat(v) }),
	},
	"RULE_FORMAT": {
		usage: "Rule identifier format: name, id, or combined",
		apply: envString(func(cfg *config.Config, v string) { cfg.RuleFormat = config.RuleFormat(v) }),
	},
	"BACKUPS_ENABLED": {
		usage: "Enable backups when fixing: true or false",
		apply: envBool(func(cfg *config.Config, v bool) { cfg.Backups.Enabled = v }),
	},
	"BACKUPS_MODE": {
		usage: "Backup mode: sidecar or none",
		apply: envString(func(cfg *config.Config, v string) { cfg.Backups.Mode = v }),
	},
	"IGNORE": {
		usage: "Comma-separated list of ignore patterns",
		apply: envSlice(func(cfg *config.Config, v []string) { cfg.Ignore = v }),
	},
	"NO_BACKUPS": {
		usage: "Disable backups: true or false",
		apply: envBool(func(cfg *config.Config, v bool) { cfg.NoBackups = v }),
	},
}

// ApplyEnv overlays ADOCLINT_* environment variables onto cfg (for
// example ADOCLINT_FORMAT). Unset and empty variables are skipped. Each
// variable targets a distinct field, so application order does not matter.
func ApplyEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for name, binding := range envVars {
		if value := os.Getenv(envVarPrefix + name); value != "" {
			if err := binding.apply(cfg, value); err != nil {
				return fmt.Errorf("%s%s: %w", envVarPrefix, name, err)
			}
		}
	}

	return nil
}

func envString(assign func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		assign(cfg, value)
		return nil
	}
}

func envBool(assign func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		assign(cfg, on)
		return nil
	}
}

func envInt(assign func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		assign(cfg, n)
		return nil
	}
}

func envSlice(assign func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		assign(cfg, splitCommaList(value))
		return nil
	}
}

// splitCommaList parses a comma-separated string into a slice, trimming
// whitespace and dropping empty elements.
func splitCommaList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EnvVarDocs returns the supported environment variables with their
// usage strings, keyed by full variable name.
func EnvVarDocs() map[string]string {
	docs := make(map[string]string, len(envVars))
	for name, binding := range envVars {
		docs[envVarPrefix+name] = binding.usage
	}
	return docs
}
