// Package configloader discovers, merges, and validates configuration.
// Discovery follows the XDG layout, merging runs lowest precedence first,
// and environment variables slot in between files and CLI flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// Options controls where configuration is looked for and which layers
// take part in the merge.
type Options struct {
	WorkingDir string // project config search root, empty means os.Getwd
	ConfigFile string // --config value, stands in for project discovery

	// Skip* drop individual layers from the merge.
	SkipSystemConfig  bool
	SkipUserConfig    bool
	SkipProjectConfig bool // also skips the upward search
	SkipEnv           bool

	Overrides *config.Config // flag-level settings, the highest precedence layer
}

// Result is the merged configuration plus how it came to be.
type Result struct {
	Config     *config.Config // final merged configuration
	Paths      *ConfigPaths   // everything discovery found
	LoadedFrom []string       // files actually read, lowest precedence first
	Warnings   []string       // non-fatal issues hit along the way
}

// configLayer is one file source in the precedence chain.
type configLayer struct {
	path  string
	label string
}

// layers returns the config files to load, lowest precedence first.
func (opts Options) layers(paths *ConfigPaths) []configLayer {
	var out []configLayer
	if !opts.SkipSystemConfig && paths.System != "" {
		out = append(out, configLayer{paths.System, "system"})
	}
	if !opts.SkipUserConfig && paths.User != "" {
		out = append(out, configLayer{paths.User, "user"})
	}
	// An explicit --config file stands in for the project config rather
	// than stacking on top of it.
	if opts.ConfigFile != "" {
		out = append(out, configLayer{opts.ConfigFile, "explicit"})
	} else if !opts.SkipProjectConfig && paths.Project != "" {
		out = append(out, configLayer{paths.Project, "project"})
	}
	return out
}

// Load builds the effective configuration by folding every source into one.
// From highest precedence to lowest:
//  1. flag-level settings (opts.Overrides)
//  2. environment variables (ADOCLINT_*)
//  3. the --config file (opts.ConfigFile), or else the project config
//     found by searching upward for .adoclint.yml
//  4. user config ($XDG_CONFIG_HOME/adoclint/config.yaml)
//  5. system config (/etc/adoclint/config.yaml)
//  6. built-in defaults
func Load(ctx context.Context, opts Options) (*Result, error) {
	wd := opts.WorkingDir
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, wd)
	if err != nil {
		return nil, fmt.Errorf("discover config paths: %w", err)
	}
	paths.Explicit = opts.ConfigFile

	res := &Result{Paths: paths}
	merged := config.NewConfig()

	for _, layer := range opts.layers(paths) {
		layerCfg, err := readConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.label, err)
		}
		// Fail on a bad file even if a higher-precedence layer would
		// override the offending value; the error names the file.
		if v := ValidateWithFile(layerCfg, layer.path); !v.Valid() {
			return nil, &v.Errors[0]
		}
		merged = merge(merged, layerCfg)
		res.LoadedFrom = append(res.LoadedFrom, layer.path)
	}

	if !opts.SkipEnv {
		if err := ApplyEnv(merged); err != nil {
			return nil, fmt.Errorf("apply environment: %w", err)
		}
	}

	if opts.Overrides != nil {
		merged = merge(merged, opts.Overrides)
	}

	// Rule keys may be names ("procedure-structure") or group tags
	// ("metadata"); fold them to canonical IDs before final validation.
	canonicalizeRuleKeys(merged, lint.DefaultRegistry, res)

	check := Validate(merged)
	if !check.Valid() {
		return nil, &check.Errors[0]
	}
	for _, w := range check.Warnings {
		res.Warnings = append(res.Warnings, w.Message)
	}

	res.Config = merged
	return res, nil
}

// readConfigFile parses one configuration file, YAML or JSON/JSONC. The
// format is chosen by file extension; YAML is the default.
func readConfigFile(path string) (*config.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var fileCfg config.Config
	if IsJSONConfig(path) {
		if err := parseJSONC(raw, &fileCfg); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	}

	if fileCfg.Rules == nil {
		fileCfg.Rules = make(map[string]config.RuleConfig)
	}

	return &fileCfg, nil
}

// canonicalizeRuleKeys folds rule names and tags to canonical IDs in the
// config. Users may configure rules by name ("procedure-structure"), by
// group tag ("metadata"), or by ID ("AD101"). Tag entries expand to every
// rule carrying the tag; explicit rule entries win over expanded ones.
// A rule configured twice under different keys warns and keeps the last
// value encountered.
func canonicalizeRuleKeys(c *config.Config, registry *lint.Registry, res *Result) {
	if len(c.Rules) == 0 {
		return
	}

	out := make(map[string]config.RuleConfig, len(c.Rules))

	// Expand tag keys first so explicit per-rule entries overwrite them below.
	tagKeys := make(map[string]bool)
	for key, rc := range c.Rules {
		if _, _, found := registry.Resolve(key); found {
			continue
		}
		group := registry.RulesByTag(key)
		if len(group) == 0 {
			continue
		}
		tagKeys[key] = true
		for _, rule := range group {
			out[rule.ID()] = rc
		}
	}

	seen := make(map[string]string) // canonical ID -> original key

	for key, rc := range c.Rules {
		if tagKeys[key] {
			continue
		}

		id, _, known := registry.Resolve(key)
		if !known {
			// Unknown rule. Keep it as-is; validation warns about it later.
			out[key] = rc
			continue
		}

		if first, ok := seen[id]; ok {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both name %s; keeping the last value",
					first, key, id))
		}

		seen[id] = key
		out[id] = rc
	}

	c.Rules = out
}
