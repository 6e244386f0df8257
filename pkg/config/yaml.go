package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration with two-space indentation.
func (cfg *Config) ToYAML() ([]byte, error) {
	if cfg == nil {
		return nil, nil
	}

	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("flush yaml encoder: %w", err)
	}

	return out.Bytes(), nil
}

// FromYAML decodes a configuration and normalizes its rule map.
func FromYAML(raw []byte) (*Config, error) {
	var out Config
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if out.Rules == nil {
		out.Rules = map[string]RuleConfig{}
	}
	return &out, nil
}

// Clone creates a deep copy of the configuration, including the CLI-only
// fields that never serialize to YAML.
func (cfg *Config) Clone() *Config {
	if cfg == nil {
		return nil
	}

	out := *cfg // the value copy covers every scalar field
	out.Ignore = slices.Clone(cfg.Ignore)
	out.EnableRules = slices.Clone(cfg.EnableRules)
	out.DisableRules = slices.Clone(cfg.DisableRules)
	out.FixRules = slices.Clone(cfg.FixRules)

	if cfg.Rules != nil {
		out.Rules = make(map[string]RuleConfig, len(cfg.Rules))
		for id, rc := range cfg.Rules {
			out.Rules[id] = rc.clone()
		}
	}
	return &out
}

// clone deep-copies a RuleConfig. Values nested inside Options are copied
// shallowly.
func (r RuleConfig) clone() RuleConfig {
	out := RuleConfig{
		Enabled:  clonePtr(r.Enabled),
		Severity: clonePtr(r.Severity),
		AutoFix:  clonePtr(r.AutoFix),
	}
	if r.Options != nil {
		out.Options = make(map[string]any, len(r.Options))
		maps.Copy(out.Options, r.Options)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
