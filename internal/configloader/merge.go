package configloader

import (
	"maps"

	"github.com/yaklabco/adoclint/pkg/config"
)

// merge layers hi on top of lo. Scalars win when non-zero, rule maps merge
// per key, and slices replace wholesale when non-nil. Boolean fields share
// the zero-value caveat: an overlay can switch them on but never back off.
func merge(lo, hi *config.Config) *config.Config {
	if lo == nil {
		return hi
	}
	if hi == nil {
		return lo
	}

	out := *lo

	setIfNonZero(&out.ContentType, hi.ContentType)
	setIfNonZero(&out.SeverityDefault, hi.SeverityDefault)
	setIfNonZero(&out.Format, hi.Format)
	setIfNonZero(&out.RuleFormat, hi.RuleFormat)
	setIfNonZero(&out.Jobs, hi.Jobs)

	setIfNonZero(&out.Fix, hi.Fix)
	setIfNonZero(&out.DryRun, hi.DryRun)
	setIfNonZero(&out.NoBackups, hi.NoBackups)

	setIfNonZero(&out.Backups.Mode, hi.Backups.Mode)
	setIfNonZero(&out.Backups.Enabled, hi.Backups.Enabled)

	out.Rules = mergeRules(lo.Rules, hi.Rules)

	if hi.Ignore != nil {
		out.Ignore = hi.Ignore
	}
	if hi.EnableRules != nil {
		out.EnableRules = hi.EnableRules
	}
	if hi.DisableRules != nil {
		out.DisableRules = hi.DisableRules
	}
	if hi.FixRules != nil {
		out.FixRules = hi.FixRules
	}

	return &out
}

func setIfNonZero[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// mergeRules merges rule maps per key, with hi's entries winning.
// Neither input map is mutated.
func mergeRules(lo, hi map[string]config.RuleConfig) map[string]config.RuleConfig {
	if lo == nil {
		return maps.Clone(hi)
	}
	if hi == nil {
		return maps.Clone(lo)
	}

	out := make(map[string]config.RuleConfig, len(lo)+len(hi))
	maps.Copy(out, lo)
	for id, rc := range hi {
		if prev, ok := out[id]; ok {
			rc = mergeRuleConfig(prev, rc)
		}
		out[id] = rc
	}
	return out
}

func mergeRuleConfig(lo, hi config.RuleConfig) config.RuleConfig {
	out := config.RuleConfig{
		Enabled:  pickPtr(lo.Enabled, hi.Enabled),
		Severity: pickPtr(lo.Severity, hi.Severity),
		AutoFix:  pickPtr(lo.AutoFix, hi.AutoFix),
		Options:  lo.Options,
	}
	if hi.Options != nil {
		out.Options = make(map[string]any, len(lo.Options)+len(hi.Options))
		maps.Copy(out.Options, lo.Options)
		maps.Copy(out.Options, hi.Options)
	}
	return out
}

func pickPtr[T any](lo, hi *T) *T {
	if hi != nil {
		return hi
	}
	return lo
}
