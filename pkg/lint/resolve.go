package lint

import (
	"slices"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
)

// ResolvedRule is a rule together with the configuration that applies to it
// for the current run.
type ResolvedRule struct {
	Rule     Rule               // underlying implementation
	Enabled  bool               // whether the rule runs at all
	Severity config.Severity    // severity for diagnostics this rule emits
	AutoFix  bool               // whether the rule's fixes are applied
	Config   *config.RuleConfig // rule-specific settings, nil when none were given
}

// ResolveRules resolves every registered rule against conf and returns the
// enabled ones.
func ResolveRules(reg *Registry, conf *config.Config) []ResolvedRule {
	var enabled []ResolvedRule
	for _, r := range reg.Rules() {
		if res := resolveRule(r, conf); res.Enabled {
			enabled = append(enabled, res)
		}
	}
	return enabled
}

// FilterByContentType keeps the rules whose content-type gate admits ct.
// Rules with an empty gate run for every module type; gated rules are
// skipped when the document's type is not in their list, so documents
// without a recognized type run only the ungated rules.
func FilterByContentType(resolved []ResolvedRule, ct adoc.ContentType) []ResolvedRule {
	var kept []ResolvedRule
	for _, res := range resolved {
		types := res.Rule.ContentTypes()
		if len(types) == 0 || slices.Contains(types, ct) {
			kept = append(kept, res)
		}
	}
	return kept
}

// resolveRule layers configuration over a rule's defaults. Precedence, lowest
// to highest: rule defaults, the --enable/--disable lists, then per-rule
// settings from the config file. A --fix-rules list replaces the fix
// eligibility outright, and nothing fixes unless the global fix switch is on.
func resolveRule(r Rule, conf *config.Config) ResolvedRule {
	res := ResolvedRule{
		Rule:     r,
		Enabled:  r.DefaultEnabled(),
		Severity: r.DefaultSeverity(),
		AutoFix:  r.CanFix(),
	}
	if conf == nil {
		return res
	}

	if slices.Contains(conf.EnableRules, r.ID()) {
		res.Enabled = true
	}
	if slices.Contains(conf.DisableRules, r.ID()) {
		res.Enabled = false
	}

	if rc, ok := conf.Rules[r.ID()]; ok {
		res.Config = &rc
		if rc.Enabled != nil {
			res.Enabled = *rc.Enabled
		}
		if rc.Severity != nil {
			res.Severity = config.Severity(*rc.Severity)
		}
		if rc.AutoFix != nil {
			res.AutoFix = *rc.AutoFix && r.CanFix()
		}
	}

	if len(conf.FixRules) > 0 {
		res.AutoFix = r.CanFix() && slices.Contains(conf.FixRules, r.ID())
	}
	if !conf.Fix {
		res.AutoFix = false
	}

	return res
}
