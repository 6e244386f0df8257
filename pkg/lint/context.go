package lint

import (
	"context"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
)

// RuleContext carries everything a rule needs for one Apply call. A fresh
// one is built per rule invocation; Ctx rides on the struct so rules can
// poll Cancelled between line scans while the Rule interface stays a
// single Apply method.
type RuleContext struct {
	Ctx context.Context // cancellation and timeouts

	// Doc is the document under lint; ContentType is re-derived for it
	// on every pass, never carried over from a previous one.
	Doc         *adoc.Document
	ContentType adoc.ContentType

	Config     *config.Config     // resolved configuration
	RuleConfig *config.RuleConfig // rule-specific configuration, may be nil

	Builder  *fix.EditBuilder // accumulates text edits for auto-fix
	Registry *Registry        // rule registry, for name lookups
}

// NewRuleContext creates a RuleContext for the given document and configuration.
func NewRuleContext(ctx context.Context, doc *adoc.Document, contentType adoc.ContentType,
	cfg *config.Config, ruleCfg *config.RuleConfig,
) *RuleContext {
	return &RuleContext{
		Ctx:         ctx,
		Doc:         doc,
		ContentType: contentType,
		Config:      cfg,
		RuleConfig:  ruleCfg,
		Builder:     fix.NewEditBuilder(),
	}
}

// Cancelled reports whether the run's context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

// options returns the rule's option map, which may be nil.
func (rc *RuleContext) options() map[string]any {
	if rc.RuleConfig == nil {
		return nil
	}
	return rc.RuleConfig.Options
}

// Option returns the raw value stored under key, or the default when unset.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if v, ok := rc.options()[key]; ok {
		return v
	}
	return defaultValue
}

// optionAs looks up a rule option and asserts it to T. The second return
// is false when the option is absent or holds a different type.
func optionAs[T any](rc *RuleContext, key string) (T, bool) {
	v, ok := rc.options()[key]
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// OptionInt returns the integer value stored under key, or the default.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	if i, ok := optionAs[int](rc, key); ok {
		return i
	}
	// JSON configs decode untyped numbers as float64.
	if f, ok := optionAs[float64](rc, key); ok {
		return int(f)
	}
	return defaultValue
}

// OptionString returns the string value stored under key, or the default.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	if got, ok := optionAs[string](rc, key); ok {
		return got
	}
	return defaultValue
}

// OptionBool returns the boolean value stored under key, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	if got, ok := optionAs[bool](rc, key); ok {
		return got
	}
	return defaultValue
}

// OptionStringSlice returns the string list stored under key, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	if got, ok := optionAs[[]string](rc, key); ok {
		return got
	}
	// YAML and JSON decoders hand lists over as []any.
	if items, ok := optionAs[[]any](rc, key); ok {
		out := make([]string, 0, len(items))
		for _, it := range items {
			if s, ok := it.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
