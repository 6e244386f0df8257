package lint

import (
	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
)

// BaseRule supplies the metadata half of the Rule interface. Concrete rules
// embed it and implement Apply, overriding the default methods only when
// their defaults differ.
type BaseRule struct {
	id      string
	name    string
	desc    string
	tags    []string
	fixable bool
	types   []adoc.ContentType
}

// NewBaseRule creates a BaseRule. Rules constructed without content types
// apply to every module type; listing types gates the rule to those
// documents.
func NewBaseRule(id, name, desc string, tags []string, fixable bool, types ...adoc.ContentType) BaseRule {
	return BaseRule{id: id, name: name, desc: desc, tags: tags, fixable: fixable, types: types}
}

// ID returns the rule identifier, e.g. "AD101".
func (b *BaseRule) ID() string {
	return b.id
}

// Name returns the rule's human-readable name.
func (b *BaseRule) Name() string {
	return b.name
}

// Description says what the rule checks.
func (b *BaseRule) Description() string {
	return b.desc
}

// Tags returns the rule's categorization tags.
func (b *BaseRule) Tags() []string {
	return b.tags
}

// DefaultEnabled reports whether the rule runs when no configuration says
// otherwise. True unless overridden.
func (b *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity is the severity used when none is configured. Warning
// unless overridden.
func (b *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// CanFix reports whether the rule produces auto-fix edits.
func (b *BaseRule) CanFix() bool {
	return b.fixable
}

// ContentTypes returns the module types the rule is gated to; empty means
// ungated.
func (b *BaseRule) ContentTypes() []adoc.ContentType {
	return b.types
}

// Apply is a no-op placeholder; concrete rules must override it.
func (b *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
