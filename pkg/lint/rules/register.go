package rules

import (
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// RegisterAll registers every built-in rule with the given registry.
func RegisterAll(reg *lint.Registry) {
	// Metadata rules.
	reg.Register(NewContentTypeAttrRule()) // AD001
	reg.Register(NewTopicIDRule())         // AD002

	// Title rules.
	reg.Register(NewSingleTitleRule())    // AD003
	reg.Register(NewTitleBlankLineRule()) // AD004
	reg.Register(NewShortIntroRule())     // AD005

	// Image and resource rules.
	reg.Register(NewImageAltRule())                // AD006
	reg.Register(NewAdditionalResourcesRoleRule()) // AD007

	// Procedure structure.
	reg.Register(NewProcedureStructureRule()) // AD101

	// Concept and reference rules.
	reg.Register(NewNoInstructionsRule())      // AD201
	reg.Register(NewNoProcedureBlockRule())    // AD202
	reg.Register(NewNoStepListRule())          // AD203
	reg.Register(NewNoDeepHeadingRule())       // AD204
	reg.Register(NewBlockTitleAllowlistRule()) // AD205

	// Assembly rules.
	reg.Register(NewContextConditionalsRule()) // AD301
	reg.Register(NewContextAttributeRule())    // AD302
	reg.Register(NewIncludeSpacingRule())      // AD303
	reg.Register(NewAssemblyHeadingRule())     // AD304
	reg.Register(NewAssemblyBlockTitleRule())  // AD305

	// Source block rules.
	reg.Register(NewSourceLanguageRule()) // AD401
}

// RegisterLegacyAliases maps older rule spellings to their canonical IDs so
// existing configuration files keep working.
func RegisterLegacyAliases(reg *lint.Registry) {
	reg.RegisterAlias("content-type", "AD001")
	reg.RegisterAlias("module-id", "AD002")
}

// ruleInfos adapts the default registry into config rule metadata for
// template generation.
func ruleInfos() []config.RuleInfo {
	rules := lint.DefaultRegistry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          r.ID(),
			Name:        r.Name(),
			Description: r.Description(),
			Enabled:     r.DefaultEnabled(),
			Severity:    r.DefaultSeverity(),
			Tags:        r.Tags(),
			CanFix:      r.CanFix(),
		})
	}
	return infos
}

//nolint:gochecknoinits // Rules self-register into the default registry.
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = ruleInfos
}
