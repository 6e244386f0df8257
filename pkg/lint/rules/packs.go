package rules

import "github.com/yaklabco/adoclint/pkg/config"

// Pack is a named bundle of rule defaults for one authoring workflow.
// A pack is a configuration fragment: its rule map seeds an .adoclint.yml
// rather than replacing one.
type Pack struct {
	// Name is the short pack identifier (e.g., "modules", "strict").
	Name string

	// Description summarizes who the pack serves.
	Description string

	// Rules holds the pack's rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// pack assembles the three Pack fields without literal noise at call sites.
func pack(name, desc string, rules map[string]config.RuleConfig) Pack {
	return Pack{Name: name, Description: desc, Rules: rules}
}

// ModulesPack returns the everyday pack for module authoring: metadata,
// titles, and the structural checks for each content type.
func ModulesPack() Pack {
	return pack("modules", "Everyday module authoring: metadata, titles, content-type structure",
		map[string]config.RuleConfig{
			"AD001": level("warning"), // content-type-attr
			"AD002": level("warning"), // topic-id
			"AD003": level("warning"), // single-title
			"AD004": level("warning"), // title-blank-line
			"AD005": level("warning"), // short-intro
			"AD101": level("warning"), // procedure-structure
			"AD301": level("warning"), // context-conditionals
			"AD302": level("warning"), // context-attribute
		})
}

// StrictPack returns all rules elevated to errors for pre-merge gates.
// Source language findings stay informational; they are advisory by nature.
func StrictPack() Pack {
	return pack("strict", "Strict pack: every rule as an error, for CI gates",
		map[string]config.RuleConfig{
			// Metadata and titles (errors).
			"AD001": level("error"), // content-type-attr
			"AD002": level("error"), // topic-id
			"AD003": level("error"), // single-title
			"AD004": level("error"), // title-blank-line
			"AD005": level("error"), // short-intro
			"AD006": level("error"), // image-alt-text
			"AD007": level("error"), // additional-resources-role

			// Procedure structure (errors).
			"AD101": level("error"), // procedure-structure

			// Concept and reference (errors).
			"AD201": level("error"), // no-instructions
			"AD202": level("error"), // no-procedure-block
			"AD203": level("error"), // no-step-list
			"AD204": level("error"), // no-deep-heading
			"AD205": level("error"), // block-title-allowlist

			// Assemblies (errors).
			"AD301": level("error"), // context-conditionals
			"AD302": level("error"), // context-attribute
			"AD303": level("error"), // include-spacing
			"AD304": level("error"), // assembly-heading
			"AD305": level("error"), // assembly-block-title

			// Source blocks (informational even here).
			"AD401": level("info"), // source-language
		})
}

// RelaxedPack returns a minimal pack for legacy content where only the
// metadata that downstream builds depend on is enforced.
func RelaxedPack() Pack {
	return pack("relaxed", "Relaxed pack: content-type metadata only, minimal noise",
		map[string]config.RuleConfig{
			"AD001": level("info"), // content-type-attr
			"AD002": level("info"), // topic-id
		})
}

// AssemblyPack returns rules tuned for assembly-heavy repositories where
// the include chain and context plumbing matter most.
func AssemblyPack() Pack {
	return pack("assembly", "Assembly pack: context plumbing, include spacing, assembly shape",
		map[string]config.RuleConfig{
			"AD002": level("warning"), // topic-id
			"AD301": level("warning"), // context-conditionals
			"AD302": level("warning"), // context-attribute
			"AD303": level("warning"), // include-spacing
			"AD304": level("info"),    // assembly-heading
			"AD305": level("info"),    // assembly-block-title
		})
}

// Packs returns every built-in pack in display order.
func Packs() []Pack {
	return []Pack{ModulesPack(), StrictPack(), RelaxedPack(), AssemblyPack()}
}

// PackByName finds a pack by its short name; nil when unknown.
func PackByName(name string) *Pack {
	all := Packs()
	for i := range all {
		if all[i].Name == name {
			return &all[i]
		}
	}
	return nil
}

// PackNames lists the short names of the built-in packs.
func PackNames() []string {
	all := Packs()
	names := make([]string, len(all))
	for i := range all {
		names[i] = all[i].Name
	}
	return names
}

// level creates an enabled RuleConfig pinned at the given severity.
func level(sev string) config.RuleConfig {
	on := true
	return config.RuleConfig{Enabled: &on, Severity: &sev}
}
