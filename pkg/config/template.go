package config

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// templateCommentWidth caps wrapped rule descriptions in generated templates.
const templateCommentWidth = 70

// TemplateOptions selects what GenerateTemplate emits.
type TemplateOptions struct {
	Full         bool     // document every rule instead of the short starter
	Format       string   // "yaml" (default) or "json"
	IncludeRules []string // rule IDs to document; empty keeps them all
}

// RuleInfo describes one rule in generated templates.
type RuleInfo struct {
	ID          string   // stable rule identifier such as AD101
	Name        string   // kebab-case rule name
	Description string   // one-line summary, wrapped into template comments
	Enabled     bool     // on in the default configuration
	Severity    Severity // default severity
	Tags        []string // informational grouping
	CanFix      bool     // rule emits auto-fix edits
}

// RuleInfoProvider supplies rule metadata. Template generation goes through
// it rather than the lint package so the two packages cannot import each
// other.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is installed by the rules package at init time.
//
//nolint:gochecknoglobals // Package-level registration hook.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate renders a configuration file template in the requested
// format.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch {
	case opts.Format == "json":
		return jsonTemplate(opts)
	case opts.Full:
		return fullTemplate(opts), nil
	default:
		return minimalTemplate(), nil
	}
}

// DefaultTemplateHeader is the comment header shared by generated configs.
func DefaultTemplateHeader() string {
	return `# adoclint configuration
# See: https://github.com/yaklabco/adoclint`
}

// minimalTemplate is a short, fully commented starter config.
func minimalTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Severity for rules that do not set their own: error, warning, or info
# severity_default: warning

# Apply fixes to files automatically
# fix: false

# Parallel workers (0 picks one per CPU)
# jobs: 0

# Glob patterns for files and directories to skip
# ignore:
#   - "build/**"
#   - "_artifacts/**"

# Per-rule settings
# rules:
#   AD101:
#     enabled: true
#     severity: warning
#   AD005:
#     enabled: true
#     options:
#       min_length: 10
`)
}

const fullTemplateHead = `# adoclint configuration - Full Template
# See: https://github.com/yaklabco/adoclint
#
# Every available rule is listed below with its default settings.
# Uncomment and adjust what you need.

# Severity for rules that do not set their own: error, warning, or info
severity_default: warning

# Apply fixes to files automatically
fix: false

# Preview fixes without writing them (requires fix: true)
dry_run: false

# Parallel workers (0 picks one per CPU)
jobs: 0

# Output format: text, table, json, sarif, diff, or summary
format: text

# Backups written before auto-fix rewrites a file
backups:
  enabled: true
  mode: sidecar

# Glob patterns for files and directories to skip
ignore:
  - "build/**"
  - "_artifacts/**"
  - ".git/**"

# Force these rules on, overriding the defaults
# enable_rules:
#   - AD001
#   - AD002

# Force these rules off
# disable_rules:
#   - AD401

# Restrict auto-fixing to these rules
# fix_rules:
#   - AD004
#   - AD303

# Per-rule settings
rules:
`

// fullTemplate documents every selected rule with its defaults.
func fullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer
	buf.WriteString(fullTemplateHead)
	for _, rule := range selectedRules(opts.IncludeRules) {
		writeRuleEntry(&buf, rule)
	}
	return buf.Bytes()
}

// selectedRules returns the rules to document, filtered to include (when
// non-empty) and sorted by ID.
func selectedRules(include []string) []RuleInfo {
	rules := ruleInfos()
	if len(include) > 0 {
		rules = slices.DeleteFunc(rules, func(r RuleInfo) bool {
			return !slices.Contains(include, r.ID)
		})
	}
	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return rules
}

func writeRuleEntry(buf *bytes.Buffer, rule RuleInfo) {
	fmt.Fprintf(buf, "\n  # %s: %s\n", rule.ID, rule.Name)
	fmt.Fprintf(buf, "  # %s\n", wrapComment(rule.Description, templateCommentWidth))
	if len(rule.Tags) > 0 {
		fmt.Fprintf(buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
	}
	if rule.CanFix {
		buf.WriteString("  # Auto-fix: yes\n")
	}
	fmt.Fprintf(buf, "  %s:\n", rule.ID)
	fmt.Fprintf(buf, "    enabled: %t\n", rule.Enabled)
	fmt.Fprintf(buf, "    severity: %s\n", rule.Severity)
	buf.WriteString("    # options:\n")
	buf.WriteString("    #   key: value\n")
}

// jsonTemplate builds the JSON rendition directly; the YAML templates'
// comments cannot be carried over. The minimal variant leaves rules empty.
func jsonTemplate(opts TemplateOptions) ([]byte, error) {
	ruleEntries := map[string]any{}
	if opts.Full {
		for _, r := range selectedRules(opts.IncludeRules) {
			ruleEntries[r.ID] = map[string]any{"enabled": r.Enabled, "severity": string(r.Severity)}
		}
	}

	cfg := map[string]any{
		"fix":     false,
		"dry_run": false,
		"jobs":    0,
		"format":  "text",
		"backups": map[string]any{"enabled": true, "mode": "sidecar"},
		"ignore":  []string{"build/**", "_artifacts/**", ".git/**"},
		"rules":   ruleEntries,
	}
	cfg["severity_default"] = string(SeverityWarning)

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json template: %w", err)
	}
	return out, nil
}

// ruleInfos resolves rule metadata, falling back to a built-in table until
// the rules package registers its provider.
func ruleInfos() []RuleInfo {
	if DefaultRuleInfoProvider == nil {
		return builtinRuleInfos()
	}
	return DefaultRuleInfoProvider()
}

// builtinRuleInfos mirrors the rule set the rules package registers.
func builtinRuleInfos() []RuleInfo {
	return []RuleInfo{
		{
			ID: "AD001", Name: "content-type-attr", Enabled: true, Severity: SeverityWarning,
			Description: "Modules should declare a :_mod-docs-content-type: attribute",
			Tags:        []string{"metadata"}, CanFix: true,
		},
		{
			ID: "AD002", Name: "topic-id", Enabled: true, Severity: SeverityWarning,
			Description: "Modules should carry a topic ID anchor ending in _{context}",
			Tags:        []string{"metadata"}, CanFix: true,
		},
		{
			ID: "AD003", Name: "single-title", Enabled: true, Severity: SeverityWarning,
			Description: "Modules should have exactly one level zero title",
			Tags:        []string{"titles"}, CanFix: true,
		},
		{
			ID: "AD004", Name: "title-blank-line", Enabled: true, Severity: SeverityWarning,
			Description: "The module title should be followed by a blank line",
			Tags:        []string{"titles"}, CanFix: true,
		},
		{
			ID: "AD005", Name: "short-intro", Enabled: true, Severity: SeverityWarning,
			Description: "Modules should open with a short introductory paragraph",
			Tags:        []string{"titles"}, CanFix: true,
		},
		{
			ID: "AD006", Name: "image-alt-text", Enabled: true, Severity: SeverityWarning,
			Description: "Block images should carry quoted alt text",
			Tags:        []string{"images"}, CanFix: true,
		},
		{
			ID: "AD101", Name: "procedure-structure", Enabled: true, Severity: SeverityWarning,
			Description: "Procedure modules need a .Procedure title followed by a step list",
			Tags:        []string{"procedure", "structure"}, CanFix: true,
		},
		{
			ID: "AD201", Name: "no-instructions", Enabled: true, Severity: SeverityWarning,
			Description: "Concept and reference modules should not contain instructional content",
			Tags:        []string{"concept", "reference"}, CanFix: true,
		},
		{
			ID: "AD301", Name: "context-conditionals", Enabled: true, Severity: SeverityWarning,
			Description: "Assemblies should guard :context: with parent-context conditionals",
			Tags:        []string{"assembly"}, CanFix: true,
		},
		{
			ID: "AD401", Name: "source-language", Enabled: true, Severity: SeverityInfo,
			Description: "Source blocks should declare a recognized language",
			Tags:        []string{"source"},
		},
	}
}

// wrapComment breaks text onto continuation comment lines at width.
func wrapComment(text string, width int) string {
	if len(text) <= width {
		return text
	}

	var out []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			out = append(out, line)
			line = word
		}
	}
	if line != "" {
		out = append(out, line)
	}
	return strings.Join(out, "\n  # ")
}
