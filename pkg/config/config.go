// Package config holds the plain configuration types shared across
// adoclint. Nothing here knows how configs are discovered or merged; that
// lives in the loader.
package config

// Severity is the reported weight of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"   // fails the run
	SeverityWarning Severity = "warning" // fails only under --strict
	SeverityInfo    Severity = "info"    // advisory
)

// RuleConfig carries the per-rule settings a config file may set. Pointer
// fields distinguish "unset" from an explicit value.
type RuleConfig struct {
	Enabled  *bool          `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Severity *string        `mapstructure:"severity" yaml:"severity" json:"severity"`
	AutoFix  *bool          `mapstructure:"auto_fix" yaml:"auto_fix" json:"auto_fix"`
	Options  map[string]any `mapstructure:"options" yaml:"options" json:"options"`
}

// BackupsConfig says whether and how fix-time backups are written.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode" json:"mode"` // "sidecar", "xdg", etc.
}

// OutputFormat selects a reporter.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"    // human-readable, the default
	FormatTable   OutputFormat = "table"   // aligned columns
	FormatJSON    OutputFormat = "json"    // machine-readable report
	FormatSARIF   OutputFormat = "sarif"   // for code-scanning uploads
	FormatDiff    OutputFormat = "diff"    // pending fixes as unified diffs
	FormatSummary OutputFormat = "summary" // aggregate tables only
)

// RuleFormat picks how a diagnostic labels its rule.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "topic-id"
	RuleFormatID       RuleFormat = "id"       // "AD002"
	RuleFormatCombined RuleFormat = "combined" // "AD002/topic-id"
)

// SummaryOrder picks which summary table renders first.
type SummaryOrder string

const (
	SummaryOrderRules SummaryOrder = "rules" // rules table first (default)
	SummaryOrderFiles SummaryOrder = "files" // files table first
)

// IsValid reports whether so names a known table order.
func (so SummaryOrder) IsValid() bool {
	return so == SummaryOrderRules || so == SummaryOrderFiles
}

// Config is the merged configuration handed to the engine.
type Config struct {
	// SeverityDefault applies to rules without their own severity entry.
	SeverityDefault string `mapstructure:"severity_default" yaml:"severity_default" json:"severity_default"`

	// Rules holds per-rule settings keyed by canonical rule ID.
	Rules map[string]RuleConfig `mapstructure:"rules" yaml:"rules" json:"rules"`

	// Ignore lists glob patterns for paths to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore" json:"ignore"`

	// Backups controls fix-time backup creation.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups" json:"backups"`

	// The remaining fields are flag-only and never read from files.

	// Fix applies eligible edits instead of just reporting them.
	Fix bool `mapstructure:"-" yaml:"-" json:"-"`

	// DryRun previews fixes without touching any file.
	DryRun bool `mapstructure:"-" yaml:"-" json:"-"`

	// Format selects the reporter for lint output.
	Format OutputFormat `mapstructure:"-" yaml:"-" json:"-"`

	// RuleFormat picks the rule label style in output.
	RuleFormat RuleFormat `mapstructure:"-" yaml:"-" json:"-"`

	// ContentType forces the module content type instead of detecting it
	// from the :_mod-docs-content-type: attribute or the filename prefix.
	// Accepts "procedure", "concept", "reference", or "assembly".
	ContentType string `mapstructure:"-" yaml:"-" json:"-"`

	// Jobs caps the worker count; 0 means one per CPU.
	Jobs int `mapstructure:"-" yaml:"-" json:"-"`

	// EnableRules force-enables the named rules.
	EnableRules []string `mapstructure:"-" yaml:"-" json:"-"`

	// DisableRules force-disables the named rules.
	DisableRules []string `mapstructure:"-" yaml:"-" json:"-"`

	// FixRules restricts fixing to the named rules.
	FixRules []string `mapstructure:"-" yaml:"-" json:"-"`

	// NoBackups skips backups even when the config enables them.
	NoBackups bool `mapstructure:"-" yaml:"-" json:"-"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	cfg := &Config{Rules: map[string]RuleConfig{}}
	cfg.SeverityDefault = string(SeverityWarning)
	cfg.Backups = BackupsConfig{Enabled: true, Mode: "sidecar"}
	cfg.Format = FormatText
	cfg.RuleFormat = RuleFormatName
	return cfg
}
