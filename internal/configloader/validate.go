package configloader

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// ValidationError is one invalid setting found in a configuration. It
// satisfies error so loaders can return the first finding directly.
type ValidationError struct {
	Field    string // dotted path to the setting, e.g. "rules.AD101.severity"
	Value    any    // the offending value as parsed
	Message  string // human-readable description
	FilePath string // config file the setting came from, when known
}

// Error renders "file: field: message", dropping the parts not known.
func (ve *ValidationError) Error() string {
	msg := ve.Message
	if ve.Field != "" {
		msg = ve.Field + ": " + msg
	}
	if ve.FilePath != "" {
		msg = ve.FilePath + ": " + msg
	}
	return msg
}

// ValidationResult partitions findings into fatal errors and warnings a
// load can proceed past.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError // e.g. unknown rule IDs
}

// Valid reports whether the configuration can be loaded.
func (vr *ValidationResult) Valid() bool {
	return len(vr.Errors) == 0
}

func (vr *ValidationResult) addError(field string, value any, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func (vr *ValidationResult) addWarning(field string, value any, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Value: value, Message: message})
}

// Allowed values per enum field. Order matters: it is echoed verbatim in
// error messages.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	severityValues    = []string{"error", "warning", "info"}
	contentTypeValues = []string{"procedure", "concept", "reference", "assembly"}
	formatValues      = []config.OutputFormat{
		config.FormatText, config.FormatTable, config.FormatJSON,
		config.FormatSARIF, config.FormatDiff, config.FormatSummary,
	}
	ruleFormatValues = []config.RuleFormat{
		config.RuleFormatName, config.RuleFormatID, config.RuleFormatCombined,
	}
	backupModeValues = []string{"sidecar", "none"}
)

// enumMessage renders "invalid <label> <value>; must be one of: a, b, c".
func enumMessage[T ~string](label string, value T, allowed []T) string {
	opts := make([]string, len(allowed))
	for i, a := range allowed {
		opts[i] = string(a)
	}
	return fmt.Sprintf("invalid %s %q; must be one of: %s", label, string(value), strings.Join(opts, ", "))
}

// Validate checks a configuration for errors and warnings. Empty values are
// never flagged; they mean "use the default".
func Validate(c *config.Config) *ValidationResult {
	vr := &ValidationResult{}
	if c == nil {
		return vr
	}

	if v := c.ContentType; v != "" && !IsValidContentType(v) {
		vr.addError("content_type", v, enumMessage("content type", v, contentTypeValues))
	}
	if v := c.SeverityDefault; v != "" && !IsValidSeverity(v) {
		vr.addError("severity_default", v, enumMessage("severity", v, severityValues))
	}
	if v := c.Format; v != "" && !IsValidFormat(v) {
		vr.addError("format", v, enumMessage("format", v, formatValues))
	}
	if v := c.RuleFormat; v != "" && !slices.Contains(ruleFormatValues, v) {
		vr.addError("rule_format", v, enumMessage("rule format", v, ruleFormatValues))
	}
	if c.Jobs < 0 {
		vr.addError("jobs", c.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if v := c.Backups.Mode; v != "" && !IsValidBackupMode(v) {
		vr.addError("backups.mode", v, enumMessage("backup mode", v, backupModeValues))
	}

	validateRules(c, vr)
	validateIgnorePatterns(c, vr)

	return vr
}

// validateRules flags unknown rule IDs and bad per-rule severities.
func validateRules(c *config.Config, vr *ValidationResult) {
	reg := lint.DefaultRegistry

	for id, rc := range c.Rules {
		if _, known := reg.Get(id); !known {
			vr.addWarning("rules."+id, id,
				fmt.Sprintf("unknown rule %q; it will be ignored", id))
		}

		if sev := rc.Severity; sev != nil && !IsValidSeverity(*sev) {
			vr.addError("rules."+id+".severity", *sev,
				enumMessage("severity", *sev, severityValues))
		}
	}
}

// validateIgnorePatterns rejects malformed globs up front, before discovery
// silently matches nothing.
func validateIgnorePatterns(c *config.Config, vr *ValidationResult) {
	for i, pat := range c.Ignore {
		// filepath.Match errors only on malformed patterns.
		if _, err := filepath.Match(pat, ""); err != nil {
			vr.addError(fmt.Sprintf("ignore[%d]", i), pat,
				fmt.Sprintf("invalid glob pattern: %v", err))
		}
	}
}

// ValidateWithFile validates a configuration and stamps path onto every
// finding, so errors from a single config file name their source.
func ValidateWithFile(c *config.Config, path string) *ValidationResult {
	vr := Validate(c)
	for i := range vr.Errors {
		vr.Errors[i].FilePath = path
	}
	for i := range vr.Warnings {
		vr.Warnings[i].FilePath = path
	}
	return vr
}

// IsValidSeverity reports whether sev is a recognized severity name.
func IsValidSeverity(sev string) bool {
	return slices.Contains(severityValues, sev)
}

// IsValidContentType reports whether ct is a recognized content type
// override.
func IsValidContentType(ct string) bool {
	return slices.Contains(contentTypeValues, strings.ToLower(ct))
}

// IsValidFormat reports whether format names a supported output format.
func IsValidFormat(format config.OutputFormat) bool {
	return slices.Contains(formatValues, format)
}

// IsValidBackupMode reports whether m names a supported backup mode.
func IsValidBackupMode(m string) bool {
	return slices.Contains(backupModeValues, m)
}
