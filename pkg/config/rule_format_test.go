package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/adoclint/pkg/config"
)

// The format names are wire values: they appear in YAML configs and on the
// --rule-format flag, so the constants must not drift.
func TestRuleFormatWireValues(t *testing.T) {
	want := map[config.RuleFormat]string{
		config.RuleFormatName:     "name",
		config.RuleFormatID:       "id",
		config.RuleFormatCombined: "combined",
	}
	for format, name := range want {
		assert.Equal(t, name, string(format), "constant for %q", name)
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, config.RuleFormatName, cfg.RuleFormat)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, string(config.SeverityWarning), cfg.SeverityDefault)
	assert.True(t, cfg.Backups.Enabled)
}

func TestGenerateTemplate_Minimal(t *testing.T) {
	data, err := config.GenerateTemplate(config.TemplateOptions{})

	assert.NoError(t, err)
	assert.Contains(t, string(data), "# adoclint configuration")
	assert.Contains(t, string(data), "AD101")
}

func TestGenerateTemplate_Full(t *testing.T) {
	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
	assert.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "procedure-structure")
	assert.Contains(t, s, "content-type-attr")
	assert.Contains(t, s, "severity_default: warning")
}
