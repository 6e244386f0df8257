package pretty_test

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
)

// allStyles names every field so the sweeps below cover new styles as they
// are added.
func allStyles(s *pretty.Styles) map[string]lipgloss.Style {
	return map[string]lipgloss.Style{
		"Error":   s.Error,
		"Warning": s.Warning,
		"Info":    s.Info,

		"FilePath":    s.FilePath,
		"Location":    s.Location,
		"RuleID":      s.RuleID,
		"Message":     s.Message,
		"Suggestion":  s.Suggestion,
		"SourceLine":  s.SourceLine,
		"Caret":       s.Caret,
		"ContentType": s.ContentType,

		"DiffFileHeader":  s.DiffFileHeader,
		"DiffHunk":    s.DiffHunk,
		"DiffAdd":     s.DiffAdd,
		"DiffRemove":  s.DiffRemove,
		"DiffContext": s.DiffContext,

		"SummaryTitle": s.SummaryTitle,
		"SummaryValue": s.SummaryValue,
		"Success":      s.Success,
		"Failure":      s.Failure,

		"TableHeader":    s.TableHeader,
		"TableErrorRow":  s.TableErrorRow,
		"TableWarnRow":   s.TableWarnRow,
		"TableInfoRow":   s.TableInfoRow,
		"TableFixable":   s.TableFixable,
		"TableLegend":    s.TableLegend,
		"TableDivider": s.TableDivider,

		"Dim":  s.Dim,
		"Bold": s.Bold,
	}
}

func TestNewStyles_NoColorRendersPlain(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	// Zero-value styles must pass text through untouched.
	for name, style := range allStyles(styles) {
		assert.Equal(t, "plain", style.Render("plain"), "style %s altered its input", name)
	}
}

func TestNewStyles_ColorKeepsText(t *testing.T) {
	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Whether or not the terminal profile allows ANSI codes, the rendered
	// output must still carry the original text.
	for name, style := range allStyles(styles) {
		assert.True(t, strings.Contains(style.Render("marker"), "marker"),
			"style %s lost its input text", name)
	}
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name    string
		mode    string
		writer  io.Writer
		noColor string
		want    bool
	}{
		{name: "always wins over non-tty", mode: "always", writer: &buf, want: true},
		{name: "never wins over tty", mode: "never", writer: os.Stdout, want: false},
		{name: "auto without tty", mode: "auto", writer: &buf, want: false},
		{name: "auto honors NO_COLOR", mode: "auto", writer: os.Stdout, noColor: "1", want: false},
		{name: "empty mode behaves like auto", mode: "", writer: &buf, want: false},
		{name: "unknown mode behaves like auto", mode: "sometimes", writer: &buf, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, tt.writer))
		})
	}
}
