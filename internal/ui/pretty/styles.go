// Package pretty draws styled terminal output on top of Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI 256 palette shared by every styled renderer.
var (
	colorRed     = lipgloss.Color("9")
	colorGreen   = lipgloss.Color("10")
	colorYellow  = lipgloss.Color("11")
	colorBlue    = lipgloss.Color("12")
	colorMagenta = lipgloss.Color("13")
	colorCyan    = lipgloss.Color("14")
	colorWhite   = lipgloss.Color("7")
	colorGray    = lipgloss.Color("8")
)

// Styles bundles the Lipgloss renderers the terminal writers share.
type Styles struct {
	// Pieces of a rendered diagnostic line.
	Error       lipgloss.Style
	Warning     lipgloss.Style
	Info        lipgloss.Style
	FilePath    lipgloss.Style
	Location    lipgloss.Style
	RuleID      lipgloss.Style
	Message     lipgloss.Style
	Suggestion  lipgloss.Style
	SourceLine  lipgloss.Style
	Caret       lipgloss.Style
	ContentType lipgloss.Style

	// Unified diff output.
	DiffFileHeader lipgloss.Style
	DiffHunk       lipgloss.Style
	DiffAdd        lipgloss.Style
	DiffRemove     lipgloss.Style
	DiffContext    lipgloss.Style

	// Summary and table output, plus generic emphasis.
	SummaryTitle  lipgloss.Style
	SummaryValue  lipgloss.Style
	Success       lipgloss.Style
	Failure       lipgloss.Style
	TableHeader   lipgloss.Style
	TableErrorRow lipgloss.Style
	TableWarnRow  lipgloss.Style
	TableInfoRow  lipgloss.Style
	TableFixable  lipgloss.Style
	TableLegend   lipgloss.Style
	TableDivider  lipgloss.Style
	Dim           lipgloss.Style
	Bold          lipgloss.Style
}

// NewStyles returns the renderer set for the given color mode. With color
// disabled every field is a zero-value style, which renders text unchanged.
func NewStyles(color bool) *Styles {
	if color {
		return colorStyles()
	}
	return &Styles{}
}

func colorStyles() *Styles {
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	emphasis := func(c lipgloss.Color) lipgloss.Style {
		return fg(c).Bold(true)
	}
	bold := lipgloss.NewStyle().Bold(true)
	plain := lipgloss.NewStyle()

	return &Styles{
		Error:       emphasis(colorRed),
		Warning:     emphasis(colorYellow),
		Info:        emphasis(colorBlue),
		FilePath:    bold,
		Location:    fg(colorGray),
		RuleID:      fg(colorGray),
		Message:     plain,
		Suggestion:  fg(colorGreen).Italic(true),
		SourceLine:  fg(colorWhite),
		Caret:       fg(colorRed),
		ContentType: fg(colorMagenta),

		DiffFileHeader: bold,
		DiffHunk:       fg(colorCyan),
		DiffAdd:        fg(colorGreen),
		DiffRemove:     fg(colorRed),
		DiffContext:    fg(colorGray),

		SummaryTitle:  bold,
		SummaryValue:  plain,
		Success:       emphasis(colorGreen),
		Failure:       emphasis(colorRed),
		TableHeader:   emphasis(colorWhite),
		TableErrorRow: fg(colorRed),
		TableWarnRow:  fg(colorYellow),
		TableInfoRow:  fg(colorBlue),
		TableFixable:  fg(colorGreen),
		TableLegend:   fg(colorGray).Italic(true),
		TableDivider:  fg(colorGray),
		Dim:           fg(colorGray),
		Bold:          bold,
	}
}

// IsColorEnabled reports whether styled output should be used for the given
// color mode ("auto", "always", or "never") and writer. Auto requires the
// writer to be a terminal and honors NO_COLOR (https://no-color.org/).
func IsColorEnabled(mode string, w io.Writer) bool {
	if mode == "always" {
		return true
	}
	if mode == "never" || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
