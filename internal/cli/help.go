// Package cli provides the Cobra command structure for adoclint.
package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/ui/pretty"
)

const usageTmpl = `{{styleHeading "Usage:"}}{{if .Runnable}}
  {{styleCommand .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{styleCommand .CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{styleHeading "Aliases:"}}
  {{styleAlias (join .Aliases ", ")}}{{end}}{{if .HasExample}}

{{styleHeading "Examples:"}}
{{styleExample .Example}}{{end}}{{if .HasAvailableSubCommands}}

{{styleHeading "Available Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{styleSubcommand (rpad .Name .NamePadding)}} {{styleDescription .Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{styleHeading "Flags:"}}
{{styleFlagsUsage .LocalFlags}}{{end}}{{if .HasAvailableInheritedFlags}}

{{styleHeading "Global Flags:"}}
{{styleFlagsUsage .InheritedFlags}}{{end}}{{if .HasHelpSubCommands}}

{{styleHeading "Additional help topics:"}}{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{styleSubcommand (rpad .CommandPath .CommandPathPadding)}} {{styleDescription .Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{styleCommand (print .CommandPath " [command] --help")}}" for more information about a command.{{end}}
`

const helpTmpl = `{{if or .Runnable .HasSubCommands}}{{styleCommand .CommandPath}}{{if .Version}} {{styleDim .Version}}{{end}}

{{end}}{{with (or .Long .Short)}}{{. | rtrim}}

{{end}}` + usageTmpl

// helpStyles holds the Lipgloss styles the help templates draw from.
type helpStyles struct {
	command, heading, subcommand, flag lipgloss.Style
	description, example, alias, dim   lipgloss.Style
}

// newHelpStyles builds the style set, all no-ops when color is off.
func newHelpStyles(colorEnabled bool) *helpStyles {
	base := lipgloss.NewStyle()
	s := &helpStyles{
		command: base, heading: base, subcommand: base, flag: base,
		description: base, example: base, alias: base, dim: base,
	}
	if colorEnabled {
		fg := func(c string) lipgloss.Style {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
		}
		s.command = fg("14").Bold(true)
		s.heading = fg("11").Bold(true)
		s.subcommand = fg("10")
		s.flag = fg("12")
		s.example = fg("8")
		s.alias = s.example
		s.dim = s.example
	}
	return s
}

// HelpRenderer renders styled help and usage text for Cobra commands.
type HelpRenderer struct {
	styles *helpStyles
}

// NewHelpRenderer resolves the color mode against the writer and picks the
// matching style set.
func NewHelpRenderer(colorMode string, writer io.Writer) *HelpRenderer {
	return &HelpRenderer{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// ApplyToCommand installs the styled help and usage rendering on a Cobra
// command tree.
func (h *HelpRenderer) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageTemplate(usageTmpl)
	cmd.SetHelpTemplate(helpTmpl)
	cmd.SetUsageFunc(h.renderUsage)
	cmd.SetHelpFunc(h.renderHelp)
}

func (h *HelpRenderer) renderUsage(cmd *cobra.Command) error {
	tmpl, err := template.New("usage").Funcs(h.funcMap()).Parse(usageTmpl)
	if err != nil {
		return fmt.Errorf("parse usage template: %w", err)
	}
	return tmpl.Execute(cmd.OutOrStdout(), cmd)
}

func (h *HelpRenderer) renderHelp(cmd *cobra.Command, _ []string) {
	tmpl, err := template.New("help").Funcs(h.funcMap()).Parse(helpTmpl)
	if err != nil {
		cmd.PrintErrln(err)
		return
	}
	if err := tmpl.Execute(cmd.OutOrStdout(), cmd); err != nil {
		cmd.PrintErrln(err)
	}
}

func (h *HelpRenderer) funcMap() template.FuncMap {
	return template.FuncMap{
		"styleCommand":     h.styles.command.Render,
		"styleHeading":     h.styles.heading.Render,
		"styleSubcommand":  h.styles.subcommand.Render,
		"styleFlag":        h.styles.flag.Render,
		"styleDescription": h.styles.description.Render,
		"styleExample":     h.styles.example.Render,
		"styleAlias":       h.styles.alias.Render,
		"styleDim":         h.styles.dim.Render,
		"styleFlagsUsage":  h.styleFlagsUsage,
		"join":             strings.Join,
		"rpad":             rpad,
		"rtrim":            rtrim,
	}
}

// flagUsager is the subset of pflag.FlagSet the templates need.
type flagUsager interface {
	FlagUsages() string
}

// styleFlagsUsage re-styles each line of a pflag usage block.
func (h *HelpRenderer) styleFlagsUsage(flags flagUsager) string {
	out := strings.Split(strings.TrimSuffix(flags.FlagUsages(), "\n"), "\n")
	for i := range out {
		out[i] = h.styleFlagLine(out[i])
	}
	return strings.Join(out, "\n")
}

// flagLineRe splits "  -f, --flag type   description" at the first run of
// two or more spaces after the flag tokens. Wrapped description
// continuation lines do not match and pass through unstyled.
var flagLineRe = regexp.MustCompile(`^( *)(-\S.*?)  +(\S.*)$`)

func (h *HelpRenderer) styleFlagLine(ln string) string {
	m := flagLineRe.FindStringSubmatch(ln)
	if m == nil {
		return ln
	}
	return m[1] + h.styleFlagTokens(m[2]) + "   " + h.styles.description.Render(m[3])
}

// styleFlagTokens colors flag names and dims their type indicators.
func (h *HelpRenderer) styleFlagTokens(spec string) string {
	parts := strings.Fields(spec)
	for i, tok := range parts {
		if !strings.HasPrefix(tok, "-") {
			parts[i] = h.styles.dim.Render(tok)
			continue
		}
		name, hadComma := strings.CutSuffix(tok, ",")
		styled := h.styles.flag.Render(name)
		if hadComma {
			styled += ","
		}
		parts[i] = styled
	}
	return strings.Join(parts, " ")
}

// rpad pads s to width for column alignment.
func rpad(s string, width int) string {
	return fmt.Sprintf("%-*s", width, s)
}

var trailingWhitespaceRe = regexp.MustCompile(`(?m)[ \t]+$`)

// rtrim strips trailing spaces and tabs from every line.
func rtrim(s string) string {
	return trailingWhitespaceRe.ReplaceAllString(s, "")
}
