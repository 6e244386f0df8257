package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

type rulesOptions struct {
	idFormat string
	format   string
	tag      string
}

// ruleEntry is one element of the JSON listing.
type ruleEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Fixable     bool     `json:"fixable"`
	Tags        []string `json:"tags,omitempty"`
}

func newRulesCmd() *cobra.Command {
	opts := &rulesOptions{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List registered lint rules",
		Long: `List the registered lint rules with their IDs, default severities,
and whether they support auto-fixing. The listing can be narrowed to
rules carrying a given tag.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.idFormat, "rule-format", "name",
		"how to label rules: name, id, or combined")
	cmd.Flags().StringVar(&opts.format, "format", "text",
		"listing format: text or json")
	cmd.Flags().StringVar(&opts.tag, "tag", "",
		"only list rules carrying this tag")

	return cmd
}

func runRules(out io.Writer, opts *rulesOptions) error {
	rules := lint.DefaultRegistry.Rules()
	if opts.tag != "" {
		rules = lint.DefaultRegistry.RulesByTag(opts.tag)
	}

	if opts.format == "json" {
		return writeRulesJSON(out, rules)
	}

	ui := logging.NewInteractive()

	if len(rules) == 0 {
		if opts.tag != "" {
			ui.Info("no rules match tag", "tag", opts.tag)
			ui.Info("known tags", "tags", strings.Join(lint.DefaultRegistry.Tags(), ", "))
		} else {
			ui.Info("no rules registered yet")
		}
		return nil
	}

	ui.Info("available rules")
	idFormat := config.RuleFormat(opts.idFormat)
	for _, ru := range rules {
		fixable := "-"
		if ru.CanFix() {
			fixable = "yes"
		}

		ui.Info(config.FormatRuleID(idFormat, ru.ID(), ru.Name()),
			logging.FieldSeverity, ru.DefaultSeverity(),
			logging.FieldFixable, fixable,
			logging.FieldDescription, ru.Description(),
		)
	}

	return nil
}

// writeRulesJSON renders the rules to out as an indented JSON array.
func writeRulesJSON(out io.Writer, rules []lint.Rule) error {
	entries := make([]ruleEntry, 0, len(rules))
	for _, ru := range rules {
		entries = append(entries, ruleEntry{
			ID:          ru.ID(),
			Name:        ru.Name(),
			Description: ru.Description(),
			Severity:    string(ru.DefaultSeverity()),
			Fixable:     ru.CanFix(),
			Tags:        ru.Tags(),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding rule listing: %w", err)
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}
