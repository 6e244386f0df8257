// Package cli provides the Cobra command structure for adoclint.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/logging"
)

// BuildInfo carries the version stamp injected at build time.
type BuildInfo struct {
	Version string // release version, or "dev" for local builds
	Commit  string // short git SHA
	Date    string // build timestamp
}

// rootOptions are the persistent flags every subcommand inherits.
type rootOptions struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand builds the adoclint root command and wires up its subcommands.
func NewRootCommand(bi BuildInfo) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "adoclint",
		Short: "A self-fixing structure linter for modular AsciiDoc documentation",
		Long: `adoclint is a structure linter and auto-fixer for AsciiDoc modules written in Go.

It classifies each document by its modular-docs content type (procedure,
concept, reference, or assembly) and checks the structural conventions that
type implies: metadata attributes, topic IDs, procedure step schemas, and
assembly context plumbing. adoclint can fix many issues automatically and
flags the rest with inline TODO comments for human review, while ensuring
safety through conflict detection, dry-run mode, and optional backups.`,
		PersistentPreRun: func(*cobra.Command, []string) {
			if !opts.debug {
				return
			}
			logging.SetLevel("debug")
		},
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	root.PersistentFlags().StringVar(&opts.color, "color", "auto", "colorize output: auto, always, never")

	// Flag parse failures exit with the usage code, not the generic one.
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	root.AddCommand(
		newLintCmd(),
		newRulesCmd(),
		newInitCmd(),
		newVersionCmd(bi),
		newEnvHelpTopic(),
	)

	NewHelpRenderer(opts.color, os.Stdout).ApplyToCommand(root)

	return root
}
