package cli

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/logging"
)

func newVersionCmd(build BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"ver"},
		Short:   "Show the build version",
		Long:    "Show the version, commit hash, and build date of this adoclint binary.",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := log.NewWithOptions(cmd.OutOrStdout(), log.Options{ReportTimestamp: false})
			logger.Info("adoclint",
				logging.FieldVersion, build.Version,
				logging.FieldCommit, build.Commit,
				logging.FieldBuilt, build.Date,
			)
		},
	}
}
