package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/configloader"
)

// newEnvHelpTopic documents the ADOCLINT_* environment variables as an
// additional help topic, shown via "adoclint help environment".
func newEnvHelpTopic() *cobra.Command {
	vars := configloader.EnvVarDocs()

	var b strings.Builder
	b.WriteString("Configuration can be overridden with environment variables.\n")
	b.WriteString("They rank above config files and below command-line flags:\n\n")
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&b, "  %-26s %s\n", name, vars[name])
	}

	return &cobra.Command{
		Use:   "environment",
		Short: "Environment variables that override configuration",
		Long:  strings.TrimRight(b.String(), "\n"),
	}
}
