package cli

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/config"
)

// configFileMode makes generated config files world-readable.
const configFileMode = 0644

// initOptions holds the init command's flag values.
type initOptions struct {
	force  bool   // replace an existing file
	full   bool   // document every rule
	format string // yaml or json
	output string // destination override
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter configuration file",
		Long: `Write a starter configuration file with sensible defaults.

The minimal template covers the common settings; --full documents every
rule so the file doubles as a reference. Templates come in YAML
(the default) or JSON.`,
		Example: `  adoclint init                      Create a minimal .adoclint.yml
  adoclint init --full               Document every rule in the file
  adoclint init --format json        Create .adoclint.json instead
  adoclint init --output custom.yml  Write somewhere else`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Replace an existing configuration file")
	cmd.Flags().BoolVar(&opts.full, "full", false, "Document every rule in the generated file")
	cmd.Flags().StringVar(&opts.format, "format", "yaml", "Template format: yaml or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Destination path (default .adoclint.yml or .adoclint.json)")

	return cmd
}

func runInit(opts *initOptions) error {
	if opts.format != "json" && opts.format != "yaml" {
		return fmt.Errorf("%w: format %q: must be yaml or json", ErrUsage, opts.format)
	}

	outputPath := cmp.Or(opts.output, defaultConfigName(opts.format))
	dest, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", outputPath, err)
	}

	tmplOpts := config.TemplateOptions{Full: opts.full, Format: opts.format}
	content, err := config.GenerateTemplate(tmplOpts)
	if err != nil {
		return fmt.Errorf("generate config template: %w", err)
	}

	replaced, err := writeConfigFile(dest, content, opts.force)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("config file %q already exists (use --force to overwrite)", outputPath)
	}
	if err != nil {
		return err
	}

	ui := logging.NewInteractive()
	if replaced {
		ui.Warn("replaced existing file", logging.FieldPath, outputPath)
	}
	ui.Info("wrote configuration file", logging.FieldPath, outputPath)
	if opts.full {
		ui.Info("the full template documents every rule")
	}
	ui.Info("edit the file to enable or disable rules")
	ui.Info("run 'adoclint rules' to see all available rules")

	return nil
}

func defaultConfigName(format string) string {
	if format == "json" {
		return ".adoclint.json"
	}
	return ".adoclint.yml"
}

// writeConfigFile creates the config file, refusing to clobber an existing
// one unless force is set. Creation is exclusive so a concurrent init
// cannot slip past the existence check. It reports whether an existing
// file was replaced.
func writeConfigFile(path string, content []byte, force bool) (replaced bool, err error) {
	mode := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if force {
		if _, statErr := os.Stat(path); statErr == nil {
			replaced = true
		}
	} else {
		mode |= os.O_EXCL
	}

	f, err := os.OpenFile(path, mode, configFileMode) //nolint:gosec // path comes from the user's own flag
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, err
		}
		return false, fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return replaced, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return replaced, fmt.Errorf("write %s: %w", path, err)
	}
	return replaced, nil
}
