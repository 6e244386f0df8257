package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/configloader"
	"github.com/yaklabco/adoclint/internal/logging"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
	_ "github.com/yaklabco/adoclint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/adoclint/pkg/reporter"
	"github.com/yaklabco/adoclint/pkg/runner"
)

// ErrLintIssuesFound marks runs that finished but flagged at least one issue.
var ErrLintIssuesFound = errors.New("lint finished with issues")

type lintOptions struct {
	format      string
	contentType string // empty means auto-detect
	ruleFormat  string

	ignore   []string
	enable   []string
	disable  []string
	fixRules []string

	strict    bool
	noContext bool
	compact   bool
	perFile   bool

	summaryOrder string // table order in the summary reporter

	cpuprofile string
	memprofile string
	trace      string
}

func newLintCmd() *cobra.Command {
	var cfg config.Config
	opts := &lintOptions{}

	cmd := &cobra.Command{
		Use:     "lint [paths...]",
		Aliases: []string{"check"},
		Short:   "Lint AsciiDoc modules",
		Long:    lintLongDescription,
		Example: lintExamples,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, opts)
		},
	}

	addLintFlags(cmd, &cfg, opts)

	return cmd
}

const lintLongDescription = `Lint AsciiDoc modules for structural issues.

By default every .adoc and .asciidoc file below the current directory is
linted; pass files or directories to narrow the run.

Each module is checked against the conventions of its content type, which
is read from the :_mod-docs-content-type: attribute, inferred from the
filename prefix, or forced with --type.`

const lintExamples = `  adoclint lint                      # Lint current directory
  adoclint lint modules/             # Lint modules directory
  adoclint lint proc_install.adoc    # Lint single file
  adoclint lint --fix                # Lint and auto-fix issues
  adoclint lint --fix --dry-run      # Show fixes without applying
  adoclint lint --type procedure     # Force the content type for all files
  adoclint lint --format json        # Output as JSON for CI
  adoclint lint --strict             # Treat warnings as errors`

func runLint(cmd *cobra.Command, args []string, cliCfg *config.Config, opts *lintOptions) error {
	ctx := context.Background()
	if c := cmd.Context(); c != nil {
		ctx = c
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	merged, err := resolveLintConfig(ctx, cmd, cliCfg, opts, wd)
	if err != nil {
		return err
	}

	stopProfiling, err := startProfiling(opts)
	if err != nil {
		return err
	}
	defer stopProfiling()

	// DefaultRegistry has every built-in rule registered via the rules
	// package import above.
	pipeline := lint.NewPipeline(lint.NewEngine(lint.DefaultRegistry))
	r := runner.New(pipeline)

	ro := runner.Options{
		Paths:      args,
		WorkingDir: wd,
		Extensions: runner.DefaultExtensions(),

		Config:       merged,
		Jobs:         merged.Jobs,
		ExcludeGlobs: merged.Ignore,
	}

	log := logging.Default()
	log.Debug("starting lint run",
		logging.FieldPaths, ro.Paths,
		logging.FieldWorkingDir, ro.WorkingDir,
		logging.FieldJobs, ro.Jobs,
	)

	res, err := r.Run(ctx, ro)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	log.Debug("lint run complete",
		logging.FieldFilesDiscovered, res.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, res.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, res.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, res.Stats.DiagnosticsTotal,
		logging.FieldDiagnosticsFixable, res.Stats.DiagnosticsFixable,
		logging.FieldFilesModified, res.Stats.FilesModified,
	)

	rep, err := buildLintReporter(cmd, opts, wd)
	if err != nil {
		return err
	}

	if _, err := rep.Report(ctx, res); err != nil {
		log.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("write report: %w", err)
	}

	if exitCode := ExitCodeFromResult(res, opts.strict); exitCode != ExitSuccess {
		return &LintIssuesError{Code: exitCode}
	}

	return nil
}

// resolveLintConfig folds CLI flags into the flag-bound config, then loads
// and merges file configuration discovered from dir. Flag values the user
// did not set explicitly must not mask file-level settings, so --type is
// copied only when changed.
func resolveLintConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config, opts *lintOptions, dir string) (*config.Config, error) {
	cliCfg.Format = config.OutputFormat(opts.format)
	if cmd.Flags().Changed("type") {
		cliCfg.ContentType = opts.contentType
	}
	cliCfg.Ignore = opts.ignore
	cliCfg.EnableRules = opts.enable
	cliCfg.DisableRules = opts.disable
	cliCfg.FixRules = opts.fixRules

	// Explicit config path comes from the root command's persistent flag.
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.Options{
		WorkingDir: dir,
		ConfigFile: explicit,
		Overrides:  cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	log := logging.Default()
	for _, w := range loaded.Warnings {
		log.Warn(w)
	}
	if len(loaded.LoadedFrom) > 0 {
		log.Debug("loaded configuration from", logging.FieldFiles, loaded.LoadedFrom)
	}

	merged := loaded.Config
	log.Debug("configuration resolved",
		logging.FieldContentType, merged.ContentType,
		logging.FieldFix, merged.Fix,
		logging.FieldDryRun, merged.DryRun,
		logging.FieldJobs, merged.Jobs,
	)

	return merged, nil
}

// buildLintReporter constructs the reporter for the run from the lint flags
// plus the root command's persistent color flag.
func buildLintReporter(cmd *cobra.Command, opts *lintOptions, dir string) (reporter.Reporter, error) {
	color, err := cmd.Flags().GetString("color")
	if err != nil {
		color = "auto"
	}

	format, err := reporter.ParseFormat(opts.format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	return reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       color,
		WorkingDir:  dir,

		ShowContext: !opts.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     opts.compact,
		PerFile:     opts.perFile,

		RuleFormat:   config.RuleFormat(opts.ruleFormat),
		SummaryOrder: config.SummaryOrder(opts.summaryOrder),
	})
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, opts *lintOptions) {
	fs := cmd.Flags()
	fs.BoolVar(&cfg.Fix, "fix", false, "automatically fix issues")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	fs.StringVar(&opts.format, "format", "text", "output format: text, table, json, sarif, diff, summary")
	fs.IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	fs.StringSliceVar(&opts.ignore, "ignore", nil, "glob patterns to ignore")
	fs.StringSliceVar(&opts.enable, "enable", nil, "rule IDs to enable")
	fs.StringSliceVar(&opts.disable, "disable", nil, "rule IDs to disable")
	fs.StringSliceVar(&opts.fixRules, "fix-rules", nil, "limit auto-fix to specific rule IDs")
	fs.BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	fs.StringVar(&opts.contentType, "type", "",
		"force content type: procedure, concept, reference, assembly (default auto-detect)")
	fs.BoolVar(&opts.strict, "strict", false, "treat warnings as errors for exit code")
	fs.BoolVar(&opts.noContext, "no-context", false, "hide source line context in output")
	fs.BoolVar(&opts.compact, "compact", false, "use compact output format")
	fs.BoolVar(&opts.perFile, "per-file", false, "output separate report for each file (table format)")
	fs.StringVar(&opts.ruleFormat, "rule-format", "name", "rule identifier format in output: name, id, or combined")
	fs.StringVar(&opts.summaryOrder, "summary-order", "rules", "order of tables in summary output: rules, files")

	// pprof output destinations.
	fs.StringVar(&opts.cpuprofile, "cpuprofile", "", "write CPU profile to file")
	fs.StringVar(&opts.memprofile, "memprofile", "", "write memory profile to file")
	fs.StringVar(&opts.trace, "trace", "", "write execution trace to file")
}
