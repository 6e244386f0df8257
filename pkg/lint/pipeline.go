package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/fix"
	"github.com/yaklabco/adoclint/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the fix loop. Rules that flag at most one
// violation per pass rely on later passes to surface the rest, so the bound
// needs headroom beyond a single iteration.
const DefaultMaxFixPasses = 10

// Pipeline error categories.
var (
	ErrFileNotFound     = errors.New("file not found")    // path missing at read time
	ErrPermissionDenied = errors.New("permission denied") // filesystem access refused
	ErrLintFailure      = errors.New("lint failure")      // engine error during a pass
	ErrWriteFailure     = errors.New("write failure")     // atomic rewrite failed
)

// PipelineResult is the outcome of pushing one file through the safety
// pipeline.
type PipelineResult struct {
	*FileResult // diagnostics and edits from the final pass

	Path         string
	OriginalInfo *fsutil.FileInfo // file state at read time

	Modified        bool      // an edit was applied in memory
	ModifiedContent []byte    // post-fix content, nil when nothing changed
	Diff            *fix.Diff // unified diff, dry-run mode only

	Skipped       bool // left untouched, SkipReason says why
	SkipReason    string
	BackupCreated bool // a backup was written before the rewrite
	Written       bool // content reached disk

	FixPasses         int // engine iterations that applied edits
	TotalEditsApplied int // edits summed across those passes
}

// Summary returns a short human-readable outcome.
func (r *PipelineResult) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "fixed (backup created)"
	case r.Written:
		return "fixed"
	case r.Modified:
		return "changes pending"
	case r.FileResult != nil && r.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions tunes the safety behavior around a lint-and-fix run.
type PipelineOptions struct {
	Fix    bool                // apply eligible edits instead of only reporting
	DryRun bool                // produce diffs, never write
	Backup fsutil.BackupConfig // how the original is preserved before a rewrite

	StrictRaceDetection bool // re-hash content to catch concurrent edits, not just stat fields
	MaxFixPasses        int  // bound on fix iterations, zero selects DefaultMaxFixPasses
}

// DefaultPipelineOptions returns the settings used when the caller overrides
// nothing.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{Backup: fsutil.DefaultBackupConfig(), StrictRaceDetection: true}
}

// Pipeline adds the file-handling safety steps around an Engine run.
type Pipeline struct {
	Engine *Engine // runs the rules
}

// NewPipeline creates a pipeline around the given engine.
func NewPipeline(eng *Engine) *Pipeline {
	return &Pipeline{Engine: eng}
}

// ProcessFile reads path, runs the fix loop, and handles the write path:
// dry-run produces a diff, otherwise the file is checked for concurrent
// modification, backed up per the options, and rewritten atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, cfg *config.Config, po PipelineOptions) (*PipelineResult, error) {
	res := &PipelineResult{Path: path}

	original, st, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, classifyErr(err)
	}
	res.OriginalInfo = st

	content, err := p.fixLoop(ctx, res, path, original, cfg, po)
	if err != nil {
		return nil, err
	}
	if !res.Modified {
		return res, nil
	}

	if po.DryRun {
		res.Diff = fix.GenerateDiff(path, original, content)
		return res, nil
	}

	// Refuse to clobber edits made while the engine was running.
	changed, err := p.detectRace(ctx, st, po.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("race detection: %w", err)
	}
	if changed {
		res.Skipped = true
		res.SkipReason = "file modified during processing"
		return res, nil
	}

	if po.Backup.Enabled {
		wrote, err := fsutil.CreateBackup(ctx, path, po.Backup)
		if err != nil {
			return nil, fmt.Errorf("backup %s: %w", path, err)
		}
		res.BackupCreated = wrote
	}

	if err := fsutil.WriteAtomic(ctx, path, content, st.Mode); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrWriteFailure, path, err)
	}
	res.Written = true

	return res, nil
}

// ProcessContent runs the fix loop on in-memory content without touching
// the filesystem. Useful for tests and pre-loaded content.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, original []byte, cfg *config.Config, po PipelineOptions) (*PipelineResult, error) {
	res := &PipelineResult{Path: path}

	content, err := p.fixLoop(ctx, res, path, original, cfg, po)
	if err != nil {
		return nil, err
	}
	if res.Modified && po.DryRun {
		res.Diff = fix.GenerateDiff(path, original, content)
	}

	return res, nil
}

// fixLoop lints content and, in fix mode, applies edits in memory until the
// content is stable or the pass budget runs out. It records the final lint
// result and pass counters on res and returns the final content.
func (p *Pipeline) fixLoop(ctx context.Context, res *PipelineResult, path string, content []byte, cfg *config.Config, po PipelineOptions) ([]byte, error) {
	budget := po.MaxFixPasses
	if budget <= 0 {
		budget = DefaultMaxFixPasses
	}

	var latest *FileResult
	for range budget {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		pass, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLintFailure, err)
		}
		latest = pass

		if !po.Fix || len(pass.Edits) == 0 {
			break
		}

		content = fix.ApplyEdits(content, pass.Edits)
		res.FixPasses++
		res.TotalEditsApplied += len(pass.Edits)
		res.Modified = true
	}

	res.FileResult = latest
	if res.Modified {
		res.ModifiedContent = content
	}
	return content, nil
}

// detectRace reports whether the file on disk no longer matches st. Strict
// mode re-reads and hashes the content, quick mode trusts the stat fields.
func (p *Pipeline) detectRace(ctx context.Context, st *fsutil.FileInfo, strict bool) (bool, error) {
	if !strict {
		return fsutil.CheckModifiedQuick(ctx, st)
	}
	return fsutil.CheckModified(ctx, st)
}

// classifyErr maps filesystem errors onto the pipeline error categories,
// using errors.Is rather than string matching.
func classifyErr(err error) error {
	var cat error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist):
		cat = ErrFileNotFound
	case errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission):
		cat = ErrPermissionDenied
	default:
		return err
	}
	return fmt.Errorf("%w: %w", cat, err)
}

// IsPipelineError reports whether err carries one of the pipeline error
// categories.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) || errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrLintFailure) || errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig derives backup settings from the user config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg != nil {
		mode := fsutil.BackupMode(cfg.Backups.Mode)
		return fsutil.BackupConfig{Enabled: cfg.Backups.Enabled && !cfg.NoBackups, Mode: mode}
	}
	return fsutil.DefaultBackupConfig()
}

// PipelineOptionsFromConfig derives pipeline options from the user config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	po := DefaultPipelineOptions()
	if cfg != nil {
		po.Fix = cfg.Fix
		po.DryRun = cfg.DryRun
		po.Backup = BackupConfigFromConfig(cfg)
	}
	return po
}
