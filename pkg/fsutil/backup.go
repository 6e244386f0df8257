package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupMode selects how pre-fix copies of a file are kept.
type BackupMode string

const (
	BackupModeSidecar BackupMode = "sidecar" // copy beside the original, path + BackupSuffix
	BackupModeNone    BackupMode = "none"    // backups off
)

// BackupSuffix names sidecar backup files: it is appended to the path of
// the file being preserved.
const BackupSuffix = ".adoclint.bak"

// BackupConfig says whether originals are preserved before fixes are
// written, and where the copies go.
type BackupConfig struct {
	Enabled bool       // create backups at all
	Mode    BackupMode // backup layout
}

// DefaultBackupConfig returns the stock settings: sidecar layout, but
// disabled until the user opts in.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath names the backup file for path under the given mode.
// BackupModeNone yields ""; unrecognized modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode != BackupModeNone {
		return path + BackupSuffix
	}
	return ""
}

// CreateBackup preserves path as a copy before a fix pass rewrites it, and
// reports whether a new backup was written. An existing backup is never
// overwritten, so the copy keeps holding the pre-fix original no matter how
// many runs follow. A missing original is a no-op.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	bak := BackupPath(path, cfg.Mode)
	if !cfg.Enabled || bak == "" {
		return false, nil
	}
	if err := ctxErr(ctx, "create backup"); err != nil {
		return false, err
	}

	switch _, err := os.Stat(bak); {
	case err == nil:
		// Preserved by an earlier run.
		return false, nil
	case !os.IsNotExist(err):
		return false, fmt.Errorf("check backup: %w", err)
	}

	created, err := clone(ctx, path, bak)
	if err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}
	return created, nil
}

// RestoreBackup copies a file's backup over the file itself, undoing any
// fixes written since the backup was taken. It reports whether a restore
// happened; without a backup there is nothing to do.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	if err := ctxErr(ctx, "restore backup"); err != nil {
		return false, err
	}

	bak := BackupPath(path, mode)
	if bak == "" {
		return false, nil
	}

	restored, err := clone(ctx, bak, path)
	if err != nil {
		return false, fmt.Errorf("restore backup: %w", err)
	}
	return restored, nil
}

// RemoveBackup deletes the backup for path, reporting whether one existed.
func RemoveBackup(path string, mode BackupMode) (bool, error) {
	bak := BackupPath(path, mode)
	if bak == "" {
		return false, nil
	}

	err := os.Remove(bak)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove %s: %w", bak, err)
	}
	return true, nil
}

// BackupExists reports whether a backup for path is present on disk.
func BackupExists(path string, mode BackupMode) bool {
	bak := BackupPath(path, mode)
	if bak == "" {
		return false
	}
	_, statErr := os.Stat(bak)
	return statErr == nil
}

// clone copies src to dst atomically, carrying the original permission bits
// over. A missing src reports (false, nil): there is nothing to copy.
func clone(ctx context.Context, src, dst string) (bool, error) {
	data, mode, err := snapshotFile(src)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := WriteAtomic(ctx, dst, data, mode); err != nil {
		return false, err
	}
	return true, nil
}

// snapshotFile reads a file's content and permission bits together.
func snapshotFile(path string) ([]byte, os.FileMode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, 0, err
	}
	return data, st.Mode(), nil
}
