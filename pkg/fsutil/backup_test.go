package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/adoclint/pkg/fsutil"
)

var sidecarBackups = fsutil.BackupConfig{
	Enabled: true,
	Mode:    fsutil.BackupModeSidecar,
}

// cancelledCtx returns a context that is already cancelled.
func cancelledCtx() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

// seedBackup plants a sidecar backup for path and returns its location.
func seedBackup(t *testing.T, path, content string) string {
	t.Helper()
	bp := fsutil.BackupPath(path, fsutil.BackupModeSidecar)
	if err := os.WriteFile(bp, []byte(content), 0644); err != nil {
		t.Fatalf("seed backup: %v", err)
	}
	return bp
}

func readBack(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func createBackup(t *testing.T, path string, cfg fsutil.BackupConfig) bool {
	t.Helper()
	created, err := fsutil.CreateBackup(context.Background(), path, cfg)
	if err != nil {
		t.Fatalf("CreateBackup(%s): %v", path, err)
	}
	return created
}

func restoreBackup(t *testing.T, path string, mode fsutil.BackupMode) bool {
	t.Helper()
	restored, err := fsutil.RestoreBackup(context.Background(), path, mode)
	if err != nil {
		t.Fatalf("RestoreBackup(%s): %v", path, err)
	}
	return restored
}

func removeBackup(t *testing.T, path string, mode fsutil.BackupMode) bool {
	t.Helper()
	removed, err := fsutil.RemoveBackup(path, mode)
	if err != nil {
		t.Fatalf("RemoveBackup(%s): %v", path, err)
	}
	return removed
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		path, want string
		mode       fsutil.BackupMode
	}{
		{name: "sidecar appends suffix", path: "modules/proc_installing-widgets.adoc", mode: fsutil.BackupModeSidecar, want: "modules/proc_installing-widgets.adoc.adoclint.bak"},
		{name: "none yields empty path", path: "modules/proc_installing-widgets.adoc", mode: fsutil.BackupModeNone},
		{name: "unknown mode behaves like sidecar", path: "assembly_getting-started.adoc", mode: fsutil.BackupMode("tarball"), want: "assembly_getting-started.adoc.adoclint.bak"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := fsutil.BackupPath(tc.path, tc.mode); got != tc.want {
				t.Errorf("BackupPath(%q, %q) = %q, want %q", tc.path, tc.mode, got, tc.want)
			}
		})
	}
}

func TestDefaultBackupConfig(t *testing.T) {
	t.Parallel()

	def := fsutil.DefaultBackupConfig()
	if def.Enabled {
		t.Error("backups should be opt-in")
	}
	if def.Mode != fsutil.BackupModeSidecar {
		t.Errorf("default mode = %q, want %q", def.Mode, fsutil.BackupModeSidecar)
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	t.Run("copies content and mode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "proc_installing-widgets.adoc")
		if err := os.WriteFile(path, []byte(sampleModule), 0600); err != nil {
			t.Fatalf("write fixture: %v", err)
		}

		if !createBackup(t, path, sidecarBackups) {
			t.Fatal("backup not created")
		}

		bp := fsutil.BackupPath(path, sidecarBackups.Mode)
		if got := readBack(t, bp); got != sampleModule {
			t.Errorf("backup content = %q, want %q", got, sampleModule)
		}

		st, err := os.Stat(bp)
		if err != nil {
			t.Fatalf("stat %s: %v", bp, err)
		}
		if perm := st.Mode().Perm(); perm != 0600 {
			t.Errorf("backup perm = %o, want %o", perm, 0600)
		}
	})

	t.Run("never overwrites an existing backup", func(t *testing.T) {
		path := writeFixture(t, "module.adoc", "content after first fix pass")
		bp := seedBackup(t, path, "pristine original")

		if createBackup(t, path, sidecarBackups) {
			t.Error("existing backup should win")
		}
		if got := readBack(t, bp); got != "pristine original" {
			t.Errorf("backup content = %q, want %q", got, "pristine original")
		}
	})

	t.Run("disabled config is a no-op", func(t *testing.T) {
		path := writeFixture(t, "module.adoc", sampleModule)
		cfg := fsutil.BackupConfig{Enabled: false, Mode: fsutil.BackupModeSidecar}

		if createBackup(t, path, cfg) {
			t.Error("disabled config still reported a backup")
		}
		if fsutil.BackupExists(path, cfg.Mode) {
			t.Error("backup file present despite disabled config")
		}
	})

	t.Run("mode none is a no-op", func(t *testing.T) {
		path := writeFixture(t, "module.adoc", sampleModule)
		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeNone}

		if createBackup(t, path, cfg) {
			t.Error("mode none still reported a backup")
		}
	})

	t.Run("missing original is not an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.adoc")
		if createBackup(t, path, sidecarBackups) {
			t.Error("nothing to back up, want created = false")
		}
	})

	t.Run("cancelled context fails", func(t *testing.T) {
		path := writeFixture(t, "module.adoc", sampleModule)
		if _, err := fsutil.CreateBackup(cancelledCtx(), path, sidecarBackups); err == nil {
			t.Fatal("CreateBackup ran despite cancelled context")
		}
	})
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	t.Run("replaces file with backup content", func(t *testing.T) {
		path := writeFixture(t, "module.adoc", "content after a bad fix")
		seedBackup(t, path, sampleModule)

		if !restoreBackup(t, path, sidecarBackups.Mode) {
			t.Fatal("backup not restored")
		}
		if got := readBack(t, path); got != sampleModule {
			t.Errorf("content = %q, want %q", got, sampleModule)
		}
	})

	t.Run("no backup means nothing to restore", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "module.adoc")
		if restoreBackup(t, path, sidecarBackups.Mode) {
			t.Error("restored without a backup on disk")
		}
	})

	t.Run("mode none is a no-op", func(t *testing.T) {
		if restoreBackup(t, "/any/module.adoc", fsutil.BackupModeNone) {
			t.Error("mode none should never restore")
		}
	})
}

func TestRemoveBackup(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing backup", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "module.adoc")
		seedBackup(t, path, sampleModule)

		if !removeBackup(t, path, sidecarBackups.Mode) {
			t.Fatal("backup not removed")
		}
		if fsutil.BackupExists(path, sidecarBackups.Mode) {
			t.Error("backup still on disk after removal")
		}
	})

	t.Run("missing backup is not an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "module.adoc")
		if removeBackup(t, path, sidecarBackups.Mode) {
			t.Error("nothing to remove, want removed = false")
		}
	})

	t.Run("mode none is a no-op", func(t *testing.T) {
		if removeBackup(t, "/any/module.adoc", fsutil.BackupModeNone) {
			t.Error("mode none should never remove")
		}
	})
}

func TestBackupExists(t *testing.T) {
	t.Parallel()

	t.Run("true when backup present", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "module.adoc")
		seedBackup(t, path, sampleModule)

		if !fsutil.BackupExists(path, sidecarBackups.Mode) {
			t.Error("backup on disk went undetected")
		}
	})

	t.Run("false when backup absent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "module.adoc")
		if fsutil.BackupExists(path, sidecarBackups.Mode) {
			t.Error("phantom backup reported")
		}
	})

	t.Run("false for mode none", func(t *testing.T) {
		if fsutil.BackupExists("/any/module.adoc", fsutil.BackupModeNone) {
			t.Error("mode none should never report a backup")
		}
	})
}
