package fsutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is applied when callers pass mode 0.
const DefaultFileMode os.FileMode = 0644

// WriteAtomic writes content to path atomically. The content is staged in a
// temp file in the same directory, synced, then renamed over the target, so
// readers never observe a partially written file.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctxErr(ctx, "write file"); err != nil {
		return err
	}

	tmp, err := stageTemp(path, content)
	if err != nil {
		return err
	}

	if err := os.Chmod(tmp, fallbackMode(mode)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("chmod %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}

func fallbackMode(mode os.FileMode) os.FileMode {
	if mode != 0 {
		return mode
	}
	return DefaultFileMode
}

// stageTemp writes content to a fresh temp file next to path and returns the
// temp path. The temp file is removed on any error.
func stageTemp(path string, content []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmp := f.Name()

	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmp, nil
}

// WriteAtomicIfChanged writes content to path atomically only when it differs
// from what is already on disk. A missing file always gets written. Returns
// true if a write happened.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctxErr(ctx, "write file"); err != nil {
		return false, err
	}

	prev, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to the write.
	case err != nil:
		return false, fmt.Errorf("read existing file %s: %w", path, err)
	case bytes.Equal(prev, content):
		return false, nil
	}

	err = WriteAtomic(ctx, path, content, mode)
	if err != nil {
		return false, err
	}
	return true, nil
}
