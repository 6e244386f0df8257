// Package fsutil provides file system utilities and safety primitives for
// adoclint: atomic writes, content hashing, outside-modification detection,
// and backups.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors, matched with errors.Is.
var (
	ErrNilFileInfo      = errors.New("nil FileInfo")
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// FileInfo captures the state of a file at a point in time, so a later
// write can notice the file changed underneath it.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [32]byte // SHA-256 of the content
}

// ReadFile reads a file and returns its content along with the metadata
// needed for modification detection.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctxErr(ctx, "read file"); err != nil {
		return nil, nil, err
	}

	st, err := os.Stat(path)
	switch {
	case err != nil:
		return nil, nil, pathErr("stat", path, err)
	case st.IsDir():
		return nil, nil, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, pathErr("read", path, err)
	}

	info := &FileInfo{Path: path, Mode: st.Mode(), ModTime: st.ModTime(), Size: st.Size()}
	info.Hash = sha256.Sum256(data)
	return data, info, nil
}

// CheckModified returns true if the file changed since info was captured.
// A size mismatch is proof enough; otherwise the content is re-read and
// hashed, so a touch with identical bytes does not count as a change.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	if err := precheck(ctx, info); err != nil {
		return false, err
	}

	st, gone, err := currentStat(info)
	if gone || err != nil {
		return gone, err
	}
	if st.Size() != info.Size {
		return true, nil
	}

	data, err := os.ReadFile(info.Path)
	if err != nil {
		return false, pathErr("read", info.Path, err)
	}
	return sha256.Sum256(data) != info.Hash, nil
}

// CheckModifiedQuick compares only mod time and size. False negatives are
// possible; use CheckModified when they are not acceptable.
func CheckModifiedQuick(ctx context.Context, info *FileInfo) (bool, error) {
	if err := precheck(ctx, info); err != nil {
		return false, err
	}

	st, gone, err := currentStat(info)
	if gone || err != nil {
		return gone, err
	}
	return statDiffers(st, info), nil
}

func statDiffers(st os.FileInfo, info *FileInfo) bool {
	return !st.ModTime().Equal(info.ModTime) || st.Size() != info.Size
}

// currentStat stats the tracked path. gone is true when the file no longer
// exists, which counts as a modification.
func currentStat(info *FileInfo) (os.FileInfo, bool, error) {
	st, err := os.Stat(info.Path)
	if err == nil {
		return st, false, nil
	}
	if os.IsNotExist(err) {
		return nil, true, nil
	}
	return nil, false, fmt.Errorf("stat %s: %w", info.Path, err)
}

func precheck(ctx context.Context, info *FileInfo) error {
	if info == nil {
		return ErrNilFileInfo
	}
	return ctxErr(ctx, "check modified")
}

// pathErr wraps a filesystem error with the matching sentinel so callers
// can branch on errors.Is.
func pathErr(op, path string, err error) error {
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	if os.IsPermission(err) {
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}

// ctxErr reports a cancelled or expired context without blocking.
func ctxErr(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
