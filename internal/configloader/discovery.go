package configloader

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
)

// ConfigPaths names the config files a run may draw from, lowest
// precedence first. Empty fields mean the layer has no file.
type ConfigPaths struct {
	System   string // machine-wide, e.g. /etc/adoclint/config.yaml
	User     string // per-user, e.g. ~/.config/adoclint/config.yaml
	Project  string // nearest project file walking up from the work dir
	Explicit string // forced by --config
}

// projectConfigNames are the config file names we search for, in order of
// preference.
//
//nolint:gochecknoglobals // Static name table.
var projectConfigNames = []string{
	".adoclint.yml",
	".adoclint.yaml",
	".adoclint.json",
	".adoclint.jsonc",
	"adoclint.yml",
	"adoclint.yaml",
}

// vcsMarkers mark a repository root, where the upward search stops.
//
//nolint:gochecknoglobals // Static marker set.
var vcsMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths locates the machine, user, and project configuration
// files relative to workDir. Layers without a file come back empty;
// only a failed upward walk is an error.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("project config: %w", err)
	}

	return &ConfigPaths{
		System:  systemConfigPath(),
		User:    userConfigPath(),
		Project: project,
	}, nil
}

// systemConfigPath returns the machine-wide config file, or "".
func systemConfigPath() string {
	dir := "/etc/adoclint"
	if runtime.GOOS == "windows" {
		programData := cmp.Or(os.Getenv("ProgramData"), `C:\ProgramData`)
		dir = filepath.Join(programData, "adoclint")
	}
	return firstExisting(dir, "config.yaml", "config.yml")
}

// userConfigPath returns the per-user config file, or "". It honors
// $XDG_CONFIG_HOME and falls back to ~/.config.
func userConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(homeDir, ".config")
	}
	return firstExisting(filepath.Join(base, "adoclint"), "config.yaml", "config.yml")
}

// FindProjectConfig walks from startDir toward the filesystem root and
// returns the first project config file it sees. The walk stops at a
// VCS root or the home directory; finding nothing is not an error.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		startDir = cwd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("absolutize %q: %w", startDir, err)
	}

	// A missing home dir only disables the home boundary check.
	home, _ := os.UserHomeDir()

	for {
		if err := cancelled(ctx); err != nil {
			return "", err
		}

		if path := firstExisting(dir, projectConfigNames...); path != "" {
			return path, nil
		}

		// Stop at a VCS root, the home directory, or the filesystem root.
		parent := filepath.Dir(dir)
		if parent == dir || isVCSRoot(dir) || (home != "" && dir == home) {
			return "", nil
		}
		dir = parent
	}
}

// firstExisting returns the first of names present as a regular file
// under dir, or "".
func firstExisting(dir string, names ...string) string {
	i := slices.IndexFunc(names, func(name string) bool {
		return fileExists(filepath.Join(dir, name))
	})
	if i < 0 {
		return ""
	}
	return filepath.Join(dir, names[i])
}

// isVCSRoot reports whether dir carries a repository marker like .git.
func isVCSRoot(dir string) bool {
	return slices.ContainsFunc(vcsMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

// fileExists reports whether path names a regular file.
func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// cancelled surfaces context cancellation as a wrapped error.
func cancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled: %w", err)
	}
	return nil
}

// IsJSONConfig reports whether path names a JSON or JSONC config file.
func IsJSONConfig(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return true
	}
	return false
}
