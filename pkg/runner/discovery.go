package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover finds AsciiDoc files matching opts under the working directory
// and returns them as a sorted list of absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	wd, err := absWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	d := &discoverer{
		workDir:    wd,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
	}

	dedup := make(map[string]struct{})
	var found []string
	add := func(path string) {
		if _, ok := dedup[path]; !ok {
			dedup[path] = struct{}{}
			found = append(found, path)
		}
	}

	for _, arg := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := arg
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(wd, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		switch {
		case info.IsDir():
			sub, walkErr := d.walk(ctx, abs)
			if walkErr != nil {
				return nil, walkErr
			}
			for _, f := range sub {
				add(f)
			}
		case d.matchFile(abs):
			add(abs)
		}
	}

	slices.Sort(found)
	return found, nil
}

// absWorkDir absolutizes dir, defaulting to os.Getwd().
func absWorkDir(dir string) (string, error) {
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolve absolute path: %w", err)
		}
		return abs, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return wd, nil
}

// discoverer carries the matching state resolved once per Discover call.
type discoverer struct {
	workDir    string
	extensions []string
	opts       Options
}

// rel makes path relative to the working directory for glob matching,
// falling back to the path itself.
func (d *discoverer) rel(path string) string {
	relPath, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// walk recursively collects matching files under root. Hidden entries are
// skipped, permission errors are tolerated, and directory symlinks are
// followed only when FollowSymlinks is set.
func (d *discoverer) walk(ctx context.Context, root string) ([]string, error) {
	var out []string

	err := filepath.WalkDir(root, func(path string, de fs.DirEntry, werr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if werr != nil {
			if os.IsPermission(werr) {
				return nil
			}
			return werr
		}

		if de.IsDir() {
			if d.skipDir(root, path, de) {
				return filepath.SkipDir
			}
			return nil
		}

		if de.Type()&fs.ModeSymlink != 0 {
			sub, handled, err := d.walkSymlink(ctx, path)
			if err != nil {
				return err
			}
			if handled {
				out = append(out, sub...)
				return nil
			}
			// Link targets a regular file; run the usual checks below.
		}

		if !strings.HasPrefix(de.Name(), ".") && d.matchFile(path) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	return out, nil
}

// skipDir reports whether a directory should be pruned from the walk:
// hidden directories other than the root itself, and excluded ones.
func (d *discoverer) skipDir(root, path string, de fs.DirEntry) bool {
	if path != root && strings.HasPrefix(de.Name(), ".") {
		return true
	}
	return matchesAnyPattern(d.rel(path), d.opts.ExcludeGlobs)
}

// walkSymlink resolves a symlink entry. handled is false when the link
// points at a regular file, which then flows through the normal file
// checks; broken or inaccessible links are consumed silently.
func (d *discoverer) walkSymlink(ctx context.Context, path string) (files []string, handled bool, err error) {
	realPath, evalErr := filepath.EvalSymlinks(path)
	if evalErr != nil {
		return nil, true, nil //nolint:nilerr // broken link, skip
	}
	info, statErr := os.Stat(realPath)
	if statErr != nil {
		return nil, true, nil //nolint:nilerr // inaccessible target, skip
	}
	if !info.IsDir() {
		return nil, false, nil
	}
	if !d.opts.FollowSymlinks {
		return nil, true, nil
	}

	// Walk the target rather than the link itself so WalkDir's Lstat-based
	// root handling cannot recurse through link cycles.
	files, err = d.walk(ctx, realPath)
	return files, true, err
}

// matchFile reports whether path passes the extension, exclude, and
// include filters.
func (d *discoverer) matchFile(path string) bool {
	rel := d.rel(path)
	return hasExt(path, d.extensions) &&
		!matchesAnyPattern(rel, d.opts.ExcludeGlobs) &&
		(len(d.opts.IncludeGlobs) == 0 || matchesAnyPattern(rel, d.opts.IncludeGlobs))
}

func hasExt(path string, exts []string) bool {
	want := strings.ToLower(filepath.Ext(path))
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.ToLower(e) == want
	})
}

func matchesAnyPattern(relPath string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pat string) bool {
		return matchGlob(relPath, pat)
	})
}

// matchGlob matches path against a doublestar pattern such as "*.adoc",
// "modules/**" or "**/generated". Bare patterns also match by file name so
// "con_*.adoc" applies at any depth.
func matchGlob(path, pat string) bool {
	path, pat = filepath.ToSlash(path), filepath.ToSlash(pat)

	if ok, err := doublestar.Match(pat, path); err == nil && ok {
		return true
	}
	ok, err := doublestar.Match(pat, filepath.Base(path))
	return err == nil && ok
}
