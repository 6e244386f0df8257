package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/adoclint/pkg/runner"
)

// seedTree creates each file (with parent dirs) under dir with stub content.
func seedTree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, name := range files {
		path := filepath.Join(dir, name)
		err := os.MkdirAll(filepath.Dir(path), 0755)
		if err == nil {
			err = os.WriteFile(path, []byte("content"), 0644)
		}
		if err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
}

// discover runs discovery rooted at opts.WorkingDir and fails the test on error.
func discover(t *testing.T, opts runner.Options) []string {
	t.Helper()

	files, err := runner.Discover(context.Background(), opts)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	return files
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seed []string
		opts runner.Options
		want []string // relative to the temp dir, in result order
	}{
		{
			name: "single file by relative path",
			seed: []string{"con_overview.adoc"},
			opts: runner.Options{Paths: []string{"con_overview.adoc"}},
			want: []string{"con_overview.adoc"},
		},
		{
			name: "directory walk keeps only asciidoc",
			seed: []string{
				"assembly_getting-started.adoc",
				"modules/proc_installing.adoc",
				"modules/con_architecture.asciidoc",
				"src/main.go",
				"notes.txt",
			},
			opts: runner.Options{Paths: []string{"."}},
			want: []string{
				"assembly_getting-started.adoc",
				"modules/con_architecture.asciidoc",
				"modules/proc_installing.adoc",
			},
		},
		{
			name: "nil paths default to the working directory",
			seed: []string{"ref_settings.adoc"},
			want: []string{"ref_settings.adoc"},
		},
		{
			name: "custom extensions replace the defaults",
			seed: []string{"file.adoc", "file.asciidoc", "file.txt", "file.asc"},
			opts: runner.Options{Paths: []string{"."}, Extensions: []string{".asc", ".txt"}},
			want: []string{"file.asc", "file.txt"},
		},
		{
			name: "exclude globs prune whole subtrees",
			seed: []string{
				"assembly_install.adoc",
				"build/generated/doc.adoc",
				"archive/old/proc_legacy.adoc",
				"modules/proc_installing.adoc",
			},
			opts: runner.Options{Paths: []string{"."}, ExcludeGlobs: []string{"build/**", "archive/**"}},
			want: []string{"assembly_install.adoc", "modules/proc_installing.adoc"},
		},
		{
			name: "include globs narrow the walk",
			seed: []string{
				"assembly_install.adoc",
				"modules/proc_installing.adoc",
				"modules/ref_options.adoc",
				"snippets/note.adoc",
			},
			opts: runner.Options{Paths: []string{"."}, IncludeGlobs: []string{"modules/**"}},
			want: []string{"modules/proc_installing.adoc", "modules/ref_options.adoc"},
		},
		{
			name: "bare file patterns match at any depth",
			seed: []string{"con_overview.adoc", "modules/con_details.adoc", "modules/proc_installing.adoc"},
			opts: runner.Options{Paths: []string{"."}, IncludeGlobs: []string{"con_*.adoc"}},
			want: []string{"con_overview.adoc", "modules/con_details.adoc"},
		},
		{
			name: "hidden files and directories are skipped",
			seed: []string{"con_overview.adoc", ".hidden.adoc", ".git/config.adoc", "modules/.secret.adoc"},
			opts: runner.Options{Paths: []string{"."}},
			want: []string{"con_overview.adoc"},
		},
		{
			name: "multiple paths walk only what was asked for",
			seed: []string{"modules/doc.adoc", "assemblies/doc.adoc", "attic/doc.adoc"},
			opts: runner.Options{Paths: []string{"modules", "assemblies"}},
			want: []string{"assemblies/doc.adoc", "modules/doc.adoc"},
		},
		{
			name: "repeated spellings of one file deduplicate",
			seed: []string{"con_overview.adoc"},
			opts: runner.Options{Paths: []string{"con_overview.adoc", "./con_overview.adoc", "con_overview.adoc"}},
			want: []string{"con_overview.adoc"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			seedTree(t, dir, tc.seed...)
			tc.opts.WorkingDir = dir

			want := make([]string, len(tc.want))
			for i, rel := range tc.want {
				want[i] = filepath.Join(dir, rel)
			}

			if got := discover(t, tc.opts); !slices.Equal(got, want) {
				t.Errorf("Discover() = %v, want %v", got, want)
			}
		})
	}
}

func TestDiscoverOrderingIsStable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedTree(t, dir, "z.adoc", "a.adoc", "m.adoc", "b.adoc")

	opts := runner.Options{Paths: []string{"."}, WorkingDir: dir}

	first := discover(t, opts)
	if !slices.IsSorted(first) {
		t.Errorf("Discover() not sorted: %v", first)
	}
	for run := 1; run < 5; run++ {
		if again := discover(t, opts); !slices.Equal(again, first) {
			t.Errorf("run %d differs: %v vs %v", run, again, first)
		}
	}
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	opts := runner.Options{Paths: []string{"nonexistent"}, WorkingDir: t.TempDir()}
	if _, err := runner.Discover(context.Background(), opts); err == nil {
		t.Fatal("Discover() succeeded for a missing path")
	}
}

func TestDiscoverCancelledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedTree(t, dir, "a.adoc", "b.adoc", "c.adoc", "d.adoc")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Discover(ctx, runner.Options{Paths: []string{"."}, WorkingDir: dir}); err == nil {
		t.Log("Discover() ignored the cancelled context")
	}
}

func TestDiscoverFileSymlink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedTree(t, dir, "real.adoc")

	if err := os.Symlink(filepath.Join(dir, "real.adoc"), filepath.Join(dir, "link.adoc")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got := discover(t, runner.Options{Paths: []string{"."}, WorkingDir: dir})
	if len(got) != 2 {
		t.Errorf("Discover() = %v, want the real file and the symlink", got)
	}
}

func TestDiscoverDirectorySymlink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	seedTree(t, dir, "real/doc.adoc")

	// A directory outside the walk root, reachable only through a symlink.
	externalDir := t.TempDir()
	seedTree(t, externalDir, "external.adoc")
	if err := os.Symlink(externalDir, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	opts := runner.Options{Paths: []string{"."}, WorkingDir: dir}

	got := discover(t, opts)
	if len(got) != 1 || !strings.Contains(got[0], "real") {
		t.Errorf("without FollowSymlinks: Discover() = %v, want only real/doc.adoc", got)
	}

	opts.FollowSymlinks = true
	got = discover(t, opts)

	var haveReal, haveExternal bool
	for _, f := range got {
		haveReal = haveReal || strings.HasSuffix(f, "doc.adoc")
		haveExternal = haveExternal || strings.HasSuffix(f, "external.adoc")
	}
	if len(got) != 2 || !haveReal || !haveExternal {
		t.Errorf("with FollowSymlinks: Discover() = %v, want doc.adoc and external.adoc", got)
	}
}

func TestDefaultExtensionSet(t *testing.T) {
	t.Parallel()

	if got := runner.DefaultExtensions(); !slices.Equal(got, []string{".adoc", ".asciidoc"}) {
		t.Errorf("DefaultExtensions() = %v", got)
	}
}
