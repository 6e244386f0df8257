//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binPath = "bin/adoclint"
	mainPkg = "./cmd/adoclint"
)

// Default is what a plain 'stave' invocation runs.
var Default = Build

// Aliases maps short names onto the targets people reach for most.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"tv":  Test.Verbose,
	"l":   Lint.Default,
	"fmt": Lint.Fmt,
	"c":   Check,
	"i":   Install,
	"d":   Dogfood,
	"cov": Coverage,
	"cmp": Bench.Compare,
	"fz":  Fuzz.Default,
}

// Test groups the test-running targets.
type Test st.Namespace

// Lint groups formatting and static-analysis targets.
type Lint st.Namespace

// CI groups targets the pipeline runs.
type CI st.Namespace

// Bench groups benchmark and comparison targets.
type Bench st.Namespace

// Fuzz groups the fuzzing targets.
type Fuzz st.Namespace

// Build compiles the CLI into bin/adoclint unless its inputs are unchanged.
func Build() error {
	stale, err := target.Dir(binPath, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Println(binPath, "is up to date")
		return nil
	}
	fmt.Println("Building", binPath+"...")
	return sh.RunV("go", "build", "-ldflags", linkerFlags(), "-o", binPath, mainPkg)
}

// Check formats, lints, vets, and tests in one pass.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Lint.Vet, Test.Default)
}

// Clean removes everything Build and Coverage leave behind.
func Clean() error {
	fmt.Println("Removing build artifacts...")
	for _, artifact := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(artifact); err != nil {
			return err
		}
	}
	return nil
}

// Install puts adoclint into GOBIN (or GOPATH/bin).
func Install() error {
	fmt.Println("Installing adoclint...")
	return sh.RunV("go", "install", "-ldflags", linkerFlags(), mainPkg)
}

// Uninstall removes a previously installed adoclint binary.
func Uninstall() error {
	dir, err := installDir()
	if err != nil {
		return err
	}
	bin := filepath.Join(dir, "adoclint")
	switch err := os.Remove(bin); {
	case err == nil:
		fmt.Println("Removed", bin)
		return nil
	case errors.Is(err, fs.ErrNotExist):
		fmt.Println("adoclint is not installed")
		return nil
	default:
		return fmt.Errorf("remove %s: %w", bin, err)
	}
}

// Deps downloads modules and prunes go.mod and go.sum.
func Deps() error {
	fmt.Println("Syncing module dependencies...")
	for _, args := range [][]string{
		{"mod", "download"},
		{"mod", "tidy"},
	} {
		if err := sh.RunV("go", args...); err != nil {
			return err
		}
	}
	return nil
}

// Coverage renders the coverage profile as HTML and opens it.
func Coverage() error {
	st.Deps(Test.Default)
	fmt.Println("Rendering coverage report...")
	if err := sh.RunV("go", "tool", "cover", "-o", "coverage.html", "-html=coverage.out"); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return sh.RunV(opener(), "coverage.html")
}

// Dogfood lints the cloned benchmark corpus with a fresh build. Handy for
// eyeballing rule output against real documentation repos.
func Dogfood() error {
	st.Deps(Build)
	if err := script("clone-repos.sh"); err != nil {
		return err
	}
	return sh.RunV(binPath, "lint", "--format", "summary", "bench/repos")
}

// --- Test targets ---

// Default runs the test suite through gotestsum with the race detector on.
func (Test) Default() error {
	fmt.Println("Testing...")
	return runTests("pkgname-and-test-fails")
}

// Verbose is Default with per-test output.
func (Test) Verbose() error {
	fmt.Println("Testing (verbose)...")
	return runTests("standard-verbose")
}

// runTests invokes gotestsum with the shared race and coverage flags.
func runTests(format string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go", "tool", "gotestsum", "-f", format, "--",
		"-v", "-race", "-p", procs, "-parallel", procs,
		"-coverprofile=coverage.out", "-covermode=atomic", "./...")
}

// --- Lint targets ---

// Default runs golangci-lint and applies fixes.
func (Lint) Default() error {
	fmt.Println("Linting (with fixes)...")
	return golangci("--fix")
}

// CI runs golangci-lint read-only, the way the pipeline does.
func (Lint) CI() error {
	fmt.Println("Linting...")
	return golangci()
}

// Fmt rewrites all Go sources with gofmt, printing each file it touches.
func (Lint) Fmt() error {
	fmt.Println("Formatting...")
	return sh.RunV("gofmt", "-l", "-w", ".")
}

// FmtCheck fails when any file needs gofmt, without touching it.
func (Lint) FmtCheck() error {
	dirty, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if files := strings.TrimSpace(dirty); files != "" {
		return fmt.Errorf("gofmt needed for:\n%s\nRun 'stave fmt' to fix", files)
	}
	fmt.Println("✓ Formatting clean")
	return nil
}

// Vet runs go vet over the module.
func (Lint) Vet() error {
	fmt.Println("Vetting...")
	return sh.RunV("go", "vet", "./...")
}

func golangci(extra ...string) error {
	args := append([]string{"run"}, extra...)
	return sh.RunV("golangci-lint", append(args, "./...")...)
}

// --- CI targets ---

// Gate mirrors the full CI pipeline locally.
func (CI) Gate() error {
	fmt.Println("Running the full CI gate...")
	st.SerialDeps(Lint.FmtCheck, Lint.Vet, Lint.CI, Build, Test.Default, CI.ModTidy, CI.Cross)
	fmt.Println("\n✓ CI gate passed")
	return nil
}

// ModTidy fails when go.mod or go.sum would change under 'go mod tidy'.
func (CI) ModTidy() error {
	fmt.Println("Verifying go.mod and go.sum are tidy...")
	if err := sh.RunV("go", "mod", "tidy", "-diff"); err != nil {
		return errors.New("module files are not tidy; run 'go mod tidy' and commit")
	}
	fmt.Println("✓ Module files are tidy")
	return nil
}

// Cross compiles the CLI for every release platform to surface
// platform-specific breakage before the release pipeline does.
func (CI) Cross() error {
	fmt.Println("Cross-compiling release targets...")
	platforms := []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
	}
	for _, platform := range platforms {
		fmt.Printf("  %s...\n", platform)
		goos, goarch, _ := strings.Cut(platform, "/")
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("%s: %w", platform, err)
		}
	}
	fmt.Println("✓ Cross-compilation clean")
	return nil
}

// --- Bench targets ---

// Default runs the Go micro-benchmarks.
func (Bench) Default() error {
	fmt.Println("Benchmarking...")
	return sh.RunV("go", "tool", "gotestsum", "-f", "pkgname-and-test-fails", "--",
		"-bench=.", "-benchmem", "./...")
}

// Compare benchmarks adoclint against vale on real documentation repos
// and plots the results.
func (Bench) Compare() error {
	fmt.Println("Comparing adoclint against vale...")
	if err := benchSetup(); err != nil {
		return err
	}
	if err := script("run-bench.sh"); err != nil {
		return err
	}
	return script("generate-plots.sh")
}

// Fast runs a single-iteration comparison on the smallest repos only.
func (Bench) Fast() error {
	fmt.Println("Quick adoclint vs vale pass...")
	if err := benchSetup(); err != nil {
		return err
	}
	return sh.RunWithV(map[string]string{"BENCH_RUNS": "1"}, filepath.Join("bench", "scripts", "run-bench.sh"))
}

// benchSetup builds the binary, checks external tooling, and clones the corpus.
func benchSetup() error {
	st.Deps(Build)
	if err := checkBenchTools(); err != nil {
		return err
	}
	return script("clone-repos.sh")
}

// --- Fuzz targets ---

// Default gives every fuzz target a short burst. Set FUZZTIME for longer runs.
func (Fuzz) Default() error {
	span := cmp.Or(os.Getenv("FUZZTIME"), "15s")
	fmt.Println("Fuzzing", span, "per target...")
	targets := [][2]string{
		{"./pkg/fix", "FuzzDiffInvariants"},
		{"./pkg/fix", "FuzzSingleEditApply"},
		{"./pkg/fsutil", "FuzzWriteAtomicRoundTrip"},
		{"./pkg/fsutil", "FuzzReadFileSnapshot"},
	}
	for _, tgt := range targets {
		if err := sh.RunV("go", "test", "-run", "^$", "-fuzz", "^"+tgt[1]+"$", "-fuzztime", span, tgt[0]); err != nil {
			return fmt.Errorf("%s in %s: %w", tgt[1], tgt[0], err)
		}
	}
	return nil
}

// --- Helpers (not targets) ---

// script runs one of the helper scripts under bench/scripts.
func script(name string) error {
	if err := sh.RunV(filepath.Join("bench", "scripts", name)); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// linkerFlags injects version metadata resolved from git into package main.
func linkerFlags() string {
	git := func(args ...string) string {
		out, _ := sh.Output("git", args...)
		return strings.TrimSpace(out)
	}
	version := cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(git("rev-parse", "--short", "HEAD"), "none")
	stamp := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, stamp)
}

// installDir resolves the directory 'go install' writes binaries to.
func installDir() (string, error) {
	if out, err := sh.Output("go", "env", "GOBIN"); err == nil && strings.TrimSpace(out) != "" {
		return strings.TrimSpace(out), nil
	}
	out, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return "", fmt.Errorf("resolve GOPATH: %w", err)
	}
	return filepath.Join(strings.TrimSpace(out), "bin"), nil
}

// opener picks the platform command that opens a file with its default app.
func opener() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// checkBenchTools fails fast when a tool the comparison scripts call is missing.
func checkBenchTools() error {
	if !haveGNUTime() {
		return errors.New("GNU time is required for memory measurements (brew install gnu-time)")
	}
	install := map[string]string{
		"vale":    "brew install vale",
		"jq":      "brew install jq",
		"gnuplot": "brew install gnuplot",
	}
	for tool, hint := range install {
		if exec.Command(tool, "--version").Run() != nil { //nolint:gosec // static command line
			return fmt.Errorf("%s is not installed (%s)", tool, hint)
		}
	}
	return nil
}

// haveGNUTime reports whether gtime or a GNU /usr/bin/time is on the PATH.
// run-bench.sh needs one of them for peak-memory numbers.
func haveGNUTime() bool {
	if exec.Command("which", "gtime").Run() == nil { //nolint:gosec // static command line
		return true
	}
	// Some /usr/bin/time implementations exit non-zero on --version.
	out, _ := exec.Command("/usr/bin/time", "--version").CombinedOutput() //nolint:gosec // static command line
	return strings.Contains(string(out), "GNU")
}
