package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adoclint/internal/cli"
)

func testRoot() *cobra.Command {
	return cli.NewRootCommand(cli.BuildInfo{
		Version: "0.0.0-test",
		Commit:  "deadbeef",
		Date:    "2026-01-02",
	})
}

func findSub(t *testing.T, root *cobra.Command, name string) *cobra.Command {
	t.Helper()
	sub, _, err := root.Find([]string{name})
	if err != nil {
		t.Fatalf("subcommand %q not found: %v", name, err)
	}
	return sub
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	root := testRoot()
	if root == nil {
		t.Fatal("NewRootCommand returned nil")
	}
	if root.Use != "adoclint" {
		t.Errorf("Use = %q, want adoclint", root.Use)
	}
	if root.Short == "" || root.Long == "" {
		t.Error("expected Short and Long descriptions to be set")
	}

	for _, name := range []string{"lint", "rules", "init", "version"} {
		sub := findSub(t, root, name)
		if sub.Name() != name {
			t.Errorf("Find(%q) resolved to %q", name, sub.Name())
		}
	}
}

func TestLintCommandFlags(t *testing.T) {
	t.Parallel()

	lint := findSub(t, testRoot(), "lint")

	for _, name := range []string{
		"fix", "dry-run", "format", "jobs", "ignore", "enable",
		"disable", "fix-rules", "no-backups", "type", "strict",
		"rule-format", "summary-order",
	} {
		if lint.Flags().Lookup(name) == nil {
			t.Errorf("lint command missing --%s", name)
		}
	}

	if f := lint.Flags().Lookup("format"); f != nil && f.DefValue != "text" {
		t.Errorf("--format default = %q, want text", f.DefValue)
	}
	if f := lint.Flags().Lookup("rule-format"); f != nil && f.DefValue != "name" {
		t.Errorf("--rule-format default = %q, want name", f.DefValue)
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	root := testRoot()
	for _, name := range []string{"debug", "config", "color"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing global --%s", name)
		}
	}

	if f := root.PersistentFlags().Lookup("color"); f != nil && f.DefValue != "auto" {
		t.Errorf("--color default = %q, want auto", f.DefValue)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	root := testRoot()
	root.SetArgs([]string{"version"})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	if err := root.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"adoclint", "0.0.0-test", "deadbeef"} {
		if !strings.Contains(got, want) {
			t.Errorf("version output missing %q:\n%s", want, got)
		}
	}
}

func TestLintCommandAcceptsPathArgs(t *testing.T) {
	t.Parallel()

	lint := findSub(t, testRoot(), "lint")

	args := []string{"proc_installing-widgets.adoc", "con_widget-overview.adoc", "modules/"}
	if err := lint.Args(lint, args); err != nil {
		t.Errorf("lint should accept path arguments, got: %v", err)
	}
}

// TestLintFlagDefaults pins the defaults and help text of the lint flags
// that steer output shape.
func TestLintFlagDefaults(t *testing.T) {
	t.Parallel()

	lint := findSub(t, testRoot(), "lint")

	cases := []struct {
		flag     string
		def      string
		usageHas string
	}{
		{flag: "rule-format", def: "name", usageHas: "combined"},
		{flag: "summary-order", def: "rules", usageHas: "files"},
		{flag: "format", def: "text", usageHas: "summary"},
		{flag: "type", def: "", usageHas: "procedure"},
		{flag: "strict", def: "false", usageHas: "warnings"},
	}

	for _, tc := range cases {
		f := lint.Flags().Lookup(tc.flag)
		if f == nil {
			t.Fatalf("--%s should exist", tc.flag)
		}
		if f.DefValue != tc.def {
			t.Errorf("--%s default = %q, want %q", tc.flag, f.DefValue, tc.def)
		}
		if tc.usageHas != "" && !strings.Contains(f.Usage, tc.usageHas) {
			t.Errorf("--%s usage %q missing %q", tc.flag, f.Usage, tc.usageHas)
		}
	}
}
