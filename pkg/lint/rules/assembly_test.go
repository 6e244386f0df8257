package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/lint"
)

const validAssembly = "ifdef::context[:parent-context: {context}]\n" +
	":context: widgets\n" +
	"\n" +
	"= Assembling widgets\n" +
	"\n" +
	"include::modules/proc_install.adoc[leveloffset=+1]\n" +
	"\n" +
	"ifdef::parent-context[:context: {parent-context}]\n" +
	"ifndef::parent-context[:!context:]\n"

func TestContextConditionalsRule(t *testing.T) {
	cases := []struct {
		name      string
		src       string
		wantCount int
		wantMsgs  []string
	}{
		{name: "complete context plumbing", src: validAssembly},
		{
			name:      "save and restore both missing",
			src:       "= Assembling widgets\n\ninclude::modules/proc_install.adoc[]\n",
			wantCount: 2,
			wantMsgs:  []string{"does not save", "does not restore"},
		},
		{
			name: "restore missing",
			src: "ifdef::context[:parent-context: {context}]\n" +
				"= Assembling widgets\n\ninclude::modules/proc_install.adoc[]\n",
			wantCount: 1,
			wantMsgs:  []string{"does not restore"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := runRule(t, NewContextConditionalsRule(), "assembly_widgets.adoc", adoc.TypeAssembly, tc.src)
			assert.Len(t, got, tc.wantCount)

			for i, msg := range tc.wantMsgs {
				if i < len(got) {
					assert.Contains(t, got[i].Message, msg)
				}
			}
		})
	}
}

func TestContextConditionalsRuleFix(t *testing.T) {
	fixed := fixUntilClean(t, NewContextConditionalsRule(), "assembly_widgets.adoc", adoc.TypeAssembly,
		"= Assembling widgets\n\ninclude::modules/proc_install.adoc[]\n")
	want := assemblyTopIfdef + "\n" +
		"= Assembling widgets\n\ninclude::modules/proc_install.adoc[]\n" +
		"\n" + assemblyBottomIfdef + "\n" + assemblyBottomIfndef + "\n"
	assert.Equal(t, want, fixed)
}

func TestContextAttributeRule(t *testing.T) {
	cases := []struct {
		name      string
		src       string
		wantCount int
	}{
		{name: "context declared", src: ":context: widgets\n\n= Assembling widgets\n"},
		{name: "context missing", src: "= Assembling widgets\n", wantCount: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := runRule(t, NewContextAttributeRule(), "assembly_widgets.adoc", adoc.TypeAssembly, tc.src)
			assert.Len(t, got, tc.wantCount)
		})
	}
}

func TestContextAttributeRuleFix(t *testing.T) {
	fixed := fixUntilClean(t, NewContextAttributeRule(), "assembly_widgets.adoc", adoc.TypeAssembly,
		"= Assembling widgets\n")
	assert.Equal(t, contextAttrTODO+"\n= Assembling widgets\n", fixed)
}

func TestIncludeSpacingRule(t *testing.T) {
	cases := []struct {
		name      string
		src       string
		wantCount int
	}{
		{name: "separated includes", src: "include::modules/a.adoc[]\n\ninclude::modules/b.adoc[]\n"},
		{name: "adjacent includes", src: "include::modules/a.adoc[]\ninclude::modules/b.adoc[]\n", wantCount: 1},
		{name: "every adjacent pair flagged", src: "include::modules/a.adoc[]\ninclude::modules/b.adoc[]\ninclude::modules/c.adoc[]\n", wantCount: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := runRule(t, NewIncludeSpacingRule(), "assembly_widgets.adoc", adoc.TypeAssembly, tc.src)
			assert.Len(t, got, tc.wantCount)
		})
	}
}

func TestIncludeSpacingRuleFix(t *testing.T) {
	fixed := fixUntilClean(t, NewIncludeSpacingRule(), "assembly_widgets.adoc", adoc.TypeAssembly,
		"include::modules/a.adoc[]\ninclude::modules/b.adoc[]\ninclude::modules/c.adoc[]\n")
	assert.Equal(t,
		"include::modules/a.adoc[]\n\ninclude::modules/b.adoc[]\n\ninclude::modules/c.adoc[]\n",
		fixed)
}

func TestAssemblyHeadingRule(t *testing.T) {
	cases := []struct {
		name      string
		src       string
		wantCount int
	}{
		{name: "subheadings fine", src: "= Assembling widgets\n\n== Prerequisites\n"},
		{name: "deep heading flagged", src: "= Assembling widgets\n\n=== Deep section\n", wantCount: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := runRule(t, NewAssemblyHeadingRule(), "assembly_widgets.adoc", adoc.TypeAssembly, tc.src)
			assert.Len(t, got, tc.wantCount)
		})
	}
}

func TestAssemblyBlockTitleRule(t *testing.T) {
	cases := []struct {
		name      string
		src       string
		wantCount int
	}{
		{name: "no block titles", src: "= Assembling widgets\n\n== Subheading\n"},
		{name: "block title flagged", src: "= Assembling widgets\n\n.Prerequisites\n* a tool\n", wantCount: 1},
		{name: "universal trailing titles allowed", src: "= Assembling widgets\n\n.Additional resources\n* link:https://example.com[Docs]\n"},
		{name: "titles inside fences ignored", src: "= Assembling widgets\n\n----\n.Prerequisites\n----\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := runRule(t, NewAssemblyBlockTitleRule(), "assembly_widgets.adoc", adoc.TypeAssembly, tc.src)
			assert.Len(t, got, tc.wantCount)
		})
	}
}

func TestAssemblyBlockTitleRuleFix(t *testing.T) {
	fixed := fixUntilClean(t, NewAssemblyBlockTitleRule(), "assembly_widgets.adoc", adoc.TypeAssembly,
		"= Assembling widgets\n\n.Prerequisites\n* a tool\n")
	assert.Equal(t,
		"= Assembling widgets\n\n"+assemblyTitleTODO+"\n.Prerequisites\n* a tool\n",
		fixed)
}

func TestAssemblyGates(t *testing.T) {
	want := []adoc.ContentType{adoc.TypeAssembly}
	for _, r := range []lint.Rule{
		NewContextConditionalsRule(),
		NewContextAttributeRule(),
		NewIncludeSpacingRule(),
		NewAssemblyHeadingRule(),
		NewAssemblyBlockTitleRule(),
	} {
		assert.Equal(t, want, r.ContentTypes(), "rule %s", r.ID())
	}
}
