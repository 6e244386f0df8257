package rules

import (
	"strings"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// AdditionalResourcesRoleRule checks that every "Additional resources"
// heading or block title is preceded by the _additional-resources role
// attribute, which downstream publication tooling keys on.
type AdditionalResourcesRoleRule struct {
	lint.BaseRule
}

// NewAdditionalResourcesRoleRule creates a new additional resources role rule.
func NewAdditionalResourcesRoleRule() *AdditionalResourcesRoleRule {
	return &AdditionalResourcesRoleRule{
		BaseRule: lint.NewBaseRule(
			"AD007",
			"additional-resources-role",
			"Additional resources sections need the _additional-resources role",
			[]string{"resources"},
			true, // Fix inserts the role attribute.
		),
	}
}

// Apply flags every Additional resources heading that lacks the role
// attribute on the line above it.
func (r *AdditionalResourcesRoleRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	var out []lint.Diagnostic
	for i := 1; i <= doc.LineCount(); i++ {
		s := strings.TrimSpace(doc.LineText(i))
		if s != "== Additional resources" && s != ".Additional resources" {
			continue
		}
		if lineEquals(doc, i-1, adoc.AdditionalResourcesRole) {
			continue
		}
		out = append(out, lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, i),
			"Additional resources section lacks the role attribute").
			WithSuggestion("Insert "+adoc.AdditionalResourcesRole+" above the heading").
			WithEdit(insertBefore(doc, i, adoc.AdditionalResourcesRole)).
			WithSeverity(config.SeverityWarning).Build())
	}
	return out, nil
}
