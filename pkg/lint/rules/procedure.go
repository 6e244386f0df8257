package rules

import (
	"strings"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

const (
	embellishedTitleTODO = "// TODO: The .Procedure block title must not contain additional words."
	duplicateTitleTODO   = "// TODO: Must include only one `.Procedure` block title and list."
	missingListTODO      = "// TODO: Must include a `.Procedure` block title followed by an ordered or unordered list."
	trailingTitleTODO    = "// TODO: Only `.Procedure`, `.Verification`, `.Troubleshooting`, `.Next steps`, etc. are allowed block titles in procedure modules."
	trailingContentTODO  = "// TODO: Content found after last procedure step. Only allowed sections may follow."
)

// allowedTrailingTitles are the block titles that may follow the procedure
// step list. Anything else in the tail of a procedure module is flagged.
var allowedTrailingTitles = map[string]struct{}{
	".Verification":          {},
	".Troubleshooting":       {},
	".Troubleshooting steps": {},
	".Next steps":            {},
	".Next step":             {},
	".Additional resources":  {},
}

// ProcedureStructureRule enforces the structural contract of a procedure
// module: exactly one bare .Procedure block title, immediately followed by
// an ordered or unordered step list, with nothing but allowed sections
// after the last step.
//
// Fenced code blocks are opaque to the scan, so delimiters and list-like
// content inside listings never influence the structural state.
type ProcedureStructureRule struct {
	lint.BaseRule
}

// NewProcedureStructureRule creates a new procedure structure rule.
func NewProcedureStructureRule() *ProcedureStructureRule {
	return &ProcedureStructureRule{
		BaseRule: lint.NewBaseRule(
			"AD101",
			"procedure-structure",
			"Procedure modules need a .Procedure title followed by a step list",
			[]string{"procedure", "structure"},
			true, // Fix inserts TODO comments at each gap.
			adoc.TypeProcedure,
		),
	}
}

// Apply scans the document once, tracking where the .Procedure title sits,
// where its step list ends, and what the tail of the module contains.
func (r *ProcedureStructureRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := rc.Doc
	if doc == nil {
		return nil, nil
	}

	if !r.hasProcedureTitle(doc) {
		// A pass that already planted the comment should stay quiet even
		// though other fixes may have shifted it away from the top line.
		if hasComment(doc, missingListTODO) {
			return nil, nil
		}
		diag := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, 1),
			"Missing .Procedure block title").
			WithSeverity(config.SeverityWarning).
			WithSuggestion("Add a .Procedure block title followed by the step list").
			WithEdit(insertBefore(doc, 1, missingListTODO)).
			Build()
		return []lint.Diagnostic{diag}, nil
	}

	var (
		diags     []lint.Diagnostic
		mask      adoc.CodeBlockMask
		titleLine int
		seeking   bool
		listSeen  bool
		listEnd   int
		settled   bool
	)

	for i := 1; i <= doc.LineCount(); i++ {
		if rc.Cancelled() {
			return diags, rc.Ctx.Err()
		}

		line := doc.LineText(i)
		if mask.Observe(line) || mask.Active() {
			continue
		}
		if adoc.IsComment(line) {
			continue
		}

		if rest, ok := adoc.ProcedureTitle(line); ok {
			if titleLine == 0 {
				titleLine = i
				seeking = true
				if strings.TrimSpace(rest) != "" && !alreadyFlagged(doc, i, embellishedTitleTODO) {
					diags = append(diags, r.flag(doc, i,
						"The .Procedure block title carries extra words",
						"Use a bare .Procedure block title",
						embellishedTitleTODO))
				}
			} else if !alreadyFlagged(doc, i, duplicateTitleTODO) {
				diags = append(diags, r.flag(doc, i,
					"Duplicate .Procedure block title",
					"Keep a single .Procedure title and step list per module",
					duplicateTitleTODO))
			}
			continue
		}

		if titleLine == 0 {
			continue
		}

		if seeking {
			s := strings.TrimSpace(line)
			switch {
			case adoc.IsBlank(line):
				continue
			case adoc.IsListItem(line):
				listEnd = adoc.ListEnd(doc, i)
				listSeen = true
				seeking = false
				continue
			case strings.HasPrefix(s, ". "), strings.HasPrefix(s, ".. "):
				// Dot-numbered steps satisfy the pairing but are not the
				// list shape the boundary tracker understands, so the
				// trailing zone stays dormant until a real item shows up.
				seeking = false
				continue
			default:
				seeking = false
				if !alreadyFlagged(doc, titleLine+1, missingListTODO) {
					diag := lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, titleLine),
						"No step list follows the .Procedure block title").
						WithSeverity(config.SeverityWarning).
						WithSuggestion("Add an ordered or unordered list of steps under .Procedure").
						WithEdit(insertBefore(doc, titleLine+1, missingListTODO)).
						Build()
					diags = append(diags, diag)
				}
				continue
			}
		}

		if i <= listEnd || settled {
			continue
		}

		// Tail of the module, past the last known step. A later item
		// reopens the list; everything else is trailing content.
		if adoc.IsListItem(line) {
			listEnd = adoc.ListEnd(doc, i)
			listSeen = true
			continue
		}
		if !listSeen || adoc.IsBlank(line) {
			continue
		}
		prev := strings.TrimSpace(doc.LineText(i - 1))
		if prev == "+" {
			continue
		}
		if prev != "" && !adoc.IsBlockTitle(line) {
			// A paragraph glued to the line above stays with its block.
			continue
		}
		if adoc.IsBlockTitle(line) {
			s := strings.TrimSpace(line)
			_, allowed := allowedTrailingTitles[s]
			if !allowed && firstToken(s) == ".Additional" && prev == adoc.AdditionalResourcesRole {
				// An additional-resources variant is fine as long as its
				// role attribute sits directly above it.
				allowed = true
			}
			if !allowed && !alreadyFlagged(doc, i, trailingTitleTODO) {
				diags = append(diags, r.flag(doc, i,
					"Block title not allowed after the procedure steps",
					"Use one of the allowed trailing sections, such as .Verification or .Next steps",
					trailingTitleTODO))
			}
			settled = true
			continue
		}
		s := strings.TrimSpace(line)
		if strings.HasPrefix(s, "** ") || strings.HasPrefix(s, ". ") ||
			strings.HasPrefix(s, ".. ") || strings.HasPrefix(s, `[role="_additional-resources"`) {
			continue
		}
		if !alreadyFlagged(doc, i, trailingContentTODO) {
			diags = append(diags, r.flag(doc, i,
				"Content found after the last procedure step",
				"Move trailing prose into an allowed section or an earlier step",
				trailingContentTODO))
		}
		settled = true
	}

	return diags, nil
}

// firstToken returns the first whitespace-separated token of s, or "".
func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// hasProcedureTitle reports whether any line outside fenced blocks and
// comments is a .Procedure block title.
func (r *ProcedureStructureRule) hasProcedureTitle(doc *adoc.Document) bool {
	var mask adoc.CodeBlockMask
	for i := 1; i <= doc.LineCount(); i++ {
		line := doc.LineText(i)
		if mask.Observe(line) || mask.Active() {
			continue
		}
		if adoc.IsComment(line) {
			continue
		}
		if _, ok := adoc.ProcedureTitle(line); ok {
			return true
		}
	}
	return false
}

// flag builds a diagnostic for line with a comment inserted above it.
func (r *ProcedureStructureRule) flag(doc *adoc.Document, line int, msg, suggestion, comment string) lint.Diagnostic {
	return lint.NewDiagnosticAt(r.ID(), doc.Path, lint.LineSpan(doc, line), msg).
		WithSeverity(config.SeverityWarning).
		WithSuggestion(suggestion).
		WithEdit(insertBefore(doc, line, comment)).
		Build()
}
