package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/adoclint/pkg/config"
	"github.com/yaklabco/adoclint/pkg/lint"
)

// FormatDiagnostic renders one diagnostic using the rule's ID, the default
// identifier format.
func (s *Styles) FormatDiagnostic(d *lint.Diagnostic, withContext bool, srcLine string) string {
	return s.FormatDiagnosticWithFormat(d, withContext, srcLine, config.RuleFormatID)
}

// FormatDiagnosticWithFormat renders one diagnostic with a configurable rule
// identifier format. The main line reads
// "  path:line:col  severity  message  (rule)", optionally followed by the
// source context and the rule's suggestion.
func (s *Styles) FormatDiagnosticWithFormat(d *lint.Diagnostic, withContext bool, srcLine string, ruleFormat config.RuleFormat) string {
	loc := s.FilePath.Render(d.FilePath) + fmt.Sprintf(":%d:%d", d.StartLine, d.StartColumn)
	rule := config.FormatRuleID(ruleFormat, d.RuleID, d.RuleName)

	var out strings.Builder
	fmt.Fprintf(&out, "  %s  %s  %s  %s\n",
		loc,
		s.FormatSeverity(d.Severity),
		s.Message.Render(d.Message),
		s.RuleID.Render("("+rule+")"),
	)

	if withContext && srcLine != "" {
		out.WriteString(s.FormatSourceContext(srcLine, d.StartColumn))
	}
	if d.Suggestion != "" {
		fmt.Fprintf(&out, "    %s %s\n",
			s.Dim.Render("Suggestion:"), s.Suggestion.Render(d.Suggestion))
	}

	return out.String()
}

// FormatSeverity returns the severity name in its matching style. Unknown
// severities pass through unstyled.
func (s *Styles) FormatSeverity(level config.Severity) string {
	name := string(level)
	switch level {
	case config.SeverityError:
		return s.Error.Render(name)
	case config.SeverityWarning:
		return s.Warning.Render(name)
	case config.SeverityInfo:
		return s.Info.Render(name)
	}
	return name
}

// FormatSourceContext renders the offending source line with a caret under
// the flagged column, indented to sit below the diagnostic line.
func (s *Styles) FormatSourceContext(src string, col int) string {
	const gutter = "        "

	out := gutter + s.SourceLine.Render(src) + "\n"
	if col > 0 {
		out += gutter + strings.Repeat(" ", col-1) + s.Caret.Render("^") + "\n"
	}
	return out
}

// FormatFileHeader renders a file heading for grouped output.
func (s *Styles) FormatFileHeader(path string, count int) string {
	return s.FormatFileHeaderWithType(path, "", count)
}

// FormatFileHeaderWithType renders a file heading annotated with the resolved
// module content type, e.g. "modules/proc_installing.adoc [PROCEDURE] (3 issues)".
func (s *Styles) FormatFileHeaderWithType(path, contentType string, count int) string {
	h := s.FilePath.Render(path)
	if contentType != "" {
		h += " " + s.ContentType.Render("["+contentType+"]")
	}
	if count > 0 {
		h += s.Dim.Render(fmt.Sprintf(" (%d issues)", count))
	}
	return h
}
