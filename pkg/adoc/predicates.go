package adoc

import (
	"regexp"
	"strings"
)

// Structural patterns. Every predicate re-derives its classification from
// raw text on each call; lines are never tagged persistently.
var (
	// Ordered and unordered list items: "* item", "- item", "3. step".
	reUnorderedItem = regexp.MustCompile(`^\s*[*+-]\s+`)
	reOrderedItem   = regexp.MustCompile(`^\s*\d+\.\s+`)

	// Block titles: ".Procedure", ".Verification steps".
	reBlockTitle = regexp.MustCompile(`^\.(\w+.*)`)

	// Block titles that start with a letter, the shape concept, reference,
	// and assembly modules validate.
	reAlphaBlockTitle = regexp.MustCompile(`^\.[A-Za-z].+`)

	// The procedure block title with optional embellishment text.
	reProcedureTitle = regexp.MustCompile(`^\.Procedure(\s.*)?$`)

	// Topic ID carrying the context suffix: [id="name_{context}"].
	reTopicID = regexp.MustCompile(`^\[id="[^"]+_\{context\}"\]`)

	// Level-zero document title.
	reDocumentTitle = regexp.MustCompile(`^(= .+)`)

	// Section titles at level 2 or deeper that carry title text.
	reDeepHeading = regexp.MustCompile(`^(===+)\s+\S`)

	// Image block macro split into prefix, alt text, and closing bracket.
	reImageMacro = regexp.MustCompile(`^(image::[^\[]+\[)([^\]]*)(\])`)

	// Attribute, role, and option lines: [source], [role="..."], [NOTE].
	reAttributeLine = regexp.MustCompile(`^\[.*\]$`)

	reInclude     = regexp.MustCompile(`^include::`)
	reContextDecl = regexp.MustCompile(`^:context:`)

	// List items that can open an instruction: "1.", "*", "-", or "." starts.
	reInstructionalItem = regexp.MustCompile(`^(\d+\.|\*|\-|\.)\s+\S`)

	// List items whose entire content is a single link macro.
	reLinkOnlyItem = regexp.MustCompile(`^(?:\*|\d+\.)\s+link:[^\[]+\[[^\]]+\]\s*$`)

	// Dot-numbered steps opening with a capitalized word.
	reNumberedStep = regexp.MustCompile(`^\.\s+([A-Z][a-z]+)`)
)

// AdditionalResourcesRole is the role attribute line that must precede an
// additional-resources section.
const AdditionalResourcesRole = `[role="_additional-resources"]`

// IsBlank reports whether the line is empty after trimming whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsComment reports whether the line is a line comment.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "//")
}

// IsFence reports whether the line opens or closes a delimited listing
// ("----") or literal ("....") block. Delimiters are recognized by prefix.
func IsFence(line string) bool {
	s := strings.TrimSpace(line)
	return strings.HasPrefix(s, "----") || strings.HasPrefix(s, "....")
}

// IsListItem reports whether the line is an ordered or unordered list item.
func IsListItem(line string) bool {
	return reUnorderedItem.MatchString(line) || reOrderedItem.MatchString(line)
}

// IsBlockTitle reports whether the line has the generic block-title shape.
func IsBlockTitle(line string) bool {
	return reBlockTitle.MatchString(strings.TrimSpace(line))
}

// IsAlphaBlockTitle reports whether the line is a block title starting with
// a letter, the form flagged in non-procedure modules.
func IsAlphaBlockTitle(line string) bool {
	return reAlphaBlockTitle.MatchString(strings.TrimSpace(line))
}

// ProcedureTitle matches the procedure block title. When the title carries
// embellishment text beyond the bare marker, rest holds it.
func ProcedureTitle(line string) (rest string, ok bool) {
	m := reProcedureTitle.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsContinuation reports whether the line is a bare "+" continuation marker.
func IsContinuation(line string) bool {
	return strings.TrimSpace(line) == "+"
}

// IsAttributeLine reports whether the line is a bracketed attribute or role
// line such as [source,yaml] or [role="_additional-resources"].
func IsAttributeLine(line string) bool {
	return reAttributeLine.MatchString(strings.TrimSpace(line))
}

// IsTopicID reports whether the line declares a topic ID with the context
// suffix.
func IsTopicID(line string) bool {
	return reTopicID.MatchString(line)
}

// IsDocumentTitle reports whether the line is a level-zero "= " title.
func IsDocumentTitle(line string) bool {
	return reDocumentTitle.MatchString(line)
}

// IsDeepHeading reports whether the line is a level 2 or deeper section
// title with text. Bare "====" example-block delimiters do not match.
func IsDeepHeading(line string) bool {
	return reDeepHeading.MatchString(strings.TrimSpace(line))
}

// IsInclude reports whether the line is an include:: directive.
func IsInclude(line string) bool {
	return reInclude.MatchString(strings.TrimSpace(line))
}

// IsContextDecl reports whether the line declares the :context: attribute.
func IsContextDecl(line string) bool {
	return reContextDecl.MatchString(strings.TrimSpace(line))
}

// ImageMacroParts splits an image macro line into its prefix (through the
// opening bracket), alt text, and closing bracket.
func ImageMacroParts(line string) (prefix, alt, suffix string, ok bool) {
	m := reImageMacro.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], m[3], true
}

// IsInstructionalItem reports whether the line opens a list item that could
// carry an instruction.
func IsInstructionalItem(line string) bool {
	return reInstructionalItem.MatchString(strings.TrimSpace(line))
}

// IsLinkOnlyItem reports whether the line is a list item containing nothing
// but a link macro.
func IsLinkOnlyItem(line string) bool {
	return reLinkOnlyItem.MatchString(strings.TrimSpace(line))
}

// NumberedStepVerb extracts the capitalized first word of a dot-numbered
// step such as ". Configure the cluster".
func NumberedStepVerb(line string) (string, bool) {
	m := reNumberedStep.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}
