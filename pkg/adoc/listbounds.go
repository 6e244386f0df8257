package adoc

import "strings"

// ListEnd returns the 1-based index of the last line still belonging to the
// list construct that starts at the given list-item line. Scanning advances
// across "+" continuation markers, block-title and attribute lines, and
// whole fence-delimited blocks. The first blank line closes the construct
// and is included in it. The result is never less than start and never past
// the last line of the document.
func ListEnd(doc *Document, start int) int {
	i := start + 1
	for i <= doc.LineCount() {
		next := strings.TrimSpace(doc.LineText(i))

		if IsFence(next) {
			// Skip the fenced interior and its closing delimiter.
			i++
			for i <= doc.LineCount() && !IsFence(strings.TrimSpace(doc.LineText(i))) {
				i++
			}
			if i <= doc.LineCount() {
				i++
			}
			continue
		}

		if next == "+" || strings.HasPrefix(next, ".") || strings.HasPrefix(next, "[") {
			i++
			continue
		}

		if next == "" {
			i++
			break
		}

		break
	}

	return i - 1
}
