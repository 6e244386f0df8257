package rules

import (
	"strings"

	"github.com/yaklabco/adoclint/pkg/adoc"
	"github.com/yaklabco/adoclint/pkg/fix"
)

// insertBefore builds an insertion edit that places text as a full line
// immediately above the given 1-based line. Line numbers past the end of
// the document append, terminating an unterminated final line first.
func insertBefore(doc *adoc.Document, line int, text string) fix.TextEdit {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	off := doc.InsertOffset(line)
	if off == len(doc.Content) && off > 0 && doc.Content[off-1] != '\n' {
		text = "\n" + text
	}
	return fix.TextEdit{StartOffset: off, EndOffset: off, NewText: text}
}

// lineEquals reports whether line n exists and equals text after trimming.
func lineEquals(doc *adoc.Document, n int, text string) bool {
	return n >= 1 && n <= doc.LineCount() && strings.TrimSpace(doc.LineText(n)) == text
}

// alreadyFlagged reports whether the exact comment already sits at the
// anchor line or directly above it. Rules check this before reporting so
// that a pass over already-fixed output inserts nothing new.
func alreadyFlagged(doc *adoc.Document, line int, comment string) bool {
	return lineEquals(doc, line, comment) || lineEquals(doc, line-1, comment)
}

// hasComment reports whether any line in the document equals the comment
// after trimming. Rules whose anchor can shift between passes (top-of-file
// insertions racing with other rules) use this instead of alreadyFlagged.
func hasComment(doc *adoc.Document, comment string) bool {
	for i := 1; i <= doc.LineCount(); i++ {
		if strings.TrimSpace(doc.LineText(i)) == comment {
			return true
		}
	}
	return false
}
