// Package adoc provides the line-oriented AsciiDoc document representation
// for adoclint. A Document is an immutable snapshot of one file: the raw
// bytes plus a line index, with transient classification helpers (content
// types, structural predicates, code-block masking, list boundaries)
// layered on top. Nothing in this package mutates content; fixes are
// expressed as byte-offset edits elsewhere.
package adoc

import (
	"bytes"
	"sort"
)

// Document is an immutable view of a single AsciiDoc file at a specific time.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo
}

// LineInfo locates one line inside the file's byte content.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is where the line break begins; a line without a
	// trailing newline (the last one) has it equal to EndOffset.
	NewlineStart int

	// EndOffset is the byte index just past the line break.
	EndOffset int
}

// NewDocument creates a Document from content, building the line index.
func NewDocument(path string, content []byte) *Document {
	return &Document{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines indexes every line of content, tolerating both LF and CRLF
// endings. A trailing newline yields a final empty line, matching how
// editors number lines.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	start := 0
	for {
		rel := bytes.IndexByte(content[start:], '\n')
		if rel < 0 {
			lines = append(lines, LineInfo{
				StartOffset:  start,
				NewlineStart: len(content),
				EndOffset:    len(content),
			})
			return lines
		}

		nl := start + rel
		brk := nl
		if nl > start && content[nl-1] == '\r' {
			brk--
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: brk, EndOffset: nl + 1})
		start = nl + 1
	}
}

// LineCount returns the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineAt converts a byte offset to a 1-based line and column pair. Columns
// count bytes, not runes. Out-of-range offsets yield (0, 0).
func (d *Document) LineAt(offset int) (int, int) {
	if offset < 0 || len(d.Lines) == 0 {
		return 0, 0
	}

	// Offsets at or past EOF resolve against the last line.
	if offset >= len(d.Content) {
		last := d.Lines[len(d.Lines)-1]
		return len(d.Lines), offset - last.StartOffset + 1
	}

	// The first line whose end lies beyond the offset contains it.
	i := sort.Search(len(d.Lines), func(j int) bool {
		return d.Lines[j].EndOffset > offset
	})
	if i >= len(d.Lines) {
		i = len(d.Lines) - 1
	}

	ln := d.Lines[i]
	if offset < ln.StartOffset {
		return 0, 0
	}
	return i + 1, offset - ln.StartOffset + 1
}

// Offset converts a 1-based line and column pair back to a byte offset.
// The boolean reports whether the position lies inside the document.
func (d *Document) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(d.Lines) || col < 1 {
		return 0, false
	}

	// A column may point one past the line text so edits can address the
	// end-of-line position.
	ln := d.Lines[line-1]
	off := ln.StartOffset + col - 1
	if off > ln.EndOffset {
		return 0, false
	}
	return off, true
}

// LineContent returns the bytes of a 1-based line, newline excluded.
// Out-of-range lines yield nil.
func (d *Document) LineContent(line int) []byte {
	if line < 1 || line > len(d.Lines) {
		return nil
	}

	ln := d.Lines[line-1]
	return d.Content[ln.StartOffset:ln.NewlineStart]
}

// LineText returns LineContent as a string. Out-of-range lines yield "".
func (d *Document) LineText(line int) string {
	return string(d.LineContent(line))
}

// InsertOffset returns the byte offset at which a new line inserted before
// the given 1-based line would begin. Line numbers past the last line (and
// any line in an empty document) map to the end of content, so the same
// offset serves appends.
func (d *Document) InsertOffset(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(d.Lines) {
		return len(d.Content)
	}
	return d.Lines[line-1].StartOffset
}

// EndOffset returns the offset just past the final byte of content.
func (d *Document) EndOffset() int {
	return len(d.Content)
}
