// Package fix applies byte-offset text edits to file content.
//
// Edits are expressed as replacements against an immutable content
// snapshot. Rules emit edits against the snapshot they inspected;
// application happens in a single batch, so offsets never drift as earlier
// edits land.
package fix

// TextEdit replaces the byte range [StartOffset, EndOffset) with NewText.
// Equal offsets insert without removing anything.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// IsInsertion returns true for a zero-width edit that only adds text.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset && e.NewText != ""
}

// EditBuilder collects the edits for one file.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder returns an empty builder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// ReplaceRange adds an edit swapping bytes [start, end) for replacement.
func (eb *EditBuilder) ReplaceRange(start, end int, replacement string) {
	eb.Edits = append(eb.Edits, TextEdit{StartOffset: start, EndOffset: end, NewText: replacement})
}

// Insert adds a zero-width edit placing text at offset.
func (eb *EditBuilder) Insert(offset int, text string) {
	eb.ReplaceRange(offset, offset, text)
}

// InsertLine inserts a full line at the given offset, appending a trailing
// newline when text does not already end with one.
func (eb *EditBuilder) InsertLine(offset int, text string) {
	if len(text) == 0 || text[len(text)-1] != '\n' {
		text += "\n"
	}
	eb.Insert(offset, text)
}

// Delete drops bytes [start, end).
func (eb *EditBuilder) Delete(start, end int) {
	eb.ReplaceRange(start, end, "")
}
