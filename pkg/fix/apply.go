package fix

// ApplyEdits rewrites src by splicing in a sorted, validated slice of edits,
// as produced by PrepareEdits or PrepareEditsFiltered.
func ApplyEdits(src []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return src
	}

	size := len(src)
	for _, ed := range edits {
		size += len(ed.NewText) - (ed.EndOffset - ed.StartOffset)
	}

	out := make([]byte, 0, size)
	done := 0
	for _, ed := range edits {
		out = append(out, src[done:ed.StartOffset]...)
		out = append(out, ed.NewText...)
		done = ed.EndOffset
	}
	return append(out, src[done:]...)
}
