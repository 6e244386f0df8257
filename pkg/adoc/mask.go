package adoc

// CodeBlockMask tracks whether a forward scan sits inside a delimited
// listing or literal block. Fence delimiter lines toggle the mask and are
// not themselves masked content. An odd number of fences leaves the mask
// active through the end of the document.
type CodeBlockMask struct {
	active bool
}

// Observe inspects one line, toggling the mask on fence delimiters.
// It reports whether the line was a delimiter.
func (m *CodeBlockMask) Observe(line string) bool {
	if IsFence(line) {
		m.active = !m.active
		return true
	}
	return false
}

// Active reports whether the scan position is currently inside a block.
// While active, structural predicates must not be applied to the line.
func (m *CodeBlockMask) Active() bool {
	return m.active
}
