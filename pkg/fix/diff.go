package fix

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff is a unified diff between two versions of one file. Additions and
// Deletions tally the +/- lines across all hunks.
type Diff struct {
	Path                 string
	Original, Modified   []byte
	Hunks                []DiffHunk
	Additions, Deletions int
}

// DiffHunk is one change region together with its surrounding context.
// The Start fields are 1-based line numbers; the counts follow the
// @@ -start,count +start,count @@ convention.
type DiffHunk struct {
	OriginalStart, OriginalCount int
	ModifiedStart, ModifiedCount int
	Lines                        []DiffLine
}

// DiffLine is one rendered line, stored without its +/-/space prefix.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind classifies a rendered diff line.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota // unchanged, shown for context
	DiffLineAdd                         // present only in the modified version
	DiffLineRemove                      // present only in the original
)

// prefix returns the leading character the unified format uses for k.
func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

// Hunks keep up to this many unchanged lines on each side of a change.
const hunkContext = 3

// GenerateDiff builds a unified diff of the before and after contents of
// one file, delegating hunk grouping to difflib's sequence matcher. It
// returns nil when the two versions split into identical line sequences.
func GenerateDiff(path string, before, after []byte) *Diff {
	src, dst := toLines(before), toLines(after)
	if src == nil && dst == nil {
		return nil
	}

	groups := difflib.NewMatcher(src, dst).GetGroupedOpCodes(hunkContext)
	if len(groups) == 0 {
		return nil
	}

	diff := &Diff{
		Path:     path,
		Original: before,
		Modified: after,
		Hunks:    make([]DiffHunk, 0, len(groups)),
	}
	for _, g := range groups {
		h := buildHunk(g, src, dst)
		adds, dels := h.tally()
		diff.Additions += adds
		diff.Deletions += dels
		diff.Hunks = append(diff.Hunks, h)
	}
	return diff
}

// buildHunk converts one opcode group into a hunk. Replace opcodes emit
// their removals before their additions, matching git's rendering.
func buildHunk(group []difflib.OpCode, src, dst []string) DiffHunk {
	h := DiffHunk{
		OriginalStart: group[0].I1 + 1,
		ModifiedStart: group[0].J1 + 1,
	}
	for _, op := range group {
		switch op.Tag {
		case 'e':
			for _, text := range src[op.I1:op.I2] {
				h.Lines = append(h.Lines, DiffLine{Kind: DiffLineContext, Content: text})
				h.OriginalCount++
				h.ModifiedCount++
			}
		case 'r', 'd':
			for _, text := range src[op.I1:op.I2] {
				h.Lines = append(h.Lines, DiffLine{Kind: DiffLineRemove, Content: text})
				h.OriginalCount++
			}
			if op.Tag == 'r' {
				for _, text := range dst[op.J1:op.J2] {
					h.Lines = append(h.Lines, DiffLine{Kind: DiffLineAdd, Content: text})
					h.ModifiedCount++
				}
			}
		case 'i':
			for _, text := range dst[op.J1:op.J2] {
				h.Lines = append(h.Lines, DiffLine{Kind: DiffLineAdd, Content: text})
				h.ModifiedCount++
			}
		}
	}
	return h
}

// tally counts the added and removed lines in the hunk.
func (h DiffHunk) tally() (adds, dels int) {
	for _, ln := range h.Lines {
		if ln.Kind == DiffLineAdd {
			adds++
		}
		if ln.Kind == DiffLineRemove {
			dels++
		}
	}
	return adds, dels
}

// GitHeader renders the "diff --git" line for the file.
func (df *Diff) GitHeader() string {
	if df == nil {
		return ""
	}
	p := strings.TrimPrefix(df.Path, "/")
	return "diff --git a/" + p + " b/" + p
}

// String renders the hunks in unified format, without the git header.
func (df *Diff) String() string {
	if !df.HasChanges() {
		return ""
	}

	p := strings.TrimPrefix(df.Path, "/")

	var b strings.Builder
	b.WriteString("--- a/" + p + "\n")
	b.WriteString("+++ b/" + p + "\n")

	for _, h := range df.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			h.OriginalStart, h.OriginalCount,
			h.ModifiedStart, h.ModifiedCount)

		for _, ln := range h.Lines {
			b.WriteByte(ln.Kind.prefix())
			b.WriteString(ln.Content)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// FullString renders the diff with the git header on top.
func (df *Diff) FullString() string {
	if !df.HasChanges() {
		return ""
	}
	return df.GitHeader() + "\n" + df.String()
}

// HasChanges reports whether the diff contains any hunks.
func (df *Diff) HasChanges() bool {
	return df != nil && len(df.Hunks) > 0
}

// toLines splits data into lines without trailing newlines. Empty input
// maps to nil so empty-vs-empty compares as unchanged.
func toLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	out := strings.Split(string(data), "\n")
	if last := len(out) - 1; out[last] == "" {
		out = out[:last]
	}
	return out
}
