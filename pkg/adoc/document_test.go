package adoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/adoclint/pkg/adoc"
)

// li builds one line record for table tests.
func li(start, newline, end int) adoc.LineInfo {
	return adoc.LineInfo{StartOffset: start, NewlineStart: newline, EndOffset: end}
}

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []adoc.LineInfo
	}{
		{"empty input", "", []adoc.LineInfo{}},
		{"unterminated line", "abc", []adoc.LineInfo{li(0, 3, 3)}},
		{"lf terminated line", "abc\n", []adoc.LineInfo{li(0, 3, 4), li(4, 4, 4)}},
		{"crlf terminated line", "abc\r\n", []adoc.LineInfo{li(0, 3, 5), li(5, 5, 5)}},
		{"newline only", "\n", []adoc.LineInfo{li(0, 0, 1), li(1, 1, 1)}},
		{
			name:    "lf lines with a blank",
			content: "= Title\n\nbody",
			want:    []adoc.LineInfo{li(0, 7, 8), li(8, 8, 9), li(9, 13, 13)},
		},
		{
			name:    "crlf lines",
			content: ".Step\r\ndone\r\n",
			want:    []adoc.LineInfo{li(0, 5, 7), li(7, 11, 13), li(13, 13, 13)},
		},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, adoc.BuildLines([]byte(tc.content)), "content %q", tc.content)
	}
}

func TestDocument_LineAt(t *testing.T) {
	t.Parallel()

	doc := adoc.NewDocument("test.adoc", []byte(".Prerequisites\n* item\ndone"))

	tests := []struct {
		name     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{"offset zero", 0, 1, 1},
		{"inside line one", 2, 1, 3},
		{"newline of line one", 14, 1, 15},
		{"first byte of line two", 15, 2, 1},
		{"first byte of line three", 22, 3, 1},
		{"last byte of content", 25, 3, 4},
		{"one past the end", 26, 3, 5},
		{"negative offset", -1, 0, 0},
	}

	for _, tc := range tests {
		line, col := doc.LineAt(tc.offset)
		assert.Equal(t, tc.wantLine, line, "%s: line", tc.name)
		assert.Equal(t, tc.wantCol, col, "%s: column", tc.name)
	}
}

func TestDocument_Offset(t *testing.T) {
	t.Parallel()

	doc := adoc.NewDocument("test.adoc", []byte(".Prerequisites\n* item\ndone"))

	tests := []struct {
		name       string
		line, col  int
		wantOffset int
		wantOK     bool
	}{
		{"first byte", 1, 1, 0, true},
		{"inside line one", 1, 3, 2, true},
		{"start of line two", 2, 1, 15, true},
		{"last byte of line three", 3, 4, 25, true},
		{"line zero", 0, 1, 0, false},
		{"line past the document", 4, 1, 0, false},
		{"column zero", 1, 0, 0, false},
		{"column far past line end", 1, 20, 0, false},
	}

	for _, tc := range tests {
		offset, ok := doc.Offset(tc.line, tc.col)
		assert.Equal(t, tc.wantOK, ok, "%s: ok", tc.name)
		if tc.wantOK {
			assert.Equal(t, tc.wantOffset, offset, "%s: offset", tc.name)
		}
	}
}

func TestDocument_LineText(t *testing.T) {
	t.Parallel()

	doc := adoc.NewDocument("proc_test.adoc", []byte(".Procedure\n* step one\n* step two"))

	tests := []struct {
		line int
		want string
	}{
		{1, ".Procedure"},
		{2, "* step one"},
		{3, "* step two"},
		{0, ""},
		{4, ""},
		{-1, ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, doc.LineText(tc.line), "line %d", tc.line)
	}
}

func TestDocument_LineCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"abc", 1},
		{"abc\n", 2},
		{"a\nb\nc", 3},
	}

	for _, tc := range tests {
		doc := adoc.NewDocument("test.adoc", []byte(tc.content))
		assert.Equal(t, tc.want, doc.LineCount(), "content %q", tc.content)
	}
}

func TestDocument_InsertOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		line    int
		want    int
	}{
		{"before the first line", "abc\ndef", 1, 0},
		{"before the second line", "abc\ndef", 2, 4},
		{"one past the last line appends", "abc\ndef", 3, 7},
		{"far past the last line appends", "abc\ndef", 99, 7},
		{"empty document", "", 1, 0},
		{"line zero clamps to the start", "abc", 0, 0},
	}

	for _, tc := range tests {
		doc := adoc.NewDocument("test.adoc", []byte(tc.content))
		assert.Equal(t, tc.want, doc.InsertOffset(tc.line), tc.name)
	}
}

func TestLineAtOffsetRoundTrip(t *testing.T) {
	t.Parallel()

	content := "= Title\n\nA short intro.\n"
	doc := adoc.NewDocument("test.adoc", []byte(content))

	for offset := range len(content) {
		line, col := doc.LineAt(offset)
		back, ok := doc.Offset(line, col)
		assert.True(t, ok, "Offset(%d, %d)", line, col)
		assert.Equal(t, offset, back, "round trip for offset %d", offset)
	}
}
