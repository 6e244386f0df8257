package fix_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/adoclint/pkg/fix"
)

func edit(start, end int, text string) fix.TextEdit {
	return fix.TextEdit{StartOffset: start, EndOffset: end, NewText: text}
}

func ins(at int, text string) fix.TextEdit { return edit(at, at, text) }

func del(start, end int) fix.TextEdit { return edit(start, end, "") }

// sameEdits compares got against want element by element.
func sameEdits(t *testing.T, label string, got, want []fix.TextEdit) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: got %d edits, want %d", label, len(got), len(want))
		return
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: got %+v, want %+v", label, i, got[i], want[i])
		}
	}
}

// checkValidationError asserts err is a ValidationError mentioning substr.
func checkValidationError(t *testing.T, err error, substr string) {
	t.Helper()
	var ve *fix.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %T (%v), want ValidationError", err, err)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("error %q does not contain %q", err.Error(), substr)
	}
}

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      []fix.TextEdit
		size    int
		wantErr string
	}{
		{name: "no edits", size: 24},
		{name: "in-bounds replacements", in: []fix.TextEdit{edit(0, 8, "= Title\n"), edit(8, 24, "Intro sentence.\n")}, size: 24},
		{name: "negative start", in: []fix.TextEdit{edit(-3, 4, "x")}, size: 24, wantErr: "start offset is negative"},
		{name: "inverted range", in: []fix.TextEdit{edit(9, 2, "x")}, size: 24, wantErr: "end offset is before start offset"},
		{name: "end past content", in: []fix.TextEdit{edit(12, 30, "x")}, size: 24, wantErr: "exceeds content length"},
		{name: "insertion inside content", in: []fix.TextEdit{ins(16, "// TODO: add an introduction\n")}, size: 24},
		{name: "insertion at end of content", in: []fix.TextEdit{ins(24, "\nSee also.\n")}, size: 24},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := fix.ValidateEdits(tc.in, tc.size)
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateEdits() = %v, want nil", err)
				}
			} else {
				checkValidationError(t, err, tc.wantErr)
			}
		})
	}
}

func TestSortEdits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		in         []fix.TextEdit
		wantSorted []fix.TextEdit
	}{
		{name: "empty"},
		{name: "ordered input stays put", in: []fix.TextEdit{del(0, 4), del(4, 9)}, wantSorted: []fix.TextEdit{del(0, 4), del(4, 9)}},
		{name: "orders by start offset", in: []fix.TextEdit{del(10, 14), del(2, 6)}, wantSorted: []fix.TextEdit{del(2, 6), del(10, 14)}},
		{name: "breaks start ties by end offset", in: []fix.TextEdit{edit(3, 12, "x"), edit(3, 5, "y")}, wantSorted: []fix.TextEdit{edit(3, 5, "y"), edit(3, 12, "x")}},
		{
			// Rules emit metadata lines top to bottom; equal offsets must
			// not reorder them.
			name: "equal insertions keep arrival order",
			in: []fix.TextEdit{
				ins(0, ":_mod-docs-content-type: PROCEDURE\n"),
				ins(0, "[id=\"installing_{context}\"]\n"),
			},
			wantSorted: []fix.TextEdit{
				ins(0, ":_mod-docs-content-type: PROCEDURE\n"),
				ins(0, "[id=\"installing_{context}\"]\n"),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := slices.Clone(tc.in)
			fix.SortEdits(got)
			sameEdits(t, "sorted", got, tc.wantSorted)
		})
	}
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       []fix.TextEdit
		conflict bool
	}{
		{name: "empty"},
		{name: "lone edit", in: []fix.TextEdit{edit(0, 5, "a")}},
		{name: "touching edits do not conflict", in: []fix.TextEdit{del(0, 6), del(6, 11)}},
		{name: "overlap conflicts", in: []fix.TextEdit{edit(0, 9, "a"), edit(6, 14, "b")}, conflict: true},
		{name: "nested range conflicts", in: []fix.TextEdit{edit(2, 16, "a"), edit(5, 9, "b")}, conflict: true},
		{name: "stacked insertions do not conflict", in: []fix.TextEdit{ins(4, "x\n"), ins(4, "y\n")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := fix.DetectConflicts(tc.in)
			if tc.conflict {
				var ce *fix.ConflictError
				if !errors.As(err, &ce) {
					t.Errorf("DetectConflicts() = %T (%v), want ConflictError", err, err)
				}
			} else if err != nil {
				t.Errorf("DetectConflicts() = %v, want nil", err)
			}
		})
	}
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		in      []fix.TextEdit
		size    int
		wantErr bool
		wantLen int
	}{
		{name: "empty", size: 18},
		{name: "sorts valid edits", in: []fix.TextEdit{edit(9, 14, "b"), edit(0, 5, "a")}, size: 18, wantLen: 2},
		{name: "rejects out-of-range edit", in: []fix.TextEdit{edit(-2, 3, "x")}, size: 18, wantErr: true},
		{name: "rejects overlapping edits", in: []fix.TextEdit{edit(0, 9, "a"), edit(5, 13, "b")}, size: 18, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := fix.PrepareEdits(tc.in, tc.size)
			if (err != nil) != tc.wantErr {
				t.Fatalf("PrepareEdits() error = %v, want error %v", err, tc.wantErr)
			}
			if len(got) != tc.wantLen {
				t.Errorf("len(got) = %d, want %d", len(got), tc.wantLen)
			}
			for i := 1; i < len(got); i++ {
				if got[i].StartOffset < got[i-1].StartOffset {
					t.Error("prepared edits not sorted")
				}
			}
		})
	}
}

func TestFilterConflicts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       []fix.TextEdit
		wantKeep []fix.TextEdit
		wantDrop []fix.TextEdit
	}{
		{name: "empty"},
		{name: "single edit", in: []fix.TextEdit{edit(3, 8, "x")}, wantKeep: []fix.TextEdit{edit(3, 8, "x")}},
		{name: "adjacent edits all kept", in: []fix.TextEdit{edit(0, 6, "a"), edit(6, 12, "b")}, wantKeep: []fix.TextEdit{edit(0, 6, "a"), edit(6, 12, "b")}},
		{name: "gapped edits all kept", in: []fix.TextEdit{edit(0, 4, "a"), edit(9, 13, "b")}, wantKeep: []fix.TextEdit{edit(0, 4, "a"), edit(9, 13, "b")}},
		{
			name:     "later overlap loses",
			in:       []fix.TextEdit{edit(0, 9, "keep"), edit(6, 14, "drop")},
			wantKeep: []fix.TextEdit{edit(0, 9, "keep")},
			wantDrop: []fix.TextEdit{edit(6, 14, "drop")},
		},
		{
			name:     "nested edit loses to outer",
			in:       []fix.TextEdit{edit(1, 12, "outer"), edit(4, 8, "inner")},
			wantKeep: []fix.TextEdit{edit(1, 12, "outer")},
			wantDrop: []fix.TextEdit{edit(4, 8, "inner")},
		},
		{
			// Two rules both prepend metadata at offset zero; neither
			// blocks the other.
			name: "front matter insertions stack",
			in: []fix.TextEdit{
				ins(0, ":_mod-docs-content-type: CONCEPT\n"),
				ins(0, "[id=\"clusters_{context}\"]\n"),
			},
			wantKeep: []fix.TextEdit{
				ins(0, ":_mod-docs-content-type: CONCEPT\n"),
				ins(0, "[id=\"clusters_{context}\"]\n"),
			},
		},
		{
			// Greedy by start offset: each survivor closes the region up
			// to its end, and only edits starting at or past it survive.
			name: "overlap chain alternates",
			in: []fix.TextEdit{
				edit(0, 6, "a"),
				edit(5, 11, "b"),
				edit(10, 16, "c"),
				edit(15, 21, "d"),
			},
			wantKeep: []fix.TextEdit{edit(0, 6, "a"), edit(10, 16, "c")},
			wantDrop: []fix.TextEdit{edit(5, 11, "b"), edit(15, 21, "d")},
		},
		{
			name: "outer edit shadows two inner",
			in: []fix.TextEdit{
				edit(0, 11, "a"),
				edit(4, 7, "b"),
				edit(6, 13, "c"),
				edit(16, 20, "d"),
			},
			wantKeep: []fix.TextEdit{edit(0, 11, "a"), edit(16, 20, "d")},
			wantDrop: []fix.TextEdit{edit(4, 7, "b"), edit(6, 13, "c")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			keep, drop := fix.FilterConflicts(tc.in)
			sameEdits(t, "kept", keep, tc.wantKeep)
			sameEdits(t, "dropped", drop, tc.wantDrop)
		})
	}
}

func TestMergeAndFilterConflicts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		in         []fix.TextEdit
		wantKeep   []fix.TextEdit
		wantDrop   []fix.TextEdit
		wantMerged int
	}{
		{name: "empty"},
		{name: "single deletion", in: []fix.TextEdit{del(2, 7)}, wantKeep: []fix.TextEdit{del(2, 7)}},
		{name: "touching deletions stay separate", in: []fix.TextEdit{del(0, 6), del(6, 11)}, wantKeep: []fix.TextEdit{del(0, 6), del(6, 11)}},
		{name: "overlapping deletions merge", in: []fix.TextEdit{del(2, 9), del(7, 12)}, wantKeep: []fix.TextEdit{del(2, 12)}, wantMerged: 1},
		{name: "nested deletion folds into outer", in: []fix.TextEdit{del(1, 11), del(4, 8)}, wantKeep: []fix.TextEdit{del(1, 11)}, wantMerged: 1},
		{
			name: "insertions at one offset all land",
			in: []fix.TextEdit{
				ins(0, "// TODO: set a :context: attribute\n"),
				ins(0, "ifdef::context[:parent-context: {context}]\n"),
			},
			wantKeep: []fix.TextEdit{
				ins(0, "// TODO: set a :context: attribute\n"),
				ins(0, "ifdef::context[:parent-context: {context}]\n"),
			},
		},
		{
			// Only pure deletions union; a replacement on either side
			// falls back to first-wins.
			name:     "replacement blocks the merge",
			in:       []fix.TextEdit{edit(0, 9, "= Title\n"), del(6, 13)},
			wantKeep: []fix.TextEdit{edit(0, 9, "= Title\n")},
			wantDrop: []fix.TextEdit{del(6, 13)},
		},
		{
			name:     "competing replacements skip",
			in:       []fix.TextEdit{edit(0, 9, ".Prerequisites"), edit(5, 14, ".Procedure")},
			wantKeep: []fix.TextEdit{edit(0, 9, ".Prerequisites")},
			wantDrop: []fix.TextEdit{edit(5, 14, ".Procedure")},
		},
		{name: "run of deletions collapses", in: []fix.TextEdit{del(0, 4), del(3, 9), del(8, 14)}, wantKeep: []fix.TextEdit{del(0, 14)}, wantMerged: 2},
		{name: "merge then clean accept", in: []fix.TextEdit{del(1, 6), del(4, 9), del(15, 19)}, wantKeep: []fix.TextEdit{del(1, 9), del(15, 19)}, wantMerged: 1},
		{
			name: "merge skip and accept together",
			in: []fix.TextEdit{
				del(0, 12),
				del(6, 9),
				edit(8, 18, "+"),
				del(24, 30),
			},
			wantKeep:   []fix.TextEdit{del(0, 12), del(24, 30)},
			wantDrop:   []fix.TextEdit{edit(8, 18, "+")},
			wantMerged: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			keep, drop, merged := fix.MergeAndFilterConflicts(tc.in)
			if merged != tc.wantMerged {
				t.Errorf("merged = %d, want %d", merged, tc.wantMerged)
			}
			sameEdits(t, "kept", keep, tc.wantKeep)
			sameEdits(t, "dropped", drop, tc.wantDrop)
		})
	}
}

func TestPrepareEditsFiltered(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       []fix.TextEdit
		size     int
		wantKeep int
		wantDrop int
		wantErr  bool
	}{
		{name: "empty", size: 16},
		{name: "unsorted input kept", in: []fix.TextEdit{edit(8, 14, "b"), edit(0, 6, "a")}, size: 16, wantKeep: 2},
		{name: "overlaps filter instead of failing", in: []fix.TextEdit{edit(0, 9, "a"), edit(6, 14, "b")}, size: 16, wantKeep: 1, wantDrop: 1},
		{name: "stacked insertions survive", in: []fix.TextEdit{ins(0, "a\n"), ins(0, "b\n")}, size: 16, wantKeep: 2},
		{name: "negative offset still errors", in: []fix.TextEdit{edit(-1, 4, "x")}, size: 16, wantErr: true},
		{name: "past-end edit still errors", in: []fix.TextEdit{edit(2, 22, "x")}, size: 16, wantErr: true},
		{name: "filters in offset order", in: []fix.TextEdit{edit(8, 14, "b"), edit(0, 9, "a")}, size: 16, wantKeep: 1, wantDrop: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			keep, drop, _, err := fix.PrepareEditsFiltered(tc.in, tc.size)
			if (err != nil) != tc.wantErr {
				t.Fatalf("PrepareEditsFiltered() error = %v, want error %v", err, tc.wantErr)
			}
			if len(keep) != tc.wantKeep {
				t.Errorf("len(keep) = %d, want %d", len(keep), tc.wantKeep)
			}
			if len(drop) != tc.wantDrop {
				t.Errorf("len(drop) = %d, want %d", len(drop), tc.wantDrop)
			}

			// Survivors must come out ordered and non-overlapping.
			for i := 1; i < len(keep); i++ {
				if keep[i].StartOffset < keep[i-1].StartOffset {
					t.Error("kept edits not sorted")
				}
				if keep[i].StartOffset < keep[i-1].EndOffset {
					t.Error("kept edits overlap")
				}
			}
		})
	}
}
