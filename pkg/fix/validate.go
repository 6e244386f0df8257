package fix

import (
	"fmt"
	"sort"
)

// ValidationError describes an edit whose range does not fit the content.
type ValidationError struct {
	Edit    TextEdit // the offending edit
	Message string   // what is wrong with its range
}

func (e *ValidationError) Error() string {
	edit := e.Edit
	return fmt.Sprintf("invalid edit [%d:%d]: %s", edit.StartOffset, edit.EndOffset, e.Message)
}

// ConflictError describes two edits whose ranges overlap.
type ConflictError struct {
	Edit1 TextEdit // the earlier edit in sorted order
	Edit2 TextEdit // the edit overlapping it
}

func (e *ConflictError) Error() string {
	a, b := e.Edit1, e.Edit2
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		a.StartOffset, a.EndOffset, b.StartOffset, b.EndOffset)
}

// checkEdit validates a single edit range against the content length.
func checkEdit(edit TextEdit, contentLength int) error {
	switch {
	case edit.StartOffset < 0:
		return &ValidationError{Edit: edit, Message: "start offset is negative"}
	case edit.EndOffset < edit.StartOffset:
		return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
	case edit.EndOffset > contentLength:
		msg := fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLength)
		return &ValidationError{Edit: edit, Message: msg}
	}
	return nil
}

// ValidateEdits checks every edit range against the content length.
// Returns the first invalid edit found, or nil.
func ValidateEdits(edits []TextEdit, contentLength int) error {
	for _, e := range edits {
		if err := checkEdit(e, contentLength); err != nil {
			return err
		}
	}
	return nil
}

// SortEdits sorts edits by start offset, then end offset. The sort is
// stable: insertions at the same offset keep the order in which rules
// emitted them, so top-of-file lines land in rule ID order.
func SortEdits(edits []TextEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		a, b := edits[i], edits[j]
		if a.StartOffset != b.StartOffset {
			return a.StartOffset < b.StartOffset
		}
		return a.EndOffset < b.EndOffset
	})
}

// sortedCopy clones edits and orders the clone with SortEdits.
func sortedCopy(edits []TextEdit) []TextEdit {
	out := make([]TextEdit, len(edits))
	copy(out, edits)
	SortEdits(out)
	return out
}

// DetectConflicts reports the first overlap in a slice already ordered by
// SortEdits, or nil when the edits are disjoint.
func DetectConflicts(edits []TextEdit) error {
	var prev TextEdit
	for i, edit := range edits {
		if i > 0 && edit.StartOffset < prev.EndOffset {
			return &ConflictError{Edit1: prev, Edit2: edit}
		}
		prev = edit
	}
	return nil
}

// PrepareEdits validates, sorts, and rejects conflicting edits. The input
// slice is not modified.
func PrepareEdits(edits []TextEdit, contentLength int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}
	if err := ValidateEdits(edits, contentLength); err != nil {
		return nil, err
	}

	sorted := sortedCopy(edits)
	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}

// PrepareEditsFiltered validates and sorts, then resolves conflicts instead
// of rejecting them: overlapping deletions merge into one, anything else
// overlapping is dropped. Returns (accepted, skipped, merged count, error);
// the error is only ever a validation failure.
func PrepareEditsFiltered(edits []TextEdit, contentLength int) ([]TextEdit, []TextEdit, int, error) {
	if len(edits) == 0 {
		return nil, nil, 0, nil
	}
	if err := ValidateEdits(edits, contentLength); err != nil {
		return nil, nil, 0, err
	}

	keep, dropped, merges := MergeAndFilterConflicts(sortedCopy(edits))
	return keep, dropped, merges, nil
}

// FilterConflicts drops overlapping edits from a sorted slice, keeping the
// earliest edit in each overlapping run. Insertions at the same offset are
// zero-width and never conflict with each other.
func FilterConflicts(edits []TextEdit) ([]TextEdit, []TextEdit) {
	if len(edits) == 0 {
		return nil, nil
	}

	keep := make([]TextEdit, 0, len(edits))
	dropped := make([]TextEdit, 0)

	keep = append(keep, edits[0])
	end := edits[0].EndOffset
	for _, edit := range edits[1:] {
		if edit.StartOffset < end {
			dropped = append(dropped, edit)
			continue
		}
		keep = append(keep, edit)
		end = edit.EndOffset
	}
	return keep, dropped
}

// MergeAndFilterConflicts merges overlapping deletions into a single
// deletion covering their union and drops any other overlapping edit.
// Edits must be sorted by SortEdits. Returns (accepted, skipped, merged
// count).
func MergeAndFilterConflicts(edits []TextEdit) ([]TextEdit, []TextEdit, int) {
	if len(edits) == 0 {
		return nil, nil, 0
	}

	keep := make([]TextEdit, 0, len(edits))
	dropped := make([]TextEdit, 0)
	merges := 0

	pending := edits[0]
	for _, edit := range edits[1:] {
		switch {
		case edit.StartOffset >= pending.EndOffset:
			keep = append(keep, pending)
			pending = edit
		case pending.NewText == "" && edit.NewText == "":
			pending = unionDeletion(pending, edit)
			merges++
		default:
			dropped = append(dropped, edit)
		}
	}
	keep = append(keep, pending)

	return keep, dropped, merges
}

// unionDeletion combines two overlapping deletions.
func unionDeletion(a, b TextEdit) TextEdit {
	return TextEdit{StartOffset: min(a.StartOffset, b.StartOffset), EndOffset: max(a.EndOffset, b.EndOffset)}
}
