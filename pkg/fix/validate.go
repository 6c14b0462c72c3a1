package fix

import (
	"fmt"
	"sort"
)

// ValidationError describes a correction whose range does not fit the content.
type ValidationError struct {
	Correction Correction
	Message    string
}

func (e *ValidationError) Error() string {
	r := e.Correction.Edit.Range
	return fmt.Sprintf("invalid %s edit [%d:%d]: %s", e.Correction.RuleID, r.Start, r.End, e.Message)
}

// Validate checks that every edit range lies within content of length contentLen.
func Validate(corrections []Correction, contentLen int) error {
	for _, c := range corrections {
		r := c.Edit.Range
		switch {
		case r.Start < 0:
			return &ValidationError{Correction: c, Message: "start offset is negative"}
		case r.End < r.Start:
			return &ValidationError{Correction: c, Message: "end offset is before start offset"}
		case r.End > contentLen:
			return &ValidationError{
				Correction: c,
				Message:    fmt.Sprintf("end offset %d exceeds content length %d", r.End, contentLen),
			}
		}
	}
	return nil
}

// conflicts reports whether applying both edits could corrupt one of them.
// Two insertions at the same offset conflict because their order is ambiguous.
func conflicts(a, b Edit) bool {
	if a.Range.Overlaps(b.Range) {
		return true
	}
	if a.Range.Start != b.Range.Start {
		return false
	}
	return a.IsInsert() || b.IsInsert()
}

// Resolve removes overlapping corrections. Edits that enclose others win, so a
// rule that rebased an inner edit into an outer replacement keeps the outer
// one; among partial overlaps the earlier edit wins. The kept corrections are
// returned in descending position order, ready to apply.
func Resolve(corrections []Correction) ([]Correction, []Correction) {
	if len(corrections) == 0 {
		return nil, nil
	}

	ordered := make([]Correction, len(corrections))
	copy(ordered, corrections)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Edit.Range, ordered[j].Edit.Range
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End > b.End
	})

	kept := make([]Correction, 0, len(ordered))
	var dropped []Correction
	for _, c := range ordered {
		if n := len(kept); n > 0 && conflicts(kept[n-1].Edit, c.Edit) {
			dropped = append(dropped, c)
			continue
		}
		kept = append(kept, c)
	}

	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept, dropped
}
