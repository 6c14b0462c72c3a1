package fix

import "slices"

// Result is the outcome of applying one batch of corrections.
type Result struct {
	Content []byte
	// Applied is in descending position order.
	Applied []Correction
	// Dropped lists corrections discarded because they overlapped another.
	Dropped []Correction
}

// Changed reports whether any correction was applied.
func (r Result) Changed() bool {
	return len(r.Applied) > 0
}

// Apply validates and resolves corrections computed against content, then
// splices them in descending position order so earlier offsets stay valid.
// The input slice is not modified.
func Apply(content []byte, corrections []Correction) (Result, error) {
	if len(corrections) == 0 {
		return Result{Content: content}, nil
	}
	if err := Validate(corrections, len(content)); err != nil {
		return Result{}, err
	}

	kept, dropped := Resolve(corrections)
	out := slices.Clone(content)
	for _, c := range kept {
		r := c.Edit.Range
		out = slices.Replace(out, r.Start, r.End, []byte(c.Edit.NewText)...)
	}
	return Result{Content: out, Applied: kept, Dropped: dropped}, nil
}
