package tokens

import "github.com/pkg/errors"

// Range selects a half-open interval of a view, in the view's own
// granularity. Nil bounds are open-ended. Indices may be negative (counted
// from the end) or out of range; they are clamped the same way list slicing
// clamps them. Step may be 0 (meaning 1) or 1; anything else is rejected
// with ErrUnsupportedStep.
type Range struct {
	Start, Stop *int
	Step        int
}

// Between selects [start, stop).
func Between(start, stop int) Range {
	return Range{Start: &start, Stop: &stop}
}

// From selects [start, end-of-view).
func From(start int) Range {
	return Range{Start: &start}
}

// Until selects [0, stop).
func Until(stop int) Range {
	return Range{Stop: &stop}
}

// Whole selects the entire view.
func Whole() Range {
	return Range{}
}

func (r Range) checkStep() error {
	if r.Step != 0 && r.Step != 1 {
		return errors.Wrapf(ErrUnsupportedStep, "step %d", r.Step)
	}
	return nil
}
