package memlat

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBudget is returned when the per-cell budget is not positive.
	ErrInvalidBudget = errors.New("budget must be positive")
)

// ErrInvalidRange indicates an unusable working-set range.
type ErrInvalidRange struct {
	Min    int
	Max    int
	Reason string
}

func (e *ErrInvalidRange) Error() string {
	return fmt.Sprintf("invalid working-set range [%d, %d]: %s", e.Min, e.Max, e.Reason)
}

func validate(o options) error {
	switch {
	case o.minElements < 2:
		return &ErrInvalidRange{Min: o.minElements, Max: o.maxElements, Reason: "minimum must be at least 2"}
	case !isPow2(o.minElements) || !isPow2(o.maxElements):
		return &ErrInvalidRange{Min: o.minElements, Max: o.maxElements, Reason: "bounds must be powers of two"}
	case o.minElements > o.maxElements:
		return &ErrInvalidRange{Min: o.minElements, Max: o.maxElements, Reason: "minimum exceeds maximum"}
	case o.budget <= 0:
		return fmt.Errorf("%w: %v", ErrInvalidBudget, o.budget)
	}
	return nil
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
