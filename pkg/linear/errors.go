package linear

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyOrderings is matched by [*TooManyOrderingsError] via
	// errors.Is. It reports that enumeration hit the configured cap while
	// further orders remained.
	ErrTooManyOrderings = errors.New("too many orderings")

	// ErrCancelled is returned when a walk is aborted through its context.
	// It wraps the context error, so errors.Is(err, context.Canceled) also
	// holds when that was the cause. Distinct from ErrTooManyOrderings: a
	// cancelled walk returns no orders at all.
	ErrCancelled = errors.New("enumeration cancelled")
)

// TooManyOrderingsError reports a capped enumeration. Enumerated orders up to
// the cap were already delivered to the caller.
type TooManyOrderingsError struct {
	LineID     uint32
	Enumerated int
	Limit      int
}

// Error implements the error interface.
func (e *TooManyOrderingsError) Error() string {
	return fmt.Sprintf("too many orderings for line %d: enumerated %d, limit %d",
		e.LineID, e.Enumerated, e.Limit)
}

// Is matches the ErrTooManyOrderings sentinel.
func (e *TooManyOrderingsError) Is(target error) bool {
	return target == ErrTooManyOrderings
}
