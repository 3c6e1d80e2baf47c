package edition

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedGraph is the umbrella sentinel matched by every
	// [*MalformedGraphError] via errors.Is, regardless of the specific cause.
	ErrMalformedGraph = errors.New("malformed graph")

	// ErrUnresolvedReference is returned when a next-interpretation reference
	// does not resolve to an interpretation within the same line.
	ErrUnresolvedReference = errors.New("unresolved next-interpretation reference")

	// ErrGraphCycle is returned when the next-interpretation relation within
	// a line contains a directed cycle. Detected eagerly at build time.
	ErrGraphCycle = errors.New("next-interpretation cycle")

	// ErrMissingField is returned when a required document field is absent
	// (empty name, zero interpretation ID, sign without interpretations).
	ErrMissingField = errors.New("missing required field")

	// ErrDuplicateInterpretation is returned when two interpretations within
	// one line share an ID. IDs must be unique per line for reference
	// resolution to be well defined.
	ErrDuplicateInterpretation = errors.New("duplicate interpretation ID")
)

// MalformedGraphError reports a document that violates the model invariants.
// It carries the identifiers of every entity on the path to the offending
// element so the caller can pinpoint it without re-traversing the document.
// The zero value of an identifier field means "not applicable".
type MalformedGraphError struct {
	Cause            error  // one of the sentinel errors above
	Field            string // offending field name for ErrMissingField
	EditionID        uint32
	FragmentID       uint32
	LineID           uint32
	SignID           uint32
	InterpretationID uint32
	RefID            uint32 // unresolved reference target, if any
}

// Error implements the error interface.
func (e *MalformedGraphError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "malformed graph: %v", e.Cause)
	if e.Field != "" {
		fmt.Fprintf(&b, " (%s)", e.Field)
	}
	for _, part := range []struct {
		label string
		id    uint32
	}{
		{"edition", e.EditionID},
		{"fragment", e.FragmentID},
		{"line", e.LineID},
		{"sign", e.SignID},
		{"interpretation", e.InterpretationID},
		{"ref", e.RefID},
	} {
		if part.id != 0 {
			fmt.Fprintf(&b, " %s=%d", part.label, part.id)
		}
	}
	return b.String()
}

// Unwrap returns the specific cause sentinel.
func (e *MalformedGraphError) Unwrap() error { return e.Cause }

// Is matches both the specific cause and the ErrMalformedGraph umbrella.
func (e *MalformedGraphError) Is(target error) bool {
	return target == ErrMalformedGraph || target == e.Cause
}
