// Package fserr defines the error taxonomy shared by every fastscapelib
// package: a small closed set of Kind values that let a caller branch on
// "what went wrong" with errors.As, independent of which package or which
// call site produced the message.
//
// Every exported sentinel error in this module (grid.ErrShapeMismatch,
// flowgraph.ErrOrderStale, mstsink.ErrNoOutlet, ...) is a plain
// errors.New value; call sites wrap it in an *Error built with New
// (sometimes after adding context with fmt.Errorf("...: %w", Err)).
package fserr

import "fmt"

// Kind classifies a fastscapelib error.
type Kind int

const (
	// InvalidArgument marks malformed caller input: shape mismatches,
	// inconsistent LOOPED pairing, an empty operator sequence, or an
	// incompatible adjacent-operator flow-direction pair.
	InvalidArgument Kind = iota

	// InvariantViolated marks a state the algorithm cannot recover from
	// within the current step: a basin graph with no outlet, or a
	// topological order requested before receivers are populated.
	InvariantViolated

	// NumericalNonconvergence marks a Newton iteration (or similar) that
	// exceeded its iteration budget. Never fatal: callers observe it via
	// a *erosion.Warnings sink, not via a returned error.
	NumericalNonconvergence

	// OutOfRange marks a neighbor or node index outside [0, N), which
	// indicates an internal bug rather than bad caller input.
	OutOfRange
)

// String renders a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case InvariantViolated:
		return "InvariantViolated"
	case NumericalNonconvergence:
		return "NumericalNonconvergence"
	case OutOfRange:
		return "OutOfRange"
	default:
		return "Unknown"
	}
}

// Error wraps a sentinel error with the operation that raised it and its
// taxonomy Kind, so callers can both errors.Is against the sentinel and
// switch on Kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes the wrapped sentinel for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Err }

// New builds a *Error tagging sentinel err, raised by operation op, with
// taxonomy kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
