package flowgraph

import (
	"errors"

	"github.com/fastscape-go/fastscapelib/internal/fserr"
)

// Sentinel errors for the flowgraph package.
var (
	// ErrOrderStale indicates Accumulate was called while the topological
	// order is stale: ComputeOrder has not succeeded since the last Reset
	// or receiver change.
	ErrOrderStale = errors.New("flowgraph: topological order requested before receivers populated")

	// ErrCycleDetected indicates the receiver graph is not acyclic; this
	// is an internal-bug signal since operators must never construct
	// cyclic receivers.
	ErrCycleDetected = errors.New("flowgraph: cycle detected in receiver graph")

	// ErrIndexOutOfRange indicates a node or neighbor index outside
	// [0, N).
	ErrIndexOutOfRange = errors.New("flowgraph: index out of range")

	// ErrLengthMismatch indicates a source/destination array length that
	// does not match the graph's node count.
	ErrLengthMismatch = errors.New("flowgraph: array length mismatch")
)

func invariantViolated(op string, err error) error {
	return fserr.New(fserr.InvariantViolated, op, err)
}

func outOfRange(op string, err error) error {
	return fserr.New(fserr.OutOfRange, op, err)
}

func invalidArg(op string, err error) error {
	return fserr.New(fserr.InvalidArgument, op, err)
}
