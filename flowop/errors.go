package flowop

import (
	"errors"

	"github.com/fastscape-go/fastscapelib/internal/fserr"
)

// Sentinel errors for pipeline construction and execution.
var (
	// ErrEmptyPipeline indicates NewPipeline was called with no operators.
	ErrEmptyPipeline = errors.New("flowop: pipeline must contain at least one operator")

	// ErrNoGraphUpdater indicates no operator in the pipeline sets
	// GraphUpdated (spec §4.3: "At least one operator with graph_updated = true").
	ErrNoGraphUpdater = errors.New("flowop: pipeline must contain at least one graph-updating operator")

	// ErrNoFlowDirProducer indicates no operator produces a defined
	// out-flow-direction.
	ErrNoFlowDirProducer = errors.New("flowop: pipeline must contain at least one operator with a defined output flow direction")

	// ErrFlowDirIncompatible indicates two adjacent operators have
	// incompatible in/out flow-direction types.
	ErrFlowDirIncompatible = errors.New("flowop: incompatible adjacent operator flow directions")

	// ErrElevationShapeMismatch indicates the input elevation array does
	// not match the grid's node count.
	ErrElevationShapeMismatch = errors.New("flowop: elevation shape mismatch")

	// ErrUnknownSnapshot names the case of a snapshot name no FlowSnapshot
	// operator ever wrote. Pipeline.Snapshot reports that case through its
	// boolean result and does not return this error.
	ErrUnknownSnapshot = errors.New("flowop: unknown snapshot name")

	// ErrNoBaseLevel indicates a sink resolver found no base-level (fixed
	// value) node to flood outward from.
	ErrNoBaseLevel = errors.New("flowop: grid has no base-level node")
)

func invalidArg(op string, err error) error { return fserr.New(fserr.InvalidArgument, op, err) }
