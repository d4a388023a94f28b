package flowop

import (
	"context"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// FlowDir names what flow-type an operator expects on input or produces
// on output (spec §4.3).
type FlowDir int

const (
	// Undefined accepts or produces no particular flow type.
	Undefined FlowDir = iota
	// Single is the single-flow-router fan-out (one receiver per node).
	Single
	// Multi is the multi-flow-router fan-out (up to Kmax receivers).
	Multi
)

// String renders a FlowDir for diagnostics.
func (d FlowDir) String() string {
	switch d {
	case Single:
		return "Single"
	case Multi:
		return "Multi"
	default:
		return "Undefined"
	}
}

// compatible reports whether an operator whose InFlowDir is `in` can
// accept output flow-direction `out` (spec §4.3: "either equal or B
// accepts UNDEFINED").
func compatible(out, in FlowDir) bool {
	return in == Undefined || in == out
}

// Operator is one stage of a Pipeline. Implementations mutate impl
// and/or elevation in Apply according to their declared capability
// flags.
type Operator interface {
	// Name identifies the operator in Pipeline error messages. A
	// FlowSnapshot's Name is also the key its snapshot is stored under.
	Name() string

	// GraphUpdated reports whether Apply mutates impl.
	GraphUpdated() bool

	// ElevationUpdated reports whether Apply mutates elevation.
	ElevationUpdated() bool

	// InFlowDir is the flow-direction type this operator expects on
	// input.
	InFlowDir() FlowDir

	// OutFlowDir is the flow-direction type this operator produces.
	OutFlowDir() FlowDir

	// Apply executes the operator against impl and elevation in place.
	Apply(ctx context.Context, g grid.Grid, impl *flowgraph.FlowGraphImpl, elevation []float64) error
}
