package flowop

import (
	"context"
	"fmt"
	"sync"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// Snapshot is a deep copy of a FlowGraphImpl and/or a working elevation,
// keyed by the name of the FlowSnapshot operator that produced it (spec
// §4.3). Snapshots are values, not back-references: the Pipeline owns
// every snapshot, the caller owns the live graph it passes to each
// UpdateRoutes call, and there is no cyclic ownership (spec §9).
type Snapshot struct {
	Graph     *flowgraph.FlowGraphImpl
	Elevation []float64
}

// Pipeline is an ordered, validated sequence of Operators (spec §4.3).
type Pipeline struct {
	operators []Operator

	mu        sync.RWMutex
	snapshots map[string]*Snapshot
}

// NewPipeline validates and constructs a Pipeline. Construction-time
// checks (spec §4.3):
//
//   - at least one operator with GraphUpdated() == true
//   - at least one operator with OutFlowDir() != Undefined
//   - every adjacent pair (A, B) has compatible(A.OutFlowDir(), B.InFlowDir())
func NewPipeline(operators ...Operator) (*Pipeline, error) {
	const op = "flowop.NewPipeline"
	if len(operators) == 0 {
		return nil, invalidArg(op, ErrEmptyPipeline)
	}

	hasGraphUpdater := false
	hasFlowDirProducer := false
	for i, o := range operators {
		if o.GraphUpdated() {
			hasGraphUpdater = true
		}
		if o.OutFlowDir() != Undefined {
			hasFlowDirProducer = true
		}
		if i > 0 {
			prev := operators[i-1]
			if !compatible(prev.OutFlowDir(), o.InFlowDir()) {
				return nil, invalidArg(op, fmt.Errorf("%w: %s(out=%s) -> %s(in=%s)",
					ErrFlowDirIncompatible, prev.Name(), prev.OutFlowDir(), o.Name(), o.InFlowDir()))
			}
		}
	}
	if !hasGraphUpdater {
		return nil, invalidArg(op, ErrNoGraphUpdater)
	}
	if !hasFlowDirProducer {
		return nil, invalidArg(op, ErrNoFlowDirProducer)
	}

	return &Pipeline{operators: operators, snapshots: make(map[string]*Snapshot)}, nil
}

// snapshotter is implemented by operators that write into the pipeline's
// snapshot store after they run (only FlowSnapshot today).
type snapshotter interface {
	takeSnapshot(impl *flowgraph.FlowGraphImpl, elevation []float64) (string, *Snapshot)
}

// UpdateRoutes runs every operator in insertion order against elevation
// (spec §4.3 "Per-step execution"):
//
//  1. If any operator updates elevation, elevation is copied into an
//     owned working buffer; otherwise the input buffer is read through
//     directly (no operator will write to it).
//  2. Each operator's Apply is called in order; writes by operator i are
//     visible to operator i+1 (spec §5 ordering guarantee).
//  3. After each Apply, any snapshotter operator's pending save is
//     committed into the pipeline's snapshot store.
//
// The returned slice is the final working elevation.
func (p *Pipeline) UpdateRoutes(ctx context.Context, g grid.Grid, impl *flowgraph.FlowGraphImpl, elevation []float64) ([]float64, error) {
	const op = "flowop.UpdateRoutes"
	if len(elevation) != g.Size() {
		return nil, invalidArg(op, ErrElevationShapeMismatch)
	}

	working := elevation
	needsOwnBuffer := false
	for _, o := range p.operators {
		if o.ElevationUpdated() {
			needsOwnBuffer = true
			break
		}
	}
	if needsOwnBuffer {
		working = make([]float64, len(elevation))
		copy(working, elevation)
	}

	impl.Reset()
	for _, o := range p.operators {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if err := o.Apply(ctx, g, impl, working); err != nil {
			return nil, fmt.Errorf("%s: operator %s: %w", op, o.Name(), err)
		}
		if snap, ok := o.(snapshotter); ok {
			if name, s := snap.takeSnapshot(impl, working); s != nil {
				p.mu.Lock()
				p.snapshots[name] = s
				p.mu.Unlock()
			}
		}
	}

	return working, nil
}

// Snapshot returns the snapshot last written under name, if any.
func (p *Pipeline) Snapshot(name string) (*Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.snapshots[name]

	return s, ok
}

// Operators returns the pipeline's operator sequence in insertion order.
func (p *Pipeline) Operators() []Operator {
	out := make([]Operator, len(p.operators))
	copy(out, p.operators)

	return out
}
