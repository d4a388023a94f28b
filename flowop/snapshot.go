package flowop

import (
	"context"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// FlowSnapshot deep-copies the current FlowGraphImpl and/or working
// elevation into the pipeline's keyed snapshot store (spec §4.3). It
// never mutates the graph or elevation itself.
type FlowSnapshot struct {
	SnapName      string
	SaveGraph     bool
	SaveElevation bool
}

var _ Operator = FlowSnapshot{}
var _ snapshotter = FlowSnapshot{}

// NewFlowSnapshot builds a FlowSnapshot with the spec's documented
// defaults (save_graph: bool = true, save_elevation: bool = false).
func NewFlowSnapshot(name string, opts ...SnapshotOption) FlowSnapshot {
	s := FlowSnapshot{SnapName: name, SaveGraph: true, SaveElevation: false}
	for _, o := range opts {
		o(&s)
	}

	return s
}

// SnapshotOption configures a FlowSnapshot.
type SnapshotOption func(*FlowSnapshot)

// WithSaveGraph overrides whether the graph is captured.
func WithSaveGraph(save bool) SnapshotOption { return func(s *FlowSnapshot) { s.SaveGraph = save } }

// WithSaveElevation overrides whether elevation is captured.
func WithSaveElevation(save bool) SnapshotOption {
	return func(s *FlowSnapshot) { s.SaveElevation = save }
}

func (s FlowSnapshot) Name() string         { return s.SnapName }
func (FlowSnapshot) GraphUpdated() bool     { return false }
func (FlowSnapshot) ElevationUpdated() bool { return false }
func (FlowSnapshot) InFlowDir() FlowDir     { return Undefined }
func (FlowSnapshot) OutFlowDir() FlowDir    { return Undefined }

// Apply is a no-op: the actual copy happens in takeSnapshot, invoked by
// Pipeline.UpdateRoutes right after Apply returns.
func (FlowSnapshot) Apply(ctx context.Context, g grid.Grid, impl *flowgraph.FlowGraphImpl, elevation []float64) error {
	return nil
}

// takeSnapshot implements the Pipeline's snapshotter hook.
func (s FlowSnapshot) takeSnapshot(impl *flowgraph.FlowGraphImpl, elevation []float64) (string, *Snapshot) {
	snap := &Snapshot{}
	if s.SaveGraph {
		snap.Graph = impl.Clone()
	}
	if s.SaveElevation {
		snap.Elevation = append([]float64(nil), elevation...)
	}

	return s.SnapName, snap
}
