package flowop

import (
	"context"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
	"github.com/fastscape-go/fastscapelib/mstsink"
)

// MSTSinkResolver reconnects every closed depression to a true outlet by
// delegating to package mstsink's basin-discovery / basin-graph /
// spanning-tree / route-propagation pipeline (spec §4.4). It requires an
// already single-flow-routed graph and produces a single-flow graph with
// every basin draining to a base level.
type MSTSinkResolver struct {
	BasinMethod mstsink.BasinMethod
	RouteMethod mstsink.RouteMethod
}

var _ Operator = MSTSinkResolver{}

func (MSTSinkResolver) Name() string       { return "MSTSinkResolver" }
func (MSTSinkResolver) GraphUpdated() bool { return true }

// ElevationUpdated is true only for CARVE, which lowers elevation along
// carved paths to preserve monotone descent.
func (r MSTSinkResolver) ElevationUpdated() bool { return r.RouteMethod == mstsink.Carve }
func (MSTSinkResolver) InFlowDir() FlowDir       { return Single }
func (MSTSinkResolver) OutFlowDir() FlowDir      { return Single }

// Apply implements Operator.
func (r MSTSinkResolver) Apply(ctx context.Context, g grid.Grid, impl *flowgraph.FlowGraphImpl, elevation []float64) error {
	return mstsink.Resolve(ctx, g, impl, elevation, r.BasinMethod, r.RouteMethod)
}
