package flowop

import (
	"context"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// SingleFlowRouter picks, for each non-base-level node, the neighbor
// that maximizes steepest descent (h(i)-h(j))/d(i,j), tie-broken by
// smallest neighbor index. A node with no downslope neighbor is a pit
// and gets no receiver (spec §4.3).
type SingleFlowRouter struct{}

var _ Operator = SingleFlowRouter{}

func (SingleFlowRouter) Name() string           { return "SingleFlowRouter" }
func (SingleFlowRouter) GraphUpdated() bool     { return true }
func (SingleFlowRouter) ElevationUpdated() bool { return false }
func (SingleFlowRouter) InFlowDir() FlowDir     { return Undefined }
func (SingleFlowRouter) OutFlowDir() FlowDir    { return Single }

// Apply implements Operator.
func (SingleFlowRouter) Apply(ctx context.Context, g grid.Grid, impl *flowgraph.FlowGraphImpl, elevation []float64) error {
	n := g.Size()
	for i := 0; i < n; i++ {
		if g.Status(i) == grid.Ghost || g.Status(i).IsBaseLevel() {
			continue
		}
		bestJ := -1
		bestSlope := 0.0
		bestDist := 0.0
		for _, nb := range g.Neighbors(i) {
			slope := (elevation[i] - elevation[nb.To]) / nb.Distance
			if slope <= 0 {
				continue
			}
			if bestJ == -1 || slope > bestSlope || (slope == bestSlope && nb.To < bestJ) {
				bestJ = nb.To
				bestSlope = slope
				bestDist = nb.Distance
			}
		}
		if bestJ == -1 {
			continue // pit: no receiver
		}
		impl.SetSingleReceiver(i, bestJ, bestDist)
	}
	impl.ComputeDonors()

	return nil
}
