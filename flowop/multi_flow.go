package flowop

import (
	"context"
	"math"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// DefaultSlopeExp is the slope exponent MultiFlowRouter uses when
// SlopeExp is nil (spec §6: "multi-flow router: slope_exp: f64 = 1.0").
const DefaultSlopeExp = 1.0

// MultiFlowRouter distributes each node's outflow across every downslope
// neighbor, weighted by slope^SlopeExp normalized to sum to 1 (spec
// §4.3). It accepts Single or Undefined input and overwrites whatever
// receivers are already present.
//
// SlopeExp is a pointer so a zero-value MultiFlowRouter{} (SlopeExp ==
// nil) can mean "use the spec default 1.0" while still letting a caller
// explicitly request the valid p=0 case (uniform weighting across every
// downslope neighbor) — a plain float64 field cannot distinguish
// "unset" from "explicitly zero". Use NewMultiFlowRouter to build one
// with an explicit exponent.
//
// A node with no downslope neighbor (including an exactly-flat node,
// where every neighbor's elevation is >= its own) records zero
// receivers — Open Question 1 in DESIGN.md pins this rather than, say,
// splitting flow evenly across flat neighbors.
type MultiFlowRouter struct {
	SlopeExp *float64
}

// NewMultiFlowRouter constructs a MultiFlowRouter with an explicit slope
// exponent, including the valid slopeExp=0 (uniform weighting) case.
func NewMultiFlowRouter(slopeExp float64) MultiFlowRouter {
	return MultiFlowRouter{SlopeExp: &slopeExp}
}

var _ Operator = MultiFlowRouter{}

func (MultiFlowRouter) Name() string            { return "MultiFlowRouter" }
func (MultiFlowRouter) GraphUpdated() bool      { return true }
func (MultiFlowRouter) ElevationUpdated() bool  { return false }
func (MultiFlowRouter) InFlowDir() FlowDir      { return Undefined }
func (MultiFlowRouter) OutFlowDir() FlowDir     { return Multi }

// Apply implements Operator.
func (r MultiFlowRouter) Apply(ctx context.Context, g grid.Grid, impl *flowgraph.FlowGraphImpl, elevation []float64) error {
	p := DefaultSlopeExp
	if r.SlopeExp != nil {
		p = *r.SlopeExp
	}
	n := g.Size()
	type cand struct {
		to   int
		d    float64
		wRaw float64
	}
	buf := make([]cand, 0, g.Kmax())
	for i := 0; i < n; i++ {
		if g.Status(i) == grid.Ghost || g.Status(i).IsBaseLevel() {
			continue
		}
		buf = buf[:0]
		sum := 0.0
		for _, nb := range g.Neighbors(i) {
			if elevation[nb.To] >= elevation[i] {
				continue
			}
			slope := (elevation[i] - elevation[nb.To]) / nb.Distance
			w := math.Pow(slope, p)
			buf = append(buf, cand{to: nb.To, d: nb.Distance, wRaw: w})
			sum += w
		}
		// Discard whatever receiver list a prior stage (e.g. SingleFlowRouter
		// on a mixed pipeline) left on this node before writing our own, so
		// "overwrites whatever receivers are already present" holds even
		// when this node turns out to be flat and gets none.
		impl.ClearReceivers(i)
		if len(buf) == 0 || sum == 0 {
			continue
		}
		for _, c := range buf {
			impl.AddMultiReceiver(i, c.to, c.d, c.wRaw/sum)
		}
	}
	impl.ComputeDonors()

	return nil
}
