package flowop_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/flowop"
	"github.com/fastscape-go/fastscapelib/grid"
	"github.com/fastscape-go/fastscapelib/mstsink"
)

// ridge builds a 5-node profile grid with a simple monotone descent
// toward node 0, the sole base level.
func ridge(t *testing.T) (*grid.ProfileGrid, *flowgraph.FlowGraphImpl, []float64) {
	t.Helper()
	pg, err := grid.NewProfileGrid(5, 1, grid.FixedValue, grid.Core, nil)
	require.NoError(t, err)
	fg := flowgraph.New(pg, true)
	elevation := []float64{0, 1, 2, 3, 4}

	return pg, fg, elevation
}

func TestNewPipeline_RejectsEmpty(t *testing.T) {
	_, err := flowop.NewPipeline()
	require.Error(t, err)
	assert.True(t, errors.Is(err, flowop.ErrEmptyPipeline))
}

func TestNewPipeline_RequiresGraphUpdater(t *testing.T) {
	_, err := flowop.NewPipeline(flowop.NewFlowSnapshot("s"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, flowop.ErrNoGraphUpdater))
}

// graphOnlyOperator updates the graph but declares an Undefined output
// flow direction, so a pipeline made of it alone has a graph updater and
// no flow-direction producer.
type graphOnlyOperator struct{ flowop.PFloodSinkResolver }

func (graphOnlyOperator) GraphUpdated() bool { return true }

func TestNewPipeline_RequiresFlowDirProducer(t *testing.T) {
	_, err := flowop.NewPipeline(graphOnlyOperator{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, flowop.ErrNoFlowDirProducer))
}

func TestNewPipeline_RejectsIncompatibleAdjacentFlowDirs(t *testing.T) {
	// MultiFlowRouter produces Multi; MSTSinkResolver only accepts Single.
	_, err := flowop.NewPipeline(flowop.NewMultiFlowRouter(1), flowop.MSTSinkResolver{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, flowop.ErrFlowDirIncompatible))
}

func TestNewPipeline_AcceptsUndefinedInAfterAnyOut(t *testing.T) {
	_, err := flowop.NewPipeline(flowop.SingleFlowRouter{}, flowop.NewFlowSnapshot("after"))
	require.NoError(t, err)
}

func TestUpdateRoutes_RejectsElevationShapeMismatch(t *testing.T) {
	pg, fg, _ := ridge(t)
	p, err := flowop.NewPipeline(flowop.SingleFlowRouter{})
	require.NoError(t, err)

	_, err = p.UpdateRoutes(context.Background(), pg, fg, []float64{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, flowop.ErrElevationShapeMismatch))
}

func TestUpdateRoutes_RunsOperatorsInOrderAndSeesEachOthersWrites(t *testing.T) {
	pg, fg, elevation := ridge(t)
	p, err := flowop.NewPipeline(flowop.SingleFlowRouter{}, flowop.NewFlowSnapshot("routed"))
	require.NoError(t, err)

	out, err := p.UpdateRoutes(context.Background(), pg, fg, elevation)
	require.NoError(t, err)
	assert.Equal(t, elevation, out, "no elevation-updating operator: input buffer is reused")

	for i := 1; i < 5; i++ {
		assert.Equal(t, []int{i - 1}, fg.Receivers(i))
	}

	snap, ok := p.Snapshot("routed")
	require.True(t, ok)
	require.NotNil(t, snap.Graph)
	assert.Nil(t, snap.Elevation, "default FlowSnapshot does not save elevation")
}

func TestUpdateRoutes_CopiesElevationWhenAnyOperatorUpdatesIt(t *testing.T) {
	pg, fg, elevation := ridge(t)
	original := append([]float64(nil), elevation...)

	p, err := flowop.NewPipeline(flowop.PFloodSinkResolver{}, flowop.SingleFlowRouter{})
	require.NoError(t, err)

	out, err := p.UpdateRoutes(context.Background(), pg, fg, elevation)
	require.NoError(t, err)
	assert.NotSame(t, &elevation[0], &out[0])
	assert.Equal(t, original, elevation, "input buffer must be left untouched")
}

func TestPipeline_Snapshot_UnknownNameNotFound(t *testing.T) {
	pg, fg, elevation := ridge(t)
	p, err := flowop.NewPipeline(flowop.SingleFlowRouter{})
	require.NoError(t, err)
	_, err = p.UpdateRoutes(context.Background(), pg, fg, elevation)
	require.NoError(t, err)

	_, ok := p.Snapshot("never-taken")
	assert.False(t, ok)
}

func TestUpdateRoutes_ResetsGraphEachRun(t *testing.T) {
	pg, fg, elevation := ridge(t)
	p, err := flowop.NewPipeline(flowop.SingleFlowRouter{})
	require.NoError(t, err)

	_, err = p.UpdateRoutes(context.Background(), pg, fg, elevation)
	require.NoError(t, err)
	require.Equal(t, []int{0}, fg.Receivers(1))

	// Flatten the terrain and rerun: stale receivers from the first run
	// must not survive since UpdateRoutes resets impl up front.
	flat := []float64{0, 0, 0, 0, 0}
	_, err = p.UpdateRoutes(context.Background(), pg, fg, flat)
	require.NoError(t, err)
	assert.Empty(t, fg.Receivers(1))
}

// TestUpdateRoutes_MixedSingleMSTMultiPipeline exercises the spec's
// mandatory S2 ordering (Single -> MSTResolver -> Multi) on one shared
// FlowGraphImpl: SingleFlowRouter finds an interior pit with two donors,
// MSTSinkResolver carves a downhill path out of it (lowering one of the
// basin's own nodes below the pit), and MultiFlowRouter then re-routes
// every node, including the pit, from the post-carve elevation — the
// pit is the very node SetSingleReceiver last wrote during the carve,
// which is exactly the case that panicked before storage was unified
// (comment a/b).
func TestUpdateRoutes_MixedSingleMSTMultiPipeline(t *testing.T) {
	pg, err := grid.NewProfileGrid(7, 1, grid.FixedValue, grid.FixedValue, nil)
	require.NoError(t, err)
	fg := flowgraph.New(pg, true)

	// Node 3 is a pit one hop from node 2 and node 4: 2 and 4 both drain
	// into it, giving the pit a three-node basin {2,3,4} for CARVE to work
	// with. The pass toward node 5 (elevation 2.5) is cheaper than the one
	// toward node 1 (elevation 3), so MST connects the basin out through
	// node 4.
	elevation := []float64{0, 3, 2, 0.5, 1.8, 2.5, 0}

	p, err := flowop.NewPipeline(
		flowop.SingleFlowRouter{},
		flowop.MSTSinkResolver{BasinMethod: mstsink.Kruskal, RouteMethod: mstsink.Carve},
		flowop.NewMultiFlowRouter(1.1),
	)
	require.NoError(t, err)

	out, err := p.UpdateRoutes(context.Background(), pg, fg, elevation)
	require.NoError(t, err)

	const pit = 3
	recv := fg.Receivers(pit)
	require.NotEmpty(t, recv, "carve must lower a basin node below the pit, giving multi-flow a real downhill target")
	weights := fg.ReceiverWeights(pit)
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// MultiFlowRouter only ever records neighbors strictly below the
	// source, so this holds by construction; asserting it here pins that
	// re-routing the carved node did not somehow skip that filter.
	for _, r := range recv {
		assert.Less(t, out[r], out[pit])
	}
}

func TestUpdateRoutes_RespectsContextCancellation(t *testing.T) {
	pg, fg, elevation := ridge(t)
	p, err := flowop.NewPipeline(flowop.SingleFlowRouter{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.UpdateRoutes(ctx, pg, fg, elevation)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
