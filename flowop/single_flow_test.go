package flowop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/flowop"
	"github.com/fastscape-go/fastscapelib/grid"
)

func TestSingleFlowRouter_SteepestDescentTieBrokenByIndex(t *testing.T) {
	borders := grid.BorderStatus{Top: grid.FixedValue, Bottom: grid.FixedValue, Left: grid.FixedValue, Right: grid.FixedValue}
	rg, err := grid.NewRasterGrid(3, 3, 1, 1, borders, nil)
	require.NoError(t, err)
	fg := flowgraph.New(rg, true)

	// All 8 border neighbors sit at the same elevation (5) below the
	// center (10). The diagonals are farther away (sqrt 2), so the four
	// axis neighbors 1, 3, 5, 7 share the steepest slope; the tie is
	// broken by lowest index.
	elevation := []float64{5, 5, 5, 5, 10, 5, 5, 5, 5}
	require.NoError(t, flowop.SingleFlowRouter{}.Apply(context.Background(), rg, fg, elevation))

	assert.Equal(t, []int{1}, fg.Receivers(4))
}

func TestSingleFlowRouter_PicksTheSteeperNeighborOverTheLowerIndexedOne(t *testing.T) {
	pg, err := grid.NewProfileGrid(3, 1, grid.Core, grid.FixedValue, nil)
	require.NoError(t, err)
	fg := flowgraph.New(pg, true)

	// Node 1's two neighbors are equidistant (spacing 1); node 2's slope
	// is steeper than node 0's, so 2 wins even though 0 has lower index.
	elevation := []float64{9, 10, 0}
	require.NoError(t, flowop.SingleFlowRouter{}.Apply(context.Background(), pg, fg, elevation))

	assert.Equal(t, []int{2}, fg.Receivers(1))
}

func TestSingleFlowRouter_LeavesPitsReceiverless(t *testing.T) {
	pg, err := grid.NewProfileGrid(3, 1, grid.FixedValue, grid.FixedValue, nil)
	require.NoError(t, err)
	fg := flowgraph.New(pg, true)

	elevation := []float64{5, 1, 5}
	require.NoError(t, flowop.SingleFlowRouter{}.Apply(context.Background(), pg, fg, elevation))

	assert.Empty(t, fg.Receivers(1))
	assert.Equal(t, 0, fg.RCount(1))
}

func TestSingleFlowRouter_SkipsBaseLevelAndGhostNodes(t *testing.T) {
	pg, err := grid.NewProfileGrid(3, 1, grid.FixedValue, grid.FixedValue, map[int]grid.NodeStatus{1: grid.Ghost})
	require.NoError(t, err)
	fg := flowgraph.New(pg, true)

	elevation := []float64{5, 10, 1}
	require.NoError(t, flowop.SingleFlowRouter{}.Apply(context.Background(), pg, fg, elevation))

	assert.Empty(t, fg.Receivers(0))
	assert.Empty(t, fg.Receivers(1))
	assert.Empty(t, fg.Receivers(2))
}
