package mstsink_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
	"github.com/fastscape-go/fastscapelib/mstsink"
)

// pitGrid builds a 3x3 raster with FixedValue borders and a single
// interior pit at the center (index 4). None of the 9 nodes has a
// receiver going in, so every node starts out as its own basin, and
// the center pit is the only one that isn't a base level.
func pitGrid(t *testing.T) (*grid.RasterGrid, *flowgraph.FlowGraphImpl, []float64) {
	t.Helper()
	borders := grid.BorderStatus{Top: grid.FixedValue, Bottom: grid.FixedValue, Left: grid.FixedValue, Right: grid.FixedValue}
	rg, err := grid.NewRasterGrid(3, 3, 1, 1, borders, nil)
	require.NoError(t, err)

	fg := flowgraph.New(rg, true)
	fg.ComputeDonors()
	require.NoError(t, fg.ComputeOrder())

	elevation := []float64{5, 5, 5, 5, 1, 5, 5, 5, 5}

	return rg, fg, elevation
}

func TestResolve_Basic_ConnectsPitToLowestTieBreakNeighbor(t *testing.T) {
	rg, fg, elevation := pitGrid(t)

	err := mstsink.Resolve(context.Background(), rg, fg, elevation, mstsink.Kruskal, mstsink.Basic)
	require.NoError(t, err)

	// All 8 border candidates tie on pass elevation (5); the
	// (elev, nodeLo, nodeHi) tie-break picks node 0 first.
	assert.Equal(t, []int{0}, fg.Receivers(4))
	assert.Equal(t, 1.0, elevation[4], "BASIC never touches elevation")
}

func TestResolve_Basic_KruskalAndBoruvkaAgree(t *testing.T) {
	_, fgK, elevK := pitGrid(t)
	_, fgB, elevB := pitGrid(t)
	rgK, _, _ := pitGrid(t)

	require.NoError(t, mstsink.Resolve(context.Background(), rgK, fgK, elevK, mstsink.Kruskal, mstsink.Basic))
	require.NoError(t, mstsink.Resolve(context.Background(), rgK, fgB, elevB, mstsink.Boruvka, mstsink.Basic))

	assert.Equal(t, fgK.Receivers(4), fgB.Receivers(4))
}

func TestResolve_ErrNoOutlet(t *testing.T) {
	rg, err := grid.NewRasterGrid(3, 3, 1, 1, grid.BorderStatus{}, nil)
	require.NoError(t, err)
	fg := flowgraph.New(rg, true)
	fg.ComputeDonors()
	require.NoError(t, fg.ComputeOrder())

	elevation := []float64{5, 5, 5, 5, 1, 5, 5, 5, 5}
	err = mstsink.Resolve(context.Background(), rg, fg, elevation, mstsink.Kruskal, mstsink.Basic)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mstsink.ErrNoOutlet))
}

func TestResolve_ErrLengthMismatch(t *testing.T) {
	rg, fg, _ := pitGrid(t)
	err := mstsink.Resolve(context.Background(), rg, fg, []float64{1, 2, 3}, mstsink.Kruskal, mstsink.Basic)
	require.Error(t, err)
	assert.True(t, errors.Is(err, flowgraph.ErrLengthMismatch))
}

// carveChain builds a 5-node profile: node 0 is the true base level,
// node 1 already drains to it and belongs to the outer basin, and
// nodes 2-4 form an inner basin whose pit (node 4) sits above node 1's
// elevation — the realistic case where a depression is still higher
// than the already-connected network it must drain into. The pass
// crosses at the (1, 2) boundary, so carving must walk and lower the
// two-node barrier {2, 3} between the pass and the pit.
func carveChain(t *testing.T) (*grid.ProfileGrid, *flowgraph.FlowGraphImpl, []float64) {
	t.Helper()
	pg, err := grid.NewProfileGrid(5, 1, grid.FixedValue, grid.Core, nil)
	require.NoError(t, err)

	fg := flowgraph.New(pg, true)
	fg.SetSingleReceiver(1, 0, 1) // node 1: outer basin, already draining to base level
	fg.SetSingleReceiver(2, 3, 1) // old descent into the pit: 2 -> 3 -> 4
	fg.SetSingleReceiver(3, 4, 1)
	fg.ComputeDonors()
	require.NoError(t, fg.ComputeOrder())

	elevation := []float64{0.4, 0.5, 4, 3, 1}

	return pg, fg, elevation
}

func TestResolve_Carve_LowersBarrierPreservingMonotoneDescent(t *testing.T) {
	pg, fg, elevation := carveChain(t)

	err := mstsink.Resolve(context.Background(), pg, fg, elevation, mstsink.Kruskal, mstsink.Carve)
	require.NoError(t, err)

	// The pit (node 4) keeps its own elevation; the barrier nodes 3
	// and 2 are lowered so the reversed path descends monotonically
	// from the pit out to the pass node (node 1).
	assert.Equal(t, 1.0, elevation[4])
	assert.Less(t, elevation[3], elevation[4])
	assert.Less(t, elevation[2], elevation[3])
	assert.GreaterOrEqual(t, elevation[2], elevation[1])

	// New receivers run pit -> barrier -> pass node -> base level.
	assert.Equal(t, []int{3}, fg.Receivers(4))
	assert.Equal(t, []int{2}, fg.Receivers(3))
	assert.Equal(t, []int{1}, fg.Receivers(2))
}

// carveOutletAboveFloor builds a 4-node profile where the pass node v
// (node 1) sits above the elevation the pit-side chain would otherwise
// leave for u (node 2): the pit (node 3) drains directly through u, and
// u's own original elevation (0.8) is below v's (0.9), so without
// flooring u at v the reversed u -> v hop would climb.
func carveOutletAboveFloor(t *testing.T) (*grid.ProfileGrid, *flowgraph.FlowGraphImpl, []float64) {
	t.Helper()
	pg, err := grid.NewProfileGrid(4, 1, grid.FixedValue, grid.Core, nil)
	require.NoError(t, err)

	fg := flowgraph.New(pg, true)
	fg.SetSingleReceiver(1, 0, 1) // node 1: outer basin, already draining to base level
	fg.SetSingleReceiver(2, 3, 1) // old descent into the pit: 2 -> 3
	fg.ComputeDonors()
	require.NoError(t, fg.ComputeOrder())

	elevation := []float64{0, 0.9, 0.8, 1.0}

	return pg, fg, elevation
}

func TestResolve_Carve_FloorsExitNodeAtOutletElevation(t *testing.T) {
	pg, fg, elevation := carveOutletAboveFloor(t)

	err := mstsink.Resolve(context.Background(), pg, fg, elevation, mstsink.Kruskal, mstsink.Carve)
	require.NoError(t, err)

	// The pit keeps its own elevation; node 2 is raised to the outlet's
	// elevation rather than left at its original 0.8, so the final hop
	// into the outlet does not climb.
	assert.Equal(t, 1.0, elevation[3])
	assert.Equal(t, 0.9, elevation[2])
	assert.GreaterOrEqual(t, elevation[2], elevation[1])
	assert.Less(t, elevation[2], elevation[3])

	assert.Equal(t, []int{2}, fg.Receivers(3))
	assert.Equal(t, []int{1}, fg.Receivers(2))
}

func TestResolve_Carve_NoOpWhenAlreadyMonotone(t *testing.T) {
	pg, fg, elevation := carveChain(t)
	elevation[3] = 0.9 // already below the pit; no lowering required
	elevation[2] = 0.8

	err := mstsink.Resolve(context.Background(), pg, fg, elevation, mstsink.Kruskal, mstsink.Carve)
	require.NoError(t, err)

	assert.Equal(t, 0.9, elevation[3])
	assert.Equal(t, 0.8, elevation[2])
}

func TestResolve_RespectsContextCancellation(t *testing.T) {
	rg, fg, elevation := pitGrid(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := mstsink.Resolve(ctx, rg, fg, elevation, mstsink.Kruskal, mstsink.Basic)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
