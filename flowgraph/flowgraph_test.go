package flowgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// chain builds a 5-node profile grid (0 base level ... 4 headwater) and
// wires a single-flow receiver chain 4->3->2->1->0.
func chain(t *testing.T) (*grid.ProfileGrid, *flowgraph.FlowGraphImpl) {
	t.Helper()
	pg, err := grid.NewProfileGrid(5, 1, grid.FixedValue, grid.Core, nil)
	require.NoError(t, err)
	fg := flowgraph.New(pg, true)
	for i := 4; i >= 1; i-- {
		fg.SetSingleReceiver(i, i-1, 1)
	}
	fg.ComputeDonors()
	require.NoError(t, fg.ComputeOrder())

	return pg, fg
}

func TestComputeOrder_DownstreamFirst(t *testing.T) {
	_, fg := chain(t)
	order := fg.Order()
	require.Len(t, order, 5)
	pos := make(map[int]int)
	for p, node := range order {
		pos[node] = p
	}
	for i := 1; i < 5; i++ {
		assert.Greater(t, pos[i], pos[i-1], "node %d should sort after its receiver %d", i, i-1)
	}
}

func TestComputeBasins_SingleChainAllSameBasin(t *testing.T) {
	_, fg := chain(t)
	basins := fg.ComputeBasins()
	for i := 1; i < 5; i++ {
		assert.Equal(t, basins[0], basins[i])
	}
}

func TestAccumulate_Linearity(t *testing.T) {
	_, fg := chain(t)
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{5, 4, 3, 2, 1}
	a, b := 2.0, 3.0
	combined := make([]float64, 5)
	for i := range combined {
		combined[i] = a*x[i] + b*y[i]
	}

	accX, err := fg.Accumulate(nil, x)
	require.NoError(t, err)
	accY, err := fg.Accumulate(nil, y)
	require.NoError(t, err)
	accCombined, err := fg.Accumulate(nil, combined)
	require.NoError(t, err)

	for i := range accCombined {
		want := a*accX[i] + b*accY[i]
		assert.InDelta(t, want, accCombined[i], 1e-9)
	}
}

func TestAccumulateScalar_TotalAreaAtBaseLevel(t *testing.T) {
	pg, fg := chain(t)
	acc, err := fg.AccumulateScalar(nil, 1)
	require.NoError(t, err)
	total := 0.0
	for i := 0; i < pg.Size(); i++ {
		total += pg.Area(i)
	}
	assert.InDelta(t, total, acc[0], 1e-9)
}

func TestAccumulate_StaleOrderErrors(t *testing.T) {
	pg, err := grid.NewProfileGrid(3, 1, grid.FixedValue, grid.Core, nil)
	require.NoError(t, err)
	fg := flowgraph.New(pg, true)
	fg.SetSingleReceiver(1, 0, 1)
	fg.SetSingleReceiver(2, 1, 1)
	_, err = fg.Accumulate(nil, []float64{1, 1, 1})
	assert.Error(t, err)
}

func TestReset_ClearsState(t *testing.T) {
	_, fg := chain(t)
	fg.Reset()
	assert.Empty(t, fg.Order())
	for i := 0; i < fg.Size(); i++ {
		assert.Equal(t, flowgraph.NoBasin, fg.Basins()[i])
	}
}
