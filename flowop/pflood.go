package flowop

import (
	"container/heap"
	"context"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// PFloodSinkResolver raises elevations along a minimum spanning forest of
// boundary-first flooding so that every node has a monotone non-increasing
// path to some base-level node (spec §4.4, priority-flood alternative to
// MSTSinkResolver). It never touches impl; the corrected elevation is the
// only output. It accepts and produces Undefined flow direction, so it
// must run upstream of a router.
//
// Uses a heap-based frontier expansion in the style of Dijkstra's
// algorithm: instead of relaxing distances, each pop offers the popped
// node's unvisited neighbors into the heap, raising each one to at least
// the popped node's elevation as it is pushed; that pushed elevation is
// final.
type PFloodSinkResolver struct{}

var _ Operator = PFloodSinkResolver{}

func (PFloodSinkResolver) Name() string           { return "PFloodSinkResolver" }
func (PFloodSinkResolver) GraphUpdated() bool     { return false }
func (PFloodSinkResolver) ElevationUpdated() bool { return true }
func (PFloodSinkResolver) InFlowDir() FlowDir     { return Undefined }
func (PFloodSinkResolver) OutFlowDir() FlowDir    { return Undefined }

// pfloodItem is a single frontier entry: node id and its committed
// (already-flooded) elevation.
type pfloodItem struct {
	node int
	elev float64
}

// pfloodPQ is a min-heap of pfloodItem ordered by elev ascending. Every
// node is pushed exactly once, at the moment it is first discovered, so
// no lazy decrease-key or staleness check is needed.
type pfloodPQ []pfloodItem

func (pq pfloodPQ) Len() int            { return len(pq) }
func (pq pfloodPQ) Less(i, j int) bool  { return pq[i].elev < pq[j].elev }
func (pq pfloodPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *pfloodPQ) Push(x interface{}) { *pq = append(*pq, x.(pfloodItem)) }
func (pq *pfloodPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

// Apply implements Operator.
func (PFloodSinkResolver) Apply(ctx context.Context, g grid.Grid, impl *flowgraph.FlowGraphImpl, elevation []float64) error {
	const op = "flowop.PFloodSinkResolver.Apply"
	n := g.Size()
	visited := make([]bool, n)

	pq := make(pfloodPQ, 0, n)
	for i := 0; i < n; i++ {
		if g.Status(i) == grid.Ghost {
			continue
		}
		if g.Status(i).IsBaseLevel() {
			visited[i] = true
			pq = append(pq, pfloodItem{node: i, elev: elevation[i]})
		}
	}
	if len(pq) == 0 {
		return invalidArg(op, ErrNoBaseLevel)
	}
	heap.Init(&pq)

	for pq.Len() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		cur := heap.Pop(&pq).(pfloodItem)
		for _, nb := range g.Neighbors(cur.node) {
			if visited[nb.To] {
				continue
			}
			visited[nb.To] = true
			if elevation[nb.To] < cur.elev {
				elevation[nb.To] = cur.elev
			}
			heap.Push(&pq, pfloodItem{node: nb.To, elev: elevation[nb.To]})
		}
	}

	return nil
}
