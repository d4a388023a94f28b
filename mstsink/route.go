package mstsink

import (
	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// CarveEpsilon is the strict-descent margin CARVE subtracts when a
// carved node would otherwise sit above its new upstream neighbor (the
// node that now drains into it); a node level with that neighbor is left
// as it is (Open Question 2 in DESIGN.md: the spec leaves the exact
// epsilon implementation-defined).
const CarveEpsilon = 1e-6

// basinAdjacency is the undirected graph over basin ids induced by the
// accepted MST edges, used to walk outward from the outlets and assign
// each inner basin a parent.
type basinAdjacency map[int][]passEdge

func buildBasinAdjacency(mst []passEdge) basinAdjacency {
	adj := make(basinAdjacency)
	for _, e := range mst {
		adj[e.basinLo] = append(adj[e.basinLo], e)
		adj[e.basinHi] = append(adj[e.basinHi], e)
	}

	return adj
}

// orientEdge returns (child, parent, u, v) for edge e given that from is
// one of its endpoints already known to be on the outlet side: u is the
// node in the basin farther from the outlet, v the node in the basin
// closer to it, matching spec §4.4 Step D's "pass pair (u, v) with
// u ∈ B, v ∈ B'" convention.
func orientEdge(e passEdge, from int) (child, parent, u, v int) {
	if e.basinLo == from {
		return e.basinHi, e.basinLo, e.nodeHi, e.nodeLo
	}

	return e.basinLo, e.basinHi, e.nodeLo, e.nodeHi
}

// routeStep is one basin's connection to its parent, oriented so u is
// the pass-pair node on the child side and v the one on the parent side.
type routeStep struct {
	basin, parent int
	u, v          int
}

// walkOutward does a breadth-first walk of the basin adjacency graph
// starting from every outer basin simultaneously, returning the basins
// in visitation order paired with the edge that connects each to its
// parent (outer basins themselves are excluded), using a multi-source
// frontier since every outer basin is a root.
func walkOutward(adj basinAdjacency, outer []int) []routeStep {
	visited := make(map[int]bool, len(adj))
	queue := make([]int, 0, len(outer))
	for _, b := range outer {
		visited[b] = true
		queue = append(queue, b)
	}

	var order []routeStep
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range adj[cur] {
			nb, _, u, v := orientEdge(e, cur)
			if nb == cur || visited[nb] {
				continue
			}
			visited[nb] = true
			order = append(order, routeStep{basin: nb, parent: cur, u: u, v: v})
			queue = append(queue, nb)
		}
	}

	return order
}

// applyBasic implements spec §4.4 Step D's BASIC variant: a direct
// receiver edge from the child basin's pit to the parent basin's pit.
// Distance is nominal (1.0): this edge has no physical grid adjacency,
// so it carries no meaningful slope.
func applyBasic(impl *flowgraph.FlowGraphImpl, childPit, parentPit int) {
	impl.SetSingleReceiver(childPit, parentPit, 1.0)
}

// applyCarve implements spec §4.4 Step D's CARVE variant: reverse the
// receiver path from u up to the child basin's pit, redirecting u to v.
// Elevations along the reversed path are lowered as needed to preserve
// monotone descent toward v (spec's invariant
// h(x_k) >= h(x_{k-1}) >= ... >= h(x_0) >= h(v)).
func applyCarve(g grid.Grid, impl *flowgraph.FlowGraphImpl, elevation []float64, u, v, pit int) error {
	const op = "mstsink.applyCarve"

	path := []int{u}
	cur := u
	for cur != pit {
		recv := impl.Receivers(cur)
		if len(recv) == 0 {
			return invariantViolated(op, ErrBrokenChain)
		}
		cur = recv[0]
		path = append(path, cur)
	}

	// pit keeps its own elevation: it is the new upstream end of the
	// reversed segment. Every other node on the path is a new receiver
	// for the node before it (closer to pit), so walking outward from
	// pit and clamping each one against the last (already-fixed) value
	// enforces h(pit) >= ... >= h(u) directly from the donor side.
	target := elevation[pit]
	for i := len(path) - 2; i >= 0; i-- {
		x := path[i]
		// u is the last node before v: the new u -> v hop must not
		// climb, so u is floored at v's elevation whenever that floor
		// still fits under the ceiling carried in from x_1 — raising it
		// any higher would itself violate monotonicity one step further
		// up the path. If v sits at or above that ceiling, the pit is
		// too low to reach v and the final hop is left ascending (the
		// same limitation BASIC has when u is the pit itself).
		if i == 0 && elevation[v] < target && elevation[x] < elevation[v] {
			elevation[x] = elevation[v]
		} else if elevation[x] > target {
			elevation[x] = target - CarveEpsilon
		}
		target = elevation[x]
	}

	downstream := v
	for _, x := range path {
		d := neighborDistance(g, x, downstream)
		impl.SetSingleReceiver(x, downstream, d)
		downstream = x
	}

	return nil
}

// neighborDistance recovers the grid distance between two nodes known to
// be adjacent (either the original pass pair, or two consecutive links
// on an old receiver chain — both always grid edges). Falls back to a
// nominal 1.0 if the grid does not report the pair as adjacent, which
// should not happen for well-formed input.
func neighborDistance(g grid.Grid, from, to int) float64 {
	for _, nb := range g.Neighbors(from) {
		if nb.To == to {
			return nb.Distance
		}
	}

	return 1.0
}
