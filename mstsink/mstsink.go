package mstsink

import (
	"context"
	"fmt"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// BasinMethod selects the minimum-spanning-tree algorithm used to
// connect basins in spec §4.4 Step C.
type BasinMethod int

const (
	// Kruskal sorts all basin edges by pass elevation and unions basins
	// across a global ascending scan.
	Kruskal BasinMethod = iota
	// Boruvka merges components round by round, each picking its
	// lightest outgoing edge.
	Boruvka
)

// RouteMethod selects how an accepted MST edge is turned into a
// receiver-graph change in spec §4.4 Step D.
type RouteMethod int

const (
	// Basic adds a direct pit-to-pit receiver edge without touching
	// elevation.
	Basic RouteMethod = iota
	// Carve reverses the receiver path from the pass node up to the
	// child basin's pit, lowering elevation where needed.
	Carve
)

// Resolve runs the full MST sink-resolution algorithm (spec §4.4 Steps
// A-E) against an already flow-routed FlowGraphImpl: it discovers
// basins, builds the basin graph, computes a spanning tree connecting
// every inner basin to an outlet, propagates routes across the accepted
// edges, and rebuilds donors, order and basins to reflect the result.
//
// Resolve assumes impl is in single-flow mode: basin discovery and route
// propagation both walk a single receiver chain per node, matching
// spec §4.4's tree-of-receivers model.
func Resolve(ctx context.Context, g grid.Grid, impl *flowgraph.FlowGraphImpl, elevation []float64, basinMethod BasinMethod, routeMethod RouteMethod) error {
	const op = "mstsink.Resolve"
	if len(elevation) != g.Size() {
		return invalidArg(op, flowgraph.ErrLengthMismatch)
	}

	if err := impl.ComputeOrder(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	basins := impl.ComputeBasins()

	n := g.Size()
	pit := make(map[int]int)
	var outer []int
	numBasins := 0
	for i := 0; i < n; i++ {
		if impl.RCount(i) != 0 {
			continue
		}
		numBasins++
		pit[basins[i]] = i
		if g.Status(i).IsBaseLevel() {
			outer = append(outer, basins[i])
		}
	}
	if len(outer) == 0 {
		return invariantViolated(op, ErrNoOutlet)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	edges := buildBasinGraph(g, elevation, basins)

	var mst []passEdge
	if basinMethod == Boruvka {
		mst = boruvkaMST(edges, numBasins, outer)
	} else {
		mst = kruskalMST(edges, numBasins, outer)
	}

	adj := buildBasinAdjacency(mst)
	steps := walkOutward(adj, outer)

	for _, s := range steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		childPit, parentPit := pit[s.basin], pit[s.parent]
		if routeMethod == Carve {
			if err := applyCarve(g, impl, elevation, s.u, s.v, childPit); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		} else {
			applyBasic(impl, childPit, parentPit)
		}
	}

	impl.ComputeDonors()
	if err := impl.ComputeOrder(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	impl.ComputeBasins()

	return nil
}
