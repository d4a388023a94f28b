package mstsink

import (
	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// passEdge is a candidate connection between two basins across a pair of
// grid-adjacent nodes (u, v) with different basin ids. nodeLo/nodeHi are
// the pass pair with the lower and higher node index identified — the
// tie-break key spec §4.4 Step C requires — and basinLo/basinHi record
// which basin each endpoint belonged to at construction time, so route
// propagation (Step D) can recover which side is the child.
type passEdge struct {
	basinLo, basinHi int
	nodeLo, nodeHi   int
	elev             float64
}

// lessPass orders two candidates by (pass elevation, lower endpoint,
// higher endpoint) ascending — the stable ordering spec §4.4 Step C
// requires so KRUSKAL and BORUVKA agree up to tie-breaking.
func lessPass(a, b passEdge) bool {
	if a.elev != b.elev {
		return a.elev < b.elev
	}
	if a.nodeLo != b.nodeLo {
		return a.nodeLo < b.nodeLo
	}

	return a.nodeHi < b.nodeHi
}

// buildBasinGraph implements spec §4.4 Step B: one vertex per basin
// (basins are already dense 0..k-1 from FlowGraphImpl.Basins()), one
// edge per basin pair kept at its minimum-pass-elevation candidate.
func buildBasinGraph(g grid.Grid, elevation []float64, basins []int) []passEdge {
	type key struct{ a, b int }
	best := make(map[key]passEdge)

	n := g.Size()
	for i := 0; i < n; i++ {
		bi := basins[i]
		if bi == flowgraph.NoBasin {
			continue
		}
		for _, nb := range g.Neighbors(i) {
			j := nb.To
			bj := basins[j]
			if bj == flowgraph.NoBasin || bi == bj {
				continue
			}
			lo, hi := i, j
			if lo > hi {
				lo, hi = hi, lo
			}
			cand := passEdge{
				basinLo: basins[lo],
				basinHi: basins[hi],
				nodeLo:  lo,
				nodeHi:  hi,
				elev:    max(elevation[i], elevation[j]),
			}
			k := key{cand.basinLo, cand.basinHi}
			if k.a > k.b {
				k.a, k.b = k.b, k.a
			}
			if cur, ok := best[k]; !ok || lessPass(cand, cur) {
				best[k] = cand
			}
		}
	}

	edges := make([]passEdge, 0, len(best))
	for _, e := range best {
		edges = append(edges, e)
	}

	return edges
}
