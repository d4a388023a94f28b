package mstsink

import "sort"

// kruskalMST implements spec §4.4 Step C's KRUSKAL variant: sort basin
// edges by pass elevation ascending (tie-broken by endpoint indices),
// union-find over basins, accept edges that join different components.
//
// outer is pre-fused into a single component before any edge is
// considered — this stands in for the super-source connected to every
// outer basin at weight -infinity, so an edge between two outer basins
// is correctly rejected as redundant, exactly as the virtual super-edges
// would win first in a literal weighted MST.
func kruskalMST(edges []passEdge, numBasins int, outer []int) []passEdge {
	sorted := append([]passEdge(nil), edges...)
	sort.Slice(sorted, func(i, j int) bool { return lessPass(sorted[i], sorted[j]) })

	uf := newUnionFind(numBasins)
	for _, b := range outer[1:] {
		uf.union(outer[0], b)
	}

	var mst []passEdge
	for _, e := range sorted {
		if uf.union(e.basinLo, e.basinHi) {
			mst = append(mst, e)
		}
	}

	return mst
}
