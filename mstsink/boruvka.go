package mstsink

// boruvkaMST implements spec §4.4 Step C's BORUVKA variant: each round,
// every component selects its lightest outgoing edge (by the same
// (pass, lower endpoint, higher endpoint) ordering kruskalMST uses);
// accepted edges are merged; repeat until no component has an outgoing
// edge left. Yields the same spanning forest as kruskalMST up to
// tie-breaking, per spec §4.4.
//
// Built on the same union-find helper as kruskalMST (dsu.go), but with a
// round-based selection loop instead of a single sorted pass.
func boruvkaMST(edges []passEdge, numBasins int, outer []int) []passEdge {
	uf := newUnionFind(numBasins)
	for _, b := range outer[1:] {
		uf.union(outer[0], b)
	}

	var mst []passEdge
	for {
		cheapest := make(map[int]int) // component root -> index into edges
		for idx, e := range edges {
			ra, rb := uf.find(e.basinLo), uf.find(e.basinHi)
			if ra == rb {
				continue
			}
			for _, r := range [2]int{ra, rb} {
				if cur, ok := cheapest[r]; !ok || lessPass(edges[idx], edges[cur]) {
					cheapest[r] = idx
				}
			}
		}
		if len(cheapest) == 0 {
			break
		}

		merged := false
		seen := make(map[int]bool, len(cheapest))
		for _, idx := range cheapest {
			if seen[idx] {
				continue
			}
			seen[idx] = true
			e := edges[idx]
			if uf.union(e.basinLo, e.basinHi) {
				mst = append(mst, e)
				merged = true
			}
		}
		if !merged {
			break
		}
	}

	return mst
}
