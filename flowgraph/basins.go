package flowgraph

// ComputeBasins assigns each node the dense id of the basin (connected
// component of the receiver graph) it belongs to: follow receivers to
// the root (any node with rcount 0 — a true base level or an unresolved
// pit) and assign every node under that root the same id (spec §4.2).
//
// Basin ids are dense 0..k-1, assigned in the order their root is first
// discovered while scanning Order() in the forward (downstream-first)
// direction — deterministic given a fixed topological order (Open
// Question 3 in DESIGN.md).
func (fg *FlowGraphImpl) ComputeBasins() []int {
	fg.mu.Lock()
	defer fg.mu.Unlock()

	n := len(fg.basins)
	for i := range fg.basins {
		fg.basins[i] = NoBasin
	}

	if !fg.orderValid || len(fg.order) != n {
		// Order stale or never computed: fall back to a direct
		// receiver-chase per node so Basins() is still well-defined.
		fg.chaseBasinsLocked()
	} else {
		rootID := make(map[int]int)
		nextID := 0
		assign := func(root int) int {
			id, ok := rootID[root]
			if !ok {
				id = nextID
				rootID[root] = id
				nextID++
			}
			return id
		}

		// A node's root is always visited earlier than the node itself
		// in Order() (roots have rcount 0, so they occupy the earliest
		// positions any of their tree's members can reach), so a single
		// forward scan can assign a node's basin the moment its own
		// immediate receiver's basin is already known.
		for _, i := range fg.order {
			if fg.rcountLocked(i) == 0 {
				fg.basins[i] = assign(i)
				continue
			}
			fg.basins[i] = fg.basins[fg.multiReceivers[i][0]]
		}
	}

	out := make([]int, n)
	copy(out, fg.basins)

	return out
}

// chaseBasinsLocked computes basins without relying on Order(), for
// callers that never ran ComputeOrder. It is O(N) amortized via path
// compression.
func (fg *FlowGraphImpl) chaseBasinsLocked() {
	n := len(fg.basins)
	for i := range fg.basins {
		fg.basins[i] = NoBasin
	}
	rootID := make(map[int]int)
	nextID := 0

	var rootOf func(i int, path []int) int
	rootOf = func(i int, path []int) int {
		if fg.basins[i] != NoBasin {
			for _, p := range path {
				fg.basins[p] = fg.basins[i]
			}
			return fg.basins[i]
		}
		if fg.rcountLocked(i) == 0 {
			id, ok := rootID[i]
			if !ok {
				id = nextID
				rootID[i] = id
				nextID++
			}
			fg.basins[i] = id
			for _, p := range path {
				fg.basins[p] = id
			}
			return id
		}
		return rootOf(fg.multiReceivers[i][0], append(path, i))
	}

	for i := 0; i < n; i++ {
		if fg.basins[i] == NoBasin {
			rootOf(i, nil)
		}
	}
}
