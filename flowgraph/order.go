package flowgraph

// ComputeOrder produces a topological order over the receiver graph:
// position 0 is a base level or pit (a root of the receiver forest),
// position N-1 is a headwater. For every edge u -> receiver(u), u's
// position is strictly greater than its receiver's (spec §4.2).
//
// Computed via Kahn's algorithm over receiver in-degree rather than a
// plain DFS: a multi-flow node can have more than one receiver, so
// "visited after its receivers" means visited only once every one of its
// receivers has already been placed, which a plain DFS from base levels
// does not guarantee on its own. Tracking each node's remaining
// live-receiver count and releasing it to the queue at zero gives the
// same O(N·F) bound the spec asks for while staying correct for fan-out
// > 1.
func (fg *FlowGraphImpl) ComputeOrder() error {
	fg.mu.Lock()
	defer fg.mu.Unlock()

	fg.computeDonorsLocked()

	n := len(fg.donors)
	remaining := make([]int, n)
	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		remaining[i] = fg.rcountLocked(i)
		if remaining[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := fg.order[:0]
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)
		for _, d := range fg.donors[u] {
			remaining[d]--
			if remaining[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(order) != n {
		return invariantViolated("flowgraph.ComputeOrder", ErrCycleDetected)
	}

	fg.order = order
	fg.orderValid = true

	return nil
}

func (fg *FlowGraphImpl) rcountLocked(i int) int {
	return len(fg.multiReceivers[i])
}
