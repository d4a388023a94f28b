package flowgraph

// ComputeDonors rebuilds donor lists from the current receivers: O(N·F)
// (spec §4.2). It must be re-run any time receivers change.
func (fg *FlowGraphImpl) ComputeDonors() {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	fg.computeDonorsLocked()
}

func (fg *FlowGraphImpl) computeDonorsLocked() {
	n := len(fg.donors)
	for i := 0; i < n; i++ {
		fg.donors[i] = fg.donors[i][:0]
	}
	for i := 0; i < n; i++ {
		for _, j := range fg.multiReceivers[i] {
			fg.donors[j] = append(fg.donors[j], i)
		}
	}
}
