package erosion

import "sync"

// Warning records one node whose SPL Newton iteration did not converge
// within its budget.
type Warning struct {
	NodeIndex  int
	Iterations int
	Residual   float64
}

// Warnings is an append-only, mutex-guarded sink for NumericalNonconvergence
// diagnostics (spec §7: "logged but execution continues") — the same
// guarded-storage shape as flowgraph.FlowGraphImpl, sized for a single
// simulation step and read back by the caller between steps.
type Warnings struct {
	mu    sync.Mutex
	items []Warning
}

// Add records a non-convergent Newton solve at node i: the iteration
// count it ran for and the residual (|Δh| of its last step) it stopped
// at, keeping the best estimate rather than failing the step.
func (w *Warnings) Add(nodeIndex, iterations int, residual float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append(w.items, Warning{NodeIndex: nodeIndex, Iterations: iterations, Residual: residual})
}

// Len reports how many non-convergent nodes were recorded.
func (w *Warnings) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.items)
}

// Items returns a copy of every recorded warning, in recording order.
func (w *Warnings) Items() []Warning {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Warning, len(w.items))
	copy(out, w.items)

	return out
}
