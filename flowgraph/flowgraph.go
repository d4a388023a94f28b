package flowgraph

import (
	"sync"

	"github.com/fastscape-go/fastscapelib/grid"
)

// NoBasin is the sentinel basin id for a node whose basin has not yet
// been computed (spec §3: "NO_BASIN until computed").
const NoBasin = -1

// FlowGraphImpl is the compact receiver/donor/order/basin storage shared
// by the operator pipeline and the eroders (spec §4.2). It exclusively
// owns these four arrays; the grid it was built from is a shared
// read-only collaborator (spec §3 Ownership).
//
// A single sync.RWMutex guards all four arrays: the spec's concurrency
// model (§5) guarantees no two mutators overlap within a step, so one
// mutex is enough — it exists to let a reader (e.g. a snapshot consumer,
// or a monitoring goroutine draining warnings) observe a consistent array
// set concurrently with the next UpdateRoutes call.
type FlowGraphImpl struct {
	mu sync.RWMutex

	g          grid.Grid
	singleFlow bool

	// Receiver storage: multiReceivers[i] holds 0..Kmax downstream indices;
	// multiWeights[i] sums to 1 (or is empty when multiReceivers[i] is empty). This
	// is the sole backing store for both single- and multi-flow routing:
	// a single-flow node is simply a length-1 entry with weight 1, so a
	// pipeline can mix SetSingleReceiver and AddMultiReceiver calls on the
	// same graph across stages (spec §8 S2: Single -> MSTResolver ->
	// Multi all run against one shared FlowGraphImpl).
	multiReceivers [][]int
	multiDistances [][]float64
	multiWeights   [][]float64

	donors []([]int)
	order  []int
	basins []int

	orderValid bool
}

// New constructs an empty FlowGraphImpl sized from g's node count.
// singleFlow records the graph's intended routing mode for SingleFlow()
// and diagnostics; storage itself is mode-agnostic, so SetSingleReceiver
// and AddMultiReceiver may both be called on the same graph regardless of
// what was passed here (a mixed pipeline needs exactly that).
func New(g grid.Grid, singleFlow bool) *FlowGraphImpl {
	n := g.Size()
	fg := &FlowGraphImpl{g: g, singleFlow: singleFlow}
	fg.multiReceivers = make([][]int, n)
	fg.multiDistances = make([][]float64, n)
	fg.multiWeights = make([][]float64, n)
	fg.donors = make([][]int, n)
	fg.order = make([]int, 0, n)
	fg.basins = make([]int, n)
	fg.reset()

	return fg
}

// Grid returns the grid this flow graph was built from.
func (fg *FlowGraphImpl) Grid() grid.Grid { return fg.g }

// SingleFlow reports the routing mode this graph was constructed with.
// It is informational only: storage accepts either SetSingleReceiver or
// AddMultiReceiver calls regardless of this flag.
func (fg *FlowGraphImpl) SingleFlow() bool { return fg.singleFlow }

// Size returns the node count N.
func (fg *FlowGraphImpl) Size() int { return fg.g.Size() }

// Reset marks receivers, donors, order and basins stale, ready for a new
// router pass (spec §4.2).
func (fg *FlowGraphImpl) Reset() {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	fg.reset()
}

// reset is Reset's unlocked body, also used by New.
func (fg *FlowGraphImpl) reset() {
	n := fg.g.Size()
	for i := range fg.multiReceivers {
		fg.multiReceivers[i] = nil
		fg.multiDistances[i] = nil
		fg.multiWeights[i] = nil
	}
	for i := range fg.donors {
		fg.donors[i] = nil
	}
	fg.order = fg.order[:0]
	for i := 0; i < n; i++ {
		fg.basins[i] = NoBasin
	}
	fg.orderValid = false
}

// SetSingleReceiver records node i's unique receiver j at distance d,
// replacing whatever receiver list (single or multi) was there before.
func (fg *FlowGraphImpl) SetSingleReceiver(i, j int, d float64) {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	fg.multiReceivers[i] = append(fg.multiReceivers[i][:0], j)
	fg.multiDistances[i] = append(fg.multiDistances[i][:0], d)
	fg.multiWeights[i] = append(fg.multiWeights[i][:0], 1)
	fg.orderValid = false
}

// AddMultiReceiver appends receiver j (distance d, partition weight w)
// to node i's receiver list. Callers are responsible for normalizing
// weights to sum to 1 across the full receiver set of i (spec §3
// invariant), and for clearing i's list first if they mean to replace
// rather than extend a previous call's receivers.
func (fg *FlowGraphImpl) AddMultiReceiver(i, j int, d, w float64) {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	fg.multiReceivers[i] = append(fg.multiReceivers[i], j)
	fg.multiDistances[i] = append(fg.multiDistances[i], d)
	fg.multiWeights[i] = append(fg.multiWeights[i], w)
	fg.orderValid = false
}

// ClearReceivers empties node i's receiver list without touching any
// other node — used by MultiFlowRouter to discard a stale receiver set
// before recomputing it.
func (fg *FlowGraphImpl) ClearReceivers(i int) {
	fg.mu.Lock()
	defer fg.mu.Unlock()
	fg.multiReceivers[i] = nil
	fg.multiDistances[i] = nil
	fg.multiWeights[i] = nil
	fg.orderValid = false
}

// Receivers returns node i's receiver indices (length 0 or 1 for a
// single-flow node, 0..Kmax for a multi-flow node).
func (fg *FlowGraphImpl) Receivers(i int) []int {
	fg.mu.RLock()
	defer fg.mu.RUnlock()

	return fg.multiReceivers[i]
}

// ReceiverDistances returns the geometric distance to each of node i's
// receivers, aligned with Receivers(i).
func (fg *FlowGraphImpl) ReceiverDistances(i int) []float64 {
	fg.mu.RLock()
	defer fg.mu.RUnlock()

	return fg.multiDistances[i]
}

// ReceiverWeights returns the normalized partition weight to each of
// node i's receivers, aligned with Receivers(i). A single-flow node's
// lone receiver always carries weight 1.
func (fg *FlowGraphImpl) ReceiverWeights(i int) []float64 {
	fg.mu.RLock()
	defer fg.mu.RUnlock()

	return fg.multiWeights[i]
}

// RCount returns the number of receivers of node i (0 marks a pit or
// base level).
func (fg *FlowGraphImpl) RCount(i int) int {
	fg.mu.RLock()
	defer fg.mu.RUnlock()

	return len(fg.multiReceivers[i])
}

// Donors returns node i's donor indices, valid after ComputeDonors.
func (fg *FlowGraphImpl) Donors(i int) []int {
	fg.mu.RLock()
	defer fg.mu.RUnlock()
	return fg.donors[i]
}

// Order returns the last computed topological order (position 0 is
// downstream-most). Empty until ComputeOrder succeeds.
func (fg *FlowGraphImpl) Order() []int {
	fg.mu.RLock()
	defer fg.mu.RUnlock()
	out := make([]int, len(fg.order))
	copy(out, fg.order)

	return out
}

// Basins returns the last computed dense basin id per node, or NoBasin
// for any node not yet processed by ComputeBasins.
func (fg *FlowGraphImpl) Basins() []int {
	fg.mu.RLock()
	defer fg.mu.RUnlock()
	out := make([]int, len(fg.basins))
	copy(out, fg.basins)

	return out
}

// Clone deep-copies the flow graph's storage arrays, used by the
// FlowSnapshot operator (spec §4.3).
func (fg *FlowGraphImpl) Clone() *FlowGraphImpl {
	fg.mu.RLock()
	defer fg.mu.RUnlock()

	out := &FlowGraphImpl{g: fg.g, singleFlow: fg.singleFlow, orderValid: fg.orderValid}
	out.multiReceivers = deepCopyIntSlices(fg.multiReceivers)
	out.multiDistances = deepCopyFloatSlices(fg.multiDistances)
	out.multiWeights = deepCopyFloatSlices(fg.multiWeights)
	out.donors = deepCopyIntSlices(fg.donors)
	out.order = append([]int(nil), fg.order...)
	out.basins = append([]int(nil), fg.basins...)

	return out
}

func deepCopyIntSlices(in [][]int) [][]int {
	out := make([][]int, len(in))
	for i, s := range in {
		out[i] = append([]int(nil), s...)
	}

	return out
}

func deepCopyFloatSlices(in [][]float64) [][]float64 {
	out := make([][]float64, len(in))
	for i, s := range in {
		out[i] = append([]float64(nil), s...)
	}

	return out
}
