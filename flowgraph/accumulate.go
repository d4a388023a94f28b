package flowgraph

import "github.com/fastscape-go/fastscapelib/grid"

// Accumulate performs the drainage accumulation primitive (spec §4.2):
// for each node i in reverse topological order (upstream to downstream),
// it adds src[i]*area(i) into dst[i], then propagates dst[i] to each
// receiver j weighted by the receiver's partition weight. The result at
// a base-level node is the integral of src*area over its drained region.
//
// dst may be nil, in which case a new slice is allocated. Accumulate
// requires a valid order (ComputeOrder must have succeeded since the
// last Reset).
func (fg *FlowGraphImpl) Accumulate(dst, src []float64) ([]float64, error) {
	fg.mu.RLock()
	defer fg.mu.RUnlock()

	n := len(fg.basins)
	if len(src) != n {
		return nil, invalidArg("flowgraph.Accumulate", ErrLengthMismatch)
	}
	if !fg.orderValid || len(fg.order) != n {
		return nil, invariantViolated("flowgraph.Accumulate", ErrOrderStale)
	}
	if dst == nil {
		dst = make([]float64, n)
	} else {
		for i := range dst {
			dst[i] = 0
		}
	}

	for i := range src {
		if fg.g.Status(i) == grid.Ghost {
			continue // never traversed (spec §3): no area contribution
		}
		dst[i] += src[i] * fg.g.Area(i)
	}

	// Reverse topological order: order[0] is downstream-most, so
	// iterating from the end visits upstream (headwater) nodes first,
	// letting each node's contribution flow one hop downstream before
	// its receiver is itself propagated further.
	for k := len(fg.order) - 1; k >= 0; k-- {
		i := fg.order[k]
		for idx, j := range fg.multiReceivers[i] {
			dst[j] += fg.multiWeights[i][idx] * dst[i]
		}
	}

	return dst, nil
}

// AccumulateScalar is Accumulate with a uniform src value at every node
// (e.g. Accumulate(ones) to compute drainage area).
func (fg *FlowGraphImpl) AccumulateScalar(dst []float64, src float64) ([]float64, error) {
	fg.mu.RLock()
	n := len(fg.basins)
	fg.mu.RUnlock()
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = src
	}

	return fg.Accumulate(dst, ones)
}
