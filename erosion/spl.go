package erosion

import (
	"math"

	"github.com/fastscape-go/fastscapelib/flowgraph"
	"github.com/fastscape-go/fastscapelib/grid"
)

// SPLEroder solves the Stream-Power Law ∂h/∂t = -K·A^m·|∇h|^n implicitly
// in elevation, one node at a time in downstream-to-upstream topological
// order: by the time a node is processed, every one of its receivers
// already has its new elevation fixed, so the equation at that node has
// exactly one unknown (spec §4.5).
type SPLEroder struct {
	fg        *flowgraph.FlowGraphImpl
	g         grid.Grid
	kCoef     KCoef
	areaExp   float64 // m
	slopeExp  float64 // n
	tolerance float64
}

// NewSPLEroder constructs an SPLEroder reading receivers and the
// topological order from fg, node count from g. The caller must have
// already run a successful fg.ComputeOrder against the routing Erode is
// meant to erode along; Erode has no error return (spec §4.5's contract
// is a bare erosion array), so a stale order is a precondition
// violation rather than a recoverable failure here.
func NewSPLEroder(fg *flowgraph.FlowGraphImpl, g grid.Grid, kCoef KCoef, areaExp, slopeExp, tolerance float64) *SPLEroder {
	return &SPLEroder{fg: fg, g: g, kCoef: kCoef, areaExp: areaExp, slopeExp: slopeExp, tolerance: tolerance}
}

const splMaxIterations = 20

// Erode returns the per-node erosion (elevation[i] - h_new(i), clamped
// to >= 0) after advancing the stream-power equation by dt. Base-level
// and receiverless (pit) nodes erode by zero. Newton iterations that
// exceed splMaxIterations without reaching tolerance are recorded in
// warnings and resolved to their best estimate rather than failing.
func (e *SPLEroder) Erode(elevation, drainageArea []float64, dt float64, warnings *Warnings) []float64 {
	n := e.g.Size()
	hNew := make([]float64, n)
	erosion := make([]float64, n)

	for _, i := range e.fg.Order() {
		recv := e.fg.Receivers(i)
		if len(recv) == 0 {
			hNew[i] = elevation[i]
			continue
		}

		dist := e.fg.ReceiverDistances(i)
		weight := e.fg.ReceiverWeights(i)
		coef := e.kCoef.At(i) * math.Pow(drainageArea[i], e.areaExp) * dt

		if e.slopeExp == 1 {
			hNew[i] = e.linearSolve(elevation[i], recv, dist, weight, coef, hNew)
		} else {
			hNew[i] = e.newtonSolve(i, elevation[i], recv, dist, weight, coef, hNew, warnings)
		}

		erosion[i] = math.Max(0, elevation[i]-hNew[i])
	}

	return erosion
}

// linearSolve is the n=1 closed form: h_new(i) is a weighted average of
// h(i) and its receivers' already-fixed h_new, so it needs no iteration
// (spec §4.5: "with n=1 (linear): closed-form").
func (e *SPLEroder) linearSolve(h0 float64, recv []int, dist, weight []float64, coef float64, hNew []float64) float64 {
	var sumF, sumFH float64
	for j, r := range recv {
		f := weight[j] * coef / dist[j]
		sumF += f
		sumFH += f * hNew[r]
	}

	return (h0 + sumFH) / (1 + sumF)
}

// newtonSolve handles n != 1 via Newton's method on
// g(x) = x - h0 + coef * Σ_j w_j * max(0, (x-h_new(j))/d_j)^n,
// stopping once |Δx| < tolerance or splMaxIterations is exceeded. The
// slope is clamped to 0 rather than left negative so a node that
// momentarily overshoots above a receiver during iteration never
// contributes a spurious deposition term.
func (e *SPLEroder) newtonSolve(i int, h0 float64, recv []int, dist, weight []float64, coef float64, hNew []float64, warnings *Warnings) float64 {
	n := e.slopeExp
	x := h0
	var delta float64
	iter := 0
	for ; iter < splMaxIterations; iter++ {
		g := x - h0
		gPrime := 1.0
		for j, r := range recv {
			slope := (x - hNew[r]) / dist[j]
			if slope < 0 {
				slope = 0
			}
			g += coef * weight[j] * math.Pow(slope, n)
			if slope > 0 {
				gPrime += coef * weight[j] * n * math.Pow(slope, n-1) / dist[j]
			}
		}
		delta = g / gPrime
		x -= delta
		if math.Abs(delta) < e.tolerance {
			iter++
			break
		}
	}
	if math.Abs(delta) >= e.tolerance && warnings != nil {
		warnings.Add(i, iter, math.Abs(delta))
	}

	return x
}
