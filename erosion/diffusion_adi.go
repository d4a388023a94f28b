package erosion

import "github.com/fastscape-go/fastscapelib/grid"

// DiffusionADIEroder solves raster-only linear hillslope diffusion
// ∂h/∂t = K_D·∇²h with a Peaceman-Rachford alternating-direction-implicit
// scheme: one half-step implicit along x / explicit along y, then one
// half-step implicit along y / explicit along x, each line solved as a
// tridiagonal system (spec §4.5).
type DiffusionADIEroder struct {
	g     *grid.RasterGrid
	kCoef float64
}

// NewDiffusionADIEroder constructs a DiffusionADIEroder over raster g
// with uniform diffusivity kCoef.
func NewDiffusionADIEroder(g *grid.RasterGrid, kCoef float64) *DiffusionADIEroder {
	return &DiffusionADIEroder{g: g, kCoef: kCoef}
}

// Erode advances elevation by one ADI step of length dt and returns the
// signed erosion h - h_new; a negative entry is deposition, which plain
// diffusion allows (spec §4.5).
func (e *DiffusionADIEroder) Erode(elevation []float64, dt float64) []float64 {
	rows, cols := e.g.Rows(), e.g.Cols()
	sx, sy := e.g.SpacingX(), e.g.SpacingY()
	rx := e.kCoef * dt / 2 / (sx * sx)
	ry := e.kCoef * dt / 2 / (sy * sy)

	// Sweep 1: implicit in x (per row), explicit in y from elevation.
	half := make([]float64, rows*cols)
	rhs := make([]float64, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rhs[c] = elevation[e.g.Index(r, c)] + ry*e.laplacianY(elevation, r, c)
		}
		row := e.sweepRow(r, rx, rhs, elevation)
		for c := 0; c < cols; c++ {
			half[e.g.Index(r, c)] = row[c]
		}
	}

	// Sweep 2: implicit in y (per column), explicit in x from half.
	hNew := make([]float64, rows*cols)
	rhs = make([]float64, rows)
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			rhs[r] = half[e.g.Index(r, c)] + rx*e.laplacianX(half, r, c)
		}
		col := e.sweepCol(c, ry, rhs, elevation)
		for r := 0; r < rows; r++ {
			hNew[e.g.Index(r, c)] = col[r]
		}
	}

	erosion := make([]float64, rows*cols)
	for i := range erosion {
		erosion[i] = elevation[i] - hNew[i]
	}

	return erosion
}

// neighborRow looks up the row-direction neighbor at (r+dr, c). It
// returns ok=false at a non-LOOPED boundary, wraps for a LOOPED one.
func (e *DiffusionADIEroder) neighborRow(r, c, dr int) (idx int, ok bool) {
	rows := e.g.Rows()
	nr := r + dr
	if nr >= 0 && nr < rows {
		return e.g.Index(nr, c), true
	}
	if e.g.Status(e.g.Index(r, c)) != grid.Looped {
		return 0, false
	}
	if nr < 0 {
		nr = rows - 1
	} else {
		nr = 0
	}

	return e.g.Index(nr, c), true
}

// neighborCol is neighborRow's column-direction counterpart.
func (e *DiffusionADIEroder) neighborCol(r, c, dc int) (idx int, ok bool) {
	cols := e.g.Cols()
	nc := c + dc
	if nc >= 0 && nc < cols {
		return e.g.Index(r, nc), true
	}
	if e.g.Status(e.g.Index(r, c)) != grid.Looped {
		return 0, false
	}
	if nc < 0 {
		nc = cols - 1
	} else {
		nc = 0
	}

	return e.g.Index(r, nc), true
}

// laplacianY is the explicit row-direction second difference at (r,c),
// in flux-conservative form: each term is the flux in minus the flux
// out across the two half-cell faces. A missing neighbor (FIXED_GRADIENT,
// or CORE with no LOOPED partner) contributes a single one-sided flux
// rather than a doubled one — zero flux through the missing face, not a
// mirrored neighbor — which is what keeps Σh exactly conserved across a
// step under pure Neumann boundaries (spec S5).
func (e *DiffusionADIEroder) laplacianY(arr []float64, r, c int) float64 {
	center := arr[e.g.Index(r, c)]
	up, upOk := e.neighborRow(r, c, -1)
	down, downOk := e.neighborRow(r, c, 1)
	switch {
	case upOk && downOk:
		return arr[up] - 2*center + arr[down]
	case upOk:
		return arr[up] - center
	case downOk:
		return arr[down] - center
	default:
		return 0
	}
}

// laplacianX is laplacianY's column-direction counterpart.
func (e *DiffusionADIEroder) laplacianX(arr []float64, r, c int) float64 {
	center := arr[e.g.Index(r, c)]
	left, leftOk := e.neighborCol(r, c, -1)
	right, rightOk := e.neighborCol(r, c, 1)
	switch {
	case leftOk && rightOk:
		return arr[left] - 2*center + arr[right]
	case leftOk:
		return arr[left] - center
	case rightOk:
		return arr[right] - center
	default:
		return 0
	}
}

// sweepRow builds and solves the x-implicit tridiagonal system for row
// r. A FIXED_VALUE node is pinned to its Dirichlet value unconditionally;
// a LOOPED node switches the whole row to the periodic solver.
func (e *DiffusionADIEroder) sweepRow(r int, coeff float64, rhs, elevation []float64) []float64 {
	cols := e.g.Cols()
	a := make([]float64, cols)
	b := make([]float64, cols)
	c := make([]float64, cols)
	d := make([]float64, cols)
	looped := false
	for col := 0; col < cols; col++ {
		i := e.g.Index(r, col)
		if e.g.Status(i) == grid.FixedValue {
			b[col], d[col] = 1, elevation[i]
			continue
		}
		if e.g.Status(i) == grid.Looped {
			looped = true
		}
		d[col] = rhs[col]
		_, leftOk := e.neighborCol(r, col, -1)
		_, rightOk := e.neighborCol(r, col, 1)
		switch {
		case leftOk && rightOk:
			a[col], b[col], c[col] = -coeff, 1+2*coeff, -coeff
		case leftOk:
			a[col], b[col] = -coeff, 1+coeff
		case rightOk:
			b[col], c[col] = 1+coeff, -coeff
		default:
			b[col] = 1
		}
	}
	if looped {
		return triDiagSolvePeriodic(a, b, c, d)
	}

	return triDiagSolve(a, b, c, d)
}

// sweepCol is sweepRow's y-implicit counterpart for column c.
func (e *DiffusionADIEroder) sweepCol(c int, coeff float64, rhs, elevation []float64) []float64 {
	rows := e.g.Rows()
	a := make([]float64, rows)
	b := make([]float64, rows)
	cc := make([]float64, rows)
	d := make([]float64, rows)
	looped := false
	for row := 0; row < rows; row++ {
		i := e.g.Index(row, c)
		if e.g.Status(i) == grid.FixedValue {
			b[row], d[row] = 1, elevation[i]
			continue
		}
		if e.g.Status(i) == grid.Looped {
			looped = true
		}
		d[row] = rhs[row]
		_, upOk := e.neighborRow(row, c, -1)
		_, downOk := e.neighborRow(row, c, 1)
		switch {
		case upOk && downOk:
			a[row], b[row], cc[row] = -coeff, 1+2*coeff, -coeff
		case upOk:
			a[row], b[row] = -coeff, 1+coeff
		case downOk:
			b[row], cc[row] = 1+coeff, -coeff
		default:
			b[row] = 1
		}
	}
	if looped {
		return triDiagSolvePeriodic(a, b, cc, d)
	}

	return triDiagSolve(a, b, cc, d)
}
