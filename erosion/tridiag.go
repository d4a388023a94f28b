package erosion

// triDiagSolve solves the tridiagonal system with sub-diagonal a,
// diagonal b, super-diagonal c (a[0] and c[n-1] are unused) and
// right-hand side d, via the Thomas algorithm: forward elimination
// followed by back substitution, an O(n) specialization of general LU
// elimination once every row has at most two off-diagonal neighbors.
func triDiagSolve(a, b, c, d []float64) []float64 {
	n := len(d)
	if n == 0 {
		return nil
	}

	// Stage 1: forward elimination, normalizing each row against the
	// previous row's already-eliminated pivot.
	cp := make([]float64, n)
	dp := make([]float64, n)
	cp[0] = c[0] / b[0]
	dp[0] = d[0] / b[0]
	for i := 1; i < n; i++ {
		m := b[i] - a[i]*cp[i-1]
		cp[i] = c[i] / m
		dp[i] = (d[i] - a[i]*dp[i-1]) / m
	}

	// Stage 2: back substitution.
	x := make([]float64, n)
	x[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = dp[i] - cp[i]*x[i+1]
	}

	return x
}

// triDiagSolvePeriodic solves a cyclic tridiagonal system where a[0]
// additionally multiplies x[n-1] (the wraparound predecessor) and
// c[n-1] additionally multiplies x[0] (the wraparound successor) — the
// LOOPED-border case of an ADI sweep, where the line has no true first
// or last node. It uses the Sherman-Morrison correction: split the
// wraparound corner out as a rank-one update, solve the resulting plain
// tridiagonal system twice (once against d, once against the correction
// vector u), then recombine.
func triDiagSolvePeriodic(a, b, c, d []float64) []float64 {
	n := len(d)
	if n == 1 {
		return []float64{d[0] / b[0]}
	}
	if n == 2 {
		// A 2-node ring has both neighbors coincide; fold the wraparound
		// coefficient into the ordinary one and solve directly.
		b0 := b[0]
		b1 := b[1]
		c0 := c[0] + a[0]
		a1 := a[1] + c[1]
		return triDiagSolve([]float64{0, a1}, []float64{b0, b1}, []float64{c0, 0}, d)
	}

	alpha := a[0]  // row 0's wraparound coefficient, multiplies x[n-1]
	beta := c[n-1] // row n-1's wraparound coefficient, multiplies x[0]

	gamma := -b[0]
	if gamma == 0 {
		gamma = 1
	}

	bp := append([]float64(nil), b...)
	bp[0] -= gamma
	bp[n-1] -= alpha * beta / gamma

	ap := append([]float64(nil), a...)
	cp := append([]float64(nil), c...)
	ap[0], cp[n-1] = 0, 0

	x := triDiagSolve(ap, bp, cp, d)

	u := make([]float64, n)
	u[0], u[n-1] = gamma, beta
	z := triDiagSolve(ap, bp, cp, u)

	fact := (x[0] + alpha*x[n-1]/gamma) / (1 + z[0] + alpha*z[n-1]/gamma)
	for i := range x {
		x[i] -= fact * z[i]
	}

	return x
}
