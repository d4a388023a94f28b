package erosion

// KCoef supplies the SPL erodibility coefficient K at node i, either
// uniformly or per-node (spec §4.5: "k_coef may be scalar or per-node").
type KCoef interface {
	At(i int) float64
}

// ScalarK is a uniform erodibility coefficient shared by every node.
type ScalarK float64

// At implements KCoef.
func (k ScalarK) At(int) float64 { return float64(k) }

// FieldK is a per-node erodibility coefficient, indexed by node id.
type FieldK []float64

// At implements KCoef.
func (k FieldK) At(i int) float64 { return k[i] }
