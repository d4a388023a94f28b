package grid

import (
	"fmt"
	"math"
)

// Connectivity selects the raster neighbor stencil.
type Connectivity int

const (
	// Conn8 is the default 8-connected (queen) stencil: four axis
	// neighbors plus four diagonals.
	Conn8 Connectivity = iota

	// Conn4 restricts neighbors to the four axis-aligned cells.
	Conn4
)

// RasterOption configures a RasterGrid before construction.
type RasterOption func(*rasterConfig)

type rasterConfig struct {
	conn Connectivity
}

// WithConnectivity overrides the default Conn8 stencil.
func WithConnectivity(c Connectivity) RasterOption {
	return func(cfg *rasterConfig) { cfg.conn = c }
}

// BorderStatus names the boundary status of each of the four raster
// sides. A side set to Looped must be matched by its opposite side also
// being Looped (§4.1: "Two LOOPED borders on the same axis means
// periodic along that axis").
type BorderStatus struct {
	Top, Bottom, Left, Right NodeStatus
}

// RasterGrid is the 2-D uniform-spacing support (spec §4.1).
type RasterGrid struct {
	rows, cols   int
	spacingY     float64
	spacingX     float64
	diag         float64
	conn         Connectivity
	status       []NodeStatus
	loopPartner  []int // -1 unless Looped; row-major index of the paired node
	cellArea     float64
	offsets      [][2]int // (dy, dx) neighbor deltas for the chosen connectivity
	offsetDist   []float64
}

// conn8Deltas/conn4Deltas are the precomputed neighbor offset tables for
// each connectivity, paired with per-offset Euclidean distances.
var conn8Deltas = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
var conn4Deltas = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// NewRasterGrid builds a RasterGrid of shape [rows, cols] with uniform
// spacing [spacingY, spacingX], the given per-side border statuses, and
// an optional per-node status override map (node index -> NodeStatus,
// row-major i = r*cols+c).
func NewRasterGrid(rows, cols int, spacingY, spacingX float64, borders BorderStatus, overrides map[int]NodeStatus, opts ...RasterOption) (*RasterGrid, error) {
	const op = "grid.NewRasterGrid"
	if rows < 1 || cols < 1 {
		return nil, invalidArg(op, fmt.Errorf("%w: rows=%d cols=%d", ErrInvalidShape, rows, cols))
	}
	if spacingY <= 0 || spacingX <= 0 {
		return nil, invalidArg(op, fmt.Errorf("%w: spacingY=%g spacingX=%g", ErrInvalidShape, spacingY, spacingX))
	}

	cfg := rasterConfig{conn: Conn8}
	for _, o := range opts {
		o(&cfg)
	}

	n := rows * cols
	rg := &RasterGrid{
		rows:     rows,
		cols:     cols,
		spacingY: spacingY,
		spacingX: spacingX,
		diag:     hypot(spacingY, spacingX),
		conn:     cfg.conn,
		status:   make([]NodeStatus, n),
		cellArea: spacingY * spacingX,
	}
	if cfg.conn == Conn8 {
		rg.offsets = conn8Deltas
	} else {
		rg.offsets = conn4Deltas
	}
	rg.offsetDist = make([]float64, len(rg.offsets))
	for k, d := range rg.offsets {
		rg.offsetDist[k] = rg.distanceFor(d)
	}

	if err := rg.assignBorders(borders); err != nil {
		return nil, invalidArg(op, err)
	}
	if len(overrides) > 0 {
		for idx, st := range overrides {
			if idx < 0 || idx >= n {
				return nil, invalidArg(op, fmt.Errorf("%w: override index %d", ErrShapeMismatch, idx))
			}
			rg.status[idx] = st
		}
	}
	if err := rg.validateLoopPairing(); err != nil {
		return nil, invalidArg(op, err)
	}

	return rg, nil
}

// NewRasterGridFromLength builds a RasterGrid from a physical [lengthY,
// lengthX] domain size, deriving uniform spacing as length/(dim-1).
func NewRasterGridFromLength(rows, cols int, lengthY, lengthX float64, borders BorderStatus, overrides map[int]NodeStatus, opts ...RasterOption) (*RasterGrid, error) {
	if rows < 2 || cols < 2 {
		return nil, invalidArg("grid.NewRasterGridFromLength", fmt.Errorf("%w: rows=%d cols=%d", ErrInvalidShape, rows, cols))
	}
	return NewRasterGrid(rows, cols, lengthY/float64(rows-1), lengthX/float64(cols-1), borders, overrides, opts...)
}

func (rg *RasterGrid) distanceFor(d [2]int) float64 {
	if d[0] != 0 && d[1] != 0 {
		return rg.diag
	}
	if d[0] != 0 {
		return rg.spacingY
	}
	return rg.spacingX
}

func hypot(a, b float64) float64 {
	return math.Sqrt(a*a + b*b)
}

// assignBorders paints the four border strips with the requested status.
// Interior nodes stay Core.
func (rg *RasterGrid) assignBorders(b BorderStatus) error {
	for c := 0; c < rg.cols; c++ {
		rg.status[rg.Index(0, c)] = b.Top
		rg.status[rg.Index(rg.rows-1, c)] = b.Bottom
	}
	for r := 0; r < rg.rows; r++ {
		rg.status[rg.Index(r, 0)] = b.Left
		rg.status[rg.Index(r, rg.cols-1)] = b.Right
	}
	rg.loopPartner = make([]int, rg.Size())
	for i := range rg.loopPartner {
		rg.loopPartner[i] = -1
	}
	if b.Top == Looped || b.Bottom == Looped {
		if b.Top != Looped || b.Bottom != Looped {
			return fmt.Errorf("%w: top=%s bottom=%s", ErrInvalidLoopPairing, b.Top, b.Bottom)
		}
		for c := 0; c < rg.cols; c++ {
			top, bot := rg.Index(0, c), rg.Index(rg.rows-1, c)
			rg.loopPartner[top] = bot
			rg.loopPartner[bot] = top
		}
	}
	if b.Left == Looped || b.Right == Looped {
		if b.Left != Looped || b.Right != Looped {
			return fmt.Errorf("%w: left=%s right=%s", ErrInvalidLoopPairing, b.Left, b.Right)
		}
		for r := 0; r < rg.rows; r++ {
			left, right := rg.Index(r, 0), rg.Index(r, rg.cols-1)
			rg.loopPartner[left] = right
			rg.loopPartner[right] = left
		}
	}

	return nil
}

// validateLoopPairing re-checks pairing consistency after per-node
// overrides may have altered a border node's status.
func (rg *RasterGrid) validateLoopPairing() error {
	for i, st := range rg.status {
		if st == Looped && rg.loopPartner[i] < 0 {
			return fmt.Errorf("%w: node %d has no Looped partner", ErrInvalidLoopPairing, i)
		}
	}

	return nil
}

// Index maps (row, col) to the row-major node index.
func (rg *RasterGrid) Index(r, c int) int { return r*rg.cols + c }

// Coordinate maps a row-major index back to (row, col).
func (rg *RasterGrid) Coordinate(i int) (r, c int) { return i / rg.cols, i % rg.cols }

// Rows and Cols expose the raster dimensions.
func (rg *RasterGrid) Rows() int { return rg.rows }
func (rg *RasterGrid) Cols() int { return rg.cols }
func (rg *RasterGrid) SpacingY() float64 { return rg.spacingY }
func (rg *RasterGrid) SpacingX() float64 { return rg.spacingX }

// Size implements Grid.
func (rg *RasterGrid) Size() int { return rg.rows * rg.cols }

// Shape implements Grid.
func (rg *RasterGrid) Shape() []int { return []int{rg.rows, rg.cols} }

// Status implements Grid.
func (rg *RasterGrid) Status(i int) NodeStatus { return rg.status[i] }

// Area implements Grid: uniform cell area for a raster.
func (rg *RasterGrid) Area(i int) float64 { return rg.cellArea }

// Kmax implements Grid.
func (rg *RasterGrid) Kmax() int { return len(rg.offsets) }

// Neighbors implements Grid. Ghost nodes have no neighbors. Looped
// borders wrap to their partner row/column with identical geometric
// distance to the corresponding interior step (§4.1).
func (rg *RasterGrid) Neighbors(i int) []Neighbor {
	if rg.status[i] == Ghost {
		return nil
	}
	r, c := rg.Coordinate(i)
	out := make([]Neighbor, 0, len(rg.offsets))
	for k, d := range rg.offsets {
		nr, nc := r+d[0], c+d[1]
		if nr < 0 || nr >= rg.rows {
			// Only a node whose own status is Looped ever has an
			// out-of-range row neighbor (border rows are painted
			// uniformly); anything else means the stencil ran off a
			// non-periodic edge.
			if rg.status[i] != Looped {
				continue
			}
			nr = rg.wrapRow(nr)
		}
		if nc < 0 || nc >= rg.cols {
			if rg.status[i] != Looped {
				continue
			}
			nc = rg.wrapCol(nc)
		}
		j := rg.Index(nr, nc)
		if rg.status[j] == Ghost {
			continue
		}
		out = append(out, Neighbor{To: j, Distance: rg.offsetDist[k], Status: rg.status[j]})
	}

	return out
}

func (rg *RasterGrid) wrapRow(r int) int {
	if r < 0 {
		return rg.rows - 1
	}
	return 0
}
func (rg *RasterGrid) wrapCol(c int) int {
	if c < 0 {
		return rg.cols - 1
	}
	return 0
}
