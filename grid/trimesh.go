package grid

import (
	"fmt"
	"math"
	"sort"
)

// TriMesh is the 2-D unstructured triangular-mesh support (spec §4.1).
// Neighbor adjacency and per-vertex area are precomputed at construction
// from the triangle list. The per-vertex area is the barycentric dual
// area (one third of each incident triangle), not the circumcentric
// Voronoi cell area.
type TriMesh struct {
	points    [][2]float64
	status    []NodeStatus
	adjacency [][]int // vertex -> distinct adjacent vertex indices
	area      []float64
}

// NewTriMesh builds a TriMesh from vertex coordinates, a list of
// counter-clockwise-or-not triangle index triples, and a set of
// base-level vertex indices (status FixedValue; everything else Core).
//
// Returns ErrDisconnectedVertex if any vertex is referenced by no
// triangle (spec §4.1: "disconnected TriMesh (a vertex with no
// triangle) -> invalid-argument").
func NewTriMesh(points [][2]float64, triangles [][3]int, baseLevels map[int]struct{}) (*TriMesh, error) {
	const op = "grid.NewTriMesh"
	n := len(points)
	if n == 0 || len(triangles) == 0 {
		return nil, invalidArg(op, fmt.Errorf("%w: empty mesh", ErrInvalidShape))
	}

	adjSet := make([]map[int]struct{}, n)
	for i := range adjSet {
		adjSet[i] = make(map[int]struct{})
	}
	area := make([]float64, n)
	referenced := make([]bool, n)

	for ti, tri := range triangles {
		for _, v := range tri {
			if v < 0 || v >= n {
				return nil, invalidArg(op, fmt.Errorf("%w: triangle %d vertex %d", ErrOutOfRange, ti, v))
			}
		}
		a, b, c := tri[0], tri[1], tri[2]
		referenced[a], referenced[b], referenced[c] = true, true, true
		triArea := triangleArea(points[a], points[b], points[c])
		// Barycentric dual area of the vertex star: each vertex of a
		// triangle claims one third of its area. Circumcentric Voronoi
		// areas are not computed.
		area[a] += triArea / 3
		area[b] += triArea / 3
		area[c] += triArea / 3
		adjSet[a][b], adjSet[a][c] = struct{}{}, struct{}{}
		adjSet[b][a], adjSet[b][c] = struct{}{}, struct{}{}
		adjSet[c][a], adjSet[c][b] = struct{}{}, struct{}{}
	}

	for v, ok := range referenced {
		if !ok {
			return nil, invalidArg(op, fmt.Errorf("%w: vertex %d", ErrDisconnectedVertex, v))
		}
	}

	tm := &TriMesh{
		points:    points,
		status:    make([]NodeStatus, n),
		adjacency: make([][]int, n),
		area:      area,
	}
	for v, set := range adjSet {
		neighbors := make([]int, 0, len(set))
		for j := range set {
			neighbors = append(neighbors, j)
		}
		sort.Ints(neighbors)
		tm.adjacency[v] = neighbors
	}
	for v := range baseLevels {
		if v < 0 || v >= n {
			return nil, invalidArg(op, fmt.Errorf("%w: base level index %d", ErrOutOfRange, v))
		}
		tm.status[v] = FixedValue
	}

	if !tm.allReachable() {
		return nil, invalidArg(op, fmt.Errorf("%w: mesh has more than one connected component", ErrDisconnectedVertex))
	}

	return tm, nil
}

// allReachable runs a queue+visited breadth-first traversal from vertex
// 0 across the adjacency lists to answer a single boolean reachability
// question.
func (tm *TriMesh) allReachable() bool {
	n := len(tm.points)
	visited := make([]bool, n)
	queue := make([]int, 0, n)
	queue = append(queue, 0)
	visited[0] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range tm.adjacency[cur] {
			if !visited[nb] {
				visited[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	for _, ok := range visited {
		if !ok {
			return false
		}
	}

	return true
}

func triangleArea(a, b, c [2]float64) float64 {
	return math.Abs((b[0]-a[0])*(c[1]-a[1])-(c[0]-a[0])*(b[1]-a[1])) / 2
}

// Size implements Grid.
func (tm *TriMesh) Size() int { return len(tm.points) }

// Shape implements Grid.
func (tm *TriMesh) Shape() []int { return []int{len(tm.points)} }

// Status implements Grid.
func (tm *TriMesh) Status(i int) NodeStatus { return tm.status[i] }

// Area implements Grid: the precomputed barycentric dual area of vertex i.
func (tm *TriMesh) Area(i int) float64 { return tm.area[i] }

// Kmax implements Grid: the widest vertex star in the mesh.
func (tm *TriMesh) Kmax() int {
	max := 0
	for _, nb := range tm.adjacency {
		if len(nb) > max {
			max = len(nb)
		}
	}

	return max
}

// Neighbors implements Grid.
func (tm *TriMesh) Neighbors(i int) []Neighbor {
	if tm.status[i] == Ghost {
		return nil
	}
	nbs := tm.adjacency[i]
	out := make([]Neighbor, 0, len(nbs))
	for _, j := range nbs {
		if tm.status[j] == Ghost {
			continue
		}
		d := math.Hypot(tm.points[j][0]-tm.points[i][0], tm.points[j][1]-tm.points[i][1])
		out = append(out, Neighbor{To: j, Distance: d, Status: tm.status[j]})
	}

	return out
}
