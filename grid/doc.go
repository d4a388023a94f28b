// Package grid is the topology and geometry layer shared by every other
// fastscapelib package. It exposes a small capability set — node count,
// shape, per-node boundary status, per-node area, and lazy neighbor
// iteration — over three concrete supports: a 1-D profile (ProfileGrid), a
// 2-D raster with optional periodic/reflective borders (RasterGrid), and a
// 2-D unstructured triangular mesh (TriMesh).
//
// Node status is immutable once a grid is constructed. LOOPED borders come
// in matched pairs along one axis; pairing a LOOPED border against a
// non-LOOPED one is a construction-time error, not a runtime one.
package grid
