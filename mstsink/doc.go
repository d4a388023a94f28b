// Package mstsink implements the MST-based sink resolver (spec §4.4):
// depression-filling by reconnecting every inner basin (a receiver-tree
// component whose root is not a base level) to a true outlet, choosing
// the lowest available pass between basins and disturbing the terrain as
// little as possible.
//
// Resolve runs the algorithm's five steps — basin discovery, basin-graph
// construction, minimum spanning tree, route propagation, and rebuild —
// against an already flow-routed FlowGraphImpl.
//
// The basin graph itself lives as a small vertex/edge model over dense
// basin ids; kruskal.go and boruvka.go share a union-find structure
// (dsu.go) to compute the spanning tree, and route.go walks it outward
// from the outlets to apply BASIC or CARVE per accepted edge.
package mstsink
