// Package fastscapelib is a landscape-evolution engine core: a grid
// abstraction, a flow-routing graph, a pipeline of flow operators, a
// minimum-spanning-tree sink resolver, and two eroders (stream-power-law
// incision and ADI hillslope diffusion).
//
// Under the hood, everything is organized under five subpackages:
//
//	grid/      — Grid interface, NodeStatus, RasterGrid, ProfileGrid, TriMesh
//	flowgraph/ — FlowGraphImpl: receiver storage, donors, topological order, basins, accumulation
//	flowop/    — FlowOperator + Pipeline, single/multi-flow routers, sink resolvers, snapshots
//	mstsink/   — basin-graph construction and Kruskal/Boruvka sink-route resolution
//	erosion/   — SPLEroder (stream-power law) and DiffusionADIEroder (ADI diffusion)
//
// A typical run builds a grid, wires a flowop.Pipeline of routers and a
// sink resolver, runs it once per timestep to get a FlowGraphImpl and
// drainage areas, then hands both to an eroder to get an elevation update.
package fastscapelib
