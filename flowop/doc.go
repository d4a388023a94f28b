// Package flowop implements the flow operator pipeline (spec §4.3): an
// ordered sequence of Operators, each tagged with four capability flags
// (GraphUpdated, ElevationUpdated, InFlowDir, OutFlowDir), composed into
// a Pipeline that validates adjacent-operator flow-direction
// compatibility at construction and executes them in insertion order on
// every UpdateRoutes call.
//
// Concrete operators: SingleFlowRouter, MultiFlowRouter, the
// priority-flood PFloodSinkResolver, MSTSinkResolver (delegating basin
// discovery, MST computation and route propagation to package mstsink),
// and FlowSnapshot.
//
// PFloodSinkResolver (see pflood.go) is a heap-based frontier expansion
// in the style of Dijkstra's algorithm, popping the lowest-elevation
// frontier node instead of relaxing distances.
package flowop
