// Package flowgraph holds FlowGraphImpl, the compact receiver/donor/order/
// basin storage that operators in package flowop mutate and eroders in
// package erosion consume (spec §4.2). It owns exactly these four arrays;
// snapshots are kept by flowop.Pipeline, not here. It never touches
// elevation directly.
//
// The hot loop — reverse topological traversal — is used both by
// Accumulate and by the SPL eroder, so it is built once here as Order()
// and iterated by callers rather than duplicated.
//
// ComputeOrder computes a topological order via Kahn's algorithm over receiver
// in-degree, generalized so a node may have more than one receiver under
// multi-flow routing — see order.go.
package flowgraph
