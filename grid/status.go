package grid

// NodeStatus tags the boundary role of a single node. It is immutable
// after grid construction (§3 of the spec).
type NodeStatus uint8

const (
	// Core marks an ordinary interior node with no special role.
	Core NodeStatus = iota

	// FixedValue marks a Dirichlet base-level node: elevation is held
	// fixed by the outer simulation loop and flow terminates there.
	FixedValue

	// FixedGradient marks a Neumann node: zero-flux boundary for the
	// diffusion eroder, ordinary participant in flow routing otherwise.
	FixedGradient

	// Looped marks a node paired with an opposite-border node to form a
	// periodic topology. Looped nodes always come in matched pairs along
	// one grid axis.
	Looped

	// Ghost marks a node that exists in storage but is never traversed
	// during flow construction and has no neighbors.
	Ghost
)

// String renders a NodeStatus for diagnostics and test failure messages.
func (s NodeStatus) String() string {
	switch s {
	case Core:
		return "Core"
	case FixedValue:
		return "FixedValue"
	case FixedGradient:
		return "FixedGradient"
	case Looped:
		return "Looped"
	case Ghost:
		return "Ghost"
	default:
		return "Unknown"
	}
}

// IsBaseLevel reports whether a node of this status terminates flow
// routing (spec §3: "A base-level node ... has rcount = 0").
func (s NodeStatus) IsBaseLevel() bool {
	return s == FixedValue
}
