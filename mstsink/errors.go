package mstsink

import (
	"errors"

	"github.com/fastscape-go/fastscapelib/internal/fserr"
)

// ErrNoOutlet indicates the basin graph contains no outer (base-level)
// basin at all, so no inner basin can ever be connected to a drain
// (spec §4.4 failure semantics).
var ErrNoOutlet = errors.New("mstsink: no outer basin to drain to")

// ErrBrokenChain indicates a basin's receiver chain does not terminate
// at its recorded pit, which would mean Basins() was computed against a
// graph state Resolve never saw — an invariant violation, not a normal
// runtime failure.
var ErrBrokenChain = errors.New("mstsink: receiver chain does not reach basin root")

func invariantViolated(op string, err error) error {
	return fserr.New(fserr.InvariantViolated, op, err)
}

func invalidArg(op string, err error) error { return fserr.New(fserr.InvalidArgument, op, err) }
