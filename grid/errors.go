package grid

import (
	"errors"

	"github.com/fastscape-go/fastscapelib/internal/fserr"
)

// Sentinel errors for the grid package. Wrapped at call sites with
// fmt.Errorf("grid: ...: %w", Err).
var (
	// ErrShapeMismatch indicates a status-override array (or an input
	// elevation/erosion/basin array) does not match the grid's node count.
	ErrShapeMismatch = errors.New("grid: shape mismatch")

	// ErrInvalidLoopPairing indicates a Looped border was paired against
	// a non-Looped border, or a Looped border with no partner.
	ErrInvalidLoopPairing = errors.New("grid: invalid Looped pairing")

	// ErrDisconnectedVertex indicates a TriMesh vertex referenced by no
	// triangle.
	ErrDisconnectedVertex = errors.New("grid: disconnected vertex")

	// ErrInvalidShape indicates a non-positive grid dimension.
	ErrInvalidShape = errors.New("grid: invalid shape")

	// ErrOutOfRange indicates a node index outside [0, N).
	ErrOutOfRange = errors.New("grid: node index out of range")
)

// invalidArg wraps err as an fserr.InvalidArgument raised by op.
func invalidArg(op string, err error) error { return fserr.New(fserr.InvalidArgument, op, err) }

// outOfRange wraps err as an fserr.OutOfRange raised by op.
func outOfRange(op string, err error) error { return fserr.New(fserr.OutOfRange, op, err) }
