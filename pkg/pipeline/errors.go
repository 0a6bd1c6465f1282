package pipeline

import (
	"errors"
	"fmt"
)

// Capability errors.
var ErrUnsupportedOperation = errors.New("pipeline: unsupported operation")

// Stack discipline errors. Continuing after one of these would corrupt the
// transform or shape state, so callers should treat them as fatal.
var (
	ErrMatrixStackOverflow  = errors.New("pipeline: matrix stack overflow")
	ErrMatrixStackUnderflow = errors.New("pipeline: matrix stack underflow")
	ErrCameraNotBegun       = errors.New("pipeline: endCamera without beginCamera")
	ErrCameraAlreadyBegun   = errors.New("pipeline: beginCamera called twice")
	ErrShapeInProgress      = errors.New("pipeline: shape already in progress")
	ErrNoShape              = errors.New("pipeline: endShape without beginShape")
)

// Resource errors.
var (
	ErrTooManyLights  = errors.New("pipeline: too many lights")
	ErrSingularMatrix = errors.New("pipeline: matrix is not invertible")
)

// UnsupportedOperationError is returned by a target that lacks the
// capability an operation needs.
type UnsupportedOperationError struct {
	Op       string // operation that was attempted, e.g. "rotateX"
	Requires string // capability it needs, e.g. "depth()"
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("pipeline: %s requires %s", e.Op, e.Requires)
}

// Is makes errors.Is(err, ErrUnsupportedOperation) match.
func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}

func unsupported3D(op string) error {
	return &UnsupportedOperationError{Op: op, Requires: "depth()"}
}
