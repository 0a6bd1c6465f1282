package pipeline

import (
	"fmt"

	"github.com/processing/processing-sub019/pkg/math3d"
)

// MatrixPair keeps a transform together with its exact inverse. Every
// builder post-multiplies Forward and pre-multiplies Reverse with the
// analytic inverse, so Forward*Reverse stays the identity without a general
// matrix inversion.
type MatrixPair struct {
	Forward math3d.Mat4
	Reverse math3d.Mat4
}

// IdentityPair returns a pair of identity matrices.
func IdentityPair() MatrixPair {
	return MatrixPair{Forward: math3d.Identity(), Reverse: math3d.Identity()}
}

func (p *MatrixPair) compose(m, inv math3d.Mat4) {
	p.Forward = p.Forward.Mul(m)
	p.Reverse = inv.Mul(p.Reverse)
}

// Translate appends a translation.
func (p *MatrixPair) Translate(v math3d.Vec3) {
	p.compose(math3d.Translate(v), math3d.Translate(v.Negate()))
}

// RotateX appends a rotation about the x axis.
func (p *MatrixPair) RotateX(angle float64) {
	p.compose(math3d.RotateX(angle), math3d.RotateX(-angle))
}

// RotateY appends a rotation about the y axis.
func (p *MatrixPair) RotateY(angle float64) {
	p.compose(math3d.RotateY(angle), math3d.RotateY(-angle))
}

// RotateZ appends a rotation about the z axis.
func (p *MatrixPair) RotateZ(angle float64) {
	p.compose(math3d.RotateZ(angle), math3d.RotateZ(-angle))
}

// Rotate appends a rotation about an arbitrary axis. A zero axis is a no-op.
func (p *MatrixPair) Rotate(angle float64, axis math3d.Vec3) {
	p.compose(math3d.Rotate(axis, angle), math3d.Rotate(axis, -angle))
}

// Scale appends a scale. A zero factor leaves Reverse with infinities.
func (p *MatrixPair) Scale(v math3d.Vec3) {
	p.compose(math3d.Scale(v), math3d.Scale(math3d.V3(1/v.X, 1/v.Y, 1/v.Z)))
}

// Apply appends an arbitrary matrix. This is the only place a general
// inversion happens; a singular m leaves the pair unchanged.
func (p *MatrixPair) Apply(m math3d.Mat4) error {
	inv, ok := m.Inverse()
	if !ok {
		return ErrSingularMatrix
	}
	p.compose(m, inv)
	return nil
}

// Reset sets both matrices to the identity.
func (p *MatrixPair) Reset() {
	*p = IdentityPair()
}

// swapped exchanges the roles of Forward and Reverse.
func (p MatrixPair) swapped() MatrixPair {
	return MatrixPair{Forward: p.Reverse, Reverse: p.Forward}
}

// MatrixStack is a bounded stack of MatrixPair snapshots.
type MatrixStack struct {
	items []MatrixPair
	depth int
}

// NewMatrixStack returns a stack holding at most depth snapshots.
func NewMatrixStack(depth int) *MatrixStack {
	return &MatrixStack{items: make([]MatrixPair, 0, depth), depth: depth}
}

// Push saves p.
func (s *MatrixStack) Push(p MatrixPair) error {
	if len(s.items) >= s.depth {
		return fmt.Errorf("%w (depth %d)", ErrMatrixStackOverflow, s.depth)
	}
	s.items = append(s.items, p)
	return nil
}

// Pop removes and returns the most recent snapshot.
func (s *MatrixStack) Pop() (MatrixPair, error) {
	if len(s.items) == 0 {
		return MatrixPair{}, ErrMatrixStackUnderflow
	}
	p := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return p, nil
}

// Len returns the number of saved snapshots.
func (s *MatrixStack) Len() int { return len(s.items) }

// Reset drops every snapshot.
func (s *MatrixStack) Reset() { s.items = s.items[:0] }
