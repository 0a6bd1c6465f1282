package pipeline

import "github.com/processing/processing-sub019/pkg/math3d"

// transform runs f on the pair transform calls act on: the modelview, or the
// (camera-inverse, camera) pair between BeginCamera and EndCamera.
func (g *Graphics) transform(f func(p *MatrixPair) error) error {
	if !g.cameraBegun {
		return f(&g.modelview)
	}
	p := g.camera.swapped()
	if err := f(&p); err != nil {
		return err
	}
	g.camera = p.swapped()
	return nil
}

func (g *Graphics) apply(f func(p *MatrixPair)) {
	_ = g.transform(func(p *MatrixPair) error {
		f(p)
		return nil
	})
}

// Translate moves the coordinate system.
func (g *Graphics) Translate(x, y, z float64) {
	g.apply(func(p *MatrixPair) { p.Translate(math3d.V3(x, y, z)) })
}

// RotateX rotates the coordinate system about the x axis.
func (g *Graphics) RotateX(angle float64) {
	g.apply(func(p *MatrixPair) { p.RotateX(angle) })
}

// RotateY rotates the coordinate system about the y axis.
func (g *Graphics) RotateY(angle float64) {
	g.apply(func(p *MatrixPair) { p.RotateY(angle) })
}

// RotateZ rotates the coordinate system about the z axis.
func (g *Graphics) RotateZ(angle float64) {
	g.apply(func(p *MatrixPair) { p.RotateZ(angle) })
}

// Rotate rotates the coordinate system about an arbitrary axis.
func (g *Graphics) Rotate(angle float64, axis math3d.Vec3) {
	g.apply(func(p *MatrixPair) { p.Rotate(angle, axis) })
}

// Scale scales the coordinate system.
func (g *Graphics) Scale(x, y, z float64) {
	g.apply(func(p *MatrixPair) { p.Scale(math3d.V3(x, y, z)) })
}

// ApplyMatrix multiplies m into the current transform. A singular m is
// rejected with ErrSingularMatrix.
func (g *Graphics) ApplyMatrix(m math3d.Mat4) error {
	return g.transform(func(p *MatrixPair) error { return p.Apply(m) })
}

// ResetMatrix sets the current transform to the identity.
func (g *Graphics) ResetMatrix() {
	g.apply(func(p *MatrixPair) { p.Reset() })
}

// PushMatrix saves the modelview.
func (g *Graphics) PushMatrix() error {
	return g.stack.Push(g.modelview)
}

// PopMatrix restores the most recently saved modelview.
func (g *Graphics) PopMatrix() error {
	p, err := g.stack.Pop()
	if err != nil {
		return err
	}
	g.modelview = p
	return nil
}

// Matrix returns a copy of the modelview pair.
func (g *Graphics) Matrix() MatrixPair { return g.modelview }

// CameraMatrix returns a copy of the camera pair (view, view inverse).
func (g *Graphics) CameraMatrix() MatrixPair { return g.camera }

// Projection returns the current projection matrix.
func (g *Graphics) Projection() math3d.Mat4 { return g.projection }
