package pipeline

import "github.com/processing/processing-sub019/pkg/math3d"

// Target is the drawing surface shared by 2-D and 3-D graphics.
type Target interface {
	Width() int
	Height() int

	BeginFrame()
	EndFrame() error
	BeginShape(kind ShapeKind) error
	Vertex2(x, y float64)
	EndShape(mode EndMode) error

	Fill(c Color)
	NoFill()
	Stroke(c Color)
	NoStroke()
	StrokeWeight(w float64)

	Translate2(x, y float64)
	RotateZ(angle float64)
	Scale2(x, y float64)
	PushMatrix() error
	PopMatrix() error
	ResetMatrix()
}

// Has3D is a Target with depth: 3-D vertices, transforms, camera,
// projection and lighting.
type Has3D interface {
	Target

	Vertex(x, y, z float64)
	VertexUV(x, y, z, u, v float64)
	Normal(x, y, z float64)

	Translate(x, y, z float64)
	RotateX(angle float64)
	RotateY(angle float64)
	Scale(x, y, z float64)

	Camera(eye, center, up math3d.Vec3)
	Perspective(fovy, aspect, near, far float64)
	Lights() error
}

// Require3D returns t as a Has3D, or an *UnsupportedOperationError naming
// op when t has no depth.
func Require3D(t Target, op string) (Has3D, error) {
	if g, ok := t.(Has3D); ok {
		return g, nil
	}
	return nil, unsupported3D(op)
}

// Vertex2 appends a vertex on the z=0 plane.
func (g *Graphics) Vertex2(x, y float64) { g.Vertex(x, y, 0) }

// Translate2 moves the coordinate system within the z=0 plane.
func (g *Graphics) Translate2(x, y float64) { g.Translate(x, y, 0) }

// Scale2 scales x and y.
func (g *Graphics) Scale2(x, y float64) { g.Scale(x, y, 1) }

// Graphics2D is a flat target drawn through the same pipeline with an
// orthographic projection. Its 3-D entry points fail with an
// *UnsupportedOperationError.
type Graphics2D struct {
	g *Graphics
}

var _ Target = (*Graphics2D)(nil)

// New2D returns a 2-D target of the given pixel size. Model coordinates map
// one to one onto pixels.
func New2D(width, height int, r Rasterizer, opts ...Option) *Graphics2D {
	g := New(width, height, r, opts...)
	g.DefaultOrtho()
	return &Graphics2D{g: g}
}

func (t *Graphics2D) Width() int                      { return t.g.Width() }
func (t *Graphics2D) Height() int                     { return t.g.Height() }
func (t *Graphics2D) BeginFrame()                     { t.g.BeginFrame() }
func (t *Graphics2D) EndFrame() error                 { return t.g.EndFrame() }
func (t *Graphics2D) BeginShape(kind ShapeKind) error { return t.g.BeginShape(kind) }
func (t *Graphics2D) Vertex2(x, y float64)            { t.g.Vertex2(x, y) }
func (t *Graphics2D) EndShape(mode EndMode) error     { return t.g.EndShape(mode) }
func (t *Graphics2D) Fill(c Color)                    { t.g.Fill(c) }
func (t *Graphics2D) NoFill()                         { t.g.NoFill() }
func (t *Graphics2D) Stroke(c Color)                  { t.g.Stroke(c) }
func (t *Graphics2D) NoStroke()                       { t.g.NoStroke() }
func (t *Graphics2D) StrokeWeight(w float64)          { t.g.StrokeWeight(w) }
func (t *Graphics2D) Translate2(x, y float64)         { t.g.Translate2(x, y) }
func (t *Graphics2D) RotateZ(angle float64)           { t.g.RotateZ(angle) }
func (t *Graphics2D) Scale2(x, y float64)             { t.g.Scale2(x, y) }
func (t *Graphics2D) PushMatrix() error               { return t.g.PushMatrix() }
func (t *Graphics2D) PopMatrix() error                { return t.g.PopMatrix() }
func (t *Graphics2D) ResetMatrix()                    { t.g.ResetMatrix() }

// Stats returns the counters of the current frame.
func (t *Graphics2D) Stats() Stats { return t.g.Stats() }

func (t *Graphics2D) Vertex3(x, y, z float64) error            { return unsupported3D("vertex(x, y, z)") }
func (t *Graphics2D) RotateX(angle float64) error              { return unsupported3D("rotateX") }
func (t *Graphics2D) RotateY(angle float64) error              { return unsupported3D("rotateY") }
func (t *Graphics2D) Translate3(x, y, z float64) error         { return unsupported3D("translate(x, y, z)") }
func (t *Graphics2D) Scale3(x, y, z float64) error             { return unsupported3D("scale(x, y, z)") }
func (t *Graphics2D) Lights() error                            { return unsupported3D("lights") }
func (t *Graphics2D) Camera(eye, center, up math3d.Vec3) error { return unsupported3D("camera") }
func (t *Graphics2D) Perspective(fovy, aspect, near, far float64) error {
	return unsupported3D("perspective")
}
