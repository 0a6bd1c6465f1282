package pipeline

import (
	"image/color"
	"math"
	"testing"

	"github.com/processing/processing-sub019/pkg/math3d"
)

// recorder is a Rasterizer that keeps everything it is given.
type recorder struct {
	tris  []ScreenTriangle
	lines []ScreenLine
}

func (r *recorder) RenderTriangle(t ScreenTriangle) { r.tris = append(r.tris, t) }
func (r *recorder) RenderLine(l ScreenLine)         { r.lines = append(r.lines, l) }

type fakeTexture struct{ w, h int }

func (f *fakeTexture) Size() (int, int)               { return f.w, f.h }
func (f *fakeTexture) Sample(u, v float64) color.RGBA { return color.RGBA{255, 255, 255, 255} }

func newTestGraphics(opts ...Option) (*Graphics, *recorder) {
	rec := &recorder{}
	g := New(100, 100, rec, opts...)
	g.BeginFrame()
	return g, rec
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func colorApprox(a, b Color) bool {
	return approx(a.R, b.R) && approx(a.G, b.G) && approx(a.B, b.B) && approx(a.A, b.A)
}

func vecApprox(a, b math3d.Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

// drawShape runs one complete shape.
func drawShape(t *testing.T, g *Graphics, kind ShapeKind, mode EndMode, pts ...math3d.Vec3) {
	t.Helper()
	if err := g.BeginShape(kind); err != nil {
		t.Fatalf("BeginShape(%v): %v", kind, err)
	}
	for _, p := range pts {
		g.Vertex(p.X, p.Y, p.Z)
	}
	if err := g.EndShape(mode); err != nil {
		t.Fatalf("EndShape: %v", err)
	}
}

// grid returns n distinct points on the z=0 plane.
func grid(n int) []math3d.Vec3 {
	pts := make([]math3d.Vec3, n)
	for i := range pts {
		pts[i] = math3d.V3(float64(10+i*5), float64(10+(i%2)*10), 0)
	}
	return pts
}

func unitQuad(z float64) []math3d.Vec3 {
	return []math3d.Vec3{
		math3d.V3(0, 0, z),
		math3d.V3(1, 0, z),
		math3d.V3(1, 1, z),
		math3d.V3(0, 1, z),
	}
}
