package pipeline

import (
	"errors"
	"image/color"
	"slices"
	"testing"
)

func TestQuadsScenario(t *testing.T) {
	for _, mode := range []Mode{Immediate, DeferredSorted} {
		t.Run(mode.String(), func(t *testing.T) {
			g, rec := newTestGraphics(WithMode(mode))
			g.Fill(White)
			drawShape(t, g, Quads, Open, unitQuad(-1)...)

			wantBefore := 2
			if mode == DeferredSorted {
				wantBefore = 0
			}
			if len(rec.tris) != wantBefore {
				t.Fatalf("triangles before EndFrame = %d, want %d", len(rec.tris), wantBefore)
			}
			if err := g.EndFrame(); err != nil {
				t.Fatalf("EndFrame: %v", err)
			}
			if len(rec.tris) != 2 {
				t.Fatalf("triangles after EndFrame = %d, want 2", len(rec.tris))
			}
			for i, tri := range rec.tris {
				for k, v := range tri.V {
					if !colorApprox(v.Color, White) {
						t.Errorf("triangle %d corner %d color = %v, want white", i, k, v.Color)
					}
				}
			}
		})
	}
}

func TestShapeBracketErrors(t *testing.T) {
	g, _ := newTestGraphics()

	if err := g.EndShape(Open); !errors.Is(err, ErrNoShape) {
		t.Errorf("EndShape without BeginShape: got %v, want ErrNoShape", err)
	}
	if err := g.BeginShape(Triangles); err != nil {
		t.Fatal(err)
	}
	if err := g.BeginShape(Triangles); !errors.Is(err, ErrShapeInProgress) {
		t.Errorf("nested BeginShape: got %v, want ErrShapeInProgress", err)
	}
	if err := g.Hint(HintDepthSort); !errors.Is(err, ErrShapeInProgress) {
		t.Errorf("Hint inside shape: got %v, want ErrShapeInProgress", err)
	}
	if err := g.EndFrame(); !errors.Is(err, ErrShapeInProgress) {
		t.Errorf("EndFrame with open shape: got %v, want ErrShapeInProgress", err)
	}
}

func TestEndFrameFlushesCompletedShapes(t *testing.T) {
	g, rec := newTestGraphics(WithMode(DeferredSorted))
	g.NoStroke()
	drawShape(t, g, Triangles, Open, grid(3)...)

	if err := g.BeginShape(Triangles); err != nil {
		t.Fatal(err)
	}
	g.Vertex(1, 2, 0)
	if err := g.EndFrame(); !errors.Is(err, ErrShapeInProgress) {
		t.Fatalf("EndFrame: got %v, want ErrShapeInProgress", err)
	}
	if len(rec.tris) != 1 {
		t.Errorf("flushed triangles = %d, want 1", len(rec.tris))
	}
}

func TestZeroVertexShape(t *testing.T) {
	g, rec := newTestGraphics()
	drawShape(t, g, Polygon, Close)
	if g.vertices.Len() != 0 || g.lines.Len() != 0 || g.triangles.Len() != 0 {
		t.Errorf("buffers not empty: %d vertices, %d lines, %d triangles",
			g.vertices.Len(), g.lines.Len(), g.triangles.Len())
	}
	if len(rec.tris)+len(rec.lines) != 0 {
		t.Error("rasterizer received primitives for an empty shape")
	}
}

func TestVertexOutsideShape(t *testing.T) {
	g, _ := newTestGraphics()
	g.Vertex(1, 2, 3)
	if g.vertices.Len() != 0 {
		t.Errorf("vertex outside shape was recorded")
	}
}

func TestEmitLines(t *testing.T) {
	tests := []struct {
		kind ShapeKind
		n    int
		mode EndMode
		want [][2]int
	}{
		{Points, 3, Open, [][2]int{{0, 0}, {1, 1}, {2, 2}}},
		{Lines, 5, Open, [][2]int{{0, 1}, {2, 3}}},
		{LineStrip, 4, Open, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{LineStrip, 4, Close, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{LineLoop, 4, Open, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}},
		{LineLoop, 2, Open, [][2]int{{0, 1}}},
		{Polygon, 4, Open, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{Polygon, 4, Close, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}},
		{Triangles, 7, Open, [][2]int{{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 5}, {5, 3}}},
		{Quads, 4, Open, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}},
		{TriangleStrip, 5, Open, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 4}, {3, 4}}},
		{TriangleFan, 4, Open, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}},
		{QuadStrip, 6, Open, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 4}, {3, 5}, {4, 5}}},
		{QuadStrip, 7, Open, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 4}, {3, 5}, {4, 5}}},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			g, _ := newTestGraphics()
			g.NoFill()
			drawShape(t, g, tc.kind, tc.mode, grid(tc.n)...)

			var got [][2]int
			for _, l := range g.lines.Items() {
				got = append(got, [2]int{l.A, l.B})
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("lines = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNoStrokeEmitsNoLines(t *testing.T) {
	g, rec := newTestGraphics()
	g.NoStroke()
	drawShape(t, g, Quads, Close, unitQuad(0)...)
	if g.lines.Len() != 0 || len(rec.lines) != 0 {
		t.Errorf("lines emitted with stroke disabled")
	}
	if len(rec.tris) != 2 {
		t.Errorf("triangles = %d, want 2", len(rec.tris))
	}
}

func TestEmitTriangles(t *testing.T) {
	tests := []struct {
		kind ShapeKind
		n    int
		want [][3]int
	}{
		{Triangles, 7, [][3]int{{0, 1, 2}, {3, 4, 5}}},
		{TriangleStrip, 5, [][3]int{{0, 1, 2}, {2, 1, 3}, {2, 3, 4}}},
		{TriangleFan, 5, [][3]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 4}}},
		{Quads, 9, [][3]int{{0, 1, 2}, {0, 2, 3}, {4, 5, 6}, {4, 6, 7}}},
		{QuadStrip, 6, [][3]int{{0, 1, 3}, {0, 3, 2}, {2, 3, 5}, {2, 5, 4}}},
		{Lines, 4, nil},
		{Points, 3, nil},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			g, _ := newTestGraphics()
			g.NoStroke()
			drawShape(t, g, tc.kind, Open, grid(tc.n)...)

			var got [][3]int
			for _, tri := range g.triangles.Items() {
				got = append(got, tri.V)
			}
			if !slices.Equal(got, tc.want) {
				t.Errorf("triangles = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNoFillEmitsNoTriangles(t *testing.T) {
	g, _ := newTestGraphics()
	g.NoFill()
	drawShape(t, g, Quads, Close, unitQuad(0)...)
	if g.triangles.Len() != 0 {
		t.Errorf("triangles = %d, want 0", g.triangles.Len())
	}
}

func TestNormalModeTransitions(t *testing.T) {
	g, _ := newTestGraphics()
	g.Normal(0, 0, 1)
	if err := g.BeginShape(Triangles); err != nil {
		t.Fatal(err)
	}
	if g.shape.NormalMode != NormalAuto {
		t.Errorf("after BeginShape mode = %v, want NormalAuto", g.shape.NormalMode)
	}
	g.Normal(0, 1, 0)
	if g.shape.NormalMode != NormalShape {
		t.Errorf("after one Normal mode = %v, want NormalShape", g.shape.NormalMode)
	}
	g.Normal(1, 0, 0)
	if g.shape.NormalMode != NormalVertex {
		t.Errorf("after two Normal calls mode = %v, want NormalVertex", g.shape.NormalMode)
	}
	g.Normal(0, 0, 1)
	if g.shape.NormalMode != NormalVertex {
		t.Errorf("NormalVertex must be sticky, got %v", g.shape.NormalMode)
	}
}

func TestImmediateResetsBuffersPerShape(t *testing.T) {
	g, _ := newTestGraphics()
	drawShape(t, g, Triangles, Open, grid(3)...)
	drawShape(t, g, Triangles, Open, grid(3)...)
	if g.vertices.Len() != 3 {
		t.Errorf("immediate vertices = %d, want 3", g.vertices.Len())
	}

	d, _ := newTestGraphics(WithMode(DeferredSorted))
	drawShape(t, d, Triangles, Open, grid(3)...)
	drawShape(t, d, Triangles, Open, grid(3)...)
	if d.vertices.Len() != 6 {
		t.Errorf("deferred vertices = %d, want 6", d.vertices.Len())
	}
}

func TestShapeIDsAndStats(t *testing.T) {
	g, rec := newTestGraphics()
	g.NoStroke()
	drawShape(t, g, Triangles, Open, grid(3)...)
	drawShape(t, g, Quads, Open, unitQuad(0)...)

	ids := []int{rec.tris[0].ShapeID, rec.tris[1].ShapeID, rec.tris[2].ShapeID}
	if !slices.Equal(ids, []int{0, 1, 1}) {
		t.Errorf("shape ids = %v, want [0 1 1]", ids)
	}
	want := Stats{Shapes: 2, Vertices: 7, Triangles: 3}
	if got := g.Stats(); got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
}

func TestDeferredSortsBackToFront(t *testing.T) {
	g, rec := newTestGraphics(WithMode(DeferredSorted))
	g.NoStroke()
	near := grid(3)
	far := grid(3)
	for i := range far {
		far[i].Z = -200
	}
	drawShape(t, g, Triangles, Open, near...)
	drawShape(t, g, Triangles, Open, far...)
	if err := g.EndFrame(); err != nil {
		t.Fatal(err)
	}
	if len(rec.tris) != 2 {
		t.Fatalf("triangles = %d, want 2", len(rec.tris))
	}
	if rec.tris[0].ShapeID != 1 || rec.tris[1].ShapeID != 0 {
		t.Errorf("render order = [%d %d], want far shape first", rec.tris[0].ShapeID, rec.tris[1].ShapeID)
	}
}

func TestHintFlushesDeferredGeometry(t *testing.T) {
	g, rec := newTestGraphics()
	if err := g.Hint(HintDepthSort); err != nil {
		t.Fatal(err)
	}
	g.NoStroke()
	drawShape(t, g, Triangles, Open, grid(3)...)
	if len(rec.tris) != 0 {
		t.Fatalf("deferred triangle rendered before flush")
	}
	if err := g.Hint(HintNoDepthSort); err != nil {
		t.Fatal(err)
	}
	if len(rec.tris) != 1 {
		t.Errorf("triangles after switching to immediate = %d, want 1", len(rec.tris))
	}
	if g.Mode() != Immediate {
		t.Errorf("mode = %v, want immediate", g.Mode())
	}
}

func TestPointsLineWeight(t *testing.T) {
	g, rec := newTestGraphics()
	g.StrokeWeight(4.6)
	g.StrokeCap(CapSquare)
	drawShape(t, g, Points, Open, grid(2)...)
	if len(rec.lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(rec.lines))
	}
	l := rec.lines[0]
	if l.Weight != 5 || l.Cap != CapSquare {
		t.Errorf("line weight/cap = %d/%v, want 5/CapSquare", l.Weight, l.Cap)
	}
	if l.V[0].X != l.V[1].X || l.V[0].Y != l.V[1].Y {
		t.Errorf("point line is not zero length: %+v", l.V)
	}
	if rec.lines[0].PathID == rec.lines[1].PathID {
		t.Error("each point should be its own path")
	}
}

func TestTextureSlots(t *testing.T) {
	g, rec := newTestGraphics()
	tex := &fakeTexture{w: 4, h: 2}
	g.Texture(tex)
	g.NoStroke()
	if err := g.BeginShape(Triangles); err != nil {
		t.Fatal(err)
	}
	g.VertexUV(0, 0, 0, 0, 0)
	g.VertexUV(10, 0, 0, 4, 0)
	g.VertexUV(0, 10, 0, 0, 2)
	if err := g.EndShape(Open); err != nil {
		t.Fatal(err)
	}
	if len(rec.tris) != 1 {
		t.Fatalf("triangles = %d, want 1", len(rec.tris))
	}
	tri := rec.tris[0]
	if tri.Texture != tex {
		t.Error("texture not passed to rasterizer")
	}
	if tri.V[1].U != 1 || tri.V[2].V != 1 {
		t.Errorf("image-space uv not normalized: %+v", tri.V)
	}
	if g.triangles.At(0).TextureIndex != 0 {
		t.Errorf("texture slot = %d, want 0", g.triangles.At(0).TextureIndex)
	}
}

// sliceTexture is a value texture whose type cannot be compared with ==.
type sliceTexture struct{ texels []color.RGBA }

func (s sliceTexture) Size() (int, int)               { return len(s.texels), 1 }
func (s sliceTexture) Sample(u, v float64) color.RGBA { return s.texels[0] }

func TestTextureSlotReuse(t *testing.T) {
	g, _ := newTestGraphics()
	a, b := &fakeTexture{w: 1, h: 1}, &fakeTexture{w: 1, h: 1}
	g.Texture(a)
	g.Texture(b)
	g.Texture(a)
	if g.texture != 0 || len(g.textures) != 2 {
		t.Errorf("slot = %d of %d, want 0 of 2", g.texture, len(g.textures))
	}

	val := sliceTexture{texels: []color.RGBA{{255, 0, 0, 255}}}
	g.Texture(val)
	g.Texture(val)
	if g.texture != 3 || len(g.textures) != 4 {
		t.Errorf("value texture slot = %d of %d, want 3 of 4", g.texture, len(g.textures))
	}
	g.Texture(a)
	if g.texture != 0 {
		t.Errorf("pointer slot after value textures = %d, want 0", g.texture)
	}
}
