package pipeline

import (
	"math"

	"github.com/processing/processing-sub019/pkg/math3d"
)

// ShapeAssemblyContext is the state of the shape between BeginShape and
// EndShape. Indices are absolute buffer positions.
type ShapeAssemblyContext struct {
	Kind          ShapeKind
	NormalMode    NormalMode
	Normal        math3d.Vec3 // the shape normal once NormalMode is NormalShape
	FirstVertex   int
	FirstLine     int
	FirstTriangle int
	PathID        int
	ShapeID       int
	Count         int // vertices recorded by Vertex, not counting clip vertices
}

// vertex returns the buffer index of the i-th vertex of the shape.
func (c *ShapeAssemblyContext) vertex(i int) int {
	return c.FirstVertex + i
}

// BeginShape starts a shape of the given kind.
func (g *Graphics) BeginShape(kind ShapeKind) error {
	if g.shape.Kind != ShapeNone {
		return ErrShapeInProgress
	}
	if g.mode == Immediate {
		g.resetBuffers()
	}
	g.shape = ShapeAssemblyContext{
		Kind:          kind,
		NormalMode:    NormalAuto,
		FirstVertex:   g.vertices.Len(),
		FirstLine:     g.lines.Len(),
		FirstTriangle: g.triangles.Len(),
		PathID:        g.pathCount,
		ShapeID:       g.shapeCount,
	}
	g.shapeCount++
	return nil
}

// Normal sets the normal baked into subsequent vertices. Inside a shape the
// first call marks the shape as having a single shape normal and the second
// switches it to per-vertex normals.
func (g *Graphics) Normal(x, y, z float64) {
	g.normal = math3d.V3(x, y, z)
	if g.shape.Kind == ShapeNone {
		return
	}
	switch g.shape.NormalMode {
	case NormalAuto:
		g.shape.NormalMode = NormalShape
		g.shape.Normal = g.normal
	case NormalShape:
		g.shape.NormalMode = NormalVertex
	}
}

// Vertex appends a vertex to the current shape.
func (g *Graphics) Vertex(x, y, z float64) {
	g.VertexUV(x, y, z, 0, 0)
}

// VertexUV appends a textured vertex. u and v are interpreted according to
// TextureMode.
func (g *Graphics) VertexUV(x, y, z, u, v float64) {
	if g.shape.Kind == ShapeNone {
		Logger().Warn("pipeline: vertex outside beginShape/endShape ignored",
			"x", x, "y", y, "z", z)
		return
	}
	if g.texture >= 0 && g.textureMode == ImageSpace {
		if w, h := g.textures[g.texture].Size(); w > 0 && h > 0 {
			u /= float64(w)
			v /= float64(h)
		}
	}

	m := &g.material
	fill := m.fill
	if !m.fillEnabled {
		fill = White
	}
	g.vertices.Append(Vertex{
		Model:        math3d.V3(x, y, z),
		Fill:         fill,
		Ambient:      m.ambient,
		Specular:     m.specular,
		Emissive:     m.emissive,
		Shininess:    m.shininess,
		Stroke:       m.stroke,
		StrokeWeight: m.strokeWeight,
		Normal:       g.normal,
		U:            u,
		V:            v,
	})
	g.shape.Count++

	if m.strokeEnabled {
		g.emitVertexLines(&g.shape)
	}
}

// EndShape finishes the current shape: vertices go to camera space,
// triangles are emitted, every primitive is clipped against the near
// plane, lit and projected. In Immediate mode the result is rendered at
// once; in DeferredSorted mode it is kept until EndFrame.
func (g *Graphics) EndShape(mode EndMode) error {
	if g.shape.Kind == ShapeNone {
		return ErrNoShape
	}
	ctx := g.shape
	g.shape = ShapeAssemblyContext{}
	if ctx.Count == 0 {
		return nil
	}
	g.pathCount = ctx.PathID + 1

	if g.material.strokeEnabled {
		g.emitClosingLines(&ctx, mode)
	}
	g.toCameraSpace(ctx.FirstVertex, g.vertices.Len())
	if g.material.fillEnabled || g.texture >= 0 {
		g.emitTriangles(&ctx)
	}
	g.clipLines(ctx.FirstLine)
	g.clipTriangles(ctx.FirstTriangle)
	g.light(&ctx)
	g.project(ctx.FirstVertex, g.vertices.Len())

	g.stats.Shapes++
	g.stats.Vertices += g.vertices.Len() - ctx.FirstVertex
	g.stats.Lines += g.lines.Len() - ctx.FirstLine
	g.stats.Triangles += g.triangles.Len() - ctx.FirstTriangle

	if g.mode == Immediate {
		g.render(ctx.FirstTriangle, ctx.FirstLine)
	}
	return nil
}

func (g *Graphics) addLine(ctx *ShapeAssemblyContext, a, b int) {
	ia, ib := ctx.vertex(a), ctx.vertex(b)
	g.lines.Append(Line{
		A:      ia,
		B:      ib,
		PathID: ctx.PathID,
		Cap:    g.material.strokeCap,
		Join:   g.material.strokeJoin,
		Weight: int(math.Round(g.vertices.At(ia).StrokeWeight)),
	})
}

func (g *Graphics) addTriangle(ctx *ShapeAssemblyContext, a, b, c int) {
	g.triangles.Append(Triangle{
		V:            [3]int{ctx.vertex(a), ctx.vertex(b), ctx.vertex(c)},
		TextureIndex: g.texture,
		ShapeID:      ctx.ShapeID,
	})
}

// emitVertexLines emits the outline segments completed by the vertex just
// appended. Interior and diagonal edges of strips, fans and quads are never
// stroked.
func (g *Graphics) emitVertexLines(ctx *ShapeAssemblyContext) {
	n := ctx.Count
	switch ctx.Kind {
	case Points:
		g.addLine(ctx, n-1, n-1)
		ctx.PathID++
	case Lines:
		if n%2 == 0 {
			g.addLine(ctx, n-2, n-1)
			ctx.PathID++
		}
	case LineStrip, LineLoop, Polygon:
		if n >= 2 {
			g.addLine(ctx, n-2, n-1)
		}
	case Triangles:
		if n%3 == 0 {
			g.addLine(ctx, n-3, n-2)
			g.addLine(ctx, n-2, n-1)
			g.addLine(ctx, n-1, n-3)
			ctx.PathID++
		}
	case Quads:
		if n%4 == 0 {
			g.addLine(ctx, n-4, n-3)
			g.addLine(ctx, n-3, n-2)
			g.addLine(ctx, n-2, n-1)
			g.addLine(ctx, n-1, n-4)
			ctx.PathID++
		}
	case TriangleStrip:
		switch {
		case n == 2:
			g.addLine(ctx, 0, 1)
		case n > 2:
			g.addLine(ctx, n-3, n-1)
		}
	case TriangleFan:
		if n >= 2 {
			g.addLine(ctx, n-2, n-1)
		}
	case QuadStrip:
		switch {
		case n == 2:
			g.addLine(ctx, 0, 1)
		case n >= 4 && n%2 == 0:
			g.addLine(ctx, n-4, n-2)
			g.addLine(ctx, n-3, n-1)
		}
	}
}

// emitClosingLines emits the segments that can only be known at EndShape:
// loop closure, strip end caps and the last fan spoke.
func (g *Graphics) emitClosingLines(ctx *ShapeAssemblyContext, mode EndMode) {
	n := ctx.Count
	switch ctx.Kind {
	case LineLoop:
		if n >= 3 {
			g.addLine(ctx, n-1, 0)
		}
	case Polygon:
		if mode == Close && n >= 3 {
			g.addLine(ctx, n-1, 0)
		}
	case TriangleStrip:
		if n >= 3 {
			g.addLine(ctx, n-2, n-1)
		}
	case TriangleFan:
		if n >= 3 {
			g.addLine(ctx, n-1, 0)
		}
	case QuadStrip:
		if m := n &^ 1; m >= 4 {
			g.addLine(ctx, m-2, m-1)
		}
	}
}

// emitTriangles emits the filled triangles of the shape. Vertices that do
// not complete a primitive are ignored.
func (g *Graphics) emitTriangles(ctx *ShapeAssemblyContext) {
	n := ctx.Count
	switch ctx.Kind {
	case Triangles:
		for i := 0; i+2 < n; i += 3 {
			g.addTriangle(ctx, i, i+1, i+2)
		}
	case TriangleStrip:
		for i := 0; i+2 < n; i++ {
			if i%2 == 0 {
				g.addTriangle(ctx, i, i+1, i+2)
			} else {
				g.addTriangle(ctx, i+1, i, i+2)
			}
		}
	case TriangleFan:
		for i := 1; i+1 < n; i++ {
			g.addTriangle(ctx, 0, i, i+1)
		}
	case Quads:
		for i := 0; i+3 < n; i += 4 {
			g.addTriangle(ctx, i, i+1, i+2)
			g.addTriangle(ctx, i, i+2, i+3)
		}
	case QuadStrip:
		for i := 0; i+3 < n; i += 2 {
			g.addTriangle(ctx, i, i+1, i+3)
			g.addTriangle(ctx, i, i+3, i+2)
		}
	case Polygon:
		g.triangulatePolygon(ctx)
	}
}

// toCameraSpace fills View for vertices [from, to).
func (g *Graphics) toCameraSpace(from, to int) {
	mv := g.modelview.Forward
	for i := from; i < to; i++ {
		v := g.vertices.At(i)
		v.View = mv.MulVec4(math3d.V4FromV3(v.Model, 1))
	}
}

// project fills Screen and ClipW for vertices [from, to).
func (g *Graphics) project(from, to int) {
	for i := from; i < to; i++ {
		v := g.vertices.At(i)
		v.Screen, v.ClipW = g.viewToScreen(v.View)
	}
}
