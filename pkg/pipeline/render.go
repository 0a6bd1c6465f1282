package pipeline

import (
	"cmp"
	"slices"
)

// render hands triangles [triFrom, len) and lines [lineFrom, len) to the
// rasterizer, triangles first.
func (g *Graphics) render(triFrom, lineFrom int) {
	for _, t := range g.triangles.Items()[triFrom:] {
		g.rast.RenderTriangle(g.screenTriangle(&t))
	}
	for _, l := range g.lines.Items()[lineFrom:] {
		g.rast.RenderLine(g.screenLine(&l))
	}
}

// flush renders the geometry accumulated in DeferredSorted mode back to
// front and empties the buffers.
func (g *Graphics) flush() {
	tris := g.triangles.Items()
	slices.SortStableFunc(tris, func(a, b Triangle) int {
		return cmp.Compare(g.triangleDepth(&b), g.triangleDepth(&a))
	})
	lines := g.lines.Items()
	slices.SortStableFunc(lines, func(a, b Line) int {
		return cmp.Compare(g.lineDepth(&b), g.lineDepth(&a))
	})
	g.render(0, 0)
	g.resetBuffers()
}

func (g *Graphics) triangleDepth(t *Triangle) float64 {
	return (g.vertices.At(t.V[0]).Screen.Z +
		g.vertices.At(t.V[1]).Screen.Z +
		g.vertices.At(t.V[2]).Screen.Z) / 3
}

func (g *Graphics) lineDepth(l *Line) float64 {
	return (g.vertices.At(l.A).Screen.Z + g.vertices.At(l.B).Screen.Z) / 2
}

func (g *Graphics) screenVertex(i int) ScreenVertex {
	v := g.vertices.At(i)
	return ScreenVertex{
		X: v.Screen.X,
		Y: v.Screen.Y,
		Z: v.Screen.Z,
		W: v.ClipW,
		U: v.U,
		V: v.V,
	}
}

func (g *Graphics) screenTriangle(t *Triangle) ScreenTriangle {
	st := ScreenTriangle{ShapeID: t.ShapeID}
	for k, vi := range t.V {
		sv := g.screenVertex(vi)
		sv.Color = t.Corners[k].Diffuse
		sv.Specular = t.Corners[k].Specular
		st.V[k] = sv
	}
	if t.TextureIndex >= 0 && t.TextureIndex < len(g.textures) {
		st.Texture = g.textures[t.TextureIndex]
	}
	return st
}

func (g *Graphics) screenLine(l *Line) ScreenLine {
	a, b := g.screenVertex(l.A), g.screenVertex(l.B)
	a.Color = g.vertices.At(l.A).Stroke
	b.Color = g.vertices.At(l.B).Stroke
	return ScreenLine{
		V:      [2]ScreenVertex{a, b},
		Weight: l.Weight,
		Cap:    l.Cap,
		Join:   l.Join,
		PathID: l.PathID,
	}
}
