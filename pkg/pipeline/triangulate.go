package pipeline

import (
	"slices"

	"github.com/processing/processing-sub019/pkg/math3d"
)

// triangulatePolygon ear-clips the current POLYGON shape.
func (g *Graphics) triangulatePolygon(ctx *ShapeAssemblyContext) {
	pts := make([]math3d.Vec3, ctx.Count)
	for i := range pts {
		pts[i] = g.vertices.At(ctx.vertex(i)).Model
	}
	tris, ok := triangulate(pts, nil)
	if !ok {
		Logger().Debug("pipeline: polygon triangulation aborted",
			"shape", ctx.ShapeID,
			"vertices", ctx.Count,
			"triangles", len(tris))
	}
	for _, t := range tris {
		g.addTriangle(ctx, t[0], t[1], t[2])
	}
}

// newellNormal returns the (unnormalized) Newell normal of a polygon. It is
// robust to concave and slightly non-planar input.
func newellNormal(pts []math3d.Vec3) math3d.Vec3 {
	var n math3d.Vec3
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}

// triangulate appends to dst the ear-clipping triangulation of a simple
// polygon, as index triples into pts. The polygon is projected onto the
// coordinate plane facing its normal and walked counter-clockwise there, so
// the output winding does not depend on the input winding. ok is false when
// the scan bound was exceeded; dst then holds the ears found so far.
func triangulate(pts []math3d.Vec3, dst [][3]int) (out [][3]int, ok bool) {
	n := len(pts)
	if n < 3 {
		return dst, true
	}

	axis := newellNormal(pts).DominantAxis()
	flat := make([]math3d.Vec2, n)
	for i, p := range pts {
		flat[i] = p.Drop(axis)
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if math3d.SignedArea(flat) < 0 {
		slices.Reverse(idx)
	}

	nv := n
	count := 2 * nv
	for v := nv - 1; nv > 2; {
		if count <= 0 {
			return dst, false
		}
		count--

		u := v
		if u >= nv {
			u = 0
		}
		v = u + 1
		if v >= nv {
			v = 0
		}
		w := v + 1
		if w >= nv {
			w = 0
		}

		if isEar(flat, idx[:nv], u, v, w) {
			dst = append(dst, [3]int{idx[u], idx[v], idx[w]})
			idx = slices.Delete(idx, v, v+1)
			nv--
			count = 2 * nv
		}
	}
	return dst, true
}

// isEar reports whether working vertices u, v, w form a convex corner that
// contains no other remaining vertex.
func isEar(flat []math3d.Vec2, idx []int, u, v, w int) bool {
	a, b, c := flat[idx[u]], flat[idx[v]], flat[idx[w]]
	if b.Sub(a).Cross(c.Sub(a)) < triangulationEpsilon {
		return false
	}
	for p := range idx {
		if p == u || p == v || p == w {
			continue
		}
		if insideTriangle(a, b, c, flat[idx[p]]) {
			return false
		}
	}
	return true
}

// insideTriangle reports whether p lies inside or on the counter-clockwise
// triangle abc.
func insideTriangle(a, b, c, p math3d.Vec2) bool {
	return c.Sub(b).Cross(p.Sub(b)) >= 0 &&
		a.Sub(c).Cross(p.Sub(c)) >= 0 &&
		b.Sub(a).Cross(p.Sub(a)) >= 0
}
