package pipeline

import (
	"math"

	"github.com/processing/processing-sub019/pkg/math3d"
)

// Box draws an axis-aligned box of the given size centered on the origin,
// one quad per face with outward normals.
func (g *Graphics) Box(w, h, d float64) error {
	x, y, z := w/2, h/2, d/2
	faces := [6]struct {
		n math3d.Vec3
		v [4]math3d.Vec3
	}{
		{math3d.V3(0, 0, 1), [4]math3d.Vec3{{X: -x, Y: -y, Z: z}, {X: x, Y: -y, Z: z}, {X: x, Y: y, Z: z}, {X: -x, Y: y, Z: z}}},
		{math3d.V3(1, 0, 0), [4]math3d.Vec3{{X: x, Y: -y, Z: z}, {X: x, Y: -y, Z: -z}, {X: x, Y: y, Z: -z}, {X: x, Y: y, Z: z}}},
		{math3d.V3(0, 0, -1), [4]math3d.Vec3{{X: x, Y: -y, Z: -z}, {X: -x, Y: -y, Z: -z}, {X: -x, Y: y, Z: -z}, {X: x, Y: y, Z: -z}}},
		{math3d.V3(-1, 0, 0), [4]math3d.Vec3{{X: -x, Y: -y, Z: -z}, {X: -x, Y: -y, Z: z}, {X: -x, Y: y, Z: z}, {X: -x, Y: y, Z: -z}}},
		{math3d.V3(0, 1, 0), [4]math3d.Vec3{{X: -x, Y: y, Z: z}, {X: x, Y: y, Z: z}, {X: x, Y: y, Z: -z}, {X: -x, Y: y, Z: -z}}},
		{math3d.V3(0, -1, 0), [4]math3d.Vec3{{X: -x, Y: -y, Z: -z}, {X: x, Y: -y, Z: -z}, {X: x, Y: -y, Z: z}, {X: -x, Y: -y, Z: z}}},
	}

	if err := g.BeginShape(Quads); err != nil {
		return err
	}
	for _, f := range faces {
		g.Normal(f.n.X, f.n.Y, f.n.Z)
		for _, p := range f.v {
			g.Vertex(p.X, p.Y, p.Z)
		}
	}
	return g.EndShape(Close)
}

// SphereDetail sets the number of segments around a sphere's equator and
// from pole to pole. Values below 3 are raised to 3.
func (g *Graphics) SphereDetail(res int) {
	res = max(res, 3)
	if res != g.sphereDetail {
		g.sphereDetail = res
		g.sphereCache = nil
	}
}

// unitSphere returns the (res+1)*(res+1) grid of unit vectors, row by row
// from the north pole (-y) to the south pole.
func (g *Graphics) unitSphere() []math3d.Vec3 {
	if g.sphereCache != nil {
		return g.sphereCache
	}
	res := g.sphereDetail
	pts := make([]math3d.Vec3, 0, (res+1)*(res+1))
	for i := 0; i <= res; i++ {
		lat := math.Pi * float64(i) / float64(res)
		sy, cy := math.Sincos(lat)
		for j := 0; j <= res; j++ {
			lon := 2 * math.Pi * float64(j) / float64(res)
			sx, cx := math.Sincos(lon)
			pts = append(pts, math3d.V3(sy*cx, -cy, sy*sx))
		}
	}
	g.sphereCache = pts
	return pts
}

// Sphere draws a sphere of radius r centered on the origin as one triangle
// strip per latitude band, with per-vertex normals.
func (g *Graphics) Sphere(r float64) error {
	res := g.sphereDetail
	pts := g.unitSphere()
	for i := range res {
		if err := g.BeginShape(TriangleStrip); err != nil {
			return err
		}
		for j := 0; j <= res; j++ {
			for _, p := range [2]math3d.Vec3{pts[i*(res+1)+j], pts[(i+1)*(res+1)+j]} {
				g.Normal(p.X, p.Y, p.Z)
				g.Vertex(p.X*r, p.Y*r, p.Z*r)
			}
		}
		if err := g.EndShape(Open); err != nil {
			return err
		}
	}
	return nil
}
