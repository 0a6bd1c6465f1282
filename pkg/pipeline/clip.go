package pipeline

import "github.com/processing/processing-sub019/pkg/math3d"

// clipPlane is the camera-space near plane z = -d, oriented so visible
// points have a non-negative distance.
func (g *Graphics) clipPlane() math3d.Plane {
	d := g.nearDistance()
	return math3d.NewPlane(math3d.V3(0, 0, -1), math3d.V3(0, 0, -d))
}

func (g *Graphics) distance(plane math3d.Plane, i int) float64 {
	return plane.DistanceToPoint(g.vertices.At(i).View.Vec3())
}

// interpolate appends the vertex at parameter t along a→b and returns its
// index.
func (g *Graphics) interpolate(a, b int, t float64) int {
	va, vb := *g.vertices.At(a), *g.vertices.At(b)
	return g.vertices.Append(lerpVertex(va, vb, t))
}

// crossing appends the vertex where edge a→b meets the plane.
func (g *Graphics) crossing(plane math3d.Plane, a, b int) int {
	return g.interpolate(a, b, math3d.Crossing(g.distance(plane, a), g.distance(plane, b)))
}

// clipLines clips lines [from, len) in place. Lines entirely beyond the
// near plane are removed.
func (g *Graphics) clipLines(from int) {
	plane := g.clipPlane()
	w := from
	for i := from; i < g.lines.Len(); i++ {
		l, keep := g.clipLine(plane, *g.lines.At(i))
		if !keep {
			continue
		}
		*g.lines.At(w) = l
		w++
	}
	g.lines.Truncate(w)
}

func (g *Graphics) clipLine(plane math3d.Plane, l Line) (Line, bool) {
	da, db := g.distance(plane, l.A), g.distance(plane, l.B)
	switch {
	case da >= 0 && db >= 0:
		return l, true
	case da < 0 && db < 0:
		g.stats.Clipped++
		return l, false
	}
	g.stats.Clipped++
	c := g.interpolate(l.A, l.B, math3d.Crossing(da, db))
	if da < 0 {
		l.A = c
	} else {
		l.B = c
	}
	return l, true
}

// clipTriangles clips triangles [from, len). A triangle may be kept, dropped
// or replaced by one or two smaller triangles; corner order is preserved so
// the winding does not flip.
func (g *Graphics) clipTriangles(from int) {
	plane := g.clipPlane()
	g.scratch = append(g.scratch[:0], g.triangles.Items()[from:]...)
	g.triangles.Truncate(from)
	for _, t := range g.scratch {
		g.clipTriangle(plane, t)
	}
}

func (g *Graphics) clipTriangle(plane math3d.Plane, t Triangle) {
	var d [3]float64
	beyond := 0
	for k, vi := range t.V {
		d[k] = g.distance(plane, vi)
		if d[k] < 0 {
			beyond++
		}
	}

	switch beyond {
	case 0:
		g.triangles.Append(t)
		return
	case 3:
		g.stats.Clipped++
		return
	}
	g.stats.Clipped++

	// Rotate so the corner on its own side of the plane comes first.
	k := 0
	for i := range 3 {
		if (beyond == 2) == (d[i] >= 0) {
			k = i
			break
		}
	}
	s, a, b := t.V[k], t.V[(k+1)%3], t.V[(k+2)%3]

	if beyond == 2 {
		// s survives; a and b are beyond.
		sa := g.crossing(plane, s, a)
		sb := g.crossing(plane, s, b)
		t.V = [3]int{s, sa, sb}
		g.triangles.Append(t)
		return
	}

	// s is beyond; the visible quad is (s→a crossing, a, b, b→s crossing).
	sa := g.crossing(plane, s, a)
	bs := g.crossing(plane, b, s)
	first, second := t, t
	first.V = [3]int{sa, a, b}
	second.V = [3]int{sa, b, bs}
	g.triangles.Append(first)
	g.triangles.Append(second)
}
