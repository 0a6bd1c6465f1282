// Package render provides the software rasterizer that paints pipeline output
// into a framebuffer.
package render

import (
	"math"

	"github.com/processing/processing-sub019/pkg/pipeline"
)

// lineDepthBias lets strokes win the depth test against fills drawn at the
// same depth. Stroke pixels store the biased depth, so overlapping brush
// stamps of one stroke blend once.
const lineDepthBias = 1e-5

// Stats counts the work done by a Rasterizer since the last ResetStats.
type Stats struct {
	Triangles int // triangles received
	Lines     int // lines received
	Pixels    int // pixels that passed the depth test
}

// Rasterizer scan-converts screen-space triangles and lines into a
// Framebuffer with a depth buffer. Smaller z is nearer.
type Rasterizer struct {
	fb      *Framebuffer
	zbuffer []float64 // Depth buffer (1D array, row-major)
	Stats   Stats
}

var _ pipeline.Rasterizer = (*Rasterizer)(nil)

// NewRasterizer creates a new rasterizer drawing into fb.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{fb: fb}
	r.Resize()
	return r
}

// Resize resizes the rasterizer's buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
	r.ClearDepth()
}

// Framebuffer returns the target framebuffer.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth clears the Z-buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// Clear fills the framebuffer with bg and clears the depth buffer.
func (r *Rasterizer) Clear(bg Color) {
	if r.fb != nil {
		r.fb.Clear(bg)
	}
	r.ClearDepth()
}

// ResetStats zeroes the counters (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = Stats{}
}

// getDepth returns the depth at (x, y).
func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

// setDepth sets the depth at (x, y).
func (r *Rasterizer) setDepth(x, y int, z float64) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return
	}
	r.zbuffer[y*r.Width()+x] = z
}

// edgeCoeffs returns A, B, C for the edge function edge(x,y) = A*x + B*y + C
// of the directed edge (x0,y0)→(x1,y1).
// Positive = left of edge, negative = right of edge, zero = on edge.
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates edge function at point (x, y)
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// topLeft reports whether an edge owns the pixels lying exactly on it, so
// that triangles sharing an edge cover each pixel once.
func topLeft(A, B float64) bool {
	return A > 0 || (A == 0 && B > 0)
}

func covered(w float64, owns bool) bool {
	return w > 0 || (w == 0 && owns)
}

// RenderTriangle fills a triangle. Both windings are drawn. Color and
// texture coordinates are interpolated perspective-correct through 1/W;
// depth is interpolated linearly in screen space.
func (r *Rasterizer) RenderTriangle(t pipeline.ScreenTriangle) {
	r.Stats.Triangles++
	if r.fb == nil {
		return
	}
	sv := t.V
	if !finite(sv[0]) || !finite(sv[1]) || !finite(sv[2]) {
		return
	}

	area := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if area == 0 {
		return
	}
	if area < 0 {
		sv[1], sv[2] = sv[2], sv[1]
		area = -area
	}

	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))
	if minX > maxX || minY > maxY {
		return
	}

	A0, B0, C0 := edgeCoeffs(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	A1, B1, C1 := edgeCoeffs(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	A2, B2, C2 := edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)
	own0, own1, own2 := topLeft(A0, B0), topLeft(A1, B1), topLeft(A2, B2)
	invArea := 1.0 / area

	// Perspective-correct interpolation: precompute 1/W
	var invW [3]float64
	for i := range 3 {
		invW[i] = 1
		if sv[i].W != 0 {
			invW[i] = 1.0 / sv[i].W
		}
	}

	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	w0Row := edgeFunc(A0, B0, C0, px, py)
	w1Row := edgeFunc(A1, B1, C1, px, py)
	w2Row := edgeFunc(A2, B2, C2, px, py)

	width := r.Width()
	zbuffer := r.zbuffer

	for y := minY; y <= maxY; y++ {
		w0 := w0Row
		w1 := w1Row
		w2 := w2Row
		rowOffset := y * width

		for x := minX; x <= maxX; x++ {
			if covered(w0, own0) && covered(w1, own1) && covered(w2, own2) {
				bc0 := w0 * invArea
				bc1 := w1 * invArea
				bc2 := w2 * invArea

				z := bc0*sv[0].Z + bc1*sv[1].Z + bc2*sv[2].Z
				idx := rowOffset + x
				if z < zbuffer[idx] {
					pw0 := bc0 * invW[0]
					pw1 := bc1 * invW[1]
					pw2 := bc2 * invW[2]
					k := 1.0 / (pw0 + pw1 + pw2)
					pw0, pw1, pw2 = pw0*k, pw1*k, pw2*k

					c := shadeFragment(&t, &sv, pw0, pw1, pw2)
					if c.A > 0 {
						zbuffer[idx] = z
						r.fb.BlendPixel(x, y, c)
						r.Stats.Pixels++
					}
				}
			}

			w0 += A0
			w1 += A1
			w2 += A2
		}

		w0Row += B0
		w1Row += B1
		w2Row += B2
	}
}

// shadeFragment combines the interpolated corner colors with the texel:
// texel·color + specular, alpha from texel and color.
func shadeFragment(t *pipeline.ScreenTriangle, sv *[3]pipeline.ScreenVertex, b0, b1, b2 float64) Color {
	col := pipeline.Color{
		R: b0*sv[0].Color.R + b1*sv[1].Color.R + b2*sv[2].Color.R,
		G: b0*sv[0].Color.G + b1*sv[1].Color.G + b2*sv[2].Color.G,
		B: b0*sv[0].Color.B + b1*sv[1].Color.B + b2*sv[2].Color.B,
		A: b0*sv[0].Color.A + b1*sv[1].Color.A + b2*sv[2].Color.A,
	}
	spec := pipeline.Color{
		R: b0*sv[0].Specular.R + b1*sv[1].Specular.R + b2*sv[2].Specular.R,
		G: b0*sv[0].Specular.G + b1*sv[1].Specular.G + b2*sv[2].Specular.G,
		B: b0*sv[0].Specular.B + b1*sv[1].Specular.B + b2*sv[2].Specular.B,
	}
	if t.Texture != nil {
		u := b0*sv[0].U + b1*sv[1].U + b2*sv[2].U
		v := b0*sv[0].V + b1*sv[1].V + b2*sv[2].V
		texel := pipeline.FromRGBA(t.Texture.Sample(u, v))
		a := texel.A * col.A
		col = texel.Mul(col)
		col.A = a
	}
	return col.Add(spec).ToRGBA()
}

// RenderLine draws a stroke segment with Bresenham's algorithm, stamping a
// brush of the line's weight at every step. Round caps stamp discs, the
// other caps squares. Depth and color are interpolated along the segment.
func (r *Rasterizer) RenderLine(l pipeline.ScreenLine) {
	r.Stats.Lines++
	if r.fb == nil {
		return
	}
	a, b := l.V[0], l.V[1]
	if !finite(a) || !finite(b) {
		return
	}
	// Only the part of the segment whose brush can touch the framebuffer
	// is stepped.
	m := float64(max(l.Weight, 1))/2 + 1
	a, b, ok := clipSegment(a, b, -m, -m, float64(r.fb.Width)+m, float64(r.fb.Height)+m)
	if !ok {
		return
	}
	x0, y0 := int(math.Floor(a.X)), int(math.Floor(a.Y))
	x1, y1 := int(math.Floor(b.X)), int(math.Floor(b.Y))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	steps := max(dx, -dy)

	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		z := a.Z + (b.Z-a.Z)*t
		c := a.Color.Lerp(b.Color, t).ToRGBA()
		r.stamp(x0, y0, z, c, l.Weight, l.Cap)

		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipSegment trims a-b to the rectangle [minX, maxX] x [minY, maxY] with
// the Liang-Barsky test. Attributes are interpolated at the cut points.
// ok is false when the segment misses the rectangle.
func clipSegment(a, b pipeline.ScreenVertex, minX, minY, maxX, maxY float64) (pipeline.ScreenVertex, pipeline.ScreenVertex, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{
		{-dx, a.X - minX},
		{dx, maxX - a.X},
		{-dy, a.Y - minY},
		{dy, maxY - a.Y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = min(t1, t)
		}
	}
	return lerpScreen(a, b, t0), lerpScreen(a, b, t1), true
}

func lerpScreen(a, b pipeline.ScreenVertex, t float64) pipeline.ScreenVertex {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	l := func(x, y float64) float64 { return x + (y-x)*t }
	v := pipeline.ScreenVertex{
		Color:    a.Color.Lerp(b.Color, t),
		Specular: a.Specular.Lerp(b.Specular, t),
	}
	v.X, v.Y, v.Z, v.W = l(a.X, b.X), l(a.Y, b.Y), l(a.Z, b.Z), l(a.W, b.W)
	v.U, v.V = l(a.U, b.U), l(a.V, b.V)
	return v
}

// stamp paints the brush centered on (cx, cy).
func (r *Rasterizer) stamp(cx, cy int, z float64, c Color, weight int, capStyle pipeline.StrokeCap) {
	if c.A == 0 {
		return
	}
	if weight <= 1 {
		r.plot(cx, cy, z, c)
		return
	}
	lo := -(weight - 1) / 2
	hi := lo + weight - 1
	radius := float64(weight) / 2
	off := 0.5 * float64(1-weight%2)
	for oy := lo; oy <= hi; oy++ {
		for ox := lo; ox <= hi; ox++ {
			if capStyle == pipeline.CapRound {
				fx := float64(ox) - off
				fy := float64(oy) - off
				if fx*fx+fy*fy > radius*radius {
					continue
				}
			}
			r.plot(cx+ox, cy+oy, z, c)
		}
	}
}

func (r *Rasterizer) plot(x, y int, z float64, c Color) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return
	}
	idx := y*r.Width() + x
	z -= lineDepthBias
	if z >= r.zbuffer[idx] {
		return
	}
	r.zbuffer[idx] = z
	r.fb.BlendPixel(x, y, c)
	r.Stats.Pixels++
}

func finite(v pipeline.ScreenVertex) bool {
	return !math.IsNaN(v.X+v.Y+v.Z) && !math.IsInf(v.X+v.Y+v.Z, 0)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
