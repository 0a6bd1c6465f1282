package pipeline

import "github.com/processing/processing-sub019/pkg/math3d"

// viewToScreen projects a camera-space position to pixels. Screen y grows
// with ndc y; with DefaultCamera that matches model y growing downwards.
func (g *Graphics) viewToScreen(view math3d.Vec4) (math3d.Vec3, float64) {
	clip := g.projection.MulVec4(view)
	ndc := clip.PerspectiveDivide()
	return math3d.Vec3{
		X: float64(g.width) * (1 + ndc.X) / 2,
		Y: float64(g.height) * (1 + ndc.Y) / 2,
		Z: (1 + ndc.Z) / 2,
	}, clip.W
}

// Project returns the screen position of a model-space point under the
// current modelview and projection. No pipeline state changes.
func (g *Graphics) Project(p math3d.Vec3) math3d.Vec3 {
	s, _ := g.viewToScreen(g.modelview.Forward.MulVec4(math3d.V4FromV3(p, 1)))
	return s
}

// ScreenX returns the screen x of a model-space point.
func (g *Graphics) ScreenX(x, y, z float64) float64 { return g.Project(math3d.V3(x, y, z)).X }

// ScreenY returns the screen y of a model-space point.
func (g *Graphics) ScreenY(x, y, z float64) float64 { return g.Project(math3d.V3(x, y, z)).Y }

// ScreenZ returns the depth of a model-space point in 0..1.
func (g *Graphics) ScreenZ(x, y, z float64) float64 { return g.Project(math3d.V3(x, y, z)).Z }

// ModelCoords returns the world position of a model-space point: the point
// through the modelview and then back out through the inverse camera.
func (g *Graphics) ModelCoords(p math3d.Vec3) math3d.Vec3 {
	view := g.modelview.Forward.MulVec3(p)
	return g.camera.Reverse.MulVec3(view)
}
