package pipeline

import "image/color"

// ScreenVertex is a fully processed vertex: position already divided into
// pixels, colors final.
type ScreenVertex struct {
	X, Y, Z  float64 // pixels; Z in 0..1, smaller is nearer
	W        float64 // clip-space w
	Color    Color
	Specular Color
	U, V     float64
}

// ScreenTriangle is a triangle ready for scan conversion.
type ScreenTriangle struct {
	V       [3]ScreenVertex
	Texture Texture // nil when untextured
	ShapeID int
}

// ScreenLine is a stroke segment ready for scan conversion.
type ScreenLine struct {
	V      [2]ScreenVertex
	Weight int
	Cap    StrokeCap
	Join   StrokeJoin
	PathID int
}

// Rasterizer paints finished primitives.
type Rasterizer interface {
	RenderTriangle(t ScreenTriangle)
	RenderLine(l ScreenLine)
}

// Texture is an opaque image handle. The pipeline never decodes images.
type Texture interface {
	Size() (w, h int)
	Sample(u, v float64) color.RGBA
}

type discardRasterizer struct{}

func (discardRasterizer) RenderTriangle(ScreenTriangle) {}
func (discardRasterizer) RenderLine(ScreenLine)         {}
