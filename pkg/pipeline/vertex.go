package pipeline

import "github.com/processing/processing-sub019/pkg/math3d"

// Vertex is one record of the vertex buffer. View is valid after the camera
// transform step of EndShape, Screen and ClipW after projection, and the
// Lit fields after lighting.
type Vertex struct {
	Model  math3d.Vec3 // model-space position
	View   math3d.Vec4 // camera-space position
	Screen math3d.Vec3 // pixels, z in 0..1
	ClipW  float64     // clip-space w, for perspective-correct interpolation

	Fill      Color // diffuse material
	Ambient   Color
	Specular  Color
	Emissive  Color
	Shininess float64

	Stroke       Color
	StrokeWeight float64

	Normal math3d.Vec3 // model space
	U, V   float64     // normalized texture coordinates

	LitDiffuse  Color
	LitSpecular Color
	BeenLit     bool
}

// lerpVertex interpolates every attribute of a and b at t. The result has
// not been lit.
func lerpVertex(a, b Vertex, t float64) Vertex {
	return Vertex{
		Model:        a.Model.Lerp(b.Model, t),
		View:         a.View.Lerp(b.View, t),
		Screen:       a.Screen.Lerp(b.Screen, t),
		ClipW:        a.ClipW + (b.ClipW-a.ClipW)*t,
		Fill:         a.Fill.Lerp(b.Fill, t),
		Ambient:      a.Ambient.Lerp(b.Ambient, t),
		Specular:     a.Specular.Lerp(b.Specular, t),
		Emissive:     a.Emissive.Lerp(b.Emissive, t),
		Shininess:    a.Shininess + (b.Shininess-a.Shininess)*t,
		Stroke:       a.Stroke.Lerp(b.Stroke, t),
		StrokeWeight: a.StrokeWeight + (b.StrokeWeight-a.StrokeWeight)*t,
		Normal:       a.Normal.Lerp(b.Normal, t),
		U:            a.U + (b.U-a.U)*t,
		V:            a.V + (b.V-a.V)*t,
	}
}
