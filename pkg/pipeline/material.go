package pipeline

import "reflect"

// material is the current fill, stroke and surface state baked into every
// vertex at Vertex time.
type material struct {
	fill        Color
	fillEnabled bool
	ambient     Color
	ambientSet  bool // false while ambient tracks fill
	specular    Color
	emissive    Color
	shininess   float64

	stroke        Color
	strokeEnabled bool
	strokeWeight  float64
	strokeCap     StrokeCap
	strokeJoin    StrokeJoin
}

func defaultMaterial() material {
	return material{
		fill:          White,
		fillEnabled:   true,
		ambient:       White,
		specular:      Color{A: 1},
		emissive:      Color{A: 1},
		shininess:     1,
		stroke:        Black,
		strokeEnabled: true,
		strokeWeight:  1,
	}
}

// Fill sets the diffuse material color and enables filling. Until Ambient
// is called the ambient material follows the fill.
func (g *Graphics) Fill(c Color) {
	g.material.fill = c
	g.material.fillEnabled = true
	if !g.material.ambientSet {
		g.material.ambient = c
	}
}

// NoFill disables triangle emission for untextured shapes.
func (g *Graphics) NoFill() {
	g.material.fillEnabled = false
}

// Ambient sets the ambient material color.
func (g *Graphics) Ambient(c Color) {
	g.material.ambient = c
	g.material.ambientSet = true
}

// Specular sets the specular material color.
func (g *Graphics) Specular(c Color) {
	g.material.specular = c
	g.markSpecularPair()
}

// Emissive sets the emissive material color.
func (g *Graphics) Emissive(c Color) {
	g.material.emissive = c
}

// Shininess sets the specular exponent.
func (g *Graphics) Shininess(s float64) {
	g.material.shininess = s
}

// Stroke sets the stroke color and enables line emission.
func (g *Graphics) Stroke(c Color) {
	g.material.stroke = c
	g.material.strokeEnabled = true
}

// NoStroke disables line emission.
func (g *Graphics) NoStroke() {
	g.material.strokeEnabled = false
}

// StrokeWeight sets the stroke width in pixels.
func (g *Graphics) StrokeWeight(w float64) {
	g.material.strokeWeight = w
}

// StrokeCap sets the cap style of subsequent lines.
func (g *Graphics) StrokeCap(c StrokeCap) {
	g.material.strokeCap = c
}

// StrokeJoin sets the join style of subsequent lines.
func (g *Graphics) StrokeJoin(j StrokeJoin) {
	g.material.strokeJoin = j
}

// Texture binds t for subsequent shapes. Textures are registered in a slot
// table that is cleared by BeginFrame. Pointer textures bound again reuse
// their slot; any other value takes a new slot on every call.
func (g *Graphics) Texture(t Texture) {
	if t == nil {
		g.texture = -1
		return
	}
	if reflect.ValueOf(t).Kind() == reflect.Pointer {
		for i, have := range g.textures {
			if have == t {
				g.texture = i
				return
			}
		}
	}
	g.textures = append(g.textures, t)
	g.texture = len(g.textures) - 1
}

// NoTexture unbinds the current texture.
func (g *Graphics) NoTexture() {
	g.texture = -1
}

// TextureMode sets the unit of the u, v arguments of VertexUV.
func (g *Graphics) TextureMode(m TextureMode) {
	g.textureMode = m
}
