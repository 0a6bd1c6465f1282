package pipeline

import (
	"fmt"
	"math"

	"github.com/processing/processing-sub019/pkg/math3d"
)

// LightType tags a Light.
type LightType int

const (
	LightAmbient LightType = iota
	LightDirectional
	LightPoint
	LightSpot
)

func (t LightType) String() string {
	switch t {
	case LightAmbient:
		return "ambient"
	case LightDirectional:
		return "directional"
	case LightPoint:
		return "point"
	case LightSpot:
		return "spot"
	}
	return "unknown"
}

// Light is one declared light. Position and Direction are in camera space,
// captured when the light was declared; later matrix changes do not move it.
type Light struct {
	Type          LightType
	Position      math3d.Vec3
	Direction     math3d.Vec3 // normalized
	Diffuse       Color
	Specular      Color
	Falloff       [3]float64 // constant, linear, quadratic
	SpotAngle     float64
	SpotCos       float64
	Concentration float64
}

func (l *Light) constantFalloff() bool {
	return l.Falloff[1] == 0 && l.Falloff[2] == 0
}

// DeclaredLights returns the lights declared in the current frame.
func (g *Graphics) DeclaredLights() []Light { return g.lights }

// EnableLighting turns lighting on without declaring any light. With no
// lights every lit vertex takes its emissive color.
func (g *Graphics) EnableLighting() {
	g.lighting = true
}

// NoLights turns lighting off and forgets every declared light.
func (g *Graphics) NoLights() {
	g.lighting = false
	g.lights = g.lights[:0]
}

// Lights replaces the declared lights with a 50% gray ambient light and a
// 50% gray directional light shining along -z.
func (g *Graphics) Lights() error {
	g.lights = g.lights[:0]
	g.LightFalloff(1, 0, 0)
	g.LightSpecular(Color{})
	if err := g.AmbientLight(Gray(0.5), math3d.Zero3()); err != nil {
		return err
	}
	return g.DirectionalLight(Gray(0.5), math3d.V3(0, 0, -1))
}

// LightFalloff sets the attenuation of lights declared afterwards.
func (g *Graphics) LightFalloff(constant, linear, quadratic float64) {
	g.falloff = [3]float64{constant, linear, quadratic}
}

// LightSpecular sets the specular color of lights declared afterwards.
func (g *Graphics) LightSpecular(c Color) {
	g.lightSpecular = c
}

// AmbientLight declares an ambient light. The position only matters with a
// non-constant falloff.
func (g *Graphics) AmbientLight(c Color, pos math3d.Vec3) error {
	return g.addLight(Light{
		Type:     LightAmbient,
		Position: g.modelview.Forward.MulVec3(pos),
		Diffuse:  c,
	})
}

// DirectionalLight declares a light shining along dir.
func (g *Graphics) DirectionalLight(c Color, dir math3d.Vec3) error {
	return g.addLight(Light{
		Type:      LightDirectional,
		Direction: g.cameraDirection(dir),
		Diffuse:   c,
	})
}

// PointLight declares an omnidirectional light at pos.
func (g *Graphics) PointLight(c Color, pos math3d.Vec3) error {
	return g.addLight(Light{
		Type:     LightPoint,
		Position: g.modelview.Forward.MulVec3(pos),
		Diffuse:  c,
	})
}

// SpotLight declares a cone light at pos shining along dir. angle is the
// cone half-angle in radians; concentration sharpens the falloff towards
// the cone axis.
func (g *Graphics) SpotLight(c Color, pos, dir math3d.Vec3, angle, concentration float64) error {
	return g.addLight(Light{
		Type:          LightSpot,
		Position:      g.modelview.Forward.MulVec3(pos),
		Direction:     g.cameraDirection(dir),
		Diffuse:       c,
		SpotAngle:     angle,
		SpotCos:       math.Cos(angle),
		Concentration: concentration,
	})
}

// cameraDirection carries a model-space direction into camera space with the
// inverse transpose of the modelview.
func (g *Graphics) cameraDirection(dir math3d.Vec3) math3d.Vec3 {
	return g.modelview.Reverse.MulVec3DirT(dir).Normalize()
}

func (g *Graphics) addLight(l Light) error {
	if len(g.lights) >= g.opts.maxLights {
		return fmt.Errorf("%w: limit is %d", ErrTooManyLights, g.opts.maxLights)
	}
	l.Falloff = g.falloff
	l.Specular = g.lightSpecular
	g.lights = append(g.lights, l)
	g.lighting = true

	if l.Type == LightPoint || l.Type == LightSpot || !l.constantFalloff() {
		g.positionDependent = true
	}
	if !l.Specular.IsBlack() {
		g.specularLight = true
		g.markSpecularPair()
	}
	return nil
}

// markSpecularPair flags position-dependent lighting once a specular light
// and a specular material are both declared.
func (g *Graphics) markSpecularPair() {
	if g.specularLight && !g.material.specular.IsBlack() {
		g.positionDependent = true
	}
}
