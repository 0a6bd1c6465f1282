package pipeline

import (
	"math"

	"github.com/processing/processing-sub019/pkg/math3d"
)

// contribution holds the light sums at one point before they are combined
// with a material.
type contribution struct {
	ambient  Color
	diffuse  Color
	specular Color
}

// lightAt sums every light's contribution at camera-space point p with unit
// normal n.
func (g *Graphics) lightAt(p, n math3d.Vec3, shininess float64) contribution {
	var sum contribution
	for i := range g.lights {
		l := &g.lights[i]

		falloff := 1.0
		if l.Type != LightDirectional && !l.constantFalloff() {
			d := l.Position.Distance(p)
			falloff = 1 / (l.Falloff[0] + l.Falloff[1]*d + l.Falloff[2]*d*d)
		}

		if l.Type == LightAmbient {
			sum.ambient = sum.ambient.Add(l.Diffuse.Scale(falloff))
			continue
		}

		var dir math3d.Vec3
		spot := 1.0
		switch l.Type {
		case LightDirectional:
			dir = l.Direction.Negate()
		case LightPoint:
			dir = l.Position.Sub(p).Normalize()
		case LightSpot:
			dir = l.Position.Sub(p).Normalize()
			cos := -dir.Dot(l.Direction)
			if cos <= l.SpotCos {
				continue
			}
			spot = math.Pow(cos, l.Concentration)
		}

		ndl := n.Dot(dir)
		if ndl <= 0 {
			continue
		}
		sum.diffuse = sum.diffuse.Add(l.Diffuse.Scale(ndl * falloff * spot))

		if !l.Specular.IsBlack() {
			r := n.Scale(2 * ndl).Sub(dir)
			view := p.Negate().Normalize()
			if rv := r.Dot(view); rv > 0 {
				sum.specular = sum.specular.Add(l.Specular.Scale(math.Pow(rv, shininess) * falloff * spot))
			}
		}
	}
	return sum
}

// shade combines light sums with the material of v.
func (c contribution) shade(v *Vertex) CornerColor {
	diffuse := v.Emissive.Add(v.Ambient.Mul(c.ambient)).Add(v.Fill.Mul(c.diffuse)).Clamp()
	diffuse.A = v.Fill.A
	specular := v.Specular.Mul(c.specular).Clamp()
	specular.A = v.Fill.A
	return CornerColor{Diffuse: diffuse, Specular: specular}
}

// cameraNormal carries a model-space normal into camera space.
func (g *Graphics) cameraNormal(n math3d.Vec3) math3d.Vec3 {
	return g.modelview.Reverse.MulVec3DirT(n).Normalize()
}

// selectTier picks the cheapest lighting granularity that is exact for the
// shape.
func (g *Graphics) selectTier(ctx *ShapeAssemblyContext) LightingTier {
	if g.opts.tier != 0 {
		return g.opts.tier
	}
	switch {
	case ctx.NormalMode == NormalVertex:
		return TierPerVertex
	case ctx.NormalMode == NormalShape && !g.positionDependent:
		return TierPerShape
	}
	return TierPerTriangle
}

// light writes the corner colors of the shape's triangles.
func (g *Graphics) light(ctx *ShapeAssemblyContext) {
	tris := g.triangles.Items()[ctx.FirstTriangle:]
	if !g.lighting {
		g.lastTier = 0
		for i := range tris {
			for k, vi := range tris[i].V {
				tris[i].Corners[k] = CornerColor{Diffuse: g.vertices.At(vi).Fill}
			}
		}
		return
	}

	tier := g.selectTier(ctx)
	g.lastTier = tier
	switch tier {
	case TierPerVertex:
		for i := range tris {
			for k, vi := range tris[i].V {
				v := g.vertices.At(vi)
				if !v.BeenLit {
					c := g.lightAt(v.View.Vec3(), g.cameraNormal(v.Normal), v.Shininess).shade(v)
					v.LitDiffuse, v.LitSpecular = c.Diffuse, c.Specular
					v.BeenLit = true
				}
				tris[i].Corners[k] = CornerColor{Diffuse: v.LitDiffuse, Specular: v.LitSpecular}
			}
		}

	case TierPerShape:
		sum := g.lightAt(math3d.Zero3(), g.cameraNormal(ctx.Normal), g.material.shininess)
		for i := range tris {
			for k, vi := range tris[i].V {
				tris[i].Corners[k] = sum.shade(g.vertices.At(vi))
			}
		}

	default:
		var shapeNormal math3d.Vec3
		if ctx.NormalMode == NormalShape {
			shapeNormal = g.cameraNormal(ctx.Normal)
		}
		for i := range tris {
			t := &tris[i]
			n := shapeNormal
			if ctx.NormalMode != NormalShape {
				n = g.faceNormal(t)
			}
			if g.positionDependent {
				for k, vi := range t.V {
					v := g.vertices.At(vi)
					t.Corners[k] = g.lightAt(v.View.Vec3(), n, v.Shininess).shade(v)
				}
				continue
			}
			v0 := g.vertices.At(t.V[0])
			sum := g.lightAt(v0.View.Vec3(), n, v0.Shininess)
			for k, vi := range t.V {
				t.Corners[k] = sum.shade(g.vertices.At(vi))
			}
		}
	}
}

// faceNormal is the unit camera-space normal of t from its first two edges.
func (g *Graphics) faceNormal(t *Triangle) math3d.Vec3 {
	a := g.vertices.At(t.V[0]).View.Vec3()
	b := g.vertices.At(t.V[1]).View.Vec3()
	c := g.vertices.At(t.V[2]).View.Vec3()
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}
