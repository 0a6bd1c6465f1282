package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/processing/processing-sub019/pkg/math3d"
)

// litQuad draws a unit quad facing the default camera, optionally with a
// single shape normal, and returns the corner colors of its triangles.
func litQuad(t *testing.T, g *Graphics, shapeNormal bool) [][3]CornerColor {
	t.Helper()
	g.NoStroke()
	if err := g.BeginShape(Quads); err != nil {
		t.Fatal(err)
	}
	if shapeNormal {
		g.Normal(0, 0, 1)
	}
	for _, p := range unitQuad(0) {
		g.Vertex(p.X*20+40, p.Y*20+40, p.Z)
	}
	if err := g.EndShape(Close); err != nil {
		t.Fatal(err)
	}
	var out [][3]CornerColor
	for _, tri := range g.triangles.Items() {
		out = append(out, tri.Corners)
	}
	return out
}

func TestLightingDisabledPassesFill(t *testing.T) {
	g, _ := newTestGraphics()
	fill := RGBA(0.2, 0.4, 0.6, 0.5)
	g.Fill(fill)
	for _, corners := range litQuad(t, g, false) {
		for _, c := range corners {
			if !colorApprox(c.Diffuse, fill) || !c.Specular.IsBlack() {
				t.Errorf("corner = %+v, want fill %v and no specular", c, fill)
			}
		}
	}
}

func TestNoLightsGivesEmissive(t *testing.T) {
	g, _ := newTestGraphics()
	g.EnableLighting()
	g.Fill(RGBA(0.9, 0.9, 0.9, 0.8))
	g.Emissive(RGB(0.2, 0.3, 0.4))
	g.Specular(RGB(1, 1, 1))

	want := RGBA(0.2, 0.3, 0.4, 0.8)
	for _, corners := range litQuad(t, g, false) {
		for _, c := range corners {
			if !colorApprox(c.Diffuse, want) {
				t.Errorf("diffuse = %v, want emissive %v", c.Diffuse, want)
			}
			if !c.Specular.IsBlack() {
				t.Errorf("specular = %v, want black", c.Specular)
			}
		}
	}
}

func TestDirectionalLightFacingCamera(t *testing.T) {
	tests := []struct {
		name  string
		dir   math3d.Vec3
		level float64
	}{
		{"head on", math3d.V3(0, 0, -1), 0.5},
		{"from behind", math3d.V3(0, 0, 1), 0},
		{"grazing 60 degrees", math3d.V3(0, math.Sin(math.Pi/3), -math.Cos(math.Pi/3)), 0.25},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := newTestGraphics()
			if err := g.DirectionalLight(Gray(0.5), tc.dir); err != nil {
				t.Fatal(err)
			}
			want := Gray(tc.level)
			for _, corners := range litQuad(t, g, false) {
				for _, c := range corners {
					if !colorApprox(c.Diffuse, want) {
						t.Errorf("diffuse = %v, want %v", c.Diffuse, want)
					}
				}
			}
		})
	}
}

func TestDefaultLights(t *testing.T) {
	g, _ := newTestGraphics()
	if err := g.Lights(); err != nil {
		t.Fatal(err)
	}
	if len(g.DeclaredLights()) != 2 {
		t.Fatalf("lights = %d, want 2", len(g.DeclaredLights()))
	}
	// 0.5 ambient + 0.5 head-on directional on a white surface.
	for _, corners := range litQuad(t, g, false) {
		for _, c := range corners {
			if !colorApprox(c.Diffuse, White) {
				t.Errorf("diffuse = %v, want white", c.Diffuse)
			}
		}
	}
}

func TestPointLightFalloff(t *testing.T) {
	g, _ := newTestGraphics()
	g.LightFalloff(1, 0, 0.01)
	if err := g.PointLight(White, math3d.V3(40, 40, 10)); err != nil {
		t.Fatal(err)
	}
	litQuad(t, g, false)

	if g.lastTier != TierPerTriangle {
		t.Errorf("tier = %v, want per_triangle", g.lastTier)
	}
	// Corner (40, 40, 0) is 10 units straight below the light: falloff 1/2.
	tri := g.triangles.At(0)
	if !colorApprox(tri.Corners[0].Diffuse, Gray(0.5)) {
		t.Errorf("corner under light = %v, want gray 0.5", tri.Corners[0].Diffuse)
	}
	if colorApprox(tri.Corners[1].Diffuse, tri.Corners[0].Diffuse) {
		t.Error("point light should vary across corners")
	}
}

func TestSpotLightCone(t *testing.T) {
	g, _ := newTestGraphics()
	// Narrow cone aimed at (40, 40); corner (60, 60) is outside it.
	if err := g.SpotLight(White, math3d.V3(40, 40, 10), math3d.V3(0, 0, -1), math.Pi/16, 1); err != nil {
		t.Fatal(err)
	}
	litQuad(t, g, false)

	tri := g.triangles.At(0)
	if !colorApprox(tri.Corners[0].Diffuse, White) {
		t.Errorf("corner on axis = %v, want white", tri.Corners[0].Diffuse)
	}
	if !colorApprox(tri.Corners[2].Diffuse, Black) {
		t.Errorf("corner outside cone = %v, want black", tri.Corners[2].Diffuse)
	}
}

func TestSpecularHighlight(t *testing.T) {
	g, _ := newTestGraphics()
	g.Fill(Black)
	g.Specular(White)
	g.Shininess(1)
	g.LightSpecular(White)
	if err := g.DirectionalLight(Black, math3d.V3(0, 0, -1)); err != nil {
		t.Fatal(err)
	}
	if !g.positionDependent {
		t.Fatal("specular light with specular material must be position dependent")
	}
	litQuad(t, g, false)
	for _, tri := range g.triangles.Items() {
		for _, c := range tri.Corners {
			if c.Specular.R <= 0 || c.Specular.R > 1 {
				t.Errorf("specular = %v, want a highlight in (0, 1]", c.Specular)
			}
		}
	}
}

func TestTooManyLights(t *testing.T) {
	g, _ := newTestGraphics(WithMaxLights(2))
	if err := g.Lights(); err != nil {
		t.Fatal(err)
	}
	err := g.PointLight(White, math3d.Zero3())
	if !errors.Is(err, ErrTooManyLights) {
		t.Errorf("third light: got %v, want ErrTooManyLights", err)
	}
	g.BeginFrame()
	if len(g.DeclaredLights()) != 0 {
		t.Error("BeginFrame must clear lights")
	}
}

func TestPositionDependence(t *testing.T) {
	tests := []struct {
		name    string
		declare func(g *Graphics)
		want    bool
	}{
		{"directional", func(g *Graphics) { _ = g.DirectionalLight(White, math3d.V3(0, 0, -1)) }, false},
		{"ambient", func(g *Graphics) { _ = g.AmbientLight(White, math3d.Zero3()) }, false},
		{"ambient with falloff", func(g *Graphics) {
			g.LightFalloff(1, 0.1, 0)
			_ = g.AmbientLight(White, math3d.Zero3())
		}, true},
		{"point", func(g *Graphics) { _ = g.PointLight(White, math3d.Zero3()) }, true},
		{"spot", func(g *Graphics) {
			_ = g.SpotLight(White, math3d.Zero3(), math3d.V3(0, 0, -1), 1, 1)
		}, true},
		{"specular light only", func(g *Graphics) {
			g.LightSpecular(White)
			_ = g.DirectionalLight(White, math3d.V3(0, 0, -1))
		}, false},
		{"specular material after light", func(g *Graphics) {
			g.LightSpecular(White)
			_ = g.DirectionalLight(White, math3d.V3(0, 0, -1))
			g.Specular(White)
		}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := newTestGraphics()
			tc.declare(g)
			if g.positionDependent != tc.want {
				t.Errorf("position dependent = %v, want %v", g.positionDependent, tc.want)
			}
			g.BeginFrame()
			if g.positionDependent {
				t.Error("BeginFrame must reset position dependence")
			}
		})
	}
}

func TestTierSelection(t *testing.T) {
	tests := []struct {
		name    string
		normals int
		point   bool
		want    LightingTier
	}{
		{"auto normals", 0, false, TierPerTriangle},
		{"shape normal", 1, false, TierPerShape},
		{"shape normal with point light", 1, true, TierPerTriangle},
		{"vertex normals", 2, false, TierPerVertex},
		{"vertex normals with point light", 2, true, TierPerVertex},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := newTestGraphics()
			if tc.point {
				_ = g.PointLight(White, math3d.V3(0, 0, 100))
			} else {
				_ = g.DirectionalLight(White, math3d.V3(0, 0, -1))
			}
			if err := g.BeginShape(Triangles); err != nil {
				t.Fatal(err)
			}
			for i, p := range grid(3) {
				if i < tc.normals {
					g.Normal(0, 0, 1)
				}
				g.Vertex(p.X, p.Y, p.Z)
			}
			if err := g.EndShape(Open); err != nil {
				t.Fatal(err)
			}
			if g.lastTier != tc.want {
				t.Errorf("tier = %v, want %v", g.lastTier, tc.want)
			}
		})
	}
}

func TestCostTierEquivalence(t *testing.T) {
	run := func(force LightingTier) ([][3]CornerColor, LightingTier) {
		g, _ := newTestGraphics(withLightingTier(force))
		g.Fill(RGB(0.8, 0.6, 0.4))
		g.Ambient(RGB(0.3, 0.3, 0.3))
		_ = g.AmbientLight(Gray(0.2), math3d.Zero3())
		_ = g.DirectionalLight(RGB(0.7, 0.5, 0.9), math3d.V3(0.3, -0.2, -1))
		return litQuad(t, g, true), g.lastTier
	}

	fast, tier := run(0)
	if tier != TierPerShape {
		t.Fatalf("tier = %v, want per_shape", tier)
	}
	slow, tier := run(TierPerTriangle)
	if tier != TierPerTriangle {
		t.Fatalf("forced tier = %v, want per_triangle", tier)
	}
	if len(fast) != len(slow) {
		t.Fatalf("triangle counts differ: %d vs %d", len(fast), len(slow))
	}
	for i := range fast {
		if fast[i] != slow[i] {
			t.Errorf("triangle %d: per-shape %+v != per-triangle %+v", i, fast[i], slow[i])
		}
	}
}

func TestPerVertexLitOnce(t *testing.T) {
	g, _ := newTestGraphics()
	_ = g.DirectionalLight(White, math3d.V3(0, 0, -1))
	g.NoStroke()
	if err := g.BeginShape(TriangleFan); err != nil {
		t.Fatal(err)
	}
	for i, p := range grid(5) {
		g.Normal(0, float64(i)*0.1, 1)
		g.Vertex(p.X, p.Y, p.Z)
	}
	if err := g.EndShape(Close); err != nil {
		t.Fatal(err)
	}
	if g.lastTier != TierPerVertex {
		t.Fatalf("tier = %v, want per_vertex", g.lastTier)
	}
	hub := g.vertices.At(0)
	if !hub.BeenLit {
		t.Fatal("shared vertex not marked lit")
	}
	for i, tri := range g.triangles.Items() {
		if tri.Corners[0].Diffuse != hub.LitDiffuse {
			t.Errorf("triangle %d hub color %v, want %v", i, tri.Corners[0].Diffuse, hub.LitDiffuse)
		}
	}
}

func BenchmarkLightingPerTriangle(b *testing.B) {
	g := New(100, 100, nil)
	g.BeginFrame()
	g.NoStroke()
	_ = g.PointLight(White, math3d.V3(50, 50, 50))
	_ = g.DirectionalLight(Gray(0.5), math3d.V3(0, 0, -1))
	pts := grid(64)
	for b.Loop() {
		_ = g.BeginShape(TriangleStrip)
		for _, p := range pts {
			g.Vertex(p.X, p.Y, p.Z)
		}
		_ = g.EndShape(Open)
	}
}
