package scene

import (
	"errors"
	"fmt"
	"image"
	"math"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/processing/processing-sub019/pkg/math3d"
	"github.com/processing/processing-sub019/pkg/models"
	"github.com/processing/processing-sub019/pkg/pipeline"
	"github.com/processing/processing-sub019/pkg/render"
)

// Shape is one drawable entry. Kind selects which fields apply:
//
//	box     size
//	sphere  radius, detail
//	shape   primitive, vertices, close
//	model   path, fit
type Shape struct {
	Kind string `yaml:"kind"`

	Size   Vec3    `yaml:"size"`
	Radius float64 `yaml:"radius"`
	Detail int     `yaml:"detail"`

	Primitive string      `yaml:"primitive"`
	Vertices  [][]float64 `yaml:"vertices"` // x, y, z[, u, v]
	Close     bool        `yaml:"close"`

	Path string  `yaml:"path"`
	Fit  float64 `yaml:"fit"`

	Translate Vec3  `yaml:"translate"`
	Rotate    Vec3  `yaml:"rotate"` // degrees about x, then y, then z
	Scale     *Vec3 `yaml:"scale,omitempty"`

	Material Material `yaml:",inline"`

	mesh    *models.Mesh
	texture pipeline.Texture
}

// Material holds per-shape surface settings. Unset fields keep the
// graphics defaults.
type Material struct {
	Fill         *Color   `yaml:"fill,omitempty"`
	NoFill       bool     `yaml:"no_fill"`
	Stroke       *Color   `yaml:"stroke,omitempty"`
	NoStroke     bool     `yaml:"no_stroke"`
	StrokeWeight float64  `yaml:"stroke_weight"`
	Ambient      *Color   `yaml:"ambient,omitempty"`
	Specular     *Color   `yaml:"specular,omitempty"`
	Emissive     *Color   `yaml:"emissive,omitempty"`
	Shininess    *float64 `yaml:"shininess,omitempty"`
	Texture      string   `yaml:"texture"`
}

func (sh *Shape) setDefaults() {
	if sh.Kind == "shape" && sh.Primitive == "" {
		sh.Primitive = pipeline.Polygon.String()
	}
	if sh.Kind == "model" && sh.Fit == 0 {
		sh.Fit = 100
	}
}

func (sh *Shape) validate() error {
	switch sh.Kind {
	case "box":
		if sh.Size == (Vec3{}) {
			return errors.New("box needs a size")
		}
	case "sphere":
		if sh.Radius <= 0 {
			return errors.New("sphere needs a positive radius")
		}
	case "shape":
		if _, ok := pipeline.ParseShapeKind(sh.Primitive); !ok {
			return fmt.Errorf("unknown primitive %q", sh.Primitive)
		}
		for i, v := range sh.Vertices {
			if len(v) != 3 && len(v) != 5 {
				return fmt.Errorf("vertex %d: want 3 or 5 numbers, got %d", i, len(v))
			}
		}
	case "model":
		if sh.Path == "" {
			return errors.New("model needs a path")
		}
	default:
		return fmt.Errorf("unknown kind %q", sh.Kind)
	}
	return nil
}

func (sh *Shape) resolve(dir string) error {
	if sh.Kind == "model" && sh.mesh == nil {
		mesh, err := models.LoadGLB(join(dir, sh.Path))
		if err != nil {
			return err
		}
		mesh.Fit(sh.Fit)
		mesh.BindTextures(func(img image.Image) pipeline.Texture {
			return render.TextureFromImage(img)
		})
		sh.mesh = mesh
	}
	if sh.Material.Texture != "" && sh.texture == nil {
		tex, err := render.LoadTexture(join(dir, sh.Material.Texture))
		if err != nil {
			return err
		}
		sh.texture = tex
	}
	return nil
}

// SetMesh supplies an already loaded mesh for a model shape.
func (sh *Shape) SetMesh(m *models.Mesh) { sh.mesh = m }

// Mesh returns the loaded mesh of a model shape, or nil.
func (sh *Shape) Mesh() *models.Mesh { return sh.mesh }

// SetTexture supplies an already loaded texture.
func (sh *Shape) SetTexture(t pipeline.Texture) { sh.texture = t }

func join(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return path
	}
	return filepath.Join(dir, path)
}

func (sh *Shape) draw(g *pipeline.Graphics) error {
	if err := g.PushMatrix(); err != nil {
		return err
	}
	sh.transform(g)
	sh.Material.apply(g)
	if sh.texture != nil {
		g.Texture(sh.texture)
	} else {
		g.NoTexture()
	}

	var err error
	switch sh.Kind {
	case "box":
		err = g.Box(sh.Size[0], sh.Size[1], sh.Size[2])
	case "sphere":
		if sh.Detail > 0 {
			g.SphereDetail(sh.Detail)
		}
		err = g.Sphere(sh.Radius)
	case "shape":
		err = sh.drawVertices(g)
	case "model":
		if sh.mesh == nil {
			err = fmt.Errorf("model %s not loaded", sh.Path)
		} else {
			err = sh.mesh.Draw(g)
		}
	}
	if perr := g.PopMatrix(); err == nil {
		err = perr
	}
	return err
}

func (sh *Shape) transform(g *pipeline.Graphics) {
	t := sh.Translate
	g.Translate(t[0], t[1], t[2])
	if r := sh.Rotate; r != (Vec3{}) {
		g.RotateX(radians(r[0]))
		g.RotateY(radians(r[1]))
		g.RotateZ(radians(r[2]))
	}
	if s := sh.Scale; s != nil {
		g.Scale(s[0], s[1], s[2])
	}
}

func (sh *Shape) drawVertices(g *pipeline.Graphics) error {
	kind, _ := pipeline.ParseShapeKind(sh.Primitive)
	if err := g.BeginShape(kind); err != nil {
		return err
	}
	for _, v := range sh.Vertices {
		if len(v) == 5 {
			g.VertexUV(v[0], v[1], v[2], v[3], v[4])
		} else {
			g.Vertex(v[0], v[1], v[2])
		}
	}
	mode := pipeline.Open
	if sh.Close {
		mode = pipeline.Close
	}
	return g.EndShape(mode)
}

func (m *Material) apply(g *pipeline.Graphics) {
	switch {
	case m.NoFill:
		g.NoFill()
	case m.Fill != nil:
		g.Fill(m.Fill.Pipeline())
	}
	switch {
	case m.NoStroke:
		g.NoStroke()
	case m.Stroke != nil:
		g.Stroke(m.Stroke.Pipeline())
	}
	if m.StrokeWeight > 0 {
		g.StrokeWeight(m.StrokeWeight)
	}
	if m.Ambient != nil {
		g.Ambient(m.Ambient.Pipeline())
	}
	if m.Specular != nil {
		g.Specular(m.Specular.Pipeline())
	}
	if m.Emissive != nil {
		g.Emissive(m.Emissive.Pipeline())
	}
	if m.Shininess != nil {
		g.Shininess(*m.Shininess)
	}
}

// Vec3 is an x, y, z triple written as a YAML sequence.
type Vec3 [3]float64

// UnmarshalYAML implements yaml.Unmarshaler for Vec3.
func (v *Vec3) UnmarshalYAML(value *yaml.Node) error {
	var s []float64
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("invalid vector at line %d: %w", value.Line, err)
	}
	if len(s) != 3 {
		return fmt.Errorf("invalid vector at line %d: want 3 numbers, got %d", value.Line, len(s))
	}
	*v = Vec3{s[0], s[1], s[2]}
	return nil
}

// Vec converts to the math3d type.
func (v Vec3) Vec() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
