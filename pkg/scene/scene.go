// Package scene reads YAML scene descriptions and draws them through the
// geometry pipeline.
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/processing/processing-sub019/pkg/pipeline"
)

// ErrInvalidScene is wrapped by every validation failure.
var ErrInvalidScene = errors.New("invalid scene")

// Scene is a complete description of what to draw.
type Scene struct {
	Name       string      `yaml:"name"`
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	Background Color       `yaml:"background"`
	Mode       string      `yaml:"mode"` // immediate | deferred_sorted
	Camera     *Camera     `yaml:"camera,omitempty"`
	Projection *Projection `yaml:"projection,omitempty"`

	DefaultLights bool     `yaml:"default_lights"`
	Lights        []Light  `yaml:"lights"`
	Falloff       *Falloff `yaml:"falloff,omitempty"`
	LightSpecular *Color   `yaml:"light_specular,omitempty"`

	Shapes []Shape `yaml:"shapes"`
}

// Camera places the eye.
type Camera struct {
	Eye    Vec3 `yaml:"eye"`
	Center Vec3 `yaml:"center"`
	Up     Vec3 `yaml:"up"`
}

// Projection selects the projection matrix. Angles are in degrees.
type Projection struct {
	Kind   string  `yaml:"kind"` // perspective | ortho | frustum
	FOV    float64 `yaml:"fov"`
	Aspect float64 `yaml:"aspect"`
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Top    float64 `yaml:"top"`
}

// Light declares one light. Angle is in degrees.
type Light struct {
	Type          string  `yaml:"type"` // ambient | directional | point | spot
	Color         Color   `yaml:"color"`
	Position      Vec3    `yaml:"position"`
	Direction     Vec3    `yaml:"direction"`
	Angle         float64 `yaml:"angle"`
	Concentration float64 `yaml:"concentration"`
}

// Falloff holds the attenuation coefficients.
type Falloff struct {
	Constant  float64 `yaml:"constant"`
	Linear    float64 `yaml:"linear"`
	Quadratic float64 `yaml:"quadratic"`
}

// Load reads, validates and resolves a scene file. Relative model and
// texture paths are taken from the file's directory.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := s.Resolve(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scene without touching the filesystem.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	s.setDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ForModel returns a scene showing one model centered under the default
// lights, sized to fill most of the default frame.
func ForModel(path string) (*Scene, error) {
	s := &Scene{Name: filepath.Base(path), DefaultLights: true}
	s.setDefaults()
	s.Shapes = []Shape{{
		Kind:      "model",
		Path:      path,
		Fit:       0.8 * float64(min(s.Width, s.Height)),
		Translate: Vec3{float64(s.Width) / 2, float64(s.Height) / 2, 0},
		Material:  Material{NoStroke: true},
	}}
	if err := s.Resolve(""); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) setDefaults() {
	if s.Width == 0 {
		s.Width = 160
	}
	if s.Height == 0 {
		s.Height = 96
	}
	if s.Background == (Color{}) {
		s.Background = Color{0.12, 0.12, 0.16, 1}
	}
	if s.Mode == "" {
		s.Mode = pipeline.Immediate.String()
	}
	for i := range s.Shapes {
		s.Shapes[i].setDefaults()
	}
}

// Validate checks every enumerated field and count.
func (s *Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidScene, s.Width, s.Height)
	}
	if _, err := s.mode(); err != nil {
		return err
	}
	if p := s.Projection; p != nil {
		switch p.Kind {
		case "perspective", "ortho", "frustum":
		default:
			return fmt.Errorf("%w: unknown projection %q", ErrInvalidScene, p.Kind)
		}
	}
	for i, l := range s.Lights {
		switch l.Type {
		case "ambient", "directional", "point", "spot":
		default:
			return fmt.Errorf("%w: light %d: unknown type %q", ErrInvalidScene, i, l.Type)
		}
	}
	for i := range s.Shapes {
		if err := s.Shapes[i].validate(); err != nil {
			return fmt.Errorf("%w: shape %d: %w", ErrInvalidScene, i, err)
		}
	}
	return nil
}

func (s *Scene) mode() (pipeline.Mode, error) {
	switch s.Mode {
	case pipeline.Immediate.String():
		return pipeline.Immediate, nil
	case pipeline.DeferredSorted.String():
		return pipeline.DeferredSorted, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidScene, s.Mode)
}

// Options returns the pipeline options the scene asks for.
func (s *Scene) Options() []pipeline.Option {
	m, _ := s.mode()
	return []pipeline.Option{pipeline.WithMode(m)}
}

// Resolve loads the models and textures the shapes refer to.
func (s *Scene) Resolve(dir string) error {
	for i := range s.Shapes {
		if err := s.Shapes[i].resolve(dir); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return nil
}

// Apply installs the camera and projection. Call once after creating the
// graphics; both survive BeginFrame.
func (s *Scene) Apply(g *pipeline.Graphics) {
	if c := s.Camera; c != nil {
		g.Camera(c.Eye.Vec(), c.Center.Vec(), c.Up.Vec())
	}
	if p := s.Projection; p != nil {
		switch p.Kind {
		case "perspective":
			aspect := p.Aspect
			if aspect == 0 {
				aspect = float64(g.Width()) / float64(g.Height())
			}
			g.Perspective(radians(p.FOV), aspect, p.Near, p.Far)
		case "ortho":
			g.Ortho(p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
		case "frustum":
			g.Frustum(p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
		}
	}
}

// Draw declares the lights and draws every shape. Call between BeginFrame
// and EndFrame.
func (s *Scene) Draw(g *pipeline.Graphics) error {
	if err := s.DrawLights(g); err != nil {
		return err
	}
	return s.DrawShapes(g)
}

// DrawLights declares the scene's lights under the current transform.
func (s *Scene) DrawLights(g *pipeline.Graphics) error {
	if f := s.Falloff; f != nil {
		g.LightFalloff(f.Constant, f.Linear, f.Quadratic)
	}
	if c := s.LightSpecular; c != nil {
		g.LightSpecular(c.Pipeline())
	}
	if s.DefaultLights {
		if err := g.Lights(); err != nil {
			return err
		}
	}
	for i, l := range s.Lights {
		if err := declareLight(g, l); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}
	return nil
}

func declareLight(g *pipeline.Graphics, l Light) error {
	c := l.Color.Pipeline()
	switch l.Type {
	case "ambient":
		return g.AmbientLight(c, l.Position.Vec())
	case "directional":
		return g.DirectionalLight(c, l.Direction.Vec())
	case "point":
		return g.PointLight(c, l.Position.Vec())
	case "spot":
		return g.SpotLight(c, l.Position.Vec(), l.Direction.Vec(), radians(l.Angle), l.Concentration)
	}
	return fmt.Errorf("unknown light type %q", l.Type)
}

// DrawShapes draws every shape, each inside its own matrix push.
func (s *Scene) DrawShapes(g *pipeline.Graphics) error {
	for i := range s.Shapes {
		if err := s.Shapes[i].draw(g); err != nil {
			return fmt.Errorf("shape %d (%s): %w", i, s.Shapes[i].Kind, err)
		}
	}
	return nil
}

// Color is an RGBA color in 0..1. In YAML it may be a gray level, a
// "#rrggbb" or "#rrggbbaa" string, or a 3- or 4-element sequence.
type Color [4]float64

// UnmarshalYAML implements yaml.Unmarshaler for Color.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if strings.HasPrefix(value.Value, "#") {
			return c.parseHex(value.Value)
		}
		var v float64
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("invalid color %q: %w", value.Value, err)
		}
		*c = Color{v, v, v, 1}
		return nil
	case yaml.SequenceNode:
		var v []float64
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("invalid color: %w", err)
		}
		switch len(v) {
		case 3:
			*c = Color{v[0], v[1], v[2], 1}
		case 4:
			*c = Color{v[0], v[1], v[2], v[3]}
		default:
			return fmt.Errorf("invalid color: want 3 or 4 channels, got %d", len(v))
		}
		return nil
	}
	return fmt.Errorf("invalid color at line %d", value.Line)
}

func (c *Color) parseHex(s string) error {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(h) == 6 {
		n = n<<8 | 0xff
	}
	*c = Color{
		float64(n>>24&0xff) / 255,
		float64(n>>16&0xff) / 255,
		float64(n>>8&0xff) / 255,
		float64(n&0xff) / 255,
	}
	return nil
}

// Pipeline converts to the pipeline color type.
func (c Color) Pipeline() pipeline.Color {
	return pipeline.RGBA(c[0], c[1], c[2], c[3])
}
