package pipeline

import (
	"math"

	"github.com/processing/processing-sub019/pkg/math3d"
)

// Stats counts the work done during the current frame.
type Stats struct {
	Shapes    int
	Vertices  int
	Lines     int
	Triangles int
	Clipped   int // primitives discarded or split by the near plane
}

// Graphics is a 3D drawing target. It owns the vertex, line and triangle
// arenas, the matrix and camera state, the current material and the
// declared lights.
type Graphics struct {
	width, height int
	rast          Rasterizer
	opts          options
	mode          Mode

	vertices  *VertexBuffer
	lines     *LineBuffer
	triangles *TriangleBuffer
	scratch   []Triangle

	shape      ShapeAssemblyContext
	shapeCount int
	pathCount  int

	material    material
	normal      math3d.Vec3
	textures    []Texture
	texture     int
	textureMode TextureMode

	modelview   MatrixPair
	camera      MatrixPair
	cameraBegun bool
	stack       *MatrixStack
	projection  math3d.Mat4
	projNear    float64
	cameraZ     float64

	lighting          bool
	lights            []Light
	falloff           [3]float64
	lightSpecular     Color
	positionDependent bool
	specularLight     bool
	lastTier          LightingTier

	sphereDetail int
	sphereCache  []math3d.Vec3

	stats Stats
}

var _ Has3D = (*Graphics)(nil)

// New returns a Graphics of the given pixel size drawing into r. A nil r
// discards all output. The default camera and perspective are installed.
func New(width, height int, r Rasterizer, opts ...Option) *Graphics {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if r == nil {
		r = discardRasterizer{}
	}
	g := &Graphics{
		width:        width,
		height:       height,
		rast:         r,
		opts:         o,
		mode:         o.mode,
		vertices:     NewBuffer[Vertex]("vertices", defaultVertexCapacity),
		lines:        NewBuffer[Line]("lines", defaultLineCapacity),
		triangles:    NewBuffer[Triangle]("triangles", defaultTriangleCapacity),
		material:     defaultMaterial(),
		texture:      -1,
		stack:        NewMatrixStack(o.stackDepth),
		falloff:      [3]float64{1, 0, 0},
		sphereDetail: defaultSphereDetail,
	}
	g.cameraZ = float64(height) / 2 / math.Tan(math.Pi/6)
	g.DefaultCamera()
	g.DefaultPerspective()
	return g
}

// Width returns the target width in pixels.
func (g *Graphics) Width() int { return g.width }

// Height returns the target height in pixels.
func (g *Graphics) Height() int { return g.height }

// Mode returns the current buffer lifecycle.
func (g *Graphics) Mode() Mode { return g.mode }

// Stats returns the counters of the current frame.
func (g *Graphics) Stats() Stats { return g.stats }

// BeginFrame starts a frame: buffers, lights, textures and statistics are
// reset and the modelview returns to the camera.
func (g *Graphics) BeginFrame() {
	g.resetBuffers()
	g.shape = ShapeAssemblyContext{}
	g.shapeCount = 0
	g.pathCount = 0
	g.textures = g.textures[:0]
	g.texture = -1
	g.stack.Reset()
	g.cameraBegun = false
	g.modelview = g.camera

	g.lighting = false
	g.lights = g.lights[:0]
	g.falloff = [3]float64{1, 0, 0}
	g.lightSpecular = Color{}
	g.positionDependent = false
	g.specularLight = false

	g.stats = Stats{}
}

// EndFrame finishes a frame. In DeferredSorted mode the accumulated geometry
// is sorted and rendered. A shape left open is reported as
// ErrShapeInProgress after every completed shape has been flushed.
func (g *Graphics) EndFrame() error {
	open := g.shape.Kind != ShapeNone
	if open {
		// Drop the unfinished shape so only completed geometry is flushed.
		g.vertices.Truncate(g.shape.FirstVertex)
		g.lines.Truncate(g.shape.FirstLine)
		g.triangles.Truncate(g.shape.FirstTriangle)
		g.shape = ShapeAssemblyContext{}
	}
	if g.mode == DeferredSorted {
		g.flush()
	}
	Logger().Debug("pipeline: frame",
		"mode", g.mode.String(),
		"shapes", g.stats.Shapes,
		"vertices", g.stats.Vertices,
		"lines", g.stats.Lines,
		"triangles", g.stats.Triangles,
		"clipped", g.stats.Clipped,
	)
	if open {
		return ErrShapeInProgress
	}
	return nil
}

// Hint switches between Immediate and DeferredSorted rendering. Leaving
// DeferredSorted flushes the geometry accumulated so far.
func (g *Graphics) Hint(h Hint) error {
	if g.shape.Kind != ShapeNone {
		return ErrShapeInProgress
	}
	switch h {
	case HintDepthSort:
		g.mode = DeferredSorted
	case HintNoDepthSort:
		if g.mode == DeferredSorted {
			g.flush()
		}
		g.mode = Immediate
	}
	return nil
}

func (g *Graphics) resetBuffers() {
	g.vertices.Reset()
	g.lines.Reset()
	g.triangles.Reset()
}
