package pipeline

// ShapeKind is the primitive topology active between BeginShape and EndShape.
type ShapeKind int

const (
	ShapeNone ShapeKind = iota
	Points
	Lines
	LineStrip
	LineLoop
	Triangles
	TriangleStrip
	TriangleFan
	Quads
	QuadStrip
	Polygon
)

var shapeKindNames = [...]string{
	ShapeNone:     "none",
	Points:        "points",
	Lines:         "lines",
	LineStrip:     "line_strip",
	LineLoop:      "line_loop",
	Triangles:     "triangles",
	TriangleStrip: "triangle_strip",
	TriangleFan:   "triangle_fan",
	Quads:         "quads",
	QuadStrip:     "quad_strip",
	Polygon:       "polygon",
}

func (k ShapeKind) String() string {
	if k < 0 || int(k) >= len(shapeKindNames) {
		return "unknown"
	}
	return shapeKindNames[k]
}

// ParseShapeKind maps a lower-case kind name (as produced by String) back to
// its ShapeKind.
func ParseShapeKind(s string) (ShapeKind, bool) {
	for i, name := range shapeKindNames {
		if name == s && ShapeKind(i) != ShapeNone {
			return ShapeKind(i), true
		}
	}
	return ShapeNone, false
}

// NormalMode records how normals were supplied for the current shape.
type NormalMode int

const (
	// NormalAuto means no Normal call was made inside the shape; face
	// normals are computed per triangle.
	NormalAuto NormalMode = iota
	// NormalShape means exactly one Normal call was made inside the shape.
	NormalShape
	// NormalVertex means Normal was called more than once inside the shape.
	NormalVertex
)

// EndMode selects whether EndShape closes the outline.
type EndMode int

const (
	Open EndMode = iota
	Close
)

// StrokeCap is the end cap style passed through to the rasterizer.
type StrokeCap int

const (
	CapRound StrokeCap = iota
	CapSquare
	CapProject
)

// StrokeJoin is the join style passed through to the rasterizer.
type StrokeJoin int

const (
	JoinMiter StrokeJoin = iota
	JoinBevel
	JoinRound
)

// TextureMode selects the unit of texture coordinates given to VertexUV.
type TextureMode int

const (
	// ImageSpace coordinates are in texels and are divided by the texture
	// size when the vertex is recorded.
	ImageSpace TextureMode = iota
	// NormalSpace coordinates are already in 0..1.
	NormalSpace
)

// Mode is the buffer lifecycle of a Graphics.
type Mode int

const (
	// Immediate resets the buffers at every BeginShape and renders each
	// shape at its EndShape.
	Immediate Mode = iota
	// DeferredSorted accumulates every shape of the frame and renders them
	// back to front at EndFrame.
	DeferredSorted
)

func (m Mode) String() string {
	if m == DeferredSorted {
		return "deferred_sorted"
	}
	return "immediate"
}

// Hint toggles optional rendering behavior.
type Hint int

const (
	HintDepthSort Hint = iota
	HintNoDepthSort
)

// LightingTier is the granularity at which lighting is evaluated for a shape.
// The zero value means no tier has been selected.
type LightingTier int

const (
	TierPerVertex LightingTier = iota + 1
	TierPerShape
	TierPerTriangle
)

func (t LightingTier) String() string {
	switch t {
	case TierPerVertex:
		return "per_vertex"
	case TierPerShape:
		return "per_shape"
	case TierPerTriangle:
		return "per_triangle"
	}
	return "none"
}

const (
	defaultVertexCapacity   = 512
	defaultLineCapacity     = 512
	defaultTriangleCapacity = 256
	defaultMaxLights        = 8
	defaultStackDepth       = 32
	defaultSphereDetail     = 30

	// triangulationEpsilon is the minimum doubled area of an ear.
	triangulationEpsilon = 1e-10
)
