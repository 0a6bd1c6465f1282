package pipeline

// Option configures a Graphics during creation.
//
// Example:
//
//	g := pipeline.New(640, 480, rast,
//		pipeline.WithMode(pipeline.DeferredSorted),
//		pipeline.WithNearClip(0.1),
//	)
type Option func(*options)

type options struct {
	mode        Mode
	nearClip    float64
	nearClipSet bool
	maxLights   int
	stackDepth  int
	tier        LightingTier // fixed lighting tier, 0 selects per shape
}

func defaultOptions() options {
	return options{
		mode:       Immediate,
		maxLights:  defaultMaxLights,
		stackDepth: defaultStackDepth,
	}
}

// WithMode sets the initial buffer lifecycle. Hint can change it later.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithNearClip fixes the camera-space distance of the near clipping plane.
// Without it the plane follows the near value of the current projection.
func WithNearClip(d float64) Option {
	return func(o *options) {
		o.nearClip = d
		o.nearClipSet = true
	}
}

// WithMaxLights sets how many lights may be declared per frame.
func WithMaxLights(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxLights = n
		}
	}
}

// WithMatrixStackDepth sets the capacity of the PushMatrix stack.
func WithMatrixStackDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.stackDepth = n
		}
	}
}

// withLightingTier pins every shape to one lighting tier. Tests use it to
// compare tiers on the same input.
func withLightingTier(t LightingTier) Option {
	return func(o *options) {
		o.tier = t
	}
}
