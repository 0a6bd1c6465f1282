package pipeline

import (
	"math"

	"github.com/processing/processing-sub019/pkg/math3d"
)

// BeginCamera redirects transform calls to the camera. Inside the bracket a
// transform moves the eye; its inverse is what ends up in the view matrix.
func (g *Graphics) BeginCamera() error {
	if g.cameraBegun {
		return ErrCameraAlreadyBegun
	}
	g.cameraBegun = true
	return nil
}

// EndCamera installs the camera built since BeginCamera as the modelview.
func (g *Graphics) EndCamera() error {
	if !g.cameraBegun {
		return ErrCameraNotBegun
	}
	g.cameraBegun = false
	g.modelview = g.camera
	return nil
}

// Camera places the eye at eye looking at center. The view matrix and its
// inverse are both built analytically; the modelview is reset to the view.
func (g *Graphics) Camera(eye, center, up math3d.Vec3) {
	g.camera = MatrixPair{
		Forward: math3d.LookAt(eye, center, up),
		Reverse: math3d.LookAtInverse(eye, center, up),
	}
	g.modelview = g.camera
}

// DefaultCamera looks at the center of the target from the distance at
// which the z=0 plane maps one unit to one pixel under the default
// perspective.
func (g *Graphics) DefaultCamera() {
	w2, h2 := float64(g.width)/2, float64(g.height)/2
	g.Camera(math3d.V3(w2, h2, g.cameraZ), math3d.V3(w2, h2, 0), math3d.Up())
}

// Perspective replaces the projection. fovy is the vertical field of view
// in radians.
func (g *Graphics) Perspective(fovy, aspect, near, far float64) {
	g.projection = math3d.Perspective(fovy, aspect, near, far)
	g.projNear = near
}

// DefaultPerspective installs a 60 degree perspective matching
// DefaultCamera.
func (g *Graphics) DefaultPerspective() {
	aspect := 1.0
	if g.height != 0 {
		aspect = float64(g.width) / float64(g.height)
	}
	g.Perspective(math.Pi/3, aspect, g.cameraZ/10, g.cameraZ*10)
}

// Frustum replaces the projection with an off-axis perspective.
func (g *Graphics) Frustum(left, right, bottom, top, near, far float64) {
	g.projection = math3d.Frustum(left, right, bottom, top, near, far)
	g.projNear = near
}

// Ortho replaces the projection with an orthographic one.
func (g *Graphics) Ortho(left, right, bottom, top, near, far float64) {
	g.projection = math3d.Orthographic(left, right, bottom, top, near, far)
	g.projNear = near
}

// DefaultOrtho installs an orthographic projection under which the z=0
// plane of DefaultCamera maps one unit to one pixel.
func (g *Graphics) DefaultOrtho() {
	w2, h2 := float64(g.width)/2, float64(g.height)/2
	g.Ortho(-w2, w2, -h2, h2, g.cameraZ/10, g.cameraZ*10)
}

// nearDistance is the camera-space distance of the clip plane.
func (g *Graphics) nearDistance() float64 {
	if g.opts.nearClipSet {
		return g.opts.nearClip
	}
	return g.projNear
}
