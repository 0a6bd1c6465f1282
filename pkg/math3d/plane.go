package math3d

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal and D is the distance from origin.
type Plane struct {
	Normal Vec3
	D      float64
}

// NewPlane builds the plane through point with the given normal.
func NewPlane(normal, point Vec3) Plane {
	return Plane{Normal: normal, D: -normal.Dot(point)}
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Crossing returns the parameter t in [0, 1] at which the segment a→b meets
// the plane, given the signed distances of its endpoints.
func Crossing(da, db float64) float64 {
	if da == db {
		return 0
	}
	return da / (da - db)
}
