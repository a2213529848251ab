package orbit

import (
	"github.com/Carmen-Shannon/topo3d/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Spherical is a point in spherical coordinates around the origin with +Y as the pole.
// Phi is the polar angle from +Y and Theta the azimuthal angle around +Y measured from +Z.
type Spherical struct {
	Radius float32
	Phi    float32
	Theta  float32
}

// SphericalFromVector converts a cartesian offset into spherical coordinates.
// The zero vector maps to the zero Spherical.
func SphericalFromVector(v mgl32.Vec3) Spherical {
	r := v.Len()
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		Radius: r,
		Theta:  math32.Atan2(v[0], v[2]),
		Phi:    math32.Acos(common.Clamp(v[1]/r, -1, 1)),
	}
}

// Vector converts back to a cartesian offset.
func (s Spherical) Vector() mgl32.Vec3 {
	sinPhiRadius := math32.Sin(s.Phi) * s.Radius
	return mgl32.Vec3{
		sinPhiRadius * math32.Sin(s.Theta),
		math32.Cos(s.Phi) * s.Radius,
		sinPhiRadius * math32.Cos(s.Theta),
	}
}

// MakeSafe keeps Phi strictly inside (0, π) so the view never aligns with the pole.
func (s Spherical) MakeSafe() Spherical {
	s.Phi = common.Clamp(s.Phi, common.Epsilon, math32.Pi-common.Epsilon)
	return s
}
