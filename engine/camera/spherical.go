package camera

import (
	"math"

	"github.com/Carmen-Shannon/orbitcontrols/common"
	"github.com/go-gl/mathgl/mgl64"
)

// sphericalEpsilon keeps the polar angle away from the poles where the look-at basis degenerates.
const sphericalEpsilon = 0.000001

// Spherical is a point expressed relative to an origin in Y-up spherical coordinates.
// Phi is the polar angle measured from +Y and Theta is the azimuth around +Y, measured from +Z toward +X.
type Spherical struct {
	Radius float64
	Phi    float64
	Theta  float64
}

// SphericalFromVec3 converts a Y-up offset vector into spherical coordinates.
// A zero-length vector yields a zero Spherical.
//
// Parameters:
//   - v: the offset vector
//
// Returns:
//   - Spherical: the equivalent spherical coordinates
func SphericalFromVec3(v mgl64.Vec3) Spherical {
	radius := v.Len()
	if radius == 0 {
		return Spherical{}
	}
	return Spherical{
		Radius: radius,
		Theta:  math.Atan2(v.X(), v.Z()),
		Phi:    math.Acos(common.Clamp(v.Y()/radius, -1, 1)),
	}
}

// Vec3 converts the spherical coordinates back into a Y-up offset vector.
//
// Returns:
//   - mgl64.Vec3: the offset vector
func (s Spherical) Vec3() mgl64.Vec3 {
	sinPhiRadius := math.Sin(s.Phi) * s.Radius
	return mgl64.Vec3{
		sinPhiRadius * math.Sin(s.Theta),
		math.Cos(s.Phi) * s.Radius,
		sinPhiRadius * math.Cos(s.Theta),
	}
}

// MakeSafe restricts Phi to (0, π) exclusive by a small epsilon.
func (s *Spherical) MakeSafe() {
	s.Phi = common.Clamp(s.Phi, sphericalEpsilon, math.Pi-sphericalEpsilon)
}
