package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

func TestSphericalFromVec3(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   mgl64.Vec3
		want Spherical
	}{
		{"on +Z", mgl64.Vec3{0, 0, 10}, Spherical{Radius: 10, Phi: math.Pi / 2, Theta: 0}},
		{"on +X", mgl64.Vec3{2, 0, 0}, Spherical{Radius: 2, Phi: math.Pi / 2, Theta: math.Pi / 2}},
		{"on +Y", mgl64.Vec3{0, 5, 0}, Spherical{Radius: 5, Phi: 0, Theta: 0}},
		{"on -Y", mgl64.Vec3{0, -5, 0}, Spherical{Radius: 5, Phi: math.Pi, Theta: 0}},
		{"zero", mgl64.Vec3{}, Spherical{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SphericalFromVec3(tt.in)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("SphericalFromVec3(%v) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range []mgl64.Vec3{
		{3, 4, 5},
		{-1, 2, -7},
		{0.25, -0.5, 0.125},
	} {
		got := SphericalFromVec3(v).Vec3()
		assert.True(t, got.ApproxEqualThreshold(v, 1e-12), "round trip of %v gave %v", v, got)
	}
}

func TestSphericalMakeSafe(t *testing.T) {
	t.Parallel()

	s := Spherical{Radius: 1, Phi: 0}
	s.MakeSafe()
	assert.Equal(t, sphericalEpsilon, s.Phi)

	s.Phi = math.Pi
	s.MakeSafe()
	assert.Equal(t, math.Pi-sphericalEpsilon, s.Phi)

	s.Phi = 1
	s.MakeSafe()
	assert.Equal(t, 1.0, s.Phi)
}
