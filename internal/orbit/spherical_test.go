package orbit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSpherical_RoundTrip(t *testing.T) {
	cases := []Spherical{
		{Radius: 10, Polar: 1.2, Azimuth: 0.4},
		{Radius: 3, Polar: 0.02, Azimuth: -2.5},
		{Radius: 42, Polar: math.Pi - 0.02, Azimuth: 3.0},
		{Radius: 0.5, Polar: math.Pi / 2, Azimuth: 0},
	}
	for _, want := range cases {
		got := SphericalFromVector(want.Vector())
		assert.InDelta(t, want.Radius, got.Radius, 1e-9)
		assert.InDelta(t, want.Polar, got.Polar, 1e-9)
		assert.InDelta(t, want.Azimuth, got.Azimuth, 1e-9)
	}
}

func TestSpherical_CartesianRoundTripNearPole(t *testing.T) {
	v := r3.Vec{Y: 10}
	s := SphericalFromVector(v)
	s.ClampPolar()
	back := s.Vector()

	assert.InDelta(t, 10, r3.Norm(back), 1e-9)
	// The clamp pushes the offset slightly off the pole axis.
	assert.Greater(t, math.Hypot(back.X, back.Z), 0.0)
	assert.InDelta(t, polarEpsilon, SphericalFromVector(back).Polar, 1e-9)
}

func TestSpherical_ClampPolarBounds(t *testing.T) {
	s := Spherical{Radius: 5, Polar: -1}
	s.ClampPolar()
	assert.Equal(t, polarEpsilon, s.Polar)

	s.Polar = math.Pi + 1
	s.ClampPolar()
	assert.Equal(t, math.Pi-polarEpsilon, s.Polar)

	s.Polar = 1.3
	s.ClampPolar()
	assert.Equal(t, 1.3, s.Polar)
}

func TestSphericalFromVector_ZeroVector(t *testing.T) {
	s := SphericalFromVector(r3.Vec{})
	assert.Zero(t, s.Radius)
	assert.False(t, math.IsNaN(s.Polar))
	assert.False(t, math.IsNaN(s.Azimuth))
}
