package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// polarEpsilon keeps the polar angle away from the poles so the view
// direction never becomes collinear with the camera up vector.
const polarEpsilon = 0.01

// Spherical expresses a camera offset from its target as a radius, a polar
// angle measured from +Y and an azimuth angle in the XZ plane.
type Spherical struct {
	Radius  float64
	Polar   float64
	Azimuth float64
}

// SphericalFromVector converts a Cartesian offset to spherical form. The
// zero vector maps to a zero-radius state on the equator.
func SphericalFromVector(v r3.Vec) Spherical {
	r := r3.Norm(v)
	if r == 0 {
		return Spherical{Polar: math.Pi / 2}
	}
	return Spherical{
		Radius:  r,
		Polar:   math.Acos(clamp(v.Y/r, -1, 1)),
		Azimuth: math.Atan2(v.Z, v.X),
	}
}

// Vector converts back to a Cartesian offset.
func (s Spherical) Vector() r3.Vec {
	sinP := math.Sin(s.Polar)
	return r3.Vec{
		X: s.Radius * sinP * math.Cos(s.Azimuth),
		Y: s.Radius * math.Cos(s.Polar),
		Z: s.Radius * sinP * math.Sin(s.Azimuth),
	}
}

// ClampPolar restricts the polar angle to [polarEpsilon, pi-polarEpsilon].
func (s *Spherical) ClampPolar() {
	s.Polar = clamp(s.Polar, polarEpsilon, math.Pi-polarEpsilon)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
