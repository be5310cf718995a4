package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// nearPlane is the minimum view-space depth a point must have to project.
const nearPlane = 0.1

// Camera is a perspective look-at camera. Orientation is derived from
// Position, Target and Up every frame, so moving either endpoint is enough
// to reorient the view.
type Camera struct {
	Position r3.Vec
	Target   r3.Vec
	Up       r3.Vec
	FOV      float64 // vertical field of view, radians
	Width    int
	Height   int
}

// NewCamera returns a camera framing the helix from slightly above.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Position: r3.Vec{Y: 12, Z: 42},
		Up:       r3.Vec{Y: 1},
		FOV:      60 * math.Pi / 180,
		Width:    width,
		Height:   height,
	}
}

// ViewportHeight reports the viewport height in pixels, used to normalize
// pointer displacement so interaction speed is resolution-independent.
func (c *Camera) ViewportHeight() float64 {
	return float64(c.Height)
}

// basis returns the right, up and forward unit vectors of the view frame.
func (c *Camera) basis() (right, up, forward r3.Vec) {
	forward = r3.Unit(r3.Sub(c.Target, c.Position))
	right = r3.Unit(r3.Cross(forward, c.Up))
	up = r3.Cross(right, forward)
	return right, up, forward
}

// focalLength is the perspective scale factor in pixels.
func (c *Camera) focalLength() float64 {
	return float64(c.Height) / 2 / math.Tan(c.FOV/2)
}

// Project maps a world-space point to screen coordinates and view-space
// depth. ok is false for points at or behind the near plane.
func (c *Camera) Project(p r3.Vec) (x, y, depth float64, ok bool) {
	right, up, forward := c.basis()
	d := r3.Sub(p, c.Position)
	vz := r3.Dot(d, forward)
	if vz < nearPlane {
		return 0, 0, 0, false
	}
	f := c.focalLength()
	x = float64(c.Width)/2 + r3.Dot(d, right)*f/vz
	y = float64(c.Height)/2 - r3.Dot(d, up)*f/vz
	return x, y, vz, true
}

// PixelsPerUnit reports how many pixels one world unit spans at the given
// view-space depth.
func (c *Camera) PixelsPerUnit(depth float64) float64 {
	return c.focalLength() / depth
}
