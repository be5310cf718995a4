package orbit

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/marketdna/helixviz/internal/render"
)

// Button identifies the pointer button that started an interaction.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

type mode int

const (
	modeIdle mode = iota
	modeRotating
	modePanning
)

// zoomBase is the per-step zoom factor; one wheel notch at speed 1 changes
// the orbit radius by 5%.
const zoomBase = 0.95

// Controller converts pointer and wheel input into orbit, pan and zoom
// motion of a camera around its target. Input handlers only accumulate
// pending deltas; Update applies and clears them once per tick, decoupling
// event arrival rate from the frame rate. There is no inertia: motion stops
// as soon as input stops.
type Controller struct {
	cam *render.Camera

	EnableRotate bool
	EnablePan    bool
	EnableZoom   bool

	RotateSpeed     float64
	PanSpeed        float64
	ZoomSpeed       float64
	AutoRotate      bool
	AutoRotateSpeed float64

	mode         mode
	lastX, lastY float64
	deltaAzimuth float64
	deltaPolar   float64
	pan          r3.Vec
	zoomScale    float64

	homePosition r3.Vec
	homeTarget   r3.Vec
	disposed     bool
}

// NewController wires a controller to the camera it will move. The camera's
// pose at construction time becomes the Reset pose.
func NewController(cam *render.Camera) *Controller {
	return &Controller{
		cam:             cam,
		EnableRotate:    true,
		EnablePan:       true,
		EnableZoom:      true,
		RotateSpeed:     1.0,
		PanSpeed:        1.0,
		ZoomSpeed:       1.0,
		AutoRotateSpeed: 2.0,
		zoomScale:       1,
		homePosition:    cam.Position,
		homeTarget:      cam.Target,
	}
}

// PointerDown starts a drag interaction. The primary button rotates, the
// secondary and middle buttons pan; the enable flags gate the transition
// here, at event time.
func (c *Controller) PointerDown(button Button, x, y float64) {
	if c.disposed || c.mode != modeIdle {
		return
	}
	switch button {
	case ButtonPrimary:
		if !c.EnableRotate {
			return
		}
		c.mode = modeRotating
	case ButtonSecondary, ButtonMiddle:
		if !c.EnablePan {
			return
		}
		c.mode = modePanning
	default:
		return
	}
	c.lastX, c.lastY = x, y
}

// PointerMove accumulates motion since the previous sample. Rotation deltas
// are normalized by viewport height; pan deltas are scaled by the current
// camera-to-target distance so panning covers the same fraction of the view
// at any zoom level.
func (c *Controller) PointerMove(x, y float64) {
	if c.disposed {
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y

	switch c.mode {
	case modeRotating:
		h := c.cam.ViewportHeight()
		c.deltaAzimuth -= 2 * math.Pi * dx / h * c.RotateSpeed
		c.deltaPolar -= 2 * math.Pi * dy / h * c.RotateSpeed
	case modePanning:
		dist := r3.Norm(r3.Sub(c.cam.Position, c.cam.Target))
		factor := dist * c.PanSpeed / c.cam.ViewportHeight()
		forward := r3.Unit(r3.Sub(c.cam.Target, c.cam.Position))
		right := r3.Unit(r3.Cross(forward, c.cam.Up))
		up := r3.Cross(right, forward)
		c.pan = r3.Add(r3.Add(c.pan, r3.Scale(-dx*factor, right)), r3.Scale(dy*factor, up))
	}
}

// PointerUp ends any drag. The caller polls release globally, so drags that
// end outside the viewport still terminate here.
func (c *Controller) PointerUp() {
	if c.disposed {
		return
	}
	c.mode = modeIdle
}

// Wheel accumulates a multiplicative zoom step. Positive deltas (scroll up)
// zoom in, shrinking the orbit radius by zoomBase^ZoomSpeed per notch.
func (c *Controller) Wheel(deltaY float64) {
	if c.disposed || !c.EnableZoom {
		return
	}
	step := math.Pow(zoomBase, c.ZoomSpeed)
	switch {
	case deltaY > 0:
		c.zoomScale *= step
	case deltaY < 0:
		c.zoomScale /= step
	}
}

// Update applies all pending input to the camera and clears the
// accumulators. Call once per tick.
func (c *Controller) Update() {
	if c.disposed {
		return
	}
	if c.AutoRotate && c.mode == modeIdle {
		// Fixed decrement assuming a nominal 60 fps tick; speed 2.0 is one
		// revolution every 30 seconds.
		c.deltaAzimuth -= 2 * math.Pi / 60 / 60 * c.AutoRotateSpeed
	}

	sph := SphericalFromVector(r3.Sub(c.cam.Position, c.cam.Target))
	sph.Azimuth += c.deltaAzimuth
	sph.Polar += c.deltaPolar
	sph.ClampPolar()
	sph.Radius *= c.zoomScale

	c.cam.Target = r3.Add(c.cam.Target, c.pan)
	c.cam.Position = r3.Add(c.cam.Target, sph.Vector())

	c.deltaAzimuth = 0
	c.deltaPolar = 0
	c.pan = r3.Vec{}
	c.zoomScale = 1
}

// Reset restores the camera pose captured at construction and drops any
// pending input.
func (c *Controller) Reset() {
	if c.disposed {
		return
	}
	c.cam.Position = c.homePosition
	c.cam.Target = c.homeTarget
	c.mode = modeIdle
	c.deltaAzimuth = 0
	c.deltaPolar = 0
	c.pan = r3.Vec{}
	c.zoomScale = 1
}

// Dispose detaches the controller; all further events and updates are
// no-ops.
func (c *Controller) Dispose() {
	c.disposed = true
	c.mode = modeIdle
}
