package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/marketdna/helixviz/internal/helix"
)

func TestCamera_TargetProjectsToScreenCenter(t *testing.T) {
	cam := NewCamera(800, 600)
	x, y, depth, ok := cam.Project(cam.Target)
	require.True(t, ok)
	assert.InDelta(t, 400, x, 1e-6)
	assert.InDelta(t, 300, y, 1e-6)
	assert.InDelta(t, r3.Norm(r3.Sub(cam.Position, cam.Target)), depth, 1e-9)
}

func TestCamera_PointBehindDoesNotProject(t *testing.T) {
	cam := NewCamera(800, 600)
	behind := r3.Add(cam.Position, r3.Sub(cam.Position, cam.Target))
	_, _, _, ok := cam.Project(behind)
	assert.False(t, ok)
}

func TestCamera_PixelsPerUnitShrinksWithDepth(t *testing.T) {
	cam := NewCamera(800, 600)
	near := cam.PixelsPerUnit(10)
	far := cam.PixelsPerUnit(20)
	assert.InDelta(t, near/2, far, 1e-9)
}

func TestRotateY_QuarterTurn(t *testing.T) {
	got := rotateY(r3.Vec{X: 1}, math.Pi/2)
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 0, got.Y, 1e-12)
	assert.InDelta(t, -1, got.Z, 1e-12)
}

func TestPulseScale_OscillatesBetweenBounds(t *testing.T) {
	p := helix.Pulse{InitialScale: 1, MaxScale: 1.5, PulseSpeed: 1, Phase: 0}

	assert.InDelta(t, 1.5, PulseScale(p, math.Pi/2), 1e-9)
	assert.InDelta(t, 1.0, PulseScale(p, 3*math.Pi/2), 1e-9)

	for e := 0.0; e < 20; e += 0.37 {
		s := PulseScale(p, e)
		assert.GreaterOrEqual(t, s, 1.0-1e-9)
		assert.LessOrEqual(t, s, 1.5+1e-9)
	}
}

func TestPulseScale_PhaseDesynchronizes(t *testing.T) {
	a := helix.Pulse{InitialScale: 1, MaxScale: 1.5, PulseSpeed: 1, Phase: 0}
	b := helix.Pulse{InitialScale: 1, MaxScale: 1.5, PulseSpeed: 1, Phase: math.Pi}
	assert.Greater(t, math.Abs(PulseScale(a, 1)-PulseScale(b, 1)), 0.1)
}
