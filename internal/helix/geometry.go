package helix

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/marketdna/helixviz/internal/segment"
)

// initialYaw rotates the finished group so the default view is not looking
// straight down a strand.
const initialYaw = math.Pi / 6

// curveSubdiv is the number of Catmull-Rom subdivisions per backbone span.
const curveSubdiv = 4

// Pulse thresholds on |pct_change|: above pulseThreshold a rung gets one
// pulsing sphere, above strongPulseThreshold a second larger, slower one.
const (
	pulseThreshold       = 5.0
	strongPulseThreshold = 8.0
)

var typeColors = map[string]color.RGBA{
	"optimal":  {R: 0, G: 230, B: 118, A: 255},
	"positive": {R: 64, G: 196, B: 255, A: 255},
	"negative": {R: 255, G: 82, B: 82, A: 255},
}

var fallbackColor = color.RGBA{R: 158, G: 158, B: 158, A: 255}

// TypeColor returns the rung color for a segment type, with a neutral
// fallback for unrecognized types.
func TypeColor(typ string) color.RGBA {
	if c, ok := typeColors[typ]; ok {
		return c
	}
	return fallbackColor
}

// Rung is the connector joining the two backbones at one segment's winding
// position. Its visual parameters are pure functions of the segment data.
type Rung struct {
	Start       r3.Vec
	End         r3.Vec
	Color       color.RGBA
	Radius      float64
	LengthScale float64
	Emissive    float64
	Description string
}

// Pulse is a pulsing sphere attached to a high-movement rung. The animation
// parameters are assigned here and consumed by the external per-frame
// animator; the generator itself never animates.
type Pulse struct {
	Position     r3.Vec
	Size         float64
	Color        color.RGBA
	InitialScale float64
	MaxScale     float64
	PulseSpeed   float64
	Phase        float64
}

// Group is one renderable helix: two smoothed backbone strands, one rung per
// segment and zero or more pulse effects. It is centered at the origin and
// carries a fixed initial yaw. Groups are disposable; a rebuild produces a
// fresh one and the old one is dropped wholesale.
type Group struct {
	Strands   [2][]r3.Vec
	Thickness float64
	Rungs     []Rung
	Pulses    []Pulse
	Yaw       float64
	Scale     float64
}

// backbonePoint is the single parametrization shared by backbone sampling
// and rung placement. t in [0,1] runs top to bottom; phase selects the
// strand (0 or pi). Keeping this in one place guarantees rung endpoints land
// on the backbone curves.
func backbonePoint(cfg Config, t, phase float64) r3.Vec {
	angle := 2*math.Pi*float64(cfg.Turns)*t + phase
	return r3.Vec{
		X: cfg.Radius * math.Cos(angle),
		Y: cfg.Height * (0.5 - t),
		Z: cfg.Radius * math.Sin(angle),
	}
}

// Build generates a helix group from validated segments. Zero segments is a
// normal case and yields an empty, valid group.
func Build(segs []segment.Segment, cfg Config) *Group {
	g := &Group{
		Thickness: cfg.BackboneThickness,
		Yaw:       initialYaw,
		Scale:     cfg.Scale,
	}
	if g.Scale <= 0 {
		g.Scale = 1
	}

	steps := cfg.Turns * cfg.PointsPerTurn
	if steps < 1 {
		steps = 1
	}
	for s := 0; s < 2; s++ {
		phase := float64(s) * math.Pi
		pts := make([]r3.Vec, 0, steps+1)
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			pts = append(pts, backbonePoint(cfg, t, phase))
		}
		g.Strands[s] = smooth(pts, curveSubdiv)
	}

	n := len(segs)
	if n == 0 {
		return g
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	g.Rungs = make([]Rung, 0, n)
	for i, seg := range segs {
		t := float64(i) / float64(n)
		start := backbonePoint(cfg, t, 0)
		end := backbonePoint(cfg, t, math.Pi)
		pct := math.Abs(seg.PctChange)

		g.Rungs = append(g.Rungs, Rung{
			Start:       start,
			End:         end,
			Color:       TypeColor(seg.Type),
			Radius:      0.3 + math.Min(0.5, pct*0.03),
			LengthScale: math.Min(1.5, math.Log10(math.Max(1, float64(seg.Span())))+0.5),
			Emissive:    math.Min(0.4, pct*0.03+0.1),
			Description: seg.Describe(),
		})

		if pct <= pulseThreshold {
			continue
		}
		mid := r3.Scale(0.5, r3.Add(start, end))
		size := 0.8 + pct*0.05
		g.Pulses = append(g.Pulses, Pulse{
			Position:     mid,
			Size:         size,
			Color:        TypeColor(seg.Type),
			InitialScale: 1,
			MaxScale:     1.5,
			PulseSpeed:   3.0,
			Phase:        rng.Float64() * 2 * math.Pi,
		})
		if pct > strongPulseThreshold {
			g.Pulses = append(g.Pulses, Pulse{
				Position:     mid,
				Size:         size * 1.6,
				Color:        TypeColor(seg.Type),
				InitialScale: 1,
				MaxScale:     1.8,
				PulseSpeed:   1.4,
				Phase:        rng.Float64() * 2 * math.Pi,
			})
		}
	}
	return g
}

// smooth fits a uniform Catmull-Rom spline through pts. The spline
// interpolates its control points, so every original sample survives in the
// output and rung endpoints stay exact.
func smooth(pts []r3.Vec, subdiv int) []r3.Vec {
	if len(pts) < 3 || subdiv <= 1 {
		return pts
	}
	out := make([]r3.Vec, 0, (len(pts)-1)*subdiv+1)
	for i := 0; i < len(pts)-1; i++ {
		p0 := pts[max(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[min(i+2, len(pts)-1)]
		for j := 0; j < subdiv; j++ {
			out = append(out, catmullRom(p0, p1, p2, p3, float64(j)/float64(subdiv)))
		}
	}
	return append(out, pts[len(pts)-1])
}

func catmullRom(p0, p1, p2, p3 r3.Vec, t float64) r3.Vec {
	t2 := t * t
	t3 := t2 * t
	v := r3.Scale(2, p1)
	v = r3.Add(v, r3.Scale(t, r3.Sub(p2, p0)))
	v = r3.Add(v, r3.Scale(t2, r3.Sub(r3.Add(r3.Sub(r3.Scale(2, p0), r3.Scale(5, p1)), r3.Scale(4, p2)), p3)))
	v = r3.Add(v, r3.Scale(t3, r3.Sub(r3.Add(r3.Sub(p3, p0), r3.Scale(3, p1)), r3.Scale(3, p2))))
	return r3.Scale(0.5, v)
}
