// Package render projects the 3D helix into screen space and rasterizes it
// with ebiten's vector primitives, back to front.
package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/marketdna/helixviz/internal/helix"
)

var strandColor = color.RGBA{R: 205, G: 212, B: 245, A: 255}

// item is one depth-sorted draw call.
type item struct {
	depth float64
	draw  func(*ebiten.Image)
}

// Renderer draws a helix group through a camera onto an ebiten image.
type Renderer struct {
	cam        *Camera
	background *ebiten.Image
}

// NewRenderer builds a renderer and its procedural background for the given
// camera's viewport.
func NewRenderer(cam *Camera) *Renderer {
	return &Renderer{
		cam:        cam,
		background: nebula(cam.Width, cam.Height),
	}
}

// Draw renders the background and the group. elapsed drives the pulse
// animation and is the only time-dependent input; the group itself is never
// mutated here.
func (r *Renderer) Draw(screen *ebiten.Image, g *helix.Group, elapsed float64) {
	screen.DrawImage(r.background, &ebiten.DrawImageOptions{})
	if g == nil {
		return
	}

	items := make([]item, 0, len(g.Strands[0])+len(g.Strands[1])+len(g.Rungs)+len(g.Pulses))

	for s := 0; s < 2; s++ {
		pts := g.Strands[s]
		for i := 1; i < len(pts); i++ {
			if it, ok := r.lineItem(pts[i-1], pts[i], g, g.Thickness*2, strandColor, 0); ok {
				items = append(items, it)
			}
		}
	}

	for _, rung := range g.Rungs {
		w := rung.Radius * rung.LengthScale * 2
		if it, ok := r.lineItem(rung.Start, rung.End, g, w, rung.Color, rung.Emissive); ok {
			items = append(items, it)
		}
	}

	for _, p := range g.Pulses {
		if it, ok := r.pulseItem(p, g, elapsed); ok {
			items = append(items, it)
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].depth > items[j].depth })
	for _, it := range items {
		it.draw(screen)
	}
}

// groupPoint applies the group's yaw and uniform scale to a model point.
func groupPoint(p r3.Vec, g *helix.Group) r3.Vec {
	return r3.Scale(g.Scale, rotateY(p, g.Yaw))
}

// lineItem projects a world-space line of the given world-space width.
// emissive > 0 adds a translucent halo pass under the core stroke.
func (r *Renderer) lineItem(a, b r3.Vec, g *helix.Group, width float64, col color.RGBA, emissive float64) (item, bool) {
	x0, y0, d0, ok0 := r.cam.Project(groupPoint(a, g))
	x1, y1, d1, ok1 := r.cam.Project(groupPoint(b, g))
	if !ok0 || !ok1 {
		return item{}, false
	}
	if offscreen(x0, y0, r.cam) && offscreen(x1, y1, r.cam) {
		return item{}, false
	}
	depth := (d0 + d1) / 2
	w := float32(width * g.Scale * r.cam.PixelsPerUnit(depth))
	if w < 1 {
		w = 1
	}
	return item{
		depth: depth,
		draw: func(dst *ebiten.Image) {
			if emissive > 0 {
				halo := col
				halo.A = uint8(emissive * 255)
				vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), w*2.5, halo, true)
			}
			vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), w, col, true)
		},
	}, true
}

func (r *Renderer) pulseItem(p helix.Pulse, g *helix.Group, elapsed float64) (item, bool) {
	x, y, depth, ok := r.cam.Project(groupPoint(p.Position, g))
	if !ok || offscreen(x, y, r.cam) {
		return item{}, false
	}
	radius := float32(p.Size * g.Scale * PulseScale(p, elapsed) * r.cam.PixelsPerUnit(depth) / 2)
	col := p.Color
	col.A = 90
	return item{
		depth: depth,
		draw: func(dst *ebiten.Image) {
			vector.DrawFilledCircle(dst, float32(x), float32(y), radius, col, true)
		},
	}, true
}

// offscreen culls points well outside the viewport, with margin so thick
// strokes crossing the edge still draw.
func offscreen(x, y float64, cam *Camera) bool {
	const margin = 64
	return x < -margin || x > float64(cam.Width)+margin ||
		y < -margin || y > float64(cam.Height)+margin
}

// rotateY rotates a point about the world Y axis.
func rotateY(p r3.Vec, a float64) r3.Vec {
	c, s := math.Cos(a), math.Sin(a)
	return r3.Vec{X: p.X*c + p.Z*s, Y: p.Y, Z: -p.X*s + p.Z*c}
}
