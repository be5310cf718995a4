package render

import (
	"time"

	"github.com/aquilax/go-perlin"
	"github.com/hajimehoshi/ebiten/v2"
)

// nebula generates the dark space backdrop once at startup: layered perlin
// noise tinted toward deep blue.
func nebula(width, height int) *ebiten.Image {
	p := perlin.NewPerlin(2, 2, 3, time.Now().UnixNano())
	pix := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := p.Noise2D(float64(x)/160, float64(y)/160)
			v := (n + 1) / 2
			i := (y*width + x) * 4
			pix[i] = uint8(8 + 26*v)
			pix[i+1] = uint8(6 + 18*v)
			pix[i+2] = uint8(24 + 58*v)
			pix[i+3] = 255
		}
	}
	img := ebiten.NewImage(width, height)
	img.WritePixels(pix)
	return img
}
