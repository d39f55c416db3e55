// Package texture generates pattern swatches for cloth and carpets. The
// factory is an injected capability so placement and geometry stay testable
// without a live graphics context, and a missing or failing factory degrades
// to a flat material instead of failing batch generation.
package texture

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/oldtown-game/decor/internal/decor"
)

// Factory produces a swatch image for one descriptor.
type Factory interface {
	Swatch(d *decor.Descriptor) (*image.RGBA, error)
}

// SwatchOrNil asks the factory for a swatch, tolerating a nil factory and
// factory errors. A nil result means the renderer should fall back to a
// flat primary-color material.
func SwatchOrNil(f Factory, d *decor.Descriptor) *image.RGBA {
	if f == nil {
		return nil
	}
	img, err := f.Swatch(d)
	if err != nil {
		return nil
	}
	return img
}

// PatternFactory rasterizes the descriptor's pattern variant from its two
// chosen colors.
type PatternFactory struct {
	Size int // Swatch edge length in pixels; zero means 32
}

// Swatch renders the descriptor's pattern. The pattern tag selects between
// stripes, cross-stripes, checks, and a diamond weave.
func (f PatternFactory) Swatch(d *decor.Descriptor) (*image.RGBA, error) {
	size := f.Size
	if size <= 0 {
		size = 32
	}
	if d == nil {
		return nil, fmt.Errorf("texture: nil descriptor")
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	band := size / 8
	if band < 1 {
		band = 1
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var c colorful.Color
			switch d.Pattern {
			case 1: // horizontal stripes
				c = pick(d, (y/band)%2 == 0)
			case 2: // checks
				c = pick(d, (x/band+y/band)%2 == 0)
			case 3: // diamond weave
				c = pick(d, (x+y)/band%2 == (x-y+size)/band%2)
			default: // vertical stripes
				c = pick(d, (x/band)%2 == 0)
			}
			r, g, b := c.RGB255()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img, nil
}

func pick(d *decor.Descriptor, primary bool) colorful.Color {
	if primary {
		return d.Primary
	}
	return d.Secondary
}
