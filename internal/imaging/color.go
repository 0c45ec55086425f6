package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/regionswap-mcp/internal/mask"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a color value in several representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#rrggbb"
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// RegionColorResult summarises the pixels of img covered by a mask.
type RegionColorResult struct {
	// Mean is the average colour of the covered pixels, averaged in linear RGB.
	Mean ColorResult `json:"mean"`

	// Spread is the mean CIE Lab distance of covered pixels from Mean.
	// Larger values indicate a more textured region.
	Spread float64 `json:"spread"`

	// Pixels is the number of covered pixels.
	Pixels int `json:"pixels"`
}

// RegionColor computes colour statistics of img under m.
//
// Averaging happens in linear RGB so that a half-black, half-white region
// yields a perceptual mid grey rather than a dark one. The mask and image
// must have the same size.
//
// # Errors
//
//   - geom.ErrShapeMismatch when m and img differ in size
//   - an error when the mask covers no pixels
func RegionColor(img image.Image, m *image.Gray) (*RegionColorResult, error) {
	if err := mask.SameSize(img.Bounds(), m.Bounds()); err != nil {
		return nil, fmt.Errorf("region color: %w", err)
	}

	ib, mb := img.Bounds(), m.Bounds()
	var covered []colorful.Color
	var sr, sg, sb float64
	for y := 0; y < ib.Dy(); y++ {
		for x := 0; x < ib.Dx(); x++ {
			if m.GrayAt(mb.Min.X+x, mb.Min.Y+y).Y == 0 {
				continue
			}
			c, _ := colorful.MakeColor(img.At(ib.Min.X+x, ib.Min.Y+y))
			r, g, b := c.LinearRgb()
			sr, sg, sb = sr+r, sg+g, sb+b
			covered = append(covered, c)
		}
	}
	if len(covered) == 0 {
		return nil, fmt.Errorf("region color: mask covers no pixels")
	}

	n := float64(len(covered))
	mean := colorful.LinearRgb(sr/n, sg/n, sb/n).Clamped()

	var spread float64
	for _, c := range covered {
		spread += c.DistanceLab(mean)
	}

	return &RegionColorResult{
		Mean:   describeColor(mean),
		Spread: math.Round(spread/n*1000) / 1000,
		Pixels: len(covered),
	}, nil
}

func describeColor(c colorful.Color) ColorResult {
	r, g, b := c.RGB255()
	h, s, l := c.Hsl()
	return ColorResult{
		Hex: c.Hex(),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}
