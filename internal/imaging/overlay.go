package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
	"github.com/ironsheep/regionswap-mcp/internal/shape"
)

// DefaultOverlayColor is used when no colour, or an unparsable one, is given.
const DefaultOverlayColor = "#ff0000"

// OverlayResult contains the annotated image.
type OverlayResult struct {
	EncodedImage
	Regions int `json:"regions"`
}

// Overlay draws each landmark set onto a copy of img: its convex hull
// outline, a 3x3 marker per landmark and the set's index at its centroid.
// colorHex is a "#rrggbb" string.
func Overlay(img image.Image, sets []geom.PointSequence, colorHex string) (*OverlayResult, error) {
	bounds := img.Bounds()

	lineColor := parseOverlayColor(colorHex)

	result := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	for i, set := range sets {
		if len(set) == 0 {
			continue
		}
		local := set.Translate(geom.Pt(-float64(bounds.Min.X), -float64(bounds.Min.Y)))

		hull := geom.ConvexHull(local)
		for k := range hull {
			drawLine(result, hull[k].Image(), hull[(k+1)%len(hull)].Image(), lineColor)
		}
		for _, p := range local {
			drawMarker(result, p.Image(), lineColor)
		}

		if c, err := shape.Centroid(local); err == nil {
			labelColor := color.NRGBA{255, 255, 255, 255}
			bgColor := color.NRGBA{0, 0, 0, 180}
			at := c.Image()
			drawLabel(result, at.X+2, at.Y+2, strconv.Itoa(i), labelColor, bgColor)
		}
	}

	enc, err := EncodePNG(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	return &OverlayResult{EncodedImage: *enc, Regions: len(sets)}, nil
}

// parseOverlayColor parses "#rrggbb", falling back to DefaultOverlayColor.
func parseOverlayColor(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(DefaultOverlayColor)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// drawLine plots a Bresenham line from a to b, clipped to img.
func drawLine(img *image.NRGBA, a, b image.Point, c color.Color) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	for p := a; ; {
		if p.In(img.Rect) {
			img.Set(p.X, p.Y, c)
		}
		if p == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
}

func drawMarker(img *image.NRGBA, p image.Point, c color.Color) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if q := p.Add(image.Pt(dx, dy)); q.In(img.Rect) {
				img.Set(q.X, q.Y, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// drawLabel draws a simple digit label at the given position using a 3x5
// pixel font.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.Color) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			if p := image.Pt(x+dx, y+dy); p.In(bounds) {
				img.Set(p.X, p.Y, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel != '1' {
					continue
				}
				if p := image.Pt(cx+col, y+row); p.In(bounds) {
					img.Set(p.X, p.Y, fg)
				}
			}
		}
		cx += charWidth
	}
}
