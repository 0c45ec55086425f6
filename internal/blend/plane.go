package blend

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

// Plane is a real-valued image with C interleaved channels. Values are not
// clamped, so band-pass levels may hold negative samples.
type Plane struct {
	W, H, C int
	Pix     []float64
}

// NewPlane allocates a zero plane.
func NewPlane(w, h, c int) *Plane {
	return &Plane{W: w, H: h, C: c, Pix: make([]float64, w*h*c)}
}

func (p *Plane) offset(x, y, c int) int {
	return (y*p.W+x)*p.C + c
}

// At returns channel c of pixel (x, y).
func (p *Plane) At(x, y, c int) float64 {
	return p.Pix[p.offset(x, y, c)]
}

// Set stores v in channel c of pixel (x, y).
func (p *Plane) Set(x, y, c int, v float64) {
	p.Pix[p.offset(x, y, c)] = v
}

// Clone returns a deep copy of p.
func (p *Plane) Clone() *Plane {
	out := &Plane{W: p.W, H: p.H, C: p.C, Pix: make([]float64, len(p.Pix))}
	copy(out.Pix, p.Pix)
	return out
}

// SameSize reports whether p and q have equal width and height.
func (p *Plane) SameSize(q *Plane) bool {
	return p.W == q.W && p.H == q.H
}

// FromImage converts img to a 3-channel plane of RGB values in [0, 255].
// Alpha is dropped.
func FromImage(img image.Image) *Plane {
	src := imaging.Clone(img)
	b := src.Bounds()
	p := NewPlane(b.Dx(), b.Dy(), 3)
	for y := 0; y < p.H; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < p.W; x++ {
			i := p.offset(x, y, 0)
			p.Pix[i] = float64(row[x*4])
			p.Pix[i+1] = float64(row[x*4+1])
			p.Pix[i+2] = float64(row[x*4+2])
		}
	}
	return p
}

// FromMask converts m to a 1-channel plane of weights: 1 where m is non-zero,
// 0 elsewhere.
func FromMask(m *image.Gray) *Plane {
	b := m.Bounds()
	p := NewPlane(b.Dx(), b.Dy(), 1)
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			if m.GrayAt(b.Min.X+x, b.Min.Y+y).Y > 0 {
				p.Pix[y*p.W+x] = 1
			}
		}
	}
	return p
}

// ToNRGBA rounds and clamps the first three channels into an opaque image.
// A 1-channel plane is written as grey.
func (p *Plane) ToNRGBA() (*image.NRGBA, error) {
	if p.C != 1 && p.C != 3 {
		return nil, fmt.Errorf("plane with %d channels cannot be converted to RGB: %w", p.C, geom.ErrShapeMismatch)
	}
	out := image.NewNRGBA(image.Rect(0, 0, p.W, p.H))
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			var r, g, b uint8
			if p.C == 1 {
				r = toByte(p.At(x, y, 0))
				g, b = r, r
			} else {
				r = toByte(p.At(x, y, 0))
				g = toByte(p.At(x, y, 1))
				b = toByte(p.At(x, y, 2))
			}
			out.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out, nil
}

func toByte(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
