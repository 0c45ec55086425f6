// Package mask builds binary region masks from point sets and applies them
// to images.
//
// A mask is an *image.Gray whose pixels are 255 inside the region and 0
// elsewhere. Masks always share the bounds of the image they are applied to.
package mask

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/segment"
	"golang.org/x/image/vector"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

const (
	// On is the foreground value of a mask pixel.
	On = 255
	// Off is the background value of a mask pixel.
	Off = 0
)

// Build rasterises the filled convex hull of points into a mask covering
// canvas. Using the hull instead of the raw points smooths landmark noise
// into one contiguous region.
//
// Any pixel the hull polygon touches is foreground, so hull vertices and
// edges are included. Points outside canvas are clipped. Fewer than three
// non-collinear points yield geom.ErrDegenerate.
func Build(points geom.PointSequence, canvas image.Rectangle) (*image.Gray, error) {
	hull := geom.ConvexHull(points)
	if len(hull) < 3 {
		return nil, fmt.Errorf("build mask: hull of %d points has %d vertices: %w",
			len(points), len(hull), geom.ErrDegenerate)
	}
	return FillPolygon(hull, canvas)
}

// FillPolygon rasterises a simple polygon into a mask covering canvas.
// Vertex (x, y) sits at the centre of pixel (x, y).
func FillPolygon(poly geom.PointSequence, canvas image.Rectangle) (*image.Gray, error) {
	if canvas.Empty() {
		return nil, fmt.Errorf("fill polygon: empty canvas %v: %w", canvas, geom.ErrDegenerate)
	}
	if err := geom.RequireMinLen("fill polygon", poly, 3); err != nil {
		return nil, err
	}

	w, h := canvas.Dx(), canvas.Dy()
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	local := func(p geom.Point2D) (float32, float32) {
		return float32(p.X - float64(canvas.Min.X) + 0.5), float32(p.Y - float64(canvas.Min.Y) + 0.5)
	}
	x, y := local(poly[0])
	z.MoveTo(x, y)
	for _, p := range poly[1:] {
		x, y = local(p)
		z.LineTo(x, y)
	}
	z.ClosePath()

	coverage := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})

	out := image.NewGray(canvas)
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			if coverage.AlphaAt(lx, ly).A > 0 {
				out.SetGray(canvas.Min.X+lx, canvas.Min.Y+ly, color.Gray{Y: On})
			}
		}
	}
	return out, nil
}

// Binarize maps every pixel of m to On or Off. Pixels at or above the
// threshold level 1 become On, so any residual grey from resampling counts
// as foreground. The result has m's bounds.
func Binarize(m image.Image) *image.Gray {
	th := segment.Threshold(m, 1)
	bounds := m.Bounds()
	out := image.NewGray(bounds)
	tb := th.Bounds()
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			if th.GrayAt(tb.Min.X+x, tb.Min.Y+y).Y > 0 {
				out.SetGray(bounds.Min.X+x, bounds.Min.Y+y, color.Gray{Y: On})
			}
		}
	}
	return out
}

// Area returns the number of foreground pixels in m.
func Area(m *image.Gray) int {
	n := 0
	for _, v := range m.Pix {
		if v > 0 {
			n++
		}
	}
	return n
}

// Extract returns a copy of src in which every pixel outside m is
// transparent black. src and m must have equal dimensions.
func Extract(src image.Image, m *image.Gray) (*image.NRGBA, error) {
	if err := SameSize(src.Bounds(), m.Bounds()); err != nil {
		return nil, fmt.Errorf("extract region: %w", err)
	}
	sb := src.Bounds()
	mb := m.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
	for y := 0; y < sb.Dy(); y++ {
		for x := 0; x < sb.Dx(); x++ {
			if m.GrayAt(mb.Min.X+x, mb.Min.Y+y).Y == 0 {
				continue
			}
			out.Set(x, y, src.At(sb.Min.X+x, sb.Min.Y+y))
		}
	}
	return out, nil
}

// SameSize returns a geom.ErrShapeMismatch-wrapped error unless a and b have
// equal width and height.
func SameSize(a, b image.Rectangle) error {
	if a.Dx() != b.Dx() || a.Dy() != b.Dy() {
		return fmt.Errorf("%dx%d vs %dx%d: %w", a.Dx(), a.Dy(), b.Dx(), b.Dy(), geom.ErrShapeMismatch)
	}
	return nil
}
