package imaging

import (
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/ironsheep/regionswap-mcp/internal/align"
	"github.com/ironsheep/regionswap-mcp/internal/blend"
	"github.com/ironsheep/regionswap-mcp/internal/geom"
	"github.com/ironsheep/regionswap-mcp/internal/mask"
	"github.com/ironsheep/regionswap-mcp/internal/shape"
)

// DefaultPoissonIterations bounds the Gauss-Seidel sweeps of SeamlessClone
// when a Geometry is created with a non-positive iteration count.
const DefaultPoissonIterations = 200

// Geometry is the default image-geometry provider used by the compositor.
//
// It supplies convex hulls, polygon fills, affine resampling and a Poisson
// seamless clone. All methods are safe for concurrent use; a Geometry holds
// no mutable state.
type Geometry struct {
	// PoissonIterations is the number of Gauss-Seidel sweeps SeamlessClone runs.
	PoissonIterations int
}

// NewGeometry returns a Geometry running the given number of Poisson sweeps.
func NewGeometry(poissonIterations int) *Geometry {
	if poissonIterations <= 0 {
		poissonIterations = DefaultPoissonIterations
	}
	return &Geometry{PoissonIterations: poissonIterations}
}

// ConvexHull returns the hull of points in counter-clockwise order.
func (g *Geometry) ConvexHull(points geom.PointSequence) geom.PointSequence {
	return geom.ConvexHull(points)
}

// FillPolygon rasterises poly into a binary mask covering canvas.
func (g *Geometry) FillPolygon(poly geom.PointSequence, canvas image.Rectangle) (*image.Gray, error) {
	return mask.FillPolygon(poly, canvas)
}

// WarpAffine resamples src into dst through t, which maps source pixel
// coordinates to destination pixel coordinates. Sampling is nearest
// neighbour. Every dst pixel whose pre-image falls outside src is set to the
// zero colour, so the border never wraps or extrapolates.
func (g *Geometry) WarpAffine(dst draw.Image, src image.Image, t align.Transform) error {
	if t.Det() == 0 {
		return fmt.Errorf("warp: singular transform %s: %w", t, geom.ErrDegenerate)
	}
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)

	// x/image/draw samples at pixel centres; shift by half a pixel on both
	// sides so integer coordinates keep meaning "pixel index".
	half := align.Transform{A: 1, D: 1, Tx: 0.5, Ty: 0.5}
	unhalf := align.Transform{A: 1, D: 1, Tx: -0.5, Ty: -0.5}
	c := half.Compose(t.Compose(unhalf))

	s2d := f64.Aff3{c.A, c.B, c.Tx, c.C, c.D, c.Ty}
	xdraw.NearestNeighbor.Transform(dst, s2d, src, src.Bounds(), xdraw.Src, nil)
	return nil
}

// SeamlessClone solves the Poisson equation over the masked area so that the
// pasted region keeps the gradients of source while matching target along
// the mask boundary. center is where the mask centroid lands in target; the
// masked source pixels are shifted by the difference.
//
// The solve is a fixed number of Gauss-Seidel sweeps starting from the
// target's own values, so cloning an image into itself is a no-op.
func (g *Geometry) SeamlessClone(source, target image.Image, m *image.Gray, center image.Point) (*image.NRGBA, error) {
	if err := mask.SameSize(source.Bounds(), m.Bounds()); err != nil {
		return nil, fmt.Errorf("seamless clone: source vs mask: %w", err)
	}
	fg := shape.Foreground(m)
	c0, err := shape.Centroid(fg)
	if err != nil {
		return nil, fmt.Errorf("seamless clone: empty mask: %w", geom.ErrDegenerate)
	}
	offset := center.Sub(c0.Image())

	src := blend.FromImage(source)
	dst := blend.FromImage(target)

	// index maps a target pixel to its slot in the unknowns, -1 outside Ω.
	index := make([]int, dst.W*dst.H)
	for i := range index {
		index[i] = -1
	}
	type cell struct{ sx, sy, tx, ty int }
	var cells []cell
	mb := m.Bounds()
	for _, p := range fg {
		sx, sy := int(p.X)-mb.Min.X, int(p.Y)-mb.Min.Y
		tx, ty := sx+offset.X, sy+offset.Y
		if tx < 0 || ty < 0 || tx >= dst.W || ty >= dst.H {
			continue
		}
		if index[ty*dst.W+tx] >= 0 {
			continue
		}
		index[ty*dst.W+tx] = len(cells)
		cells = append(cells, cell{sx, sy, tx, ty})
	}

	sweeps := g.PoissonIterations
	if sweeps <= 0 {
		sweeps = DefaultPoissonIterations
	}
	neighbours := [4]image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	out := dst.Clone()
	for it := 0; it < sweeps; it++ {
		for _, cl := range cells {
			for ch := 0; ch < out.C; ch++ {
				var sum float64
				n := 0
				for _, d := range neighbours {
					qx, qy := cl.tx+d.X, cl.ty+d.Y
					if qx < 0 || qy < 0 || qx >= out.W || qy >= out.H {
						continue
					}
					n++
					// Guidance from the source gradient; source neighbours
					// off the image contribute nothing.
					if sx, sy := cl.sx+d.X, cl.sy+d.Y; sx >= 0 && sy >= 0 && sx < src.W && sy < src.H {
						sum += src.At(cl.sx, cl.sy, ch) - src.At(sx, sy, ch)
					}
					// Unknown neighbours read the current estimate, boundary
					// neighbours the fixed target value; both live in out.
					sum += out.At(qx, qy, ch)
				}
				if n == 0 {
					continue
				}
				out.Set(cl.tx, cl.ty, ch, sum/float64(n))
			}
		}
	}
	return out.ToNRGBA()
}
