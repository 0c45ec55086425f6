package blend

import (
	"fmt"
	"image"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
	"github.com/ironsheep/regionswap-mcp/internal/mask"
)

// Pyramid is an ordered sequence of planes; index 0 is the finest level.
type Pyramid []*Plane

func requireLevels(op string, levels int) error {
	if levels < 1 {
		return fmt.Errorf("%s: levels must be >= 1, got %d: %w", op, levels, geom.ErrDegenerate)
	}
	return nil
}

// GaussianPyramid returns levels planes: p itself, then successive
// Downsample results. The level count is fixed; a level that has shrunk to
// 1×1 stays 1×1.
func GaussianPyramid(p *Plane, levels int) (Pyramid, error) {
	if err := requireLevels("gaussian pyramid", levels); err != nil {
		return nil, err
	}
	pyr := make(Pyramid, levels)
	pyr[0] = p
	for k := 1; k < levels; k++ {
		pyr[k] = Downsample(pyr[k-1])
	}
	return pyr, nil
}

// LaplacianPyramid decomposes p into levels-1 band-pass levels followed by
// the coarsest Gaussian level, which carries the low-frequency residual.
func LaplacianPyramid(p *Plane, levels int) (Pyramid, error) {
	gauss, err := GaussianPyramid(p, levels)
	if err != nil {
		return nil, err
	}
	pyr := make(Pyramid, levels)
	for k := 0; k < levels-1; k++ {
		up := Upsample(gauss[k+1], gauss[k].W, gauss[k].H)
		band := gauss[k].Clone()
		for i := range band.Pix {
			band.Pix[i] -= up.Pix[i]
		}
		pyr[k] = band
	}
	pyr[levels-1] = gauss[levels-1].Clone()
	return pyr, nil
}

// MaskPyramid binarises m to {0, 1} and returns its Gaussian pyramid, whose
// coarser levels hold fractional weights near the region boundary.
func MaskPyramid(m image.Image, levels int) (Pyramid, error) {
	return GaussianPyramid(FromMask(mask.Binarize(m)), levels)
}

// Composite blends two Laplacian pyramids level by level:
//
//	out_k = source_k·mask_k + target_k·(1 − mask_k)
//
// All three pyramids must have the same level count and matching level
// sizes. A 1-channel mask weights every channel of the bands.
func Composite(source, target, weights Pyramid) (Pyramid, error) {
	if len(source) != len(target) || len(source) != len(weights) {
		return nil, fmt.Errorf("composite: level counts %d/%d/%d: %w",
			len(source), len(target), len(weights), geom.ErrShapeMismatch)
	}
	out := make(Pyramid, len(source))
	for k := range source {
		s, t, m := source[k], target[k], weights[k]
		if !s.SameSize(t) || !s.SameSize(m) || s.C != t.C {
			return nil, fmt.Errorf("composite: level %d sizes %dx%dx%d/%dx%dx%d/%dx%d: %w",
				k, s.W, s.H, s.C, t.W, t.H, t.C, m.W, m.H, geom.ErrShapeMismatch)
		}
		if m.C != 1 && m.C != s.C {
			return nil, fmt.Errorf("composite: level %d mask has %d channels for %d-channel bands: %w",
				k, m.C, s.C, geom.ErrShapeMismatch)
		}
		level := NewPlane(s.W, s.H, s.C)
		for y := 0; y < s.H; y++ {
			for x := 0; x < s.W; x++ {
				for c := 0; c < s.C; c++ {
					w := m.At(x, y, min(c, m.C-1))
					level.Set(x, y, c, s.At(x, y, c)*w+t.At(x, y, c)*(1-w))
				}
			}
		}
		out[k] = level
	}
	return out, nil
}

// Collapse rebuilds an image from a Laplacian pyramid: starting at the
// coarsest level it repeatedly upsamples and adds the next finer band.
func Collapse(pyr Pyramid) (*Plane, error) {
	if len(pyr) == 0 {
		return nil, fmt.Errorf("collapse: empty pyramid: %w", geom.ErrDegenerate)
	}
	cur := pyr[len(pyr)-1].Clone()
	for k := len(pyr) - 2; k >= 0; k-- {
		band := pyr[k]
		up := Upsample(cur, band.W, band.H)
		if up.C != band.C {
			return nil, fmt.Errorf("collapse: level %d has %d channels, expected %d: %w",
				k, band.C, up.C, geom.ErrShapeMismatch)
		}
		for i := range up.Pix {
			up.Pix[i] += band.Pix[i]
		}
		cur = up
	}
	return cur, nil
}
