package blend

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
	"github.com/ironsheep/regionswap-mcp/internal/mask"
	"github.com/ironsheep/regionswap-mcp/internal/shape"
)

// Mode selects how a warped region is written into the output image.
type Mode string

const (
	// ModePyramid blends through Laplacian pyramids.
	ModePyramid Mode = "pyramid"
	// ModeHard copies masked pixels with no blending.
	ModeHard Mode = "hard"
	// ModeSeamless defers to a PoissonCloner.
	ModeSeamless Mode = "seamless"
)

// ParseMode validates a mode name. The empty string selects ModePyramid.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePyramid, "":
		return ModePyramid, nil
	case ModeHard:
		return ModeHard, nil
	case ModeSeamless:
		return ModeSeamless, nil
	default:
		return "", fmt.Errorf("unknown blend mode: %s", s)
	}
}

// PoissonCloner is a gradient-domain blending primitive. It returns a copy
// of target in which the masked area takes its gradients from source and its
// boundary values from target. center is where the mask's centroid lands in
// target.
type PoissonCloner interface {
	SeamlessClone(source, target image.Image, m *image.Gray, center image.Point) (*image.NRGBA, error)
}

func checkCloneInputs(op string, source, target image.Image, m *image.Gray) error {
	if err := mask.SameSize(source.Bounds(), target.Bounds()); err != nil {
		return fmt.Errorf("%s: source vs target: %w", op, err)
	}
	if err := mask.SameSize(m.Bounds(), target.Bounds()); err != nil {
		return fmt.Errorf("%s: mask vs target: %w", op, err)
	}
	return nil
}

// HardClone returns a copy of target with the masked pixels of source
// pasted over it.
func HardClone(source image.Image, m *image.Gray, target image.Image) (*image.NRGBA, error) {
	if err := checkCloneInputs("hard clone", source, target, m); err != nil {
		return nil, err
	}
	tb := target.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, tb.Dx(), tb.Dy()))
	draw.Draw(out, out.Bounds(), target, tb.Min, draw.Src)
	sb, mb := source.Bounds(), m.Bounds()
	for y := 0; y < tb.Dy(); y++ {
		for x := 0; x < tb.Dx(); x++ {
			if m.GrayAt(mb.Min.X+x, mb.Min.Y+y).Y > 0 {
				out.Set(x, y, source.At(sb.Min.X+x, sb.Min.Y+y))
			}
		}
	}
	return out, nil
}

// BlendedClone composites the masked part of source into target through
// Laplacian pyramids of the given depth and returns the collapsed result.
func BlendedClone(source image.Image, m *image.Gray, target image.Image, levels int) (*image.NRGBA, error) {
	if err := checkCloneInputs("blended clone", source, target, m); err != nil {
		return nil, err
	}

	srcPyr, err := LaplacianPyramid(FromImage(source), levels)
	if err != nil {
		return nil, fmt.Errorf("blended clone: %w", err)
	}
	dstPyr, err := LaplacianPyramid(FromImage(target), levels)
	if err != nil {
		return nil, fmt.Errorf("blended clone: %w", err)
	}
	weights, err := MaskPyramid(m, levels)
	if err != nil {
		return nil, fmt.Errorf("blended clone: %w", err)
	}

	mixed, err := Composite(srcPyr, dstPyr, weights)
	if err != nil {
		return nil, fmt.Errorf("blended clone: %w", err)
	}
	collapsed, err := Collapse(mixed)
	if err != nil {
		return nil, fmt.Errorf("blended clone: %w", err)
	}
	return collapsed.ToNRGBA()
}

// SeamlessClone runs cloner on the masked part of source, seeded with the
// centroid of the mask. An empty mask has no centroid and yields
// geom.ErrDegenerate.
func SeamlessClone(source image.Image, m *image.Gray, target image.Image, cloner PoissonCloner) (*image.NRGBA, error) {
	if err := checkCloneInputs("seamless clone", source, target, m); err != nil {
		return nil, err
	}
	center, err := shape.Centroid(shape.Foreground(m))
	if err != nil {
		return nil, fmt.Errorf("seamless clone: empty mask: %w", geom.ErrDegenerate)
	}
	return cloner.SeamlessClone(source, target, mask.Binarize(m), center.Image())
}

// Clone dispatches to the clone function for mode.
func Clone(mode Mode, source image.Image, m *image.Gray, target image.Image, levels int, cloner PoissonCloner) (*image.NRGBA, error) {
	switch mode {
	case ModePyramid, "":
		return BlendedClone(source, m, target, levels)
	case ModeHard:
		return HardClone(source, m, target)
	case ModeSeamless:
		if cloner == nil {
			return nil, fmt.Errorf("seamless clone: no Poisson cloner configured")
		}
		return SeamlessClone(source, m, target, cloner)
	default:
		return nil, fmt.Errorf("unknown blend mode: %s", mode)
	}
}
