// Package compositor swaps pairs of landmark-delimited regions within an
// image.
//
// For each pair it estimates the transform between the two landmark sets,
// builds a convex-hull mask per region, warps each region and its mask into
// the other region's frame and blends the result into the output. Region A
// is written into B's place first, then B into A's; both warped regions are
// captured from the unmodified input before either write.
package compositor

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/regionswap-mcp/internal/align"
	"github.com/ironsheep/regionswap-mcp/internal/blend"
	"github.com/ironsheep/regionswap-mcp/internal/geom"
	"github.com/ironsheep/regionswap-mcp/internal/mask"
)

// ImageGeometryProvider supplies the image-geometry primitives the
// compositor needs.
type ImageGeometryProvider interface {
	ConvexHull(points geom.PointSequence) geom.PointSequence
	FillPolygon(poly geom.PointSequence, canvas image.Rectangle) (*image.Gray, error)
	// WarpAffine resamples src into dst through t, filling pixels with no
	// pre-image with zero.
	WarpAffine(dst draw.Image, src image.Image, t align.Transform) error

	blend.PoissonCloner
}

// LandmarkProvider detects landmark sets in an image. Each returned set has
// the same cardinality and index semantics.
type LandmarkProvider interface {
	Detect(ctx context.Context, img image.Image) ([]geom.PointSequence, error)
}

// Compositor swaps landmark-delimited regions. The zero value is not usable;
// Geometry and Estimator must be set.
type Compositor struct {
	Geometry  ImageGeometryProvider
	Estimator align.Estimator
	Mode      blend.Mode
	// Levels is the pyramid depth for blend.ModePyramid.
	Levels int
	Logger *log.Logger
}

// New returns a Compositor with the given collaborators.
func New(geometry ImageGeometryProvider, estimator align.Estimator, mode blend.Mode, levels int, logger *log.Logger) *Compositor {
	return &Compositor{
		Geometry:  geometry,
		Estimator: estimator,
		Mode:      mode,
		Levels:    levels,
		Logger:    logger,
	}
}

func (c *Compositor) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.New(io.Discard)
}

// Plan is everything a swap derives from the input before it writes any
// output pixel.
type Plan struct {
	Transforms align.Pair
	MaskA      *image.Gray
	MaskB      *image.Gray
	// WarpedA is region A resampled into B's frame, with its mask.
	WarpedA     *image.NRGBA
	WarpedMaskA *image.Gray
	// WarpedB is region B resampled into A's frame, with its mask.
	WarpedB     *image.NRGBA
	WarpedMaskB *image.Gray
}

// Prepare computes the transforms, masks and warped regions for swapping a
// and b in base. base must have its origin at (0, 0).
func (c *Compositor) Prepare(base image.Image, a, b geom.PointSequence) (*Plan, error) {
	if err := geom.RequireSameLen("swap", a, b); err != nil {
		return nil, err
	}
	if err := geom.RequireMinLen("swap", a, 3); err != nil {
		return nil, err
	}

	pair, err := align.EstimatePair(c.Estimator, a, b)
	if err != nil {
		return nil, fmt.Errorf("estimate transform: %w", err)
	}

	canvas := base.Bounds()
	maskA, err := c.regionMask(a, canvas)
	if err != nil {
		return nil, fmt.Errorf("region A: %w", err)
	}
	maskB, err := c.regionMask(b, canvas)
	if err != nil {
		return nil, fmt.Errorf("region B: %w", err)
	}

	regionA, err := mask.Extract(base, maskA)
	if err != nil {
		return nil, err
	}
	regionB, err := mask.Extract(base, maskB)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Transforms:  pair,
		MaskA:       maskA,
		MaskB:       maskB,
		WarpedA:     image.NewNRGBA(canvas),
		WarpedMaskA: image.NewGray(canvas),
		WarpedB:     image.NewNRGBA(canvas),
		WarpedMaskB: image.NewGray(canvas),
	}
	warps := []struct {
		dst draw.Image
		src image.Image
		t   align.Transform
	}{
		{plan.WarpedA, regionA, pair.Forward},
		{plan.WarpedMaskA, maskA, pair.Forward},
		{plan.WarpedB, regionB, pair.Inverse},
		{plan.WarpedMaskB, maskB, pair.Inverse},
	}
	for _, w := range warps {
		if err := c.Geometry.WarpAffine(w.dst, w.src, w.t); err != nil {
			return nil, fmt.Errorf("warp region: %w", err)
		}
	}
	return plan, nil
}

func (c *Compositor) regionMask(points geom.PointSequence, canvas image.Rectangle) (*image.Gray, error) {
	hull := c.Geometry.ConvexHull(points)
	if len(hull) < 3 {
		return nil, fmt.Errorf("hull has %d vertices: %w", len(hull), geom.ErrDegenerate)
	}
	return c.Geometry.FillPolygon(hull, canvas)
}

// Swap exchanges the regions delimited by a and b in img and returns the
// result. img is not modified. a and b must have equal length, index i of a
// corresponding to index i of b.
func (c *Compositor) Swap(img image.Image, a, b geom.PointSequence) (*image.NRGBA, error) {
	origin := img.Bounds().Min
	shift := geom.Pt(-float64(origin.X), -float64(origin.Y))
	a, b = a.Translate(shift), b.Translate(shift)

	base := imaging.Clone(img)
	plan, err := c.Prepare(base, a, b)
	if err != nil {
		return nil, err
	}

	out, err := blend.Clone(c.Mode, plan.WarpedA, plan.WarpedMaskA, base, c.Levels, c.Geometry)
	if err != nil {
		return nil, fmt.Errorf("blend A into B: %w", err)
	}
	out, err = blend.Clone(c.Mode, plan.WarpedB, plan.WarpedMaskB, out, c.Levels, c.Geometry)
	if err != nil {
		return nil, fmt.Errorf("blend B into A: %w", err)
	}
	return out, nil
}

// PairError records the failure of one region pair. Other pairs are not
// affected.
type PairError struct {
	// Index is the position of the pair in Pairs(len(sets)).
	Index int
	// A and B are the landmark set indices of the pair.
	A, B int
	Err  error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("pair %d (%d, %d): %v", e.Index, e.A, e.B, e.Err)
}

func (e *PairError) Unwrap() error { return e.Err }

// Pairs returns the region pairs processed for n detections: (i, (i+1) mod n)
// for even i. Fewer than two detections yield no pairs.
func Pairs(n int) [][2]int {
	if n < 2 {
		return nil
	}
	var pairs [][2]int
	for i := 0; i < n; i += 2 {
		pairs = append(pairs, [2]int{i, (i + 1) % n})
	}
	return pairs
}

// SwapAll swaps every pair of sets given by Pairs, one after another, each
// pair reading the output of the previous one. A pair that fails is logged,
// recorded and skipped; the returned image is always non-nil.
func (c *Compositor) SwapAll(img image.Image, sets []geom.PointSequence) (*image.NRGBA, []*PairError) {
	out := imaging.Clone(img)
	// Later pairs work on out, whose origin is (0, 0).
	origin := img.Bounds().Min
	shift := geom.Pt(-float64(origin.X), -float64(origin.Y))

	var failures []*PairError
	for i, p := range Pairs(len(sets)) {
		next, err := c.Swap(out, sets[p[0]].Translate(shift), sets[p[1]].Translate(shift))
		if err != nil {
			pe := &PairError{Index: i, A: p[0], B: p[1], Err: err}
			c.logger().Warn("region swap failed", "pair", i, "a", p[0], "b", p[1], "err", err)
			failures = append(failures, pe)
			continue
		}
		c.logger().Debug("swapped regions", "pair", i, "a", p[0], "b", p[1])
		out = next
	}
	return out, failures
}

// SwapDetected runs provider on img and swaps the detected regions. Errors
// from the provider are returned as is.
func (c *Compositor) SwapDetected(ctx context.Context, img image.Image, provider LandmarkProvider) (*image.NRGBA, []*PairError, error) {
	sets, err := provider.Detect(ctx, img)
	if err != nil {
		return nil, nil, err
	}
	c.logger().Info("detected regions", "count", len(sets), "pairs", len(Pairs(len(sets))))
	out, failures := c.SwapAll(img, sets)
	return out, failures, nil
}
