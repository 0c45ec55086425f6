package align

import (
	"fmt"
	"math"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
	"github.com/ironsheep/regionswap-mcp/internal/shape"
)

// SimilarityEstimator fits uniform scale, rotation and translation to all
// correspondences at once.
//
// Both sets are centred on their centroids. The scale is the ratio of the
// target's to the source's RMS dispersion about its centroid, and the
// rotation is the closed-form least-squares angle
//
//	θ = atan2(Σ t.y·s.x − t.x·s.y, Σ t.x·s.x + t.y·s.y)
//
// over the centred points. The result scales and rotates about the source
// centroid and carries it onto the target centroid.
type SimilarityEstimator struct{}

// Name implements Estimator.
func (SimilarityEstimator) Name() string { return "similarity" }

// Estimate implements Estimator.
func (SimilarityEstimator) Estimate(src, dst geom.PointSequence) (Transform, error) {
	if err := geom.RequireSameLen("similarity", src, dst); err != nil {
		return Transform{}, err
	}
	if err := geom.RequireMinLen("similarity", src, 1); err != nil {
		return Transform{}, err
	}

	c1, err := shape.Centroid(src)
	if err != nil {
		return Transform{}, err
	}
	c2, err := shape.Centroid(dst)
	if err != nil {
		return Transform{}, err
	}

	var srcDisp, dstDisp, sinSum, cosSum float64
	for i := range src {
		s := src[i].Sub(c1)
		t := dst[i].Sub(c2)
		srcDisp += s.X*s.X + s.Y*s.Y
		dstDisp += t.X*t.X + t.Y*t.Y
		sinSum += t.Y*s.X - t.X*s.Y
		cosSum += t.X*s.X + t.Y*s.Y
	}
	if srcDisp == 0 {
		return Transform{}, fmt.Errorf("similarity: source points have zero dispersion: %w", geom.ErrDegenerate)
	}

	scale := math.Sqrt(dstDisp / srcDisp)
	theta := math.Atan2(sinSum, cosSum)

	t := Similarity(scale, theta, 0, 0)
	moved := t.Apply(c1)
	t.Tx = c2.X - moved.X
	t.Ty = c2.Y - moved.Y
	return t, nil
}
