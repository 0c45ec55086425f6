package align

import (
	"fmt"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

// Estimator computes the transform carrying src onto dst, where src[i]
// corresponds to dst[i].
type Estimator interface {
	Name() string
	Estimate(src, dst geom.PointSequence) (Transform, error)
}

// NewEstimator returns the estimator registered under name. anchors supplies
// the three landmark indices used by the "three_point" strategy.
func NewEstimator(name string, anchors [3]int) (Estimator, error) {
	switch name {
	case "similarity":
		return SimilarityEstimator{}, nil
	case "three_point", "":
		return ThreePointAffineEstimator{Indices: anchors}, nil
	default:
		return nil, fmt.Errorf("unknown estimator: %s", name)
	}
}

// Pair holds the forward transform between two point sets and its inverse.
type Pair struct {
	Forward Transform
	Inverse Transform
}

// EstimatePair runs e and inverts the result.
func EstimatePair(e Estimator, src, dst geom.PointSequence) (Pair, error) {
	fwd, err := e.Estimate(src, dst)
	if err != nil {
		return Pair{}, err
	}
	inv, err := fwd.Invert()
	if err != nil {
		return Pair{}, fmt.Errorf("%s: %w", e.Name(), err)
	}
	return Pair{Forward: fwd, Inverse: inv}, nil
}
