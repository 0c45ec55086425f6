package align

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

// ThreePointAffineEstimator solves the affine transform that maps exactly
// three chosen correspondences onto each other. Indices selects which
// entries of the point sets are used; every other point is ignored.
type ThreePointAffineEstimator struct {
	Indices [3]int
}

// Name implements Estimator.
func (ThreePointAffineEstimator) Name() string { return "three_point" }

// Estimate implements Estimator.
func (e ThreePointAffineEstimator) Estimate(src, dst geom.PointSequence) (Transform, error) {
	if err := geom.RequireSameLen("three-point affine", src, dst); err != nil {
		return Transform{}, err
	}
	var s, d [3]geom.Point2D
	for k, idx := range e.Indices {
		if idx < 0 || idx >= len(src) {
			return Transform{}, fmt.Errorf("three-point affine: index %d outside %d points: %w",
				idx, len(src), geom.ErrDegenerate)
		}
		s[k] = src[idx]
		d[k] = dst[idx]
	}
	return AffineFromTriangles(s, d)
}

// AffineFromTriangles returns the affine transform carrying src[k] onto
// dst[k] for k = 0, 1, 2. Collinear source points leave the system
// underdetermined and yield geom.ErrDegenerate.
func AffineFromTriangles(src, dst [3]geom.Point2D) (Transform, error) {
	area2 := (src[1].X-src[0].X)*(src[2].Y-src[0].Y) - (src[1].Y-src[0].Y)*(src[2].X-src[0].X)
	if area2 == 0 {
		return Transform{}, fmt.Errorf("three-point affine: collinear source points: %w", geom.ErrDegenerate)
	}

	m := mat.NewDense(3, 3, []float64{
		src[0].X, src[0].Y, 1,
		src[1].X, src[1].Y, 1,
		src[2].X, src[2].Y, 1,
	})
	rhs := mat.NewDense(3, 2, []float64{
		dst[0].X, dst[0].Y,
		dst[1].X, dst[1].Y,
		dst[2].X, dst[2].Y,
	})

	var sol mat.Dense
	if err := sol.Solve(m, rhs); err != nil {
		return Transform{}, fmt.Errorf("three-point affine: %v: %w", err, geom.ErrDegenerate)
	}
	return Transform{
		A: sol.At(0, 0), B: sol.At(1, 0), Tx: sol.At(2, 0),
		C: sol.At(0, 1), D: sol.At(1, 1), Ty: sol.At(2, 1),
	}, nil
}
