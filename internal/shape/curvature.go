package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

// CurvatureAtPoint estimates the squared turning rate at m given its contour
// neighbours l and n:
//
//	t_i   = (m - l) / |m - l|
//	t_i+1 = (n - m) / |n - m|
//	ds    = (|m - l| + |n - m|) / 2
//	k     = (|t_i - t_i+1| / ds)²
//
// Coincident neighbours give a zero-length segment and ErrDegenerate.
func CurvatureAtPoint(l, m, n geom.Point2D) (float64, error) {
	back := m.Sub(l)
	fwd := n.Sub(m)
	dsi := back.Norm()
	dsi1 := fwd.Norm()
	if dsi == 0 || dsi1 == 0 {
		return 0, fmt.Errorf("curvature at (%g,%g): zero-length segment: %w", m.X, m.Y, geom.ErrDegenerate)
	}
	ds := (dsi + dsi1) / 2

	tx := back.X/dsi - fwd.X/dsi1
	ty := back.Y/dsi - fwd.Y/dsi1
	k := math.Sqrt(tx*tx+ty*ty) / ds
	return k * k, nil
}

// CurvatureProfile returns the curvature at every point of a closed contour,
// rescaled into [0, 1]. The contour wraps, so the first point uses the last
// as its predecessor and the last uses the first as its successor.
//
// The result has the same length as contour. When every raw curvature is
// equal (a regular polygon, a sampled circle) there is no range to rescale
// and the profile is all zeros.
func CurvatureProfile(contour geom.PointSequence) ([]float64, error) {
	if err := geom.RequireMinLen("curvature profile", contour, 3); err != nil {
		return nil, err
	}

	n := len(contour)
	raw := make([]float64, n)
	for i := range contour {
		prev := contour[(i+n-1)%n]
		next := contour[(i+1)%n]
		k, err := CurvatureAtPoint(prev, contour[i], next)
		if err != nil {
			return nil, fmt.Errorf("curvature profile at index %d: %w", i, err)
		}
		raw[i] = k
	}

	if err := NormalizeInPlace(raw, 0, 1); err != nil {
		if errors.Is(err, errZeroRange) {
			return make([]float64, n), nil
		}
		return nil, err
	}
	return raw, nil
}
