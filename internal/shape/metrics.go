package shape

import (
	"fmt"
	"math"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

// CircularityUndefined is returned by Circularity for isotropic point sets.
const CircularityUndefined = -1.0

// Centroid returns the arithmetic mean of all points.
func Centroid(points geom.PointSequence) (geom.Point2D, error) {
	if err := geom.RequireMinLen("centroid", points, 1); err != nil {
		return geom.Point2D{}, err
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return geom.Point2D{X: sumX / n, Y: sumY / n}, nil
}

// Area returns the number of points. Regions are represented by their
// member pixels, so this is a pixel count, not a polygon area.
func Area(points geom.PointSequence) int {
	return len(points)
}

// moments holds the second-order central moments of a point set.
type moments struct {
	a, b, c float64
}

func centralMoments(op string, points geom.PointSequence) (moments, error) {
	center, err := Centroid(points)
	if err != nil {
		return moments{}, fmt.Errorf("%s: %w", op, err)
	}
	var m moments
	for _, p := range points {
		dx := p.X - center.X
		dy := p.Y - center.Y
		m.a += dx * dx
		m.b += dx * dy
		m.c += dy * dy
	}
	m.b *= 2
	return m, nil
}

func (m moments) isotropic() bool {
	return m.b == 0 && m.a == m.c
}

// IsIsotropic reports whether points fall in the configuration for which
// Circularity and Orientation return their sentinels.
func IsIsotropic(points geom.PointSequence) (bool, error) {
	m, err := centralMoments("isotropic", points)
	if err != nil {
		return false, err
	}
	return m.isotropic(), nil
}

// Circularity returns the ratio of the minor to the major eigenvalue of the
// point set's second-moment matrix: 1 for a circle, approaching 0 as the set
// elongates. Isotropic sets yield CircularityUndefined.
//
// The check follows the moments exactly: a set whose cross term is zero but
// whose axis variances differ (an axis-aligned ellipse) is not isotropic and
// gets a ratio.
func Circularity(points geom.PointSequence) (float64, error) {
	m, err := centralMoments("circularity", points)
	if err != nil {
		return 0, err
	}
	if m.isotropic() {
		return CircularityUndefined, nil
	}
	diff := m.a - m.c
	h := math.Sqrt(diff*diff + m.b*m.b)
	half := (diff/2)*(diff/h) + (m.b/2)*(m.b/h)
	emin := (m.a+m.c)/2 - half
	emax := (m.a+m.c)/2 + half
	return emin / emax, nil
}

// Orientation returns the angle in radians, in [0, π/2], of the principal
// axis of the point set. It returns 0 when the cross term is zero or the
// axis variances are equal.
//
// The zero fallback conflates "no defined axis" with "horizontal axis";
// callers that care should check IsIsotropic.
func Orientation(points geom.PointSequence) (float64, error) {
	m, err := centralMoments("orientation", points)
	if err != nil {
		return 0, err
	}
	diff := m.a - m.c
	if m.b == 0 || diff == 0 {
		return 0, nil
	}
	return 0.5 * math.Acos(diff/math.Sqrt(m.b*m.b+diff*diff)), nil
}

// Metrics bundles the scalar descriptors of one point set.
type Metrics struct {
	Centroid    geom.Point2D `json:"centroid"`
	Area        int          `json:"area"`
	Circularity float64      `json:"circularity"`
	Orientation float64      `json:"orientation_radians"`
	Isotropic   bool         `json:"isotropic"`
}

// Describe computes all scalar metrics of points in one call.
func Describe(points geom.PointSequence) (*Metrics, error) {
	center, err := Centroid(points)
	if err != nil {
		return nil, err
	}
	circ, err := Circularity(points)
	if err != nil {
		return nil, err
	}
	orient, err := Orientation(points)
	if err != nil {
		return nil, err
	}
	iso, err := IsIsotropic(points)
	if err != nil {
		return nil, err
	}
	return &Metrics{
		Centroid:    center,
		Area:        Area(points),
		Circularity: circ,
		Orientation: orient,
		Isotropic:   iso,
	}, nil
}
