// Package landmarks names the landmark indexing scheme the compositor relies
// on and supplies a file-backed landmark provider that stands in for a
// learned detector.
package landmarks

import (
	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

// Indices into a 68-point facial landmark set.
const (
	// Count is the cardinality of a full landmark set.
	Count = 68

	Chin          = 8
	LeftEyeOuter  = 36
	RightEyeOuter = 45
)

// AffineAnchors are the correspondences used by the three-point affine
// estimator: chin and both outer eye corners.
var AffineAnchors = [3]int{Chin, LeftEyeOuter, RightEyeOuter}

// Scale multiplies every coordinate of every set by factor, matching an
// image that was resized by the same factor.
func Scale(sets []geom.PointSequence, factor float64) []geom.PointSequence {
	out := make([]geom.PointSequence, len(sets))
	for i, set := range sets {
		scaled := make(geom.PointSequence, len(set))
		for j, p := range set {
			scaled[j] = geom.Pt(p.X*factor, p.Y*factor)
		}
		out[i] = scaled
	}
	return out
}
