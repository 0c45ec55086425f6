package geom

import "sort"

// ConvexHull returns the convex hull of points in counter-clockwise order
// (in image coordinates, where Y grows downward, this is visually clockwise),
// starting from the lowest-X, lowest-Y point. Collinear boundary points are
// dropped. Duplicates are tolerated.
//
// Fewer than three distinct points cannot enclose an area; in that case the
// distinct points are returned as-is and callers decide whether that is
// degenerate for them.
func ConvexHull(points PointSequence) PointSequence {
	pts := points.Clone()
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	pts = dedupSorted(pts)
	if len(pts) < 3 {
		return pts
	}

	// Andrew's monotone chain.
	hull := make(PointSequence, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// cross is the z component of (a-o) x (b-o).
func cross(o, a, b Point2D) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func dedupSorted(pts PointSequence) PointSequence {
	if len(pts) == 0 {
		return pts
	}
	out := pts[:1]
	for _, p := range pts[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// PolygonArea returns the absolute area enclosed by a simple polygon using
// the shoelace formula.
func PolygonArea(poly PointSequence) float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	for i := range poly {
		j := (i + 1) % len(poly)
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}
