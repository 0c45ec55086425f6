package geom

import (
	"image"
	"math"
)

// Point2D is an immutable real-valued 2-D coordinate.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point2D{x, y}.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Add returns p+q.
func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{X: p.X - q.X, Y: p.Y - q.Y}
}

// Norm returns the Euclidean length of p seen as a vector.
func (p Point2D) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the Euclidean distance between p and q.
func (p Point2D) Dist(q Point2D) float64 {
	return p.Sub(q).Norm()
}

// Image rounds p to the nearest pixel coordinate.
func (p Point2D) Image() image.Point {
	return image.Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// PointSequence is an ordered sequence of points: a closed contour, a
// region's member pixels or a landmark set.
type PointSequence []Point2D

// FromImagePoints converts integer pixel coordinates to a PointSequence.
func FromImagePoints(pts []image.Point) PointSequence {
	seq := make(PointSequence, len(pts))
	for i, p := range pts {
		seq[i] = Point2D{X: float64(p.X), Y: float64(p.Y)}
	}
	return seq
}

// FromPairs converts [x, y] pairs, the wire form used by the landmark file
// and the tool server, to a PointSequence.
func FromPairs(pairs [][2]float64) PointSequence {
	seq := make(PointSequence, len(pairs))
	for i, p := range pairs {
		seq[i] = Point2D{X: p[0], Y: p[1]}
	}
	return seq
}

// Pairs is the inverse of FromPairs.
func (s PointSequence) Pairs() [][2]float64 {
	out := make([][2]float64, len(s))
	for i, p := range s {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}

// Translate returns a new sequence with every point shifted by d.
func (s PointSequence) Translate(d Point2D) PointSequence {
	out := make(PointSequence, len(s))
	for i, p := range s {
		out[i] = p.Add(d)
	}
	return out
}

// Clone returns a copy of s.
func (s PointSequence) Clone() PointSequence {
	out := make(PointSequence, len(s))
	copy(out, s)
	return out
}

// Bounds returns the smallest integer rectangle containing every point.
// An empty sequence yields the zero rectangle.
func (s PointSequence) Bounds() image.Rectangle {
	if len(s) == 0 {
		return image.Rectangle{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range s {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Floor(maxX))+1, int(math.Floor(maxY))+1)
}
