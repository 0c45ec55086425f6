package align

import (
	"fmt"
	"math"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

// Transform is a 2×3 affine map from source to target coordinates.
type Transform struct {
	A, B, Tx float64
	C, D, Ty float64
}

// Identity returns the transform that leaves every point in place.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// Similarity builds the transform that scales by s and rotates by theta
// about the origin, then translates by (tx, ty).
func Similarity(s, theta, tx, ty float64) Transform {
	cos, sin := math.Cos(theta), math.Sin(theta)
	return Transform{
		A: s * cos, B: -s * sin, Tx: tx,
		C: s * sin, D: s * cos, Ty: ty,
	}
}

// Apply maps p through t.
func (t Transform) Apply(p geom.Point2D) geom.Point2D {
	return geom.Point2D{
		X: t.A*p.X + t.B*p.Y + t.Tx,
		Y: t.C*p.X + t.D*p.Y + t.Ty,
	}
}

// ApplyAll maps every point of seq through t.
func (t Transform) ApplyAll(seq geom.PointSequence) geom.PointSequence {
	out := make(geom.PointSequence, len(seq))
	for i, p := range seq {
		out[i] = t.Apply(p)
	}
	return out
}

// Det returns the determinant of the linear part.
func (t Transform) Det() float64 {
	return t.A*t.D - t.B*t.C
}

// Invert returns the transform mapping target coordinates back to source
// coordinates. A zero-scale transform has no inverse and yields
// geom.ErrDegenerate.
func (t Transform) Invert() (Transform, error) {
	det := t.Det()
	if det == 0 {
		return Transform{}, fmt.Errorf("invert transform: zero determinant: %w", geom.ErrDegenerate)
	}
	a := t.D / det
	b := -t.B / det
	c := -t.C / det
	d := t.A / det
	return Transform{
		A: a, B: b, Tx: -(a*t.Tx + b*t.Ty),
		C: c, D: d, Ty: -(c*t.Tx + d*t.Ty),
	}, nil
}

// Compose returns the transform that applies u first, then t.
func (t Transform) Compose(u Transform) Transform {
	return Transform{
		A: t.A*u.A + t.B*u.C, B: t.A*u.B + t.B*u.D, Tx: t.A*u.Tx + t.B*u.Ty + t.Tx,
		C: t.C*u.A + t.D*u.C, D: t.C*u.B + t.D*u.D, Ty: t.C*u.Tx + t.D*u.Ty + t.Ty,
	}
}

// Scale returns the scale of the linear part's first column. For a
// similarity transform this is the uniform scale factor.
func (t Transform) Scale() float64 {
	return math.Hypot(t.A, t.C)
}

// Rotation returns the rotation angle in radians, in (-π, π], of the linear
// part's first column.
func (t Transform) Rotation() float64 {
	return math.Atan2(t.C, t.A)
}

// Translation returns (Tx, Ty).
func (t Transform) Translation() geom.Point2D {
	return geom.Point2D{X: t.Tx, Y: t.Ty}
}

// Matrix returns the transform as row-major 2×3 rows.
func (t Transform) Matrix() [2][3]float64 {
	return [2][3]float64{
		{t.A, t.B, t.Tx},
		{t.C, t.D, t.Ty},
	}
}

// IsIdentity reports whether every coefficient is within tol of the
// identity's.
func (t Transform) IsIdentity(tol float64) bool {
	id := Identity()
	return math.Abs(t.A-id.A) <= tol && math.Abs(t.B-id.B) <= tol &&
		math.Abs(t.C-id.C) <= tol && math.Abs(t.D-id.D) <= tol &&
		math.Abs(t.Tx) <= tol && math.Abs(t.Ty) <= tol
}

// String formats t as two matrix rows.
func (t Transform) String() string {
	return fmt.Sprintf("[%.4g %.4g %.4g; %.4g %.4g %.4g]", t.A, t.B, t.Tx, t.C, t.D, t.Ty)
}
