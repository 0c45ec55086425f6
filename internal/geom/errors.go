package geom

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerate reports input that is geometrically degenerate for the
	// requested operation.
	ErrDegenerate = errors.New("degenerate input")

	// ErrShapeMismatch reports inputs whose sizes must agree but do not.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// RequireMinLen returns an ErrDegenerate-wrapped error when points holds
// fewer than min entries. op names the calling operation in the message.
func RequireMinLen(op string, points PointSequence, min int) error {
	if len(points) < min {
		return fmt.Errorf("%s: need at least %d points, got %d: %w", op, min, len(points), ErrDegenerate)
	}
	return nil
}

// RequireSameLen returns an ErrShapeMismatch-wrapped error when a and b
// differ in length.
func RequireSameLen(op string, a, b PointSequence) error {
	if len(a) != len(b) {
		return fmt.Errorf("%s: %d source points vs %d target points: %w", op, len(a), len(b), ErrShapeMismatch)
	}
	return nil
}
