package shape

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

var errZeroRange = fmt.Errorf("zero value range: %w", geom.ErrDegenerate)

// Normalize linearly rescales values into [low, high] using their observed
// minimum and maximum and returns the result as a new slice. values is not
// modified.
//
// Empty input and input whose values are all equal return ErrDegenerate.
func Normalize(values []float64, low, high float64) ([]float64, error) {
	out := make([]float64, len(values))
	copy(out, values)
	if err := NormalizeInPlace(out, low, high); err != nil {
		return nil, err
	}
	return out, nil
}

// NormalizeInPlace is Normalize writing into values. On error values is left
// untouched.
func NormalizeInPlace(values []float64, low, high float64) error {
	if len(values) == 0 {
		return fmt.Errorf("normalize: empty input: %w", geom.ErrDegenerate)
	}
	minv := floats.Min(values)
	maxv := floats.Max(values)
	if minv == maxv {
		return fmt.Errorf("normalize: %w", errZeroRange)
	}
	span := maxv - minv
	for i, v := range values {
		values[i] = (v - minv) / span * (high - low)
	}
	floats.AddConst(low, values)
	return nil
}
