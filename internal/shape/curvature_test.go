package shape

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

func TestCurvatureAtPoint(t *testing.T) {
	tests := []struct {
		name    string
		l, m, n geom.Point2D
		want    float64
	}{
		{"collinear", geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0), 0},
		{"collinear uneven spacing", geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(5, 5), 0},
		// Unit segments turning 90 degrees: |Δt| = √2, ds = 1.
		{"right angle", geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), 2},
		// Reversal: |Δt| = 2, ds = 1.
		{"reversal", geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0, 0), 4},
		// Segments of length 2: |Δt| = √2, ds = 2.
		{"right angle scaled", geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 2), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CurvatureAtPoint(tt.l, tt.m, tt.n)
			if err != nil {
				t.Fatalf("CurvatureAtPoint failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CurvatureAtPoint: got %.9f, want %.9f", got, tt.want)
			}
			if got < 0 {
				t.Errorf("CurvatureAtPoint negative: %v", got)
			}
		})
	}
}

func TestCurvatureAtPoint_ZeroSegment(t *testing.T) {
	_, err := CurvatureAtPoint(geom.Pt(1, 1), geom.Pt(1, 1), geom.Pt(2, 2))
	if !errors.Is(err, geom.ErrDegenerate) {
		t.Errorf("got %v, want ErrDegenerate", err)
	}
}

func TestCurvatureProfile(t *testing.T) {
	// An L-shaped contour: sharp corners carry the most curvature.
	contour := geom.PointSequence{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4}, {X: 0, Y: 2},
	}

	profile, err := CurvatureProfile(contour)
	if err != nil {
		t.Fatalf("CurvatureProfile failed: %v", err)
	}
	if len(profile) != len(contour) {
		t.Fatalf("length: got %d, want %d", len(profile), len(contour))
	}

	var sawZero, sawOne bool
	for i, v := range profile {
		if v < 0 || v > 1 {
			t.Errorf("profile[%d] = %v outside [0,1]", i, v)
		}
		if v == 0 {
			sawZero = true
		}
		if v == 1 {
			sawOne = true
		}
	}
	if !sawZero || !sawOne {
		t.Errorf("min-max rescale should reach both ends: %v", profile)
	}

	// Straight runs through (2,0) and (0,2) have no curvature.
	if profile[1] != 0 {
		t.Errorf("profile[1] on straight run: got %v, want 0", profile[1])
	}
	if profile[7] != 0 {
		t.Errorf("profile[7] on straight run: got %v, want 0", profile[7])
	}
}

func TestCurvatureProfile_WrapsEnds(t *testing.T) {
	// The first point is a corner only when the contour is treated as closed.
	contour := geom.PointSequence{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 1}}
	profile, err := CurvatureProfile(contour)
	if err != nil {
		t.Fatalf("CurvatureProfile failed: %v", err)
	}
	if profile[0] != 1 {
		t.Errorf("profile[0]: got %v, want 1 (corner)", profile[0])
	}
	if profile[7] != 0 {
		t.Errorf("profile[7]: got %v, want 0 (straight)", profile[7])
	}
}

func TestCurvatureProfile_Uniform(t *testing.T) {
	square := geom.PointSequence{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	profile, err := CurvatureProfile(square)
	if err != nil {
		t.Fatalf("CurvatureProfile failed: %v", err)
	}
	for i, v := range profile {
		if v != 0 {
			t.Errorf("profile[%d]: got %v, want 0", i, v)
		}
	}
}

func TestCurvatureProfile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		contour geom.PointSequence
	}{
		{"too short", geom.PointSequence{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		{"duplicate neighbours", geom.PointSequence{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CurvatureProfile(tt.contour); !errors.Is(err, geom.ErrDegenerate) {
				t.Errorf("got %v, want ErrDegenerate", err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	in := []float64{2, 4, 6, 10}
	got, err := Normalize(in, 0, 1)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	want := []float64{0, 0.25, 0.5, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if in[0] != 2 || in[3] != 10 {
		t.Errorf("Normalize modified its input: %v", in)
	}

	ranged, err := Normalize(in, -1, 1)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if ranged[0] != -1 || ranged[3] != 1 {
		t.Errorf("Normalize to [-1,1]: got %v", ranged)
	}
}

func TestNormalize_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"empty", nil},
		{"zero range", []float64{3, 3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Normalize(tt.values, 0, 1); !errors.Is(err, geom.ErrDegenerate) {
				t.Errorf("Normalize: got %v, want ErrDegenerate", err)
			}
		})
	}

	values := []float64{5, 5}
	if err := NormalizeInPlace(values, 0, 1); err == nil {
		t.Error("NormalizeInPlace: expected error for zero range")
	}
	if values[0] != 5 || values[1] != 5 {
		t.Errorf("NormalizeInPlace modified values on error: %v", values)
	}
}
