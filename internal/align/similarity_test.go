package align

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

func TestSimilarityEstimator_Identity(t *testing.T) {
	sets := []geom.PointSequence{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		{{X: 3.5, Y: 7}, {X: 12, Y: -4}, {X: 40, Y: 22}, {X: 1, Y: 1}, {X: 9, Y: 30}},
	}
	for _, s := range sets {
		tr, err := SimilarityEstimator{}.Estimate(s, s)
		if err != nil {
			t.Fatalf("Estimate failed: %v", err)
		}
		if !tr.IsIdentity(1e-9) {
			t.Errorf("Estimate(S,S): got %v, want identity", tr)
		}
	}
}

func TestSimilarityEstimator_QuarterTurn(t *testing.T) {
	// Square centred at (5,5); rotating about the centre by 90 degrees
	// relabels the corners.
	src := geom.PointSequence{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	rot := Similarity(1, math.Pi/2, 0, 0)
	center := geom.Pt(5, 5)
	dst := make(geom.PointSequence, len(src))
	for i, p := range src {
		dst[i] = rot.Apply(p.Sub(center)).Add(center)
	}

	tr, err := SimilarityEstimator{}.Estimate(src, dst)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if !approx(tr.Scale(), 1, 1e-9) {
		t.Errorf("Scale: got %v, want 1", tr.Scale())
	}
	if !approx(tr.Rotation(), math.Pi/2, 1e-9) {
		t.Errorf("Rotation: got %v, want π/2", tr.Rotation())
	}
	if got := tr.Apply(center); !approxPoint(got, center, 1e-9) {
		t.Errorf("centroid should map to centroid: got %v", got)
	}
	for i := range src {
		if got := tr.Apply(src[i]); !approxPoint(got, dst[i], 1e-9) {
			t.Errorf("point %d: got %v, want %v", i, got, dst[i])
		}
	}
}

func TestSimilarityEstimator_RecoversKnownTransform(t *testing.T) {
	src := geom.PointSequence{{X: 1, Y: 2}, {X: 8, Y: 3}, {X: 5, Y: 9}, {X: -2, Y: 6}, {X: 3, Y: -4}}
	want := Similarity(1.8, -0.6, 40, 15)
	dst := want.ApplyAll(src)

	got, err := SimilarityEstimator{}.Estimate(src, dst)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if !approx(got.Scale(), 1.8, 1e-9) || !approx(got.Rotation(), -0.6, 1e-9) {
		t.Errorf("got scale %v rotation %v, want 1.8 / -0.6", got.Scale(), got.Rotation())
	}
	if !approx(got.Tx, 40, 1e-7) || !approx(got.Ty, 15, 1e-7) {
		t.Errorf("translation: got (%v,%v), want (40,15)", got.Tx, got.Ty)
	}
}

func TestSimilarityEstimator_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src, dst geom.PointSequence
		want     error
	}{
		{"length mismatch", geom.PointSequence{{X: 0, Y: 0}, {X: 1, Y: 1}}, geom.PointSequence{{X: 0, Y: 0}}, geom.ErrShapeMismatch},
		{"empty", nil, nil, geom.ErrDegenerate},
		{"zero dispersion", geom.PointSequence{{X: 2, Y: 2}, {X: 2, Y: 2}}, geom.PointSequence{{X: 0, Y: 0}, {X: 1, Y: 1}}, geom.ErrDegenerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SimilarityEstimator{}.Estimate(tt.src, tt.dst)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}
