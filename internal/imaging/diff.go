package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/regionswap-mcp/internal/mask"
)

// DefaultDiffThreshold is the Lab distance above which two pixels count as
// different. A distance of about 0.02 is at the edge of what is visible.
const DefaultDiffThreshold = 0.02

// DiffResult contains pixel-wise comparison statistics of two images.
type DiffResult struct {
	SimilarityScore float64 `json:"similarity_score"`
	PixelsDifferent int     `json:"pixels_different"`
	TotalPixels     int     `json:"total_pixels"`
	MeanDistance    float64 `json:"mean_lab_distance"`
	MaxDistance     float64 `json:"max_lab_distance"`

	// Changed is the bounding box of the differing pixels; empty when the
	// images match.
	Changed image.Rectangle `json:"-"`
	X1      int             `json:"changed_x1"`
	Y1      int             `json:"changed_y1"`
	X2      int             `json:"changed_x2"`
	Y2      int             `json:"changed_y2"`
}

// Diff compares a and b pixel by pixel in CIE Lab space. Both images must
// have the same size; their origins may differ. A pixel counts as different
// when its Lab distance exceeds threshold; a non-positive threshold selects
// DefaultDiffThreshold.
func Diff(a, b image.Image, threshold float64) (*DiffResult, error) {
	if err := mask.SameSize(a.Bounds(), b.Bounds()); err != nil {
		return nil, fmt.Errorf("image diff: %w", err)
	}
	if threshold <= 0 {
		threshold = DefaultDiffThreshold
	}

	ab, bb := a.Bounds(), b.Bounds()
	w, h := ab.Dx(), ab.Dy()
	totalPixels := w * h
	if totalPixels == 0 {
		return nil, fmt.Errorf("image diff: empty images")
	}

	pixelsDifferent := 0
	var total, maxDist float64
	var changed image.Rectangle

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ca, _ := colorful.MakeColor(a.At(ab.Min.X+x, ab.Min.Y+y))
			cb, _ := colorful.MakeColor(b.At(bb.Min.X+x, bb.Min.Y+y))
			d := ca.DistanceLab(cb)
			total += d
			maxDist = math.Max(maxDist, d)
			if d > threshold {
				pixelsDifferent++
				changed = changed.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}

	similarity := 1.0 - float64(pixelsDifferent)/float64(totalPixels)
	return &DiffResult{
		SimilarityScore: math.Round(similarity*1000) / 1000,
		PixelsDifferent: pixelsDifferent,
		TotalPixels:     totalPixels,
		MeanDistance:    math.Round(total/float64(totalPixels)*10000) / 10000,
		MaxDistance:     math.Round(maxDist*10000) / 10000,
		Changed:         changed,
		X1:              changed.Min.X,
		Y1:              changed.Min.Y,
		X2:              changed.Max.X,
		Y2:              changed.Max.Y,
	}, nil
}
