package shape

import (
	"image"
	"image/color"
	"testing"
)

// createMask returns a w x h gray mask with the given rectangles set to 255.
func createMask(w, h int, rects ...image.Rectangle) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, w, h))
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return mask
}

func TestForeground(t *testing.T) {
	mask := createMask(20, 20, image.Rect(5, 5, 8, 7))
	pts := Foreground(mask)
	if len(pts) != 6 {
		t.Fatalf("Foreground: got %d points, want 6", len(pts))
	}
	// Row-major order.
	if pts[0].X != 5 || pts[0].Y != 5 || pts[3].X != 5 || pts[3].Y != 6 {
		t.Errorf("Foreground order: got %v", pts)
	}
}

func TestForeground_RGBA(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 2, color.RGBA{255, 255, 255, 255})
	pts := Foreground(img)
	if len(pts) != 1 || pts[0].X != 1 || pts[0].Y != 2 {
		t.Errorf("Foreground: got %v, want [(1,2)]", pts)
	}
}

func TestRegions(t *testing.T) {
	mask := createMask(100, 100,
		image.Rect(10, 10, 40, 20), // 300 px, wide
		image.Rect(60, 60, 70, 70), // 100 px, square
		image.Rect(90, 0, 92, 2),   // 4 px, noise
	)

	regions, err := Regions(mask, 10)
	if err != nil {
		t.Fatalf("Regions failed: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("Regions: got %d, want 2", len(regions))
	}

	first := regions[0]
	if first.Area != 300 {
		t.Errorf("largest area: got %d, want 300", first.Area)
	}
	if first.Bounds != image.Rect(10, 10, 40, 20) {
		t.Errorf("largest bounds: got %v", first.Bounds)
	}
	if first.Centroid.X != 24.5 || first.Centroid.Y != 14.5 {
		t.Errorf("largest centroid: got %v, want (24.5,14.5)", first.Centroid)
	}
	if first.Circularity <= 0 || first.Circularity >= 1 {
		t.Errorf("wide rectangle circularity: got %v, want in (0,1)", first.Circularity)
	}

	second := regions[1]
	if second.Area != 100 {
		t.Errorf("second area: got %d, want 100", second.Area)
	}
	if second.Circularity != CircularityUndefined {
		t.Errorf("square circularity: got %v, want sentinel", second.Circularity)
	}
}

func TestRegions_DiagonalConnectivity(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 5, 5))
	for i := 0; i < 5; i++ {
		mask.SetGray(i, i, color.Gray{Y: 255})
	}
	regions, err := Regions(mask, 1)
	if err != nil {
		t.Fatalf("Regions failed: %v", err)
	}
	if len(regions) != 1 || regions[0].Area != 5 {
		t.Errorf("diagonal line should be one 8-connected region, got %+v", regions)
	}
}

func TestRegions_Empty(t *testing.T) {
	regions, err := Regions(image.NewGray(image.Rect(0, 0, 10, 10)), 1)
	if err != nil {
		t.Fatalf("Regions failed: %v", err)
	}
	if len(regions) != 0 {
		t.Errorf("empty mask: got %d regions", len(regions))
	}
}
