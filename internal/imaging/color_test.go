package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

func TestRegionColor_Solid(t *testing.T) {
	img := createInMemoryImage(10, 10, color.NRGBA{R: 255, A: 255})
	m := rectMask(10, 10, image.Rect(2, 2, 6, 5))

	result, err := RegionColor(img, m)
	if err != nil {
		t.Fatalf("RegionColor failed: %v", err)
	}
	if result.Pixels != 12 {
		t.Errorf("Pixels: got %d, want 12", result.Pixels)
	}
	if result.Mean.Hex != "#ff0000" {
		t.Errorf("Hex: got %s, want #ff0000", result.Mean.Hex)
	}
	if result.Mean.RGB != (RGBColor{R: 255}) {
		t.Errorf("RGB: got %+v", result.Mean.RGB)
	}
	if result.Mean.HSL.H != 0 || result.Mean.HSL.S != 100 || result.Mean.HSL.L != 50 {
		t.Errorf("HSL: got %+v, want {0 100 50}", result.Mean.HSL)
	}
	if result.Spread != 0 {
		t.Errorf("Spread: got %v, want 0", result.Spread)
	}
}

func TestRegionColor_OnlyMaskedPixels(t *testing.T) {
	img := createInMemoryImage(10, 10, color.NRGBA{B: 255, A: 255})
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			img.SetNRGBA(x, y, color.NRGBA{G: 255, A: 255})
		}
	}
	result, err := RegionColor(img, rectMask(10, 10, image.Rect(0, 0, 10, 5)))
	if err != nil {
		t.Fatalf("RegionColor failed: %v", err)
	}
	if result.Mean.Hex != "#00ff00" {
		t.Errorf("Hex: got %s, want #00ff00", result.Mean.Hex)
	}

	mixed, err := RegionColor(img, rectMask(10, 10, image.Rect(0, 0, 10, 10)))
	if err != nil {
		t.Fatalf("RegionColor failed: %v", err)
	}
	if mixed.Spread <= 0 {
		t.Error("a two-colour region should have positive spread")
	}
}

func TestRegionColor_Errors(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)
	if _, err := RegionColor(img, rectMask(10, 10, image.Rectangle{})); err == nil {
		t.Error("empty mask should fail")
	}
	if _, err := RegionColor(img, rectMask(9, 10, image.Rect(0, 0, 3, 3))); !errors.Is(err, geom.ErrShapeMismatch) {
		t.Errorf("size mismatch: got %v, want ErrShapeMismatch", err)
	}
}
