package imaging

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ironsheep/regionswap-mcp/internal/align"
	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

// createInMemoryImage creates a solid-colour image without touching disk.
func createInMemoryImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage gives every pixel a distinct colour.
func createPatternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 77, A: 255})
		}
	}
	return img
}

func rectMask(w, h int, r image.Rectangle) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return m
}

func TestNewGeometry(t *testing.T) {
	if g := NewGeometry(0); g.PoissonIterations != DefaultPoissonIterations {
		t.Errorf("NewGeometry(0): got %d iterations, want %d", g.PoissonIterations, DefaultPoissonIterations)
	}
	if g := NewGeometry(17); g.PoissonIterations != 17 {
		t.Errorf("NewGeometry(17): got %d iterations", g.PoissonIterations)
	}
}

func TestGeometry_HullAndFill(t *testing.T) {
	g := NewGeometry(0)
	pts := geom.PointSequence{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 5, Y: 4}, {X: 8, Y: 8}, {X: 2, Y: 8}}
	hull := g.ConvexHull(pts)
	if len(hull) != 4 {
		t.Fatalf("hull: got %d vertices, want 4", len(hull))
	}
	m, err := g.FillPolygon(hull, image.Rect(0, 0, 12, 12))
	if err != nil {
		t.Fatalf("FillPolygon failed: %v", err)
	}
	if m.GrayAt(5, 5).Y == 0 || m.GrayAt(10, 10).Y != 0 {
		t.Error("fill does not match the hull")
	}
}

func TestWarpAffine(t *testing.T) {
	g := NewGeometry(0)
	src := createPatternImage(10, 10)

	tests := []struct {
		name string
		t    align.Transform
		// want maps a source pixel to the destination pixel it should land on.
		want func(x, y int) (int, int)
	}{
		{"identity", align.Identity(), func(x, y int) (int, int) { return x, y }},
		{"translate", align.Similarity(1, 0, 3, 2), func(x, y int) (int, int) { return x + 3, y + 2 }},
		{"quarter turn", align.Similarity(1, math.Pi/2, 9, 0), func(x, y int) (int, int) { return 9 - y, x }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := image.NewNRGBA(image.Rect(0, 0, 10, 10))
			if err := g.WarpAffine(dst, src, tt.t); err != nil {
				t.Fatalf("WarpAffine failed: %v", err)
			}
			hit := make(map[image.Point]bool)
			for y := 0; y < 10; y++ {
				for x := 0; x < 10; x++ {
					dx, dy := tt.want(x, y)
					if dx < 0 || dy < 0 || dx >= 10 || dy >= 10 {
						continue
					}
					hit[image.Pt(dx, dy)] = true
					if got, want := dst.NRGBAAt(dx, dy), src.NRGBAAt(x, y); got != want {
						t.Fatalf("src (%d,%d) -> dst (%d,%d): got %v, want %v", x, y, dx, dy, got, want)
					}
				}
			}
			for y := 0; y < 10; y++ {
				for x := 0; x < 10; x++ {
					if !hit[image.Pt(x, y)] && dst.NRGBAAt(x, y) != (color.NRGBA{}) {
						t.Fatalf("uncovered dst (%d,%d) = %v, want zero fill", x, y, dst.NRGBAAt(x, y))
					}
				}
			}
		})
	}
}

func TestWarpAffine_OverwritesDestination(t *testing.T) {
	g := NewGeometry(0)
	src := rectMask(8, 8, image.Rect(0, 0, 8, 8))
	dst := rectMask(8, 8, image.Rect(0, 0, 8, 8))

	if err := g.WarpAffine(dst, src, align.Similarity(1, 0, 4, 0)); err != nil {
		t.Fatalf("WarpAffine failed: %v", err)
	}
	if dst.GrayAt(1, 1).Y != 0 {
		t.Error("pixels with no pre-image must be zero, not left from the old contents")
	}
	if dst.GrayAt(5, 1).Y != 255 {
		t.Error("shifted mask pixel missing")
	}
}

func TestWarpAffine_Singular(t *testing.T) {
	g := NewGeometry(0)
	dst := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	err := g.WarpAffine(dst, createPatternImage(4, 4), align.Transform{A: 1, B: 2, C: 2, D: 4})
	if !errors.Is(err, geom.ErrDegenerate) {
		t.Errorf("got %v, want ErrDegenerate", err)
	}
}

func TestSeamlessClone_SelfIsNoOp(t *testing.T) {
	g := NewGeometry(50)
	img := createPatternImage(20, 20)
	m := rectMask(20, 20, image.Rect(5, 5, 15, 15))

	out, err := g.SeamlessClone(img, img, m, image.Pt(10, 10))
	if err != nil {
		t.Fatalf("SeamlessClone failed: %v", err)
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if out.NRGBAAt(x, y) != img.NRGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, out.NRGBAAt(x, y), img.NRGBAAt(x, y))
			}
		}
	}
}

func TestSeamlessClone_MatchesTargetLevel(t *testing.T) {
	g := NewGeometry(200)
	source := createInMemoryImage(20, 20, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	target := createInMemoryImage(20, 20, color.NRGBA{R: 50, G: 50, B: 50, A: 255})
	m := rectMask(20, 20, image.Rect(5, 5, 15, 15))

	out, err := g.SeamlessClone(source, target, m, image.Pt(10, 10))
	if err != nil {
		t.Fatalf("SeamlessClone failed: %v", err)
	}
	// A flat source carries no gradients, so the region takes the target level.
	if got := out.NRGBAAt(10, 10); got.R != 50 {
		t.Errorf("centre R = %d, want 50", got.R)
	}
}

func TestSeamlessClone_TransfersDetailAtCenter(t *testing.T) {
	g := NewGeometry(200)
	source := createInMemoryImage(30, 30, color.NRGBA{R: 20, G: 20, B: 20, A: 255})
	for _, p := range []image.Point{{10, 10}, {11, 10}, {10, 11}, {11, 11}} {
		source.SetNRGBA(p.X, p.Y, color.NRGBA{R: 120, G: 120, B: 120, A: 255})
	}
	target := createInMemoryImage(30, 30, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	// Centroid of the mask is (10, 10); move it to (20, 20).
	m := rectMask(30, 30, image.Rect(5, 5, 16, 16))

	out, err := g.SeamlessClone(source, target, m, image.Pt(20, 20))
	if err != nil {
		t.Fatalf("SeamlessClone failed: %v", err)
	}
	if got := out.NRGBAAt(20, 20).R; got < 180 {
		t.Errorf("bright spot R = %d at the new centre, want about 200", got)
	}
	if got := out.NRGBAAt(10, 10).R; got != 100 {
		t.Errorf("original location R = %d, want untouched target 100", got)
	}
	if got := out.NRGBAAt(16, 23).R; got < 95 || got > 105 {
		t.Errorf("flat part of the region R = %d, want close to target 100", got)
	}
}

func TestSeamlessClone_Errors(t *testing.T) {
	g := NewGeometry(10)
	img := createPatternImage(10, 10)

	if _, err := g.SeamlessClone(img, img, rectMask(10, 10, image.Rectangle{}), image.Pt(5, 5)); !errors.Is(err, geom.ErrDegenerate) {
		t.Errorf("empty mask: got %v, want ErrDegenerate", err)
	}
	if _, err := g.SeamlessClone(img, img, rectMask(8, 10, image.Rect(0, 0, 4, 4)), image.Pt(5, 5)); !errors.Is(err, geom.ErrShapeMismatch) {
		t.Errorf("size mismatch: got %v, want ErrShapeMismatch", err)
	}
}
