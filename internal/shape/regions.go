package shape

import (
	"image"
	"image/color"
	"sort"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

// Foreground returns every non-zero pixel of a single-channel mask as a
// point set, in row-major order. Multi-channel images are read through
// their luminance.
func Foreground(mask image.Image) geom.PointSequence {
	bounds := mask.Bounds()
	points := make(geom.PointSequence, 0)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if isForeground(mask, x, y) {
				points = append(points, geom.Point2D{X: float64(x), Y: float64(y)})
			}
		}
	}
	return points
}

func isForeground(mask image.Image, x, y int) bool {
	if g, ok := mask.(*image.Gray); ok {
		return g.GrayAt(x, y).Y > 0
	}
	return color.GrayModel.Convert(mask.At(x, y)).(color.Gray).Y > 0
}

// Region is one 8-connected foreground component of a mask with its
// descriptors.
type Region struct {
	// Bounds is the bounding box of the member pixels; Max is exclusive.
	Bounds image.Rectangle `json:"-"`

	// X1, Y1, X2, Y2 mirror Bounds for the wire form.
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`

	Metrics

	// Points holds the member pixels in discovery order.
	Points geom.PointSequence `json:"-"`
}

// Regions splits the foreground of mask into 8-connected components and
// describes each. Components with fewer than minArea pixels are discarded.
// The result is sorted by area, largest first.
func Regions(mask image.Image, minArea int) ([]Region, error) {
	bounds := mask.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	fg := make([][]bool, height)
	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		fg[y] = make([]bool, width)
		visited[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			fg[y][x] = isForeground(mask, x+bounds.Min.X, y+bounds.Min.Y)
		}
	}

	regions := make([]Region, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !fg[y][x] || visited[y][x] {
				continue
			}
			pixels := floodFill(fg, visited, x, y, width, height)
			if len(pixels) < minArea || len(pixels) == 0 {
				continue
			}

			points := make(geom.PointSequence, len(pixels))
			for i, p := range pixels {
				points[i] = geom.Point2D{X: float64(p.X + bounds.Min.X), Y: float64(p.Y + bounds.Min.Y)}
			}
			m, err := Describe(points)
			if err != nil {
				return nil, err
			}
			r := points.Bounds()
			regions = append(regions, Region{
				Bounds:  r,
				X1:      r.Min.X,
				Y1:      r.Min.Y,
				X2:      r.Max.X,
				Y2:      r.Max.Y,
				Metrics: *m,
				Points:  points,
			})
		}
	}

	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Area > regions[j].Area
	})
	return regions, nil
}

// floodFill collects the 8-connected foreground component containing
// (startX, startY). It is iterative so large regions cannot overflow the
// stack.
func floodFill(fg, visited [][]bool, startX, startY, width, height int) []image.Point {
	stack := []image.Point{{X: startX, Y: startY}}
	pixels := make([]image.Point, 0)

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !fg[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		pixels = append(pixels, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return pixels
}
