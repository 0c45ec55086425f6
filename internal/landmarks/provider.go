package landmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/ironsheep/regionswap-mcp/internal/geom"
)

// File is the on-disk form of a set of detections:
//
//	{"regions": [[[x, y], [x, y], ...], ...]}
type File struct {
	Regions [][][2]float64 `json:"regions"`
}

// Decode reads landmark sets from r. When cardinality is positive every set
// must have exactly that many points.
func Decode(r io.Reader, cardinality int) ([]geom.PointSequence, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode landmarks: %w", err)
	}
	sets := make([]geom.PointSequence, len(f.Regions))
	for i, region := range f.Regions {
		if cardinality > 0 && len(region) != cardinality {
			return nil, fmt.Errorf("landmark set %d has %d points, expected %d: %w",
				i, len(region), cardinality, geom.ErrShapeMismatch)
		}
		sets[i] = geom.FromPairs(region)
	}
	return sets, nil
}

// Encode writes sets to w in the File format.
func Encode(w io.Writer, sets []geom.PointSequence) error {
	f := File{Regions: make([][][2]float64, len(sets))}
	for i, set := range sets {
		f.Regions[i] = set.Pairs()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// ReadFile decodes the landmark file at path.
func ReadFile(path string, cardinality int) ([]geom.PointSequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open landmarks: %w", err)
	}
	defer f.Close()
	return Decode(f, cardinality)
}

// FileProvider returns the landmark sets stored in a file, whatever image it
// is asked about. The file is read on every call so it can be edited between
// runs of a long-lived server.
type FileProvider struct {
	Path string

	// Cardinality, when positive, is enforced on every set.
	Cardinality int
}

// NewFileProvider returns a provider for path that accepts sets of any size.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

// Detect implements the compositor's landmark provider.
func (p *FileProvider) Detect(ctx context.Context, img image.Image) ([]geom.PointSequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(p.Path, p.Cardinality)
}

// Static serves a fixed list of landmark sets.
type Static []geom.PointSequence

// Detect implements the compositor's landmark provider.
func (s Static) Detect(ctx context.Context, img image.Image) ([]geom.PointSequence, error) {
	out := make([]geom.PointSequence, len(s))
	for i, set := range s {
		out[i] = set.Clone()
	}
	return out, nil
}

// Detector is anything that returns landmark sets for an image.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]geom.PointSequence, error)
}

// Scaled rescales the sets returned by Source by Factor, for images that
// were resized after their landmarks were recorded.
type Scaled struct {
	Source Detector
	Factor float64
}

// Detect implements the compositor's landmark provider.
func (s Scaled) Detect(ctx context.Context, img image.Image) ([]geom.PointSequence, error) {
	sets, err := s.Source.Detect(ctx, img)
	if err != nil {
		return nil, err
	}
	if s.Factor == 1 {
		return sets, nil
	}
	return Scale(sets, s.Factor), nil
}
