package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/regionswap-mcp/internal/align"
	"github.com/ironsheep/regionswap-mcp/internal/blend"
	"github.com/ironsheep/regionswap-mcp/internal/compositor"
	"github.com/ironsheep/regionswap-mcp/internal/geom"
	"github.com/ironsheep/regionswap-mcp/internal/imaging"
	"github.com/ironsheep/regionswap-mcp/internal/landmarks"
	"github.com/ironsheep/regionswap-mcp/internal/mask"
	"github.com/ironsheep/regionswap-mcp/internal/shape"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "region_swap").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_diff":
		return s.handleImageDiff(args)

	// Region analysis
	case "region_metrics":
		return s.handleRegionMetrics(args)
	case "region_estimate_transform":
		return s.handleRegionEstimateTransform(args)
	case "region_mask":
		return s.handleRegionMask(args)
	case "region_find":
		return s.handleRegionFind(args)

	// Compositing
	case "region_swap":
		return s.handleRegionSwap(args)
	case "region_overlay":
		return s.handleRegionOverlay(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageDiffArgs struct {
	Path1     string  `json:"path1"`
	Path2     string  `json:"path2"`
	Threshold float64 `json:"threshold"`
}

func (s *Server) handleImageDiff(args json.RawMessage) (interface{}, error) {
	var a imageDiffArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img1, err := s.cache.Load(a.Path1)
	if err != nil {
		return nil, err
	}
	img2, err := s.cache.Load(a.Path2)
	if err != nil {
		return nil, err
	}
	return imaging.Diff(img1, img2, a.Threshold)
}

// === Region Analysis Handlers ===

type regionMetricsArgs struct {
	Points [][2]float64 `json:"points"`
}

// RegionMetricsResult is the output of region_metrics.
type RegionMetricsResult struct {
	shape.Metrics
	// Curvature is the normalised curvature profile, one value per point.
	// It is omitted when the contour has a repeated consecutive point.
	Curvature []float64    `json:"curvature,omitempty"`
	Hull      [][2]float64 `json:"hull"`
	HullArea  float64      `json:"hull_area"`
}

func (s *Server) handleRegionMetrics(args json.RawMessage) (interface{}, error) {
	var a regionMetricsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	points := geom.FromPairs(a.Points)

	m, err := shape.Describe(points)
	if err != nil {
		return nil, err
	}
	hull := geom.ConvexHull(points)
	result := &RegionMetricsResult{
		Metrics:  *m,
		Hull:     hull.Pairs(),
		HullArea: geom.PolygonArea(hull),
	}
	if len(points) >= 3 {
		profile, err := shape.CurvatureProfile(points)
		if err != nil {
			s.logger.Debug("curvature profile skipped", "err", err)
		} else {
			result.Curvature = profile
		}
	}
	return result, nil
}

type regionEstimateTransformArgs struct {
	Source    [][2]float64 `json:"source"`
	Target    [][2]float64 `json:"target"`
	Estimator string       `json:"estimator"`
	Anchors   []int        `json:"anchors"`
}

// TransformResult describes an estimated transform and its inverse.
type TransformResult struct {
	Estimator       string        `json:"estimator"`
	Matrix          [2][3]float64 `json:"matrix"`
	Inverse         [2][3]float64 `json:"inverse"`
	Scale           float64       `json:"scale"`
	RotationRadians float64       `json:"rotation_radians"`
	RotationDegrees float64       `json:"rotation_degrees"`
	Translation     geom.Point2D  `json:"translation"`
}

func (s *Server) handleRegionEstimateTransform(args json.RawMessage) (interface{}, error) {
	var a regionEstimateTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	est, err := s.estimator(a.Estimator, a.Anchors)
	if err != nil {
		return nil, err
	}
	pair, err := align.EstimatePair(est, geom.FromPairs(a.Source), geom.FromPairs(a.Target))
	if err != nil {
		return nil, err
	}
	fwd := pair.Forward
	return &TransformResult{
		Estimator:       est.Name(),
		Matrix:          fwd.Matrix(),
		Inverse:         pair.Inverse.Matrix(),
		Scale:           fwd.Scale(),
		RotationRadians: fwd.Rotation(),
		RotationDegrees: fwd.Rotation() * 180 / math.Pi,
		Translation:     fwd.Translation(),
	}, nil
}

type regionMaskArgs struct {
	Path   string       `json:"path"`
	Points [][2]float64 `json:"points"`
	// Crop returns the masked pixels cropped to the region bounds instead
	// of the mask itself.
	Crop bool `json:"crop"`
}

// RegionMaskResult is the output of region_mask.
type RegionMaskResult struct {
	imaging.EncodedImage
	Area  int                        `json:"area"`
	X1    int                        `json:"x1"`
	Y1    int                        `json:"y1"`
	X2    int                        `json:"x2"`
	Y2    int                        `json:"y2"`
	Color *imaging.RegionColorResult `json:"color,omitempty"`
}

func (s *Server) handleRegionMask(args json.RawMessage) (interface{}, error) {
	var a regionMaskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	m, err := mask.Build(geom.FromPairs(a.Points), img.Bounds())
	if err != nil {
		return nil, err
	}
	bounds := shape.Foreground(m).Bounds()

	var out image.Image = m
	if a.Crop {
		region, err := mask.Extract(img, m)
		if err != nil {
			return nil, err
		}
		// region is origin-based; shift the bounds to match.
		local := bounds.Sub(img.Bounds().Min).Intersect(region.Bounds())
		if out, err = imaging.Crop(region, local); err != nil {
			return nil, err
		}
	}
	enc, err := imaging.EncodePNG(out)
	if err != nil {
		return nil, err
	}

	result := &RegionMaskResult{
		EncodedImage: *enc,
		Area:         mask.Area(m),
		X1:           bounds.Min.X,
		Y1:           bounds.Min.Y,
		X2:           bounds.Max.X,
		Y2:           bounds.Max.Y,
	}
	if c, err := imaging.RegionColor(img, m); err == nil {
		result.Color = c
	}
	return result, nil
}

type regionFindArgs struct {
	Path    string `json:"path"`
	MinArea int    `json:"min_area"`
}

// RegionFindResult is the output of region_find.
type RegionFindResult struct {
	Regions []shape.Region `json:"regions"`
	Count   int            `json:"count"`
}

func (s *Server) handleRegionFind(args json.RawMessage) (interface{}, error) {
	var a regionFindArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MinArea == 0 {
		a.MinArea = 10
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	regions, err := shape.Regions(img, a.MinArea)
	if err != nil {
		return nil, err
	}
	return &RegionFindResult{Regions: regions, Count: len(regions)}, nil
}

// === Compositing Handlers ===

// regionSetArgs names the landmark sets of a call, inline or from a file.
type regionSetArgs struct {
	Regions       [][][2]float64 `json:"regions"`
	LandmarksFile string         `json:"landmarks_file"`
}

func (a regionSetArgs) provider() (compositor.LandmarkProvider, error) {
	switch {
	case a.LandmarksFile != "" && len(a.Regions) > 0:
		return nil, fmt.Errorf("give either regions or landmarks_file, not both")
	case a.LandmarksFile != "":
		return landmarks.NewFileProvider(a.LandmarksFile), nil
	default:
		sets := make(landmarks.Static, len(a.Regions))
		for i, r := range a.Regions {
			sets[i] = geom.FromPairs(r)
		}
		return sets, nil
	}
}

type regionSwapArgs struct {
	Path string `json:"path"`
	regionSetArgs
	Mode      string `json:"mode"`
	Levels    int    `json:"levels"`
	Estimator string `json:"estimator"`
	Anchors   []int  `json:"anchors"`
}

// RegionSwapResult is the output of region_swap.
type RegionSwapResult struct {
	imaging.EncodedImage
	Mode     string   `json:"mode"`
	Pairs    int      `json:"pairs"`
	Failures []string `json:"failures,omitempty"`
}

func (s *Server) handleRegionSwap(args json.RawMessage) (interface{}, error) {
	var a regionSwapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	provider, err := a.provider()
	if err != nil {
		return nil, err
	}

	mode := s.cfg.Mode()
	if a.Mode != "" {
		if mode, err = blend.ParseMode(a.Mode); err != nil {
			return nil, err
		}
	}
	levels := s.cfg.Levels
	if a.Levels < 0 {
		return nil, fmt.Errorf("levels must be >= 1, got %d", a.Levels)
	}
	if a.Levels != 0 {
		levels = a.Levels
	}
	est, err := s.estimator(a.Estimator, a.Anchors)
	if err != nil {
		return nil, err
	}

	sets, err := provider.Detect(context.Background(), img)
	if err != nil {
		return nil, err
	}

	c := compositor.New(s.geometry, est, mode, levels, s.logger)
	out, failures := c.SwapAll(img, sets)
	enc, err := imaging.EncodePNG(out)
	if err != nil {
		return nil, err
	}

	result := &RegionSwapResult{
		EncodedImage: *enc,
		Mode:         string(mode),
		Pairs:        len(compositor.Pairs(len(sets))),
	}
	for _, f := range failures {
		result.Failures = append(result.Failures, f.Error())
	}
	return result, nil
}

type regionOverlayArgs struct {
	Path string `json:"path"`
	regionSetArgs
	Color string `json:"color"`
}

func (s *Server) handleRegionOverlay(args json.RawMessage) (interface{}, error) {
	var a regionOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	provider, err := a.provider()
	if err != nil {
		return nil, err
	}
	sets, err := provider.Detect(context.Background(), img)
	if err != nil {
		return nil, err
	}
	return imaging.Overlay(img, sets, a.Color)
}

// estimator resolves an estimator name, falling back to the configured one.
// anchors override the default three-point landmark indices.
func (s *Server) estimator(name string, anchors []int) (align.Estimator, error) {
	if name == "" {
		name = s.cfg.Estimator
	}
	idx := landmarks.AffineAnchors
	if len(anchors) > 0 {
		if len(anchors) != 3 {
			return nil, fmt.Errorf("anchors must list exactly 3 indices, got %d", len(anchors))
		}
		copy(idx[:], anchors)
	}
	return align.NewEstimator(name, idx)
}
