package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// pointsProperty describes an array of [x, y] pairs.
func pointsProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": description,
		"items": map[string]interface{}{
			"type":     "array",
			"items":    map[string]interface{}{"type": "number"},
			"minItems": 2,
			"maxItems": 2,
		},
	}
}

func regionSetProperties(props map[string]interface{}) map[string]interface{} {
	props["regions"] = map[string]interface{}{
		"type":        "array",
		"description": "Landmark sets, each an array of [x, y] pairs with the same length and index meaning",
		"items":       pointsProperty("One landmark set"),
	}
	props["landmarks_file"] = map[string]interface{}{
		"type":        "string",
		"description": `Path to a JSON landmark file {"regions": [[[x, y], ...], ...]}; alternative to regions`,
	}
	return props
}

func estimatorProperties(props map[string]interface{}) map[string]interface{} {
	props["estimator"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"three_point", "similarity"},
		"description": "Transform estimator. three_point fits an exact affine through three anchor landmarks; similarity is a least-squares fit over all points. Defaults to the server configuration",
	}
	props["anchors"] = map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "integer"},
		"description": "Three landmark indices for three_point. Default [8, 36, 45] (chin, outer eye corners)",
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The image stays cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_diff",
			Description: "Compare two equally sized images pixel by pixel in CIE Lab space. Returns the count of differing pixels, mean and max distance, and the bounding box of the changes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path1": pathProperty(),
					"path2": pathProperty(),
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Lab distance above which a pixel counts as different. Default 0.02",
						"default":     0.02,
					},
				},
				"required": []string{"path1", "path2"},
			},
		},

		// Region analysis
		{
			Name:        "region_metrics",
			Description: "Describe a point set: centroid, area (point count), circularity (-1 when undefined for isotropic shapes), orientation in radians, convex hull and the normalised curvature profile.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": pointsProperty("Contour or landmark points in order"),
				},
				"required": []string{"points"},
			},
		},
		{
			Name:        "region_estimate_transform",
			Description: "Estimate the transform carrying the source points onto the target points. Returns the 2x3 matrix, its inverse, scale, rotation and translation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": estimatorProperties(map[string]interface{}{
					"source": pointsProperty("Source points"),
					"target": pointsProperty("Target points, index-aligned with source"),
				}),
				"required": []string{"source", "target"},
			},
		},
		{
			Name:        "region_mask",
			Description: "Build the convex-hull mask of a point set over an image. Returns the mask (or the masked pixels cropped to the region) as base64 PNG, its area, bounds and mean colour.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"points": pointsProperty("Landmark points"),
					"crop": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the masked image pixels cropped to the region instead of the mask",
						"default":     false,
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "region_find",
			Description: "Find 8-connected regions in a mask image (non-zero pixels) and describe each with bounds, centroid, area, circularity and orientation. Sorted by area, largest first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum region size in pixels. Default 10",
						"default":     10,
					},
				},
				"required": []string{"path"},
			},
		},

		// Compositing
		{
			Name:        "region_swap",
			Description: "Swap landmark-delimited regions of an image. Sets are paired (0,1), (2,3), ...; with an odd count the last set pairs with the first. Each region is warped into the other's frame and blended. Returns the result as base64 PNG and any per-pair failures.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": estimatorProperties(regionSetProperties(map[string]interface{}{
					"path": pathProperty(),
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"pyramid", "hard", "seamless"},
						"description": "Blend mode. Default from the server configuration (pyramid)",
					},
					"levels": map[string]interface{}{
						"type":        "integer",
						"description": "Laplacian pyramid depth for the pyramid mode",
					},
				})),
				"required": []string{"path"},
			},
		},
		{
			Name:        "region_overlay",
			Description: "Draw each landmark set onto the image: hull outline, point markers and the set index. Returns base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": regionSetProperties(map[string]interface{}{
					"path": pathProperty(),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Hex colour #rrggbb. Default #ff0000",
						"default":     "#ff0000",
					},
				}),
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
