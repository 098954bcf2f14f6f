package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionSchema is the optional region-of-interest argument shared by the
// analysis tools.
func regionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer", "description": "Left edge X (inclusive)"},
			"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y (inclusive)"},
			"x2": map[string]interface{}{"type": "integer", "description": "Right edge X (exclusive)"},
			"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y (exclusive)"},
		},
		"required":    []string{"x1", "y1", "x2", "y2"},
		"description": "Optional region to analyze. If omitted, analyzes the entire image.",
	}
}

// maskProperties are the arguments that turn an image into a binary mask.
func maskProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the image file",
		},
		"level": map[string]interface{}{
			"type":        "integer",
			"description": "Binarization threshold 0-255; pixels at or above it are foreground (default 128)",
			"default":     128,
		},
		"invert": map[string]interface{}{
			"type":        "boolean",
			"description": "Treat dark pixels as foreground",
			"default":     false,
		},
		"convert_grayscale": map[string]interface{}{
			"type":        "boolean",
			"description": "Convert color images to grayscale instead of rejecting them",
			"default":     false,
		},
		"region": regionSchema(),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	distanceProps := maskProperties()

	pointsProps := maskProperties()
	pointsProps["tolerance"] = map[string]interface{}{
		"type":        "number",
		"description": "Height variation (in pixels of distance) still treated as one maximum (default 0.5)",
		"default":     0.5,
	}
	pointsProps["threshold"] = map[string]interface{}{
		"type":        "number",
		"description": "Ignore maxima whose distance value is below this. Omit to disable.",
	}
	pointsProps["exclude_edges"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Drop maxima whose plateau touches the image border",
		"default":     false,
	}
	pointsProps["overlay"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Return the mask with the points marked, as base64 PNG",
		"default":     false,
	}
	pointsProps["labels"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Number the points on the overlay",
		"default":     false,
	}
	pointsProps["marker_color"] = map[string]interface{}{
		"type":        "string",
		"description": "Overlay marker color as hex. If omitted, markers are colored by distance (blue low, red high).",
	}
	pointsProps["mask"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Return the pixels belonging to each maximum plateau as a base64 PNG mask",
		"default":     false,
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and whether it is grayscale.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
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
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Distance Analysis
		{
			Name:        "image_distance_map",
			Description: "Binarize a grayscale image and compute its Euclidean distance map: each foreground pixel's distance to the nearest background pixel. Returns statistics and the map rendered as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": distanceProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_ultimate_points",
			Description: "Find the ultimate eroded points of a binary image: one point per local maximum of its distance map, typically one per particle or blob. Coordinates are x = column, y = row in the full image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": pointsProps,
				"required":   []string{"path"},
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
