package server

import (
	"encoding/json"
	"fmt"
	"image"
	"time"

	"github.com/ironsheep/maxima-mcp/internal/edm"
	"github.com/ironsheep/maxima-mcp/internal/imaging"
	"github.com/ironsheep/maxima-mcp/internal/maxima"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_ultimate_points").
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

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("tool %s failed after %s: %v", params.Name, time.Since(start), err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.debugf("tool %s completed in %s", params.Name, time.Since(start))

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
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_distance_map":
		return s.handleDistanceMap(args)
	case "image_ultimate_points":
		return s.handleUltimatePoints(args)
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

// === Basic Image Information Handlers ===

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

// === Distance Analysis Handlers ===

// maskArgs are the arguments shared by tools that work on a binary mask.
type maskArgs struct {
	Path             string          `json:"path"`
	Level            *int            `json:"level,omitempty"`
	Invert           bool            `json:"invert"`
	ConvertGrayscale bool            `json:"convert_grayscale"`
	Region           *imaging.Region `json:"region,omitempty"`
}

// loadMask loads the image, applies the region of interest, enforces the
// grayscale precondition and binarizes. It returns the mask and the origin of
// the mask in full-image coordinates.
func (s *Server) loadMask(a maskArgs) (*image.Gray, image.Point, error) {
	level := int(imaging.DefaultLevel)
	if a.Level != nil {
		level = *a.Level
	}
	if level < 0 || level > 255 {
		return nil, image.Point{}, fmt.Errorf("level %d outside 0-255", level)
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, image.Point{}, err
	}

	origin := img.Bounds().Min
	if a.Region != nil {
		img, err = imaging.CropRegion(img, *a.Region)
		if err != nil {
			return nil, image.Point{}, err
		}
		origin = image.Pt(a.Region.X1, a.Region.Y1)
	}

	if !a.ConvertGrayscale && !imaging.IsGrayscale(img) {
		return nil, image.Point{}, fmt.Errorf("%w (set convert_grayscale to convert it)", maxima.ErrNotGrayscale)
	}
	return imaging.Binarize(img, uint8(level), a.Invert), origin, nil
}

// DistanceMapResult describes the Euclidean distance map of a mask.
type DistanceMapResult struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	MaxDistance      float64 `json:"max_distance"`
	ForegroundPixels int     `json:"foreground_pixels"`
	ImageBase64      string  `json:"image_base64"`
	MimeType         string  `json:"mime_type"`
}

func (s *Server) handleDistanceMap(args json.RawMessage) (interface{}, error) {
	var a maskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	mask, _, err := s.loadMask(a)
	if err != nil {
		return nil, err
	}

	m := edm.ComputeFramed(mask)
	_, hi := m.MinMax()
	encoded, err := imaging.EncodePNG(m.ToGray())
	if err != nil {
		return nil, err
	}
	return &DistanceMapResult{
		Width:            m.Width,
		Height:           m.Height,
		MaxDistance:      hi,
		ForegroundPixels: m.Foreground(),
		ImageBase64:      encoded,
		MimeType:         "image/png",
	}, nil
}

type ultimatePointsArgs struct {
	maskArgs
	Tolerance    *float64 `json:"tolerance,omitempty"`
	Threshold    *float64 `json:"threshold,omitempty"`
	ExcludeEdges bool     `json:"exclude_edges"`
	Overlay      bool     `json:"overlay"`
	Labels       bool     `json:"labels"`
	MarkerColor  string   `json:"marker_color"`
	Mask         bool     `json:"mask"`
}

// UltimatePointsResult lists the ultimate eroded points of an image.
//
// Points are in full-image coordinates; the overlay and mask images cover the
// analyzed region only.
type UltimatePointsResult struct {
	Width      int                    `json:"width"`
	Height     int                    `json:"height"`
	Count      int                    `json:"count"`
	Points     []maxima.Maximum       `json:"points"`
	Retries    int                    `json:"retries"`
	Overlay    *imaging.OverlayResult `json:"overlay,omitempty"`
	MaskBase64 string                 `json:"mask_base64,omitempty"`
}

func (s *Server) handleUltimatePoints(args json.RawMessage) (interface{}, error) {
	var a ultimatePointsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	opts := maxima.DefaultOptions()
	opts.Tolerance = s.cfg.Tolerance
	opts.MaxRetries = s.cfg.MaxRetries
	if a.Tolerance != nil {
		opts.Tolerance = *a.Tolerance
	}
	if a.Threshold != nil {
		opts.Threshold = *a.Threshold
	}
	opts.ExcludeEdges = a.ExcludeEdges

	mask, origin, err := s.loadMask(a.maskArgs)
	if err != nil {
		return nil, err
	}

	res, err := maxima.FindInImage(mask, opts)
	if err != nil {
		return nil, err
	}
	s.debugf("%s: %d maxima, %d sorting-error retries", a.Path, res.Count(), res.Retries)

	points := make([]maxima.Maximum, len(res.Maxima))
	for i, m := range res.Maxima {
		m.X += origin.X
		m.Y += origin.Y
		points[i] = m
	}
	out := &UltimatePointsResult{
		Width:   res.Width,
		Height:  res.Height,
		Count:   res.Count(),
		Points:  points,
		Retries: res.Retries,
	}

	if a.Overlay {
		markers := make([]imaging.Marker, len(res.Maxima))
		for i, m := range res.Maxima {
			markers[i] = imaging.Marker{X: m.X, Y: m.Y, Value: m.Distance}
		}
		out.Overlay, err = imaging.RenderMarkers(mask, markers, imaging.MarkerOptions{
			ShowLabels: a.Labels,
			Color:      a.MarkerColor,
		})
		if err != nil {
			return nil, err
		}
	}
	if a.Mask {
		out.MaskBase64, err = imaging.EncodePNG(res.Mask())
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
