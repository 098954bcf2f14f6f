package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"strings"
	"testing"
)

// wireResponse is a response as a client decodes it off the wire.
type wireResponse struct {
	ID     interface{}     `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *MCPError       `json:"error"`
}

// session feeds lines to s.Serve and decodes every response it writes.
func session(t *testing.T, s *Server, lines ...string) []wireResponse {
	t.Helper()

	var out bytes.Buffer
	if err := s.Serve(strings.NewReader(strings.Join(lines, "\n")), &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	var resps []wireResponse
	dec := json.NewDecoder(&out)
	for dec.More() {
		var r wireResponse
		if err := dec.Decode(&r); err != nil {
			t.Fatalf("decode response %d: %v", len(resps), err)
		}
		resps = append(resps, r)
	}
	return resps
}

// toolCallLine builds a tools/call request line.
func toolCallLine(t *testing.T, id int, name string, args map[string]interface{}) string {
	t.Helper()

	line, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  "tools/call",
		"params":  map[string]interface{}{"name": name, "arguments": args},
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return string(line)
}

// decodeToolText unpacks the JSON document carried in a tools/call result.
func decodeToolText(t *testing.T, r wireResponse, out interface{}) {
	t.Helper()

	if r.Error != nil {
		t.Fatalf("response %v: unexpected error %+v", r.ID, r.Error)
	}
	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(r.Result, &result); err != nil {
		t.Fatalf("response %v: %v", r.ID, err)
	}
	if len(result.Content) != 1 || result.Content[0].Type != "text" {
		t.Fatalf("response %v: content got %+v", r.ID, result.Content)
	}
	if err := json.Unmarshal([]byte(result.Content[0].Text), out); err != nil {
		t.Fatalf("response %v: tool text %q: %v", r.ID, result.Content[0].Text, err)
	}
}

func TestNewWithConfig(t *testing.T) {
	cfg := Config{Debug: true, Tolerance: 1.5, MaxRetries: 7}
	s := NewWithConfig(cfg)
	if s.cfg != cfg {
		t.Errorf("cfg: got %+v, want %+v", s.cfg, cfg)
	}
	if s.cache == nil {
		t.Error("NewWithConfig did not initialize cache")
	}
}

func TestServe_Handshake(t *testing.T) {
	resps := session(t, New(),
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
	)
	if len(resps) != 2 {
		t.Fatalf("Expected 2 responses (notification unanswered), got %d", len(resps))
	}

	var hello struct {
		ProtocolVersion string `json:"protocolVersion"`
		ServerInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"serverInfo"`
	}
	if err := json.Unmarshal(resps[0].Result, &hello); err != nil {
		t.Fatalf("initialize result: %v", err)
	}
	if hello.ProtocolVersion != "2024-11-05" {
		t.Errorf("protocolVersion: got %q", hello.ProtocolVersion)
	}
	if hello.ServerInfo.Name != "maxima-mcp" || hello.ServerInfo.Version == "" {
		t.Errorf("serverInfo: got %+v", hello.ServerInfo)
	}

	var list struct {
		Tools []struct {
			Name        string                 `json:"name"`
			InputSchema map[string]interface{} `json:"inputSchema"`
		} `json:"tools"`
	}
	if err := json.Unmarshal(resps[1].Result, &list); err != nil {
		t.Fatalf("tools/list result: %v", err)
	}
	var names []string
	for _, tool := range list.Tools {
		names = append(names, tool.Name)
	}
	want := "image_load,image_dimensions,image_distance_map,image_ultimate_points"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("tools: got %s, want %s", got, want)
	}
}

func TestServe_AnalysisSession(t *testing.T) {
	// Two 5x5 squares joined by a one-pixel bridge.
	path := createMaskFile(t, 15, 7,
		image.Rect(1, 1, 6, 6),
		image.Rect(9, 1, 14, 6),
		image.Rect(6, 3, 9, 4),
	)

	resps := session(t, New(),
		toolCallLine(t, 1, "image_dimensions", map[string]interface{}{"path": path}),
		toolCallLine(t, 2, "image_distance_map", map[string]interface{}{"path": path}),
		toolCallLine(t, 3, "image_ultimate_points", map[string]interface{}{"path": path}),
		toolCallLine(t, 4, "image_ultimate_points", map[string]interface{}{"path": path, "tolerance": 5}),
	)
	if len(resps) != 4 {
		t.Fatalf("Expected 4 responses, got %d", len(resps))
	}

	var dims struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	decodeToolText(t, resps[0], &dims)
	if dims.Width != 15 || dims.Height != 7 {
		t.Errorf("dimensions: got %dx%d, want 15x7", dims.Width, dims.Height)
	}

	var dm DistanceMapResult
	decodeToolText(t, resps[1], &dm)
	if dm.MaxDistance != 3 {
		t.Errorf("max_distance: got %v, want 3", dm.MaxDistance)
	}
	if dm.ForegroundPixels != 53 {
		t.Errorf("foreground_pixels: got %d, want 53", dm.ForegroundPixels)
	}

	var split UltimatePointsResult
	decodeToolText(t, resps[2], &split)
	if split.Count != 2 {
		t.Errorf("default tolerance: got %d points, want 2", split.Count)
	}

	var merged UltimatePointsResult
	decodeToolText(t, resps[3], &merged)
	if merged.Count != 1 {
		t.Errorf("tolerance 5: got %d points, want 1", merged.Count)
	}
}

func TestServe_ConfiguredTolerance(t *testing.T) {
	path := createMaskFile(t, 15, 7,
		image.Rect(1, 1, 6, 6),
		image.Rect(9, 1, 14, 6),
		image.Rect(6, 3, 9, 4),
	)
	cfg := DefaultConfig()
	cfg.Tolerance = 5

	resps := session(t, NewWithConfig(cfg),
		toolCallLine(t, 1, "image_ultimate_points", map[string]interface{}{"path": path}),
		toolCallLine(t, 2, "image_ultimate_points", map[string]interface{}{"path": path, "tolerance": 0.5}),
	)
	if len(resps) != 2 {
		t.Fatalf("Expected 2 responses, got %d", len(resps))
	}

	for i, want := range []int{1, 2} {
		var res UltimatePointsResult
		decodeToolText(t, resps[i], &res)
		if res.Count != want {
			t.Errorf("call %d: got %d points, want %d", i+1, res.Count, want)
		}
	}
}

func TestServe_ErrorsDoNotEndSession(t *testing.T) {
	resps := session(t, New(),
		`not json`,
		``,
		`{"jsonrpc":"2.0","id":1,"method":"resources/list"}`,
		toolCallLine(t, 2, "image_ultimate_points", map[string]interface{}{"path": "/nonexistent/mask.png"}),
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":"oops"}`,
		`{"jsonrpc":"2.0","id":4,"method":"ping"}`,
	)
	if len(resps) != 4 {
		t.Fatalf("Expected 4 responses, got %d", len(resps))
	}

	wantCodes := []int{-32601, -32000, -32602, 0}
	for i, r := range resps {
		if got, want := fmt.Sprint(r.ID), fmt.Sprint(i+1); got != want {
			t.Errorf("response %d ID: got %s, want %s", i, got, want)
		}
		switch {
		case wantCodes[i] == 0 && r.Error != nil:
			t.Errorf("response %d: unexpected error %+v", i, r.Error)
		case wantCodes[i] != 0 && (r.Error == nil || r.Error.Code != wantCodes[i]):
			t.Errorf("response %d: got error %+v, want code %d", i, r.Error, wantCodes[i])
		}
	}
	if e := resps[1].Error; e != nil {
		if data, _ := e.Data.(string); !strings.Contains(data, "nonexistent") {
			t.Errorf("tool error data should name the file, got %v", e.Data)
		}
	}
}
