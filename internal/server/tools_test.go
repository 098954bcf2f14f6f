package server

import (
	"encoding/json"
	"testing"

	"github.com/ironsheep/maxima-mcp/internal/imaging"
	"github.com/ironsheep/maxima-mcp/internal/maxima"
)

// toolProps returns the schema properties of the named tool.
func toolProps(t *testing.T, name string) map[string]interface{} {
	t.Helper()

	for _, tool := range GetToolDefinitions() {
		if tool.Name != name {
			continue
		}
		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Fatalf("%s: properties should be a map", name)
		}
		return props
	}
	t.Fatalf("%s tool not found", name)
	return nil
}

func TestToolDefinitions_EveryToolNeedsOnlyPath(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("description is empty")
			}
			required, _ := tool.InputSchema["required"].([]string)
			if len(required) != 1 || required[0] != "path" {
				t.Errorf("required: got %v, want [path]", required)
			}
		})
	}
}

func TestToolDefinitions_ParameterTypes(t *testing.T) {
	tests := []struct {
		tool, param, want string
	}{
		{"image_distance_map", "level", "integer"},
		{"image_distance_map", "invert", "boolean"},
		{"image_distance_map", "region", "object"},
		{"image_ultimate_points", "tolerance", "number"},
		{"image_ultimate_points", "threshold", "number"},
		{"image_ultimate_points", "exclude_edges", "boolean"},
		{"image_ultimate_points", "convert_grayscale", "boolean"},
		{"image_ultimate_points", "marker_color", "string"},
		{"image_ultimate_points", "mask", "boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.tool+"."+tt.param, func(t *testing.T) {
			param, ok := toolProps(t, tt.tool)[tt.param].(map[string]interface{})
			if !ok {
				t.Fatal("parameter not found")
			}
			if param["type"] != tt.want {
				t.Errorf("type: got %v, want %s", param["type"], tt.want)
			}
		})
	}
}

func TestToolDefinitions_DefaultsMatchLibrary(t *testing.T) {
	props := toolProps(t, "image_ultimate_points")

	tolerance, _ := props["tolerance"].(map[string]interface{})
	if got, _ := tolerance["default"].(float64); got != maxima.DefaultTolerance {
		t.Errorf("tolerance default: got %v, want %v", tolerance["default"], maxima.DefaultTolerance)
	}

	level, _ := props["level"].(map[string]interface{})
	if got, _ := level["default"].(int); got != int(imaging.DefaultLevel) {
		t.Errorf("level default: got %v, want %d", level["default"], imaging.DefaultLevel)
	}

	for _, name := range []string{"exclude_edges", "invert", "overlay", "labels", "mask"} {
		param, _ := props[name].(map[string]interface{})
		if param["default"] != false {
			t.Errorf("%s default: got %v, want false", name, param["default"])
		}
	}

	// Leaving these out means "disabled" and "color by distance".
	for _, name := range []string{"threshold", "marker_color"} {
		param, _ := props[name].(map[string]interface{})
		if _, ok := param["default"]; ok {
			t.Errorf("%s should have no default, got %v", name, param["default"])
		}
	}
}

func TestToolDefinitions_RegionSchema(t *testing.T) {
	for _, name := range []string{"image_distance_map", "image_ultimate_points"} {
		t.Run(name, func(t *testing.T) {
			region, ok := toolProps(t, name)["region"].(map[string]interface{})
			if !ok {
				t.Fatal("region property should exist and be a map")
			}
			required, _ := region["required"].([]string)
			want := map[string]bool{"x1": true, "y1": true, "x2": true, "y2": true}
			for _, r := range required {
				delete(want, r)
			}
			for missing := range want {
				t.Errorf("region should require %q", missing)
			}
		})
	}
}

func TestToolDefinitions_AnalysisArgsDecode(t *testing.T) {
	// Every schema property of the analysis tool must land in its argument
	// struct under the same JSON name.
	raw := map[string]interface{}{
		"path":              "/tmp/mask.png",
		"level":             90,
		"invert":            true,
		"convert_grayscale": true,
		"region":            map[string]interface{}{"x1": 1, "y1": 2, "x2": 3, "y2": 4},
		"tolerance":         1.25,
		"threshold":         2.5,
		"exclude_edges":     true,
		"overlay":           true,
		"labels":            true,
		"marker_color":      "#00FF00",
		"mask":              true,
	}
	for name := range toolProps(t, "image_ultimate_points") {
		if _, ok := raw[name]; !ok {
			t.Errorf("schema property %q is not exercised here", name)
		}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var a ultimatePointsArgs
	if err := json.Unmarshal(data, &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	switch {
	case a.Path != "/tmp/mask.png", a.Level == nil || *a.Level != 90, !a.Invert, !a.ConvertGrayscale:
		t.Errorf("mask args: got %+v", a.maskArgs)
	case a.Region == nil || a.Region.X2 != 3 || a.Region.Y2 != 4:
		t.Errorf("region: got %+v", a.Region)
	case a.Tolerance == nil || *a.Tolerance != 1.25, a.Threshold == nil || *a.Threshold != 2.5:
		t.Errorf("tolerance/threshold: got %v/%v", a.Tolerance, a.Threshold)
	case !a.ExcludeEdges, !a.Overlay, !a.Labels, !a.Mask, a.MarkerColor != "#00FF00":
		t.Errorf("flags: got %+v", a)
	}
}
