package server

import (
	"strings"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"diagram_dimensions",
		"diagram_overview",
		"diagram_rules",
		"region_rescale",
		"region_bounds",
		"region_text",
		"rules_evaluate",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("missing tool %s", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("missing description")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("schema type: got %v, want object", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("schema has no properties")
			}
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required property %q is not defined", r)
				}
			}
		})
	}
}

func TestToolDefinitions_ImageOutputs(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		props := tool.InputSchema["properties"].(map[string]interface{})
		_, hasFormat := props["format"]
		_, hasSave := props["save"]
		if hasFormat != hasSave {
			t.Errorf("%s: format and save should come together", tool.Name)
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(nil, nil)
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	tools, ok := result["tools"].([]Tool)
	if !ok || len(tools) == 0 {
		t.Fatalf("tools: got %T %v", result["tools"], result["tools"])
	}
}

func TestRegionRescale_CanvasOrigin(t *testing.T) {
	var rescale Tool
	for _, tool := range GetToolDefinitions() {
		if tool.Name == "region_rescale" {
			rescale = tool
		}
	}
	props := rescale.InputSchema["properties"].(map[string]interface{})
	region := props["region"].(map[string]interface{})["properties"].(map[string]interface{})

	// canvas regions have a lower-left origin, so y1 is the bottom edge
	y1 := region["y1"].(map[string]interface{})["description"].(string)
	y2 := region["y2"].(map[string]interface{})["description"].(string)
	if !strings.HasPrefix(y1, "Bottom edge") || !strings.HasPrefix(y2, "Top edge") {
		t.Errorf("y1 %q, y2 %q: want bottom then top", y1, y2)
	}
}
