package server

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_diff",
		"region_metrics",
		"region_estimate_transform",
		"region_mask",
		"region_find",
		"region_swap",
		"region_overlay",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(toolMap) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(toolMap), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %s has no property", r)
				}
			}

			// The schema must survive the tools/list encoding.
			if _, err := json.Marshal(tool); err != nil {
				t.Errorf("Marshal: %v", err)
			}
		})
	}
}

func TestToolDefinitions_Dispatched(t *testing.T) {
	s := newTestServer()

	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			// Empty arguments fail validation, but never as an unknown tool.
			_, err := s.executeTool(tool.Name, json.RawMessage(`{}`))
			if err != nil && strings.Contains(err.Error(), "unknown tool") {
				t.Errorf("tool %s has no handler", tool.Name)
			}
		})
	}

	if _, err := s.executeTool("image_unknown", json.RawMessage(`{}`)); err == nil {
		t.Error("expected error for unknown tool")
	}
}

func TestToolDefinitions_RegionSetSource(t *testing.T) {
	for _, name := range []string{"region_swap", "region_overlay"} {
		t.Run(name, func(t *testing.T) {
			var tool Tool
			for _, tt := range GetToolDefinitions() {
				if tt.Name == name {
					tool = tt
				}
			}
			props := tool.InputSchema["properties"].(map[string]interface{})
			for _, key := range []string{"path", "regions", "landmarks_file"} {
				if _, ok := props[key]; !ok {
					t.Errorf("missing property %s", key)
				}
			}
		})
	}
}

func TestToolDefinitions_SwapModes(t *testing.T) {
	var tool Tool
	for _, tt := range GetToolDefinitions() {
		if tt.Name == "region_swap" {
			tool = tt
		}
	}

	props := tool.InputSchema["properties"].(map[string]interface{})
	mode := props["mode"].(map[string]interface{})
	modes := mode["enum"].([]string)

	want := map[string]bool{"pyramid": true, "hard": true, "seamless": true}
	for _, m := range modes {
		delete(want, m)
	}
	for missing := range want {
		t.Errorf("region_swap mode enum missing %s", missing)
	}
}
