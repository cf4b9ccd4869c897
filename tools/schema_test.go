package tools_test

import (
	"encoding/json"
	"testing"

	"github.com/smogili1/mac-computer-use/tools"
)

type declInput struct {
	Path  string   `json:"path"`
	Count int      `json:"count,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// declParams renders a capability's Gemini declaration parameters back to a
// plain map for assertions.
func declParams(t *testing.T, c tools.Capability) map[string]any {
	t.Helper()
	decl, err := c.GeminiDeclaration()
	if err != nil {
		t.Fatalf("GeminiDeclaration: %v", err)
	}
	if decl.Name != c.Name || decl.Description != c.Description {
		t.Fatalf("declaration identity mismatch: %+v", decl)
	}
	b, err := json.Marshal(decl.ParametersJsonSchema)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	var params map[string]any
	if err := json.Unmarshal(b, &params); err != nil {
		t.Fatalf("decode params: %v", err)
	}
	return params
}

func TestGeminiDeclaration_LegacyTransform(t *testing.T) {
	c := tools.Capability{
		Name:        "probe",
		Description: "probe tool",
		InputSchema: tools.GenerateSchema[declInput](),
	}
	params := declParams(t, c)

	props, ok := params["properties"].(map[string]any)
	if !ok {
		t.Fatalf("missing properties: %v", params)
	}

	// integer -> number
	count, _ := props["count"].(map[string]any)
	if count == nil || count["type"] != "number" {
		t.Fatalf("count should transform integer->number, got %v", props["count"])
	}

	// array -> list
	tags, _ := props["tags"].(map[string]any)
	if tags == nil || tags["type"] != "list" {
		t.Fatalf("tags should transform array->list, got %v", props["tags"])
	}

	// required list promoted to per-property flags
	if _, present := params["required"]; present {
		t.Fatalf("top-level required list should be dropped, got %v", params["required"])
	}
	path, _ := props["path"].(map[string]any)
	if path == nil || path["required"] != true {
		t.Fatalf("path should carry required:true, got %v", props["path"])
	}
	if _, flagged := count["required"]; flagged {
		t.Fatalf("optional count should not be flagged required, got %v", count)
	}
}

type nestedInput struct {
	Filter struct {
		Name  string `json:"name"`
		Depth int    `json:"depth,omitempty"`
	} `json:"filter"`
}

func TestGeminiDeclaration_RecursesIntoNestedObjects(t *testing.T) {
	c := tools.Capability{
		Name:        "nested",
		Description: "nested schema tool",
		InputSchema: tools.GenerateSchema[nestedInput](),
	}
	params := declParams(t, c)

	props := params["properties"].(map[string]any)
	filter, _ := props["filter"].(map[string]any)
	if filter == nil {
		t.Fatalf("missing filter property: %v", props)
	}
	inner, _ := filter["properties"].(map[string]any)
	if inner == nil {
		t.Fatalf("nested properties missing: %v", filter)
	}
	depth, _ := inner["depth"].(map[string]any)
	if depth == nil || depth["type"] != "number" {
		t.Fatalf("nested integer should transform to number, got %v", inner["depth"])
	}
	if filter["required"] != true {
		t.Fatalf("filter should carry required:true after promotion, got %v", filter["required"])
	}
	name, _ := inner["name"].(map[string]any)
	if name == nil || name["required"] != true {
		t.Fatalf("nested required member should be flagged, got %v", inner["name"])
	}
}
