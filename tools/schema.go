package tools

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// GeminiDeclaration renders the capability as a Gemini function declaration.
//
// The parameter schema goes through the legacy plain-chat transform rather
// than a faithful JSON Schema translation, for wire compatibility with that
// ecosystem: "integer" becomes "number", "array" becomes "list", and each
// required property is flagged with required:true in place of the top-level
// required list. The transform recurses into nested object properties.
func (c Capability) GeminiDeclaration() (*genai.FunctionDeclaration, error) {
	b, err := json.Marshal(c.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal input schema for %q: %w", c.Name, err)
	}
	var params map[string]any
	if err := json.Unmarshal(b, &params); err != nil {
		return nil, fmt.Errorf("decode input schema for %q: %w", c.Name, err)
	}
	return &genai.FunctionDeclaration{
		Name:                 c.Name,
		Description:          c.Description,
		ParametersJsonSchema: convertSchema(params),
	}, nil
}

// typeMapping holds the JSON Schema type renames the legacy declaration
// shape expects.
var typeMapping = map[string]string{
	"integer": "number",
	"array":   "list",
}

func convertSchema(params map[string]any) map[string]any {
	if _, ok := params["type"]; !ok {
		return params
	}

	properties, _ := params["properties"].(map[string]any)

	if t, ok := params["type"].(string); ok {
		if mapped, ok := typeMapping[t]; ok {
			params["type"] = mapped
		}
	}

	// Recurse before promoting this level's required list: a nested object
	// property resolves its own list first, so flagging the property below
	// never clobbers one.
	for _, p := range properties {
		if prop, ok := p.(map[string]any); ok {
			convertSchema(prop)
		}
	}

	// Promote the required list to per-property flags. The type guard
	// matters: an already-promoted required:true bool is not a list and
	// must survive untouched.
	if required, ok := params["required"].([]any); ok {
		for _, name := range required {
			s, ok := name.(string)
			if !ok {
				continue
			}
			if prop, ok := properties[s].(map[string]any); ok {
				prop["required"] = true
			}
		}
		delete(params, "required")
	}
	return params
}
