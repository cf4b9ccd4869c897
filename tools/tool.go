package tools

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// Capability is the uniform contract a local tool exposes: a unique name,
// a human-readable description, a JSON Schema for its input, and a handler.
// Handlers receive the raw JSON argument object from the model; returned
// errors are folded into an error Result by Collection.Dispatch.
type Capability struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
	Function    func(ctx context.Context, input json.RawMessage) (Result, error)
}

// AnthropicParam renders the capability as an Anthropic tool definition.
func (c Capability) AnthropicParam() anthropic.ToolParam {
	return anthropic.ToolParam{
		Name:        c.Name,
		Description: anthropic.String(c.Description),
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties: c.InputSchema.Properties,
		},
	}
}

// GenerateSchema derives a JSON Schema from a Go struct type. Inlined
// definitions and no additional properties keep the schema in the shape
// tool-use providers expect.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(&v)
}
