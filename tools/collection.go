package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection is a registry of capabilities keyed by name. It owns tool-call
// resolution and failure isolation: Dispatch always returns a Result, never
// an error, so a misbehaving tool cannot abort the conversation loop.
type Collection struct {
	caps   []Capability
	byName map[string]Capability
}

// NewCollection builds a Collection. Later capabilities with a duplicate
// name override earlier ones.
func NewCollection(caps ...Capability) *Collection {
	c := &Collection{
		caps:   caps,
		byName: make(map[string]Capability, len(caps)),
	}
	for _, capability := range caps {
		c.byName[capability.Name] = capability
	}
	return c
}

// Capabilities returns the registered capabilities in registration order.
func (c *Collection) Capabilities() []Capability {
	return c.caps
}

// Dispatch resolves name and invokes the capability with the raw JSON
// input. Unknown names, handler errors, and handler panics are all folded
// into Result.Error.
func (c *Collection) Dispatch(ctx context.Context, name string, input json.RawMessage) (res Result) {
	capability, ok := c.byName[name]
	if !ok {
		return Result{Error: fmt.Sprintf("ToolNotFound: %s", name)}
	}
	defer func() {
		if p := recover(); p != nil {
			res = Result{Error: fmt.Sprintf("tool %q panicked: %v", name, p)}
		}
	}()
	out, err := capability.Function(ctx, input)
	if err != nil {
		return Result{Error: err.Error()}
	}
	return out
}

// Registry returns the built-in capabilities wired for the agent.
func Registry() *Collection {
	return NewCollection(
		ComputerCapability,
		BashCapability,
		EditFileCapability,
		ReadFileCapability,
		ListFilesCapability,
	)
}
