package tools_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/smogili1/mac-computer-use/tools"
)

func testCap(name string, fn func(ctx context.Context, input json.RawMessage) (tools.Result, error)) tools.Capability {
	return tools.Capability{
		Name:        name,
		Description: name + " test capability",
		InputSchema: tools.GenerateSchema[struct{}](),
		Function:    fn,
	}
}

func TestDispatch_NotFound(t *testing.T) {
	c := tools.NewCollection()
	res := c.Dispatch(context.Background(), "bash", nil)
	if res.Error != "ToolNotFound: bash" {
		t.Fatalf("unexpected error: %q", res.Error)
	}
}

func TestDispatch_Success(t *testing.T) {
	c := tools.NewCollection(testCap("echo", func(ctx context.Context, input json.RawMessage) (tools.Result, error) {
		return tools.Result{Output: string(input)}, nil
	}))
	res := c.Dispatch(context.Background(), "echo", json.RawMessage(`{"x":1}`))
	if res.Error != "" {
		t.Fatalf("unexpected error: %q", res.Error)
	}
	if res.Output != `{"x":1}` {
		t.Fatalf("unexpected output: %q", res.Output)
	}
}

func TestDispatch_HandlerErrorIsRecovered(t *testing.T) {
	c := tools.NewCollection(testCap("broken", func(ctx context.Context, input json.RawMessage) (tools.Result, error) {
		return tools.Result{}, fmt.Errorf("disk on fire")
	}))
	res := c.Dispatch(context.Background(), "broken", nil)
	if res.Error != "disk on fire" {
		t.Fatalf("expected handler error folded into result, got %q", res.Error)
	}
}

func TestDispatch_PanicIsRecovered(t *testing.T) {
	c := tools.NewCollection(testCap("explosive", func(ctx context.Context, input json.RawMessage) (tools.Result, error) {
		panic("kaboom")
	}))
	res := c.Dispatch(context.Background(), "explosive", nil)
	if res.Error == "" {
		t.Fatal("expected panic folded into result error")
	}
}

func TestCapabilities_PreservesRegistrationOrder(t *testing.T) {
	c := tools.NewCollection(
		testCap("a", nil), testCap("b", nil), testCap("c", nil),
	)
	got := c.Capabilities()
	if len(got) != 3 || got[0].Name != "a" || got[1].Name != "b" || got[2].Name != "c" {
		t.Fatalf("unexpected capability order: %+v", got)
	}
}

func TestRegistry_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range tools.Registry().Capabilities() {
		if seen[c.Name] {
			t.Fatalf("duplicate capability name %q", c.Name)
		}
		seen[c.Name] = true
		if c.Description == "" || c.InputSchema == nil || c.Function == nil {
			t.Fatalf("capability %q is incomplete", c.Name)
		}
	}
}
