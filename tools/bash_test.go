package tools_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/smogili1/mac-computer-use/tools"
)

func runBash(t *testing.T, command string) tools.Result {
	t.Helper()
	b, _ := json.Marshal(tools.BashInput{Command: command})
	res, err := tools.BashCapability.Function(context.Background(), b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return res
}

func TestBash_Stdout(t *testing.T) {
	res := runBash(t, "echo hello")
	if res.Output != "hello\n" {
		t.Fatalf("got %q", res.Output)
	}
	if res.Error != "" {
		t.Fatalf("unexpected error field: %q", res.Error)
	}
}

func TestBash_NonZeroExit_StderrAsError(t *testing.T) {
	res := runBash(t, "echo partial; echo oops >&2; exit 3")
	if res.Output != "partial\n" {
		t.Fatalf("expected partial stdout kept, got %q", res.Output)
	}
	if res.Error != "oops" {
		t.Fatalf("expected stderr as error, got %q", res.Error)
	}
}

func TestBash_NonZeroExit_NoStderr(t *testing.T) {
	res := runBash(t, "exit 7")
	if res.Error == "" {
		t.Fatal("expected exit error in error field")
	}
	if !strings.Contains(res.Error, "7") {
		t.Fatalf("expected exit status in error, got %q", res.Error)
	}
}

func TestBash_EmptyCommand_Error(t *testing.T) {
	b, _ := json.Marshal(tools.BashInput{Command: "  "})
	if _, err := tools.BashCapability.Function(context.Background(), b); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestBash_OutputClamped(t *testing.T) {
	res := runBash(t, "head -c 20000 /dev/zero | tr '\\0' 'x'")
	if len(res.Output) > 17_000 {
		t.Fatalf("output not clamped: %d bytes", len(res.Output))
	}
	if !strings.Contains(res.Output, "truncated") {
		t.Fatal("expected truncation marker")
	}
}
