package tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

type ComputerInput struct {
	Action     string `json:"action" jsonschema:"enum=screenshot,enum=key,enum=type,enum=mouse_move,enum=left_click,enum=right_click,enum=double_click,enum=cursor_position" jsonschema_description:"The automation action to perform."`
	Text       string `json:"text,omitempty" jsonschema_description:"Text to type or key chord to press (for key and type actions)."`
	Coordinate []int  `json:"coordinate,omitempty" jsonschema_description:"Screen coordinate [x, y] for mouse actions."`
}

var ComputerCapability = Capability{
	Name: "computer",
	Description: `Control the macOS screen, keyboard and mouse.

Actions: screenshot (returns a PNG of the screen), key (press a key or
chord), type (type a string), mouse_move, left_click, right_click,
double_click (all take a [x, y] coordinate; clicks without a coordinate
act at the current pointer position), cursor_position (returns the current
pointer coordinate). Keyboard and mouse actions also return a screenshot
taken after the action so the resulting screen state is visible.`,
	InputSchema: GenerateSchema[ComputerInput](),
	Function:    Computer,
}

// Computer drives screencapture and cliclick. Every action is one external
// process; a cancelled ctx kills it.
func Computer(ctx context.Context, input json.RawMessage) (Result, error) {
	var in ComputerInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Result{}, err
	}

	var res Result
	var err error
	switch in.Action {
	case "screenshot":
		return screenshot(ctx)
	case "key":
		if in.Text == "" {
			return Result{}, fmt.Errorf("key action requires text")
		}
		res, err = cliclick(ctx, "kp:"+in.Text)
	case "type":
		if in.Text == "" {
			return Result{}, fmt.Errorf("type action requires text")
		}
		res, err = cliclick(ctx, "t:"+in.Text)
	case "mouse_move":
		at, cerr := coordinate(in, true)
		if cerr != nil {
			return Result{}, cerr
		}
		res, err = cliclick(ctx, "m:"+at)
	case "left_click":
		res, err = click(ctx, "c", in)
	case "right_click":
		res, err = click(ctx, "rc", in)
	case "double_click":
		res, err = click(ctx, "dc", in)
	case "cursor_position":
		return cliclick(ctx, "p")
	default:
		return Result{}, fmt.Errorf("unknown computer action %q", in.Action)
	}
	if err != nil {
		return res, err
	}
	return withScreenshot(ctx, res)
}

// screenshotDelay lets the UI settle before the post-action capture.
const screenshotDelay = 500 * time.Millisecond

// withScreenshot appends a capture of the screen to a successful UI action
// so the model sees the effect of what it just did. A failed capture is
// surfaced as a system note rather than masking the action's outcome.
func withScreenshot(ctx context.Context, res Result) (Result, error) {
	select {
	case <-ctx.Done():
		return res, ctx.Err()
	case <-time.After(screenshotDelay):
	}
	shot, err := screenshot(ctx)
	if err != nil {
		shot = Result{System: "post-action screenshot failed: " + err.Error()}
	}
	return Combine(res, shot)
}

// coordinate formats the [x, y] input as a cliclick position argument.
// When required is false a missing coordinate means "current position".
func coordinate(in ComputerInput, required bool) (string, error) {
	if len(in.Coordinate) == 0 {
		if required {
			return "", fmt.Errorf("%s action requires a coordinate", in.Action)
		}
		return ".", nil
	}
	if len(in.Coordinate) != 2 {
		return "", fmt.Errorf("coordinate must be [x, y], got %v", in.Coordinate)
	}
	if in.Coordinate[0] < 0 || in.Coordinate[1] < 0 {
		return "", fmt.Errorf("coordinate must be non-negative, got %v", in.Coordinate)
	}
	return fmt.Sprintf("%d,%d", in.Coordinate[0], in.Coordinate[1]), nil
}

func click(ctx context.Context, op string, in ComputerInput) (Result, error) {
	at, err := coordinate(in, false)
	if err != nil {
		return Result{}, err
	}
	return cliclick(ctx, op+":"+at)
}

func cliclick(ctx context.Context, args ...string) (Result, error) {
	out, err := exec.CommandContext(ctx, "cliclick", args...).CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("cliclick %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return Result{Output: strings.TrimSpace(string(out))}, nil
}

func screenshot(ctx context.Context) (Result, error) {
	dir, err := os.MkdirTemp("", "screenshot-")
	if err != nil {
		return Result{}, err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "screen.png")
	// -x suppresses the capture sound.
	if out, err := exec.CommandContext(ctx, "screencapture", "-x", path).CombinedOutput(); err != nil {
		return Result{}, fmt.Errorf("screencapture: %w: %s", err, strings.TrimSpace(string(out)))
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read screenshot: %w", err)
	}
	return Result{Image: base64.StdEncoding.EncodeToString(b)}, nil
}
