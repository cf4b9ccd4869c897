package agent

import (
	"context"
	"time"

	"github.com/smogili1/mac-computer-use/internal/conversation"
	"github.com/smogili1/mac-computer-use/internal/telemetry"
	"github.com/smogili1/mac-computer-use/tools"
)

// dispatch runs one tool call and emits a tool_exec event. Telemetry only
// carries sizes and a generic error string; the detailed error stays in the
// Result returned to the model.
func (l *Loop) dispatch(ctx context.Context, tu *conversation.ToolUseBlock) tools.Result {
	turnID, _ := telemetry.TurnIDFromContext(ctx)
	start := time.Now()

	res := l.Tools.Dispatch(ctx, tu.Name, tu.Input)

	fields := map[string]any{
		"tool_name":   tu.Name,
		"duration_ms": time.Since(start).Milliseconds(),
		"input_size":  len(tu.Input),
		"output_size": len(res.Output) + len(res.Image),
		"turn_id":     turnID,
	}
	if res.Error != "" {
		fields["error"] = "tool error"
	} else {
		fields["error"] = nil
	}
	telemetry.Emit("tool_exec", fields)
	return res
}
