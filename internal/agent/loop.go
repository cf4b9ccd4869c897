// Package agent drives the model/tool conversation: model turn → sequential
// tool dispatch → result feedback, repeated until a model turn requests no
// tool use.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/smogili1/mac-computer-use/internal/conversation"
	"github.com/smogili1/mac-computer-use/internal/provider"
	"github.com/smogili1/mac-computer-use/internal/retention"
	"github.com/smogili1/mac-computer-use/internal/telemetry"
	"github.com/smogili1/mac-computer-use/tools"
)

// Hooks are side-effect-only observer callbacks, invoked synchronously in
// loop order. Any field may be nil.
type Hooks struct {
	// OnBlock receives every assistant content block, in response order.
	OnBlock func(conversation.Block)
	// OnToolResult receives each tool outcome with its originating call id.
	OnToolResult func(tools.Result, string)
	// OnRawResponse receives the provider's raw payload for each turn.
	OnRawResponse func(any)
}

// Loop is the conversation state machine. One Loop instance owns one
// conversation's history exclusively; nothing here is safe for concurrent
// use across conversations sharing a history slice.
type Loop struct {
	Adapter   provider.Adapter
	Tools     *tools.Collection
	Model     string
	System    string
	MaxTokens int64
	// KeepImages caps embedded tool-result images across history;
	// 0 disables trimming.
	KeepImages int
	Hooks      Hooks
}

// New returns a Loop with the given adapter and tool collection; callers
// set the remaining fields directly.
func New(adapter provider.Adapter, tc *tools.Collection) *Loop {
	return &Loop{Adapter: adapter, Tools: tc, MaxTokens: 4096}
}

// state is the loop's explicit phase. Modeling it this way keeps the
// terminal condition in one place: the loop ends only when a dispatch pass
// accumulates zero tool results.
type state int

const (
	stateAwaitModel state = iota
	stateDispatchTools
)

// Run advances the conversation until a model turn produces no tool use,
// then returns the full accumulated history. Provider and transport errors
// propagate with the history so far; tool failures never end the loop.
//
// History is mutated in place only by image retention (entry removal);
// turns are appended, never rewritten.
func (l *Loop) Run(ctx context.Context, history []conversation.Message) ([]conversation.Message, error) {
	turnID, ok := telemetry.TurnIDFromContext(ctx)
	if !ok {
		turnID = fmt.Sprintf("turn-%d", time.Now().UnixNano())
		ctx = telemetry.WithTurnID(ctx, turnID)
	}
	log := clog.FromContext(ctx)

	st := stateAwaitModel
	var blocks []conversation.Block

	for {
		switch st {
		case stateAwaitModel:
			if l.KeepImages > 0 {
				removed := retention.Policy{Keep: l.KeepImages, Chunk: retention.DefaultChunk}.Apply(history)
				if removed > 0 {
					telemetry.Emit("images_trimmed", map[string]any{
						"turn_id": turnID,
						"removed": removed,
						"keep":    l.KeepImages,
					})
				}
			}

			resp, err := l.Adapter.Send(ctx, provider.Request{
				Model:     l.Model,
				System:    l.System,
				History:   history,
				Tools:     l.Tools.Capabilities(),
				MaxTokens: l.MaxTokens,
			})
			if err != nil {
				return history, err
			}
			if l.Hooks.OnRawResponse != nil {
				l.Hooks.OnRawResponse(resp.Raw)
			}

			history = append(history, conversation.AssistantMessage(resp.Blocks...))
			blocks = resp.Blocks

			telemetry.Emit("turn_completed", map[string]any{
				"turn_id": turnID,
				"model":   l.Model,
				"blocks":  len(blocks),
			})
			st = stateDispatchTools

		case stateDispatchTools:
			// Strictly sequential, in block order: result ids must line up
			// with their originating calls, and several tools carry
			// process/filesystem side effects unsafe to interleave.
			var results []conversation.Block
			for _, b := range blocks {
				if l.Hooks.OnBlock != nil {
					l.Hooks.OnBlock(b)
				}
				tu, ok := b.(*conversation.ToolUseBlock)
				if !ok {
					continue
				}
				res := l.dispatch(ctx, tu)
				results = append(results, res.Block(tu.ID))
				if l.Hooks.OnToolResult != nil {
					l.Hooks.OnToolResult(res, tu.ID)
				}
			}

			// Terminal: the model requested no tool use this turn.
			if len(results) == 0 {
				log.With("messages", len(history)).Debug("conversation complete")
				return history, nil
			}
			history = append(history, conversation.UserMessage(results...))
			st = stateAwaitModel
		}
	}
}
