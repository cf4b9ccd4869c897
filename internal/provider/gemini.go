package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/smogili1/mac-computer-use/internal/conversation"
	"google.golang.org/genai"
)

// GeminiAdapter is the transcoding variant. The plain-chat protocol only
// has two roles and text parts, so the projection is deliberately lossy:
// per turn, text blocks are newline-joined into a single string, and tool
// results, embedded images and error flags are dropped. That capability gap
// is documented, not fixed here.
//
// Tool schemas go through the legacy declaration transform (see
// tools.Capability.GeminiDeclaration); responses come back as at most one
// text block plus one tool-use block per returned function call, with
// position-based synthesized ids.
type GeminiAdapter struct {
	client *genai.Client
}

func NewGeminiAdapter(client *genai.Client) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

func (g *GeminiAdapter) Send(ctx context.Context, req Request) (*Response, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, t := range req.Tools {
			d, err := t.GeminiDeclaration()
			if err != nil {
				return nil, err
			}
			decls = append(decls, d)
		}
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	contents := flattenHistory(req.History)

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return nil, err
	}

	blocks, err := parseGeminiResponse(resp, len(req.History))
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		// Neither text nor function calls: classified as a transport
		// failure rather than silently emitting an empty turn.
		return nil, fmt.Errorf("gemini: response carried no text and no function calls")
	}

	clog.FromContext(ctx).With("blocks", len(blocks)).Debug("gemini turn parsed")
	return &Response{Blocks: blocks, Raw: resp}, nil
}

// flattenHistory projects each message onto a single text part. Turns whose
// text blocks are all empty still produce an (empty) part so the user/model
// alternation survives the projection.
func flattenHistory(history []conversation.Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == conversation.RoleAssistant {
			role = genai.RoleModel
		}
		out = append(out, genai.NewContentFromText(m.FlattenText(), role))
	}
	return out
}

func parseGeminiResponse(resp *genai.GenerateContentResponse, historyLen int) ([]conversation.Block, error) {
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini: response contained no candidates")
	}

	var blocks []conversation.Block
	if text := resp.Text(); text != "" {
		blocks = append(blocks, &conversation.TextBlock{Text: text})
	}

	for i, call := range resp.FunctionCalls() {
		input, err := json.Marshal(call.Args)
		if err != nil {
			return nil, fmt.Errorf("gemini: encode args for %q: %w", call.Name, err)
		}
		id := call.ID
		if id == "" {
			// The protocol carries no call ids; synthesize one from the
			// history position, index-suffixed so parallel calls in the
			// same turn stay unique.
			id = fmt.Sprintf("tool_%d", historyLen+i)
		}
		blocks = append(blocks, &conversation.ToolUseBlock{
			ID:    id,
			Name:  call.Name,
			Input: input,
		})
	}
	return blocks, nil
}
