package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/smogili1/mac-computer-use/internal/conversation"
)

// NewAnthropicClient returns a client using the API key from the env.
func NewAnthropicClient() *anthropic.Client {
	c := anthropic.NewClient()
	return &c
}

// AnthropicAdapter is the structured variant: the conversation model
// already matches the Messages API wire shape, so history, tool schemas and
// system prompt pass through unchanged and the typed response parses
// directly into blocks.
type AnthropicAdapter struct {
	client *anthropic.Client
}

func NewAnthropicAdapter(client *anthropic.Client) *AnthropicAdapter {
	return &AnthropicAdapter{client: client}
}

func (a *AnthropicAdapter) Send(ctx context.Context, req Request) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: req.MaxTokens,
		Messages:  toMessageParams(req.History),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	for _, t := range req.Tools {
		tp := t.AnthropicParam()
		params.Tools = append(params.Tools, anthropic.ToolUnionParam{OfTool: &tp})
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}

	blocks, err := parseAnthropicContent(msg)
	if err != nil {
		return nil, err
	}
	return &Response{Blocks: blocks, Raw: msg}, nil
}

func toMessageParams(history []conversation.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(history))
	for _, m := range history {
		role := anthropic.MessageParamRoleUser
		if m.Role == conversation.RoleAssistant {
			role = anthropic.MessageParamRoleAssistant
		}
		content := make([]anthropic.ContentBlockParamUnion, 0, len(m.Content))
		for _, b := range m.Content {
			content = append(content, toContentParam(b))
		}
		out = append(out, anthropic.MessageParam{Role: role, Content: content})
	}
	return out
}

func toContentParam(b conversation.Block) anthropic.ContentBlockParamUnion {
	switch v := b.(type) {
	case *conversation.TextBlock:
		return anthropic.NewTextBlock(v.Text)
	case *conversation.ToolUseBlock:
		return anthropic.ContentBlockParamUnion{OfToolUse: &anthropic.ToolUseBlockParam{
			ID:    v.ID,
			Name:  v.Name,
			Input: v.Input,
		}}
	case *conversation.ToolResultBlock:
		tr := &anthropic.ToolResultBlockParam{
			ToolUseID: v.ToolUseID,
			IsError:   anthropic.Bool(v.IsError),
		}
		for _, c := range v.Content {
			tr.Content = append(tr.Content, toResultContentParam(c))
		}
		return anthropic.ContentBlockParamUnion{OfToolResult: tr}
	default:
		// The Block union is closed; a new kind here is a programming error.
		panic(fmt.Sprintf("unknown content block type %T", b))
	}
}

func toResultContentParam(c conversation.ResultContent) anthropic.ToolResultBlockParamContentUnion {
	if c.Type == conversation.ResultImage && c.Image != nil {
		return anthropic.ToolResultBlockParamContentUnion{
			OfImage: &anthropic.ImageBlockParam{
				Source: anthropic.ImageBlockParamSourceUnion{
					OfBase64: &anthropic.Base64ImageSourceParam{
						Data:      c.Image.Data,
						MediaType: anthropic.Base64ImageSourceMediaType(c.Image.MediaType),
					},
				},
			},
		}
	}
	return anthropic.ToolResultBlockParamContentUnion{
		OfText: &anthropic.TextBlockParam{Text: c.Text},
	}
}

func parseAnthropicContent(msg *anthropic.Message) ([]conversation.Block, error) {
	blocks := make([]conversation.Block, 0, len(msg.Content))
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			blocks = append(blocks, &conversation.TextBlock{Text: v.Text})
		case anthropic.ToolUseBlock:
			// Raw JSON input passes through to the tool untouched.
			blocks = append(blocks, &conversation.ToolUseBlock{
				ID:    v.ID,
				Name:  v.Name,
				Input: json.RawMessage(v.JSON.Input.Raw()),
			})
		default:
			return nil, fmt.Errorf("anthropic: unexpected content block type %T", v)
		}
	}
	return blocks, nil
}
