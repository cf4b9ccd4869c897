// Package provider normalizes the conversation model onto concrete LLM
// backends. Each Adapter owns both directions of the translation: building
// a provider request from history + tool schemas, and parsing the native
// response back into conversation blocks.
//
// The set of adapters is closed: the structured variant (Anthropic) carries
// the conversation losslessly, the transcoding variant (Gemini) projects it
// onto a two-role plain-chat protocol and is deliberately lossy (see
// GeminiAdapter). Callers pick an adapter at construction time; nothing in
// the loop branches on provider names.
package provider

import (
	"context"

	"github.com/smogili1/mac-computer-use/internal/conversation"
	"github.com/smogili1/mac-computer-use/tools"
)

// Default model names per provider.
const (
	DefaultAnthropicModel = "claude-3-5-sonnet-20241022"
	DefaultGeminiModel    = "gemini-exp-1206"
)

// Request is one model call: the full conversation so far plus the tool
// schemas the model may call. Credentials live in the adapter's client.
type Request struct {
	Model     string
	System    string
	History   []conversation.Message
	Tools     []tools.Capability
	MaxTokens int64
}

// Response is the normalized model reply: ordered content blocks plus the
// provider's raw payload, forwarded verbatim to the raw-response observer.
type Response struct {
	Blocks []conversation.Block
	Raw    any
}

// Adapter sends one model turn. Transport, auth and malformed-response
// failures propagate as errors; the caller owns retry policy.
type Adapter interface {
	Send(ctx context.Context, req Request) (*Response, error)
}
