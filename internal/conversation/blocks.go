// Package conversation defines the provider-agnostic conversation model.
//
// A conversation is an ordered list of Messages; each Message carries an
// ordered list of content Blocks. Both provider adapters translate to and
// from this model, so the agent loop never touches provider wire types.
//
// Invariants:
//   - Every ToolUseBlock.ID in an assistant turn has exactly one matching
//     ToolResultBlock.ToolUseID in the following user turn.
//   - After the first user turn, roles alternate assistant/user.
//   - Block order within a turn is preserved end to end.
package conversation

import "encoding/json"

// Role identifies the author of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation. History is append-only except
// for in-place image trimming of existing tool-result blocks.
type Message struct {
	Role    Role
	Content []Block
}

// Block is a closed union of content block kinds. The concrete types are
// *TextBlock, *ToolUseBlock and *ToolResultBlock; blocks are always held
// by pointer so tool-result content can be trimmed in place.
type Block interface {
	isBlock()
}

// TextBlock is plain assistant or user text.
type TextBlock struct {
	Text string
}

// ToolUseBlock is a model request to invoke a named capability. Input is
// the raw JSON argument object, passed through to the tool untouched.
type ToolUseBlock struct {
	ID    string
	Name  string
	Input json.RawMessage
}

// ToolResultBlock folds a tool outcome back to the model, tagged with the
// originating call id.
type ToolResultBlock struct {
	ToolUseID string
	Content   []ResultContent
	IsError   bool
}

func (*TextBlock) isBlock()       {}
func (*ToolUseBlock) isBlock()    {}
func (*ToolResultBlock) isBlock() {}

// ResultContentType tags a ResultContent entry.
type ResultContentType string

const (
	ResultText  ResultContentType = "text"
	ResultImage ResultContentType = "image"
)

// ResultContent is one entry inside a tool result: text or an embedded image.
type ResultContent struct {
	Type  ResultContentType
	Text  string
	Image *ImageSource
}

// ImageSource is a base64-encoded embedded image.
type ImageSource struct {
	MediaType string
	Data      string
}

// UserMessage builds a user Message from blocks.
func UserMessage(blocks ...Block) Message {
	return Message{Role: RoleUser, Content: blocks}
}

// AssistantMessage builds an assistant Message from blocks.
func AssistantMessage(blocks ...Block) Message {
	return Message{Role: RoleAssistant, Content: blocks}
}

// UserText is shorthand for a user Message holding a single text block.
func UserText(text string) Message {
	return UserMessage(&TextBlock{Text: text})
}

// FlattenText newline-joins the text blocks of a message, ignoring all
// other block kinds. This is the projection the transcoding provider and
// the transcript persistence share.
func (m Message) FlattenText() string {
	out := ""
	for _, b := range m.Content {
		tb, ok := b.(*TextBlock)
		if !ok {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += tb.Text
	}
	return out
}

// ToolResults returns the tool-result blocks of every message in history
// order. Retention uses this to walk embedded images oldest-first.
func ToolResults(history []Message) []*ToolResultBlock {
	var out []*ToolResultBlock
	for _, m := range history {
		for _, b := range m.Content {
			if tr, ok := b.(*ToolResultBlock); ok {
				out = append(out, tr)
			}
		}
	}
	return out
}
