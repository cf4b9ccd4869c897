package tools

import (
	"errors"

	"github.com/smogili1/mac-computer-use/internal/conversation"
)

// resultMediaType is the media type of embedded tool images. Screenshots
// are always PNG.
const resultMediaType = "image/png"

// ErrImageConflict is returned by Combine when both outcomes carry image
// data. Combination is only defined when at most one side has an image;
// hitting this means a caller bug, so it fails loudly instead of dropping
// a screenshot.
var ErrImageConflict = errors.New("cannot combine tool results: both carry image data")

// Result is the outcome of one tool invocation. Values are immutable:
// Combine returns a new Result and the wire conversion reads fields only.
//
// Image holds a base64-encoded PNG; System is an advisory note surfaced to
// the model inside <system> tags.
type Result struct {
	Output string
	Error  string
	Image  string
	System string
}

// IsEmpty reports whether no field is set.
func (r Result) IsEmpty() bool {
	return r.Output == "" && r.Error == "" && r.Image == "" && r.System == ""
}

// Combine merges two outcomes left-then-right: text fields concatenate when
// both are present, otherwise whichever side is set wins. Image data does
// not concatenate; both sides carrying an image is an invariant violation.
func Combine(a, b Result) (Result, error) {
	if a.Image != "" && b.Image != "" {
		return Result{}, ErrImageConflict
	}
	return Result{
		Output: concat(a.Output, b.Output),
		Error:  concat(a.Error, b.Error),
		Image:  or(a.Image, b.Image),
		System: concat(a.System, b.System),
	}, nil
}

func concat(a, b string) string {
	if a != "" && b != "" {
		return a + b
	}
	return or(a, b)
}

func or(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// Block converts the outcome into the tool-result block fed back to the
// model. An error outcome yields a single text entry holding the error;
// otherwise output text (if any) comes first and the image (if any) after.
// The system note prefixes the text entry at most once; an outcome with no
// fields yields an empty content list.
func (r Result) Block(toolUseID string) *conversation.ToolResultBlock {
	block := &conversation.ToolResultBlock{ToolUseID: toolUseID}
	if r.Error != "" {
		block.IsError = true
		block.Content = append(block.Content, conversation.ResultContent{
			Type: conversation.ResultText,
			Text: r.prependSystem(r.Error),
		})
		return block
	}
	if r.Output != "" {
		block.Content = append(block.Content, conversation.ResultContent{
			Type: conversation.ResultText,
			Text: r.prependSystem(r.Output),
		})
	}
	if r.Image != "" {
		block.Content = append(block.Content, conversation.ResultContent{
			Type: conversation.ResultImage,
			Image: &conversation.ImageSource{
				MediaType: resultMediaType,
				Data:      r.Image,
			},
		})
	}
	return block
}

func (r Result) prependSystem(text string) string {
	if r.System == "" {
		return text
	}
	return "<system>" + r.System + "</system>\n" + text
}
