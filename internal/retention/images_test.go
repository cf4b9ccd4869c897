package retention_test

import (
	"fmt"
	"testing"

	"github.com/smogili1/mac-computer-use/internal/conversation"
	"github.com/smogili1/mac-computer-use/internal/retention"
)

// imageResult builds a tool-result block holding one labelled image.
func imageResult(id int) *conversation.ToolResultBlock {
	return &conversation.ToolResultBlock{
		ToolUseID: fmt.Sprintf("tool_%d", id),
		Content: []conversation.ResultContent{
			{Type: conversation.ResultImage, Image: &conversation.ImageSource{
				MediaType: "image/png",
				Data:      fmt.Sprintf("img-%d", id),
			}},
		},
	}
}

// historyWithImages builds an alternating history where each user turn
// carries one tool result with one image.
func historyWithImages(n int) []conversation.Message {
	h := []conversation.Message{conversation.UserText("take screenshots")}
	for i := 0; i < n; i++ {
		h = append(h,
			conversation.AssistantMessage(&conversation.ToolUseBlock{
				ID:   fmt.Sprintf("tool_%d", i),
				Name: "computer",
			}),
			conversation.UserMessage(imageResult(i)),
		)
	}
	return h
}

func countImages(h []conversation.Message) int {
	n := 0
	for _, tr := range conversation.ToolResults(h) {
		for _, c := range tr.Content {
			if c.Type == conversation.ResultImage {
				n++
			}
		}
	}
	return n
}

func TestApply_RemovesOldestInChunks(t *testing.T) {
	h := historyWithImages(25)
	p := retention.Policy{Keep: 5, Chunk: 10}

	removed := p.Apply(h)
	if removed != 20 {
		t.Fatalf("removed=%d, want 20", removed)
	}
	if got := countImages(h); got != 5 {
		t.Fatalf("images left=%d, want 5", got)
	}

	// The survivors are the newest five: images 20..24.
	var left []string
	for _, tr := range conversation.ToolResults(h) {
		for _, c := range tr.Content {
			if c.Type == conversation.ResultImage {
				left = append(left, c.Image.Data)
			}
		}
	}
	for i, want := range []string{"img-20", "img-21", "img-22", "img-23", "img-24"} {
		if left[i] != want {
			t.Fatalf("kept[%d]=%q, want %q (all: %v)", i, left[i], want, left)
		}
	}
}

func TestApply_UnderCapIsNoop(t *testing.T) {
	h := historyWithImages(4)
	p := retention.Policy{Keep: 5, Chunk: 10}

	if removed := p.Apply(h); removed != 0 {
		t.Fatalf("removed=%d, want 0", removed)
	}
	if got := countImages(h); got != 4 {
		t.Fatalf("images left=%d, want 4", got)
	}
}

func TestApply_RoundsDownToChunk(t *testing.T) {
	// 9 over the cap with chunk 10: not enough for a full chunk, so nothing
	// is removed and the request prefix stays put.
	h := historyWithImages(14)
	p := retention.Policy{Keep: 5, Chunk: 10}

	if removed := p.Apply(h); removed != 0 {
		t.Fatalf("removed=%d, want 0", removed)
	}

	// One more image tips it over a full chunk.
	h = historyWithImages(15)
	if removed := p.Apply(h); removed != 10 {
		t.Fatalf("removed=%d, want 10", removed)
	}
	if got := countImages(h); got != 5 {
		t.Fatalf("images left=%d, want 5", got)
	}
}

func TestApply_KeepZeroDisables(t *testing.T) {
	h := historyWithImages(30)
	if removed := (retention.Policy{Keep: 0, Chunk: 10}).Apply(h); removed != 0 {
		t.Fatalf("removed=%d, want 0 when Keep <= 0", removed)
	}
	if got := countImages(h); got != 30 {
		t.Fatalf("images left=%d, want 30", got)
	}
}

func TestApply_DefaultChunk(t *testing.T) {
	h := historyWithImages(12)
	p := retention.Policy{Keep: 2} // Chunk unset -> 10

	if removed := p.Apply(h); removed != 10 {
		t.Fatalf("removed=%d, want 10 with default chunk", removed)
	}
}

func TestApply_PreservesNonImageEntries(t *testing.T) {
	h := []conversation.Message{
		conversation.UserText("go"),
		conversation.AssistantMessage(&conversation.ToolUseBlock{ID: "tool_0", Name: "computer"}),
		conversation.UserMessage(&conversation.ToolResultBlock{
			ToolUseID: "tool_0",
			Content: []conversation.ResultContent{
				{Type: conversation.ResultText, Text: "before"},
				{Type: conversation.ResultImage, Image: &conversation.ImageSource{MediaType: "image/png", Data: "old"}},
				{Type: conversation.ResultText, Text: "after"},
			},
		}),
	}
	// Pad with newer images so the old one is trimmed.
	for i := 1; i <= 11; i++ {
		h = append(h,
			conversation.AssistantMessage(&conversation.ToolUseBlock{ID: fmt.Sprintf("tool_%d", i), Name: "computer"}),
			conversation.UserMessage(imageResult(i)),
		)
	}

	p := retention.Policy{Keep: 2, Chunk: 10}
	if removed := p.Apply(h); removed != 10 {
		t.Fatalf("removed=%d, want 10", removed)
	}

	first := conversation.ToolResults(h)[0]
	if len(first.Content) != 2 {
		t.Fatalf("first result content=%d entries, want 2 text entries: %+v", len(first.Content), first.Content)
	}
	if first.Content[0].Text != "before" || first.Content[1].Text != "after" {
		t.Fatalf("text entries reordered or lost: %+v", first.Content)
	}
}
