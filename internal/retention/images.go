// Package retention bounds the growth of embedded tool-result images.
//
// Screenshots are large and of diminishing value as a conversation ages.
// Trimming them naively would change the request prefix on nearly every
// call and defeat provider-side prefix caching, so removal happens in
// fixed-size chunks: the prefix stays stable across many turns, then moves
// once per chunk.
package retention

import "github.com/smogili1/mac-computer-use/internal/conversation"

// DefaultChunk is the removal batch size when Policy.Chunk is unset.
const DefaultChunk = 10

// Policy keeps the Keep most recent embedded images across the whole
// history and removes older ones in multiples of Chunk. A Keep <= 0 policy
// is a no-op (no cap configured).
type Policy struct {
	Keep  int
	Chunk int
}

// Apply trims embedded images from the history's tool-result blocks in
// place, oldest first, and reports how many were removed. Non-image entries
// are always kept and the relative order of kept entries is preserved;
// messages are never added, removed or reordered.
func (p Policy) Apply(history []conversation.Message) int {
	if p.Keep <= 0 {
		return 0
	}
	chunk := p.Chunk
	if chunk <= 0 {
		chunk = DefaultChunk
	}

	blocks := conversation.ToolResults(history)

	total := 0
	for _, tr := range blocks {
		for _, c := range tr.Content {
			if c.Type == conversation.ResultImage {
				total++
			}
		}
	}

	toRemove := total - p.Keep
	if toRemove < 0 {
		toRemove = 0
	}
	// Round down to a chunk multiple so the request prefix stays cacheable.
	toRemove -= toRemove % chunk
	removed := toRemove

	if toRemove == 0 {
		return 0
	}

	for _, tr := range blocks {
		kept := tr.Content[:0]
		for _, c := range tr.Content {
			if c.Type == conversation.ResultImage && toRemove > 0 {
				toRemove--
				continue
			}
			kept = append(kept, c)
		}
		tr.Content = kept
	}
	return removed
}
