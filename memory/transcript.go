package memory

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/smogili1/mac-computer-use/internal/conversation"
)

// Entry is one persisted transcript line.
type Entry struct {
	Role string `json:"role"`
	Text string `json:"text,omitempty"`
}

// FromMessage derives the persisted view of a conversation message:
// newline-joined text blocks only. ok is false when the message carries no
// text worth persisting.
func FromMessage(m conversation.Message) (Entry, bool) {
	text := m.FlattenText()
	if text == "" {
		return Entry{}, false
	}
	return Entry{Role: string(m.Role), Text: text}, true
}

// Load reads a transcript from path. A missing file is an empty transcript,
// not an error.
func Load(path string) ([]Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Save writes the transcript to path.
func Save(path string, entries []Entry) error {
	b, err := json.MarshalIndent(entries, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
