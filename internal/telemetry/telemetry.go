// Package telemetry emits machine-readable JSONL events for the agent loop
// (turns, tool executions, image trimming) and persists raw provider
// payloads, both gated by environment variables. Events never carry raw
// tool payloads, only sizes and generic error strings.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// eventsDir is where JSONL events and persisted payloads land, relative to
// the working directory.
const eventsDir = ".agent"

// Emit writes a single JSON line to .agent/events.jsonl when
// AGENT_OBSERVE_JSON=1. It augments fields with RFC3339Nano time and the
// event name.
func Emit(name string, fields map[string]any) {
	if !ObserveEnabled() {
		return
	}

	// Shallow copy so callers' maps aren't mutated.
	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal: %v\n", err)
		return
	}

	if err := os.MkdirAll(eventsDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", eventsDir, err)
		return
	}

	path := filepath.Join(eventsDir, "events.jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
	}
}

// PersistPayload stores one raw provider payload as pretty-printed JSON
// under .agent/payloads/ when AGENT_PERSIST_API_PAYLOADS=1. turnID keys the
// file so payloads correlate with emitted events.
func PersistPayload(turnID string, payload any) {
	if !PersistPayloadsEnabled() {
		return
	}

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal payload: %v\n", err)
		return
	}

	dir := filepath.Join(eventsDir, "payloads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", dir, err)
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%d.json", turnID, time.Now().UnixNano()))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
	}
}
