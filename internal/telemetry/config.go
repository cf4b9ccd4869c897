package telemetry

import "os"

// ObserveEnabled reports whether JSONL event emission is enabled
// (AGENT_OBSERVE_JSON=1).
func ObserveEnabled() bool {
	return os.Getenv("AGENT_OBSERVE_JSON") == "1"
}

// PersistPayloadsEnabled reports whether raw provider payload persistence
// is enabled (AGENT_PERSIST_API_PAYLOADS=1).
func PersistPayloadsEnabled() bool {
	return os.Getenv("AGENT_PERSIST_API_PAYLOADS") == "1"
}
