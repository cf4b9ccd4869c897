// Package memory persists a minimal text-only transcript of conversations
// between CLI sessions. Tool-use blocks, tool results and images are
// transient: only what the user typed and what the assistant said survives
// a restart.
package memory
