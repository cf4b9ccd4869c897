// Package config loads process configuration from the environment.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Provider tags for adapter selection.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config is the agent's environment-derived configuration. Anthropic
// credentials are read by the SDK itself (ANTHROPIC_API_KEY).
type Config struct {
	Provider string `env:"AGENT_PROVIDER, default=anthropic"`
	// Model defaults per provider when empty.
	Model     string `env:"AGENT_MODEL"`
	MaxTokens int64  `env:"AGENT_MAX_TOKENS, default=4096"`
	// KeepImages caps embedded tool-result images kept across history;
	// 0 disables trimming.
	KeepImages         int    `env:"AGENT_KEEP_IMAGES, default=0"`
	SystemPromptSuffix string `env:"AGENT_SYSTEM_PROMPT_SUFFIX"`
	TranscriptPath     string `env:"AGENT_TRANSCRIPT_PATH, default=conversation.json"`
	GeminiAPIKey       string `env:"GEMINI_API_KEY"`
}

// Load parses the environment and validates the provider tag.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	switch cfg.Provider {
	case ProviderAnthropic, ProviderGemini:
	default:
		return nil, fmt.Errorf("unknown AGENT_PROVIDER %q (want %s or %s)", cfg.Provider, ProviderAnthropic, ProviderGemini)
	}
	return &cfg, nil
}
