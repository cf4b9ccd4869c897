package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/smogili1/mac-computer-use/internal/agent"
	"github.com/smogili1/mac-computer-use/internal/config"
	"github.com/smogili1/mac-computer-use/internal/conversation"
	"github.com/smogili1/mac-computer-use/internal/provider"
	"github.com/smogili1/mac-computer-use/internal/telemetry"
	"github.com/smogili1/mac-computer-use/memory"
	"github.com/smogili1/mac-computer-use/tools"
	"google.golang.org/genai"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	log := clog.FromContext(ctx)

	cfg, err := config.Load(ctx)
	if err != nil {
		log.With("error", err).Error("configuration")
		os.Exit(1)
	}

	adapter, model, err := buildAdapter(ctx, cfg)
	if err != nil {
		log.With("error", err).Error("provider setup")
		os.Exit(1)
	}

	// Load prior conversation if it exists.
	persisted, err := memory.Load(cfg.TranscriptPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load transcript: %v\n", err)
	}
	conv := make([]conversation.Message, 0, len(persisted))
	for _, e := range persisted {
		msg := conversation.UserText(e.Text)
		if e.Role == string(conversation.RoleAssistant) {
			msg = conversation.AssistantMessage(&conversation.TextBlock{Text: e.Text})
		}
		conv = append(conv, msg)
	}

	loop := agent.New(adapter, tools.Registry())
	loop.Model = model
	loop.System = agent.SystemPrompt(cfg.SystemPromptSuffix)
	loop.MaxTokens = cfg.MaxTokens
	loop.KeepImages = cfg.KeepImages
	loop.Hooks = agent.Hooks{
		OnBlock:       printBlock,
		OnToolResult:  printToolResult,
		OnRawResponse: persistRaw,
	}

	// Graceful shutdown on Ctrl-C (SIGINT) / SIGTERM.
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Chat with the agent (Ctrl-C to quit)")

	// stdin reader goroutine -> lines into channel
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

outer:
	for {
		fmt.Print("[94mYou[0m: ")
		var (
			user string
			ok   bool
		)
		select {
		case <-ctx.Done():
			break outer
		case user, ok = <-inputCh:
			if !ok {
				break outer
			}
		}

		conv = append(conv, conversation.UserText(user))
		before := len(conv)

		conv, err = loop.Run(ctx, conv)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		// Persist the text view of everything this run added.
		persisted = append(persisted, memory.Entry{Role: string(conversation.RoleUser), Text: user})
		for _, m := range conv[before:] {
			if e, ok := memory.FromMessage(m); ok {
				persisted = append(persisted, e)
			}
		}
		if err := memory.Save(cfg.TranscriptPath, persisted); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save transcript: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stdin read error: %v\n", err)
	}
}

// buildAdapter selects the provider variant once, at construction time.
func buildAdapter(ctx context.Context, cfg *config.Config) (provider.Adapter, string, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, "", err
		}
		model := cfg.Model
		if model == "" {
			model = provider.DefaultGeminiModel
		}
		return provider.NewGeminiAdapter(client), model, nil
	default:
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			return nil, "", fmt.Errorf("missing ANTHROPIC_API_KEY; export it before running")
		}
		model := cfg.Model
		if model == "" {
			model = provider.DefaultAnthropicModel
		}
		return provider.NewAnthropicAdapter(provider.NewAnthropicClient()), model, nil
	}
}

func printBlock(b conversation.Block) {
	switch v := b.(type) {
	case *conversation.TextBlock:
		fmt.Printf("[93mAgent[0m: %s\n", v.Text)
	case *conversation.ToolUseBlock:
		fmt.Printf("[95mTool[0m: %s(%s)\n", v.Name, string(v.Input))
	}
}

func printToolResult(res tools.Result, id string) {
	switch {
	case res.Error != "":
		fmt.Printf("[91mResult[0m [%s]: error: %s\n", id, res.Error)
	case res.Image != "":
		fmt.Printf("[92mResult[0m [%s]: %s [screenshot, %d bytes base64]\n", id, oneLine(res.Output), len(res.Image))
	default:
		fmt.Printf("[92mResult[0m [%s]: %s\n", id, oneLine(res.Output))
	}
}

func oneLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " …"
	}
	return s
}

func persistRaw(raw any) {
	telemetry.PersistPayload("response", raw)
}
