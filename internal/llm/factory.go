package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/factscreen/internal/config"
)

func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)

	switch provider {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)

	case "claude", "anthropic":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "ollama":
		// Ollama serves an OpenAI-compatible API under /v1 and ignores the key.
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAIClient(apiKey, cfg.Model, ollamaBaseURL(cfg.BaseURL)), nil

	case "", "none":
		return nil, ErrNoProvider

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}

var ErrNoProvider = errors.New("no llm provider configured")

func ollamaBaseURL(baseURL string) string {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if strings.HasSuffix(baseURL, "/v1") {
		return baseURL
	}
	return strings.TrimRight(baseURL, "/") + "/v1"
}
