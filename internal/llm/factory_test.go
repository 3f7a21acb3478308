package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/factscreen/internal/config"
)

func TestNewClient_Providers(t *testing.T) {
	ctx := context.Background()

	c, err := NewClient(ctx, config.LLMConfig{Provider: "OpenAI", Model: "gpt-4o-mini", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = NewClient(ctx, config.LLMConfig{Provider: "claude", Model: "claude-3-5-haiku-latest", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &ClaudeClient{}, c)

	c, err = NewClient(ctx, config.LLMConfig{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)
}

func TestNewClient_Errors(t *testing.T) {
	_, err := NewClient(context.Background(), config.LLMConfig{})
	assert.ErrorIs(t, err, ErrNoProvider)

	_, err = NewClient(context.Background(), config.LLMConfig{Provider: "bogus"})
	assert.ErrorContains(t, err, "unsupported llm provider")
}

func TestOllamaBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:11434/v1", ollamaBaseURL(""))
	assert.Equal(t, "http://gpu:11434/v1", ollamaBaseURL("http://gpu:11434/"))
	assert.Equal(t, "http://gpu:11434/v1", ollamaBaseURL("http://gpu:11434/v1"))
}
