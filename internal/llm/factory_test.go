package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/mirage/internal/config"
)

func TestNewClientOpenAI(t *testing.T) {
	c, err := NewClient(context.Background(), config.LLMConfig{
		Provider: "openai",
		Model:    "gpt-4o",
		APIKey:   "test-key",
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", c.Model())
	assert.IsType(t, &OpenAIClient{}, c)
}

func TestNewClientClaude(t *testing.T) {
	c, err := NewClient(context.Background(), config.LLMConfig{
		Provider: "claude",
		Model:    "claude-sonnet-4-20250514",
		APIKey:   "test-key",
	})
	require.NoError(t, err)
	assert.IsType(t, &ClaudeClient{}, c)
}

func TestNewClientOllamaUsesOpenAICompatibleAPI(t *testing.T) {
	c, err := NewClient(context.Background(), config.LLMConfig{
		Provider: "ollama",
		Model:    "llava",
		BaseURL:  "http://localhost:11434",
	})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)
}

func TestNewClientProviderIsCaseInsensitive(t *testing.T) {
	_, err := NewClient(context.Background(), config.LLMConfig{
		Provider: "OpenAI",
		Model:    "gpt-4o",
		APIKey:   "test-key",
	})
	assert.NoError(t, err)
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(context.Background(), config.LLMConfig{Provider: "bedrock"})
	assert.Error(t, err)
}
