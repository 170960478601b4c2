package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilityForNextGenerationModels(t *testing.T) {
	for _, model := range []string{"gpt-5.1", "gpt-5"} {
		c := CapabilityFor(model)
		assert.True(t, c.UsesCompletionTokens, model)
		assert.Equal(t, 20, c.MaxAnswerTokens, model)
		assert.True(t, Known(model))
	}
}

func TestCapabilityForLegacyModels(t *testing.T) {
	for _, model := range []string{"gpt-4.1", "gpt-4o"} {
		c := CapabilityFor(model)
		assert.False(t, c.UsesCompletionTokens, model)
		assert.Equal(t, 5, c.MaxAnswerTokens, model)
		assert.True(t, Known(model))
	}
}

func TestCapabilityForUnlistedModelFallsBackToFamilyPrefix(t *testing.T) {
	c := CapabilityFor("gpt-5-mini")
	assert.True(t, c.UsesCompletionTokens)
	assert.Equal(t, 20, c.MaxAnswerTokens)
	assert.False(t, Known("gpt-5-mini"))

	c = CapabilityFor("gpt-4-turbo")
	assert.False(t, c.UsesCompletionTokens)
	assert.Equal(t, 5, c.MaxAnswerTokens)
	assert.False(t, Known("gpt-4-turbo"))
}
