package llm

import "strings"

// Capability describes the transport parameters a model accepts. Sending the
// wrong token-limit parameter name is a hard request-format error, so the
// choice is driven by an explicit per-model table instead of name sniffing.
type Capability struct {
	// UsesCompletionTokens selects the max_completion_tokens parameter
	// (next-generation families) over the legacy max_tokens.
	UsesCompletionTokens bool

	// MaxAnswerTokens caps the answer; probes expect a one-word reply.
	MaxAnswerTokens int
}

var capabilities = map[string]Capability{
	"gpt-5.1": {UsesCompletionTokens: true, MaxAnswerTokens: 20},
	"gpt-5":   {UsesCompletionTokens: true, MaxAnswerTokens: 20},
	"gpt-4.1": {UsesCompletionTokens: false, MaxAnswerTokens: 5},
	"gpt-4o":  {UsesCompletionTokens: false, MaxAnswerTokens: 5},
}

// CapabilityFor returns the descriptor for a model. Models not in the table
// fall back to a family-prefix guess so new point releases keep working, but
// Known lets callers warn about the guess.
func CapabilityFor(model string) Capability {
	if c, ok := capabilities[model]; ok {
		return c
	}
	if strings.HasPrefix(model, "gpt-5") {
		return Capability{UsesCompletionTokens: true, MaxAnswerTokens: 20}
	}
	return Capability{MaxAnswerTokens: 5}
}

// Known reports whether the model has an explicit capability entry.
func Known(model string) bool {
	_, ok := capabilities[model]
	return ok
}
