package llm

import (
	"context"
)

// VisionClient answers a single-turn question about one image.
type VisionClient interface {
	// Answer sends the prompt plus the raw image bytes and returns the
	// trimmed free-text answer. Rate-limit failures are returned as
	// *retry.RateLimitError; every other error is fatal to the caller.
	Answer(ctx context.Context, prompt string, image []byte) (string, error)

	// Model reports the model identifier queries are issued against.
	Model() string
}
