package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/agenthands/mirage/internal/retry"
)

type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey string, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Model() string { return c.model }

func (c *GeminiClient) Answer(ctx context.Context, prompt string, image []byte) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetMaxOutputTokens(int32(CapabilityFor(c.model).MaxAnswerTokens))

	resp, err := model.GenerateContent(ctx, genai.ImageData("jpeg", image), genai.Text(prompt))
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
			return "", &retry.RateLimitError{Message: gerr.Message, Err: err}
		}
		return "", err
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil && len(resp.Candidates[0].Content.Parts) > 0 {
		if txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text); ok {
			return strings.TrimSpace(string(txt)), nil
		}
	}
	return "", fmt.Errorf("no response candidates or content")
}

// Close releases the underlying API connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
