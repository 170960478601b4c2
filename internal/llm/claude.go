package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/agenthands/mirage/internal/retry"
)

type ClaudeClient struct {
	client *anthropic.Client
	model  string
}

func NewClaudeClient(apiKey string, model string, baseURL string) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(apiKey, opts...)

	return &ClaudeClient{
		client: client,
		model:  model,
	}
}

func (c *ClaudeClient) Model() string { return c.model }

func (c *ClaudeClient) Answer(ctx context.Context, prompt string, image []byte) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(
						anthropic.NewMessageContentSource(anthropic.MessagesContentSourceTypeBase64, "image/jpeg", image),
					),
					anthropic.NewTextMessageContent(prompt),
				},
			},
		},
		MaxTokens: CapabilityFor(c.model).MaxAnswerTokens,
	})
	if err != nil {
		var apiErr *anthropic.APIError
		if errors.As(err, &apiErr) && apiErr.IsRateLimitErr() {
			return "", &retry.RateLimitError{Message: apiErr.Message, Err: err}
		}
		return "", err
	}

	if len(resp.Content) > 0 && resp.Content[0].Text != nil {
		return strings.TrimSpace(*resp.Content[0].Text), nil
	}
	return "", fmt.Errorf("no response content")
}
