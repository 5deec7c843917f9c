package ai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Service talks to an OpenAI-compatible chat completion endpoint. It
// implements the greeting.Generator contract: one blocking request, no
// retries.
type Service struct {
	client llms.Model
}

// NewService creates a completion client against the configured endpoint.
func NewService(apiKey, baseURL, model string) (*Service, error) {
	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &Service{
		client: client,
	}, nil
}

// Generate sends a system instruction plus one user prompt and returns the
// first choice.
func (s *Service) Generate(
	ctx context.Context, system, prompt string, maxTokens int,
) (string, error) {
	msgs := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := s.client.GenerateContent(ctx, msgs, llms.WithMaxTokens(maxTokens))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from model")
	}

	return resp.Choices[0].Content, nil
}
