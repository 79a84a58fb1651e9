package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"askless/config"

	openai "github.com/sashabaranov/go-openai"
)

// AnswerGenerator produces model output for a persona instruction and a raw
// question. Implementations are expected to be safe for concurrent use.
type AnswerGenerator interface {
	Generate(ctx context.Context, systemInstruction string, question string) (string, error)
}

type openAIGenerator struct {
	client *openai.Client
	models []string
}

// NewOpenAIGenerator creates an AnswerGenerator backed by an
// OpenAI-compatible chat completion endpoint. The configured fallback models
// are tried in order on every call.
func NewOpenAIGenerator(cfg config.LLMConfig) (AnswerGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrInvalidCredential
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	models := cfg.ModelFallbacks
	if len(models) == 0 {
		models = []string{openai.GPT4oMini}
	}
	return &openAIGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		models: models,
	}, nil
}

// Generate walks the fallback list in order and returns the first model
// response that arrives without a quota, rate-limit or generic error. A bad
// credential aborts immediately since no fallback can recover from it.
func (g *openAIGenerator) Generate(ctx context.Context, systemInstruction string, question string) (string, error) {
	var lastErr error
	for _, model := range g.models {
		resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
				{Role: openai.ChatMessageRoleUser, Content: question},
			},
		})
		if err != nil {
			lastErr = classifyUpstreamError(err, model)
			if errors.Is(lastErr, ErrInvalidCredential) {
				return "", lastErr
			}
			log.Printf("WARN: [Generator] Model '%s' failed, trying next fallback: %v", model, lastErr)
			continue
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			lastErr = fmt.Errorf("model '%s' returned an empty completion", model)
			log.Printf("WARN: [Generator] %v", lastErr)
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", lastErr
}

// classifyUpstreamError maps a go-openai error onto the sentinel taxonomy.
func classifyUpstreamError(err error, model string) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ErrInvalidCredential, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrQuotaExhausted, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: model '%s': %v", ErrModelUnavailable, model, err)
		}
	}
	return fmt.Errorf("model '%s': %w", model, err)
}
