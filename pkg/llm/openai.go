// File: pkg/llm/openai.go
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient talks to the chat completions API.
type OpenAIClient struct {
	cli    *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIClient creates a client; baseURL overrides the public endpoint when set.
func NewOpenAIClient(apiKey, model, baseURL string, logger *zap.Logger) (*OpenAIClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w for openai", ErrMissingAPIKey)
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{cli: openai.NewClientWithConfig(cfg), model: model, logger: logger}, nil
}

func (o *OpenAIClient) Name() string { return "openai:" + o.model }

// Generate sends the system and user messages and returns the first choice.
func (o *OpenAIClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	var messages []openai.ChatCompletionMessage
	if prompt.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: prompt.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt.User})

	resp, err := o.cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	o.logger.Debug("OpenAI response received",
		zap.String("model", o.model),
		zap.String("finishReason", string(resp.Choices[0].FinishReason)))
	return resp.Choices[0].Message.Content, nil
}
