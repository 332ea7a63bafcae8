// File: pkg/llm/anthropic.go
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// anthropicMaxTokens caps the length of a generated plan.
const anthropicMaxTokens = 4096

// AnthropicClient talks to the Messages API.
type AnthropicClient struct {
	cli    anthropic.Client
	model  string
	logger *zap.Logger
}

// NewAnthropicClient creates a client; baseURL overrides the public endpoint when set.
func NewAnthropicClient(apiKey, model, baseURL string, logger *zap.Logger) (*AnthropicClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w for anthropic", ErrMissingAPIKey)
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &AnthropicClient{cli: anthropic.NewClient(opts...), model: model, logger: logger}, nil
}

func (a *AnthropicClient) Name() string { return "anthropic:" + a.model }

// Generate sends prompt at temperature 0 and joins the text blocks of the reply.
func (a *AnthropicClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   anthropicMaxTokens,
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.User))},
		Temperature: anthropic.Float(0),
	}
	if prompt.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: prompt.System}}
	}

	msg, err := a.cli.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	a.logger.Debug("Anthropic response received",
		zap.String("model", a.model),
		zap.Int("blocks", len(msg.Content)))
	return b.String(), nil
}
