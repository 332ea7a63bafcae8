// File: pkg/llm/gemini.go
package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli    *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiClient creates a client for the Gemini API backend.
func NewGeminiClient(ctx context.Context, apiKey, model string, logger *zap.Logger) (*GeminiClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w for gemini", ErrMissingAPIKey)
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{cli: cli, model: model, logger: logger}, nil
}

func (g *GeminiClient) Name() string { return "gemini:" + g.model }

// Generate sends prompt with temperature 0 and joins the text parts of the
// first candidate.
func (g *GeminiClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	temperature := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if prompt.System != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: prompt.System}}}
	}

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt.User}}}},
		config,
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	g.logger.Debug("Gemini response received",
		zap.String("model", g.model),
		zap.Int("parts", len(resp.Candidates[0].Content.Parts)))
	return b.String(), nil
}
