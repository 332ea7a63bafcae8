package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewClient returns the client for provider using the public endpoints.
// Ollama ignores apiKey and honours OLLAMA_HOST.
func NewClient(ctx context.Context, provider, model, apiKey string, logger *zap.Logger) (Client, error) {
	switch provider {
	case "gemini":
		return NewGeminiClient(ctx, apiKey, model, logger)
	case "openai":
		return NewOpenAIClient(apiKey, model, "", logger)
	case "anthropic":
		return NewAnthropicClient(apiKey, model, "", logger)
	case "ollama":
		return NewOllamaClient(model, "", logger)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
}
