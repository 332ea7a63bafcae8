// Package llm sends a packed project to a language model together with a task.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrUnsupportedProvider is returned for providers without a client implementation.
	ErrUnsupportedProvider = errors.New("unsupported provider")
	// ErrMissingAPIKey is returned when a provider needs a key and none is configured.
	ErrMissingAPIKey = errors.New("missing API key")
	// ErrEmptyTask is returned when the task text is blank.
	ErrEmptyTask = errors.New("task must not be empty")
	// ErrEmptyResponse is returned when the model produced no text.
	ErrEmptyResponse = errors.New("empty response from model")
)

// Prompt is the pair of messages sent to a model.
type Prompt struct {
	System string
	User   string
}

// Client generates a completion for a prompt.
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Request carries everything a query needs.
type Request struct {
	Task              string
	Document          string
	Language          string
	InstructionPrompt string
}

// BuildPrompt formats the system and user messages for req.
func BuildPrompt(req Request) Prompt {
	return Prompt{
		System: fmt.Sprintf("You are a helpful AI assistant. Respond in %s.", req.Language),
		User: fmt.Sprintf("%s\n\n%s\n\nHere is the combined code from the project:\n\n%s",
			req.InstructionPrompt, req.Task, req.Document),
	}
}

// Query validates req, sends it through client and returns the model's answer.
func Query(ctx context.Context, client Client, req Request, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(req.Task) == "" {
		return "", ErrEmptyTask
	}

	prompt := BuildPrompt(req)
	logger.Info("Querying model",
		zap.String("client", client.Name()),
		zap.Int("promptChars", len(prompt.User)))

	answer, err := client.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("query %s: %w", client.Name(), err)
	}
	if strings.TrimSpace(answer) == "" {
		return "", ErrEmptyResponse
	}
	logger.Debug("Received response", zap.Int("responseChars", len(answer)))
	return answer, nil
}
