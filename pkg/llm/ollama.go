// File: pkg/llm/ollama.go
package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// OllamaClient talks to a local Ollama server. No API key is needed.
type OllamaClient struct {
	cli    *api.Client
	model  string
	logger *zap.Logger
}

// NewOllamaClient connects to host, or to OLLAMA_HOST (default localhost) when host is empty.
func NewOllamaClient(model, host string, logger *zap.Logger) (*OllamaClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var cli *api.Client
	if host == "" {
		c, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("create ollama client: %w", err)
		}
		cli = c
	} else {
		base, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("parse ollama host %q: %w", host, err)
		}
		cli = api.NewClient(base, http.DefaultClient)
	}
	return &OllamaClient{cli: cli, model: model, logger: logger}, nil
}

func (o *OllamaClient) Name() string { return "ollama:" + o.model }

// Generate runs a non-streaming chat at temperature 0.
func (o *OllamaClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	var messages []api.Message
	if prompt.System != "" {
		messages = append(messages, api.Message{Role: "system", Content: prompt.System})
	}
	messages = append(messages, api.Message{Role: "user", Content: prompt.User})

	stream := false
	req := &api.ChatRequest{
		Model:    o.model,
		Messages: messages,
		Stream:   &stream,
		Options:  map[string]interface{}{"temperature": 0},
	}

	var b strings.Builder
	err := o.cli.Chat(ctx, req, func(resp api.ChatResponse) error {
		b.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", err
	}
	o.logger.Debug("Ollama response received", zap.String("model", o.model))
	return b.String(), nil
}
