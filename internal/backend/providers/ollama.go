package providers

import (
	"context"

	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/inkwell-ai/inkwell/internal/backend"
	"github.com/inkwell-ai/inkwell/internal/types"
)

const defaultOllamaURL = "http://localhost:11434"

// OllamaBackend implements Backend for locally hosted Ollama models
type OllamaBackend struct {
	client *ollama.LLM
	config backend.BackendConfig
}

// NewOllamaBackend creates a new Ollama backend
func NewOllamaBackend(cfg backend.BackendConfig) (*OllamaBackend, error) {
	serverURL := cfg.BaseURL
	if serverURL == "" {
		serverURL = defaultOllamaURL
	}

	opts := []ollama.Option{
		ollama.WithServerURL(serverURL),
	}

	if cfg.DefaultModel != "" {
		opts = append(opts, ollama.WithModel(cfg.DefaultModel))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, backend.TranslateError("ollama", err)
	}

	return &OllamaBackend{
		client: client,
		config: cfg,
	}, nil
}

// Name returns the backend name
func (b *OllamaBackend) Name() string {
	return "ollama"
}

// Generate sends a generation request
func (b *OllamaBackend) Generate(ctx context.Context, req backend.GenerateRequest) (*backend.GenerateResponse, error) {
	resp, err := b.client.GenerateContent(ctx, toMessages(req), buildCallOptions(req)...)
	if err != nil {
		return nil, backend.TranslateError("ollama", err)
	}

	model := req.Model
	if model == "" {
		model = b.config.DefaultModel
	}
	return fromContentResponse(resp, b.Name(), model), nil
}

// Health checks the backend health with a minimal generation
func (b *OllamaBackend) Health(ctx context.Context) types.HealthStatus {
	_, err := b.Generate(ctx, backend.GenerateRequest{
		Prompt:    "test",
		MaxTokens: 1,
	})
	if err != nil {
		return types.NewHealthStatus(types.HealthStateUnhealthy, err.Error())
	}

	return types.NewHealthStatus(types.HealthStateHealthy, "")
}
