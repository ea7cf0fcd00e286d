package providers

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/inkwell-ai/inkwell/internal/backend"
	"github.com/inkwell-ai/inkwell/internal/types"
)

// AnthropicBackend implements Backend for Anthropic's Claude models
type AnthropicBackend struct {
	client *anthropic.LLM
	config backend.BackendConfig
}

// NewAnthropicBackend creates a new Anthropic backend
func NewAnthropicBackend(cfg backend.BackendConfig) (*AnthropicBackend, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	if apiKey == "" {
		return nil, backend.NewAuthError("anthropic", nil)
	}

	opts := []anthropic.Option{
		anthropic.WithToken(apiKey),
	}

	if cfg.DefaultModel != "" {
		opts = append(opts, anthropic.WithModel(cfg.DefaultModel))
	}

	client, err := anthropic.New(opts...)
	if err != nil {
		return nil, backend.TranslateError("anthropic", err)
	}

	return &AnthropicBackend{
		client: client,
		config: cfg,
	}, nil
}

// Name returns the backend name
func (b *AnthropicBackend) Name() string {
	return "anthropic"
}

// Generate sends a generation request
func (b *AnthropicBackend) Generate(ctx context.Context, req backend.GenerateRequest) (*backend.GenerateResponse, error) {
	resp, err := b.client.GenerateContent(ctx, toMessages(req), buildCallOptions(req)...)
	if err != nil {
		return nil, backend.TranslateError("anthropic", err)
	}

	model := req.Model
	if model == "" {
		model = b.config.DefaultModel
	}
	return fromContentResponse(resp, b.Name(), model), nil
}

// Health checks the backend health with a minimal generation
func (b *AnthropicBackend) Health(ctx context.Context) types.HealthStatus {
	_, err := b.Generate(ctx, backend.GenerateRequest{
		Prompt:    "test",
		MaxTokens: 1,
	})
	if err != nil {
		return types.NewHealthStatus(types.HealthStateUnhealthy, err.Error())
	}

	return types.NewHealthStatus(types.HealthStateHealthy, "")
}
