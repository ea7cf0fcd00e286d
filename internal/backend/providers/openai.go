package providers

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/inkwell-ai/inkwell/internal/backend"
	"github.com/inkwell-ai/inkwell/internal/types"
)

// OpenAIBackend implements Backend for OpenAI's GPT models
type OpenAIBackend struct {
	client *openai.LLM
	config backend.BackendConfig
}

// NewOpenAIBackend creates a new OpenAI backend
func NewOpenAIBackend(cfg backend.BackendConfig) (*OpenAIBackend, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	if apiKey == "" {
		return nil, backend.NewAuthError("openai", nil)
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
	}

	if cfg.DefaultModel != "" {
		opts = append(opts, openai.WithModel(cfg.DefaultModel))
	}

	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, backend.TranslateError("openai", err)
	}

	return &OpenAIBackend{
		client: client,
		config: cfg,
	}, nil
}

// Name returns the backend name
func (b *OpenAIBackend) Name() string {
	return "openai"
}

// Generate sends a generation request
func (b *OpenAIBackend) Generate(ctx context.Context, req backend.GenerateRequest) (*backend.GenerateResponse, error) {
	resp, err := b.client.GenerateContent(ctx, toMessages(req), buildCallOptions(req)...)
	if err != nil {
		return nil, backend.TranslateError("openai", err)
	}

	model := req.Model
	if model == "" {
		model = b.config.DefaultModel
	}
	return fromContentResponse(resp, b.Name(), model), nil
}

// Health checks the backend health with a minimal generation
func (b *OpenAIBackend) Health(ctx context.Context) types.HealthStatus {
	_, err := b.Generate(ctx, backend.GenerateRequest{
		Prompt:    "test",
		MaxTokens: 1,
	})
	if err != nil {
		return types.NewHealthStatus(types.HealthStateUnhealthy, err.Error())
	}

	return types.NewHealthStatus(types.HealthStateHealthy, "")
}
