package providers

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/inkwell-ai/inkwell/internal/backend"
	"github.com/inkwell-ai/inkwell/internal/types"
)

// GoogleBackend implements Backend for Google's Gemini models
type GoogleBackend struct {
	client *googleai.GoogleAI
	config backend.BackendConfig
}

// NewGoogleBackend creates a new Google backend
func NewGoogleBackend(cfg backend.BackendConfig) (*GoogleBackend, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}

	if apiKey == "" {
		return nil, backend.NewAuthError("google", nil)
	}

	opts := []googleai.Option{
		googleai.WithAPIKey(apiKey),
	}

	if cfg.DefaultModel != "" {
		opts = append(opts, googleai.WithDefaultModel(cfg.DefaultModel))
	}

	client, err := googleai.New(context.Background(), opts...)
	if err != nil {
		return nil, backend.TranslateError("google", err)
	}

	return &GoogleBackend{
		client: client,
		config: cfg,
	}, nil
}

// Name returns the backend name
func (b *GoogleBackend) Name() string {
	return "google"
}

// Generate sends a generation request
func (b *GoogleBackend) Generate(ctx context.Context, req backend.GenerateRequest) (*backend.GenerateResponse, error) {
	resp, err := b.client.GenerateContent(ctx, toMessages(req), buildCallOptions(req)...)
	if err != nil {
		return nil, backend.TranslateError("google", err)
	}

	model := req.Model
	if model == "" {
		model = b.config.DefaultModel
	}
	return fromContentResponse(resp, b.Name(), model), nil
}

// Health checks the backend health with a minimal generation
func (b *GoogleBackend) Health(ctx context.Context) types.HealthStatus {
	_, err := b.Generate(ctx, backend.GenerateRequest{
		Prompt:    "test",
		MaxTokens: 1,
	})
	if err != nil {
		return types.NewHealthStatus(types.HealthStateUnhealthy, err.Error())
	}

	return types.NewHealthStatus(types.HealthStateHealthy, "")
}
