package backend

import (
	"context"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/types"
)

// Backend defines the interface every text-generation backend implements.
// It provides a unified abstraction over hosted LLM services (Anthropic,
// OpenAI, Google, local models); the engine only ever selects among
// backends, never branches on which provider sits behind one.
type Backend interface {
	// Name returns the backend identifier (e.g. "anthropic", "openai")
	Name() string

	// Generate sends a generation request and returns the full response.
	// This is a blocking call that waits for the entire response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Health checks the health status of the backend and its connectivity
	Health(ctx context.Context) types.HealthStatus
}

// GenerateRequest represents a request to generate text.
type GenerateRequest struct {
	// System is the system instruction framing the generation.
	System string `json:"system,omitempty"`

	// Prompt is the user instruction.
	Prompt string `json:"prompt"`

	// MaxTokens caps the response length. Zero means provider default.
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls sampling randomness.
	Temperature float64 `json:"temperature,omitempty"`

	// Model overrides the backend's default model when non-empty.
	Model string `json:"model,omitempty"`
}

// Validate checks if the generation request is valid.
func (r GenerateRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return types.NewError(ErrInvalidRequest, "prompt is required")
	}
	if r.Temperature < 0 || r.Temperature > 1 {
		return types.NewError(ErrInvalidRequest, "temperature must be between 0 and 1")
	}
	if r.MaxTokens < 0 {
		return types.NewError(ErrInvalidRequest, "max_tokens must be non-negative")
	}
	return nil
}

// GenerateResponse represents the response from a backend generation request.
type GenerateResponse struct {
	// ID is a unique identifier for this generation.
	ID string `json:"id"`

	// Text is the generated text.
	Text string `json:"text"`

	// Model is the model that produced the text.
	Model string `json:"model,omitempty"`

	// Backend is the name of the backend that produced the text.
	Backend string `json:"backend,omitempty"`

	// TokensUsed is the total token count reported by the provider, if any.
	TokensUsed int `json:"tokens_used,omitempty"`
}

// IsEmpty reports whether the response carries no usable text.
// Providers occasionally return a successful call with a blank body;
// callers treat that the same as a failed call.
func (r *GenerateResponse) IsEmpty() bool {
	return r == nil || strings.TrimSpace(r.Text) == ""
}
