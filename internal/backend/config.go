package backend

import (
	"fmt"

	"github.com/inkwell-ai/inkwell/internal/types"
)

// BackendType identifies the provider family behind a backend.
type BackendType string

const (
	BackendAnthropic BackendType = "anthropic"
	BackendOpenAI    BackendType = "openai"
	BackendGoogle    BackendType = "google"
	BackendOllama    BackendType = "ollama"
	BackendMock      BackendType = "mock"
)

// Config contains the root backend configuration: the candidate order and
// detailed configuration per backend.
type Config struct {
	// Candidates lists backend names in fallback order. The first entry
	// is the default assignment for new sections.
	Candidates []string `mapstructure:"candidates" yaml:"candidates"`

	// Backends maps backend name to its configuration.
	Backends map[string]BackendConfig `mapstructure:"backends" yaml:"backends"`
}

// BackendConfig contains configuration for a single backend.
type BackendConfig struct {
	// Type selects the provider family.
	Type BackendType `mapstructure:"type" yaml:"type"`

	// APIKey is the provider API key. Empty falls back to the provider's
	// conventional environment variable.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// DefaultModel is the model used when a request doesn't name one.
	DefaultModel string `mapstructure:"default_model" yaml:"default_model"`

	// BaseURL overrides the provider endpoint (self-hosted or proxy setups).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// Validate performs validation on the backend Config.
// Every candidate must have a corresponding backend configuration.
func (c *Config) Validate() error {
	if len(c.Candidates) == 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "backend candidates cannot be empty")
	}

	for _, name := range c.Candidates {
		cfg, exists := c.Backends[name]
		if !exists {
			return types.NewError(
				types.CONFIG_VALIDATION_FAILED,
				fmt.Sprintf("candidate %q not found in backends map", name),
			)
		}
		if err := cfg.Validate(); err != nil {
			return types.WrapError(
				types.CONFIG_VALIDATION_FAILED,
				fmt.Sprintf("backend %q validation failed", name),
				err,
			)
		}
	}

	return nil
}

// Validate performs validation on a single BackendConfig.
func (c BackendConfig) Validate() error {
	switch c.Type {
	case BackendAnthropic, BackendOpenAI, BackendGoogle, BackendOllama, BackendMock:
		return nil
	case "":
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "backend type cannot be empty")
	default:
		return types.NewError(
			types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("unknown backend type: %s", c.Type),
		)
	}
}
