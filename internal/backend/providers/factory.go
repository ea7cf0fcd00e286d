package providers

import (
	"fmt"

	"github.com/inkwell-ai/inkwell/internal/backend"
	"github.com/inkwell-ai/inkwell/internal/types"
)

// NewBackend creates a backend instance from its configuration
func NewBackend(name string, cfg backend.BackendConfig) (backend.Backend, error) {
	switch cfg.Type {
	case backend.BackendAnthropic:
		return NewAnthropicBackend(cfg)

	case backend.BackendOpenAI:
		return NewOpenAIBackend(cfg)

	case backend.BackendGoogle:
		return NewGoogleBackend(cfg)

	case backend.BackendOllama:
		return NewOllamaBackend(cfg)

	case backend.BackendMock:
		return NewMockBackend(name, []string{"Mock response"}), nil

	default:
		return nil, types.NewError(
			backend.ErrBackendInitFailed,
			fmt.Sprintf("unknown backend type: %s", cfg.Type),
		)
	}
}

// BuildRegistry constructs a registry from configuration, registering
// candidates in their configured fallback order. Backends that fail to
// initialize (typically missing API keys) are skipped so a partially
// configured environment still works with the remaining candidates.
func BuildRegistry(cfg backend.Config) (*backend.DefaultRegistry, []error) {
	registry := backend.NewRegistry()
	var initErrs []error

	for _, name := range cfg.Candidates {
		bcfg, exists := cfg.Backends[name]
		if !exists {
			initErrs = append(initErrs, types.NewError(
				backend.ErrBackendInitFailed,
				fmt.Sprintf("candidate %q has no configuration", name),
			))
			continue
		}

		b, err := NewBackend(name, bcfg)
		if err != nil {
			initErrs = append(initErrs, err)
			continue
		}

		if err := registry.Register(b); err != nil {
			initErrs = append(initErrs, err)
		}
	}

	return registry, initErrs
}
