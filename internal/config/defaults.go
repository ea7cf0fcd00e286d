package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/inkwell-ai/inkwell/internal/backend"
)

// DefaultConfig returns a Config with sensible default values.
// The default backend roster covers the common hosted providers plus a
// local Ollama endpoint; candidates without credentials are skipped at
// registry build time.
func DefaultConfig() *Config {
	homeDir := getDefaultHomeDir()

	return &Config{
		Storage: StorageConfig{
			Path: filepath.Join(homeDir, "inkwell.db"),
		},
		Backends: backend.Config{
			Candidates: []string{"anthropic", "openai", "ollama"},
			Backends: map[string]backend.BackendConfig{
				"anthropic": {
					Type:         backend.BackendAnthropic,
					DefaultModel: "claude-sonnet-4-20250514",
				},
				"openai": {
					Type:         backend.BackendOpenAI,
					DefaultModel: "gpt-4o",
				},
				"ollama": {
					Type:         backend.BackendOllama,
					DefaultModel: "llama3",
				},
			},
		},
		Engine: EngineConfig{
			SectionDelay:  2 * time.Second,
			ReviewEnabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultConfigPath returns the default config file path under the Inkwell
// home directory.
func DefaultConfigPath() string {
	return filepath.Join(getDefaultHomeDir(), "config.yaml")
}

// getDefaultHomeDir returns the default Inkwell home directory.
// It uses ~/.inkwell or falls back to a temporary directory if user home
// cannot be determined.
func getDefaultHomeDir() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".inkwell")
	}
	return filepath.Join(userHome, ".inkwell")
}
