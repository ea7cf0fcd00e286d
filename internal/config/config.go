// Package config loads, validates, and defaults the Inkwell configuration.
package config

import (
	"time"

	"github.com/inkwell-ai/inkwell/internal/backend"
)

// Config is the root configuration for the Inkwell engine.
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage" validate:"required"`
	Backends backend.Config `mapstructure:"backends" yaml:"backends" validate:"required"`
	Engine   EngineConfig   `mapstructure:"engine" yaml:"engine"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// StorageConfig contains project store configuration.
type StorageConfig struct {
	// Path is the SQLite database file path. The special value ":memory:"
	// selects the in-memory store.
	Path string `mapstructure:"path" yaml:"path"`
}

// EngineConfig contains orchestration tuning.
type EngineConfig struct {
	// SectionDelay is the pacing delay between consecutive section
	// generations.
	SectionDelay time.Duration `mapstructure:"section_delay" yaml:"section_delay" validate:"min=0"`

	// ReviewEnabled turns on the best-effort review pass by default for
	// new projects.
	ReviewEnabled bool `mapstructure:"review_enabled" yaml:"review_enabled"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}
