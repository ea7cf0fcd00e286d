package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/inkwell-ai/inkwell/internal/backend/providers"
	"github.com/inkwell-ai/inkwell/internal/engine"
	"github.com/inkwell-ai/inkwell/internal/store"
)

// buildEngine wires the store, backend registry, and engine from the loaded
// configuration. The returned cleanup function closes the store.
func buildEngine() (*engine.Engine, func(), error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	registry, initErrs := providers.BuildRegistry(cfg.Backends)
	for _, initErr := range initErrs {
		slog.Warn("backend unavailable", "error", initErr)
	}

	eng := engine.New(st, registry,
		engine.WithSectionDelay(cfg.Engine.SectionDelay),
		engine.WithLogger(slog.Default()),
	)

	cleanup := func() {
		if err := st.Close(); err != nil {
			slog.Warn("failed to close store", "error", err)
		}
	}
	return eng, cleanup, nil
}

// openStore opens the configured project store. ":memory:" selects the
// in-memory store; anything else is a SQLite database path.
func openStore() (store.ProjectStore, error) {
	if cfg.Storage.Path == ":memory:" {
		return store.NewMemoryStore(), nil
	}

	if dir := filepath.Dir(cfg.Storage.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return store.OpenSQLite(cfg.Storage.Path)
}
