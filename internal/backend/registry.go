package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/inkwell-ai/inkwell/internal/types"
)

// Registry manages backend registration, candidate ordering, and health
// monitoring. Registration order defines the candidate order used for
// per-section fallback, so the first registered backend is tried first
// when a section has no explicit assignment.
type Registry interface {
	// Register adds a backend to the registry and appends it to the
	// candidate list.
	Register(b Backend) error

	// Unregister removes a backend from the registry by name.
	Unregister(name string) error

	// Get retrieves a backend by name.
	Get(name string) (Backend, error)

	// Candidates returns backend names in candidate order.
	Candidates() []string

	// Health returns the overall health status of the registry.
	// Health states:
	// - Healthy: all backends are healthy
	// - Degraded: some backends are unhealthy
	// - Unhealthy: all backends are unhealthy or none registered
	Health(ctx context.Context) types.HealthStatus
}

// DefaultRegistry implements Registry with thread-safe operations.
type DefaultRegistry struct {
	mu       sync.RWMutex
	backends map[string]Backend
	order    []string
}

// NewRegistry creates a new empty DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		backends: make(map[string]Backend),
	}
}

// Register adds a backend to the registry.
// Returns ErrBackendAlreadyExists if a backend with the same name is present.
// Returns ErrBackendInvalidInput if the backend is nil or has an empty name.
func (r *DefaultRegistry) Register(b Backend) error {
	if b == nil {
		return types.NewError(ErrBackendInvalidInput, "backend cannot be nil")
	}

	name := b.Name()
	if name == "" {
		return types.NewError(ErrBackendInvalidInput, "backend name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[name]; exists {
		return types.NewError(ErrBackendAlreadyExists, fmt.Sprintf("backend %q already registered", name))
	}

	r.backends[name] = b
	r.order = append(r.order, name)

	return nil
}

// Unregister removes a backend from the registry by name.
// Returns ErrBackendNotFound if the backend doesn't exist.
func (r *DefaultRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[name]; !exists {
		return types.NewError(ErrBackendNotFound, fmt.Sprintf("backend %q not found", name))
	}

	delete(r.backends, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return nil
}

// Get retrieves a backend by name.
// Returns ErrBackendNotFound if the backend doesn't exist.
func (r *DefaultRegistry) Get(name string) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.backends[name]
	if !exists {
		return nil, types.NewError(ErrBackendNotFound, fmt.Sprintf("backend %q not found", name))
	}

	return b, nil
}

// Candidates returns backend names in candidate order.
// The returned slice is a copy and safe to retain.
func (r *DefaultRegistry) Candidates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Health returns the overall health status of the registry.
func (r *DefaultRegistry) Health(ctx context.Context) types.HealthStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.backends) == 0 {
		return types.Unhealthy("no backends registered")
	}

	healthyCount := 0
	total := len(r.backends)
	for _, b := range r.backends {
		if b.Health(ctx).IsHealthy() {
			healthyCount++
		}
	}

	switch {
	case healthyCount == total:
		return types.Healthy(fmt.Sprintf("all %d backends healthy", total))
	case healthyCount == 0:
		return types.Unhealthy(fmt.Sprintf("all %d backends unhealthy", total))
	default:
		return types.Degraded(fmt.Sprintf("%d/%d backends healthy", healthyCount, total))
	}
}

// Ensure DefaultRegistry implements Registry at compile time
var _ Registry = (*DefaultRegistry)(nil)
