package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/inkwell-ai/inkwell/internal/backend"
	"github.com/inkwell-ai/inkwell/internal/types"
)

// MockCall represents a recorded call to the mock backend
type MockCall struct {
	Request backend.GenerateRequest
}

// MockBackend implements Backend for testing
type MockBackend struct {
	mu            sync.RWMutex
	name          string
	responses     []string
	responseIndex int
	calls         []MockCall
	failWith      error
}

// NewMockBackend creates a new mock backend that cycles through responses
func NewMockBackend(name string, responses []string) *MockBackend {
	return &MockBackend{
		name:      name,
		responses: responses,
		calls:     make([]MockCall, 0),
	}
}

// Name returns the backend name
func (b *MockBackend) Name() string {
	return b.name
}

// Generate records the call and returns the next configured response
func (b *MockBackend) Generate(ctx context.Context, req backend.GenerateRequest) (*backend.GenerateResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = append(b.calls, MockCall{Request: req})

	if b.failWith != nil {
		return nil, b.failWith
	}

	if len(b.responses) == 0 {
		return nil, backend.NewUnavailableError(b.name, fmt.Errorf("no responses configured"))
	}

	response := b.responses[b.responseIndex%len(b.responses)]
	b.responseIndex++

	return &backend.GenerateResponse{
		ID:         uuid.New().String(),
		Text:       response,
		Model:      "mock-model",
		Backend:    b.name,
		TokensUsed: len(response) / 4,
	}, nil
}

// Health checks the backend health
func (b *MockBackend) Health(ctx context.Context) types.HealthStatus {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.failWith != nil {
		return types.NewHealthStatus(types.HealthStateUnhealthy, b.failWith.Error())
	}
	return types.NewHealthStatus(types.HealthStateHealthy, "")
}

// FailWith makes every subsequent Generate call return err.
// Pass nil to restore normal operation.
func (b *MockBackend) FailWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failWith = err
}

// GetCalls returns all recorded calls (thread-safe)
func (b *MockBackend) GetCalls() []MockCall {
	b.mu.RLock()
	defer b.mu.RUnlock()

	calls := make([]MockCall, len(b.calls))
	copy(calls, b.calls)
	return calls
}

// Reset resets the mock backend state
func (b *MockBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls = make([]MockCall, 0)
	b.responseIndex = 0
	b.failWith = nil
}

// SetResponses replaces all responses
func (b *MockBackend) SetResponses(responses []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.responses = responses
	b.responseIndex = 0
}
