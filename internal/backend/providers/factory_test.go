package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-ai/inkwell/internal/backend"
)

// TestNewBackend_Mock tests mock construction through the factory
func TestNewBackend_Mock(t *testing.T) {
	b, err := NewBackend("test-mock", backend.BackendConfig{Type: backend.BackendMock})
	require.NoError(t, err)
	assert.Equal(t, "test-mock", b.Name())

	resp, err := b.Generate(context.Background(), backend.GenerateRequest{Prompt: "hello"})
	require.NoError(t, err)
	assert.False(t, resp.IsEmpty())
}

// TestNewBackend_UnknownType tests factory rejection of unknown types
func TestNewBackend_UnknownType(t *testing.T) {
	_, err := NewBackend("x", backend.BackendConfig{Type: "quantum"})
	assert.Error(t, err)
}

// TestBuildRegistry tests registry construction with partial failures
func TestBuildRegistry(t *testing.T) {
	cfg := backend.Config{
		Candidates: []string{"good", "ghost"},
		Backends: map[string]backend.BackendConfig{
			"good": {Type: backend.BackendMock},
		},
	}

	registry, initErrs := BuildRegistry(cfg)

	assert.Len(t, initErrs, 1)
	assert.Equal(t, []string{"good"}, registry.Candidates())

	b, err := registry.Get("good")
	require.NoError(t, err)
	assert.Equal(t, "good", b.Name())
}

// TestMockBackend_Cycling tests response cycling and call recording
func TestMockBackend_Cycling(t *testing.T) {
	mock := NewMockBackend("m", []string{"one", "two"})
	ctx := context.Background()

	r1, err := mock.Generate(ctx, backend.GenerateRequest{Prompt: "p1"})
	require.NoError(t, err)
	r2, err := mock.Generate(ctx, backend.GenerateRequest{Prompt: "p2"})
	require.NoError(t, err)
	r3, err := mock.Generate(ctx, backend.GenerateRequest{Prompt: "p3"})
	require.NoError(t, err)

	assert.Equal(t, "one", r1.Text)
	assert.Equal(t, "two", r2.Text)
	assert.Equal(t, "one", r3.Text)
	assert.Len(t, mock.GetCalls(), 3)

	mock.Reset()
	assert.Empty(t, mock.GetCalls())
}
