package writer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-ai/inkwell/internal/backend"
	"github.com/inkwell-ai/inkwell/internal/backend/providers"
	"github.com/inkwell-ai/inkwell/internal/document"
	"github.com/inkwell-ai/inkwell/internal/types"
	"github.com/inkwell-ai/inkwell/internal/writer"
)

func testProject() *document.Project {
	return document.NewProject("Test Doc", "the test topic", document.DefaultSettings())
}

func testSection(assigned string) *document.Section {
	return &document.Section{
		ID:         types.NewID(),
		Title:      "Test Section",
		Summary:    "covers testing",
		OrderIndex: 0,
		BackendID:  assigned,
		WordBudget: 500,
		Status:     document.SectionStatusPending,
	}
}

// TestWriter_WriteSection_AssignedBackendFirst tests that the assigned
// backend is tried before the rest of the candidate order
func TestWriter_WriteSection_AssignedBackendFirst(t *testing.T) {
	registry := backend.NewRegistry()
	first := providers.NewMockBackend("first", []string{"first content"})
	second := providers.NewMockBackend("second", []string{"second content"})
	require.NoError(t, registry.Register(first))
	require.NoError(t, registry.Register(second))

	w := writer.New(registry, nil)
	result := w.WriteSection(context.Background(), testProject(), testSection("second"), "")

	assert.Equal(t, "second content", result.Content)
	assert.Equal(t, "second", result.BackendID)
	assert.False(t, result.FallbackUsed)
	assert.Empty(t, first.GetCalls())
}

// TestWriter_WriteSection_FallsBackToNextCandidate tests candidate fallback
// on backend failure
func TestWriter_WriteSection_FallsBackToNextCandidate(t *testing.T) {
	registry := backend.NewRegistry()
	broken := providers.NewMockBackend("broken", []string{"unused"})
	broken.FailWith(errors.New("429 too many requests"))
	working := providers.NewMockBackend("working", []string{"rescue content"})
	require.NoError(t, registry.Register(broken))
	require.NoError(t, registry.Register(working))

	w := writer.New(registry, nil)
	result := w.WriteSection(context.Background(), testProject(), testSection("broken"), "")

	assert.Equal(t, "rescue content", result.Content)
	assert.Equal(t, "working", result.BackendID)
	assert.False(t, result.FallbackUsed)
	assert.Len(t, broken.GetCalls(), 1)
}

// TestWriter_WriteSection_EmptyResponseTriggersFallback tests that an empty
// response is treated like a failure
func TestWriter_WriteSection_EmptyResponseTriggersFallback(t *testing.T) {
	registry := backend.NewRegistry()
	empty := providers.NewMockBackend("empty", []string{"   \n "})
	working := providers.NewMockBackend("working", []string{"real content"})
	require.NoError(t, registry.Register(empty))
	require.NoError(t, registry.Register(working))

	w := writer.New(registry, nil)
	result := w.WriteSection(context.Background(), testProject(), testSection("empty"), "")

	assert.Equal(t, "real content", result.Content)
	assert.Equal(t, "working", result.BackendID)
}

// TestWriter_WriteSection_TemplateFallbackWhenExhausted tests that section
// generation never fails outright
func TestWriter_WriteSection_TemplateFallbackWhenExhausted(t *testing.T) {
	registry := backend.NewRegistry()
	mock := providers.NewMockBackend("only", []string{"unused"})
	mock.FailWith(errors.New("connection refused"))
	require.NoError(t, registry.Register(mock))

	w := writer.New(registry, nil)
	section := testSection("only")
	result := w.WriteSection(context.Background(), testProject(), section, "")

	assert.True(t, result.FallbackUsed)
	assert.Equal(t, "only", result.BackendID)
	assert.NotEmpty(t, strings.TrimSpace(result.Content))
	assert.Contains(t, result.Content, section.Title)
}

// TestWriter_WriteSection_NoBackends tests template fallback with an empty
// registry
func TestWriter_WriteSection_NoBackends(t *testing.T) {
	w := writer.New(backend.NewRegistry(), nil)

	result := w.WriteSection(context.Background(), testProject(), testSection(""), "")

	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, strings.TrimSpace(result.Content))
}

// TestWriter_WriteSection_RestrictBackend tests that restriction disables
// candidate fallback but keeps template fallback
func TestWriter_WriteSection_RestrictBackend(t *testing.T) {
	registry := backend.NewRegistry()
	broken := providers.NewMockBackend("broken", []string{"unused"})
	broken.FailWith(errors.New("down"))
	working := providers.NewMockBackend("working", []string{"should not be used"})
	require.NoError(t, registry.Register(broken))
	require.NoError(t, registry.Register(working))

	project := testProject()
	project.Settings.RestrictBackend = true

	w := writer.New(registry, nil)
	result := w.WriteSection(context.Background(), project, testSection("broken"), "")

	assert.True(t, result.FallbackUsed)
	assert.Empty(t, working.GetCalls())
}

// TestWriter_WriteSection_RunningContextInPrompt tests that prior-section
// context reaches the backend
func TestWriter_WriteSection_RunningContextInPrompt(t *testing.T) {
	registry := backend.NewRegistry()
	mock := providers.NewMockBackend("mock", []string{"content"})
	require.NoError(t, registry.Register(mock))

	w := writer.New(registry, nil)
	w.WriteSection(context.Background(), testProject(), testSection("mock"), "earlier section digest")

	calls := mock.GetCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Request.Prompt, "earlier section digest")
	assert.Contains(t, calls[0].Request.Prompt, "the test topic")
}

// TestFallbackContent_Deterministic tests fallback prose determinism
func TestFallbackContent_Deterministic(t *testing.T) {
	section := testSection("")
	a := writer.FallbackContent(section, "topic")
	b := writer.FallbackContent(section, "topic")

	assert.Equal(t, a, b)
	assert.NotEmpty(t, strings.TrimSpace(a))
}
