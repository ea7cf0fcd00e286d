package planner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-ai/inkwell/internal/backend"
	"github.com/inkwell-ai/inkwell/internal/backend/providers"
	"github.com/inkwell-ai/inkwell/internal/document"
	"github.com/inkwell-ai/inkwell/internal/planner"
)

// TestSectionCount tests the words-to-sections derivation and clamping
func TestSectionCount(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"tiny document clamps to minimum", 500, 3},
		{"three thousand words", 3000, 3},
		{"five thousand words", 5000, 5},
		{"rounding up", 5600, 6},
		{"rounding down", 5400, 5},
		{"huge document clamps to maximum", 50000, 10},
		{"zero clamps to minimum", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, planner.SectionCount(tt.words))
		})
	}
}

// TestPlanner_Plan_UsesBackendOutline tests the happy path through a backend
func TestPlanner_Plan_UsesBackendOutline(t *testing.T) {
	registry := backend.NewRegistry()
	mock := providers.NewMockBackend("mock", []string{
		"- title: Opening\n  summary: Start here\n- title: Middle\n- title: Closing\n",
	})
	require.NoError(t, registry.Register(mock))

	p := planner.New(registry, nil)
	settings := document.Settings{TargetWordCount: 3000, Format: document.FormatArticle}

	outline := p.Plan(context.Background(), "test topic", settings)

	require.Len(t, outline.Items, 3)
	assert.False(t, outline.FromFallback)
	assert.Equal(t, "Opening", outline.Items[0].Title)
	assert.Equal(t, "Start here", outline.Items[0].Summary)
	assert.Equal(t, 1000, outline.SectionBudget)

	calls := mock.GetCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Request.Prompt, "test topic")
}

// TestPlanner_Plan_FallsThroughFailedCandidates tests candidate iteration
func TestPlanner_Plan_FallsThroughFailedCandidates(t *testing.T) {
	registry := backend.NewRegistry()

	broken := providers.NewMockBackend("broken", []string{"unused"})
	broken.FailWith(errors.New("connection refused"))
	working := providers.NewMockBackend("working", []string{"- title: Only Section\n- title: Another\n- title: Third\n"})

	require.NoError(t, registry.Register(broken))
	require.NoError(t, registry.Register(working))

	p := planner.New(registry, nil)
	outline := p.Plan(context.Background(), "topic", document.Settings{TargetWordCount: 3000})

	require.Len(t, outline.Items, 3)
	assert.False(t, outline.FromFallback)
	assert.Equal(t, "Only Section", outline.Items[0].Title)
}

// TestPlanner_Plan_FallbackWhenAllFail tests the deterministic fallback path
func TestPlanner_Plan_FallbackWhenAllFail(t *testing.T) {
	registry := backend.NewRegistry()
	mock := providers.NewMockBackend("mock", []string{"unused"})
	mock.FailWith(errors.New("rate limit exceeded"))
	require.NoError(t, registry.Register(mock))

	p := planner.New(registry, nil)
	settings := document.Settings{TargetWordCount: 4000, Format: document.FormatTutorial}

	outline := p.Plan(context.Background(), "Go generics", settings)

	assert.True(t, outline.FromFallback)
	assert.Len(t, outline.Items, 4)
	assert.Equal(t, "Overview of Go generics", outline.Items[0].Title)
}

// TestPlanner_Plan_FallbackWhenNoBackends tests planning with an empty
// registry
func TestPlanner_Plan_FallbackWhenNoBackends(t *testing.T) {
	p := planner.New(backend.NewRegistry(), nil)

	outline := p.Plan(context.Background(), "topic", document.Settings{TargetWordCount: 3000})

	assert.True(t, outline.FromFallback)
	assert.NotEmpty(t, outline.Items)
}

// TestPlanner_Plan_FallbackOnUnparseableResponse tests that garbage output
// does not produce a degenerate outline
func TestPlanner_Plan_FallbackOnUnparseableResponse(t *testing.T) {
	registry := backend.NewRegistry()
	// Whitespace only: empty response, skipped.
	mock := providers.NewMockBackend("mock", []string{"   \n  "})
	require.NoError(t, registry.Register(mock))

	p := planner.New(registry, nil)
	outline := p.Plan(context.Background(), "topic", document.Settings{TargetWordCount: 3000})

	assert.True(t, outline.FromFallback)
	assert.NotEmpty(t, outline.Items)
}
