package writer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-ai/inkwell/internal/backend"
	"github.com/inkwell-ai/inkwell/internal/backend/providers"
	"github.com/inkwell-ai/inkwell/internal/document"
	"github.com/inkwell-ai/inkwell/internal/types"
)

// TestParseReview_Structured tests YAML review parsing
func TestParseReview_Structured(t *testing.T) {
	text := `
strengths:
  - clear framing
  - good examples
issues:
  - weak conclusion
score: 7
`
	notes := parseReview(text)

	assert.Contains(t, notes, "Score: 7/10")
	assert.Contains(t, notes, "clear framing")
	assert.Contains(t, notes, "weak conclusion")
}

// TestParseReview_PlainText tests that unstructured output is kept as-is
func TestParseReview_PlainText(t *testing.T) {
	text := "  The section reads well but the middle drags.  "
	assert.Equal(t, "The section reads well but the middle drags.", parseReview(text))
}

// TestReviewNotes_String tests note rendering
func TestReviewNotes_String(t *testing.T) {
	notes := ReviewNotes{
		Strengths: []string{"one"},
		Issues:    []string{"two"},
		Score:     9,
	}

	rendered := notes.String()
	assert.Contains(t, rendered, "Score: 9/10")
	assert.Contains(t, rendered, "- one")
	assert.Contains(t, rendered, "- two")

	assert.Empty(t, ReviewNotes{}.String())
}

// TestReviewer_Review tests the review call through a mock backend
func TestReviewer_Review(t *testing.T) {
	registry := backend.NewRegistry()
	mock := providers.NewMockBackend("mock", []string{"score: 8\nstrengths:\n  - tight prose\n"})
	require.NoError(t, registry.Register(mock))

	r := NewReviewer(registry, nil)
	section := &document.Section{
		ID:      types.NewID(),
		Title:   "Reviewed Section",
		Content: "Some finished prose.",
		Status:  document.SectionStatusCompleted,
	}

	notes, err := r.Review(context.Background(), section)
	require.NoError(t, err)
	assert.Contains(t, notes, "Score: 8/10")
	assert.Contains(t, notes, "tight prose")

	calls := mock.GetCalls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Request.Prompt, "Reviewed Section")
}

// TestReviewer_Review_AllBackendsFail tests the error path
func TestReviewer_Review_AllBackendsFail(t *testing.T) {
	registry := backend.NewRegistry()
	mock := providers.NewMockBackend("mock", []string{"unused"})
	mock.FailWith(errors.New("down"))
	require.NoError(t, registry.Register(mock))

	r := NewReviewer(registry, nil)
	_, err := r.Review(context.Background(), &document.Section{Content: "prose"})

	assert.Error(t, err)
}

// TestReviewer_Review_NoBackends tests review with an empty registry
func TestReviewer_Review_NoBackends(t *testing.T) {
	r := NewReviewer(backend.NewRegistry(), nil)

	_, err := r.Review(context.Background(), &document.Section{Content: "prose"})
	assert.Error(t, err)
}
