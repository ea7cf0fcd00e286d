package writer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inkwell-ai/inkwell/internal/backend"
	"github.com/inkwell-ai/inkwell/internal/document"
)

// ReviewNotes is the structured output of a section review.
type ReviewNotes struct {
	Strengths []string `yaml:"strengths,omitempty" json:"strengths,omitempty"`
	Issues    []string `yaml:"issues,omitempty" json:"issues,omitempty"`
	Score     int      `yaml:"score,omitempty" json:"score,omitempty"`
}

// String renders the notes for storage on the section.
func (n ReviewNotes) String() string {
	var sb strings.Builder
	if n.Score > 0 {
		fmt.Fprintf(&sb, "Score: %d/10\n", n.Score)
	}
	if len(n.Strengths) > 0 {
		sb.WriteString("Strengths:\n")
		for _, s := range n.Strengths {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}
	if len(n.Issues) > 0 {
		sb.WriteString("Issues:\n")
		for _, s := range n.Issues {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}
	return strings.TrimSpace(sb.String())
}

// Reviewer produces non-blocking quality notes on finished sections.
// Review is strictly best-effort: callers swallow errors and leave notes
// empty rather than blocking completion.
type Reviewer struct {
	registry backend.Registry
	logger   *slog.Logger
}

// NewReviewer creates a Reviewer backed by the given registry.
func NewReviewer(registry backend.Registry, logger *slog.Logger) *Reviewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reviewer{
		registry: registry,
		logger:   logger,
	}
}

// Review asks a backend for quality notes on a completed section.
// The first candidate that answers wins; structured output is preferred but
// a plain-text response is stored as-is.
func (r *Reviewer) Review(ctx context.Context, section *document.Section) (string, error) {
	req := backend.GenerateRequest{
		System: reviewSystemPrompt,
		Prompt: fmt.Sprintf("Section title: %s\n\nSection content:\n%s", section.Title, section.Content),
		// Low temperature keeps review output close to the rubric.
		Temperature: 0.2,
		MaxTokens:   512,
	}

	var lastErr error
	for _, name := range r.registry.Candidates() {
		b, err := r.registry.Get(name)
		if err != nil {
			lastErr = err
			continue
		}

		resp, err := b.Generate(ctx, req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.IsEmpty() {
			lastErr = backend.NewEmptyResponseError(name)
			continue
		}

		return parseReview(resp.Text), nil
	}

	if lastErr == nil {
		lastErr = backend.NewUnavailableError("reviewer", fmt.Errorf("no backends registered"))
	}
	return "", lastErr
}

// parseReview decodes structured review output, falling back to the raw
// text when the response isn't valid YAML.
func parseReview(text string) string {
	var notes ReviewNotes
	if err := yaml.Unmarshal([]byte(strings.TrimSpace(text)), &notes); err == nil {
		if rendered := notes.String(); rendered != "" {
			return rendered
		}
	}
	return strings.TrimSpace(text)
}

const reviewSystemPrompt = `You are an editorial reviewer. Assess the section for clarity, ` +
	`coherence, and completeness. Respond with a YAML mapping containing "strengths" ` +
	`(list), "issues" (list), and "score" (1-10). Do not rewrite the section.`
