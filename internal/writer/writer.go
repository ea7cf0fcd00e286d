// Package writer generates section prose. A section is written by its
// assigned backend when possible, by the remaining candidate backends in
// order when not, and by deterministic template prose when every backend
// is exhausted — section generation never fails outright.
package writer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/backend"
	"github.com/inkwell-ai/inkwell/internal/document"
)

// Result is the outcome of writing one section.
type Result struct {
	// Content is the generated section prose. Never empty.
	Content string

	// BackendID names the backend that actually produced the content.
	// For template fallback it is the section's assigned backend.
	BackendID string

	// FallbackUsed marks content synthesized from templates.
	FallbackUsed bool
}

// Writer generates content for one section at a time.
type Writer struct {
	registry backend.Registry
	logger   *slog.Logger
}

// New creates a Writer backed by the given registry.
func New(registry backend.Registry, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		registry: registry,
		logger:   logger,
	}
}

// WriteSection generates content for the section given the running context
// of prior-section digests. The assigned backend is tried first; on any
// failure (network, auth, timeout, empty response) the remaining candidates
// are tried in order. When every candidate is exhausted the section gets
// deterministic template prose instead. The returned content is never empty.
func (w *Writer) WriteSection(ctx context.Context, project *document.Project, section *document.Section, runningContext string) Result {
	req := backend.GenerateRequest{
		System:      sectionSystemPrompt(project.Settings),
		Prompt:      sectionUserPrompt(project, section, runningContext),
		Temperature: 0.8,
		MaxTokens:   maxTokensFor(section.WordBudget),
	}

	for _, name := range w.candidatesFor(section, project.Settings) {
		b, err := w.registry.Get(name)
		if err != nil {
			continue
		}

		resp, err := b.Generate(ctx, req)
		if err != nil {
			w.logger.Warn("section generation failed, trying next candidate",
				"section", section.Title, "backend", name, "error", err)
			continue
		}
		if resp.IsEmpty() {
			w.logger.Warn("section generation returned empty response, trying next candidate",
				"section", section.Title, "backend", name)
			continue
		}

		return Result{
			Content:   strings.TrimSpace(resp.Text),
			BackendID: name,
		}
	}

	// Every candidate exhausted: synthesize deterministic fallback prose.
	w.logger.Warn("all backends exhausted, using template fallback",
		"section", section.Title)
	return Result{
		Content:      FallbackContent(section, project.Prompt),
		BackendID:    section.BackendID,
		FallbackUsed: true,
	}
}

// candidatesFor returns the backends to try for a section: the assigned
// backend first, then the remaining candidates in registry order. With
// backend restriction enabled only the assigned backend is tried.
func (w *Writer) candidatesFor(section *document.Section, settings document.Settings) []string {
	assigned := section.BackendID
	if settings.RestrictBackend && assigned != "" {
		return []string{assigned}
	}

	all := w.registry.Candidates()
	out := make([]string, 0, len(all)+1)
	if assigned != "" {
		out = append(out, assigned)
	}
	for _, name := range all {
		if name != assigned {
			out = append(out, name)
		}
	}
	return out
}

// maxTokensFor sizes the response cap from the word budget. Rough
// conversion of 1.5 tokens per word, with headroom.
func maxTokensFor(wordBudget int) int {
	if wordBudget <= 0 {
		return 2048
	}
	return wordBudget*3/2 + 256
}

func sectionSystemPrompt(settings document.Settings) string {
	var sb strings.Builder
	sb.WriteString("You are a professional long-form writer producing one section of a larger document. ")
	sb.WriteString("Write flowing prose without repeating the section heading. ")
	if settings.Style != "" {
		fmt.Fprintf(&sb, "Writing style: %s. ", settings.Style)
	}
	if settings.Tone != "" {
		fmt.Fprintf(&sb, "Tone: %s. ", settings.Tone)
	}
	if settings.IncludeReferences {
		sb.WriteString("Where appropriate, suggest references in parentheses. ")
	}
	return strings.TrimSpace(sb.String())
}

func sectionUserPrompt(project *document.Project, section *document.Section, runningContext string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Document topic: %s\n", project.Prompt)
	fmt.Fprintf(&sb, "Section to write: %s\n", section.Title)
	if section.Summary != "" {
		fmt.Fprintf(&sb, "Section focus: %s\n", section.Summary)
	}
	fmt.Fprintf(&sb, "Target length: about %d words.\n", section.WordBudget)
	if runningContext != "" {
		fmt.Fprintf(&sb, "\nSummary of the document so far:\n%s\n", runningContext)
		sb.WriteString("\nContinue naturally from the content above without repeating it.")
	}
	return sb.String()
}
