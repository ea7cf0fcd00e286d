// Package planner turns a prompt and settings into an ordered document
// outline. Planning prefers a live backend; every failure mode collapses
// into a deterministic format-keyed fallback outline, so planning always
// yields at least one section.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/inkwell-ai/inkwell/internal/backend"
	"github.com/inkwell-ai/inkwell/internal/document"
)

// Bounds on the planned section count.
const (
	MinSections = 3
	MaxSections = 10

	// wordsPerSection is the nominal section size used to derive the
	// section count from the target word count.
	wordsPerSection = 1000
)

// OutlineItem is one planned section: a title plus a one-line summary.
type OutlineItem struct {
	Title   string `yaml:"title" json:"title"`
	Summary string `yaml:"summary,omitempty" json:"summary,omitempty"`
}

// Outline is the transient ordered list of planned sections. It is consumed
// once to create sections and not retained afterward.
type Outline struct {
	// Items are the planned sections in document order.
	Items []OutlineItem

	// SectionBudget is the per-section word budget.
	SectionBudget int

	// FromFallback marks an outline produced by the canned fallback
	// rather than a backend.
	FromFallback bool
}

// Planner plans document outlines.
type Planner struct {
	registry backend.Registry
	logger   *slog.Logger
}

// New creates a Planner backed by the given registry.
func New(registry backend.Registry, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		registry: registry,
		logger:   logger,
	}
}

// SectionCount derives the number of sections from the target word count:
// one section per ~1000 words, clamped to [MinSections, MaxSections].
func SectionCount(targetWords int) int {
	n := int(math.Round(float64(targetWords) / wordsPerSection))
	if n < MinSections {
		return MinSections
	}
	if n > MaxSections {
		return MaxSections
	}
	return n
}

// Plan produces an outline for the prompt and settings. It tries each
// candidate backend in order; backend failure, an unparseable response, or
// a zero-title result all fall through to the deterministic fallback
// outline. Plan never returns an empty outline.
func (p *Planner) Plan(ctx context.Context, prompt string, settings document.Settings) Outline {
	n := SectionCount(settings.TargetWordCount)
	budget := settings.TargetWordCount / n

	for _, name := range p.registry.Candidates() {
		b, err := p.registry.Get(name)
		if err != nil {
			continue
		}

		resp, err := b.Generate(ctx, backend.GenerateRequest{
			System:      planningSystemPrompt,
			Prompt:      planningUserPrompt(prompt, settings, n),
			Temperature: 0.7,
			MaxTokens:   1024,
		})
		if err != nil {
			p.logger.Warn("outline planning backend failed",
				"backend", name, "error", err)
			continue
		}
		if resp.IsEmpty() {
			p.logger.Warn("outline planning backend returned empty response",
				"backend", name)
			continue
		}

		items := ParseOutline(resp.Text)
		if len(items) == 0 {
			p.logger.Warn("outline planning response unparseable",
				"backend", name)
			continue
		}

		p.logger.Info("outline planned",
			"backend", name, "sections", len(items))
		return Outline{Items: items, SectionBudget: budget}
	}

	// No backend produced a usable outline.
	p.logger.Info("outline planning fell back to canned outline",
		"format", settings.EffectiveFormat())
	return Outline{
		Items:         FallbackOutline(prompt, settings.EffectiveFormat(), n),
		SectionBudget: budget,
		FromFallback:  true,
	}
}

const planningSystemPrompt = `You are a document outline planner. ` +
	`Respond with a YAML list where each item has a "title" and a "summary" field. ` +
	`Do not include any prose outside the list.`

func planningUserPrompt(prompt string, settings document.Settings, n int) string {
	out := fmt.Sprintf(
		"Plan an outline of exactly %d sections for a %s about: %s\n",
		n, settings.EffectiveFormat(), prompt,
	)
	if settings.Style != "" {
		out += fmt.Sprintf("Writing style: %s\n", settings.Style)
	}
	if settings.Tone != "" {
		out += fmt.Sprintf("Tone: %s\n", settings.Tone)
	}
	out += fmt.Sprintf("Target length: %d words total.", settings.TargetWordCount)
	return out
}
