package document

import "fmt"

// Format identifies the document format category.
// It keys both the fallback outline selection and the export renderer.
type Format string

const (
	FormatArticle  Format = "article"
	FormatReport   Format = "report"
	FormatEssay    Format = "essay"
	FormatTutorial Format = "tutorial"
	FormatGeneric  Format = "generic"
)

// IsValid checks if the format is a known value.
func (f Format) IsValid() bool {
	switch f {
	case FormatArticle, FormatReport, FormatEssay, FormatTutorial, FormatGeneric:
		return true
	default:
		return false
	}
}

// Settings holds the generation settings for a project.
type Settings struct {
	// TargetWordCount is the desired total length of the document.
	TargetWordCount int `json:"target_word_count"`

	// Style is a free-form writing style hint (e.g. "academic", "casual").
	Style string `json:"style,omitempty"`

	// Tone is a free-form tone hint (e.g. "neutral", "persuasive").
	Tone string `json:"tone,omitempty"`

	// Format is the document format category.
	Format Format `json:"format"`

	// IncludeReferences asks the writer to include reference suggestions.
	IncludeReferences bool `json:"include_references,omitempty"`

	// ReviewEnabled runs the best-effort review pass after writing.
	ReviewEnabled bool `json:"review_enabled,omitempty"`

	// RestrictBackend pins every section to its assigned backend,
	// disabling candidate fallback (template fallback still applies).
	RestrictBackend bool `json:"restrict_backend,omitempty"`
}

// DefaultSettings returns settings for a medium-length generic document.
func DefaultSettings() Settings {
	return Settings{
		TargetWordCount: 3000,
		Format:          FormatGeneric,
	}
}

// Validate checks the settings for obvious misconfiguration.
func (s Settings) Validate() error {
	if s.TargetWordCount <= 0 {
		return fmt.Errorf("target word count must be positive, got %d", s.TargetWordCount)
	}
	if s.Format != "" && !s.Format.IsValid() {
		return fmt.Errorf("unknown format: %s", s.Format)
	}
	return nil
}

// EffectiveFormat returns the configured format, defaulting to generic.
func (s Settings) EffectiveFormat() Format {
	if s.Format == "" || !s.Format.IsValid() {
		return FormatGeneric
	}
	return s.Format
}
