package document

import (
	"strings"
	"time"

	"github.com/inkwell-ai/inkwell/internal/types"
)

// SectionStatus represents the execution status of a document section.
type SectionStatus string

const (
	SectionStatusPending   SectionStatus = "pending"
	SectionStatusWriting   SectionStatus = "writing"
	SectionStatusCompleted SectionStatus = "completed"
	SectionStatusReviewing SectionStatus = "reviewing"
	SectionStatusError     SectionStatus = "error"
)

// String returns the string representation of the section status.
func (s SectionStatus) String() string {
	return string(s)
}

// IsValid checks if the section status is a valid value.
func (s SectionStatus) IsValid() bool {
	switch s {
	case SectionStatusPending, SectionStatusWriting, SectionStatusCompleted,
		SectionStatusReviewing, SectionStatusError:
		return true
	default:
		return false
	}
}

// Regenerable reports whether the section may be cleared and rewritten.
// Only finished or failed sections can be regenerated.
func (s SectionStatus) Regenerable() bool {
	return s == SectionStatusCompleted || s == SectionStatusError
}

// Section is one titled, independently generated, context-chained chunk of
// the final document. Order indices are unique and contiguous per project.
type Section struct {
	// ID is the unique identifier for this section.
	ID types.ID `json:"id"`

	// ProjectID references the owning project.
	ProjectID types.ID `json:"project_id"`

	// Title is the section heading from the outline.
	Title string `json:"title"`

	// Summary is the one-line outline summary for this section.
	Summary string `json:"summary,omitempty"`

	// OrderIndex is the fixed position of this section in the document.
	OrderIndex int `json:"order_index"`

	// BackendID is the backend assigned to (or that actually produced)
	// this section's content.
	BackendID string `json:"backend_id"`

	// WordBudget is the target word count for this section.
	WordBudget int `json:"word_budget"`

	// Status is the current execution status of the section.
	Status SectionStatus `json:"status"`

	// Content is the generated section prose.
	Content string `json:"content,omitempty"`

	// WordCount is the word count of Content.
	WordCount int `json:"word_count"`

	// ContextDigest is the bounded summary of this section fed forward
	// into the next section's generation.
	ContextDigest string `json:"context_digest,omitempty"`

	// ReviewNotes holds optional non-blocking reviewer output.
	ReviewNotes string `json:"review_notes,omitempty"`

	// FallbackUsed marks content synthesized from templates after every
	// candidate backend failed.
	FallbackUsed bool `json:"fallback_used,omitempty"`

	// CreatedAt is the timestamp when the section was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last update to this section.
	UpdatedAt time.Time `json:"updated_at"`
}

// SetContent stores generated content and recomputes the word count.
func (s *Section) SetContent(content string) {
	s.Content = content
	s.WordCount = CountWords(content)
	s.UpdatedAt = time.Now()
}

// ClearContent resets the section for regeneration.
func (s *Section) ClearContent() {
	s.Content = ""
	s.WordCount = 0
	s.ContextDigest = ""
	s.ReviewNotes = ""
	s.FallbackUsed = false
	s.Status = SectionStatusPending
	s.UpdatedAt = time.Now()
}

// CanComplete reports whether the section may transition to completed.
// A section may be completed only with non-empty content.
func (s *Section) CanComplete() bool {
	return strings.TrimSpace(s.Content) != ""
}

// CountWords counts whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// SortSections orders sections by ascending order index, in place.
// Uses insertion sort; section counts are small by construction.
func SortSections(sections []*Section) {
	for i := 1; i < len(sections); i++ {
		for j := i; j > 0 && sections[j-1].OrderIndex > sections[j].OrderIndex; j-- {
			sections[j-1], sections[j] = sections[j], sections[j-1]
		}
	}
}
