package document

import (
	"math"
	"time"

	"github.com/inkwell-ai/inkwell/internal/types"
)

// ProjectStatus represents the lifecycle state of a document project.
type ProjectStatus string

const (
	// ProjectStatusPlanning indicates the outline is being planned.
	ProjectStatusPlanning ProjectStatus = "planning"

	// ProjectStatusWriting indicates sections are being generated.
	ProjectStatusWriting ProjectStatus = "writing"

	// ProjectStatusReviewing indicates the optional review pass is running.
	ProjectStatusReviewing ProjectStatus = "reviewing"

	// ProjectStatusCompleted indicates every section has been completed.
	ProjectStatusCompleted ProjectStatus = "completed"

	// ProjectStatusPaused indicates generation is temporarily suspended.
	ProjectStatusPaused ProjectStatus = "paused"

	// ProjectStatusError indicates planning could not produce a single section.
	ProjectStatusError ProjectStatus = "error"
)

// String returns the string representation of the project status.
func (s ProjectStatus) String() string {
	return string(s)
}

// IsTerminal returns true if the status represents a terminal state.
// Completed projects cannot transition; Error is reserved for the defensive
// planning-produced-nothing case and is also terminal.
func (s ProjectStatus) IsTerminal() bool {
	switch s {
	case ProjectStatusCompleted, ProjectStatusError:
		return true
	default:
		return false
	}
}

// CanTransitionTo validates whether a state transition is allowed.
func (s ProjectStatus) CanTransitionTo(target ProjectStatus) bool {
	if s.IsTerminal() {
		return false
	}

	switch s {
	case ProjectStatusPlanning:
		return target == ProjectStatusWriting || target == ProjectStatusError
	case ProjectStatusWriting:
		return target == ProjectStatusPaused ||
			target == ProjectStatusReviewing ||
			target == ProjectStatusCompleted
	case ProjectStatusReviewing:
		return target == ProjectStatusCompleted
	case ProjectStatusPaused:
		return target == ProjectStatusWriting
	default:
		return false
	}
}

// Project represents a long-form document generation project.
// A project owns an ordered set of sections and is mutated only through
// engine operations; callers treat it as read-only.
type Project struct {
	// ID is the unique identifier for this project.
	ID types.ID `json:"id"`

	// Title is the document title.
	Title string `json:"title"`

	// Prompt is the original user prompt the document is generated from.
	Prompt string `json:"prompt"`

	// Settings holds the generation settings for this project.
	Settings Settings `json:"settings"`

	// Status represents the current lifecycle state of the project.
	Status ProjectStatus `json:"status"`

	// SectionIDs lists section IDs in order-index order.
	SectionIDs []types.ID `json:"section_ids"`

	// WordCount is the aggregate word count over all sections.
	// Recomputed from section states after every transition, never patched.
	WordCount int `json:"word_count"`

	// Progress is the aggregate progress percentage (0-100).
	Progress int `json:"progress"`

	// Error contains the error message if the project entered the error state.
	Error string `json:"error,omitempty"`

	// CreatedAt is the timestamp when the project was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last update to this project.
	UpdatedAt time.Time `json:"updated_at"`

	// CompletedAt is the timestamp when the project finished.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewProject creates a project in the planning state.
func NewProject(title, prompt string, settings Settings) *Project {
	now := time.Now()
	return &Project{
		ID:        types.NewID(),
		Title:     title,
		Prompt:    prompt,
		Settings:  settings,
		Status:    ProjectStatusPlanning,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Recompute recalculates the aggregate word count and progress from the
// current section states. Progress is 10 after planning and scales linearly
// to 80 as sections complete; assembly and completion set 95/100 directly.
func (p *Project) Recompute(sections []*Section) {
	total := len(sections)
	completed := 0
	words := 0
	for _, s := range sections {
		words += s.WordCount
		if s.Status == SectionStatusCompleted || s.Status == SectionStatusReviewing {
			completed++
		}
	}

	p.WordCount = words
	if total > 0 && p.Status != ProjectStatusCompleted {
		p.Progress = 10 + int(math.Round(70*float64(completed)/float64(total)))
	}
	p.UpdatedAt = time.Now()
}

// ProgressReport provides a point-in-time progress snapshot for monitoring.
type ProgressReport struct {
	// ProjectID is the unique identifier for the project.
	ProjectID types.ID `json:"project_id"`

	// Status is the current project status.
	Status ProjectStatus `json:"status"`

	// Percent is the completion percentage (0-100).
	Percent int `json:"percent"`

	// CompletedSections is the number of completed sections.
	CompletedSections int `json:"completed_sections"`

	// TotalSections is the total number of sections.
	TotalSections int `json:"total_sections"`

	// WordCount is the aggregate word count so far.
	WordCount int `json:"word_count"`

	// CurrentSection is the title of the section being written, if any.
	CurrentSection string `json:"current_section,omitempty"`
}
