// Package store provides persistence for projects and sections.
// The SQLite implementation is the durable store; the in-memory
// implementation backs tests and one-shot CLI runs.
package store

import (
	"context"

	"github.com/inkwell-ai/inkwell/internal/document"
	"github.com/inkwell-ai/inkwell/internal/types"
)

// ProjectStore persists projects and their sections keyed by id.
// The schema is limited to the document model fields; chat history,
// settings screens, and other application state live elsewhere.
type ProjectStore interface {
	// SaveProject persists a new project.
	SaveProject(ctx context.Context, project *document.Project) error

	// GetProject retrieves a project by ID.
	GetProject(ctx context.Context, id types.ID) (*document.Project, error)

	// UpdateProject modifies an existing project.
	UpdateProject(ctx context.Context, project *document.Project) error

	// DeleteProject removes a project and its sections.
	DeleteProject(ctx context.Context, id types.ID) error

	// ListProjects retrieves all projects, newest first.
	ListProjects(ctx context.Context) ([]*document.Project, error)

	// SaveSection persists a new section.
	SaveSection(ctx context.Context, section *document.Section) error

	// GetSection retrieves a section by ID.
	GetSection(ctx context.Context, id types.ID) (*document.Section, error)

	// UpdateSection modifies an existing section.
	UpdateSection(ctx context.Context, section *document.Section) error

	// GetSections retrieves all sections of a project in order-index order.
	GetSections(ctx context.Context, projectID types.ID) ([]*document.Section, error)

	// Close releases store resources.
	Close() error
}
