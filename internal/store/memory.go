package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/inkwell-ai/inkwell/internal/document"
	"github.com/inkwell-ai/inkwell/internal/types"
)

// MemoryStore implements ProjectStore with in-memory maps.
// Values are copied on the way in and out so callers cannot alias the
// stored state.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[types.ID]*document.Project
	sections map[types.ID]*document.Section
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[types.ID]*document.Project),
		sections: make(map[types.ID]*document.Section),
	}
}

// SaveProject persists a new project.
func (s *MemoryStore) SaveProject(ctx context.Context, project *document.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[project.ID]; exists {
		return types.NewError(types.STORE_QUERY_FAILED, fmt.Sprintf("project %s already exists", project.ID))
	}
	s.projects[project.ID] = copyProject(project)
	return nil
}

// GetProject retrieves a project by ID.
func (s *MemoryStore) GetProject(ctx context.Context, id types.ID) (*document.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.projects[id]
	if !exists {
		return nil, types.NewError(types.PROJECT_NOT_FOUND, fmt.Sprintf("project %s not found", id))
	}
	return copyProject(p), nil
}

// UpdateProject modifies an existing project.
func (s *MemoryStore) UpdateProject(ctx context.Context, project *document.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[project.ID]; !exists {
		return types.NewError(types.PROJECT_NOT_FOUND, fmt.Sprintf("project %s not found", project.ID))
	}
	s.projects[project.ID] = copyProject(project)
	return nil
}

// DeleteProject removes a project and its sections.
func (s *MemoryStore) DeleteProject(ctx context.Context, id types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[id]; !exists {
		return types.NewError(types.PROJECT_NOT_FOUND, fmt.Sprintf("project %s not found", id))
	}
	delete(s.projects, id)
	for sid, sec := range s.sections {
		if sec.ProjectID == id {
			delete(s.sections, sid)
		}
	}
	return nil
}

// ListProjects retrieves all projects, newest first.
func (s *MemoryStore) ListProjects(ctx context.Context) ([]*document.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*document.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, copyProject(p))
	}
	// Insertion sort by creation time, newest first.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].CreatedAt.Before(out[j].CreatedAt); j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out, nil
}

// SaveSection persists a new section.
func (s *MemoryStore) SaveSection(ctx context.Context, section *document.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sections[section.ID]; exists {
		return types.NewError(types.STORE_QUERY_FAILED, fmt.Sprintf("section %s already exists", section.ID))
	}
	s.sections[section.ID] = copySection(section)
	return nil
}

// GetSection retrieves a section by ID.
func (s *MemoryStore) GetSection(ctx context.Context, id types.ID) (*document.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sec, exists := s.sections[id]
	if !exists {
		return nil, types.NewError(types.SECTION_NOT_FOUND, fmt.Sprintf("section %s not found", id))
	}
	return copySection(sec), nil
}

// UpdateSection modifies an existing section.
func (s *MemoryStore) UpdateSection(ctx context.Context, section *document.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sections[section.ID]; !exists {
		return types.NewError(types.SECTION_NOT_FOUND, fmt.Sprintf("section %s not found", section.ID))
	}
	s.sections[section.ID] = copySection(section)
	return nil
}

// GetSections retrieves all sections of a project in order-index order.
func (s *MemoryStore) GetSections(ctx context.Context, projectID types.ID) ([]*document.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*document.Section, 0)
	for _, sec := range s.sections {
		if sec.ProjectID == projectID {
			out = append(out, copySection(sec))
		}
	}
	document.SortSections(out)
	return out, nil
}

// Close releases store resources. A no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func copyProject(p *document.Project) *document.Project {
	cp := *p
	cp.SectionIDs = make([]types.ID, len(p.SectionIDs))
	copy(cp.SectionIDs, p.SectionIDs)
	if p.CompletedAt != nil {
		t := *p.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}

func copySection(s *document.Section) *document.Section {
	cp := *s
	return &cp
}

// Ensure MemoryStore implements ProjectStore at compile time
var _ ProjectStore = (*MemoryStore)(nil)
