package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-ai/inkwell/internal/document"
	"github.com/inkwell-ai/inkwell/internal/types"
)

// storeFactories builds each ProjectStore implementation fresh per test.
var storeFactories = map[string]func(t *testing.T) ProjectStore{
	"memory": func(t *testing.T) ProjectStore {
		return NewMemoryStore()
	},
	"sqlite": func(t *testing.T) ProjectStore {
		s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	},
}

func newStoredProject(t *testing.T, s ProjectStore) *document.Project {
	t.Helper()
	p := document.NewProject("Stored Doc", "a topic", document.DefaultSettings())
	require.NoError(t, s.SaveProject(context.Background(), p))
	return p
}

func newStoredSection(t *testing.T, s ProjectStore, projectID types.ID, index int) *document.Section {
	t.Helper()
	sec := &document.Section{
		ID:         types.NewID(),
		ProjectID:  projectID,
		Title:      "Section",
		OrderIndex: index,
		WordBudget: 500,
		Status:     document.SectionStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	require.NoError(t, s.SaveSection(context.Background(), sec))
	return sec
}

// TestStore_ProjectRoundTrip tests save, get, update across implementations
func TestStore_ProjectRoundTrip(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			ctx := context.Background()

			p := newStoredProject(t, s)

			loaded, err := s.GetProject(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, p.ID, loaded.ID)
			assert.Equal(t, p.Title, loaded.Title)
			assert.Equal(t, p.Settings.TargetWordCount, loaded.Settings.TargetWordCount)
			assert.Equal(t, document.ProjectStatusPlanning, loaded.Status)

			loaded.Status = document.ProjectStatusWriting
			loaded.Progress = 10
			loaded.Error = "note"
			require.NoError(t, s.UpdateProject(ctx, loaded))

			again, err := s.GetProject(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, document.ProjectStatusWriting, again.Status)
			assert.Equal(t, 10, again.Progress)
			assert.Equal(t, "note", again.Error)
		})
	}
}

// TestStore_ProjectNotFound tests missing-project errors
func TestStore_ProjectNotFound(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			ctx := context.Background()

			_, err := s.GetProject(ctx, types.NewID())
			require.Error(t, err)
			assert.Equal(t, types.PROJECT_NOT_FOUND, types.CodeOf(err))

			ghost := document.NewProject("Ghost", "x", document.DefaultSettings())
			assert.Error(t, s.UpdateProject(ctx, ghost))
			assert.Error(t, s.DeleteProject(ctx, types.NewID()))
		})
	}
}

// TestStore_SectionRoundTrip tests section persistence
func TestStore_SectionRoundTrip(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			ctx := context.Background()

			p := newStoredProject(t, s)
			sec := newStoredSection(t, s, p.ID, 0)

			loaded, err := s.GetSection(ctx, sec.ID)
			require.NoError(t, err)
			assert.Equal(t, sec.ID, loaded.ID)
			assert.Equal(t, p.ID, loaded.ProjectID)

			loaded.SetContent("generated prose here")
			loaded.Status = document.SectionStatusCompleted
			loaded.ContextDigest = "generated prose here"
			loaded.BackendID = "mock"
			loaded.FallbackUsed = true
			require.NoError(t, s.UpdateSection(ctx, loaded))

			again, err := s.GetSection(ctx, sec.ID)
			require.NoError(t, err)
			assert.Equal(t, "generated prose here", again.Content)
			assert.Equal(t, 3, again.WordCount)
			assert.Equal(t, document.SectionStatusCompleted, again.Status)
			assert.Equal(t, "mock", again.BackendID)
			assert.True(t, again.FallbackUsed)
		})
	}
}

// TestStore_GetSections_Ordered tests order-index ordering regardless of
// insertion order
func TestStore_GetSections_Ordered(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			ctx := context.Background()

			p := newStoredProject(t, s)
			for _, idx := range []int{2, 0, 3, 1} {
				newStoredSection(t, s, p.ID, idx)
			}

			sections, err := s.GetSections(ctx, p.ID)
			require.NoError(t, err)
			require.Len(t, sections, 4)
			for i, sec := range sections {
				assert.Equal(t, i, sec.OrderIndex)
			}
		})
	}
}

// TestStore_DeleteProject_RemovesSections tests cascading deletion
func TestStore_DeleteProject_RemovesSections(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			ctx := context.Background()

			p := newStoredProject(t, s)
			sec := newStoredSection(t, s, p.ID, 0)

			require.NoError(t, s.DeleteProject(ctx, p.ID))

			_, err := s.GetProject(ctx, p.ID)
			assert.Error(t, err)
			_, err = s.GetSection(ctx, sec.ID)
			assert.Error(t, err)

			sections, err := s.GetSections(ctx, p.ID)
			require.NoError(t, err)
			assert.Empty(t, sections)
		})
	}
}

// TestStore_ListProjects_NewestFirst tests list ordering
func TestStore_ListProjects_NewestFirst(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			ctx := context.Background()

			older := document.NewProject("Older", "x", document.DefaultSettings())
			older.CreatedAt = time.Now().Add(-time.Hour)
			require.NoError(t, s.SaveProject(ctx, older))

			newer := document.NewProject("Newer", "y", document.DefaultSettings())
			require.NoError(t, s.SaveProject(ctx, newer))

			projects, err := s.ListProjects(ctx)
			require.NoError(t, err)
			require.Len(t, projects, 2)
			assert.Equal(t, "Newer", projects[0].Title)
			assert.Equal(t, "Older", projects[1].Title)
		})
	}
}

// TestMemoryStore_CopySemantics tests that stored state cannot be aliased
func TestMemoryStore_CopySemantics(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	p := newStoredProject(t, s)
	p.Title = "mutated after save"

	loaded, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stored Doc", loaded.Title)

	loaded.Title = "mutated after load"
	again, err := s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stored Doc", again.Title)
}

// TestStore_DuplicateSave tests duplicate primary key handling
func TestStore_DuplicateSave(t *testing.T) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			s := factory(t)
			ctx := context.Background()

			p := newStoredProject(t, s)
			assert.Error(t, s.SaveProject(ctx, p))
		})
	}
}
