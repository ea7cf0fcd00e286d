package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/inkwell-ai/inkwell/internal/document"
	"github.com/inkwell-ai/inkwell/internal/types"
)

// SQLiteStore implements ProjectStore on a SQLite database.
// WAL mode and foreign keys are enabled for better concurrency and
// cascading section deletes.
type SQLiteStore struct {
	conn *sql.DB
	path string
}

// OpenSQLite opens (and migrates) a SQLite-backed project store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000", path)

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, types.WrapError(types.STORE_OPEN_FAILED, "failed to open database", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, types.WrapError(types.STORE_OPEN_FAILED, "failed to ping database", err)
	}

	s := &SQLiteStore{conn: conn, path: path}
	if err := s.migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

// migrate creates the schema if it does not exist.
func (s *SQLiteStore) migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	prompt       TEXT NOT NULL,
	settings     TEXT NOT NULL,
	status       TEXT NOT NULL,
	word_count   INTEGER NOT NULL DEFAULT 0,
	progress     INTEGER NOT NULL DEFAULT 0,
	error        TEXT,
	created_at   TIMESTAMP NOT NULL,
	updated_at   TIMESTAMP NOT NULL,
	completed_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sections (
	id             TEXT PRIMARY KEY,
	project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	title          TEXT NOT NULL,
	summary        TEXT,
	order_index    INTEGER NOT NULL,
	backend_id     TEXT,
	word_budget    INTEGER NOT NULL DEFAULT 0,
	status         TEXT NOT NULL,
	content        TEXT,
	word_count     INTEGER NOT NULL DEFAULT 0,
	context_digest TEXT,
	review_notes   TEXT,
	fallback_used  INTEGER NOT NULL DEFAULT 0,
	created_at     TIMESTAMP NOT NULL,
	updated_at     TIMESTAMP NOT NULL,
	UNIQUE(project_id, order_index)
);

CREATE INDEX IF NOT EXISTS idx_sections_project ON sections(project_id, order_index);
`
	if _, err := s.conn.ExecContext(ctx, schema); err != nil {
		return types.WrapError(types.STORE_MIGRATE_FAILED, "failed to create schema", err)
	}
	return nil
}

// SaveProject persists a new project.
func (s *SQLiteStore) SaveProject(ctx context.Context, project *document.Project) error {
	settingsJSON, err := json.Marshal(project.Settings)
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to marshal settings", err)
	}

	const query = `
		INSERT INTO projects (id, title, prompt, settings, status, word_count, progress, error, created_at, updated_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.conn.ExecContext(ctx, query,
		project.ID, project.Title, project.Prompt, string(settingsJSON),
		project.Status, project.WordCount, project.Progress, project.Error,
		project.CreatedAt, project.UpdatedAt, project.CompletedAt,
	)
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to save project", err)
	}
	return nil
}

// GetProject retrieves a project by ID. Section IDs are loaded from the
// sections table in order-index order.
func (s *SQLiteStore) GetProject(ctx context.Context, id types.ID) (*document.Project, error) {
	const query = `
		SELECT id, title, prompt, settings, status, word_count, progress, error, created_at, updated_at, completed_at
		FROM projects WHERE id = ?
	`

	var p document.Project
	var settingsJSON string
	var errMsg sql.NullString
	var completedAt sql.NullTime

	err := s.conn.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Prompt, &settingsJSON, &p.Status,
		&p.WordCount, &p.Progress, &errMsg, &p.CreatedAt, &p.UpdatedAt, &completedAt,
	)
	if err == sql.ErrNoRows {
		return nil, types.NewError(types.PROJECT_NOT_FOUND, fmt.Sprintf("project %s not found", id))
	}
	if err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to get project", err)
	}

	if err := json.Unmarshal([]byte(settingsJSON), &p.Settings); err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to unmarshal settings", err)
	}
	if errMsg.Valid {
		p.Error = errMsg.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}

	rows, err := s.conn.QueryContext(ctx,
		`SELECT id FROM sections WHERE project_id = ? ORDER BY order_index`, id)
	if err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to list section ids", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sid types.ID
		if err := rows.Scan(&sid); err != nil {
			return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to scan section id", err)
		}
		p.SectionIDs = append(p.SectionIDs, sid)
	}
	if err := rows.Err(); err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to iterate section ids", err)
	}

	return &p, nil
}

// UpdateProject modifies an existing project.
func (s *SQLiteStore) UpdateProject(ctx context.Context, project *document.Project) error {
	settingsJSON, err := json.Marshal(project.Settings)
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to marshal settings", err)
	}

	const query = `
		UPDATE projects
		SET title = ?, prompt = ?, settings = ?, status = ?, word_count = ?,
		    progress = ?, error = ?, updated_at = ?, completed_at = ?
		WHERE id = ?
	`
	res, err := s.conn.ExecContext(ctx, query,
		project.Title, project.Prompt, string(settingsJSON), project.Status,
		project.WordCount, project.Progress, project.Error,
		project.UpdatedAt, project.CompletedAt, project.ID,
	)
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to update project", err)
	}
	return requireRow(res, types.PROJECT_NOT_FOUND, fmt.Sprintf("project %s not found", project.ID))
}

// DeleteProject removes a project; sections cascade.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id types.ID) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to delete project", err)
	}
	return requireRow(res, types.PROJECT_NOT_FOUND, fmt.Sprintf("project %s not found", id))
}

// ListProjects retrieves all projects, newest first.
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]*document.Project, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT id FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to list projects", err)
	}

	var ids []types.ID
	for rows.Next() {
		var id types.ID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to scan project id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to iterate projects", err)
	}
	rows.Close()

	out := make([]*document.Project, 0, len(ids))
	for _, id := range ids {
		p, err := s.GetProject(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// SaveSection persists a new section.
func (s *SQLiteStore) SaveSection(ctx context.Context, section *document.Section) error {
	const query = `
		INSERT INTO sections (id, project_id, title, summary, order_index, backend_id, word_budget,
			status, content, word_count, context_digest, review_notes, fallback_used, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.conn.ExecContext(ctx, query,
		section.ID, section.ProjectID, section.Title, section.Summary,
		section.OrderIndex, section.BackendID, section.WordBudget,
		section.Status, section.Content, section.WordCount,
		section.ContextDigest, section.ReviewNotes, boolToInt(section.FallbackUsed),
		section.CreatedAt, section.UpdatedAt,
	)
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to save section", err)
	}
	return nil
}

// GetSection retrieves a section by ID.
func (s *SQLiteStore) GetSection(ctx context.Context, id types.ID) (*document.Section, error) {
	const query = `
		SELECT id, project_id, title, summary, order_index, backend_id, word_budget,
			status, content, word_count, context_digest, review_notes, fallback_used, created_at, updated_at
		FROM sections WHERE id = ?
	`
	sec, err := scanSection(s.conn.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, types.NewError(types.SECTION_NOT_FOUND, fmt.Sprintf("section %s not found", id))
	}
	if err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to get section", err)
	}
	return sec, nil
}

// UpdateSection modifies an existing section.
func (s *SQLiteStore) UpdateSection(ctx context.Context, section *document.Section) error {
	const query = `
		UPDATE sections
		SET title = ?, summary = ?, order_index = ?, backend_id = ?, word_budget = ?,
		    status = ?, content = ?, word_count = ?, context_digest = ?, review_notes = ?,
		    fallback_used = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := s.conn.ExecContext(ctx, query,
		section.Title, section.Summary, section.OrderIndex, section.BackendID,
		section.WordBudget, section.Status, section.Content, section.WordCount,
		section.ContextDigest, section.ReviewNotes, boolToInt(section.FallbackUsed),
		section.UpdatedAt, section.ID,
	)
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to update section", err)
	}
	return requireRow(res, types.SECTION_NOT_FOUND, fmt.Sprintf("section %s not found", section.ID))
}

// GetSections retrieves all sections of a project in order-index order.
func (s *SQLiteStore) GetSections(ctx context.Context, projectID types.ID) ([]*document.Section, error) {
	const query = `
		SELECT id, project_id, title, summary, order_index, backend_id, word_budget,
			status, content, word_count, context_digest, review_notes, fallback_used, created_at, updated_at
		FROM sections WHERE project_id = ? ORDER BY order_index
	`
	rows, err := s.conn.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to list sections", err)
	}
	defer rows.Close()

	out := make([]*document.Section, 0)
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to scan section", err)
		}
		out = append(out, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, types.WrapError(types.STORE_QUERY_FAILED, "failed to iterate sections", err)
	}
	return out, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanSection(row scanner) (*document.Section, error) {
	var sec document.Section
	var summary, backendID, content, digest, notes sql.NullString
	var fallbackUsed int

	err := row.Scan(
		&sec.ID, &sec.ProjectID, &sec.Title, &summary, &sec.OrderIndex,
		&backendID, &sec.WordBudget, &sec.Status, &content, &sec.WordCount,
		&digest, &notes, &fallbackUsed, &sec.CreatedAt, &sec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	sec.Summary = summary.String
	sec.BackendID = backendID.String
	sec.Content = content.String
	sec.ContextDigest = digest.String
	sec.ReviewNotes = notes.String
	sec.FallbackUsed = fallbackUsed != 0
	return &sec, nil
}

func requireRow(res sql.Result, code types.ErrorCode, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return types.WrapError(types.STORE_QUERY_FAILED, "failed to check rows affected", err)
	}
	if n == 0 {
		return types.NewError(code, msg)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ensure SQLiteStore implements ProjectStore at compile time
var _ ProjectStore = (*SQLiteStore)(nil)
