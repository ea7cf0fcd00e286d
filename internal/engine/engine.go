// Package engine orchestrates document generation: it owns the project and
// section state machines, sequences section writing, chains carry-forward
// context between sections, and coordinates pause, resume, regeneration,
// review, and export.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/inkwell-ai/inkwell/internal/assembler"
	"github.com/inkwell-ai/inkwell/internal/backend"
	"github.com/inkwell-ai/inkwell/internal/document"
	"github.com/inkwell-ai/inkwell/internal/planner"
	"github.com/inkwell-ai/inkwell/internal/store"
	"github.com/inkwell-ai/inkwell/internal/types"
	"github.com/inkwell-ai/inkwell/internal/writer"
)

const (
	// DefaultSectionDelay is the pacing delay between consecutive section
	// generations within one run.
	DefaultSectionDelay = 2 * time.Second

	// reviewConcurrency caps concurrent review calls during the review pass.
	reviewConcurrency = 2

	// titleWordLimit bounds titles derived from the prompt.
	titleWordLimit = 8
)

// ProgressFunc receives progress snapshots after every state-affecting
// transition. Callbacks run synchronously on the run loop; keep them fast.
type ProgressFunc func(report document.ProgressReport)

// Engine coordinates planning, writing, review, and assembly for document
// projects. All methods are safe for concurrent use; at most one run is
// active per project at any time.
type Engine struct {
	store     store.ProjectStore
	registry  backend.Registry
	planner   *planner.Planner
	writer    *writer.Writer
	reviewer  *writer.Reviewer
	emitter   EventEmitter
	renderers []assembler.Renderer
	logger    *slog.Logger

	sectionDelay time.Duration
	onProgress   ProgressFunc

	mu     sync.Mutex
	active map[types.ID]*runState
}

// runState tracks one in-flight run. Pause is cooperative: the flag is
// observed by the run loop between sections, never mid-generation.
type runState struct {
	pauseRequested atomic.Bool
}

// Option is a functional option for configuring the Engine.
type Option func(*Engine)

// WithSectionDelay sets the pacing delay between section generations.
func WithSectionDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.sectionDelay = d
	}
}

// WithEmitter sets a custom event emitter.
func WithEmitter(emitter EventEmitter) Option {
	return func(e *Engine) {
		e.emitter = emitter
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithProgressFunc registers a progress callback.
func WithProgressFunc(fn ProgressFunc) Option {
	return func(e *Engine) {
		e.onProgress = fn
	}
}

// WithRenderers replaces the default renderer set used by Export.
func WithRenderers(renderers ...assembler.Renderer) Option {
	return func(e *Engine) {
		e.renderers = renderers
	}
}

// New creates an Engine over the given store and backend registry.
func New(st store.ProjectStore, registry backend.Registry, opts ...Option) *Engine {
	e := &Engine{
		store:        st,
		registry:     registry,
		emitter:      NewEventEmitter(),
		sectionDelay: DefaultSectionDelay,
		active:       make(map[types.ID]*runState),
		logger:       slog.Default(),
		renderers: []assembler.Renderer{
			assembler.PlainTextRenderer{},
			assembler.MarkdownRenderer{},
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	e.planner = planner.New(registry, e.logger)
	e.writer = writer.New(registry, e.logger)
	e.reviewer = writer.NewReviewer(registry, e.logger)

	return e
}

// Events returns the engine's event emitter for subscription.
func (e *Engine) Events() EventEmitter {
	return e.emitter
}

// Create plans a new project: it derives the section count from the target
// word count, plans the outline, and persists the project with all sections
// pending. The project is left in the writing state, ready for Run.
func (e *Engine) Create(ctx context.Context, title, prompt string, settings document.Settings) (*document.Project, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, types.NewError(types.PROJECT_INVALID_STATE, "prompt must not be empty")
	}
	if err := settings.Validate(); err != nil {
		return nil, types.WrapError(types.CONFIG_VALIDATION_FAILED, "invalid project settings", err)
	}
	if title = strings.TrimSpace(title); title == "" {
		title = deriveTitle(prompt)
	}

	project := document.NewProject(title, prompt, settings)
	if err := e.store.SaveProject(ctx, project); err != nil {
		return nil, err
	}

	outline := e.planner.Plan(ctx, prompt, settings)
	if len(outline.Items) == 0 {
		// Plan guarantees a non-empty outline; this is the terminal
		// failure path for a broken planner.
		project.Status = document.ProjectStatusError
		project.Error = "planning produced no sections"
		project.UpdatedAt = time.Now()
		if err := e.store.UpdateProject(ctx, project); err != nil {
			e.logger.Error("failed to persist planning failure", "project", project.ID, "error", err)
		}
		e.emit(ctx, NewEvent(EventProjectFailed, project.ID))
		return nil, types.NewError(types.PLANNING_NO_SECTIONS, "planning produced no sections")
	}

	candidates := e.registry.Candidates()
	now := time.Now()
	for i, item := range outline.Items {
		section := &document.Section{
			ID:         types.NewID(),
			ProjectID:  project.ID,
			Title:      item.Title,
			Summary:    item.Summary,
			OrderIndex: i,
			WordBudget: outline.SectionBudget,
			Status:     document.SectionStatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		// Round-robin backend assignment across the candidate list.
		if len(candidates) > 0 {
			section.BackendID = candidates[i%len(candidates)]
		}
		if err := e.store.SaveSection(ctx, section); err != nil {
			return nil, err
		}
		project.SectionIDs = append(project.SectionIDs, section.ID)
	}

	project.Status = document.ProjectStatusWriting
	project.Progress = 10
	project.UpdatedAt = time.Now()
	if err := e.store.UpdateProject(ctx, project); err != nil {
		return nil, err
	}

	event := NewEvent(EventProjectCreated, project.ID)
	event.Message = fmt.Sprintf("planned %d sections", len(outline.Items))
	e.emit(ctx, event)

	e.logger.Info("project created",
		"project", project.ID,
		"title", project.Title,
		"sections", len(outline.Items),
		"fallback_outline", outline.FromFallback)

	return project, nil
}

// Run drives the project's run loop to completion or pause. It is
// synchronous; callers wanting background execution run it in a goroutine.
// A second Run on the same project fails fast with PROJECT_ALREADY_RUNNING.
func (e *Engine) Run(ctx context.Context, projectID types.ID) error {
	rs, err := e.acquire(projectID)
	if err != nil {
		return err
	}
	defer e.release(projectID)

	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}

	switch project.Status {
	case document.ProjectStatusCompleted:
		// Running a completed project is a no-op.
		return nil
	case document.ProjectStatusWriting:
	case document.ProjectStatusPaused:
		return types.NewError(types.PROJECT_INVALID_STATE,
			fmt.Sprintf("project %s is paused; resume it instead", projectID))
	default:
		return types.NewError(types.PROJECT_INVALID_STATE,
			fmt.Sprintf("project %s is not runnable in state %s", projectID, project.Status))
	}

	e.emit(ctx, NewEvent(EventProjectStarted, projectID))

	// Burst of one: the first section starts immediately, every later
	// section waits out the pacing delay.
	limiter := rate.NewLimiter(rate.Every(e.sectionDelay), 1)

	for {
		if rs.pauseRequested.Load() {
			return e.transitionPaused(ctx, project)
		}

		sections, err := e.store.GetSections(ctx, projectID)
		if err != nil {
			return err
		}

		section := nextRunnable(sections)
		if section == nil {
			return e.finishRun(ctx, project, sections)
		}

		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		if rs.pauseRequested.Load() {
			return e.transitionPaused(ctx, project)
		}

		if err := e.writeSection(ctx, project, section, sections); err != nil {
			return err
		}
	}
}

// writeSection generates one section and persists the resulting state.
func (e *Engine) writeSection(ctx context.Context, project *document.Project, section *document.Section, sections []*document.Section) error {
	section.Status = document.SectionStatusWriting
	section.UpdatedAt = time.Now()
	if err := e.store.UpdateSection(ctx, section); err != nil {
		return err
	}

	event := NewEvent(EventSectionStarted, project.ID)
	event.SectionID = section.ID
	event.Message = section.Title
	e.emit(ctx, event)

	runningContext := contextBefore(sections, section.OrderIndex, false)
	result := e.writer.WriteSection(ctx, project, section, runningContext)

	section.SetContent(result.Content)
	section.ContextDigest = writer.Digest(result.Content)
	section.BackendID = result.BackendID
	section.FallbackUsed = result.FallbackUsed
	section.Status = document.SectionStatusCompleted
	if err := e.store.UpdateSection(ctx, section); err != nil {
		return err
	}

	project.Recompute(sections)
	if err := e.store.UpdateProject(ctx, project); err != nil {
		return err
	}

	done := NewEvent(EventSectionCompleted, project.ID)
	done.SectionID = section.ID
	done.Message = section.Title
	e.emit(ctx, done)
	e.reportProgress(ctx, project, sections, "")

	e.logger.Info("section completed",
		"project", project.ID,
		"section", section.Title,
		"backend", section.BackendID,
		"words", section.WordCount,
		"fallback", section.FallbackUsed)

	return nil
}

// finishRun completes the project: optional review pass, then assembly
// handoff and the completed state.
func (e *Engine) finishRun(ctx context.Context, project *document.Project, sections []*document.Section) error {
	if project.Settings.ReviewEnabled {
		if err := e.reviewPass(ctx, project, sections); err != nil {
			return err
		}
	}

	project.Progress = 95
	project.UpdatedAt = time.Now()
	if err := e.store.UpdateProject(ctx, project); err != nil {
		return err
	}
	e.reportProgress(ctx, project, sections, "")

	now := time.Now()
	project.Status = document.ProjectStatusCompleted
	project.Progress = 100
	project.CompletedAt = &now
	project.UpdatedAt = now
	if err := e.store.UpdateProject(ctx, project); err != nil {
		return err
	}

	e.emit(ctx, NewEvent(EventProjectCompleted, project.ID))
	e.reportProgress(ctx, project, sections, "")

	e.logger.Info("project completed",
		"project", project.ID,
		"words", project.WordCount,
		"sections", len(sections))

	return nil
}

// reviewPass runs the best-effort reviewer over every finished section.
// Review failures are logged and swallowed; they never block completion.
func (e *Engine) reviewPass(ctx context.Context, project *document.Project, sections []*document.Section) error {
	project.Status = document.ProjectStatusReviewing
	project.UpdatedAt = time.Now()
	if err := e.store.UpdateProject(ctx, project); err != nil {
		return err
	}
	e.emit(ctx, NewEvent(EventReviewStarted, project.ID))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(reviewConcurrency)

	var mu sync.Mutex
	for _, section := range sections {
		if section.Status != document.SectionStatusCompleted {
			continue
		}
		sec := section
		g.Go(func() error {
			notes, err := e.reviewer.Review(gctx, sec)
			if err != nil {
				e.logger.Warn("section review failed",
					"project", project.ID, "section", sec.Title, "error", err)
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			sec.ReviewNotes = notes
			sec.UpdatedAt = time.Now()
			if err := e.store.UpdateSection(gctx, sec); err != nil {
				e.logger.Warn("failed to persist review notes",
					"project", project.ID, "section", sec.Title, "error", err)
			}
			return nil
		})
	}

	// Review goroutines never return errors; Wait only reflects context
	// cancellation ordering.
	_ = g.Wait()

	project.Status = document.ProjectStatusWriting
	project.UpdatedAt = time.Now()
	return e.store.UpdateProject(ctx, project)
}

// transitionPaused persists the paused state and ends the run loop.
func (e *Engine) transitionPaused(ctx context.Context, project *document.Project) error {
	project.Status = document.ProjectStatusPaused
	project.UpdatedAt = time.Now()
	if err := e.store.UpdateProject(ctx, project); err != nil {
		return err
	}
	e.emit(ctx, NewEvent(EventProjectPaused, project.ID))
	e.logger.Info("project paused", "project", project.ID)
	return nil
}

// Pause requests suspension of an in-progress run. Pause is cooperative:
// the section being generated finishes first, and the run loop persists the
// paused state at its next check. Pausing a project with no active run flips
// its stored state directly.
func (e *Engine) Pause(ctx context.Context, projectID types.ID) error {
	e.mu.Lock()
	rs, running := e.active[projectID]
	e.mu.Unlock()

	if running {
		rs.pauseRequested.Store(true)
		return nil
	}

	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project.Status != document.ProjectStatusWriting {
		return types.NewError(types.PROJECT_INVALID_STATE,
			fmt.Sprintf("project %s cannot be paused in state %s", projectID, project.Status))
	}
	return e.transitionPaused(ctx, project)
}

// Resume restarts a paused project and drives it with Run. The run loop
// re-enters at the first unfinished section; completed sections are never
// rewritten.
func (e *Engine) Resume(ctx context.Context, projectID types.ID) error {
	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	if project.Status != document.ProjectStatusPaused {
		return types.NewError(types.PROJECT_INVALID_STATE,
			fmt.Sprintf("project %s cannot be resumed in state %s", projectID, project.Status))
	}

	project.Status = document.ProjectStatusWriting
	project.UpdatedAt = time.Now()
	if err := e.store.UpdateProject(ctx, project); err != nil {
		return err
	}
	e.emit(ctx, NewEvent(EventProjectResumed, projectID))

	return e.Run(ctx, projectID)
}

// RegenerateSection clears one finished or failed section and rewrites it in
// place. The carry-forward context is recomputed from the current content of
// all prior sections, not from cached digests. Other sections are untouched.
func (e *Engine) RegenerateSection(ctx context.Context, projectID, sectionID types.ID) (*document.Section, error) {
	if _, err := e.acquire(projectID); err != nil {
		return nil, err
	}
	defer e.release(projectID)

	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	section, err := e.store.GetSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if section.ProjectID != projectID {
		return nil, types.NewError(types.SECTION_NOT_FOUND,
			fmt.Sprintf("section %s does not belong to project %s", sectionID, projectID))
	}
	if !section.Status.Regenerable() {
		return nil, types.NewError(types.SECTION_INVALID_STATE,
			fmt.Sprintf("section %s cannot be regenerated in state %s", sectionID, section.Status))
	}

	section.ClearContent()
	if err := e.store.UpdateSection(ctx, section); err != nil {
		return nil, err
	}

	sections, err := e.store.GetSections(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// Reflect the cleared section in the loaded slice before recomputing.
	for i, sec := range sections {
		if sec.ID == section.ID {
			sections[i] = section
		}
	}

	if err := e.writeSectionWithContext(ctx, project, section, sections, true); err != nil {
		return nil, err
	}
	return section, nil
}

// writeSectionWithContext is writeSection with control over digest
// recomputation for the carry-forward context.
func (e *Engine) writeSectionWithContext(ctx context.Context, project *document.Project, section *document.Section, sections []*document.Section, recomputeDigests bool) error {
	section.Status = document.SectionStatusWriting
	section.UpdatedAt = time.Now()
	if err := e.store.UpdateSection(ctx, section); err != nil {
		return err
	}

	runningContext := contextBefore(sections, section.OrderIndex, recomputeDigests)
	result := e.writer.WriteSection(ctx, project, section, runningContext)

	section.SetContent(result.Content)
	section.ContextDigest = writer.Digest(result.Content)
	section.BackendID = result.BackendID
	section.FallbackUsed = result.FallbackUsed
	section.Status = document.SectionStatusCompleted
	if err := e.store.UpdateSection(ctx, section); err != nil {
		return err
	}

	project.Recompute(sections)
	if err := e.store.UpdateProject(ctx, project); err != nil {
		return err
	}

	done := NewEvent(EventSectionCompleted, project.ID)
	done.SectionID = section.ID
	done.Message = section.Title
	e.emit(ctx, done)
	e.reportProgress(ctx, project, sections, "")

	return nil
}

// AcceptSection confirms a section's content as final. Content is not
// modified; a section in the manual-edit state returns to completed.
func (e *Engine) AcceptSection(ctx context.Context, projectID, sectionID types.ID) error {
	section, err := e.store.GetSection(ctx, sectionID)
	if err != nil {
		return err
	}
	if section.ProjectID != projectID {
		return types.NewError(types.SECTION_NOT_FOUND,
			fmt.Sprintf("section %s does not belong to project %s", sectionID, projectID))
	}

	switch section.Status {
	case document.SectionStatusCompleted:
		return nil
	case document.SectionStatusReviewing:
		section.Status = document.SectionStatusCompleted
		section.UpdatedAt = time.Now()
		return e.store.UpdateSection(ctx, section)
	default:
		return types.NewError(types.SECTION_INVALID_STATE,
			fmt.Sprintf("section %s cannot be accepted in state %s", sectionID, section.Status))
	}
}

// EditSection replaces a finished section's content with a manual edit and
// marks it as under review until accepted. The context digest follows the
// new content so later regenerations see the edit.
func (e *Engine) EditSection(ctx context.Context, projectID, sectionID types.ID, content string) error {
	if strings.TrimSpace(content) == "" {
		return types.NewError(types.SECTION_INVALID_STATE, "edited content must not be empty")
	}

	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	section, err := e.store.GetSection(ctx, sectionID)
	if err != nil {
		return err
	}
	if section.ProjectID != projectID {
		return types.NewError(types.SECTION_NOT_FOUND,
			fmt.Sprintf("section %s does not belong to project %s", sectionID, projectID))
	}
	if section.Status != document.SectionStatusCompleted && section.Status != document.SectionStatusReviewing {
		return types.NewError(types.SECTION_INVALID_STATE,
			fmt.Sprintf("section %s cannot be edited in state %s", sectionID, section.Status))
	}

	section.SetContent(content)
	section.ContextDigest = writer.Digest(content)
	section.Status = document.SectionStatusReviewing
	if err := e.store.UpdateSection(ctx, section); err != nil {
		return err
	}

	sections, err := e.store.GetSections(ctx, projectID)
	if err != nil {
		return err
	}
	project.Recompute(sections)
	return e.store.UpdateProject(ctx, project)
}

// Progress returns a point-in-time progress snapshot for the project.
func (e *Engine) Progress(ctx context.Context, projectID types.ID) (*document.ProgressReport, error) {
	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	sections, err := e.store.GetSections(ctx, projectID)
	if err != nil {
		return nil, err
	}
	report := buildReport(project, sections)
	return &report, nil
}

// Export assembles the completed document and renders it in the requested
// format. Assembly fails before any renderer runs when the document body
// is empty.
func (e *Engine) Export(ctx context.Context, projectID types.ID, format assembler.RenderFormat) ([]byte, error) {
	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.Status != document.ProjectStatusCompleted {
		return nil, types.NewError(types.PROJECT_INVALID_STATE,
			fmt.Sprintf("project %s cannot be exported in state %s", projectID, project.Status))
	}

	sections, err := e.store.GetSections(ctx, projectID)
	if err != nil {
		return nil, err
	}

	doc, err := assembler.Assemble(project, sections)
	if err != nil {
		return nil, err
	}
	return assembler.Export(doc, e.renderers, format)
}

// GetProject returns a stored project.
func (e *Engine) GetProject(ctx context.Context, projectID types.ID) (*document.Project, error) {
	return e.store.GetProject(ctx, projectID)
}

// GetSections returns a project's sections in order-index order.
func (e *Engine) GetSections(ctx context.Context, projectID types.ID) ([]*document.Section, error) {
	return e.store.GetSections(ctx, projectID)
}

// ListProjects returns all stored projects, newest first.
func (e *Engine) ListProjects(ctx context.Context) ([]*document.Project, error) {
	return e.store.ListProjects(ctx)
}

// DeleteProject removes a project and its sections. Running projects cannot
// be deleted.
func (e *Engine) DeleteProject(ctx context.Context, projectID types.ID) error {
	if _, err := e.acquire(projectID); err != nil {
		return err
	}
	defer e.release(projectID)
	return e.store.DeleteProject(ctx, projectID)
}

// acquire takes the per-project run lock, failing fast when a run is
// already active.
func (e *Engine) acquire(projectID types.ID) (*runState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, busy := e.active[projectID]; busy {
		return nil, types.NewError(types.PROJECT_ALREADY_RUNNING,
			fmt.Sprintf("project %s is already running", projectID))
	}
	rs := &runState{}
	e.active[projectID] = rs
	return rs, nil
}

func (e *Engine) release(projectID types.ID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.active, projectID)
}

func (e *Engine) emit(ctx context.Context, event Event) {
	if err := e.emitter.Emit(ctx, event); err != nil {
		e.logger.Debug("event emission failed", "type", event.Type, "error", err)
	}
}

// reportProgress emits a progress event and invokes the progress callback.
func (e *Engine) reportProgress(ctx context.Context, project *document.Project, sections []*document.Section, current string) {
	report := buildReport(project, sections)
	report.CurrentSection = current

	event := NewEvent(EventProgress, project.ID)
	event.Progress = &report
	e.emit(ctx, event)

	if e.onProgress != nil {
		e.onProgress(report)
	}
}

func buildReport(project *document.Project, sections []*document.Section) document.ProgressReport {
	completed := 0
	for _, sec := range sections {
		if sectionDone(sec) {
			completed++
		}
	}
	return document.ProgressReport{
		ProjectID:         project.ID,
		Status:            project.Status,
		Percent:           project.Progress,
		CompletedSections: completed,
		TotalSections:     len(sections),
		WordCount:         project.WordCount,
	}
}

// nextRunnable picks the first section that still needs writing, by order
// index. A stale writing section from an interrupted process is runnable
// again; sections in the manual-edit state are left alone.
func nextRunnable(sections []*document.Section) *document.Section {
	for _, sec := range sections {
		switch sec.Status {
		case document.SectionStatusPending,
			document.SectionStatusError,
			document.SectionStatusWriting:
			return sec
		}
	}
	return nil
}

// sectionDone reports whether a section counts as finished for completion
// and progress purposes.
func sectionDone(sec *document.Section) bool {
	return sec.Status == document.SectionStatusCompleted ||
		sec.Status == document.SectionStatusReviewing
}

// contextBefore builds the running context from the digests of every
// section ordered before the given index, oldest first. With recompute set,
// digests are derived from current section content instead of the cached
// carry-forward digest.
func contextBefore(sections []*document.Section, orderIndex int, recompute bool) string {
	ordered := make([]*document.Section, len(sections))
	copy(ordered, sections)
	document.SortSections(ordered)

	digests := make([]string, 0, len(ordered))
	for _, sec := range ordered {
		if sec.OrderIndex >= orderIndex {
			break
		}
		if !sectionDone(sec) {
			continue
		}
		if recompute {
			digests = append(digests, writer.Digest(sec.Content))
			continue
		}
		digest := sec.ContextDigest
		if digest == "" {
			digest = writer.Digest(sec.Content)
		}
		digests = append(digests, digest)
	}
	return writer.RunningContext(digests)
}

// deriveTitle produces a display title from the first words of the prompt.
func deriveTitle(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) > titleWordLimit {
		words = words[:titleWordLimit]
	}
	return strings.Join(words, " ")
}
