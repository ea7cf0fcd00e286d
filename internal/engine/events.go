package engine

import (
	"context"
	"sync"
	"time"

	"github.com/inkwell-ai/inkwell/internal/document"
	"github.com/inkwell-ai/inkwell/internal/types"
)

// EventType identifies the type of project event.
type EventType string

const (
	// EventProjectCreated indicates a project was created and planned.
	EventProjectCreated EventType = "project.created"

	// EventProjectStarted indicates the run loop has started.
	EventProjectStarted EventType = "project.started"

	// EventProjectPaused indicates generation has been paused.
	EventProjectPaused EventType = "project.paused"

	// EventProjectResumed indicates generation has resumed.
	EventProjectResumed EventType = "project.resumed"

	// EventProjectCompleted indicates every section has completed.
	EventProjectCompleted EventType = "project.completed"

	// EventProjectFailed indicates planning could not produce sections.
	EventProjectFailed EventType = "project.failed"

	// EventSectionStarted indicates a section began writing.
	EventSectionStarted EventType = "section.started"

	// EventSectionCompleted indicates a section finished writing.
	EventSectionCompleted EventType = "section.completed"

	// EventReviewStarted indicates the review pass began.
	EventReviewStarted EventType = "review.started"

	// EventProgress indicates a progress update.
	EventProgress EventType = "project.progress"
)

// String returns the string representation of the event type.
func (t EventType) String() string {
	return string(t)
}

// Event represents a project lifecycle event.
// Events are emitted after every state-affecting transition.
type Event struct {
	// Type identifies the event type.
	Type EventType `json:"type"`

	// ProjectID is the unique identifier of the project.
	ProjectID types.ID `json:"project_id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Progress is the progress snapshot at emission time.
	Progress *document.ProgressReport `json:"progress,omitempty"`

	// SectionID is set for section-scoped events.
	SectionID types.ID `json:"section_id,omitempty"`

	// Message is an optional human-readable note.
	Message string `json:"message,omitempty"`
}

// EventEmitter publishes project events to subscribers.
// Implementations must be thread-safe and support multiple concurrent
// subscribers.
type EventEmitter interface {
	// Emit publishes an event to all subscribers.
	Emit(ctx context.Context, event Event) error

	// Subscribe creates a new subscription and returns a channel for
	// receiving events and a cleanup function to unsubscribe.
	Subscribe(ctx context.Context) (<-chan Event, func())

	// Close shuts down the emitter and all subscriptions.
	Close() error
}

// DefaultEventEmitter implements EventEmitter using buffered channels.
// It supports multiple subscribers and handles slow consumers gracefully.
type DefaultEventEmitter struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
	bufferSize  int
	closed      bool
}

// EmitterOption is a functional option for configuring DefaultEventEmitter.
type EmitterOption func(*DefaultEventEmitter)

// WithBufferSize sets the buffer size for subscriber channels.
// Default is 100.
func WithBufferSize(size int) EmitterOption {
	return func(e *DefaultEventEmitter) {
		e.bufferSize = size
	}
}

// NewEventEmitter creates a new DefaultEventEmitter.
func NewEventEmitter(opts ...EmitterOption) *DefaultEventEmitter {
	emitter := &DefaultEventEmitter{
		subscribers: make(map[string]chan Event),
		bufferSize:  100,
	}

	for _, opt := range opts {
		opt(emitter)
	}

	return emitter
}

// Emit publishes an event to all subscribers.
// If a subscriber's channel is full the event is dropped for that
// subscriber, so one slow consumer cannot block the run loop.
func (e *DefaultEventEmitter) Emit(ctx context.Context, event Event) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		return types.NewError(types.PROJECT_INVALID_STATE, "event emitter is closed")
	}

	for _, ch := range e.subscribers {
		select {
		case ch <- event:
		case <-ctx.Done():
			return ctx.Err()
		default:
			// Channel full, drop event for this slow subscriber.
		}
	}

	return nil
}

// Subscribe creates a new subscription and returns a channel for receiving
// events. The returned cleanup function must be called to unsubscribe.
func (e *DefaultEventEmitter) Subscribe(ctx context.Context) (<-chan Event, func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	subscriberID := types.NewID().String()
	ch := make(chan Event, e.bufferSize)
	e.subscribers[subscriberID] = ch

	cleanup := func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		if subCh, exists := e.subscribers[subscriberID]; exists {
			delete(e.subscribers, subscriberID)
			close(subCh)
		}
	}

	return ch, cleanup
}

// Close shuts down the emitter and closes all subscriber channels.
func (e *DefaultEventEmitter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}

	e.closed = true
	for id, ch := range e.subscribers {
		close(ch)
		delete(e.subscribers, id)
	}

	return nil
}

// SubscriberCount returns the current number of active subscribers.
func (e *DefaultEventEmitter) SubscriberCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subscribers)
}

// NewEvent creates a new project event with the current timestamp.
func NewEvent(eventType EventType, projectID types.ID) Event {
	return Event{
		Type:      eventType,
		ProjectID: projectID,
		Timestamp: time.Now(),
	}
}

// Ensure DefaultEventEmitter implements EventEmitter at compile time
var _ EventEmitter = (*DefaultEventEmitter)(nil)
