package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-ai/inkwell/internal/types"
)

// TestEventEmitter_EmitAndSubscribe tests basic pub/sub delivery
func TestEventEmitter_EmitAndSubscribe(t *testing.T) {
	emitter := NewEventEmitter()
	defer emitter.Close()

	ctx := context.Background()
	events, cleanup := emitter.Subscribe(ctx)
	defer cleanup()

	projectID := types.NewID()
	require.NoError(t, emitter.Emit(ctx, NewEvent(EventProjectCreated, projectID)))

	ev := <-events
	assert.Equal(t, EventProjectCreated, ev.Type)
	assert.Equal(t, projectID, ev.ProjectID)
	assert.False(t, ev.Timestamp.IsZero())
}

// TestEventEmitter_MultipleSubscribers tests fan-out
func TestEventEmitter_MultipleSubscribers(t *testing.T) {
	emitter := NewEventEmitter()
	defer emitter.Close()

	ctx := context.Background()
	ch1, cleanup1 := emitter.Subscribe(ctx)
	defer cleanup1()
	ch2, cleanup2 := emitter.Subscribe(ctx)
	defer cleanup2()

	assert.Equal(t, 2, emitter.SubscriberCount())

	require.NoError(t, emitter.Emit(ctx, NewEvent(EventProgress, types.NewID())))

	assert.Equal(t, EventProgress, (<-ch1).Type)
	assert.Equal(t, EventProgress, (<-ch2).Type)
}

// TestEventEmitter_DropsWhenFull tests slow-consumer handling
func TestEventEmitter_DropsWhenFull(t *testing.T) {
	emitter := NewEventEmitter(WithBufferSize(1))
	defer emitter.Close()

	ctx := context.Background()
	events, cleanup := emitter.Subscribe(ctx)
	defer cleanup()

	projectID := types.NewID()
	require.NoError(t, emitter.Emit(ctx, NewEvent(EventSectionStarted, projectID)))
	// Buffer full; this one is dropped rather than blocking.
	require.NoError(t, emitter.Emit(ctx, NewEvent(EventSectionCompleted, projectID)))

	assert.Equal(t, EventSectionStarted, (<-events).Type)
	select {
	case ev := <-events:
		t.Fatalf("expected no second event, got %s", ev.Type)
	default:
	}
}

// TestEventEmitter_Unsubscribe tests subscription cleanup
func TestEventEmitter_Unsubscribe(t *testing.T) {
	emitter := NewEventEmitter()
	defer emitter.Close()

	_, cleanup := emitter.Subscribe(context.Background())
	assert.Equal(t, 1, emitter.SubscriberCount())

	cleanup()
	assert.Equal(t, 0, emitter.SubscriberCount())

	// Double cleanup is safe.
	cleanup()
}

// TestEventEmitter_Close tests emitter shutdown
func TestEventEmitter_Close(t *testing.T) {
	emitter := NewEventEmitter()
	events, cleanup := emitter.Subscribe(context.Background())
	defer cleanup()

	require.NoError(t, emitter.Close())
	require.NoError(t, emitter.Close())

	_, open := <-events
	assert.False(t, open)

	assert.Error(t, emitter.Emit(context.Background(), NewEvent(EventProgress, types.NewID())))
}
