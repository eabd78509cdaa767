package eventbus

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/redjoy12/MTGA-deck-builder/pkg/channels/gochannel"
	"github.com/redjoy12/MTGA-deck-builder/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NewSlogLogger(slog.Default()))
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)

	t.Cleanup(func() {
		if err := bus.Close(); err != nil {
			t.Logf("Failed to close event bus: %v", err)
		}
	})

	return bus
}

func TestPublishAndHandleRoundTrip(t *testing.T) {
	bus := newTestBus(t)

	received := make(chan *events.BuildStarted, 1)

	err := bus.Handle(events.BuildStartedEvent, func(_ context.Context, event any) error {
		started, ok := event.(*events.BuildStarted)
		require.True(t, ok)

		received <- started

		return nil
	})
	require.NoError(t, err)
	require.NoError(t, bus.Subscribe(t.Context()))

	started := events.BuildStarted{
		BaseEvent: events.NewBaseEvent(events.BuildStartedEvent, "build-1"),
		Status:    events.StatusStarted,
	}

	require.NoError(t, bus.Publish(t.Context(), "build-1", started))

	select {
	case event := <-received:
		assert.Equal(t, "build-1", event.BuildID)
		assert.Equal(t, events.StatusStarted, event.Status)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestUnhandledEventTypesAreAcked(t *testing.T) {
	bus := newTestBus(t)

	received := make(chan *events.BuildCompleted, 1)

	err := bus.Handle(events.BuildCompletedEvent, func(_ context.Context, event any) error {
		completed, ok := event.(*events.BuildCompleted)
		require.True(t, ok)

		received <- completed

		return nil
	})
	require.NoError(t, err)
	require.NoError(t, bus.Subscribe(t.Context()))

	// No handler is registered for this type; it must not block the stream.
	started := events.BuildStarted{
		BaseEvent: events.NewBaseEvent(events.BuildStartedEvent, "build-1"),
		Status:    events.StatusStarted,
	}
	require.NoError(t, bus.Publish(t.Context(), "build-1", started))

	completed := events.BuildCompleted{
		BaseEvent: events.NewBaseEvent(events.BuildCompletedEvent, "build-1"),
		Status:    events.StatusCompleted,
		DeckID:    "deck-1",
	}
	require.NoError(t, bus.Publish(t.Context(), "build-1", completed))

	select {
	case event := <-received:
		assert.Equal(t, "deck-1", event.DeckID)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestGenerateIDIsUnique(t *testing.T) {
	bus := newTestBus(t)

	first := bus.GenerateID()
	second := bus.GenerateID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
