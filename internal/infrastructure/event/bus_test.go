package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func newEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Test", uuid.New())
	return &e
}

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers events to subscribed handlers", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"ThingHappened"}}
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newEvent("ThingHappened")))
		require.NoError(t, bus.Publish(ctx, newEvent("SomethingElse")))

		require.Len(t, handler.received, 1)
		assert.Equal(t, "ThingHappened", handler.received[0].EventType())
	})

	t.Run("handler errors do not fail publishing", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{types: []string{"ThingHappened"}, err: errors.New("boom")}
		healthy := &recordingHandler{types: []string{"ThingHappened"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newEvent("ThingHappened")))
		assert.Len(t, healthy.received, 1)
	})

	t.Run("handler panics are contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{types: []string{"ThingHappened"}, panics: true}
		healthy := &recordingHandler{types: []string{"ThingHappened"}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newEvent("ThingHappened")))
		assert.Len(t, healthy.received, 1)
	})

	t.Run("explicit subscription types override handler types", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		handler := &recordingHandler{types: []string{"Ignored"}}
		bus.Subscribe(handler, "Explicit")

		require.NoError(t, bus.Publish(ctx, newEvent("Explicit")))
		assert.Len(t, handler.received, 1)
	})
}
