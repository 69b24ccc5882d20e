package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversMatchingEvents(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	all := bus.Subscribe(Filter{})
	onlyAccepted := bus.Subscribe(Filter{Types: []EventType{EventTaskAccepted}})

	bus.Emit(context.Background(), string(EventEnqueued), map[string]any{"messageId": "m-1"})
	bus.Emit(context.Background(), string(EventTaskAccepted), map[string]any{"monitoringId": "j-1"})

	first := <-all
	second := <-all
	assert.Equal(t, EventEnqueued, first.Type)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, EventTaskAccepted, second.Type)

	accepted := <-onlyAccepted
	assert.Equal(t, "j-1", accepted.Payload["monitoringId"])
	assert.Empty(t, onlyAccepted)
}

func TestBusDropsEventsForFullSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	sub := bus.Subscribe(Filter{})

	for i := 0; i < subscriberBuffer+5; i++ {
		require.NoError(t, bus.Publish(context.Background(), NewEvent(EventStatusUpdate, nil)))
	}

	assert.Len(t, sub, subscriberBuffer)
}

func TestBusCloseRejectsPublishAndClosesSubscribers(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	sub := bus.Subscribe(Filter{})
	require.NoError(t, bus.Close())

	_, open := <-sub
	assert.False(t, open)
	assert.Error(t, bus.Publish(context.Background(), NewEvent(EventCompleted, nil)))
}

func TestBusUnsubscribe(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	sub := bus.Subscribe(Filter{})
	bus.Unsubscribe(sub)

	_, open := <-sub
	assert.False(t, open)
}
