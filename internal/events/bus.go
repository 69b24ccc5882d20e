package events

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bnema/agent-crew/internal/ports"
	"github.com/google/uuid"
)

const subscriberBuffer = 100

// Bus manages event subscription and delivery
type Bus struct {
	mu          sync.RWMutex
	subscribers map[chan *Event]Filter
	closed      atomic.Bool
}

var _ ports.EventPublisher = (*Bus)(nil)

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[chan *Event]Filter),
	}
}

// Subscribe returns a channel receiving every event matching filter.
func (b *Bus) Subscribe(filter Filter) <-chan *Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan *Event, subscriberBuffer)
	if b.closed.Load() {
		close(ch)
		return ch
	}
	b.subscribers[ch] = filter
	return ch
}

// Unsubscribe removes and closes a subscription channel
func (b *Bus) Unsubscribe(sub <-chan *Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subscribers {
		if ch == sub {
			delete(b.subscribers, ch)
			close(ch)
			return
		}
	}
}

// Publish emits an event to all matching subscribers. Slow subscribers
// with a full buffer miss the event instead of blocking the publisher.
func (b *Bus) Publish(ctx context.Context, event *Event) error {
	if b.closed.Load() {
		return fmt.Errorf("event bus is closed")
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch, filter := range b.subscribers {
		if !filter.Matches(event) {
			continue
		}
		select {
		case ch <- event:
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}

// Emit publishes a typed event and drops delivery errors.
func (b *Bus) Emit(ctx context.Context, eventType string, payload map[string]any) {
	_ = b.Publish(ctx, NewEvent(EventType(eventType), payload))
}

// Close shuts down the bus and closes every subscriber channel
func (b *Bus) Close() error {
	b.closed.Store(true)

	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, ch)
	}

	return nil
}
