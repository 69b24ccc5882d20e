// Package activity records when each session last received work.
package activity

import (
	"sync"
	"time"

	"github.com/bnema/agent-crew/internal/ports"
)

type Tracker struct {
	clock ports.Clock

	mu   sync.RWMutex
	seen map[string]time.Time
}

var _ ports.ActivityTracker = (*Tracker)(nil)

func NewTracker(clock ports.Clock) *Tracker {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Tracker{clock: clock, seen: make(map[string]time.Time)}
}

func (t *Tracker) Touch(name string) {
	if name == "" {
		return
	}

	now := t.clock.Now().UTC()

	t.mu.Lock()
	t.seen[name] = now
	t.mu.Unlock()
}

// LastActivity returns the last Touch time for name.
func (t *Tracker) LastActivity(name string) (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	at, ok := t.seen[name]
	return at, ok
}

func (t *Tracker) Clear(name string) {
	t.mu.Lock()
	delete(t.seen, name)
	t.mu.Unlock()
}
