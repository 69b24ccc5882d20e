package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type recordedEvent struct {
	Type    string
	Payload map[string]any
	At      time.Time
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	// onEmit runs outside the lock after each event is recorded.
	onEmit func(recordedEvent)
}

func (p *recordingPublisher) Emit(_ context.Context, eventType string, payload map[string]any) {
	event := recordedEvent{Type: eventType, Payload: payload, At: time.Now()}

	p.mu.Lock()
	p.events = append(p.events, event)
	hook := p.onEmit
	p.mu.Unlock()

	if hook != nil {
		hook(event)
	}
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Type)
	}
	return out
}

func (p *recordingPublisher) OfType(eventType string) []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []recordedEvent
	for _, event := range p.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

type memorySnapshotStore struct {
	mu       sync.Mutex
	snapshot *domain.MailboxSnapshot
	saves    int
}

func (s *memorySnapshotStore) Load(context.Context) (domain.MailboxSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return domain.MailboxSnapshot{}, domain.ErrSnapshotNotFound
	}
	return *s.snapshot, nil
}

func (s *memorySnapshotStore) Save(_ context.Context, snapshot domain.MailboxSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &snapshot
	s.saves++
	return nil
}

func (s *memorySnapshotStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *memorySnapshotStore) Snapshot() (domain.MailboxSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return domain.MailboxSnapshot{}, false
	}
	return *s.snapshot, true
}

// stepClock advances by step on every reading.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

type fakePathProbe struct {
	mu    sync.Mutex
	paths map[string]bool
	err   error
}

func newFakePathProbe(paths ...string) *fakePathProbe {
	probe := &fakePathProbe{paths: make(map[string]bool)}
	for _, path := range paths {
		probe.paths[path] = true
	}
	return probe
}

func (p *fakePathProbe) Exists(_ context.Context, path string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return false, p.err
	}
	return p.paths[path], nil
}

func (p *fakePathProbe) Move(from, to string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.paths, from)
	p.paths[to] = true
}

func (p *fakePathProbe) SetError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}
