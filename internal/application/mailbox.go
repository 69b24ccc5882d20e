package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/events"
	"github.com/bnema/agent-crew/internal/logging"
	"github.com/bnema/agent-crew/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultMailboxMaxQueue   = 100
	DefaultMailboxMaxHistory = 50
)

type MailboxOptions struct {
	MaxQueue     int
	MaxHistory   int
	PersistDelay time.Duration
	// Store is optional; without it the mailbox is purely in memory.
	Store  ports.MailboxSnapshotStore
	Events ports.EventPublisher
	Clock  ports.Clock
	Logger *zap.Logger
	NewID  func() string
}

// Mailbox serializes messages for a single consumer. At most one message is
// in flight; everything else waits in FIFO order.
type Mailbox struct {
	maxQueue     int
	maxHistory   int
	persistDelay time.Duration
	store        ports.MailboxSnapshotStore
	events       ports.EventPublisher
	clock        ports.Clock
	logger       *zap.Logger
	newID        func() string

	mu             sync.Mutex
	queue          []domain.QueuedMessage
	current        *domain.QueuedMessage
	history        []domain.QueuedMessage
	totalProcessed int
	totalFailed    int

	persistTimer   *time.Timer
	persistPending bool
	mutated        bool
	snapshotSeq    uint64

	writeMu    sync.Mutex
	writtenSeq uint64
}

func NewMailbox(opts MailboxOptions) *Mailbox {
	if opts.MaxQueue <= 0 {
		opts.MaxQueue = DefaultMailboxMaxQueue
	}
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = DefaultMailboxMaxHistory
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}
	if opts.Events == nil {
		opts.Events = noopPublisher{}
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	return &Mailbox{
		maxQueue:     opts.MaxQueue,
		maxHistory:   opts.MaxHistory,
		persistDelay: opts.PersistDelay,
		store:        opts.Store,
		events:       opts.Events,
		clock:        opts.Clock,
		logger:       logging.Component(opts.Logger, "mailbox"),
		newID:        opts.NewID,
	}
}

// Enqueue validates input and appends it to the tail of the pending list.
// It returns an error wrapping domain.ErrValidation or domain.ErrQueueFull.
func (m *Mailbox) Enqueue(ctx context.Context, input domain.EnqueueInput) (domain.QueuedMessage, error) {
	if err := input.Validate(); err != nil {
		return domain.QueuedMessage{}, err
	}

	m.mu.Lock()
	if len(m.queue) >= m.maxQueue {
		m.mu.Unlock()
		return domain.QueuedMessage{}, fmt.Errorf("%w: %d pending messages (max %d)", domain.ErrQueueFull, m.maxQueue, m.maxQueue)
	}

	msg := domain.QueuedMessage{
		ID:             m.newID(),
		Content:        input.Content,
		ConversationID: input.ConversationID,
		Source:         input.Source,
		SourceMetadata: input.SourceMetadata,
		Status:         domain.MessageStatusPending,
		EnqueuedAt:     m.clock.Now(),
	}
	m.queue = append(m.queue, msg)
	status := m.statusLocked()
	m.schedulePersistLocked()
	m.mu.Unlock()

	m.logger.Debug("message enqueued",
		zap.String("message_id", msg.ID),
		zap.String("conversation_id", msg.ConversationID),
		zap.String("source", string(msg.Source)))

	m.emitMessage(ctx, events.EventEnqueued, msg)
	m.emitStatus(ctx, status)

	return msg.Clone(), nil
}

// Dequeue moves the head of the pending list into the in-flight slot. It
// returns false when the queue is empty or a message is already in flight.
func (m *Mailbox) Dequeue(ctx context.Context) (domain.QueuedMessage, bool) {
	m.mu.Lock()
	if m.current != nil || len(m.queue) == 0 {
		m.mu.Unlock()
		return domain.QueuedMessage{}, false
	}

	msg := m.queue[0]
	m.queue = m.queue[1:]
	started := m.clock.Now()
	msg.Status = domain.MessageStatusProcessing
	msg.ProcessingStartedAt = &started
	m.current = &msg
	out := msg.Clone()
	status := m.statusLocked()
	m.schedulePersistLocked()
	m.mu.Unlock()

	m.emitMessage(ctx, events.EventProcessing, out)
	m.emitStatus(ctx, status)

	return out, true
}

// MarkCompleted files the in-flight message as completed. Ids that do not
// match the in-flight message are ignored.
func (m *Mailbox) MarkCompleted(ctx context.Context, id string, response string) bool {
	_, ok := m.finishCurrent(ctx, id, domain.MessageStatusCompleted, response, "")
	return ok
}

// MarkFailed files the in-flight message as failed. Ids that do not match
// the in-flight message are ignored.
func (m *Mailbox) MarkFailed(ctx context.Context, id string, errMsg string) bool {
	_, ok := m.finishCurrent(ctx, id, domain.MessageStatusFailed, "", errMsg)
	return ok
}

// ForceCancelCurrent cancels the in-flight message on behalf of the user.
func (m *Mailbox) ForceCancelCurrent(ctx context.Context) (domain.QueuedMessage, bool) {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return domain.QueuedMessage{}, false
	}
	id := m.current.ID
	m.mu.Unlock()

	return m.finishCurrent(ctx, id, domain.MessageStatusCancelled, "", domain.ForceCancelledError)
}

func (m *Mailbox) finishCurrent(ctx context.Context, id string, status domain.MessageStatus, response, errMsg string) (domain.QueuedMessage, bool) {
	m.mu.Lock()
	if m.current == nil || m.current.ID != id {
		m.mu.Unlock()
		m.logger.Debug("ignoring stale completion",
			zap.String("message_id", id),
			zap.String("status", string(status)))
		return domain.QueuedMessage{}, false
	}

	msg := *m.current
	completed := m.clock.Now()
	msg.Status = status
	msg.CompletedAt = &completed
	msg.Response = response
	msg.Error = errMsg
	m.current = nil

	switch status {
	case domain.MessageStatusCompleted:
		m.totalProcessed++
	case domain.MessageStatusFailed:
		m.totalFailed++
	}

	m.fileHistoryLocked(msg)
	out := msg.Clone()
	snapshot := m.statusLocked()
	m.schedulePersistLocked()
	m.mu.Unlock()

	var eventType events.EventType
	switch status {
	case domain.MessageStatusCompleted:
		eventType = events.EventCompleted
	case domain.MessageStatusFailed:
		eventType = events.EventFailed
		m.logger.Warn("message failed",
			zap.String("message_id", out.ID),
			zap.String("conversation_id", out.ConversationID),
			zap.String("error", errMsg))
	default:
		eventType = events.EventCancelled
	}

	m.emitMessage(ctx, eventType, out)
	m.emitStatus(ctx, snapshot)

	return out, true
}

// Cancel removes a pending message. The in-flight message is not affected;
// use ForceCancelCurrent for that.
func (m *Mailbox) Cancel(ctx context.Context, id string) bool {
	m.mu.Lock()
	index := m.indexLocked(id)
	if index < 0 {
		m.mu.Unlock()
		return false
	}

	msg := m.queue[index]
	m.queue = append(m.queue[:index], m.queue[index+1:]...)
	completed := m.clock.Now()
	msg.Status = domain.MessageStatusCancelled
	msg.CompletedAt = &completed
	m.fileHistoryLocked(msg)
	out := msg.Clone()
	status := m.statusLocked()
	m.schedulePersistLocked()
	m.mu.Unlock()

	m.emitMessage(ctx, events.EventCancelled, out)
	m.emitStatus(ctx, status)

	return true
}

// Requeue puts msg back at the front of the pending list with an
// incremented retry count. If msg is the in-flight message the slot is
// released.
func (m *Mailbox) Requeue(ctx context.Context, msg domain.QueuedMessage) domain.QueuedMessage {
	m.mu.Lock()
	if m.current != nil && m.current.ID == msg.ID {
		m.current = nil
	}
	if index := m.indexLocked(msg.ID); index >= 0 {
		m.queue = append(m.queue[:index], m.queue[index+1:]...)
	}

	requeued := msg.Clone()
	requeued.Status = domain.MessageStatusPending
	requeued.ProcessingStartedAt = nil
	requeued.CompletedAt = nil
	requeued.RetryCount++

	m.queue = append([]domain.QueuedMessage{requeued}, m.queue...)
	status := m.statusLocked()
	m.schedulePersistLocked()
	m.mu.Unlock()

	m.logger.Info("message requeued",
		zap.String("message_id", requeued.ID),
		zap.Int("retry_count", requeued.RetryCount))

	m.emitStatus(ctx, status)

	return requeued.Clone()
}

func (m *Mailbox) Status() domain.MailboxStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusLocked()
}

// Pending returns the pending messages in dispatch order.
func (m *Mailbox) Pending() []domain.QueuedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneMessages(m.queue)
}

func (m *Mailbox) Current() (domain.QueuedMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return domain.QueuedMessage{}, false
	}
	return m.current.Clone(), true
}

// History returns finished messages, newest first.
func (m *Mailbox) History() []domain.QueuedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneMessages(m.history)
}

// Load restores the persisted snapshot. A message that was in flight when
// the snapshot was taken comes back as the first pending entry. Messages
// from non-durable sources are dropped.
func (m *Mailbox) Load(ctx context.Context) error {
	if m.store == nil {
		return nil
	}

	snapshot, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			return nil
		}
		return fmt.Errorf("load mailbox snapshot: %w", err)
	}
	if snapshot.Version != domain.CurrentMailboxSnapshotVersion {
		m.logger.Warn("discarding mailbox snapshot with unknown version",
			zap.Int("version", snapshot.Version),
			zap.Int("supported", domain.CurrentMailboxSnapshotVersion))
		return nil
	}

	restored := make([]domain.QueuedMessage, 0, len(snapshot.Queue)+1)
	if snapshot.CurrentMessage != nil && snapshot.CurrentMessage.Source.Durable() {
		inflight := snapshot.CurrentMessage.Clone()
		inflight.Status = domain.MessageStatusPending
		inflight.ProcessingStartedAt = nil
		restored = append(restored, inflight)
	}
	for _, msg := range snapshot.Queue {
		if !msg.Source.Durable() {
			continue
		}
		msg.Status = domain.MessageStatusPending
		restored = append(restored, msg.Clone())
	}

	m.mu.Lock()
	m.queue = append(restored, m.queue...)
	m.history = cloneMessages(snapshot.History)
	if len(m.history) > m.maxHistory {
		m.history = m.history[:m.maxHistory]
	}
	m.totalProcessed = snapshot.TotalProcessed
	m.totalFailed = snapshot.TotalFailed
	pending := len(m.queue)
	m.mu.Unlock()

	m.logger.Info("mailbox restored",
		zap.Int("pending", pending),
		zap.Int("history", len(snapshot.History)),
		zap.Time("saved_at", snapshot.SavedAt))

	return nil
}

// FlushPersist writes the current state immediately and waits for the
// write to finish.
func (m *Mailbox) FlushPersist(ctx context.Context) error {
	if m.store == nil {
		return nil
	}

	m.mu.Lock()
	if m.persistTimer != nil {
		m.persistTimer.Stop()
	}
	m.persistPending = false
	snapshot, seq := m.snapshotLocked()
	m.mu.Unlock()

	return m.write(ctx, snapshot, seq)
}

// Close cancels any pending debounced write and flushes. A mailbox that
// was never mutated leaves the stored snapshot alone.
func (m *Mailbox) Close(ctx context.Context) error {
	m.mu.Lock()
	mutated := m.mutated
	m.mu.Unlock()

	if !mutated {
		return nil
	}
	return m.FlushPersist(ctx)
}

func (m *Mailbox) statusLocked() domain.MailboxStatus {
	status := domain.MailboxStatus{
		PendingCount:   len(m.queue),
		IsProcessing:   m.current != nil,
		TotalProcessed: m.totalProcessed,
		TotalFailed:    m.totalFailed,
	}
	if m.current != nil {
		status.CurrentMessageID = m.current.ID
	}
	return status
}

func (m *Mailbox) indexLocked(id string) int {
	for i, msg := range m.queue {
		if msg.ID == id {
			return i
		}
	}
	return -1
}

func (m *Mailbox) fileHistoryLocked(msg domain.QueuedMessage) {
	m.history = append([]domain.QueuedMessage{msg}, m.history...)
	if len(m.history) > m.maxHistory {
		m.history = m.history[:m.maxHistory]
	}
}

func (m *Mailbox) emitMessage(ctx context.Context, eventType events.EventType, msg domain.QueuedMessage) {
	m.events.Emit(ctx, string(eventType), map[string]any{
		"messageId":      msg.ID,
		"conversationId": msg.ConversationID,
		"source":         string(msg.Source),
		"status":         string(msg.Status),
		"retryCount":     msg.RetryCount,
		"message":        msg,
	})
}

func (m *Mailbox) emitStatus(ctx context.Context, status domain.MailboxStatus) {
	m.events.Emit(ctx, string(events.EventStatusUpdate), map[string]any{
		"pendingCount":     status.PendingCount,
		"isProcessing":     status.IsProcessing,
		"currentMessageId": status.CurrentMessageID,
		"totalProcessed":   status.TotalProcessed,
		"totalFailed":      status.TotalFailed,
	})
}

func cloneMessages(messages []domain.QueuedMessage) []domain.QueuedMessage {
	out := make([]domain.QueuedMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, msg.Clone())
	}
	return out
}

type noopPublisher struct{}

func (noopPublisher) Emit(context.Context, string, map[string]any) {}
