package domain

import (
	"fmt"
	"maps"
	"strings"
	"time"
)

type MessageStatus string

const (
	MessageStatusPending    MessageStatus = "pending"
	MessageStatusProcessing MessageStatus = "processing"
	MessageStatusCompleted  MessageStatus = "completed"
	MessageStatusFailed     MessageStatus = "failed"
	MessageStatusCancelled  MessageStatus = "cancelled"
)

func (s MessageStatus) Terminal() bool {
	switch s {
	case MessageStatusCompleted, MessageStatusFailed, MessageStatusCancelled:
		return true
	default:
		return false
	}
}

type MessageSource string

const (
	MessageSourceWebChat     MessageSource = "web_chat"
	MessageSourceSlack       MessageSource = "slack"
	MessageSourceSystemEvent MessageSource = "system_event"
)

func (s MessageSource) Valid() bool {
	switch s {
	case MessageSourceWebChat, MessageSourceSlack, MessageSourceSystemEvent:
		return true
	default:
		return false
	}
}

// Durable reports whether messages from this source survive a restart.
// System events are regenerated by their producers and are not replayed.
func (s MessageSource) Durable() bool {
	return s != MessageSourceSystemEvent
}

// ForceCancelledError marks an in-flight message cancelled by the user.
const ForceCancelledError = "cancelled by user"

type QueuedMessage struct {
	ID                  string
	Content             string
	ConversationID      string
	Source              MessageSource
	SourceMetadata      map[string]any
	Status              MessageStatus
	EnqueuedAt          time.Time
	ProcessingStartedAt *time.Time
	CompletedAt         *time.Time
	Response            string
	Error               string
	RetryCount          int
}

func (m QueuedMessage) Clone() QueuedMessage {
	clone := m
	if m.SourceMetadata != nil {
		clone.SourceMetadata = maps.Clone(m.SourceMetadata)
	}
	if m.ProcessingStartedAt != nil {
		started := *m.ProcessingStartedAt
		clone.ProcessingStartedAt = &started
	}
	if m.CompletedAt != nil {
		completed := *m.CompletedAt
		clone.CompletedAt = &completed
	}
	return clone
}

type EnqueueInput struct {
	Content        string
	ConversationID string
	Source         MessageSource
	SourceMetadata map[string]any
}

func (in EnqueueInput) Validate() error {
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	if strings.TrimSpace(in.ConversationID) == "" {
		return fmt.Errorf("%w: conversation id is required", ErrValidation)
	}
	if !in.Source.Valid() {
		return fmt.Errorf("%w: unsupported source %q", ErrValidation, in.Source)
	}

	return nil
}

type MailboxStatus struct {
	PendingCount     int
	IsProcessing     bool
	CurrentMessageID string
	TotalProcessed   int
	TotalFailed      int
}

// CurrentMailboxSnapshotVersion is the only snapshot version the mailbox restores.
const CurrentMailboxSnapshotVersion = 1

type MailboxSnapshot struct {
	Version        int
	SavedAt        time.Time
	Queue          []QueuedMessage
	CurrentMessage *QueuedMessage
	History        []QueuedMessage
	TotalProcessed int
	TotalFailed    int
}
