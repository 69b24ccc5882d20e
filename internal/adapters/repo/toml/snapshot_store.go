package toml

import (
	"context"
	"sync"

	"github.com/bnema/agent-crew/internal/config"
	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/ports"
	"github.com/spf13/viper"
)

type SnapshotStore struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.MailboxSnapshotStore = (*SnapshotStore)(nil)

func NewSnapshotStore(cfg *viper.Viper) (*SnapshotStore, error) {
	path, err := resolvePath(cfg, config.KeyMailboxPath)
	if err != nil {
		return nil, err
	}

	return &SnapshotStore{path: path, mu: lockForPath(path)}, nil
}

func (s *SnapshotStore) Load(ctx context.Context) (domain.MailboxSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.MailboxSnapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var file mailboxFileSchema
	found, err := readTOMLFile(s.path, &file)
	if err != nil {
		return domain.MailboxSnapshot{}, err
	}
	if !found {
		return domain.MailboxSnapshot{}, domain.ErrSnapshotNotFound
	}

	snapshot := domain.MailboxSnapshot{
		Version:        file.Version,
		SavedAt:        parseTime(file.SavedAt),
		Queue:          fromMessageSchemas(file.Queue),
		History:        fromMessageSchemas(file.History),
		TotalProcessed: file.TotalProcessed,
		TotalFailed:    file.TotalFailed,
	}
	if file.CurrentMessage != nil {
		current := fromMessageSchema(*file.CurrentMessage)
		snapshot.CurrentMessage = &current
	}

	return snapshot, nil
}

func (s *SnapshotStore) Save(ctx context.Context, snapshot domain.MailboxSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := mailboxFileSchema{
		Version:        snapshot.Version,
		SavedAt:        formatTime(snapshot.SavedAt),
		TotalProcessed: snapshot.TotalProcessed,
		TotalFailed:    snapshot.TotalFailed,
		Queue:          toMessageSchemas(snapshot.Queue),
		History:        toMessageSchemas(snapshot.History),
	}
	if snapshot.CurrentMessage != nil {
		current := toMessageSchema(*snapshot.CurrentMessage)
		file.CurrentMessage = &current
	}

	return writeTOMLFile(s.path, file)
}

func toMessageSchemas(messages []domain.QueuedMessage) []messageSchema {
	out := make([]messageSchema, 0, len(messages))
	for _, msg := range messages {
		out = append(out, toMessageSchema(msg))
	}
	return out
}

func fromMessageSchemas(messages []messageSchema) []domain.QueuedMessage {
	out := make([]domain.QueuedMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, fromMessageSchema(msg))
	}
	return out
}

func toMessageSchema(msg domain.QueuedMessage) messageSchema {
	return messageSchema{
		ID:                  msg.ID,
		Content:             msg.Content,
		ConversationID:      msg.ConversationID,
		Source:              string(msg.Source),
		SourceMetadata:      msg.SourceMetadata,
		Status:              string(msg.Status),
		EnqueuedAt:          formatTime(msg.EnqueuedAt),
		ProcessingStartedAt: formatTimePtr(msg.ProcessingStartedAt),
		CompletedAt:         formatTimePtr(msg.CompletedAt),
		Response:            msg.Response,
		Error:               msg.Error,
		RetryCount:          msg.RetryCount,
	}
}

func fromMessageSchema(msg messageSchema) domain.QueuedMessage {
	return domain.QueuedMessage{
		ID:                  msg.ID,
		Content:             msg.Content,
		ConversationID:      msg.ConversationID,
		Source:              domain.MessageSource(msg.Source),
		SourceMetadata:      msg.SourceMetadata,
		Status:              domain.MessageStatus(msg.Status),
		EnqueuedAt:          parseTime(msg.EnqueuedAt),
		ProcessingStartedAt: parseTimePtr(msg.ProcessingStartedAt),
		CompletedAt:         parseTimePtr(msg.CompletedAt),
		Response:            msg.Response,
		Error:               msg.Error,
		RetryCount:          msg.RetryCount,
	}
}
