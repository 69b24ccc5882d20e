package ports

import (
	"context"

	"github.com/bnema/agent-crew/internal/domain"
)

type MailboxSnapshotStore interface {
	Load(ctx context.Context) (domain.MailboxSnapshot, error)
	Save(ctx context.Context, snapshot domain.MailboxSnapshot) error
}

type SuspensionRepository interface {
	List(ctx context.Context) ([]domain.SuspendedAgentInfo, error)
	ReplaceAll(ctx context.Context, agents []domain.SuspendedAgentInfo) error
}
