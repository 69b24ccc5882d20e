package ports

import (
	"context"

	"github.com/bnema/agent-crew/internal/domain"
)

type StatusBroadcaster interface {
	UpdateAgentStatus(ctx context.Context, sessionName string, status domain.AgentStatus) error
	BroadcastStatus(ctx context.Context, update domain.StatusBroadcast) error
}

type MemberDirectory interface {
	FindMemberBySession(ctx context.Context, sessionName string) (domain.Member, error)
}
