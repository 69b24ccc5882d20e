package ports

import (
	"context"

	"github.com/bnema/agent-crew/internal/domain"
)

type ContinuationStore interface {
	GetToken(ctx context.Context, sessionName string) (string, error)
	SetToken(ctx context.Context, sessionName string, token string) error
	GetMetadata(ctx context.Context, sessionName string) (domain.TokenMetadata, error)
}
