package ports

import (
	"context"

	"github.com/bnema/agent-crew/internal/domain"
)

type SessionRegistrar interface {
	CreateSession(ctx context.Context, req domain.RegistrationRequest) (domain.RegistrationResult, error)
}
