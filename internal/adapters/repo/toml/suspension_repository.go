package toml

import (
	"context"
	"sync"

	"github.com/bnema/agent-crew/internal/config"
	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/ports"
	"github.com/spf13/viper"
)

// SuspensionRepository persists the set of suspended agents so it
// survives restarts.
type SuspensionRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.SuspensionRepository = (*SuspensionRepository)(nil)

func NewSuspensionRepository(cfg *viper.Viper) (*SuspensionRepository, error) {
	path, err := resolvePath(cfg, config.KeySuspendedPath)
	if err != nil {
		return nil, err
	}

	return &SuspensionRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *SuspensionRepository) List(ctx context.Context) ([]domain.SuspendedAgentInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var file suspendedFileSchema
	if _, err := readTOMLFile(r.path, &file); err != nil {
		return nil, err
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}

	agents := make([]domain.SuspendedAgentInfo, 0, len(file.Agents))
	for _, entry := range file.Agents {
		agents = append(agents, domain.SuspendedAgentInfo{
			SessionName:       entry.SessionName,
			TeamID:            entry.TeamID,
			MemberID:          entry.MemberID,
			Role:              domain.Role(entry.Role),
			ContinuationToken: entry.ContinuationToken,
			SuspendedAt:       parseTime(entry.SuspendedAt),
		})
	}

	return agents, nil
}

func (r *SuspensionRepository) ReplaceAll(ctx context.Context, agents []domain.SuspendedAgentInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := suspendedFileSchema{Agents: make([]suspendedAgentSchema, 0, len(agents))}
	file.applyDefaults()
	for _, info := range agents {
		file.Agents = append(file.Agents, suspendedAgentSchema{
			SessionName:       info.SessionName,
			TeamID:            info.TeamID,
			MemberID:          info.MemberID,
			Role:              string(info.Role),
			ContinuationToken: info.ContinuationToken,
			SuspendedAt:       formatTime(info.SuspendedAt),
		})
	}

	return writeTOMLFile(r.path, file)
}
