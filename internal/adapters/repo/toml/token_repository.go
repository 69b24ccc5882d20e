package toml

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bnema/agent-crew/internal/config"
	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/ports"
	"github.com/spf13/viper"
)

// TokenRepository stores one continuation token per session.
type TokenRepository struct {
	path string
	mu   *sync.RWMutex
	now  func() time.Time
}

var _ ports.ContinuationStore = (*TokenRepository)(nil)

func NewTokenRepository(cfg *viper.Viper) (*TokenRepository, error) {
	path, err := resolvePath(cfg, config.KeyTokensPath)
	if err != nil {
		return nil, err
	}

	return &TokenRepository{path: path, mu: lockForPath(path), now: time.Now}, nil
}

func (r *TokenRepository) GetToken(ctx context.Context, sessionName string) (string, error) {
	entry, err := r.find(ctx, sessionName)
	if err != nil {
		return "", err
	}
	return entry.Token, nil
}

func (r *TokenRepository) GetMetadata(ctx context.Context, sessionName string) (domain.TokenMetadata, error) {
	entry, err := r.find(ctx, sessionName)
	if err != nil {
		return domain.TokenMetadata{}, err
	}

	return domain.TokenMetadata{
		SessionName: entry.SessionName,
		TeamID:      entry.TeamID,
		MemberID:    entry.MemberID,
		Role:        domain.Role(entry.Role),
		UpdatedAt:   parseTime(entry.UpdatedAt),
	}, nil
}

// SetToken updates the token for a session and keeps its metadata.
func (r *TokenRepository) SetToken(ctx context.Context, sessionName string, token string) error {
	return r.upsert(ctx, domain.TokenMetadata{SessionName: sessionName}, token, false)
}

// Put stores a token together with the member it belongs to.
func (r *TokenRepository) Put(ctx context.Context, meta domain.TokenMetadata, token string) error {
	return r.upsert(ctx, meta, token, true)
}

func (r *TokenRepository) upsert(ctx context.Context, meta domain.TokenMetadata, token string, replaceMeta bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(meta.SessionName) == "" {
		return fmt.Errorf("%w: session name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: continuation token is required", domain.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := tokenSchema{
		SessionName: meta.SessionName,
		Token:       token,
		TeamID:      meta.TeamID,
		MemberID:    meta.MemberID,
		Role:        string(meta.Role),
		UpdatedAt:   formatTime(r.now()),
	}

	updated := false
	for i := range file.Tokens {
		if file.Tokens[i].SessionName != meta.SessionName {
			continue
		}
		if !replaceMeta {
			encoded.TeamID = file.Tokens[i].TeamID
			encoded.MemberID = file.Tokens[i].MemberID
			encoded.Role = file.Tokens[i].Role
		}
		file.Tokens[i] = encoded
		updated = true
		break
	}
	if !updated {
		file.Tokens = append(file.Tokens, encoded)
	}

	return writeTOMLFile(r.path, file)
}

func (r *TokenRepository) find(ctx context.Context, sessionName string) (tokenSchema, error) {
	if err := ctx.Err(); err != nil {
		return tokenSchema{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return tokenSchema{}, err
	}

	for _, entry := range file.Tokens {
		if entry.SessionName == sessionName && entry.Token != "" {
			return entry, nil
		}
	}

	return tokenSchema{}, domain.ErrTokenNotFound
}

func (r *TokenRepository) readSchema() (tokensFileSchema, error) {
	var file tokensFileSchema
	if _, err := readTOMLFile(r.path, &file); err != nil {
		return tokensFileSchema{}, err
	}
	if err := file.validateVersion(); err != nil {
		return tokensFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}
