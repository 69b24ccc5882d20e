package toml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/agent-crew/internal/config"
	"github.com/bnema/agent-crew/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viperWith(key, path string) *viper.Viper {
	cfg := viper.New()
	cfg.Set(key, path)
	return cfg
}

func TestTokenRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "continuation.toml")
	repo, err := NewTokenRepository(viperWith(config.KeyTokensPath, path))
	require.NoError(t, err)
	repo.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	_, err = repo.GetToken(ctx, "crew-member-dev")
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)

	require.NoError(t, repo.Put(ctx, domain.TokenMetadata{
		SessionName: "crew-member-dev",
		TeamID:      "team-1",
		MemberID:    "dev",
		Role:        "developer",
	}, "tok-1"))
	require.NoError(t, repo.SetToken(ctx, "crew-member-dev", "tok-2"))

	token, err := repo.GetToken(ctx, "crew-member-dev")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)

	meta, err := repo.GetMetadata(ctx, "crew-member-dev")
	require.NoError(t, err)
	assert.Equal(t, domain.TokenMetadata{
		SessionName: "crew-member-dev",
		TeamID:      "team-1",
		MemberID:    "dev",
		Role:        "developer",
		UpdatedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}, meta)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(stateFileMode), info.Mode().Perm())
}

func TestTokenRepositoryRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	repo, err := NewTokenRepository(viperWith(config.KeyTokensPath, filepath.Join(t.TempDir(), "continuation.toml")))
	require.NoError(t, err)

	assert.ErrorIs(t, repo.SetToken(context.Background(), "crew-member-dev", " "), domain.ErrValidation)
}

func TestTokenRepositoryRejectsNewerSchema(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "continuation.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 9\n"), 0o600))

	repo, err := NewTokenRepository(viperWith(config.KeyTokensPath, path))
	require.NoError(t, err)

	_, err = repo.GetToken(context.Background(), "crew-member-dev")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported continuation schema version 9")
}

func TestTokenRepositoryConcurrentWritesKeepEveryEntry(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "continuation.toml")
	repo, err := NewTokenRepository(viperWith(config.KeyTokensPath, path))
	require.NoError(t, err)

	sessions := []string{"agent-1", "agent-2", "agent-3", "agent-4", "agent-5"}
	var wg sync.WaitGroup
	for _, session := range sessions {
		wg.Add(1)
		go func(session string) {
			defer wg.Done()
			assert.NoError(t, repo.SetToken(context.Background(), session, "tok-"+session))
		}(session)
	}
	wg.Wait()

	for _, session := range sessions {
		token, err := repo.GetToken(context.Background(), session)
		require.NoError(t, err)
		assert.Equal(t, "tok-"+session, token)
	}
}

func TestNewRepositoriesRequireConfiguredPath(t *testing.T) {
	t.Parallel()

	_, err := NewTokenRepository(viper.New())
	assert.ErrorContains(t, err, config.KeyTokensPath)
	_, err = NewSuspensionRepository(nil)
	assert.ErrorContains(t, err, config.KeySuspendedPath)
	_, err = NewSnapshotStore(viper.New())
	assert.ErrorContains(t, err, config.KeyMailboxPath)
}

func TestSuspensionRepositoryReplaceAll(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "suspended.toml")
	repo, err := NewSuspensionRepository(viperWith(config.KeySuspendedPath, path))
	require.NoError(t, err)
	ctx := context.Background()

	agents, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, agents)

	suspendedAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	want := []domain.SuspendedAgentInfo{
		{SessionName: "crew-member-dev", TeamID: "team-1", MemberID: "dev", Role: "developer", ContinuationToken: "tok-1", SuspendedAt: suspendedAt},
		{SessionName: "crew-member-qa", TeamID: "team-1", MemberID: "qa", Role: "qa", SuspendedAt: suspendedAt.Add(time.Minute)},
	}
	require.NoError(t, repo.ReplaceAll(ctx, want))

	got, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, repo.ReplaceAll(ctx, nil))
	got, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mailbox.toml")
	store, err := NewSnapshotStore(viperWith(config.KeyMailboxPath, path))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	enqueued := time.Date(2026, 3, 1, 9, 0, 0, 123000000, time.UTC)
	started := enqueued.Add(time.Second)
	completed := started.Add(time.Second)
	snapshot := domain.MailboxSnapshot{
		Version: domain.CurrentMailboxSnapshotVersion,
		SavedAt: completed,
		Queue: []domain.QueuedMessage{{
			ID: "msg-2", Content: "second", ConversationID: "conv-1", Source: domain.MessageSourceSlack,
			SourceMetadata: map[string]any{"channel": "C42"},
			Status:         domain.MessageStatusPending, EnqueuedAt: enqueued, RetryCount: 2,
		}},
		CurrentMessage: &domain.QueuedMessage{
			ID: "msg-1", Content: "first", ConversationID: "conv-1", Source: domain.MessageSourceWebChat,
			Status: domain.MessageStatusProcessing, EnqueuedAt: enqueued, ProcessingStartedAt: &started,
		},
		History: []domain.QueuedMessage{{
			ID: "msg-0", Content: "zero", ConversationID: "conv-0", Source: domain.MessageSourceWebChat,
			Status: domain.MessageStatusFailed, EnqueuedAt: enqueued, CompletedAt: &completed, Error: "boom",
		}},
		TotalProcessed: 4,
		TotalFailed:    1,
	}

	require.NoError(t, store.Save(ctx, snapshot))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "version = 1"))
}

func TestSnapshotStorePassesUnknownVersionThrough(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "mailbox.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 7\ntotal_processed = 3\n"), 0o600))

	store, err := NewSnapshotStore(viperWith(config.KeyMailboxPath, path))
	require.NoError(t, err)

	snapshot, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, snapshot.Version)
	assert.Nil(t, snapshot.CurrentMessage)
}
