package tmux

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bnema/agent-crew/internal/adapters/workspace"
	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var devRequest = domain.RegistrationRequest{
	SessionName: "crew-member-dev",
	Role:        "developer",
	TeamID:      "team-1",
	MemberID:    "dev",
}

func TestRegistrarResumesWithStoredToken(t *testing.T) {
	t.Parallel()

	tokens := mocks.NewMockContinuationStore(t)
	tokens.EXPECT().GetToken(mock.Anything, "crew-member-dev").Return("it's-42", nil)

	runner := &recordedRun{}
	registrar := &Registrar{
		run:          runner.run,
		agentCommand: "claude",
		resumeFlag:   "--resume",
		workdir:      "/work/repo",
		tokens:       tokens,
	}

	result, err := registrar.CreateSession(context.Background(), devRequest)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []string{
		"new-session", "-d", "-s", "crew-member-dev", "-c", "/work/repo",
		"-e", "CREW_TEAM_ID=team-1",
		"-e", "CREW_MEMBER_ID=dev",
		"-e", "CREW_ROLE=developer",
		`claude --resume 'it'\''s-42'`,
	}, runner.calls[0])
}

func TestRegistrarStartsFreshWithoutToken(t *testing.T) {
	t.Parallel()

	tokens := mocks.NewMockContinuationStore(t)
	tokens.EXPECT().GetToken(mock.Anything, "crew-member-dev").Return("", domain.ErrTokenNotFound)

	runner := &recordedRun{}
	registrar := &Registrar{run: runner.run, agentCommand: "claude", resumeFlag: "--resume", tokens: tokens}

	result, err := registrar.CreateSession(context.Background(), devRequest)
	require.NoError(t, err)
	assert.True(t, result.Success)
	calls := runner.calls[0]
	assert.Equal(t, "claude", calls[len(calls)-1])
	assert.NotContains(t, calls, "-c")
}

func TestRegistrarExportsSessionWorkspace(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	runner := &recordedRun{}
	registrar := &Registrar{
		run:          runner.run,
		agentCommand: "claude",
		workspaces:   workspace.NewStore(root),
	}

	result, err := registrar.CreateSession(context.Background(), devRequest)
	require.NoError(t, err)
	assert.True(t, result.Success)

	dir := filepath.Join(root, "crew-member-dev")
	assert.DirExists(t, dir)
	calls := runner.calls[0]
	assert.Contains(t, calls, "CREW_WORKSPACE="+dir)
	assert.Equal(t, "claude", calls[len(calls)-1])
}

func TestRegistrarRefusesUnsafeWorkspaceName(t *testing.T) {
	t.Parallel()

	runner := &recordedRun{}
	registrar := &Registrar{
		run:          runner.run,
		agentCommand: "claude",
		workspaces:   workspace.NewStore(t.TempDir()),
	}

	req := devRequest
	req.SessionName = ".."
	result, err := registrar.CreateSession(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "prepare workspace")
	assert.Empty(t, runner.calls)
}

func TestRegistrarReportsTmuxRefusal(t *testing.T) {
	t.Parallel()

	runner := &recordedRun{reply: func([]string) (string, string, error) {
		return "", "duplicate session: crew-member-dev", errors.New("exit status 1")
	}}
	registrar := &Registrar{run: runner.run, agentCommand: "claude"}

	result, err := registrar.CreateSession(context.Background(), devRequest)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "duplicate session: crew-member-dev", result.Error)
}

func TestRegistrarSurfacesMissingTmux(t *testing.T) {
	t.Parallel()

	runner := &recordedRun{reply: func([]string) (string, string, error) {
		return "", "", ErrUnavailable
	}}
	registrar := &Registrar{run: runner.run, agentCommand: "claude"}

	_, err := registrar.CreateSession(context.Background(), devRequest)
	assert.ErrorIs(t, err, ErrUnavailable)
}
