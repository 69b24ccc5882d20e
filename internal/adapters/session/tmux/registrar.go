package tmux

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/ports"
)

type RegistrarOptions struct {
	Binary       string
	AgentCommand string
	ResumeFlag   string
	Workdir      string
	Tokens       ports.ContinuationStore
	// Workspaces, when set, provisions a scratch directory exported to the
	// session as CREW_WORKSPACE.
	Workspaces ports.WorkspaceProvisioner
}

// Registrar starts agent sessions, resuming from a stored continuation
// token when one exists.
type Registrar struct {
	run          runFunc
	agentCommand string
	resumeFlag   string
	workdir      string
	tokens       ports.ContinuationStore
	workspaces   ports.WorkspaceProvisioner
}

var _ ports.SessionRegistrar = (*Registrar)(nil)

func NewRegistrar(opts RegistrarOptions) *Registrar {
	return &Registrar{
		run:          commandRunner(opts.Binary),
		agentCommand: opts.AgentCommand,
		resumeFlag:   opts.ResumeFlag,
		workdir:      opts.Workdir,
		tokens:       opts.Tokens,
		workspaces:   opts.Workspaces,
	}
}

// CreateSession reports tmux refusals in the result; only failures to run
// tmux at all or to read the token store are returned as errors.
func (r *Registrar) CreateSession(ctx context.Context, req domain.RegistrationRequest) (domain.RegistrationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.RegistrationResult{}, err
	}
	if strings.TrimSpace(req.SessionName) == "" {
		return domain.RegistrationResult{Success: false, Error: "session name is required"}, nil
	}
	if strings.TrimSpace(r.agentCommand) == "" {
		return domain.RegistrationResult{Success: false, Error: "agent command is not configured"}, nil
	}

	command, err := r.command(ctx, req.SessionName)
	if err != nil {
		return domain.RegistrationResult{}, err
	}

	args := []string{"new-session", "-d", "-s", req.SessionName}
	if r.workdir != "" {
		args = append(args, "-c", r.workdir)
	}
	args = append(args,
		"-e", "CREW_TEAM_ID="+req.TeamID,
		"-e", "CREW_MEMBER_ID="+req.MemberID,
		"-e", "CREW_ROLE="+string(req.Role),
	)
	if r.workspaces != nil {
		dir, err := r.workspaces.Ensure(ctx, req.SessionName)
		if err != nil {
			return domain.RegistrationResult{Success: false, Error: fmt.Sprintf("prepare workspace: %v", err)}, nil
		}
		args = append(args, "-e", "CREW_WORKSPACE="+dir)
	}
	args = append(args, command)

	_, stderr, err := r.run(ctx, args...)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return domain.RegistrationResult{}, err
		}
		message := stderr
		if message == "" {
			message = err.Error()
		}
		return domain.RegistrationResult{Success: false, Error: message}, nil
	}

	return domain.RegistrationResult{Success: true}, nil
}

func (r *Registrar) command(ctx context.Context, sessionName string) (string, error) {
	if r.tokens == nil || r.resumeFlag == "" {
		return r.agentCommand, nil
	}

	token, err := r.tokens.GetToken(ctx, sessionName)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return r.agentCommand, nil
		}
		return "", fmt.Errorf("read continuation token: %w", err)
	}
	if strings.TrimSpace(token) == "" {
		return r.agentCommand, nil
	}

	return r.agentCommand + " " + r.resumeFlag + " " + shellQuote(token), nil
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
