// Package tmux drives agent sessions through the tmux command line.
package tmux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/ports"
)

var ErrUnavailable = errors.New("tmux command unavailable")

type runFunc func(ctx context.Context, args ...string) (stdout string, stderr string, err error)

type Control struct {
	run runFunc
}

var (
	_ ports.SessionControl = (*Control)(nil)
	_ ports.ExitMonitor    = (*Control)(nil)
)

// NewControl returns a Control that runs binary, "tmux" when empty.
func NewControl(binary string) *Control {
	return &Control{run: commandRunner(binary)}
}

func (c *Control) SessionExists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, stderr, err := c.run(ctx, "has-session", "-t", exactTarget(name))
	if err == nil {
		return true, nil
	}
	if isMissing(stderr) {
		return false, nil
	}
	return false, formatError("has-session", name, err, stderr)
}

func (c *Control) KillSession(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := c.run(ctx, "kill-session", "-t", exactTarget(name))
	if err != nil {
		if isMissing(stderr) {
			return fmt.Errorf("kill %q: %w", name, domain.ErrSessionNotFound)
		}
		return formatError("kill-session", name, err, stderr)
	}
	return nil
}

// SendKey sends a single tmux key name such as Escape or C-c.
func (c *Control) SendKey(ctx context.Context, name string, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := c.run(ctx, "send-keys", "-t", name, key)
	if err != nil {
		return formatError("send-keys", name, err, stderr)
	}
	return nil
}

// SendMessage types text literally into the session and submits it.
func (c *Control) SendMessage(ctx context.Context, name string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, stderr, err := c.run(ctx, "send-keys", "-t", name, "-l", "--", text); err != nil {
		return formatError("send-keys", name, err, stderr)
	}
	if _, stderr, err := c.run(ctx, "send-keys", "-t", name, "Enter"); err != nil {
		return formatError("send-keys", name, err, stderr)
	}
	return nil
}

func (c *Control) ListSessions(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stdout, stderr, err := c.run(ctx, "list-sessions", "-F", "#{session_name}")
	if err != nil {
		if isNoServer(stderr) {
			return []string{}, nil
		}
		return nil, formatError("list-sessions", "", err, stderr)
	}

	var sessions []string
	for _, line := range strings.Split(stdout, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			sessions = append(sessions, name)
		}
	}
	return sessions, nil
}

// StopMonitoring removes the pane-died hook that reports crashes, so a
// deliberate kill is not reported as one.
func (c *Control) StopMonitoring(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := c.run(ctx, "set-hook", "-u", "-t", exactTarget(name), "pane-died")
	if err != nil {
		if isMissing(stderr) {
			return nil
		}
		return formatError("set-hook", name, err, stderr)
	}
	return nil
}

func exactTarget(name string) string {
	return "=" + name
}

func isMissing(stderr string) bool {
	return strings.Contains(stderr, "can't find session") ||
		strings.Contains(stderr, "session not found") ||
		isNoServer(stderr)
}

func isNoServer(stderr string) bool {
	return strings.Contains(stderr, "no server running") ||
		strings.Contains(stderr, "error connecting to")
}

func commandRunner(binary string) runFunc {
	if strings.TrimSpace(binary) == "" {
		binary = "tmux"
	}

	return func(ctx context.Context, args ...string) (string, string, error) {
		path, err := exec.LookPath(binary)
		if err != nil {
			if errors.Is(err, exec.ErrNotFound) {
				return "", "", ErrUnavailable
			}
			return "", "", fmt.Errorf("locate tmux command: %w", err)
		}

		cmd := exec.CommandContext(ctx, path, args...)

		var stdout bytes.Buffer
		var stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		err = cmd.Run()
		return stdout.String(), strings.TrimSpace(stderr.String()), err
	}
}

func formatError(op string, session string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("tmux %s %q: %w", op, session, err)
	}

	return fmt.Errorf("tmux %s %q: %w: %s", op, session, err, stderr)
}
