// Package workspace manages per-session scratch directories and probes the
// shared task filesystem.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/ports"
)

const scratchDirMode = 0o700

type Store struct {
	root string
	mu   sync.RWMutex
}

var (
	_ ports.SessionCleaner       = (*Store)(nil)
	_ ports.WorkspaceProvisioner = (*Store)(nil)
)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Ensure creates the scratch directory for session and returns its path.
func (s *Store) Ensure(ctx context.Context, session string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathForSession(session)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(path, scratchDirMode); err != nil {
		return "", fmt.Errorf("create workspace for %q: %w", session, err)
	}

	return path, nil
}

// Path returns the scratch directory for session without touching disk.
func (s *Store) Path(session string) (string, error) {
	return s.pathForSession(session)
}

// Cleanup removes the session's scratch directory. A missing directory is
// not an error.
func (s *Store) Cleanup(ctx context.Context, session string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForSession(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove workspace for %q: %w", session, err)
	}

	return nil
}

func (s *Store) pathForSession(session string) (string, error) {
	trimmed := strings.TrimSpace(session)
	if trimmed == "" {
		return "", fmt.Errorf("workspace session is empty: %w", domain.ErrValidation)
	}

	if strings.ContainsAny(trimmed, `/\`) || trimmed == "." || trimmed == ".." {
		return "", fmt.Errorf("invalid workspace session %q: %w", session, domain.ErrValidation)
	}

	return filepath.Join(s.root, trimmed), nil
}

// Probe answers path existence questions against the local filesystem.
type Probe struct{}

var _ ports.PathProbe = Probe{}

func (Probe) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %q: %w", path, err)
	}

	return true, nil
}
