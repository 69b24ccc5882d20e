package ports

import "context"

type SessionControl interface {
	SessionExists(ctx context.Context, name string) (bool, error)
	KillSession(ctx context.Context, name string) error
	SendKey(ctx context.Context, name string, key string) error
	SendMessage(ctx context.Context, name string, text string) error
	ListSessions(ctx context.Context) ([]string, error)
}

// ExitMonitor watches sessions for unexpected exits.
type ExitMonitor interface {
	StopMonitoring(ctx context.Context, name string) error
}

type ActivityTracker interface {
	Touch(name string)
	Clear(name string)
}

type SessionCleaner interface {
	Cleanup(ctx context.Context, name string) error
}

// WorkspaceProvisioner hands out the scratch directory of a session,
// creating it when needed.
type WorkspaceProvisioner interface {
	Ensure(ctx context.Context, name string) (string, error)
}
