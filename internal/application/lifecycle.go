package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/logging"
	"github.com/bnema/agent-crew/internal/ports"
	"go.uber.org/zap"
)

const (
	DefaultRehydrateTimeout = 60 * time.Second
	DefaultRehydratePoll    = 2 * time.Second
)

type CoordinatorOptions struct {
	ExemptRoles      []string
	RehydrateTimeout time.Duration
	RehydratePoll    time.Duration

	Sessions  ports.SessionControl
	Exits     ports.ExitMonitor
	Activity  ports.ActivityTracker
	Cleaner   ports.SessionCleaner
	Status    ports.StatusBroadcaster
	Members   ports.MemberDirectory
	Tokens    ports.ContinuationStore
	Registrar ports.SessionRegistrar
	// Suspensions persists the suspended set; optional.
	Suspensions ports.SuspensionRepository

	Clock  ports.Clock
	Logger *zap.Logger
}

// Coordinator moves agents between active, suspended and starting. The
// suspended set records which agents are logically suspended; a separate
// in-flight set guards rehydrate attempts.
type Coordinator struct {
	exempt           domain.RoleSet
	rehydrateTimeout time.Duration
	rehydratePoll    time.Duration

	sessions    ports.SessionControl
	exits       ports.ExitMonitor
	activity    ports.ActivityTracker
	cleaner     ports.SessionCleaner
	status      ports.StatusBroadcaster
	members     ports.MemberDirectory
	tokens      ports.ContinuationStore
	registrar   ports.SessionRegistrar
	suspensions ports.SuspensionRepository
	clock       ports.Clock
	logger      *zap.Logger

	mu         sync.Mutex
	suspended  map[string]domain.SuspendedAgentInfo
	rehydrates map[string]struct{}

	persistMu sync.Mutex
}

func NewCoordinator(opts CoordinatorOptions) *Coordinator {
	if opts.RehydrateTimeout <= 0 {
		opts.RehydrateTimeout = DefaultRehydrateTimeout
	}
	if opts.RehydratePoll <= 0 {
		opts.RehydratePoll = DefaultRehydratePoll
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}

	return &Coordinator{
		exempt:           domain.NewRoleSet(opts.ExemptRoles...),
		rehydrateTimeout: opts.RehydrateTimeout,
		rehydratePoll:    opts.RehydratePoll,
		sessions:         opts.Sessions,
		exits:            opts.Exits,
		activity:         opts.Activity,
		cleaner:          opts.Cleaner,
		status:           opts.Status,
		members:          opts.Members,
		tokens:           opts.Tokens,
		registrar:        opts.Registrar,
		suspensions:      opts.Suspensions,
		clock:            opts.Clock,
		logger:           logging.Component(opts.Logger, "lifecycle"),
		suspended:        make(map[string]domain.SuspendedAgentInfo),
		rehydrates:       make(map[string]struct{}),
	}
}

// Suspend stops an active agent while keeping its continuation token. It
// returns false for exempt roles, sessions already suspended and any
// failed step, in which case the suspended entry is rolled back.
func (c *Coordinator) Suspend(ctx context.Context, ref domain.AgentRef) bool {
	logger := c.logger.With(zap.String("session", ref.SessionName))

	if err := ref.Validate(); err != nil {
		logger.Warn("suspend rejected", zap.Error(err))
		return false
	}
	if c.exempt.Contains(ref.Role) {
		logger.Debug("suspend skipped for exempt role", zap.String("role", string(ref.Role)))
		return false
	}
	from := ref.Status
	if from == "" {
		from = domain.AgentStatusActive
	}
	if !from.CanTransition(domain.AgentStatusSuspended) {
		logger.Warn("suspend rejected", zap.String("status", string(from)))
		return false
	}

	info := domain.SuspendedAgentInfo{
		SessionName: ref.SessionName,
		TeamID:      ref.TeamID,
		MemberID:    ref.MemberID,
		Role:        ref.Role,
		SuspendedAt: c.clock.Now(),
	}

	c.mu.Lock()
	if _, exists := c.suspended[ref.SessionName]; exists {
		c.mu.Unlock()
		logger.Debug("session already suspended")
		return false
	}
	c.suspended[ref.SessionName] = info
	c.mu.Unlock()

	if token := c.fetchToken(ctx, ref.SessionName); token != "" {
		info.ContinuationToken = token
		c.mu.Lock()
		c.suspended[ref.SessionName] = info
		c.mu.Unlock()
	}

	if err := c.teardown(ctx, info, from); err != nil {
		c.mu.Lock()
		delete(c.suspended, ref.SessionName)
		c.mu.Unlock()
		logger.Error("suspend failed, rolled back", zap.Error(err))
		return false
	}

	c.persist(ctx)
	logger.Info("agent suspended", zap.Bool("has_token", info.HasContinuationToken()))

	return true
}

func (c *Coordinator) teardown(ctx context.Context, info domain.SuspendedAgentInfo, from domain.AgentStatus) error {
	name := info.SessionName

	if c.exits != nil {
		if err := c.exits.StopMonitoring(ctx, name); err != nil {
			return fmt.Errorf("stop exit monitoring: %w", err)
		}
	}

	exists, err := c.sessions.SessionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if exists {
		if err := c.sessions.KillSession(ctx, name); err != nil {
			return fmt.Errorf("kill session: %w", err)
		}
	}

	if c.activity != nil {
		c.activity.Clear(name)
	}

	if c.cleaner != nil {
		if err := c.cleaner.Cleanup(ctx, name); err != nil {
			c.logger.Warn("session cleanup failed", zap.String("session", name), zap.Error(err))
		}
	}

	return c.transition(ctx, info, from, domain.AgentStatusSuspended)
}

// Rehydrate recreates a suspended agent and waits for it to report active.
// A second call for a session whose rehydrate is still running returns true
// without doing any work.
func (c *Coordinator) Rehydrate(ctx context.Context, sessionName string) bool {
	logger := c.logger.With(zap.String("session", sessionName))

	c.mu.Lock()
	if _, running := c.rehydrates[sessionName]; running {
		c.mu.Unlock()
		logger.Debug("rehydrate already in flight")
		return true
	}
	info, ok := c.suspended[sessionName]
	if !ok {
		c.mu.Unlock()
		logger.Debug("rehydrate skipped, session not suspended")
		return false
	}
	c.rehydrates[sessionName] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.rehydrates, sessionName)
		c.mu.Unlock()
	}()

	active, err := c.rehydrate(ctx, info)
	if err != nil {
		logger.Error("rehydrate failed", zap.Error(err))
		c.revert(ctx, info)
		return false
	}
	if !active {
		logger.Warn("agent did not become active before timeout",
			zap.Duration("timeout", c.rehydrateTimeout))
		c.revert(ctx, info)
		return false
	}

	c.mu.Lock()
	delete(c.suspended, sessionName)
	c.mu.Unlock()
	c.persist(ctx)

	logger.Info("agent rehydrated")
	return true
}

func (c *Coordinator) rehydrate(ctx context.Context, info domain.SuspendedAgentInfo) (bool, error) {
	if err := c.transition(ctx, info, domain.AgentStatusSuspended, domain.AgentStatusStarting); err != nil {
		return false, err
	}

	if info.HasContinuationToken() && c.tokens != nil {
		if err := c.tokens.SetToken(ctx, info.SessionName, info.ContinuationToken); err != nil {
			return false, fmt.Errorf("restore continuation token: %w", err)
		}
	}

	result, err := c.registrar.CreateSession(ctx, domain.RegistrationRequest{
		SessionName: info.SessionName,
		Role:        info.Role,
		TeamID:      info.TeamID,
		MemberID:    info.MemberID,
	})
	if err != nil {
		return false, fmt.Errorf("create session: %w", err)
	}
	if !result.Success {
		return false, fmt.Errorf("create session: %s", result.Error)
	}

	return c.waitActive(ctx, info.SessionName)
}

// waitActive polls the member directory at a fixed interval until the
// member reports active or the rehydrate timeout elapses.
func (c *Coordinator) waitActive(ctx context.Context, sessionName string) (bool, error) {
	ticker := time.NewTicker(c.rehydratePoll)
	defer ticker.Stop()
	deadline := time.NewTimer(c.rehydrateTimeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-deadline.C:
			return false, nil
		case <-ticker.C:
			member, err := c.members.FindMemberBySession(ctx, sessionName)
			if err != nil {
				c.logger.Debug("status lookup failed", zap.String("session", sessionName), zap.Error(err))
				continue
			}
			if member.Status == domain.AgentStatusActive {
				return true, nil
			}
		}
	}
}

// revert puts a failed rehydrate back to suspended. The agent stays in the
// suspended set so a later attempt can retry.
func (c *Coordinator) revert(ctx context.Context, info domain.SuspendedAgentInfo) {
	if err := c.transition(context.WithoutCancel(ctx), info, domain.AgentStatusStarting, domain.AgentStatusSuspended); err != nil {
		c.logger.Warn("revert to suspended failed", zap.String("session", info.SessionName), zap.Error(err))
	}
}

// StopSuspended moves a suspended agent to inactive and forgets it.
func (c *Coordinator) StopSuspended(ctx context.Context, sessionName string) bool {
	logger := c.logger.With(zap.String("session", sessionName))

	c.mu.Lock()
	if _, running := c.rehydrates[sessionName]; running {
		c.mu.Unlock()
		logger.Warn("stop rejected while rehydrate is running")
		return false
	}
	info, ok := c.suspended[sessionName]
	if !ok {
		c.mu.Unlock()
		return false
	}
	delete(c.suspended, sessionName)
	c.mu.Unlock()

	if err := c.transition(ctx, info, domain.AgentStatusSuspended, domain.AgentStatusInactive); err != nil {
		c.mu.Lock()
		c.suspended[sessionName] = info
		c.mu.Unlock()
		logger.Error("stop suspended agent failed", zap.Error(err))
		return false
	}

	c.persist(ctx)
	logger.Info("suspended agent stopped")
	return true
}

func (c *Coordinator) IsSuspended(sessionName string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.suspended[sessionName]
	return ok
}

func (c *Coordinator) Suspended(sessionName string) (domain.SuspendedAgentInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	info, ok := c.suspended[sessionName]
	return info, ok
}

// SuspendedAgents lists suspended agents, oldest suspension first.
func (c *Coordinator) SuspendedAgents() []domain.SuspendedAgentInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suspendedLocked()
}

// Restore replaces the in-memory suspended set with the persisted one.
func (c *Coordinator) Restore(ctx context.Context) error {
	if c.suspensions == nil {
		return nil
	}

	agents, err := c.suspensions.List(ctx)
	if err != nil {
		return fmt.Errorf("load suspended agents: %w", err)
	}

	c.mu.Lock()
	c.suspended = make(map[string]domain.SuspendedAgentInfo, len(agents))
	for _, info := range agents {
		if info.SessionName == "" {
			continue
		}
		c.suspended[info.SessionName] = info
	}
	count := len(c.suspended)
	c.mu.Unlock()

	c.logger.Debug("suspended agents restored", zap.Int("count", count))
	return nil
}

func (c *Coordinator) suspendedLocked() []domain.SuspendedAgentInfo {
	out := make([]domain.SuspendedAgentInfo, 0, len(c.suspended))
	for _, info := range c.suspended {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SuspendedAt.Equal(out[j].SuspendedAt) {
			return out[i].SessionName < out[j].SessionName
		}
		return out[i].SuspendedAt.Before(out[j].SuspendedAt)
	})
	return out
}

func (c *Coordinator) fetchToken(ctx context.Context, sessionName string) string {
	if c.tokens == nil {
		return ""
	}

	token, err := c.tokens.GetToken(ctx, sessionName)
	if err != nil {
		if !errors.Is(err, domain.ErrTokenNotFound) {
			c.logger.Warn("continuation token lookup failed", zap.String("session", sessionName), zap.Error(err))
		}
		return ""
	}
	return token
}

func (c *Coordinator) transition(ctx context.Context, info domain.SuspendedAgentInfo, from, status domain.AgentStatus) error {
	if !from.CanTransition(status) {
		return fmt.Errorf("%s -> %s: %w", from, status, domain.ErrInvalidTransition)
	}
	if err := c.status.UpdateAgentStatus(ctx, info.SessionName, status); err != nil {
		return fmt.Errorf("persist status %s: %w", status, err)
	}
	if err := c.status.BroadcastStatus(ctx, domain.StatusBroadcast{
		TeamID:      info.TeamID,
		MemberID:    info.MemberID,
		SessionName: info.SessionName,
		AgentStatus: status,
	}); err != nil {
		return fmt.Errorf("broadcast status %s: %w", status, err)
	}
	return nil
}

func (c *Coordinator) persist(ctx context.Context) {
	if c.suspensions == nil {
		return
	}

	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	agents := c.suspendedLocked()
	c.mu.Unlock()

	if err := c.suspensions.ReplaceAll(context.WithoutCancel(ctx), agents); err != nil {
		c.logger.Error("persist suspended agents", zap.Error(err))
	}
}
