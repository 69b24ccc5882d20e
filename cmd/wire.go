package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/agent-crew/internal/adapters/activity"
	statusadapter "github.com/bnema/agent-crew/internal/adapters/render/status"
	tomlrepo "github.com/bnema/agent-crew/internal/adapters/repo/toml"
	yamlrepo "github.com/bnema/agent-crew/internal/adapters/repo/yaml"
	"github.com/bnema/agent-crew/internal/adapters/session/tmux"
	"github.com/bnema/agent-crew/internal/adapters/workspace"
	"github.com/bnema/agent-crew/internal/application"
	"github.com/bnema/agent-crew/internal/config"
	"github.com/bnema/agent-crew/internal/events"
	"github.com/bnema/agent-crew/internal/logging"
	"github.com/bnema/agent-crew/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	bus    *events.Bus

	mailbox     *application.Mailbox
	coordinator *application.Coordinator
	monitor     *application.AcceptanceMonitor
	dispatcher  *application.Dispatcher

	roster     *yamlrepo.Roster
	tokens     *tomlrepo.TokenRepository
	sessions   *tmux.Control
	workspaces *workspace.Store
	activity   *activity.Tracker

	snapshots      *tomlrepo.SnapshotStore
	suspensions    *tomlrepo.SuspensionRepository
	statusRenderer func(statusadapter.Dashboard, statusadapter.RenderOptions) (string, error)
	statusWatcher  func(context.Context, statusadapter.Source, statusadapter.WatchOptions) error
	now            func() time.Time

	loaded bool
}

func wireApp() (*app, error) {
	v := viper.New()
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	bus := events.NewBus()
	clock := ports.SystemClock{}

	roster, err := yamlrepo.NewRoster(v, bus)
	if err != nil {
		return nil, fmt.Errorf("wire roster: %w", err)
	}
	tokens, err := tomlrepo.NewTokenRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire token repository: %w", err)
	}
	suspensions, err := tomlrepo.NewSuspensionRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire suspension repository: %w", err)
	}
	snapshots, err := tomlrepo.NewSnapshotStore(v)
	if err != nil {
		return nil, fmt.Errorf("wire mailbox store: %w", err)
	}

	sessions := tmux.NewControl(cfg.Tmux.Binary)
	workspaces := workspace.NewStore(cfg.WorkspaceDir)
	registrar := tmux.NewRegistrar(tmux.RegistrarOptions{
		Binary:       cfg.Tmux.Binary,
		AgentCommand: cfg.Tmux.AgentCommand,
		ResumeFlag:   cfg.Tmux.ResumeFlag,
		Workdir:      cfg.Tmux.Workdir,
		Tokens:       tokens,
		Workspaces:   workspaces,
	})
	tracker := activity.NewTracker(clock)

	mailbox := application.NewMailbox(application.MailboxOptions{
		MaxQueue:     cfg.Mailbox.MaxQueue,
		MaxHistory:   cfg.Mailbox.MaxHistory,
		PersistDelay: cfg.Mailbox.PersistDelay,
		Store:        snapshots,
		Events:       bus,
		Clock:        clock,
		Logger:       logger,
	})

	coordinator := application.NewCoordinator(application.CoordinatorOptions{
		ExemptRoles:      cfg.Lifecycle.ExemptRoles,
		RehydrateTimeout: cfg.Lifecycle.RehydrateTimeout,
		RehydratePoll:    cfg.Lifecycle.RehydratePoll,
		Sessions:         sessions,
		Exits:            sessions,
		Activity:         tracker,
		Cleaner:          workspaces,
		Status:           roster,
		Members:          roster,
		Tokens:           tokens,
		Registrar:        registrar,
		Suspensions:      suspensions,
		Clock:            clock,
		Logger:           logger,
	})

	monitor := application.NewAcceptanceMonitor(application.MonitorOptions{
		MaxConcurrent:  cfg.Monitor.MaxConcurrent,
		PollInterval:   cfg.Monitor.PollInterval,
		RetryBackoff:   cfg.Monitor.RetryBackoff,
		InterruptDelay: cfg.Monitor.InterruptDelay,
		WorkerPatterns: cfg.Monitor.WorkerPatterns,
		Sessions:       sessions,
		Paths:          workspace.Probe{},
		Events:         bus,
		Clock:          clock,
		Logger:         logger,
	})

	dispatcher := application.NewDispatcher(application.DispatcherOptions{
		Mailbox:            mailbox,
		Coordinator:        coordinator,
		Sessions:           sessions,
		Activity:           tracker,
		Session:            cfg.OrchestratorSession,
		MaxDeliveryRetries: cfg.Mailbox.MaxDeliveryRetries,
		Logger:             logger,
	})

	return &app{
		cfg:            cfg,
		logger:         logger,
		bus:            bus,
		mailbox:        mailbox,
		coordinator:    coordinator,
		monitor:        monitor,
		dispatcher:     dispatcher,
		roster:         roster,
		tokens:         tokens,
		sessions:       sessions,
		workspaces:     workspaces,
		activity:       tracker,
		snapshots:      snapshots,
		suspensions:    suspensions,
		statusRenderer: statusadapter.Render,
		statusWatcher:  statusadapter.Watch,
		now:            time.Now,
	}, nil
}

// load restores persisted mailbox and suspension state once per process.
func (a *app) load(ctx context.Context) error {
	if a.loaded {
		return nil
	}
	if err := a.mailbox.Load(ctx); err != nil {
		return err
	}
	if err := a.coordinator.Restore(ctx); err != nil {
		return err
	}
	a.loaded = true
	return nil
}

// close stops monitoring jobs and flushes the mailbox to disk.
func (a *app) close(ctx context.Context) error {
	a.monitor.Shutdown(ctx)

	err := a.mailbox.Close(ctx)
	_ = a.logger.Sync()
	return errors.Join(err, a.bus.Close())
}
