package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/events"
	"github.com/bnema/agent-crew/internal/logging"
	"github.com/bnema/agent-crew/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultMonitorMaxConcurrent  = 10
	DefaultMonitorPollInterval   = 5 * time.Second
	DefaultMonitorRetryBackoff   = 3 * time.Second
	DefaultMonitorInterruptDelay = 500 * time.Millisecond

	cancelKey    = "Escape"
	interruptKey = "C-c"
)

var DefaultWorkerPatterns = []string{"-member-", "agent-"}

type MonitorOptions struct {
	MaxConcurrent  int
	PollInterval   time.Duration
	RetryBackoff   time.Duration
	InterruptDelay time.Duration
	// WorkerPatterns are substrings identifying worker sessions that may
	// have received an assignment.
	WorkerPatterns []string

	Sessions ports.SessionControl
	Paths    ports.PathProbe
	Events   ports.EventPublisher
	Clock    ports.Clock
	Logger   *zap.Logger
}

// AcceptanceMonitor confirms that dispatched tasks were picked up by
// watching the task file move from its open location to its in-progress
// location.
type AcceptanceMonitor struct {
	maxConcurrent  int
	pollInterval   time.Duration
	retryBackoff   time.Duration
	interruptDelay time.Duration
	workerPatterns []string

	sessions ports.SessionControl
	paths    ports.PathProbe
	events   ports.EventPublisher
	clock    ports.Clock
	logger   *zap.Logger

	mu   sync.Mutex
	jobs map[string]*monitorJob
	wg   sync.WaitGroup
}

// monitorJob owns one goroutine whose poll ticker and timeout timer both
// die with ctx.
type monitorJob struct {
	config  domain.MonitoringConfig
	start   time.Time
	attempt int
	status  domain.MonitoringStatus
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewAcceptanceMonitor(opts MonitorOptions) *AcceptanceMonitor {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMonitorMaxConcurrent
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultMonitorPollInterval
	}
	if opts.RetryBackoff < 0 {
		opts.RetryBackoff = DefaultMonitorRetryBackoff
	}
	if opts.InterruptDelay < 0 {
		opts.InterruptDelay = DefaultMonitorInterruptDelay
	}
	if len(opts.WorkerPatterns) == 0 {
		opts.WorkerPatterns = DefaultWorkerPatterns
	}
	if opts.Events == nil {
		opts.Events = noopPublisher{}
	}
	if opts.Clock == nil {
		opts.Clock = ports.SystemClock{}
	}

	return &AcceptanceMonitor{
		maxConcurrent:  opts.MaxConcurrent,
		pollInterval:   opts.PollInterval,
		retryBackoff:   opts.RetryBackoff,
		interruptDelay: opts.InterruptDelay,
		workerPatterns: append([]string(nil), opts.WorkerPatterns...),
		sessions:       opts.Sessions,
		paths:          opts.Paths,
		events:         opts.Events,
		clock:          opts.Clock,
		logger:         logging.Component(opts.Logger, "acceptance_monitor"),
		jobs:           make(map[string]*monitorJob),
	}
}

// Start begins watching a dispatched task and returns its monitoring id.
// When the monitor is at capacity the oldest job is evicted first.
func (m *AcceptanceMonitor) Start(ctx context.Context, cfg domain.MonitoringConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if m.paths == nil || m.sessions == nil {
		return "", errors.New("acceptance monitor requires a path probe and session control")
	}
	if strings.TrimSpace(cfg.MonitoringID) == "" {
		cfg.MonitoringID = uuid.NewString()
	}

	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	job := &monitorJob{
		config:  cfg,
		start:   m.clock.Now(),
		attempt: 1,
		status:  domain.MonitoringStatusMonitoring,
		ctx:     jobCtx,
		cancel:  cancel,
	}

	type stopped struct {
		job    *monitorJob
		reason domain.StopReason
	}
	var evicted []stopped

	m.mu.Lock()
	if previous := m.removeLocked(cfg.MonitoringID); previous != nil {
		evicted = append(evicted, stopped{job: previous, reason: domain.StopReasonManual})
	}
	for len(m.jobs) >= m.maxConcurrent {
		oldest := m.removeLocked(m.oldestLocked())
		if oldest == nil {
			break
		}
		evicted = append(evicted, stopped{job: oldest, reason: domain.StopReasonCapacity})
	}
	m.jobs[cfg.MonitoringID] = job
	m.wg.Add(1)
	m.mu.Unlock()

	for _, e := range evicted {
		if e.reason == domain.StopReasonCapacity {
			m.logger.Info("evicting oldest monitoring job",
				zap.String("monitoring_id", e.job.config.MonitoringID),
				zap.Int("max_concurrent", m.maxConcurrent))
		}
		m.emitStopped(ctx, e.job, e.reason)
	}

	m.logger.Info("monitoring task acceptance",
		zap.String("monitoring_id", cfg.MonitoringID),
		zap.String("task_id", cfg.TaskID),
		zap.String("target_path", cfg.TargetPath),
		zap.Int("max_attempts", cfg.MaxAttempts),
		zap.Duration("timeout", cfg.Timeout))

	go m.run(job)

	return cfg.MonitoringID, nil
}

// Stop cancels a job's poll and timeout together, removes it and emits
// monitoring_stopped. Unknown ids are ignored.
func (m *AcceptanceMonitor) Stop(ctx context.Context, id string, reason domain.StopReason) bool {
	m.mu.Lock()
	job := m.removeLocked(id)
	m.mu.Unlock()

	if job == nil {
		return false
	}
	m.emitStopped(ctx, job, reason)
	return true
}

// removeLocked detaches a job and cancels its poll and timeout.
func (m *AcceptanceMonitor) removeLocked(id string) *monitorJob {
	job, ok := m.jobs[id]
	if !ok {
		return nil
	}
	delete(m.jobs, id)
	job.cancel()
	return job
}

func (m *AcceptanceMonitor) emitStopped(ctx context.Context, job *monitorJob, reason domain.StopReason) {
	m.logger.Debug("monitoring stopped",
		zap.String("monitoring_id", job.config.MonitoringID),
		zap.String("task_id", job.config.TaskID),
		zap.String("reason", string(reason)))

	m.events.Emit(ctx, string(events.EventMonitoringStopped), map[string]any{
		"monitoringId": job.config.MonitoringID,
		"taskId":       job.config.TaskID,
		"reason":       string(reason),
	})
}

// ActiveJobs returns a view of every live job ordered by start time.
func (m *AcceptanceMonitor) ActiveJobs() []domain.MonitoringJob {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.MonitoringJob, 0, len(m.jobs))
	for _, job := range m.jobs {
		out = append(out, job.view())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

func (m *AcceptanceMonitor) Job(id string) (domain.MonitoringJob, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return domain.MonitoringJob{}, false
	}
	return job.view(), true
}

// Shutdown stops every job and waits for their goroutines to exit.
func (m *AcceptanceMonitor) Shutdown(ctx context.Context) {
	m.mu.Lock()
	ids := make([]string, 0, len(m.jobs))
	for id := range m.jobs {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.Stop(ctx, id, domain.StopReasonShutdown)
	}
	m.wg.Wait()
}

func (m *AcceptanceMonitor) oldestLocked() string {
	var (
		oldestID    string
		oldestStart time.Time
	)
	for id, job := range m.jobs {
		if oldestID == "" || job.start.Before(oldestStart) {
			oldestID = id
			oldestStart = job.start
		}
	}
	return oldestID
}

func (m *AcceptanceMonitor) run(job *monitorJob) {
	defer m.wg.Done()

	cfg := job.config
	for {
		accepted, live := m.watchAttempt(job)
		if !live {
			return
		}
		if accepted {
			m.accept(job)
			return
		}

		attempt, ok := m.markTimedOut(job)
		if !ok {
			return
		}

		m.logger.Warn("task not accepted before timeout",
			zap.String("monitoring_id", cfg.MonitoringID),
			zap.String("task_id", cfg.TaskID),
			zap.Int("attempt", attempt))

		m.interruptWorkers(job.ctx, cfg.OrchestratorSession)

		if attempt > cfg.MaxAttempts {
			m.fail(job, attempt)
			return
		}

		if !m.retry(job, attempt) {
			return
		}
	}
}

// watchAttempt polls until the task is accepted, the attempt times out or
// the job is stopped. live is false once the job is gone.
func (m *AcceptanceMonitor) watchAttempt(job *monitorJob) (accepted bool, live bool) {
	cfg := job.config

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()
	timeout := time.NewTimer(cfg.Timeout)
	defer timeout.Stop()

	for {
		select {
		case <-job.ctx.Done():
			return false, false
		case <-timeout.C:
			return false, true
		case <-ticker.C:
			ok, err := m.isAccepted(job.ctx, cfg)
			if err != nil {
				if job.ctx.Err() != nil {
					return false, false
				}
				m.logger.Warn("acceptance poll failed",
					zap.String("monitoring_id", cfg.MonitoringID),
					zap.String("task_id", cfg.TaskID),
					zap.Error(err))
				continue
			}
			if ok {
				return true, true
			}
		}
	}
}

func (m *AcceptanceMonitor) isAccepted(ctx context.Context, cfg domain.MonitoringConfig) (bool, error) {
	originalExists, err := m.paths.Exists(ctx, cfg.OriginalPath)
	if err != nil {
		return false, fmt.Errorf("check original path: %w", err)
	}
	if originalExists {
		return false, nil
	}

	targetExists, err := m.paths.Exists(ctx, cfg.TargetPath)
	if err != nil {
		return false, fmt.Errorf("check target path: %w", err)
	}
	return targetExists, nil
}

// finish removes a job that reached a terminal status. It reports false
// when the job was already stopped or replaced.
func (m *AcceptanceMonitor) finish(job *monitorJob, status domain.MonitoringStatus) (attempts int, elapsed time.Duration, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.jobs[job.config.MonitoringID] != job {
		return 0, 0, false
	}
	job.status = status
	m.removeLocked(job.config.MonitoringID)
	return job.attempt, m.clock.Now().Sub(job.start), true
}

func (m *AcceptanceMonitor) accept(job *monitorJob) {
	attempts, elapsed, ok := m.finish(job, domain.MonitoringStatusCompleted)
	if !ok {
		return
	}

	ctx := context.WithoutCancel(job.ctx)
	cfg := job.config
	m.logger.Info("task accepted",
		zap.String("monitoring_id", cfg.MonitoringID),
		zap.String("task_id", cfg.TaskID),
		zap.Duration("elapsed", elapsed),
		zap.Int("attempts", attempts))

	m.events.Emit(ctx, string(events.EventTaskAccepted), map[string]any{
		"monitoringId": cfg.MonitoringID,
		"taskId":       cfg.TaskID,
		"targetPath":   cfg.TargetPath,
		"elapsedMs":    elapsed.Milliseconds(),
		"attempts":     attempts,
	})
	m.emitStopped(ctx, job, domain.StopReasonCompleted)
}

func (m *AcceptanceMonitor) fail(job *monitorJob, attempts int) {
	if _, _, ok := m.finish(job, domain.MonitoringStatusFailed); !ok {
		return
	}

	ctx := context.WithoutCancel(job.ctx)
	cfg := job.config
	m.logger.Error("task acceptance failed",
		zap.String("monitoring_id", cfg.MonitoringID),
		zap.String("task_id", cfg.TaskID),
		zap.Int("attempts", attempts))

	m.events.Emit(ctx, string(events.EventTaskFailed), map[string]any{
		"monitoringId": cfg.MonitoringID,
		"taskId":       cfg.TaskID,
		"attempts":     attempts,
		"reason":       string(domain.StopReasonTimeout),
	})
	m.emitStopped(ctx, job, domain.StopReasonFailed)
}

func (m *AcceptanceMonitor) markTimedOut(job *monitorJob) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.jobs[job.config.MonitoringID] != job {
		return 0, false
	}
	job.status = domain.MonitoringStatusTimeout
	return job.attempt, true
}

// retry waits out the backoff, resends the assignment and arms the next
// attempt. It returns false when the job was stopped meanwhile.
func (m *AcceptanceMonitor) retry(job *monitorJob, attempt int) bool {
	cfg := job.config
	next := attempt + 1

	m.events.Emit(job.ctx, string(events.EventTaskRetry), map[string]any{
		"monitoringId": cfg.MonitoringID,
		"taskId":       cfg.TaskID,
		"attempt":      next,
		"maxAttempts":  cfg.MaxAttempts,
	})

	backoff := time.NewTimer(m.retryBackoff)
	select {
	case <-job.ctx.Done():
		backoff.Stop()
		return false
	case <-backoff.C:
	}

	if strings.TrimSpace(cfg.AssignmentPrompt) != "" {
		if err := m.sessions.SendMessage(job.ctx, cfg.OrchestratorSession, cfg.AssignmentPrompt); err != nil {
			m.logger.Warn("resend assignment failed",
				zap.String("monitoring_id", cfg.MonitoringID),
				zap.String("task_id", cfg.TaskID),
				zap.String("session", cfg.OrchestratorSession),
				zap.Error(err))
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.jobs[cfg.MonitoringID] != job {
		return false
	}
	job.attempt = next
	job.status = domain.MonitoringStatusMonitoring
	return true
}

// interruptWorkers signals every worker-like session except the
// orchestrator. Failures on one session do not stop the others.
func (m *AcceptanceMonitor) interruptWorkers(ctx context.Context, orchestrator string) {
	sessions, err := m.sessions.ListSessions(ctx)
	if err != nil {
		m.logger.Warn("list sessions for interrupt failed", zap.Error(err))
		return
	}

	var targets []string
	for _, name := range sessions {
		if name == orchestrator || !m.isWorker(name) {
			continue
		}
		targets = append(targets, name)
	}
	if len(targets) == 0 {
		return
	}

	for _, name := range targets {
		if err := m.sessions.SendKey(ctx, name, cancelKey); err != nil {
			m.logger.Debug("cancel key failed", zap.String("session", name), zap.Error(err))
		}
	}

	delay := time.NewTimer(m.interruptDelay)
	select {
	case <-ctx.Done():
		delay.Stop()
		return
	case <-delay.C:
	}

	for _, name := range targets {
		if err := m.sessions.SendKey(ctx, name, interruptKey); err != nil {
			m.logger.Debug("interrupt key failed", zap.String("session", name), zap.Error(err))
		}
	}
}

func (m *AcceptanceMonitor) isWorker(name string) bool {
	for _, pattern := range m.workerPatterns {
		if pattern != "" && strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

func (j *monitorJob) view() domain.MonitoringJob {
	return domain.MonitoringJob{
		Config:         j.config,
		StartTime:      j.start,
		CurrentAttempt: j.attempt,
		Status:         j.status,
	}
}
