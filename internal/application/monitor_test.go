package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/events"
	"github.com/bnema/agent-crew/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	openPath     = "/tasks/open/t1.md"
	progressPath = "/tasks/in_progress/t1.md"
	orchestrator = "crew-orchestrator"
)

func monitoringConfig(id string, timeout time.Duration) domain.MonitoringConfig {
	return domain.MonitoringConfig{
		MonitoringID:        id,
		OriginalPath:        openPath,
		TargetPath:          progressPath,
		OrchestratorSession: orchestrator,
		AssignmentPrompt:    "please pick up t1",
		MaxAttempts:         2,
		Timeout:             timeout,
		TaskID:              "t1",
	}
}

func TestAcceptanceMonitorRetriesThenFails(t *testing.T) {
	t.Parallel()

	sessions := mocks.NewMockSessionControl(t)
	publisher := &recordingPublisher{}
	probe := newFakePathProbe(openPath)

	sessions.EXPECT().ListSessions(mockAnyContext()).
		Return([]string{orchestrator, "crew-member-dev", "agent-review", "notes"}, nil).Times(3)
	sessions.EXPECT().SendKey(mockAnyContext(), "crew-member-dev", "Escape").Return(errors.New("pane gone")).Times(3)
	sessions.EXPECT().SendKey(mockAnyContext(), "crew-member-dev", "C-c").Return(nil).Times(3)
	sessions.EXPECT().SendKey(mockAnyContext(), "agent-review", "Escape").Return(nil).Times(3)
	sessions.EXPECT().SendKey(mockAnyContext(), "agent-review", "C-c").Return(nil).Times(3)
	var (
		sendMu sync.Mutex
		sends  []time.Time
	)
	sessions.EXPECT().SendMessage(mockAnyContext(), orchestrator, "please pick up t1").
		RunAndReturn(func(context.Context, string, string) error {
			sendMu.Lock()
			defer sendMu.Unlock()
			sends = append(sends, time.Now())
			return nil
		}).Times(2)

	const (
		timeout = 30 * time.Millisecond
		backoff = 10 * time.Millisecond
	)
	monitor := NewAcceptanceMonitor(MonitorOptions{
		PollInterval:   5 * time.Millisecond,
		RetryBackoff:   backoff,
		InterruptDelay: time.Millisecond,
		Sessions:       sessions,
		Paths:          probe,
		Events:         publisher,
	})
	t.Cleanup(func() { monitor.Shutdown(context.Background()) })

	started := time.Now()
	id, err := monitor.Start(context.Background(), monitoringConfig("job-1", timeout))
	require.NoError(t, err)
	assert.Equal(t, "job-1", id)

	require.Eventually(t, func() bool {
		return len(publisher.OfType(string(events.EventTaskFailed))) == 1
	}, 2*time.Second, 5*time.Millisecond)

	retries := publisher.OfType(string(events.EventTaskRetry))
	require.Len(t, retries, 2)
	assert.Equal(t, 2, retries[0].Payload["attempt"])
	assert.Equal(t, 3, retries[1].Payload["attempt"])

	sendMu.Lock()
	resent := append([]time.Time(nil), sends...)
	sendMu.Unlock()
	require.Len(t, resent, 2)
	for i, retry := range retries {
		assert.GreaterOrEqual(t, resent[i].Sub(retry.At), backoff, "resend %d came before the backoff", i+1)
	}
	assert.GreaterOrEqual(t, resent[0].Sub(started), timeout+backoff)
	assert.GreaterOrEqual(t, resent[1].Sub(resent[0]), timeout+backoff)

	failed := publisher.OfType(string(events.EventTaskFailed))[0]
	assert.Equal(t, 3, failed.Payload["attempts"])
	assert.GreaterOrEqual(t, failed.At.Sub(resent[1]), timeout)
	assert.Equal(t, "job-1", failed.Payload["monitoringId"])

	stopped := publisher.OfType(string(events.EventMonitoringStopped))
	require.Len(t, stopped, 1)
	assert.Equal(t, string(domain.StopReasonFailed), stopped[0].Payload["reason"])

	_, ok := monitor.Job("job-1")
	assert.False(t, ok)
	assert.Empty(t, publisher.OfType(string(events.EventTaskAccepted)))
}

func TestAcceptanceMonitorAcceptsOnceAndNeverTimesOut(t *testing.T) {
	t.Parallel()

	sessions := mocks.NewMockSessionControl(t)
	publisher := &recordingPublisher{}
	probe := newFakePathProbe(openPath)

	monitor := NewAcceptanceMonitor(MonitorOptions{
		PollInterval: 5 * time.Millisecond,
		Sessions:     sessions,
		Paths:        probe,
		Events:       publisher,
	})
	t.Cleanup(func() { monitor.Shutdown(context.Background()) })

	_, err := monitor.Start(context.Background(), monitoringConfig("job-1", 150*time.Millisecond))
	require.NoError(t, err)

	job, ok := monitor.Job("job-1")
	require.True(t, ok)
	assert.Equal(t, domain.MonitoringStatusMonitoring, job.Status)
	assert.Equal(t, 1, job.CurrentAttempt)

	time.Sleep(20 * time.Millisecond)
	probe.Move(openPath, progressPath)

	require.Eventually(t, func() bool {
		return len(publisher.OfType(string(events.EventTaskAccepted))) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(250 * time.Millisecond)

	accepted := publisher.OfType(string(events.EventTaskAccepted))
	require.Len(t, accepted, 1)
	assert.Equal(t, 1, accepted[0].Payload["attempts"])
	assert.Contains(t, accepted[0].Payload, "elapsedMs")
	assert.Empty(t, publisher.OfType(string(events.EventTaskRetry)))
	assert.Empty(t, publisher.OfType(string(events.EventTaskFailed)))

	stopped := publisher.OfType(string(events.EventMonitoringStopped))
	require.Len(t, stopped, 1)
	assert.Equal(t, string(domain.StopReasonCompleted), stopped[0].Payload["reason"])
	assert.Empty(t, monitor.ActiveJobs())
}

func TestAcceptanceMonitorAcceptedJobIsGoneBeforeEventsFire(t *testing.T) {
	t.Parallel()

	sessions := mocks.NewMockSessionControl(t)
	publisher := &recordingPublisher{}
	probe := newFakePathProbe(openPath, "/tasks/open/t2.md")
	second := monitoringConfig("job-2", time.Hour)
	second.OriginalPath = "/tasks/open/t2.md"
	second.TargetPath = "/tasks/in_progress/t2.md"
	second.TaskID = "t2"

	monitor := NewAcceptanceMonitor(MonitorOptions{
		MaxConcurrent: 1,
		PollInterval:  5 * time.Millisecond,
		Sessions:      sessions,
		Paths:         probe,
		Events:        publisher,
	})
	t.Cleanup(func() { monitor.Shutdown(context.Background()) })

	var (
		hookMu     sync.Mutex
		stillThere bool
		startErr   error
	)
	publisher.onEmit = func(event recordedEvent) {
		if event.Type != string(events.EventTaskAccepted) || event.Payload["monitoringId"] != "job-1" {
			return
		}
		_, ok := monitor.Job("job-1")
		// A new job landing right now must not evict the accepted one.
		_, err := monitor.Start(context.Background(), second)

		hookMu.Lock()
		defer hookMu.Unlock()
		stillThere = ok
		startErr = err
	}

	_, err := monitor.Start(context.Background(), monitoringConfig("job-1", time.Hour))
	require.NoError(t, err)
	probe.Move(openPath, progressPath)

	require.Eventually(t, func() bool {
		return len(publisher.OfType(string(events.EventMonitoringStopped))) == 1
	}, time.Second, 5*time.Millisecond)

	hookMu.Lock()
	assert.False(t, stillThere)
	assert.NoError(t, startErr)
	hookMu.Unlock()

	stopped := publisher.OfType(string(events.EventMonitoringStopped))
	assert.Equal(t, "job-1", stopped[0].Payload["monitoringId"])
	assert.Equal(t, string(domain.StopReasonCompleted), stopped[0].Payload["reason"])

	active := monitor.ActiveJobs()
	require.Len(t, active, 1)
	assert.Equal(t, "job-2", active[0].Config.MonitoringID)
}

func TestAcceptanceMonitorKeepsPollingAfterProbeErrors(t *testing.T) {
	t.Parallel()

	sessions := mocks.NewMockSessionControl(t)
	publisher := &recordingPublisher{}
	probe := newFakePathProbe(openPath)
	probe.SetError(errors.New("stale nfs handle"))

	monitor := NewAcceptanceMonitor(MonitorOptions{
		PollInterval: 5 * time.Millisecond,
		Sessions:     sessions,
		Paths:        probe,
		Events:       publisher,
	})
	t.Cleanup(func() { monitor.Shutdown(context.Background()) })

	_, err := monitor.Start(context.Background(), monitoringConfig("job-1", time.Second))
	require.NoError(t, err)

	time.Sleep(25 * time.Millisecond)
	probe.SetError(nil)
	probe.Move(openPath, progressPath)

	require.Eventually(t, func() bool {
		return len(publisher.OfType(string(events.EventTaskAccepted))) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestAcceptanceMonitorEvictsOldestAtCapacity(t *testing.T) {
	t.Parallel()

	sessions := mocks.NewMockSessionControl(t)
	publisher := &recordingPublisher{}
	clock := &stepClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), step: time.Second}

	monitor := NewAcceptanceMonitor(MonitorOptions{
		MaxConcurrent: 2,
		PollInterval:  time.Hour,
		Sessions:      sessions,
		Paths:         newFakePathProbe(openPath),
		Events:        publisher,
		Clock:         clock,
	})

	ctx := context.Background()
	for _, id := range []string{"job-1", "job-2", "job-3"} {
		_, err := monitor.Start(ctx, monitoringConfig(id, time.Hour))
		require.NoError(t, err)
	}

	stopped := publisher.OfType(string(events.EventMonitoringStopped))
	require.Len(t, stopped, 1)
	assert.Equal(t, "job-1", stopped[0].Payload["monitoringId"])
	assert.Equal(t, string(domain.StopReasonCapacity), stopped[0].Payload["reason"])

	active := monitor.ActiveJobs()
	require.Len(t, active, 2)
	assert.Equal(t, "job-2", active[0].Config.MonitoringID)
	assert.Equal(t, "job-3", active[1].Config.MonitoringID)

	monitor.Shutdown(ctx)

	stopped = publisher.OfType(string(events.EventMonitoringStopped))
	require.Len(t, stopped, 3)
	for _, event := range stopped[1:] {
		assert.Equal(t, string(domain.StopReasonShutdown), event.Payload["reason"])
	}
	assert.Empty(t, monitor.ActiveJobs())
}

func TestAcceptanceMonitorStopUnknownJob(t *testing.T) {
	t.Parallel()

	monitor := NewAcceptanceMonitor(MonitorOptions{
		Sessions: mocks.NewMockSessionControl(t),
		Paths:    newFakePathProbe(),
	})

	assert.False(t, monitor.Stop(context.Background(), "missing", domain.StopReasonManual))
}

func TestAcceptanceMonitorRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	monitor := NewAcceptanceMonitor(MonitorOptions{
		Sessions: mocks.NewMockSessionControl(t),
		Paths:    newFakePathProbe(),
	})

	_, err := monitor.Start(context.Background(), domain.MonitoringConfig{OriginalPath: openPath})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, monitor.ActiveJobs())
}
