package status

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestRenderIdleDashboard(t *testing.T) {
	output, err := Render(Dashboard{MaxQueue: 100}, RenderOptions{Now: time.Now()})

	require.NoError(t, err)
	assert.Contains(t, output, "Crew Mailbox")
	assert.Contains(t, output, "pending: 0  processed: 0  failed: 0")
	assert.Contains(t, output, "0/100")
	assert.Contains(t, output, "idle")
	assert.Contains(t, output, "queue is empty")
	assert.Contains(t, output, "no finished messages")
	assert.Contains(t, output, "Suspended agents (0)")
	assert.NotContains(t, output, "Monitoring")
}

func TestRenderBusyDashboard(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	output, err := Render(Dashboard{
		Status: domain.MailboxStatus{
			PendingCount:     2,
			IsProcessing:     true,
			CurrentMessageID: "msg-current",
			TotalProcessed:   7,
			TotalFailed:      1,
		},
		MaxQueue: 10,
		Current: &domain.QueuedMessage{
			ID:                  "msg-current",
			Content:             "summarise the open tasks",
			Source:              domain.MessageSourceWebChat,
			ProcessingStartedAt: timePtr(now.Add(-12 * time.Second)),
		},
		Pending: []domain.QueuedMessage{
			{ID: "msg-a", Content: "first", Source: domain.MessageSourceSlack, EnqueuedAt: now.Add(-3 * time.Minute)},
			{ID: "msg-b", Content: "second", Source: domain.MessageSourceWebChat, EnqueuedAt: now.Add(-time.Minute), RetryCount: 2},
		},
		History: []domain.QueuedMessage{
			{ID: "msg-bad", Content: "broken", Status: domain.MessageStatusFailed, Error: "no pane", CompletedAt: timePtr(now.Add(-5 * time.Minute))},
			{ID: "msg-old", Content: "done long ago", Status: domain.MessageStatusCompleted, CompletedAt: timePtr(now.Add(-2 * time.Hour))},
		},
		Suspended: []domain.SuspendedAgentInfo{
			{SessionName: "crew-member-dev", TeamID: "core", MemberID: "dev", Role: domain.Role("developer"), ContinuationToken: "tok", SuspendedAt: now.Add(-26 * time.Hour)},
			{SessionName: "crew-member-qa", TeamID: "core", MemberID: "qa", SuspendedAt: now.Add(-time.Hour)},
		},
		Jobs: []domain.MonitoringJob{
			{Config: domain.MonitoringConfig{MonitoringID: "job-1", TaskID: "t1", MaxAttempts: 2}, StartTime: now.Add(-30 * time.Second), CurrentAttempt: 2},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "pending: 2  processed: 7  failed: 1")
	assert.Contains(t, output, "2/10")
	assert.Contains(t, output, "summarise the open tasks")
	assert.Contains(t, output, "started 12s ago")
	assert.Contains(t, output, "Pending (2)")
	assert.Contains(t, output, "[slack]")
	assert.Contains(t, output, "queued 3m ago")
	assert.Contains(t, output, "retry 2")
	assert.Contains(t, output, "no pane")
	assert.Contains(t, output, "2h ago")
	assert.Contains(t, output, "crew-member-dev")
	assert.Contains(t, output, "core/dev (developer)")
	assert.Contains(t, output, "suspended 1d ago")
	assert.Contains(t, output, "resumable")
	assert.Contains(t, output, "fresh start")
	assert.Contains(t, output, "Monitoring (1)")
	assert.Contains(t, output, "attempt 2/3")

	assert.Less(t, strings.Index(output, "msg-bad"), strings.Index(output, "msg-old"))
}

func TestRenderHistoryLimit(t *testing.T) {
	history := []domain.QueuedMessage{
		{ID: "msg-3", Content: "charlie", Status: domain.MessageStatusCompleted},
		{ID: "msg-2", Content: "bravo", Status: domain.MessageStatusCancelled},
		{ID: "msg-1", Content: "alpha", Status: domain.MessageStatusCompleted},
	}

	output, err := Render(Dashboard{History: history}, RenderOptions{HistoryLimit: 2})

	require.NoError(t, err)
	assert.Contains(t, output, "charlie")
	assert.Contains(t, output, "bravo")
	assert.NotContains(t, output, "alpha")
}

func TestPreviewTruncatesAndFlattens(t *testing.T) {
	assert.Equal(t, "a b c", preview("a\n b\tc", 10))
	assert.Equal(t, "abcd…", preview("abcdefgh", 5))
}

func TestFormatAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		at   time.Time
		want string
	}{
		{at: time.Time{}, want: "at unknown time"},
		{at: now, want: "just now"},
		{at: now.Add(-45 * time.Second), want: "45s ago"},
		{at: now.Add(-90 * time.Minute), want: "1h ago"},
		{at: now.Add(-72 * time.Hour), want: "3d ago"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, formatAgo(tc.at, now))
	}
}
