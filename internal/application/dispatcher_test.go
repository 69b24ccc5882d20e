package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversInOrder(t *testing.T) {
	t.Parallel()

	sessions := mocks.NewMockSessionControl(t)
	activity := mocks.NewMockActivityTracker(t)
	mailbox := newTestMailbox(MailboxOptions{})
	ctx := context.Background()

	for _, content := range []string{"A", "B"} {
		_, err := mailbox.Enqueue(ctx, webInput(content))
		require.NoError(t, err)
	}

	mock.InOrder(
		sessions.EXPECT().SendMessage(mockAnyContext(), orchestrator, "A").Return(nil).Once(),
		sessions.EXPECT().SendMessage(mockAnyContext(), orchestrator, "B").Return(nil).Once(),
	)
	activity.EXPECT().Touch(orchestrator).Return().Times(2)

	dispatcher := NewDispatcher(DispatcherOptions{
		Mailbox:  mailbox,
		Sessions: sessions,
		Activity: activity,
		Session:  orchestrator,
	})

	results := dispatcher.Drain(ctx)
	require.Len(t, results, 2)
	assert.True(t, results[0].Delivered)
	assert.Equal(t, "A", results[0].Message.Content)

	status := mailbox.Status()
	assert.Equal(t, 2, status.TotalProcessed)
	assert.Zero(t, status.PendingCount)
	assert.False(t, status.IsProcessing)
}

func TestDispatcherRequeuesThenFails(t *testing.T) {
	t.Parallel()

	sessions := mocks.NewMockSessionControl(t)
	mailbox := newTestMailbox(MailboxOptions{})
	ctx := context.Background()
	_, err := mailbox.Enqueue(ctx, webInput("A"))
	require.NoError(t, err)

	sessions.EXPECT().SendMessage(mockAnyContext(), orchestrator, "A").Return(errors.New("no pane")).Times(3)

	dispatcher := NewDispatcher(DispatcherOptions{
		Mailbox:            mailbox,
		Sessions:           sessions,
		Session:            orchestrator,
		MaxDeliveryRetries: 2,
	})

	for want := 1; want <= 2; want++ {
		result, ok := dispatcher.DrainOnce(ctx)
		require.True(t, ok)
		assert.True(t, result.Requeued)
		assert.Equal(t, want, result.Message.RetryCount)
		assert.Error(t, result.Err)
	}

	result, ok := dispatcher.DrainOnce(ctx)
	require.True(t, ok)
	assert.False(t, result.Requeued)
	assert.Equal(t, domain.MessageStatusFailed, result.Message.Status)

	_, ok = dispatcher.DrainOnce(ctx)
	assert.False(t, ok)

	status := mailbox.Status()
	assert.Equal(t, 1, status.TotalFailed)
	history := mailbox.History()
	require.Len(t, history, 1)
	assert.Contains(t, history[0].Error, "no pane")
}

func TestDispatcherRehydratesSuspendedConsumer(t *testing.T) {
	t.Parallel()

	f := newCoordinatorFixture(t)
	f.suspendDev(t, "")

	f.expectStatus(domain.AgentStatusStarting)
	f.registrar.EXPECT().CreateSession(mockAnyContext(), mock.Anything).
		Return(domain.RegistrationResult{Success: true}, nil).Once()
	f.members.EXPECT().FindMemberBySession(mockAnyContext(), devSession).
		Return(domain.Member{ID: "dev", SessionName: devSession, Status: domain.AgentStatusActive}, nil).Once()
	f.suspensions.EXPECT().ReplaceAll(mockAnyContext(), mock.Anything).Return(nil).Once()
	f.sessions.EXPECT().SendMessage(mockAnyContext(), devSession, "wake up").Return(nil).Once()

	mailbox := newTestMailbox(MailboxOptions{})
	ctx := context.Background()
	_, err := mailbox.Enqueue(ctx, webInput("wake up"))
	require.NoError(t, err)

	dispatcher := NewDispatcher(DispatcherOptions{
		Mailbox:     mailbox,
		Coordinator: f.coordinator,
		Sessions:    f.sessions,
		Session:     devSession,
	})

	result, ok := dispatcher.DrainOnce(ctx)
	require.True(t, ok)
	assert.True(t, result.Delivered)
	assert.False(t, f.coordinator.IsSuspended(devSession))
}

func TestDispatcherRunStopsWithContext(t *testing.T) {
	t.Parallel()

	sessions := mocks.NewMockSessionControl(t)
	mailbox := newTestMailbox(MailboxOptions{})
	sessions.EXPECT().SendMessage(mockAnyContext(), orchestrator, "late").Return(nil).Once()

	dispatcher := NewDispatcher(DispatcherOptions{Mailbox: mailbox, Sessions: sessions, Session: orchestrator})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- dispatcher.Run(ctx, 5*time.Millisecond) }()

	_, err := mailbox.Enqueue(context.Background(), webInput("late"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return mailbox.Status().TotalProcessed == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}

	assert.Error(t, dispatcher.Run(context.Background(), 0))
}
