package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/logging"
	"github.com/bnema/agent-crew/internal/ports"
	"go.uber.org/zap"
)

const DefaultMaxDeliveryRetries = 3

var errConsumerUnavailable = errors.New("consumer session could not be rehydrated")

type DispatcherOptions struct {
	Mailbox     *Mailbox
	Coordinator *Coordinator
	Sessions    ports.SessionControl
	Activity    ports.ActivityTracker
	// Session is the consumer every message is delivered to.
	Session            string
	MaxDeliveryRetries int
	Logger             *zap.Logger
}

// Dispatcher is the single processing loop that drains the mailbox into
// the consumer session. It owns the dequeue/complete pairing.
type Dispatcher struct {
	mailbox     *Mailbox
	coordinator *Coordinator
	sessions    ports.SessionControl
	activity    ports.ActivityTracker
	session     string
	maxRetries  int
	logger      *zap.Logger
}

type DrainResult struct {
	Message   domain.QueuedMessage
	Delivered bool
	Requeued  bool
	Err       error
}

func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	if opts.MaxDeliveryRetries < 0 {
		opts.MaxDeliveryRetries = DefaultMaxDeliveryRetries
	}

	return &Dispatcher{
		mailbox:     opts.Mailbox,
		coordinator: opts.Coordinator,
		sessions:    opts.Sessions,
		activity:    opts.Activity,
		session:     opts.Session,
		maxRetries:  opts.MaxDeliveryRetries,
		logger:      logging.Component(opts.Logger, "dispatcher"),
	}
}

// DrainOnce delivers the next pending message. It returns false when there
// was nothing to deliver.
func (d *Dispatcher) DrainOnce(ctx context.Context) (DrainResult, bool) {
	msg, ok := d.mailbox.Dequeue(ctx)
	if !ok {
		return DrainResult{}, false
	}

	logger := d.logger.With(
		zap.String("message_id", msg.ID),
		zap.String("session", d.session))

	err := d.deliver(ctx, msg)
	if err == nil {
		if d.activity != nil {
			d.activity.Touch(d.session)
		}
		d.mailbox.MarkCompleted(ctx, msg.ID, "delivered")
		logger.Debug("message delivered")

		msg.Status = domain.MessageStatusCompleted
		return DrainResult{Message: msg, Delivered: true}, true
	}

	if msg.RetryCount < d.maxRetries {
		requeued := d.mailbox.Requeue(ctx, msg)
		logger.Warn("delivery failed, requeued",
			zap.Int("retry_count", requeued.RetryCount),
			zap.Error(err))
		return DrainResult{Message: requeued, Requeued: true, Err: err}, true
	}

	d.mailbox.MarkFailed(ctx, msg.ID, err.Error())
	logger.Error("delivery failed, giving up",
		zap.Int("retry_count", msg.RetryCount),
		zap.Error(err))

	msg.Status = domain.MessageStatusFailed
	msg.Error = err.Error()
	return DrainResult{Message: msg, Err: err}, true
}

// Drain delivers messages until the queue is empty or a delivery fails.
func (d *Dispatcher) Drain(ctx context.Context) []DrainResult {
	var results []DrainResult
	for ctx.Err() == nil {
		result, ok := d.DrainOnce(ctx)
		if !ok {
			break
		}
		results = append(results, result)
		if result.Err != nil {
			break
		}
	}
	return results
}

// Run drains on every tick until ctx is done.
func (d *Dispatcher) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("dispatch interval must be positive")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.Drain(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg domain.QueuedMessage) error {
	if d.coordinator != nil && d.coordinator.IsSuspended(d.session) {
		d.logger.Info("consumer suspended, rehydrating", zap.String("session", d.session))
		if !d.coordinator.Rehydrate(ctx, d.session) {
			return errConsumerUnavailable
		}
	}

	if err := d.sessions.SendMessage(ctx, d.session, msg.Content); err != nil {
		return fmt.Errorf("send to %s: %w", d.session, err)
	}
	return nil
}
