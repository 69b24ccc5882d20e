package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/bnema/agent-crew/internal/events"
	"github.com/spf13/cobra"
)

var errTaskNotAccepted = errors.New("task was not accepted")

func newMonitorCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Watch dispatched tasks until a worker accepts them",
	}

	cmd.AddCommand(newMonitorWatchCmd(app))

	return cmd
}

func newMonitorWatchCmd(app *app) *cobra.Command {
	var cfg domain.MonitoringConfig
	var dispatch bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Wait for a task file to move from its open path to its target path",
		Long:  "watch polls for the task file to leave --open and appear at --target. On timeout it interrupts worker sessions and resends --prompt to the orchestrator, up to --max-attempts retries.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.OrchestratorSession == "" {
				cfg.OrchestratorSession = app.cfg.OrchestratorSession
			}
			if !cmd.Flags().Changed("timeout") {
				cfg.Timeout = app.cfg.Monitor.Timeout
			}
			if !cmd.Flags().Changed("max-attempts") {
				cfg.MaxAttempts = app.cfg.Monitor.MaxAttempts
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return withState(cmd, app, func(ctx context.Context) error {
				return watchTask(ctx, cmd, app, cfg, dispatch)
			})
		},
	}

	cmd.Flags().StringVar(&cfg.MonitoringID, "id", "", "Monitoring ID (default: generated)")
	cmd.Flags().StringVar(&cfg.TaskID, "task", "", "Task ID used in events")
	cmd.Flags().StringVar(&cfg.OriginalPath, "open", "", "Task file path before acceptance")
	cmd.Flags().StringVar(&cfg.TargetPath, "target", "", "Task file path after acceptance")
	cmd.Flags().StringVar(&cfg.AssignmentPrompt, "prompt", "", "Assignment prompt resent on retry")
	cmd.Flags().StringVar(&cfg.OrchestratorSession, "orchestrator", "", "Orchestrator session (default: orchestrator.session)")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", 0, "Per-attempt timeout (default: monitor.timeout)")
	cmd.Flags().IntVar(&cfg.MaxAttempts, "max-attempts", 0, "Retries after the first attempt (default: monitor.max_attempts)")
	cmd.Flags().BoolVar(&dispatch, "dispatch", false, "Send --prompt to the orchestrator before watching")
	_ = cmd.MarkFlagRequired("open")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func watchTask(ctx context.Context, cmd *cobra.Command, app *app, cfg domain.MonitoringConfig, dispatch bool) error {
	sub := app.bus.Subscribe(events.Filter{Types: []events.EventType{
		events.EventTaskRetry,
		events.EventTaskAccepted,
		events.EventTaskFailed,
		events.EventMonitoringStopped,
	}})
	defer app.bus.Unsubscribe(sub)

	if dispatch {
		if cfg.AssignmentPrompt == "" {
			return fmt.Errorf("%w: --dispatch needs --prompt", domain.ErrValidation)
		}
		if err := app.sessions.SendMessage(ctx, cfg.OrchestratorSession, cfg.AssignmentPrompt); err != nil {
			return fmt.Errorf("dispatch assignment: %w", err)
		}
	}

	id, err := app.monitor.Start(ctx, cfg)
	if err != nil {
		return err
	}

	var seen []*events.Event
	var reason domain.StopReason
	label := fmt.Sprintf("Waiting for %s to be accepted...", taskLabel(cfg, id))

	err = runSpinner(ctx, cmd.ErrOrStderr(), label, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				app.monitor.Stop(context.WithoutCancel(ctx), id, domain.StopReasonManual)
				reason = domain.StopReasonManual
				return nil
			case event, ok := <-sub:
				if !ok {
					reason = domain.StopReasonShutdown
					return nil
				}
				if event.Payload["monitoringId"] != id {
					continue
				}
				seen = append(seen, event)
				if event.Type == events.EventMonitoringStopped {
					reason = domain.StopReason(fmt.Sprint(event.Payload["reason"]))
					return nil
				}
			}
		}
	})
	if err != nil {
		return err
	}

	for _, event := range seen {
		writeMonitorEvent(cmd.OutOrStdout(), event)
	}

	if reason != domain.StopReasonCompleted {
		return fmt.Errorf("%s stopped (%s): %w", taskLabel(cfg, id), reason, errTaskNotAccepted)
	}
	return nil
}

func writeMonitorEvent(out io.Writer, event *events.Event) {
	p := event.Payload
	switch event.Type {
	case events.EventTaskRetry:
		_, _ = fmt.Fprintf(out, "retry: attempt %v\n", p["attempt"])
	case events.EventTaskAccepted:
		elapsed := time.Duration(toInt64(p["elapsedMs"])) * time.Millisecond
		_, _ = fmt.Fprintf(out, "accepted: %v after %v attempt(s) in %s\n", p["targetPath"], p["attempts"], elapsed)
	case events.EventTaskFailed:
		_, _ = fmt.Fprintf(out, "failed: no acceptance after %v attempt(s)\n", p["attempts"])
	case events.EventMonitoringStopped:
		_, _ = fmt.Fprintf(out, "stopped: %v\n", p["reason"])
	}
}

func taskLabel(cfg domain.MonitoringConfig, id string) string {
	if cfg.TaskID != "" {
		return "task " + cfg.TaskID
	}
	return "job " + id
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
