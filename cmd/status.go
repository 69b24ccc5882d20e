package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	statusadapter "github.com/bnema/agent-crew/internal/adapters/render/status"
	"github.com/bnema/agent-crew/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var historyLimit int
	var watch time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the mailbox and suspended agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withState(cmd, app, func(ctx context.Context) error {
				if watch > 0 {
					if asJSON {
						return fmt.Errorf("%w: --watch cannot be combined with --json", domain.ErrValidation)
					}
					return app.statusWatcher(ctx, func(ctx context.Context) (statusadapter.Dashboard, error) {
						return diskDashboard(ctx, app)
					}, statusadapter.WatchOptions{
						RenderOptions: statusadapter.RenderOptions{HistoryLimit: historyLimit},
						Interval:      watch,
						Now:           app.now,
						Input:         cmd.InOrStdin(),
						Output:        cmd.OutOrStdout(),
					})
				}

				dashboard := loadDashboard(app)
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), dashboard)
				}

				rendered, err := app.statusRenderer(dashboard, statusadapter.RenderOptions{
					Now:          app.now(),
					HistoryLimit: historyLimit,
				})
				if err != nil {
					return fmt.Errorf("render status: %w", err)
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().IntVar(&historyLimit, "history", 10, "Recent messages to show (0 for all)")
	cmd.Flags().DurationVar(&watch, "watch", 0, "Redraw from disk at this interval until q is pressed")

	return cmd
}

func loadDashboard(app *app) statusadapter.Dashboard {
	dashboard := statusadapter.Dashboard{
		Status:    app.mailbox.Status(),
		MaxQueue:  app.cfg.Mailbox.MaxQueue,
		Pending:   sanitizeMessages(app.mailbox.Pending()),
		History:   sanitizeMessages(app.mailbox.History()),
		Suspended: app.coordinator.SuspendedAgents(),
		Jobs:      app.monitor.ActiveJobs(),
	}
	if current, ok := app.mailbox.Current(); ok {
		current.Content = sanitizeForTerminal(current.Content)
		dashboard.Current = &current
	}
	return dashboard
}

// diskDashboard re-reads the persisted mailbox and suspended set so a
// watching process sees changes made by other commands.
func diskDashboard(ctx context.Context, app *app) (statusadapter.Dashboard, error) {
	snapshot, err := app.snapshots.Load(ctx)
	if err != nil && !errors.Is(err, domain.ErrSnapshotNotFound) {
		return statusadapter.Dashboard{}, fmt.Errorf("load mailbox snapshot: %w", err)
	}
	suspended, err := app.suspensions.List(ctx)
	if err != nil {
		return statusadapter.Dashboard{}, fmt.Errorf("load suspended agents: %w", err)
	}

	dashboard := statusadapter.Dashboard{
		Status: domain.MailboxStatus{
			PendingCount:   len(snapshot.Queue),
			IsProcessing:   snapshot.CurrentMessage != nil,
			TotalProcessed: snapshot.TotalProcessed,
			TotalFailed:    snapshot.TotalFailed,
		},
		MaxQueue:  app.cfg.Mailbox.MaxQueue,
		Pending:   sanitizeMessages(snapshot.Queue),
		History:   sanitizeMessages(snapshot.History),
		Suspended: suspended,
		Jobs:      app.monitor.ActiveJobs(),
	}
	if current := snapshot.CurrentMessage; current != nil {
		msg := current.Clone()
		msg.Content = sanitizeForTerminal(msg.Content)
		dashboard.Current = &msg
		dashboard.Status.CurrentMessageID = msg.ID
	}
	return dashboard, nil
}

func sanitizeMessages(messages []domain.QueuedMessage) []domain.QueuedMessage {
	for i := range messages {
		messages[i].Content = sanitizeForTerminal(messages[i].Content)
		messages[i].Error = sanitizeForTerminal(messages[i].Error)
	}
	return messages
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' {
			return -1
		}
		return r
	}, value)
}
