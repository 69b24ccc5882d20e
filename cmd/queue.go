package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/spf13/cobra"
)

func newQueueCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Manage the orchestrator mailbox",
	}

	cmd.AddCommand(
		newQueueAddCmd(app),
		newQueueListCmd(app),
		newQueueCancelCmd(app),
		newQueueStatusCmd(app),
		newQueueDrainCmd(app),
	)

	return cmd
}

func newQueueAddCmd(app *app) *cobra.Command {
	var conversationID string
	var source string
	var meta map[string]string

	cmd := &cobra.Command{
		Use:   "add <content...>",
		Short: "Enqueue a message for the orchestrator",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.EnqueueInput{
				Content:        strings.Join(args, " "),
				ConversationID: conversationID,
				Source:         domain.MessageSource(source),
			}
			if len(meta) > 0 {
				input.SourceMetadata = make(map[string]any, len(meta))
				for k, v := range meta {
					input.SourceMetadata[k] = v
				}
			}

			return withState(cmd, app, func(ctx context.Context) error {
				msg, err := app.mailbox.Enqueue(ctx, input)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Queued %s (pending: %d)\n", msg.ID, app.mailbox.Status().PendingCount)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&conversationID, "conversation", "cli", "Conversation ID")
	cmd.Flags().StringVar(&source, "source", string(domain.MessageSourceWebChat), "Message source (web_chat, slack, system_event)")
	cmd.Flags().StringToStringVar(&meta, "meta", nil, "Source metadata as key=value pairs")

	return cmd
}

func newQueueListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the in-flight and pending messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withState(cmd, app, func(_ context.Context) error {
				messages := app.mailbox.Pending()
				if current, ok := app.mailbox.Current(); ok {
					messages = append([]domain.QueuedMessage{current}, messages...)
				}

				if asJSON {
					return writeJSON(cmd.OutOrStdout(), messages)
				}
				if len(messages) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "queue is empty")
					return nil
				}
				for _, msg := range messages {
					writeMessageLine(cmd.OutOrStdout(), msg)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newQueueCancelCmd(app *app) *cobra.Command {
	var current bool

	cmd := &cobra.Command{
		Use:   "cancel [message-id]",
		Short: "Cancel a pending message, or the in-flight one with --current",
		Args: func(cmd *cobra.Command, args []string) error {
			if current && len(args) > 0 {
				return fmt.Errorf("--current does not take a message id")
			}
			if !current && len(args) != 1 {
				return fmt.Errorf("cancel requires a message id or --current")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withState(cmd, app, func(ctx context.Context) error {
				if current {
					msg, ok := app.mailbox.ForceCancelCurrent(ctx)
					if !ok {
						_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no message in flight")
						return nil
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cancelled in-flight message %s\n", msg.ID)
					return nil
				}

				if !app.mailbox.Cancel(ctx, args[0]) {
					return fmt.Errorf("message %q: %w", args[0], domain.ErrMessageNotFound)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cancelled %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&current, "current", false, "Force-cancel the in-flight message")

	return cmd
}

func newQueueStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show mailbox counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withState(cmd, app, func(_ context.Context) error {
				status := app.mailbox.Status()
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), status)
				}

				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "pending: %d\n", status.PendingCount)
				_, _ = fmt.Fprintf(out, "processing: %t\n", status.IsProcessing)
				if status.CurrentMessageID != "" {
					_, _ = fmt.Fprintf(out, "current: %s\n", status.CurrentMessageID)
				}
				_, _ = fmt.Fprintf(out, "processed: %d\n", status.TotalProcessed)
				_, _ = fmt.Fprintf(out, "failed: %d\n", status.TotalFailed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newQueueDrainCmd(app *app) *cobra.Command {
	var follow bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "drain",
		Short: "Deliver pending messages to the orchestrator session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withState(cmd, app, func(ctx context.Context) error {
				if follow {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Draining into %s every %s (ctrl-c to stop)\n", app.cfg.OrchestratorSession, interval)
					return app.dispatcher.Run(ctx, interval)
				}

				results := app.dispatcher.Drain(ctx)
				if len(results) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to deliver")
					return nil
				}

				for _, result := range results {
					switch {
					case result.Delivered:
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "delivered %s\n", result.Message.ID)
					case result.Requeued:
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "requeued %s (retry %d)\n", result.Message.ID, result.Message.RetryCount)
					default:
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "failed %s\n", result.Message.ID)
					}
				}
				if at, ok := app.activity.LastActivity(app.cfg.OrchestratorSession); ok {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s last active %s\n", app.cfg.OrchestratorSession, at.Format(time.RFC3339))
				}

				if last := results[len(results)-1]; last.Err != nil {
					return fmt.Errorf("deliver %s: %w", last.Message.ID, last.Err)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&follow, "follow", false, "Keep draining until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Poll interval with --follow")

	return cmd
}

func writeMessageLine(out io.Writer, msg domain.QueuedMessage) {
	line := fmt.Sprintf("%s\t%s\t%s\t%s", msg.ID, msg.Status, msg.Source, sanitizeForTerminal(msg.Content))
	if msg.RetryCount > 0 {
		line += fmt.Sprintf("\tretry=%d", msg.RetryCount)
	}
	_, _ = fmt.Fprintln(out, line)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
