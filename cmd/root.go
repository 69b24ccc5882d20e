package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "crew",
		Short:         "crew: queue work for an orchestrator and manage agent sessions",
		Long:          "crew feeds an orchestrator session through a persistent mailbox, suspends and resumes agent sessions while keeping their continuation tokens, and watches dispatched tasks until a worker picks them up.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newQueueCmd(app),
		newAgentCmd(app),
		newMonitorCmd(app),
		newStatusCmd(app),
	)

	return rootCmd
}

// withState restores persisted state before fn and flushes it afterwards.
func withState(cmd *cobra.Command, app *app, fn func(ctx context.Context) error) (err error) {
	ctx := cmd.Context()
	if err := app.load(ctx); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.close(context.WithoutCancel(ctx)))
	}()

	return fn(ctx)
}
