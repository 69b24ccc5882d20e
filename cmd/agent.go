package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/spf13/cobra"
)

var errLifecycleRejected = errors.New("lifecycle transition rejected")

func newAgentCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage agent sessions",
	}

	cmd.AddCommand(
		newAgentAddCmd(app),
		newAgentListCmd(app),
		newAgentSuspendCmd(app),
		newAgentResumeCmd(app),
		newAgentStopCmd(app),
		newAgentTokenCmd(app),
	)

	return cmd
}

func newAgentAddCmd(app *app) *cobra.Command {
	var member domain.Member
	var role string
	var status string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a team member and its session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			member.Role = domain.Role(role)
			member.Status = domain.AgentStatus(status)
			if !member.Status.Valid() {
				return fmt.Errorf("%w: unsupported status %q", domain.ErrValidation, status)
			}

			if err := app.roster.AddMember(cmd.Context(), member); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s/%s (%s)\n", member.TeamID, member.ID, member.SessionName)
			return nil
		},
	}

	cmd.Flags().StringVar(&member.TeamID, "team", "", "Team ID")
	cmd.Flags().StringVar(&member.ID, "id", "", "Member ID")
	cmd.Flags().StringVar(&member.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&member.SessionName, "session", "", "Session name")
	cmd.Flags().StringVar(&role, "role", "", "Member role")
	cmd.Flags().StringVar(&status, "status", string(domain.AgentStatusActive), "Initial status")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func newAgentListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List team members and their lifecycle status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withState(cmd, app, func(ctx context.Context) error {
				members, err := app.roster.Members(ctx)
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd.OutOrStdout(), members)
				}
				if len(members) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no members")
					return nil
				}

				for _, member := range members {
					line := fmt.Sprintf("%s\t%s/%s\t%s\t%s",
						member.SessionName, member.TeamID, member.ID, member.Role, member.Status)
					if info, ok := app.coordinator.Suspended(member.SessionName); ok && info.HasContinuationToken() {
						line += "\tresumable"
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), sanitizeForTerminal(line))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newAgentSuspendCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suspend <session>",
		Short: "Stop an agent session while keeping its continuation token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := args[0]

			return withState(cmd, app, func(ctx context.Context) error {
				member, err := app.roster.FindMemberBySession(ctx, session)
				if err != nil {
					return err
				}

				ref := domain.AgentRef{
					SessionName: session,
					TeamID:      member.TeamID,
					MemberID:    member.ID,
					Role:        member.Role,
					Status:      member.Status,
				}
				if !app.coordinator.Suspend(ctx, ref) {
					return fmt.Errorf("suspend %s: %w", session, errLifecycleRejected)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Suspended %s\n", session)
				return nil
			})
		},
	}
}

func newAgentResumeCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "resume <session>",
		Aliases: []string{"rehydrate"},
		Short:   "Restart a suspended agent session from its continuation token",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := args[0]

			return withState(cmd, app, func(ctx context.Context) error {
				if !app.coordinator.IsSuspended(session) {
					return fmt.Errorf("%s is not suspended: %w", session, errLifecycleRejected)
				}

				label := fmt.Sprintf("Waiting for %s to come back...", session)
				err := runSpinner(ctx, cmd.ErrOrStderr(), label, func(ctx context.Context) error {
					if !app.coordinator.Rehydrate(ctx, session) {
						return fmt.Errorf("resume %s: %w", session, errLifecycleRejected)
					}
					return nil
				})
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Resumed %s\n", session)
				return nil
			})
		},
	}
}

func newAgentStopCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop <session>",
		Short: "Mark a suspended agent inactive and forget it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := args[0]

			return withState(cmd, app, func(ctx context.Context) error {
				if !app.coordinator.StopSuspended(ctx, session) {
					return fmt.Errorf("stop %s: %w", session, errLifecycleRejected)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stopped %s\n", session)
				return nil
			})
		},
	}
}

func newAgentTokenCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token <session> <token>",
		Short: "Record the continuation token for a member session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, token := args[0], strings.TrimSpace(args[1])
			if token == "" {
				return fmt.Errorf("%w: token is empty", domain.ErrValidation)
			}

			member, err := app.roster.FindMemberBySession(cmd.Context(), session)
			if err != nil {
				return err
			}

			meta := domain.TokenMetadata{
				SessionName: session,
				TeamID:      member.TeamID,
				MemberID:    member.ID,
				Role:        member.Role,
			}
			if err := app.tokens.Put(cmd.Context(), meta, token); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored continuation token for %s\n", session)
			return nil
		},
	}
}
