package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/govboard/internal/ports/primary"
	"github.com/example/govboard/internal/wire"
)

func newEscalationCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escalation",
		Short: "Manage project escalations",
		Long: `Raise, resolve and report escalations. Open escalations climb the level
ladder as their SLA thresholds pass; run "escalation sweep" on a schedule.`,
	}

	cmd.AddCommand(newEscalationListCmd(opts))
	cmd.AddCommand(newEscalationShowCmd(opts))
	cmd.AddCommand(newEscalationCreateCmd(opts))
	cmd.AddCommand(newEscalationResolveCmd(opts))
	cmd.AddCommand(newEscalationSweepCmd(opts))
	cmd.AddCommand(newEscalationDetectCmd(opts))
	cmd.AddCommand(newEscalationSummaryCmd(opts))
	return cmd
}

// afterEscalationChange runs the portfolio refresh hook once an escalation
// command has written something.
func afterEscalationChange(ctx context.Context, c *wire.Container) error {
	return c.HealthService.RefreshPortfolioMetrics(ctx)
}

func newEscalationListCmd(opts *rootOptions) *cobra.Command {
	var filters primary.EscalationFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List escalations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			_, err = c.EscalationAdapter(cmd.OutOrStdout(), opts.format).List(opts.context(cmd), filters)
			return err
		},
	}

	cmd.Flags().StringVarP(&filters.ProjectID, "project", "p", "", "Filter by project ID")
	cmd.Flags().StringVarP(&filters.Status, "status", "s", "", "Filter by status (open, resolved)")
	cmd.Flags().StringVarP(&filters.Type, "type", "t", "", "Filter by escalation type")
	return cmd
}

func newEscalationShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [escalation-id]",
		Short: "Show escalation details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			_, err = c.EscalationAdapter(cmd.OutOrStdout(), opts.format).Show(opts.context(cmd), args[0])
			return err
		},
	}
}

func newEscalationCreateCmd(opts *rootOptions) *cobra.Command {
	var req primary.CreateEscalationRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Raise an escalation against a project",
		Long: `Raise an escalation against a project and mark the project escalated.
The raiser defaults to --actor or $GOVBOARD_ACTOR.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.ProjectID == "" {
				return fmt.Errorf("--project is required")
			}
			c, err := opts.services()
			if err != nil {
				return err
			}
			ctx := opts.context(cmd)
			if _, err := c.EscalationAdapter(cmd.OutOrStdout(), opts.format).Create(ctx, req); err != nil {
				return err
			}
			return afterEscalationChange(ctx, c)
		},
	}

	cmd.Flags().StringVarP(&req.ProjectID, "project", "p", "", "Project ID (required)")
	cmd.Flags().StringVarP(&req.Type, "type", "t", "", "Escalation type (default manual)")
	cmd.Flags().IntVarP(&req.Level, "level", "l", 1, "Starting level (1-4)")
	cmd.Flags().StringVarP(&req.Reason, "reason", "r", "", "Why the escalation is raised")
	cmd.Flags().StringVar(&req.RaisedBy, "raised-by", "", "Raiser identity (overrides --actor)")
	return cmd
}

func newEscalationResolveCmd(opts *rootOptions) *cobra.Command {
	var req primary.ResolveEscalationRequest

	cmd := &cobra.Command{
		Use:   "resolve [escalation-id]",
		Short: "Resolve an open escalation",
		Long: `Resolve an open escalation. The project returns to on-track once it has no
other open escalations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Resolution == "" {
				return fmt.Errorf("--resolution is required")
			}
			req.EscalationID = args[0]

			c, err := opts.services()
			if err != nil {
				return err
			}
			ctx := opts.context(cmd)
			if err := c.EscalationAdapter(cmd.OutOrStdout(), opts.format).Resolve(ctx, req); err != nil {
				return err
			}
			return afterEscalationChange(ctx, c)
		},
	}

	cmd.Flags().StringVar(&req.Resolution, "resolution", "", "How the escalation was resolved (required)")
	cmd.Flags().StringVar(&req.ResolvedBy, "resolved-by", "", "Resolver identity (overrides --actor)")
	return cmd
}

func newEscalationSweepCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Raise open escalations whose SLA thresholds have passed",
		Long: `Compare every open escalation against the configured SLA hours and raise
its level where a threshold has passed. Levels never decrease, so the sweep is
safe to repeat.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			ctx := opts.context(cmd)
			result, err := c.EscalationAdapter(cmd.OutOrStdout(), opts.format).Sweep(ctx)
			if err != nil {
				return err
			}
			if result.Escalated == 0 {
				return nil
			}
			return afterEscalationChange(ctx, c)
		},
	}
}

func newEscalationDetectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Escalate projects with overdue critical or high actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			ctx := opts.context(cmd)
			result, err := c.EscalationAdapter(cmd.OutOrStdout(), opts.format).Detect(ctx)
			if err != nil {
				return err
			}
			if len(result.Created) == 0 {
				return nil
			}
			return afterEscalationChange(ctx, c)
		},
	}
}

func newEscalationSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Summarise escalations across the portfolio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			_, err = c.EscalationAdapter(cmd.OutOrStdout(), opts.format).Summary(opts.context(cmd))
			return err
		},
	}
}
