package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd(opts *rootOptions) *cobra.Command {
	var snapshot bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Show the portfolio health score",
		Long: `Compute the composite portfolio health score from on-time delivery, budget
performance, escalation risk, compliance and benefits realization.

With --snapshot the score is also stored for trend reporting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			_, err = c.HealthAdapter(cmd.OutOrStdout(), opts.format).Score(opts.context(cmd), snapshot)
			return err
		},
	}

	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Persist the score for trend reporting")
	return cmd
}

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the portfolio dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			_, err = c.HealthAdapter(cmd.OutOrStdout(), opts.format).Dashboard(opts.context(cmd))
			return err
		},
	}
}
