package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/govboard/internal/ports/primary"
)

func newAnalyticsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Portfolio analytics",
	}

	cmd.AddCommand(newAnalyticsHeatmapCmd(opts))
	cmd.AddCommand(newAnalyticsTrendCmd(opts))
	cmd.AddCommand(newAnalyticsGatesCmd(opts))
	cmd.AddCommand(newAnalyticsComplianceCmd(opts))
	cmd.AddCommand(newAnalyticsRiskCmd(opts))
	return cmd
}

func newAnalyticsHeatmapCmd(opts *rootOptions) *cobra.Command {
	var filters primary.HeatmapFilters

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Place projects on the risk/value grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			_, err = c.AnalyticsAdapter(cmd.OutOrStdout(), opts.format).Heatmap(opts.context(cmd), filters)
			return err
		},
	}

	cmd.Flags().StringVar(&filters.GovernanceStatus, "governance", "", "Filter by governance status")
	cmd.Flags().StringVar(&filters.CurrentGateID, "gate", "", "Filter by current gate ID")
	cmd.Flags().StringVar(&filters.StrategicInitiativeID, "initiative", "", "Filter by strategic initiative ID")
	return cmd
}

func newAnalyticsTrendCmd(opts *rootOptions) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show the health score trend from stored snapshots",
		Long: `Show stored health snapshots from the last --days days followed by the live
score. Record snapshots with "govboard health --snapshot".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			_, err = c.AnalyticsAdapter(cmd.OutOrStdout(), opts.format).Trend(opts.context(cmd), days)
			return err
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 30, "Trend window in days")
	return cmd
}

func newAnalyticsGatesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "gates",
		Short: "Show mean time per gate and stuck projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			_, err = c.AnalyticsAdapter(cmd.OutOrStdout(), opts.format).Gates(opts.context(cmd))
			return err
		},
	}
}

func newAnalyticsComplianceCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compliance",
		Short: "Show compliance rates by policy and the top violators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			_, err = c.AnalyticsAdapter(cmd.OutOrStdout(), opts.format).Compliance(opts.context(cmd))
			return err
		},
	}
}

func newAnalyticsRiskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "risk [project-id]",
		Short: "Show one project's composite risk score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			_, err = c.AnalyticsAdapter(cmd.OutOrStdout(), opts.format).Risk(opts.context(cmd), args[0])
			return err
		},
	}
}
