package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/govboard/internal/config"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read and change portfolio settings",
		Long: fmt.Sprintf(`Read and change the JSON settings that tune scoring and escalation.

Keys:
  %s        weights of the five health components (must sum to 1)
  %s   hours after which an open escalation climbs each level`,
			config.KeyHealthWeights, config.KeyEscalationSLAHours),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get [key]",
		Short: "Show the effective value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			_, err = c.SettingsAdapter(cmd.OutOrStdout(), opts.format).Get(opts.context(cmd), args[0])
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set [key] [json-value]",
		Short: "Validate and store a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.services()
			if err != nil {
				return err
			}
			return c.SettingsAdapter(cmd.OutOrStdout(), opts.format).Set(opts.context(cmd), args[0], args[1])
		},
	})

	return cmd
}
