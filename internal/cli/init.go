package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/govboard/internal/db"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the govboard database",
		Long: `Create the govboard database at $GOVBOARD_DB_PATH (default ~/.govboard/govboard.db)
and bring its schema up to date. With --seed a demonstration portfolio is loaded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			database, err := opts.open()
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Fprintf(out, "✓ Database initialized at %s\n", opts.cfg.DBPath)

			if seed {
				if err := db.SeedFixtures(database, time.Now()); err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Fprintln(out, "✓ Demonstration portfolio loaded")
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  govboard dashboard")
			fmt.Fprintln(out, "  govboard escalation sweep")
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Load a demonstration portfolio")
	return cmd
}
