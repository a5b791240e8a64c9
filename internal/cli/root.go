// Package cli defines the govboard cobra commands.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/govboard/internal/adapters/cli"
	"github.com/example/govboard/internal/config"
	"github.com/example/govboard/internal/ctxutil"
	"github.com/example/govboard/internal/db"
	"github.com/example/govboard/internal/version"
	"github.com/example/govboard/internal/wire"
)

// rootOptions carries state shared by every subcommand. The database is
// opened on first use so commands that never touch it stay cheap.
type rootOptions struct {
	output string
	actor  string

	cfg       *config.Config
	format    cliadapter.Format
	database  *sql.DB
	container *wire.Container
}

// NewRootCmd returns the govboard root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{})
}

// Execute runs the root command and releases the database afterwards.
func Execute(ctx context.Context) error {
	opts := &rootOptions{}
	cmd := newRootCmd(opts)
	defer opts.close()
	return cmd.ExecuteContext(ctx)
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "govboard",
		Short:   "Portfolio health, escalation and analytics for governed projects",
		Version: version.String(),
		Long: `govboard scores the health of a project portfolio, escalates overdue
issues through a four-level SLA ladder and reports portfolio analytics.

Configuration is read from GOVBOARD_* environment variables.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}
	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format: table, yaml or json")
	cmd.PersistentFlags().StringVar(&opts.actor, "actor", "", "Identity recorded when raising or resolving escalations (default $GOVBOARD_ACTOR)")

	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newHealthCmd(opts))
	cmd.AddCommand(newDashboardCmd(opts))
	cmd.AddCommand(newEscalationCmd(opts))
	cmd.AddCommand(newAnalyticsCmd(opts))
	cmd.AddCommand(newSettingsCmd(opts))

	return cmd
}

func (o *rootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	o.cfg = cfg
	slog.SetDefault(cfg.NewLogger(cmd.ErrOrStderr()))

	format, err := cliadapter.ParseFormat(o.output)
	if err != nil {
		return err
	}
	o.format = format

	if o.actor == "" {
		o.actor = cfg.Actor
	}
	return nil
}

// open returns the database handle, opening and migrating it on first use.
func (o *rootOptions) open() (*sql.DB, error) {
	if o.database != nil {
		return o.database, nil
	}
	database, err := db.Open(o.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("database opened", "path", o.cfg.DBPath)
	o.database = database
	return database, nil
}

func (o *rootOptions) services() (*wire.Container, error) {
	if o.container != nil {
		return o.container, nil
	}
	database, err := o.open()
	if err != nil {
		return nil, err
	}
	o.container = wire.New(o.cfg, database)
	return o.container, nil
}

// context returns the command context carrying the acting identity.
func (o *rootOptions) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.actor != "" {
		ctx = ctxutil.WithActorID(ctx, o.actor)
	}
	return ctx
}

func (o *rootOptions) close() error {
	if o.database == nil {
		return nil
	}
	err := o.database.Close()
	o.database = nil
	o.container = nil
	return err
}
