// Package wire assembles the govboard object graph. A Container is built once
// per process from configuration and an open database handle; nothing here
// is global, so tests can build as many containers as they need.
package wire

import (
	"database/sql"
	"io"

	cliadapter "github.com/example/govboard/internal/adapters/cli"
	"github.com/example/govboard/internal/adapters/sqlite"
	"github.com/example/govboard/internal/app"
	"github.com/example/govboard/internal/config"
	"github.com/example/govboard/internal/ports/primary"
)

// Container holds the services (primary ports) backed by SQLite repositories.
type Container struct {
	HealthService     primary.HealthService
	EscalationService primary.EscalationService
	AnalyticsService  primary.AnalyticsService
	SettingsService   primary.SettingsService
}

// New wires every repository and service against database.
func New(cfg *config.Config, database *sql.DB) *Container {
	// Secondary ports
	projectRepo := sqlite.NewProjectRepository(database)
	gateRepo := sqlite.NewGateRepository(database)
	gateAssignmentRepo := sqlite.NewGateAssignmentRepository(database)
	complianceRepo := sqlite.NewComplianceRepository(database)
	actionRepo := sqlite.NewActionRepository(database)
	decisionRepo := sqlite.NewDecisionRepository(database)
	escalationRepo := sqlite.NewEscalationRepository(database)
	benefitRepo := sqlite.NewBenefitRepository(database)
	settingsRepo := sqlite.NewSettingsRepository(database)
	snapshotRepo := sqlite.NewHealthSnapshotRepository(database)

	return &Container{
		HealthService: app.NewHealthService(
			projectRepo,
			gateRepo,
			gateAssignmentRepo,
			complianceRepo,
			actionRepo,
			decisionRepo,
			escalationRepo,
			benefitRepo,
			settingsRepo,
			snapshotRepo,
		),
		EscalationService: app.NewEscalationService(
			escalationRepo,
			projectRepo,
			actionRepo,
			settingsRepo,
		),
		AnalyticsService: app.NewAnalyticsService(
			projectRepo,
			gateRepo,
			gateAssignmentRepo,
			complianceRepo,
			actionRepo,
			escalationRepo,
			benefitRepo,
			settingsRepo,
			snapshotRepo,
			cfg.HeatmapConcurrency,
		),
		SettingsService: app.NewSettingsService(settingsRepo),
	}
}

// HealthAdapter returns a new HealthAdapter writing to out.
// Adapters are stateless translators, so each call creates a new one.
func (c *Container) HealthAdapter(out io.Writer, format cliadapter.Format) *cliadapter.HealthAdapter {
	return cliadapter.NewHealthAdapter(c.HealthService, out, format)
}

// EscalationAdapter returns a new EscalationAdapter writing to out.
func (c *Container) EscalationAdapter(out io.Writer, format cliadapter.Format) *cliadapter.EscalationAdapter {
	return cliadapter.NewEscalationAdapter(c.EscalationService, out, format)
}

// AnalyticsAdapter returns a new AnalyticsAdapter writing to out.
func (c *Container) AnalyticsAdapter(out io.Writer, format cliadapter.Format) *cliadapter.AnalyticsAdapter {
	return cliadapter.NewAnalyticsAdapter(c.AnalyticsService, out, format)
}

// SettingsAdapter returns a new SettingsAdapter writing to out.
func (c *Container) SettingsAdapter(out io.Writer, format cliadapter.Format) *cliadapter.SettingsAdapter {
	return cliadapter.NewSettingsAdapter(c.SettingsService, out, format)
}
