package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_actual_spend_to_projects",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_health_snapshots_table",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_escalation_indexes",
		Up:      migrationV3,
	},
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB) error {
	if err := createVersionTable(db); err != nil {
		return err
	}

	// Get current schema version
	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		slog.Info("running migration", "version", migration.Version, "name", migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// CurrentVersion returns the highest applied migration version.
func CurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return version, nil
}

func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	var count int
	err := tx.QueryRow("SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// migrationV1 adds actual_spend so budget performance can use real variance
func migrationV1(tx *sql.Tx) error {
	exists, err := columnExists(tx, "projects", "actual_spend")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = tx.Exec("ALTER TABLE projects ADD COLUMN actual_spend REAL NOT NULL DEFAULT 0")
	return err
}

// migrationV2 adds the health_snapshots table backing the health trend
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS health_snapshots (
			id TEXT PRIMARY KEY,
			total INTEGER NOT NULL,
			on_time_delivery REAL NOT NULL,
			budget_performance REAL NOT NULL,
			risk REAL NOT NULL,
			compliance REAL NOT NULL,
			benefits_realization REAL NOT NULL,
			band TEXT NOT NULL,
			captured_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_health_snapshots_captured ON health_snapshots(captured_at);
	`)
	return err
}

// migrationV3 adds the indexes used by the escalation sweep
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_escalations_project ON escalations(project_id, status);
		CREATE INDEX IF NOT EXISTS idx_escalations_status ON escalations(status);
	`)
	return err
}
