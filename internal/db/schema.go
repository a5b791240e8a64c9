package db

import "database/sql"

// SchemaSQL is the complete modern schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// This is the single source of truth for the database schema. Repository tests
// build their in-memory databases from GetSchemaSQL() so that a column
// referenced by an adapter but missing here fails with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Run the sqlite adapter tests to verify alignment
const SchemaSQL = `
-- Projects (portfolio members; governance_status is owned by the escalation engine)
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('planned', 'in-progress', 'blocked', 'done', 'archived')) DEFAULT 'planned',
	governance_status TEXT NOT NULL CHECK(governance_status IN ('on-track', 'at-risk', 'blocked', 'escalated')) DEFAULT 'on-track',
	end_date DATETIME,
	budget REAL NOT NULL DEFAULT 0,
	actual_spend REAL NOT NULL DEFAULT 0,
	current_gate_id TEXT,
	strategic_initiative_id TEXT,
	alignment_score REAL NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (current_gate_id) REFERENCES gates(id)
);

CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);
CREATE INDEX IF NOT EXISTS idx_projects_governance ON projects(governance_status);

-- Gates (sequenced governance stages; reference data)
CREATE TABLE IF NOT EXISTS gates (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	sequence INTEGER NOT NULL UNIQUE
);

-- Project gate assignments
CREATE TABLE IF NOT EXISTS project_gates (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id TEXT NOT NULL,
	gate_id TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('in-progress', 'completed')) DEFAULT 'in-progress',
	entered_at DATETIME NOT NULL,
	exited_at DATETIME,
	CHECK (exited_at IS NULL OR (status = 'completed' AND exited_at >= entered_at)),
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	FOREIGN KEY (gate_id) REFERENCES gates(id)
);

CREATE INDEX IF NOT EXISTS idx_project_gates_gate ON project_gates(gate_id, status);

-- Policies and per-project compliance
CREATE TABLE IF NOT EXISTS policies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS policy_compliance (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	policy_id TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('compliant', 'waived', 'non-compliant', 'overdue')),
	due_date DATETIME,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	FOREIGN KEY (policy_id) REFERENCES policies(id)
);

CREATE INDEX IF NOT EXISTS idx_policy_compliance_project ON policy_compliance(project_id);

-- Decisions (written elsewhere; read-only here)
CREATE TABLE IF NOT EXISTS decisions (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	title TEXT NOT NULL,
	outcome TEXT,
	decided_at DATETIME NOT NULL,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_decisions_decided_at ON decisions(decided_at);

-- Governance actions
CREATE TABLE IF NOT EXISTS governance_actions (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	title TEXT NOT NULL,
	priority TEXT NOT NULL CHECK(priority IN ('critical', 'high', 'medium', 'low')) DEFAULT 'medium',
	status TEXT NOT NULL CHECK(status IN ('pending', 'in-progress', 'done')) DEFAULT 'pending',
	due_date DATETIME,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_governance_actions_open ON governance_actions(status, priority);

-- Benefits
CREATE TABLE IF NOT EXISTS benefits (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	description TEXT,
	expected_value REAL NOT NULL DEFAULT 0,
	realization_status TEXT NOT NULL CHECK(realization_status IN ('not-yet', 'partial', 'full')) DEFAULT 'not-yet',
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

-- Escalations
CREATE TABLE IF NOT EXISTS escalations (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	type TEXT NOT NULL,
	level INTEGER NOT NULL CHECK(level BETWEEN 1 AND 4),
	reason TEXT,
	status TEXT NOT NULL CHECK(status IN ('open', 'resolved')) DEFAULT 'open',
	raised_by TEXT NOT NULL,
	raised_at DATETIME NOT NULL,
	resolution TEXT,
	resolved_by TEXT,
	resolved_at DATETIME,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_escalations_project ON escalations(project_id, status);
CREATE INDEX IF NOT EXISTS idx_escalations_status ON escalations(status);

-- Settings (JSON values under namespaced keys)
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Health snapshots (persisted portfolio health scores for trend reporting)
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
`

// InitSchema creates the schema on a fresh database, or runs pending
// migrations on an existing one.
func InitSchema(db *sql.DB) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		// schema_version table exists - run any pending migrations
		return RunMigrations(db)
	}

	var projectTables int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='projects'").Scan(&projectTables)
	if err != nil {
		return err
	}
	if projectTables > 0 {
		// Pre-versioning database - migrate it forward
		return RunMigrations(db)
	}

	// Completely fresh install - create modern schema directly and mark
	// every migration as applied
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
