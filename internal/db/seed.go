package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with a small demonstration portfolio.
// Dates are relative to now so the dashboard always has something overdue.
func SeedFixtures(database *sql.DB, now time.Time) error {
	now = now.UTC()
	day := 24 * time.Hour

	gates := []struct {
		id, name string
		seq      int
	}{
		{"GATE-1", "Ideation", 1},
		{"GATE-2", "Business Case", 2},
		{"GATE-3", "Design", 3},
		{"GATE-4", "Build", 4},
		{"GATE-5", "Benefits Review", 5},
	}
	for _, g := range gates {
		if _, err := database.Exec(
			"INSERT INTO gates (id, name, sequence) VALUES (?, ?, ?)",
			g.id, g.name, g.seq,
		); err != nil {
			return fmt.Errorf("seed gates: %w", err)
		}
	}

	projects := []struct {
		id, name, status, gate, initiative string
		endOffset                          time.Duration
		budget, spend, alignment           float64
	}{
		{"PRJ-001", "Workspace Modernization", "in-progress", "GATE-4", "SI-CLOUD", 45 * day, 1200000, 900000, 82},
		{"PRJ-002", "Data Platform Consolidation", "in-progress", "GATE-3", "SI-DATA", -12 * day, 800000, 950000, 74},
		{"PRJ-003", "Identity Federation", "done", "GATE-5", "SI-SECURITY", -40 * day, 300000, 280000, 90},
		{"PRJ-004", "Customer Portal Refresh", "blocked", "GATE-2", "SI-CX", 120 * day, 500000, 50000, 61},
		{"PRJ-005", "Legacy ERP Retirement", "planned", "GATE-1", "SI-CLOUD", 300 * day, 2000000, 0, 55},
	}
	for _, p := range projects {
		if _, err := database.Exec(
			`INSERT INTO projects (id, name, status, governance_status, end_date, budget, actual_spend, current_gate_id, strategic_initiative_id, alignment_score)
			 VALUES (?, ?, ?, 'on-track', ?, ?, ?, ?, ?, ?)`,
			p.id, p.name, p.status, now.Add(p.endOffset), p.budget, p.spend, p.gate, p.initiative, p.alignment,
		); err != nil {
			return fmt.Errorf("seed projects: %w", err)
		}
	}

	assignments := []struct {
		project, gate, status string
		entered               time.Duration
		exited                time.Duration // zero means still in gate
	}{
		{"PRJ-001", "GATE-1", "completed", -300 * day, -280 * day},
		{"PRJ-001", "GATE-2", "completed", -280 * day, -250 * day},
		{"PRJ-001", "GATE-3", "completed", -250 * day, -190 * day},
		{"PRJ-001", "GATE-4", "in-progress", -190 * day, 0},
		{"PRJ-002", "GATE-1", "completed", -200 * day, -170 * day},
		{"PRJ-002", "GATE-2", "completed", -170 * day, -150 * day},
		{"PRJ-002", "GATE-3", "in-progress", -150 * day, 0},
		{"PRJ-003", "GATE-4", "completed", -160 * day, -60 * day},
		{"PRJ-003", "GATE-5", "in-progress", -60 * day, 0},
		{"PRJ-004", "GATE-1", "completed", -90 * day, -75 * day},
		{"PRJ-004", "GATE-2", "in-progress", -75 * day, 0},
		{"PRJ-005", "GATE-1", "in-progress", -10 * day, 0},
	}
	for _, a := range assignments {
		var exited any
		if a.exited != 0 {
			exited = now.Add(a.exited)
		}
		if _, err := database.Exec(
			"INSERT INTO project_gates (project_id, gate_id, status, entered_at, exited_at) VALUES (?, ?, ?, ?, ?)",
			a.project, a.gate, a.status, now.Add(a.entered), exited,
		); err != nil {
			return fmt.Errorf("seed project gates: %w", err)
		}
	}

	policies := []struct{ id, name string }{
		{"POL-SEC", "Security Review"},
		{"POL-PRIV", "Privacy Impact Assessment"},
		{"POL-ARCH", "Architecture Board Sign-off"},
	}
	for _, p := range policies {
		if _, err := database.Exec("INSERT INTO policies (id, name) VALUES (?, ?)", p.id, p.name); err != nil {
			return fmt.Errorf("seed policies: %w", err)
		}
	}

	compliance := []struct {
		id, project, policy, status string
		due                         time.Duration
	}{
		{"PC-001", "PRJ-001", "POL-SEC", "compliant", -30 * day},
		{"PC-002", "PRJ-001", "POL-PRIV", "compliant", -20 * day},
		{"PC-003", "PRJ-001", "POL-ARCH", "waived", -10 * day},
		{"PC-004", "PRJ-002", "POL-SEC", "non-compliant", -5 * day},
		{"PC-005", "PRJ-002", "POL-PRIV", "overdue", -15 * day},
		{"PC-006", "PRJ-002", "POL-ARCH", "compliant", -40 * day},
		{"PC-007", "PRJ-003", "POL-SEC", "compliant", -90 * day},
		{"PC-008", "PRJ-004", "POL-SEC", "non-compliant", 14 * day},
		{"PC-009", "PRJ-005", "POL-ARCH", "compliant", 60 * day},
	}
	for _, c := range compliance {
		if _, err := database.Exec(
			"INSERT INTO policy_compliance (id, project_id, policy_id, status, due_date) VALUES (?, ?, ?, ?, ?)",
			c.id, c.project, c.policy, c.status, now.Add(c.due),
		); err != nil {
			return fmt.Errorf("seed compliance: %w", err)
		}
	}

	actions := []struct {
		id, project, title, priority, status string
		due                                  time.Duration
	}{
		{"ACT-001", "PRJ-002", "Remediate security findings", "critical", "in-progress", -3 * day},
		{"ACT-002", "PRJ-002", "Re-baseline schedule", "high", "pending", 2 * day},
		{"ACT-003", "PRJ-001", "Confirm vendor contract", "medium", "pending", 5 * day},
		{"ACT-004", "PRJ-004", "Unblock portal design sign-off", "high", "pending", -8 * day},
		{"ACT-005", "PRJ-003", "Close out benefits register", "low", "done", -1 * day},
	}
	for _, a := range actions {
		if _, err := database.Exec(
			"INSERT INTO governance_actions (id, project_id, title, priority, status, due_date) VALUES (?, ?, ?, ?, ?, ?)",
			a.id, a.project, a.title, a.priority, a.status, now.Add(a.due),
		); err != nil {
			return fmt.Errorf("seed actions: %w", err)
		}
	}

	benefits := []struct {
		id, project, description, status string
		value                            float64
	}{
		{"BEN-001", "PRJ-001", "Licence consolidation savings", "partial", 650000},
		{"BEN-002", "PRJ-002", "Reduced reporting effort", "not-yet", 400000},
		{"BEN-003", "PRJ-003", "Fewer access incidents", "full", 250000},
		{"BEN-004", "PRJ-004", "Higher self-service adoption", "not-yet", 300000},
		{"BEN-005", "PRJ-005", "Decommissioned hosting", "not-yet", 900000},
	}
	for _, b := range benefits {
		if _, err := database.Exec(
			"INSERT INTO benefits (id, project_id, description, expected_value, realization_status) VALUES (?, ?, ?, ?, ?)",
			b.id, b.project, b.description, b.value, b.status,
		); err != nil {
			return fmt.Errorf("seed benefits: %w", err)
		}
	}

	decisions := []struct {
		id, project, title, outcome string
		at                          time.Duration
	}{
		{"DEC-001", "PRJ-001", "Approve build gate entry", "approved", -190 * day},
		{"DEC-002", "PRJ-002", "Extend design phase", "approved", -30 * day},
		{"DEC-003", "PRJ-004", "Pause portal procurement", "deferred", -12 * day},
		{"DEC-004", "PRJ-003", "Accept benefits review", "approved", -5 * day},
		{"DEC-005", "PRJ-005", "Fund discovery sprint", "approved", -2 * day},
		{"DEC-006", "PRJ-001", "Switch hosting region", "rejected", -1 * day},
	}
	for _, d := range decisions {
		if _, err := database.Exec(
			"INSERT INTO decisions (id, project_id, title, outcome, decided_at) VALUES (?, ?, ?, ?, ?)",
			d.id, d.project, d.title, d.outcome, now.Add(d.at),
		); err != nil {
			return fmt.Errorf("seed decisions: %w", err)
		}
	}

	escalations := []struct {
		id, project, kind, reason string
		level                     int
		raised                    time.Duration
	}{
		{"ESC-001", "PRJ-002", "manual", "Schedule slipped past committed date", 1, -30 * time.Hour},
		{"ESC-002", "PRJ-004", "manual", "Design authority unavailable", 2, -80 * time.Hour},
	}
	for _, e := range escalations {
		if _, err := database.Exec(
			"INSERT INTO escalations (id, project_id, type, level, reason, status, raised_by, raised_at) VALUES (?, ?, ?, ?, ?, 'open', 'seed', ?)",
			e.id, e.project, e.kind, e.level, e.reason, now.Add(e.raised),
		); err != nil {
			return fmt.Errorf("seed escalations: %w", err)
		}
		if _, err := database.Exec(
			"UPDATE projects SET governance_status = 'escalated' WHERE id = ?", e.project,
		); err != nil {
			return fmt.Errorf("seed escalations: %w", err)
		}
	}

	return nil
}
