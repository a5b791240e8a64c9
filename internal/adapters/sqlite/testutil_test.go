// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so that tests run against
// the authoritative schema and cannot drift from production.
//
// Do not hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/govboard/internal/db"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// every pooled connection to :memory: is a separate database
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

func mustExec(t *testing.T, database *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := database.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

// seedGate inserts a gate.
func seedGate(t *testing.T, database *sql.DB, id, name string, sequence int) {
	t.Helper()
	mustExec(t, database, "INSERT INTO gates (id, name, sequence) VALUES (?, ?, ?)", id, name, sequence)
}

// seedProject inserts a project with the given delivery status and optional end date.
func seedProject(t *testing.T, database *sql.DB, id, name, status string, endDate *time.Time) {
	t.Helper()
	var end any
	if endDate != nil {
		end = endDate.UTC()
	}
	mustExec(t, database,
		"INSERT INTO projects (id, name, status, end_date, budget, actual_spend) VALUES (?, ?, ?, ?, 1000, 500)",
		id, name, status, end,
	)
}

// seedPolicy inserts a policy.
func seedPolicy(t *testing.T, database *sql.DB, id, name string) {
	t.Helper()
	mustExec(t, database, "INSERT INTO policies (id, name) VALUES (?, ?)", id, name)
}

// seedCompliance inserts a compliance record.
func seedCompliance(t *testing.T, database *sql.DB, id, projectID, policyID, status string, due *time.Time) {
	t.Helper()
	var dueDate any
	if due != nil {
		dueDate = due.UTC()
	}
	mustExec(t, database,
		"INSERT INTO policy_compliance (id, project_id, policy_id, status, due_date) VALUES (?, ?, ?, ?, ?)",
		id, projectID, policyID, status, dueDate,
	)
}

// seedBenefit inserts a benefit.
func seedBenefit(t *testing.T, database *sql.DB, id, projectID string, value float64, status string) {
	t.Helper()
	mustExec(t, database,
		"INSERT INTO benefits (id, project_id, expected_value, realization_status) VALUES (?, ?, ?, ?)",
		id, projectID, value, status,
	)
}

// seedEscalation inserts an open escalation.
func seedEscalation(t *testing.T, database *sql.DB, id, projectID string, level int, raisedAt time.Time) {
	t.Helper()
	mustExec(t, database,
		"INSERT INTO escalations (id, project_id, type, level, reason, status, raised_by, raised_at) VALUES (?, ?, 'manual', ?, 'seeded', 'open', 'tester', ?)",
		id, projectID, level, raisedAt.UTC(),
	)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
