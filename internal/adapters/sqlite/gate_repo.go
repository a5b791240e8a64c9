package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/govboard/internal/ports/secondary"
)

// GateRepository implements secondary.GateRepository with SQLite.
type GateRepository struct {
	db *sql.DB
}

// NewGateRepository creates a new SQLite gate repository.
func NewGateRepository(db *sql.DB) *GateRepository {
	return &GateRepository{db: db}
}

// List retrieves all gates ordered by sequence.
func (r *GateRepository) List(ctx context.Context) ([]*secondary.GateRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, sequence FROM gates ORDER BY sequence")
	if err != nil {
		return nil, fmt.Errorf("failed to list gates: %w", err)
	}
	defer rows.Close()

	var gates []*secondary.GateRecord
	for rows.Next() {
		record := &secondary.GateRecord{}
		if err := rows.Scan(&record.ID, &record.Name, &record.Sequence); err != nil {
			return nil, fmt.Errorf("failed to scan gate: %w", err)
		}
		gates = append(gates, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list gates: %w", err)
	}

	return gates, nil
}

// GateAssignmentRepository implements secondary.GateAssignmentRepository with SQLite.
type GateAssignmentRepository struct {
	db *sql.DB
}

// NewGateAssignmentRepository creates a new SQLite project-gate assignment repository.
func NewGateAssignmentRepository(db *sql.DB) *GateAssignmentRepository {
	return &GateAssignmentRepository{db: db}
}

// ListProjectsByGate retrieves distinct (gate, project) pairs.
func (r *GateAssignmentRepository) ListProjectsByGate(ctx context.Context) ([]*secondary.GateProjectRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT pg.gate_id, pg.project_id, p.name
		FROM project_gates pg
		JOIN projects p ON p.id = pg.project_id
		ORDER BY pg.gate_id, pg.project_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects by gate: %w", err)
	}
	defer rows.Close()

	var records []*secondary.GateProjectRecord
	for rows.Next() {
		record := &secondary.GateProjectRecord{}
		if err := rows.Scan(&record.GateID, &record.ProjectID, &record.ProjectName); err != nil {
			return nil, fmt.Errorf("failed to scan gate project: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list projects by gate: %w", err)
	}

	return records, nil
}

// ListCompleted retrieves completed assignments with entry and exit timestamps.
func (r *GateAssignmentRepository) ListCompleted(ctx context.Context) ([]*secondary.GateAssignmentRecord, error) {
	return r.listByStatus(ctx, "completed", "failed to list completed assignments")
}

// ListInProgress retrieves in-progress assignments joined with project and gate names.
func (r *GateAssignmentRepository) ListInProgress(ctx context.Context) ([]*secondary.GateAssignmentRecord, error) {
	return r.listByStatus(ctx, "in-progress", "failed to list in-progress assignments")
}

func (r *GateAssignmentRepository) listByStatus(ctx context.Context, status, failure string) ([]*secondary.GateAssignmentRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pg.project_id, p.name, pg.gate_id, g.name, pg.status, pg.entered_at, pg.exited_at
		FROM project_gates pg
		JOIN projects p ON p.id = pg.project_id
		JOIN gates g ON g.id = pg.gate_id
		WHERE pg.status = ?
		ORDER BY g.sequence, pg.project_id`, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	defer rows.Close()

	var records []*secondary.GateAssignmentRecord
	for rows.Next() {
		var exitedAt sql.NullTime
		record := &secondary.GateAssignmentRecord{}
		err := rows.Scan(&record.ProjectID, &record.ProjectName, &record.GateID, &record.GateName,
			&record.Status, &record.EnteredAt, &exitedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		record.EnteredAt = record.EnteredAt.UTC()
		record.ExitedAt = timePtr(exitedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", failure, err)
	}

	return records, nil
}

// Ensure repositories implement the interfaces
var (
	_ secondary.GateRepository           = (*GateRepository)(nil)
	_ secondary.GateAssignmentRepository = (*GateAssignmentRepository)(nil)
)
