package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/govboard/internal/ports/secondary"
)

// ComplianceRepository implements secondary.ComplianceRepository with SQLite.
type ComplianceRepository struct {
	db *sql.DB
}

// NewComplianceRepository creates a new SQLite policy compliance repository.
func NewComplianceRepository(db *sql.DB) *ComplianceRepository {
	return &ComplianceRepository{db: db}
}

const complianceSelect = `
	SELECT pc.id, pc.project_id, p.name, pc.policy_id, pol.name, pc.status, pc.due_date
	FROM policy_compliance pc
	JOIN projects p ON p.id = pc.project_id
	JOIN policies pol ON pol.id = pc.policy_id
	WHERE 1=1`

// List retrieves compliance records joined with policy and project names.
func (r *ComplianceRepository) List(ctx context.Context, filters secondary.ComplianceFilters) ([]*secondary.ComplianceRecord, error) {
	query := complianceSelect
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND pc.project_id = ?"
		args = append(args, filters.ProjectID)
	}
	if filters.Status != "" {
		query += " AND pc.status = ?"
		args = append(args, filters.Status)
	}
	if filters.ExcludeArchived {
		query += " AND p.status != 'archived'"
	}

	query += " ORDER BY pol.name, p.name"

	return r.query(ctx, query, args...)
}

// ListOverdue retrieves records that are overdue as of now: either marked
// overdue, or not yet compliant/waived with a due date in the past.
func (r *ComplianceRepository) ListOverdue(ctx context.Context, now time.Time) ([]*secondary.ComplianceRecord, error) {
	query := complianceSelect + `
		AND p.status != 'archived'
		AND (pc.status = 'overdue'
			OR (pc.status = 'non-compliant' AND pc.due_date IS NOT NULL AND pc.due_date < ?))
		ORDER BY pc.due_date`
	return r.query(ctx, query, now.UTC())
}

func (r *ComplianceRepository) query(ctx context.Context, query string, args ...any) ([]*secondary.ComplianceRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list compliance records: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ComplianceRecord
	for rows.Next() {
		var dueDate sql.NullTime
		record := &secondary.ComplianceRecord{}
		err := rows.Scan(&record.ID, &record.ProjectID, &record.ProjectName, &record.PolicyID,
			&record.PolicyName, &record.Status, &dueDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan compliance record: %w", err)
		}
		record.DueDate = timePtr(dueDate)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list compliance records: %w", err)
	}

	return records, nil
}

// Ensure ComplianceRepository implements the interface
var _ secondary.ComplianceRepository = (*ComplianceRepository)(nil)
