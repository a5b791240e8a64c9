package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/govboard/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new SQLite project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, status, governance_status, end_date, budget, actual_spend, current_gate_id, strategic_initiative_id, alignment_score`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*secondary.ProjectRecord, error) {
	var (
		endDate    sql.NullTime
		gateID     sql.NullString
		initiative sql.NullString
	)
	record := &secondary.ProjectRecord{}
	err := row.Scan(&record.ID, &record.Name, &record.Status, &record.GovernanceStatus, &endDate,
		&record.Budget, &record.ActualSpend, &gateID, &initiative, &record.AlignmentScore)
	if err != nil {
		return nil, err
	}
	record.EndDate = timePtr(endDate)
	record.CurrentGateID = gateID.String
	record.StrategicInitiativeID = initiative.String
	return record, nil
}

// List retrieves projects matching the given filters.
func (r *ProjectRepository) List(ctx context.Context, filters secondary.ProjectFilters) ([]*secondary.ProjectRecord, error) {
	query := "SELECT " + projectColumns + " FROM projects WHERE 1=1"
	args := []any{}

	if filters.ExcludeArchived {
		query += " AND status != 'archived'"
	}
	if filters.GovernanceStatus != "" {
		query += " AND governance_status = ?"
		args = append(args, filters.GovernanceStatus)
	}
	if filters.CurrentGateID != "" {
		query += " AND current_gate_id = ?"
		args = append(args, filters.CurrentGateID)
	}
	if filters.StrategicInitiativeID != "" {
		query += " AND strategic_initiative_id = ?"
		args = append(args, filters.StrategicInitiativeID)
	}

	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*secondary.ProjectRecord
	for rows.Next() {
		record, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	record, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return record, nil
}

// UpdateGovernanceStatus sets a single project's governance status.
func (r *ProjectRepository) UpdateGovernanceStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE projects SET governance_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update governance status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("project %s: %w", id, secondary.ErrNotFound)
	}

	return nil
}

// Ensure ProjectRepository implements the interface
var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
