package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/govboard/internal/ports/secondary"
)

// ActionRepository implements secondary.ActionRepository with SQLite.
type ActionRepository struct {
	db *sql.DB
}

// NewActionRepository creates a new SQLite governance action repository.
func NewActionRepository(db *sql.DB) *ActionRepository {
	return &ActionRepository{db: db}
}

const actionSelect = `
	SELECT a.id, a.project_id, p.name, a.title, a.priority, a.status, a.due_date
	FROM governance_actions a
	JOIN projects p ON p.id = a.project_id
	WHERE 1=1`

// List retrieves actions matching the given filters.
func (r *ActionRepository) List(ctx context.Context, filters secondary.ActionFilters) ([]*secondary.ActionRecord, error) {
	query := actionSelect
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND a.project_id = ?"
		args = append(args, filters.ProjectID)
	}
	if filters.OpenOnly {
		query += " AND a.status IN ('pending', 'in-progress')"
	}
	if filters.DueBefore != nil {
		query += " AND a.due_date IS NOT NULL AND a.due_date < ?"
		args = append(args, filters.DueBefore.UTC())
	}

	query += " ORDER BY a.due_date, a.id"

	return r.query(ctx, query, args...)
}

// ListOverdueCritical retrieves open critical/high actions due before now.
func (r *ActionRepository) ListOverdueCritical(ctx context.Context, now time.Time) ([]*secondary.ActionRecord, error) {
	query := actionSelect + `
		AND a.priority IN ('critical', 'high')
		AND a.status IN ('pending', 'in-progress')
		AND a.due_date IS NOT NULL AND a.due_date < ?
		ORDER BY a.project_id, a.due_date`
	return r.query(ctx, query, now.UTC())
}

func (r *ActionRepository) query(ctx context.Context, query string, args ...any) ([]*secondary.ActionRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	defer rows.Close()

	var actions []*secondary.ActionRecord
	for rows.Next() {
		var dueDate sql.NullTime
		record := &secondary.ActionRecord{}
		err := rows.Scan(&record.ID, &record.ProjectID, &record.ProjectName, &record.Title,
			&record.Priority, &record.Status, &dueDate)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		record.DueDate = timePtr(dueDate)
		actions = append(actions, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}

	return actions, nil
}

// Ensure ActionRepository implements the interface
var _ secondary.ActionRepository = (*ActionRepository)(nil)
