package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/govboard/internal/ports/secondary"
)

// DecisionRepository implements secondary.DecisionRepository with SQLite.
type DecisionRepository struct {
	db *sql.DB
}

// NewDecisionRepository creates a new SQLite decision repository.
func NewDecisionRepository(db *sql.DB) *DecisionRepository {
	return &DecisionRepository{db: db}
}

// ListRecent retrieves the N most recent decisions by timestamp.
func (r *DecisionRepository) ListRecent(ctx context.Context, limit int) ([]*secondary.DecisionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT d.id, d.project_id, p.name, d.title, d.outcome, d.decided_at
		FROM decisions d
		JOIN projects p ON p.id = d.project_id
		ORDER BY d.decided_at DESC, d.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list decisions: %w", err)
	}
	defer rows.Close()

	var decisions []*secondary.DecisionRecord
	for rows.Next() {
		var outcome sql.NullString
		record := &secondary.DecisionRecord{}
		err := rows.Scan(&record.ID, &record.ProjectID, &record.ProjectName, &record.Title, &outcome, &record.DecidedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		record.Outcome = outcome.String
		record.DecidedAt = record.DecidedAt.UTC()
		decisions = append(decisions, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list decisions: %w", err)
	}

	return decisions, nil
}

// Ensure DecisionRepository implements the interface
var _ secondary.DecisionRepository = (*DecisionRepository)(nil)
