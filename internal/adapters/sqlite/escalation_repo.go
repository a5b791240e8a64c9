package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/govboard/internal/ports/secondary"
)

// EscalationRepository implements secondary.EscalationRepository with SQLite.
type EscalationRepository struct {
	db *sql.DB
}

// NewEscalationRepository creates a new SQLite escalation repository.
func NewEscalationRepository(db *sql.DB) *EscalationRepository {
	return &EscalationRepository{db: db}
}

const escalationColumns = `id, project_id, type, level, reason, status, raised_by, raised_at, resolution, resolved_by, resolved_at`

func scanEscalation(row rowScanner) (*secondary.EscalationRecord, error) {
	var (
		reason     sql.NullString
		resolution sql.NullString
		resolvedBy sql.NullString
		resolvedAt sql.NullTime
	)
	record := &secondary.EscalationRecord{}
	err := row.Scan(&record.ID, &record.ProjectID, &record.Type, &record.Level, &reason, &record.Status,
		&record.RaisedBy, &record.RaisedAt, &resolution, &resolvedBy, &resolvedAt)
	if err != nil {
		return nil, err
	}
	record.Reason = reason.String
	record.RaisedAt = record.RaisedAt.UTC()
	record.Resolution = resolution.String
	record.ResolvedBy = resolvedBy.String
	record.ResolvedAt = timePtr(resolvedAt)
	return record, nil
}

// Create persists a new escalation.
func (r *EscalationRepository) Create(ctx context.Context, escalation *secondary.EscalationRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO escalations (id, project_id, type, level, reason, status, raised_by, raised_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		escalation.ID,
		escalation.ProjectID,
		escalation.Type,
		escalation.Level,
		nullableString(escalation.Reason),
		escalation.Status,
		escalation.RaisedBy,
		escalation.RaisedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create escalation: %w", err)
	}

	return nil
}

// GetByID retrieves an escalation by its ID.
func (r *EscalationRepository) GetByID(ctx context.Context, id string) (*secondary.EscalationRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+escalationColumns+" FROM escalations WHERE id = ?", id)
	record, err := scanEscalation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("escalation %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get escalation: %w", err)
	}

	return record, nil
}

// List retrieves escalations matching the given filters, newest first.
func (r *EscalationRepository) List(ctx context.Context, filters secondary.EscalationFilters) ([]*secondary.EscalationRecord, error) {
	query := "SELECT " + escalationColumns + " FROM escalations WHERE 1=1"
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND project_id = ?"
		args = append(args, filters.ProjectID)
	}
	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.Type != "" {
		query += " AND type = ?"
		args = append(args, filters.Type)
	}

	query += " ORDER BY raised_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list escalations: %w", err)
	}
	defer rows.Close()

	var escalations []*secondary.EscalationRecord
	for rows.Next() {
		record, err := scanEscalation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan escalation: %w", err)
		}
		escalations = append(escalations, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list escalations: %w", err)
	}

	return escalations, nil
}

// UpdateLevel raises an open escalation to newLevel. Rows already at or
// above newLevel are left alone, so repeating a sweep never writes twice.
func (r *EscalationRepository) UpdateLevel(ctx context.Context, id string, newLevel int) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE escalations SET level = ? WHERE id = ? AND status = 'open' AND level < ?",
		newLevel, id, newLevel,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update escalation level: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update escalation level: %w", err)
	}

	return rowsAffected > 0, nil
}

// Resolve marks an escalation resolved with resolution text and resolver.
func (r *EscalationRepository) Resolve(ctx context.Context, id, resolution, resolvedBy string, resolvedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE escalations SET status = 'resolved', resolution = ?, resolved_by = ?, resolved_at = ? WHERE id = ?",
		resolution, resolvedBy, resolvedAt.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve escalation: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("escalation %s: %w", id, secondary.ErrNotFound)
	}

	return nil
}

// GetNextID returns the next available escalation ID.
func (r *EscalationRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("ESC-") + 1
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM escalations", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next escalation ID: %w", err)
	}

	return fmt.Sprintf("ESC-%03d", maxID+1), nil
}

// Ensure EscalationRepository implements the interface
var _ secondary.EscalationRepository = (*EscalationRepository)(nil)
