package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/govboard/internal/ports/secondary"
)

// BenefitRepository implements secondary.BenefitRepository with SQLite.
type BenefitRepository struct {
	db *sql.DB
}

// NewBenefitRepository creates a new SQLite benefit repository.
func NewBenefitRepository(db *sql.DB) *BenefitRepository {
	return &BenefitRepository{db: db}
}

// List retrieves all benefits joined with their project's governance status.
func (r *BenefitRepository) List(ctx context.Context) ([]*secondary.BenefitRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.project_id, b.expected_value, b.realization_status, p.governance_status
		FROM benefits b
		JOIN projects p ON p.id = b.project_id
		ORDER BY b.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list benefits: %w", err)
	}
	defer rows.Close()

	var benefits []*secondary.BenefitRecord
	for rows.Next() {
		record := &secondary.BenefitRecord{}
		err := rows.Scan(&record.ID, &record.ProjectID, &record.ExpectedValue, &record.RealizationStatus, &record.ProjectGovernanceStatus)
		if err != nil {
			return nil, fmt.Errorf("failed to scan benefit: %w", err)
		}
		benefits = append(benefits, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list benefits: %w", err)
	}

	return benefits, nil
}

// TotalsByProject aggregates total expected value per project.
func (r *BenefitRepository) TotalsByProject(ctx context.Context) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT project_id, COALESCE(SUM(expected_value), 0) FROM benefits GROUP BY project_id")
	if err != nil {
		return nil, fmt.Errorf("failed to total benefits: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var (
			projectID string
			total     float64
		)
		if err := rows.Scan(&projectID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan benefit total: %w", err)
		}
		totals[projectID] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to total benefits: %w", err)
	}

	return totals, nil
}

// Ensure BenefitRepository implements the interface
var _ secondary.BenefitRepository = (*BenefitRepository)(nil)
