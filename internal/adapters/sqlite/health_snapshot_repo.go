package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/govboard/internal/ports/secondary"
)

// HealthSnapshotRepository implements secondary.HealthSnapshotRepository with SQLite.
type HealthSnapshotRepository struct {
	db *sql.DB
}

// NewHealthSnapshotRepository creates a new SQLite health snapshot repository.
func NewHealthSnapshotRepository(db *sql.DB) *HealthSnapshotRepository {
	return &HealthSnapshotRepository{db: db}
}

// Create persists a new snapshot.
func (r *HealthSnapshotRepository) Create(ctx context.Context, snapshot *secondary.HealthSnapshotRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO health_snapshots (id, total, on_time_delivery, budget_performance, risk, compliance, benefits_realization, band, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snapshot.ID,
		snapshot.Total,
		snapshot.OnTimeDelivery,
		snapshot.BudgetPerformance,
		snapshot.Risk,
		snapshot.Compliance,
		snapshot.BenefitsRealization,
		snapshot.Band,
		snapshot.CapturedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create health snapshot: %w", err)
	}

	return nil
}

// ListSince retrieves snapshots captured at or after since, oldest first.
func (r *HealthSnapshotRepository) ListSince(ctx context.Context, since time.Time) ([]*secondary.HealthSnapshotRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, total, on_time_delivery, budget_performance, risk, compliance, benefits_realization, band, captured_at
		FROM health_snapshots
		WHERE captured_at >= ?
		ORDER BY captured_at`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list health snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*secondary.HealthSnapshotRecord
	for rows.Next() {
		record := &secondary.HealthSnapshotRecord{}
		err := rows.Scan(&record.ID, &record.Total, &record.OnTimeDelivery, &record.BudgetPerformance,
			&record.Risk, &record.Compliance, &record.BenefitsRealization, &record.Band, &record.CapturedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan health snapshot: %w", err)
		}
		record.CapturedAt = record.CapturedAt.UTC()
		snapshots = append(snapshots, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list health snapshots: %w", err)
	}

	return snapshots, nil
}

// Ensure HealthSnapshotRepository implements the interface
var _ secondary.HealthSnapshotRepository = (*HealthSnapshotRepository)(nil)
