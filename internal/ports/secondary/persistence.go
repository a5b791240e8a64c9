// Package secondary defines the secondary ports (driven adapters) for the application.
// These interfaces define how the application interacts with persistence.
// Records are typed row DTOs; adapters map storage rows onto them so the
// application never sees loosely typed data.
package secondary

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned (wrapped) by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// ProjectRepository defines the secondary port for project reads and the
// governance status mutation.
type ProjectRepository interface {
	// List retrieves projects matching the given filters.
	List(ctx context.Context, filters ProjectFilters) ([]*ProjectRecord, error)

	// GetByID retrieves a project by its ID.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)

	// UpdateGovernanceStatus sets a single project's governance status.
	UpdateGovernanceStatus(ctx context.Context, id, status string) error
}

// ProjectRecord represents a project as stored in persistence.
type ProjectRecord struct {
	ID                    string
	Name                  string
	Status                string // planned, in-progress, blocked, done, archived
	GovernanceStatus      string // on-track, at-risk, blocked, escalated
	EndDate               *time.Time
	Budget                float64
	ActualSpend           float64
	CurrentGateID         string // Empty string means null
	StrategicInitiativeID string // Empty string means null
	AlignmentScore        float64
}

// ProjectFilters contains filter options for querying projects.
type ProjectFilters struct {
	ExcludeArchived       bool
	GovernanceStatus      string
	CurrentGateID         string
	StrategicInitiativeID string
}

// GateRepository defines the secondary port for the gate catalog.
type GateRepository interface {
	// List retrieves all gates ordered by sequence.
	List(ctx context.Context) ([]*GateRecord, error)
}

// GateRecord represents a gate as stored in persistence.
type GateRecord struct {
	ID       string
	Name     string
	Sequence int
}

// GateAssignmentRepository defines the secondary port for project-gate assignments.
type GateAssignmentRepository interface {
	// ListProjectsByGate retrieves distinct (gate, project) pairs.
	ListProjectsByGate(ctx context.Context) ([]*GateProjectRecord, error)

	// ListCompleted retrieves completed assignments with entry and exit timestamps.
	ListCompleted(ctx context.Context) ([]*GateAssignmentRecord, error)

	// ListInProgress retrieves in-progress assignments joined with project and gate names.
	ListInProgress(ctx context.Context) ([]*GateAssignmentRecord, error)
}

// GateProjectRecord is one distinct project seen in a gate.
type GateProjectRecord struct {
	GateID      string
	ProjectID   string
	ProjectName string
}

// GateAssignmentRecord represents a project-gate assignment as stored in persistence.
type GateAssignmentRecord struct {
	ProjectID   string
	ProjectName string
	GateID      string
	GateName    string
	Status      string // in-progress, completed
	EnteredAt   time.Time
	ExitedAt    *time.Time
}

// ComplianceRepository defines the secondary port for policy compliance records.
type ComplianceRepository interface {
	// List retrieves compliance records joined with policy and project names.
	List(ctx context.Context, filters ComplianceFilters) ([]*ComplianceRecord, error)

	// ListOverdue retrieves records that are overdue as of now.
	ListOverdue(ctx context.Context, now time.Time) ([]*ComplianceRecord, error)
}

// ComplianceRecord represents a policy compliance row joined with names.
type ComplianceRecord struct {
	ID          string
	ProjectID   string
	ProjectName string
	PolicyID    string
	PolicyName  string
	Status      string // compliant, waived, non-compliant, overdue
	DueDate     *time.Time
}

// ComplianceFilters contains filter options for querying compliance records.
type ComplianceFilters struct {
	ProjectID       string
	Status          string
	ExcludeArchived bool
}

// DecisionRepository defines the secondary port for decisions (read-only here).
type DecisionRepository interface {
	// ListRecent retrieves the N most recent decisions by timestamp.
	ListRecent(ctx context.Context, limit int) ([]*DecisionRecord, error)
}

// DecisionRecord represents a decision as stored in persistence.
type DecisionRecord struct {
	ID          string
	ProjectID   string
	ProjectName string
	Title       string
	Outcome     string
	DecidedAt   time.Time
}

// ActionRepository defines the secondary port for governance actions.
type ActionRepository interface {
	// List retrieves actions matching the given filters.
	List(ctx context.Context, filters ActionFilters) ([]*ActionRecord, error)

	// ListOverdueCritical retrieves open critical/high actions due before now.
	ListOverdueCritical(ctx context.Context, now time.Time) ([]*ActionRecord, error)
}

// ActionRecord represents a governance action joined with its project name.
type ActionRecord struct {
	ID          string
	ProjectID   string
	ProjectName string
	Title       string
	Priority    string // critical, high, medium, low
	Status      string // pending, in-progress, done
	DueDate     *time.Time
}

// ActionFilters contains filter options for querying actions.
type ActionFilters struct {
	ProjectID string
	OpenOnly  bool
	DueBefore *time.Time
}

// BenefitRepository defines the secondary port for benefits.
type BenefitRepository interface {
	// List retrieves all benefits joined with their project's governance status.
	List(ctx context.Context) ([]*BenefitRecord, error)

	// TotalsByProject aggregates total expected value per project.
	TotalsByProject(ctx context.Context) (map[string]float64, error)
}

// BenefitRecord represents a benefit as stored in persistence.
type BenefitRecord struct {
	ID                      string
	ProjectID               string
	ExpectedValue           float64
	RealizationStatus       string // not-yet, partial, full
	ProjectGovernanceStatus string
}

// EscalationRepository defines the secondary port for escalation persistence.
type EscalationRepository interface {
	// Create persists a new escalation.
	Create(ctx context.Context, escalation *EscalationRecord) error

	// GetByID retrieves an escalation by its ID.
	GetByID(ctx context.Context, id string) (*EscalationRecord, error)

	// List retrieves escalations matching the given filters.
	List(ctx context.Context, filters EscalationFilters) ([]*EscalationRecord, error)

	// UpdateLevel raises the level of an open escalation. The write only
	// happens when newLevel is strictly greater than the stored level;
	// updated reports whether a row changed.
	UpdateLevel(ctx context.Context, id string, newLevel int) (updated bool, err error)

	// Resolve marks an escalation resolved with resolution text and resolver.
	Resolve(ctx context.Context, id, resolution, resolvedBy string, resolvedAt time.Time) error

	// GetNextID returns the next available escalation ID.
	GetNextID(ctx context.Context) (string, error)
}

// EscalationRecord represents an escalation as stored in persistence.
type EscalationRecord struct {
	ID         string
	ProjectID  string
	Type       string
	Level      int
	Reason     string
	Status     string // open, resolved
	RaisedBy   string
	RaisedAt   time.Time
	Resolution string // Empty string means null
	ResolvedBy string // Empty string means null
	ResolvedAt *time.Time
}

// EscalationFilters contains filter options for querying escalations.
type EscalationFilters struct {
	ProjectID string
	Status    string
	Type      string
}

// SettingsRepository defines the secondary port for the key-value settings store.
type SettingsRepository interface {
	// Get returns the JSON value stored under key; found is false when absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores a JSON value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// HealthSnapshotRepository defines the secondary port for persisted health scores.
type HealthSnapshotRepository interface {
	// Create persists a new snapshot.
	Create(ctx context.Context, snapshot *HealthSnapshotRecord) error

	// ListSince retrieves snapshots captured at or after since, oldest first.
	ListSince(ctx context.Context, since time.Time) ([]*HealthSnapshotRecord, error)
}

// HealthSnapshotRecord represents a persisted portfolio health score.
type HealthSnapshotRecord struct {
	ID                  string
	Total               int
	OnTimeDelivery      float64
	BudgetPerformance   float64
	Risk                float64
	Compliance          float64
	BenefitsRealization float64
	Band                string
	CapturedAt          time.Time
}
