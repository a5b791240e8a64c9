package primary

import "context"

// EscalationService defines the primary port for the escalation engine.
type EscalationService interface {
	// CreateEscalation raises an escalation against a project.
	CreateEscalation(ctx context.Context, req CreateEscalationRequest) (*Escalation, error)

	// ProcessAutoEscalations raises open escalations whose SLA thresholds have passed.
	ProcessAutoEscalations(ctx context.Context) (*SweepResult, error)

	// DetectNewEscalations raises escalations for overdue critical/high actions.
	DetectNewEscalations(ctx context.Context) (*DetectResult, error)

	// ResolveEscalation resolves an escalation with a resolution narrative.
	ResolveEscalation(ctx context.Context, req ResolveEscalationRequest) error

	// GetEscalation retrieves an escalation by ID.
	GetEscalation(ctx context.Context, escalationID string) (*Escalation, error)

	// ListEscalations lists escalations with optional filters.
	ListEscalations(ctx context.Context, filters EscalationFilters) ([]*Escalation, error)

	// GetPortfolioEscalationSummary aggregates every escalation by level and type.
	GetPortfolioEscalationSummary(ctx context.Context) (*EscalationSummary, error)
}

// Escalation represents an escalation entity at the port boundary.
type Escalation struct {
	ID         string `json:"id" yaml:"id"`
	ProjectID  string `json:"project_id" yaml:"project_id"`
	Type       string `json:"type" yaml:"type"`
	Level      int    `json:"level" yaml:"level"`
	Reason     string `json:"reason" yaml:"reason"`
	Status     string `json:"status" yaml:"status"`
	RaisedBy   string `json:"raised_by" yaml:"raised_by"`
	RaisedAt   string `json:"raised_at" yaml:"raised_at"`
	Resolution string `json:"resolution,omitempty" yaml:"resolution,omitempty"`   // May be empty
	ResolvedBy string `json:"resolved_by,omitempty" yaml:"resolved_by,omitempty"` // May be empty
	ResolvedAt string `json:"resolved_at,omitempty" yaml:"resolved_at,omitempty"` // May be empty
}

// CreateEscalationRequest contains the parameters for raising an escalation.
type CreateEscalationRequest struct {
	ProjectID string
	Type      string
	Level     int
	Reason    string
	RaisedBy  string // Defaults to the context actor
}

// ResolveEscalationRequest contains the parameters for resolving an escalation.
type ResolveEscalationRequest struct {
	EscalationID string
	Resolution   string
	ResolvedBy   string // Defaults to the context actor
}

// EscalationFilters contains filter options for listing escalations.
type EscalationFilters struct {
	ProjectID string
	Status    string
	Type      string
}

// SweepResult reports what an auto-escalation sweep changed.
type SweepResult struct {
	Examined  int           `json:"examined" yaml:"examined"`
	Escalated int           `json:"escalated" yaml:"escalated"`
	Changes   []LevelChange `json:"changes" yaml:"changes"`
}

// LevelChange is one level increase written by a sweep.
type LevelChange struct {
	EscalationID string  `json:"escalation_id" yaml:"escalation_id"`
	ProjectID    string  `json:"project_id" yaml:"project_id"`
	FromLevel    int     `json:"from_level" yaml:"from_level"`
	ToLevel      int     `json:"to_level" yaml:"to_level"`
	ElapsedHours float64 `json:"elapsed_hours" yaml:"elapsed_hours"`
}

// DetectResult reports escalations created by overdue-action detection.
type DetectResult struct {
	Examined int           `json:"examined" yaml:"examined"`
	Created  []*Escalation `json:"created" yaml:"created"`
}

// EscalationSummary aggregates escalations across the portfolio.
type EscalationSummary struct {
	Total                  int            `json:"total" yaml:"total"`
	Open                   int            `json:"open" yaml:"open"`
	Resolved               int            `json:"resolved" yaml:"resolved"`
	ByLevel                map[int]int    `json:"by_level" yaml:"by_level"`
	ByType                 map[string]int `json:"by_type" yaml:"by_type"`
	AverageResolutionHours float64        `json:"avg_resolution_hours" yaml:"avg_resolution_hours"`
}

// Escalation status constants
const (
	EscalationStatusOpen     = "open"
	EscalationStatusResolved = "resolved"
)
