package primary

import "context"

// HealthService defines the primary port for portfolio health and the dashboard.
type HealthService interface {
	// CalculatePortfolioHealthScore computes the weighted composite health score.
	CalculatePortfolioHealthScore(ctx context.Context) (*HealthScore, error)

	// GetPortfolioDashboardData aggregates every dashboard panel.
	GetPortfolioDashboardData(ctx context.Context) (*DashboardData, error)

	// RefreshPortfolioMetrics is the hook for cache invalidation. No cache is kept.
	RefreshPortfolioMetrics(ctx context.Context) error

	// RecordHealthSnapshot computes the current score and persists it for trend reporting.
	RecordHealthSnapshot(ctx context.Context) (*HealthScore, error)
}

// HealthScore is the portfolio health score at the port boundary.
type HealthScore struct {
	Total        int              `json:"total" yaml:"total"`
	Components   HealthComponents `json:"components" yaml:"components"`
	Band         ScoreBand        `json:"band" yaml:"band"`
	CalculatedAt string           `json:"calculated_at" yaml:"calculated_at"`
}

// HealthComponents are the five sub-scores on a 0-100 scale.
type HealthComponents struct {
	OnTimeDelivery      float64 `json:"on_time_delivery" yaml:"on_time_delivery"`
	BudgetPerformance   float64 `json:"budget_performance" yaml:"budget_performance"`
	Risk                float64 `json:"risk" yaml:"risk"`
	Compliance          float64 `json:"compliance" yaml:"compliance"`
	BenefitsRealization float64 `json:"benefits_realization" yaml:"benefits_realization"`
}

// ScoreBand is a named score classification with its display colour.
type ScoreBand struct {
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"`
}

// DashboardData is the composed dashboard aggregate.
type DashboardData struct {
	Health              *HealthScore       `json:"health" yaml:"health"`
	GateDistribution    []GateDistribution `json:"gate_distribution" yaml:"gate_distribution"`
	ComplianceAlert     ComplianceAlert    `json:"compliance_alert" yaml:"compliance_alert"`
	Actions             ActionBreakdown    `json:"actions" yaml:"actions"`
	RecentDecisions     []Decision         `json:"recent_decisions" yaml:"recent_decisions"`
	OpenEscalations     int                `json:"open_escalations" yaml:"open_escalations"`
	BenefitsAtRiskCount int                `json:"benefits_at_risk" yaml:"benefits_at_risk"`
	GeneratedAt         string             `json:"generated_at" yaml:"generated_at"`
}

// GateDistribution is the set of projects currently associated with one gate.
type GateDistribution struct {
	GateID       string       `json:"gate_id" yaml:"gate_id"`
	GateName     string       `json:"gate_name" yaml:"gate_name"`
	Sequence     int          `json:"sequence" yaml:"sequence"`
	ProjectCount int          `json:"project_count" yaml:"project_count"`
	Projects     []ProjectRef `json:"projects" yaml:"projects"`
}

// ProjectRef identifies a project by ID and name.
type ProjectRef struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ComplianceAlert summarises overdue compliance records.
type ComplianceAlert struct {
	OverdueCount int    `json:"overdue_count" yaml:"overdue_count"`
	Severity     string `json:"severity" yaml:"severity"`
}

// ActionBreakdown summarises open governance actions.
type ActionBreakdown struct {
	Total       int            `json:"total" yaml:"total"`
	Overdue     int            `json:"overdue" yaml:"overdue"`
	DueThisWeek int            `json:"due_this_week" yaml:"due_this_week"`
	ByPriority  map[string]int `json:"by_priority" yaml:"by_priority"`
}

// Decision is a recent governance decision.
type Decision struct {
	ID          string `json:"id" yaml:"id"`
	ProjectID   string `json:"project_id" yaml:"project_id"`
	ProjectName string `json:"project_name" yaml:"project_name"`
	Title       string `json:"title" yaml:"title"`
	Outcome     string `json:"outcome" yaml:"outcome"`
	DecidedAt   string `json:"decided_at" yaml:"decided_at"`
}
