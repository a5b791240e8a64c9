package primary

import "context"

// AnalyticsService defines the primary port for portfolio analytics.
type AnalyticsService interface {
	// GeneratePortfolioHeatmap scores every matching project on risk and value.
	GeneratePortfolioHeatmap(ctx context.Context, filters HeatmapFilters) ([]*HeatmapEntry, error)

	// CalculateProjectRiskScore returns the composite risk score of one project.
	CalculateProjectRiskScore(ctx context.Context, projectID string) (*ProjectRisk, error)

	// GetPortfolioHealthTrend returns health scores over the last days.
	GetPortfolioHealthTrend(ctx context.Context, days int) ([]*TrendPoint, error)

	// GetGateProgressionAnalytics reports time spent per gate and stuck projects.
	GetGateProgressionAnalytics(ctx context.Context) (*GateProgressionReport, error)

	// GetComplianceAnalytics reports compliance rates and top violators.
	GetComplianceAnalytics(ctx context.Context) (*ComplianceAnalytics, error)
}

// HeatmapFilters narrows the projects placed on the heatmap.
type HeatmapFilters struct {
	GovernanceStatus      string
	CurrentGateID         string
	StrategicInitiativeID string
}

// HeatmapEntry places one project on the risk/value grid.
type HeatmapEntry struct {
	ProjectID        string  `json:"project_id" yaml:"project_id"`
	ProjectName      string  `json:"project_name" yaml:"project_name"`
	RiskScore        int     `json:"risk_score" yaml:"risk_score"`
	ValueScore       int     `json:"value_score" yaml:"value_score"`
	TotalValue       float64 `json:"total_value" yaml:"total_value"`
	AlignmentScore   float64 `json:"alignment_score" yaml:"alignment_score"`
	GovernanceStatus string  `json:"governance_status" yaml:"governance_status"`
}

// ProjectRisk is a project's composite risk score with its capped components.
type ProjectRisk struct {
	ProjectID       string  `json:"project_id" yaml:"project_id"`
	Score           int     `json:"score" yaml:"score"`
	Escalation      float64 `json:"escalation" yaml:"escalation"`
	Compliance      float64 `json:"compliance" yaml:"compliance"`
	OverdueActions  float64 `json:"overdue_actions" yaml:"overdue_actions"`
	ScheduleSlip    float64 `json:"schedule_slip" yaml:"schedule_slip"`
	DaysPastEndDate int     `json:"days_past_end_date" yaml:"days_past_end_date"`
}

// TrendPoint is one health score in a time series.
type TrendPoint struct {
	Date  string `json:"date" yaml:"date"`
	Score int    `json:"score" yaml:"score"`
	Band  string `json:"band" yaml:"band"`
	Live  bool   `json:"live" yaml:"live"`
}

// GateProgressionReport summarises how projects move through gates.
type GateProgressionReport struct {
	Gates         []GateStats    `json:"gates" yaml:"gates"`
	StuckProjects []StuckProject `json:"stuck_projects" yaml:"stuck_projects"`
}

// GateStats is the timing of one gate.
type GateStats struct {
	GateID          string  `json:"gate_id" yaml:"gate_id"`
	GateName        string  `json:"gate_name" yaml:"gate_name"`
	Sequence        int     `json:"sequence" yaml:"sequence"`
	AverageDays     float64 `json:"avg_days" yaml:"avg_days"`
	CompletedCount  int     `json:"completed" yaml:"completed"`
	InProgressCount int     `json:"in_progress" yaml:"in_progress"`
}

// StuckProject is a project that has sat in a gate beyond the threshold.
type StuckProject struct {
	ProjectID   string `json:"project_id" yaml:"project_id"`
	ProjectName string `json:"project_name" yaml:"project_name"`
	GateID      string `json:"gate_id" yaml:"gate_id"`
	GateName    string `json:"gate_name" yaml:"gate_name"`
	DaysInGate  int    `json:"days_in_gate" yaml:"days_in_gate"`
	EnteredAt   string `json:"entered_at" yaml:"entered_at"`
}

// ComplianceAnalytics reports compliance across non-archived projects.
type ComplianceAnalytics struct {
	OverallRate  float64            `json:"overall_rate" yaml:"overall_rate"`
	TotalRecords int                `json:"total_records" yaml:"total_records"`
	ByPolicy     []PolicyCompliance `json:"by_policy" yaml:"by_policy"`
	TopViolators []Violator         `json:"top_violators" yaml:"top_violators"`
}

// PolicyCompliance is the compliance breakdown of one policy.
type PolicyCompliance struct {
	PolicyID     string  `json:"policy_id" yaml:"policy_id"`
	PolicyName   string  `json:"policy_name" yaml:"policy_name"`
	Total        int     `json:"total" yaml:"total"`
	Compliant    int     `json:"compliant" yaml:"compliant"`
	NonCompliant int     `json:"non_compliant" yaml:"non_compliant"`
	Overdue      int     `json:"overdue" yaml:"overdue"`
	Rate         float64 `json:"rate" yaml:"rate"`
}

// Violator is a project ranked by compliance violations.
type Violator struct {
	ProjectID   string `json:"project_id" yaml:"project_id"`
	ProjectName string `json:"project_name" yaml:"project_name"`
	Violations  int    `json:"violations" yaml:"violations"`
}
