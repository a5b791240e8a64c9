package cli

import (
	"context"
	"os"
	"testing"

	"github.com/fatih/color"

	"github.com/example/govboard/internal/ports/primary"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// mockHealthService implements primary.HealthService for testing
type mockHealthService struct {
	calculateFn func(ctx context.Context) (*primary.HealthScore, error)
	dashboardFn func(ctx context.Context) (*primary.DashboardData, error)
	snapshotFn  func(ctx context.Context) (*primary.HealthScore, error)

	snapshotCalls int
}

func (m *mockHealthService) CalculatePortfolioHealthScore(ctx context.Context) (*primary.HealthScore, error) {
	if m.calculateFn != nil {
		return m.calculateFn(ctx)
	}
	return sampleScore(), nil
}

func (m *mockHealthService) GetPortfolioDashboardData(ctx context.Context) (*primary.DashboardData, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx)
	}
	return &primary.DashboardData{Health: sampleScore()}, nil
}

func (m *mockHealthService) RefreshPortfolioMetrics(ctx context.Context) error {
	return nil
}

func (m *mockHealthService) RecordHealthSnapshot(ctx context.Context) (*primary.HealthScore, error) {
	m.snapshotCalls++
	if m.snapshotFn != nil {
		return m.snapshotFn(ctx)
	}
	return sampleScore(), nil
}

func sampleScore() *primary.HealthScore {
	return &primary.HealthScore{
		Total: 87,
		Components: primary.HealthComponents{
			OnTimeDelivery:      75,
			BudgetPerformance:   100,
			Risk:                100,
			Compliance:          90,
			BenefitsRealization: 60,
		},
		Band:         primary.ScoreBand{Label: "Good", Color: "green"},
		CalculatedAt: "2026-03-15T12:00:00Z",
	}
}

// mockEscalationService implements primary.EscalationService for testing
type mockEscalationService struct {
	createFn  func(ctx context.Context, req primary.CreateEscalationRequest) (*primary.Escalation, error)
	sweepFn   func(ctx context.Context) (*primary.SweepResult, error)
	detectFn  func(ctx context.Context) (*primary.DetectResult, error)
	resolveFn func(ctx context.Context, req primary.ResolveEscalationRequest) error
	getFn     func(ctx context.Context, escalationID string) (*primary.Escalation, error)
	listFn    func(ctx context.Context, filters primary.EscalationFilters) ([]*primary.Escalation, error)
	summaryFn func(ctx context.Context) (*primary.EscalationSummary, error)

	// Track calls for verification
	lastCreateReq  primary.CreateEscalationRequest
	lastResolveReq primary.ResolveEscalationRequest
}

func (m *mockEscalationService) CreateEscalation(ctx context.Context, req primary.CreateEscalationRequest) (*primary.Escalation, error) {
	m.lastCreateReq = req
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return &primary.Escalation{ID: "ESC-001", ProjectID: req.ProjectID, Level: req.Level, Type: req.Type, Status: "open"}, nil
}

func (m *mockEscalationService) ProcessAutoEscalations(ctx context.Context) (*primary.SweepResult, error) {
	if m.sweepFn != nil {
		return m.sweepFn(ctx)
	}
	return &primary.SweepResult{Changes: []primary.LevelChange{}}, nil
}

func (m *mockEscalationService) DetectNewEscalations(ctx context.Context) (*primary.DetectResult, error) {
	if m.detectFn != nil {
		return m.detectFn(ctx)
	}
	return &primary.DetectResult{}, nil
}

func (m *mockEscalationService) ResolveEscalation(ctx context.Context, req primary.ResolveEscalationRequest) error {
	m.lastResolveReq = req
	if m.resolveFn != nil {
		return m.resolveFn(ctx, req)
	}
	return nil
}

func (m *mockEscalationService) GetEscalation(ctx context.Context, escalationID string) (*primary.Escalation, error) {
	if m.getFn != nil {
		return m.getFn(ctx, escalationID)
	}
	return &primary.Escalation{ID: escalationID, ProjectID: "PRJ-001", Level: 1, Status: "open"}, nil
}

func (m *mockEscalationService) ListEscalations(ctx context.Context, filters primary.EscalationFilters) ([]*primary.Escalation, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return []*primary.Escalation{}, nil
}

func (m *mockEscalationService) GetPortfolioEscalationSummary(ctx context.Context) (*primary.EscalationSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx)
	}
	return &primary.EscalationSummary{ByLevel: map[int]int{1: 0, 2: 0, 3: 0, 4: 0}, ByType: map[string]int{}}, nil
}

// mockAnalyticsService implements primary.AnalyticsService for testing
type mockAnalyticsService struct {
	heatmapFn    func(ctx context.Context, filters primary.HeatmapFilters) ([]*primary.HeatmapEntry, error)
	riskFn       func(ctx context.Context, projectID string) (*primary.ProjectRisk, error)
	trendFn      func(ctx context.Context, days int) ([]*primary.TrendPoint, error)
	gatesFn      func(ctx context.Context) (*primary.GateProgressionReport, error)
	complianceFn func(ctx context.Context) (*primary.ComplianceAnalytics, error)
}

func (m *mockAnalyticsService) GeneratePortfolioHeatmap(ctx context.Context, filters primary.HeatmapFilters) ([]*primary.HeatmapEntry, error) {
	if m.heatmapFn != nil {
		return m.heatmapFn(ctx, filters)
	}
	return []*primary.HeatmapEntry{}, nil
}

func (m *mockAnalyticsService) CalculateProjectRiskScore(ctx context.Context, projectID string) (*primary.ProjectRisk, error) {
	if m.riskFn != nil {
		return m.riskFn(ctx, projectID)
	}
	return &primary.ProjectRisk{ProjectID: projectID}, nil
}

func (m *mockAnalyticsService) GetPortfolioHealthTrend(ctx context.Context, days int) ([]*primary.TrendPoint, error) {
	if m.trendFn != nil {
		return m.trendFn(ctx, days)
	}
	return []*primary.TrendPoint{}, nil
}

func (m *mockAnalyticsService) GetGateProgressionAnalytics(ctx context.Context) (*primary.GateProgressionReport, error) {
	if m.gatesFn != nil {
		return m.gatesFn(ctx)
	}
	return &primary.GateProgressionReport{}, nil
}

func (m *mockAnalyticsService) GetComplianceAnalytics(ctx context.Context) (*primary.ComplianceAnalytics, error) {
	if m.complianceFn != nil {
		return m.complianceFn(ctx)
	}
	return &primary.ComplianceAnalytics{}, nil
}

// mockSettingsService implements primary.SettingsService for testing
type mockSettingsService struct {
	values map[string]string
	setErr error
}

func (m *mockSettingsService) GetSetting(ctx context.Context, key string) (*primary.Setting, error) {
	if v, ok := m.values[key]; ok {
		return &primary.Setting{Key: key, Value: v, Stored: true}, nil
	}
	return &primary.Setting{Key: key, Value: "{}", Stored: false}, nil
}

func (m *mockSettingsService) SetSetting(ctx context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}
