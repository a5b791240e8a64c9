package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/govboard/internal/core/escalation"
	"github.com/example/govboard/internal/core/gate"
	"github.com/example/govboard/internal/core/scoring"
	"github.com/example/govboard/internal/ports/primary"
	"github.com/example/govboard/internal/ports/secondary"
)

const topViolatorLimit = 10

// AnalyticsServiceImpl implements the AnalyticsService interface.
type AnalyticsServiceImpl struct {
	health             *portfolioHealth
	projectRepo        secondary.ProjectRepository
	gateRepo           secondary.GateRepository
	gateAssignmentRepo secondary.GateAssignmentRepository
	complianceRepo     secondary.ComplianceRepository
	actionRepo         secondary.ActionRepository
	escalationRepo     secondary.EscalationRepository
	benefitRepo        secondary.BenefitRepository
	snapshotRepo       secondary.HealthSnapshotRepository
	concurrency        int
	now                func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService with injected dependencies.
// concurrency bounds how many projects are risk-scored at once.
func NewAnalyticsService(
	projectRepo secondary.ProjectRepository,
	gateRepo secondary.GateRepository,
	gateAssignmentRepo secondary.GateAssignmentRepository,
	complianceRepo secondary.ComplianceRepository,
	actionRepo secondary.ActionRepository,
	escalationRepo secondary.EscalationRepository,
	benefitRepo secondary.BenefitRepository,
	settingsRepo secondary.SettingsRepository,
	snapshotRepo secondary.HealthSnapshotRepository,
	concurrency int,
) *AnalyticsServiceImpl {
	if concurrency < 1 {
		concurrency = 1
	}
	return &AnalyticsServiceImpl{
		health: &portfolioHealth{
			projectRepo:    projectRepo,
			complianceRepo: complianceRepo,
			escalationRepo: escalationRepo,
			benefitRepo:    benefitRepo,
			settingsRepo:   settingsRepo,
		},
		projectRepo:        projectRepo,
		gateRepo:           gateRepo,
		gateAssignmentRepo: gateAssignmentRepo,
		complianceRepo:     complianceRepo,
		actionRepo:         actionRepo,
		escalationRepo:     escalationRepo,
		benefitRepo:        benefitRepo,
		snapshotRepo:       snapshotRepo,
		concurrency:        concurrency,
		now:                func() time.Time { return time.Now().UTC() },
	}
}

// GeneratePortfolioHeatmap places every matching non-archived project on the
// risk/value grid. Value is normalised against the filtered set's maximum.
func (s *AnalyticsServiceImpl) GeneratePortfolioHeatmap(ctx context.Context, filters primary.HeatmapFilters) ([]*primary.HeatmapEntry, error) {
	projects, err := s.projectRepo.List(ctx, secondary.ProjectFilters{
		ExcludeArchived:       true,
		GovernanceStatus:      filters.GovernanceStatus,
		CurrentGateID:         filters.CurrentGateID,
		StrategicInitiativeID: filters.StrategicInitiativeID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	totals, err := s.benefitRepo.TotalsByProject(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total benefits: %w", err)
	}

	maxValue := 0.0
	for _, p := range projects {
		if totals[p.ID] > maxValue {
			maxValue = totals[p.ID]
		}
	}

	now := s.now()
	entries := make([]*primary.HeatmapEntry, len(projects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range projects {
		i, p := i, p
		g.Go(func() error {
			risk, err := s.projectRisk(gctx, p, now)
			if err != nil {
				return err
			}
			entries[i] = &primary.HeatmapEntry{
				ProjectID:        p.ID,
				ProjectName:      p.Name,
				RiskScore:        risk.Score,
				ValueScore:       scoring.NormalizeValue(totals[p.ID], maxValue),
				TotalValue:       totals[p.ID],
				AlignmentScore:   p.AlignmentScore,
				GovernanceStatus: p.GovernanceStatus,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.RiskScore != b.RiskScore {
			return a.RiskScore > b.RiskScore
		}
		if a.ValueScore != b.ValueScore {
			return a.ValueScore > b.ValueScore
		}
		return a.ProjectID < b.ProjectID
	})
	return entries, nil
}

// CalculateProjectRiskScore returns one project's composite risk with its components.
func (s *AnalyticsServiceImpl) CalculateProjectRiskScore(ctx context.Context, projectID string) (*primary.ProjectRisk, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	risk, err := s.projectRisk(ctx, project, s.now())
	if err != nil {
		return nil, err
	}
	return &primary.ProjectRisk{
		ProjectID:       project.ID,
		Score:           risk.Score,
		Escalation:      risk.Escalation,
		Compliance:      risk.Compliance,
		OverdueActions:  risk.OverdueActions,
		ScheduleSlip:    risk.ScheduleSlip,
		DaysPastEndDate: risk.DaysPastEndDate,
	}, nil
}

// projectRisk gathers a project's risk inputs and scores them.
func (s *AnalyticsServiceImpl) projectRisk(ctx context.Context, p *secondary.ProjectRecord, now time.Time) (scoring.RiskBreakdown, error) {
	open, err := s.escalationRepo.List(ctx, secondary.EscalationFilters{ProjectID: p.ID, Status: escalation.StatusOpen})
	if err != nil {
		return scoring.RiskBreakdown{}, fmt.Errorf("failed to list escalations for %s: %w", p.ID, err)
	}
	levels := make([]int, len(open))
	for i, e := range open {
		levels[i] = e.Level
	}

	nonCompliant, err := s.complianceRepo.List(ctx, secondary.ComplianceFilters{ProjectID: p.ID, Status: scoring.ComplianceNonCompliant})
	if err != nil {
		return scoring.RiskBreakdown{}, fmt.Errorf("failed to list compliance for %s: %w", p.ID, err)
	}

	overdue, err := s.actionRepo.List(ctx, secondary.ActionFilters{ProjectID: p.ID, OpenOnly: true, DueBefore: &now})
	if err != nil {
		return scoring.RiskBreakdown{}, fmt.Errorf("failed to list actions for %s: %w", p.ID, err)
	}

	return scoring.ProjectRisk(scoring.RiskInputs{
		OpenEscalationLevels: levels,
		NonCompliantCount:    len(nonCompliant),
		OverdueActionCount:   len(overdue),
		EndDate:              p.EndDate,
		Now:                  now,
	}), nil
}

// GetPortfolioHealthTrend returns the snapshots recorded in the last days days,
// oldest first, followed by the live score.
func (s *AnalyticsServiceImpl) GetPortfolioHealthTrend(ctx context.Context, days int) ([]*primary.TrendPoint, error) {
	if days < 1 {
		return nil, fmt.Errorf("trend window must be at least 1 day, got %d", days)
	}

	now := s.now()
	snapshots, err := s.snapshotRepo.ListSince(ctx, now.AddDate(0, 0, -days))
	if err != nil {
		return nil, fmt.Errorf("failed to list health snapshots: %w", err)
	}

	live, err := s.health.calculate(ctx, now)
	if err != nil {
		return nil, err
	}

	points := make([]*primary.TrendPoint, 0, len(snapshots)+1)
	for _, snap := range snapshots {
		points = append(points, &primary.TrendPoint{
			Date:  snap.CapturedAt.UTC().Format(time.RFC3339),
			Score: snap.Total,
			Band:  snap.Band,
		})
	}
	points = append(points, &primary.TrendPoint{
		Date:  now.Format(time.RFC3339),
		Score: live.Total,
		Band:  live.Band.Label,
		Live:  true,
	})
	return points, nil
}

// GetGateProgressionAnalytics reports mean days per gate and stuck projects.
func (s *AnalyticsServiceImpl) GetGateProgressionAnalytics(ctx context.Context) (*primary.GateProgressionReport, error) {
	gates, err := s.gateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list gates: %w", err)
	}
	completed, err := s.gateAssignmentRepo.ListCompleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed assignments: %w", err)
	}
	inProgress, err := s.gateAssignmentRepo.ListInProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list in-progress assignments: %w", err)
	}

	durations := make(map[string][]float64)
	for _, a := range completed {
		if a.ExitedAt == nil {
			continue
		}
		durations[a.GateID] = append(durations[a.GateID], gate.DaysBetween(a.EnteredAt, *a.ExitedAt))
	}
	openCount := make(map[string]int)
	open := make([]gate.OpenAssignment, len(inProgress))
	for i, a := range inProgress {
		openCount[a.GateID]++
		open[i] = gate.OpenAssignment{
			ProjectID:   a.ProjectID,
			ProjectName: a.ProjectName,
			GateID:      a.GateID,
			GateName:    a.GateName,
			EnteredAt:   a.EnteredAt,
		}
	}

	report := &primary.GateProgressionReport{
		Gates:         make([]primary.GateStats, len(gates)),
		StuckProjects: []primary.StuckProject{},
	}
	for i, g := range gates {
		report.Gates[i] = primary.GateStats{
			GateID:          g.ID,
			GateName:        g.Name,
			Sequence:        g.Sequence,
			AverageDays:     gate.AverageDays(durations[g.ID]),
			CompletedCount:  len(durations[g.ID]),
			InProgressCount: openCount[g.ID],
		}
	}

	for _, st := range gate.FindStuck(open, s.now(), gate.DefaultStuckThresholdDays) {
		report.StuckProjects = append(report.StuckProjects, primary.StuckProject{
			ProjectID:   st.ProjectID,
			ProjectName: st.ProjectName,
			GateID:      st.GateID,
			GateName:    st.GateName,
			DaysInGate:  st.DaysInGate,
			EnteredAt:   st.EnteredAt.UTC().Format(time.RFC3339),
		})
	}
	return report, nil
}

// GetComplianceAnalytics reports compliance rates across non-archived projects.
func (s *AnalyticsServiceImpl) GetComplianceAnalytics(ctx context.Context) (*primary.ComplianceAnalytics, error) {
	records, err := s.complianceRepo.List(ctx, secondary.ComplianceFilters{ExcludeArchived: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list compliance records: %w", err)
	}

	var policyOrder []string
	policies := make(map[string]*primary.PolicyCompliance)
	violators := make(map[string]*primary.Violator)
	okTotal := 0
	for _, r := range records {
		pc, ok := policies[r.PolicyID]
		if !ok {
			pc = &primary.PolicyCompliance{PolicyID: r.PolicyID, PolicyName: r.PolicyName}
			policies[r.PolicyID] = pc
			policyOrder = append(policyOrder, r.PolicyID)
		}
		pc.Total++

		switch {
		case scoring.IsCompliant(r.Status):
			pc.Compliant++
			okTotal++
		case r.Status == scoring.ComplianceOverdue:
			pc.Overdue++
		default:
			pc.NonCompliant++
		}

		if scoring.IsViolation(r.Status) {
			v, ok := violators[r.ProjectID]
			if !ok {
				v = &primary.Violator{ProjectID: r.ProjectID, ProjectName: r.ProjectName}
				violators[r.ProjectID] = v
			}
			v.Violations++
		}
	}

	result := &primary.ComplianceAnalytics{
		OverallRate:  scoring.ComplianceRate(okTotal, len(records)),
		TotalRecords: len(records),
		ByPolicy:     make([]primary.PolicyCompliance, 0, len(policyOrder)),
		TopViolators: make([]primary.Violator, 0, len(violators)),
	}
	for _, id := range policyOrder {
		pc := policies[id]
		pc.Rate = scoring.ComplianceRate(pc.Compliant, pc.Total)
		result.ByPolicy = append(result.ByPolicy, *pc)
	}

	for _, v := range violators {
		result.TopViolators = append(result.TopViolators, *v)
	}
	sort.Slice(result.TopViolators, func(i, j int) bool {
		a, b := result.TopViolators[i], result.TopViolators[j]
		if a.Violations != b.Violations {
			return a.Violations > b.Violations
		}
		if a.ProjectName != b.ProjectName {
			return a.ProjectName < b.ProjectName
		}
		return a.ProjectID < b.ProjectID
	})
	if len(result.TopViolators) > topViolatorLimit {
		result.TopViolators = result.TopViolators[:topViolatorLimit]
	}

	return result, nil
}

// Ensure AnalyticsServiceImpl implements the interface
var _ primary.AnalyticsService = (*AnalyticsServiceImpl)(nil)
