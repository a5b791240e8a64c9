package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/example/govboard/internal/core/escalation"
	"github.com/example/govboard/internal/core/scoring"
	"github.com/example/govboard/internal/ports/primary"
	"github.com/example/govboard/internal/ports/secondary"
)

const (
	recentDecisionLimit = 5
	dueSoonWindow       = 7 * 24 * time.Hour
)

var actionPriorities = []string{"critical", "high", "medium", "low"}

// HealthServiceImpl implements the HealthService interface.
type HealthServiceImpl struct {
	health             *portfolioHealth
	gateRepo           secondary.GateRepository
	gateAssignmentRepo secondary.GateAssignmentRepository
	complianceRepo     secondary.ComplianceRepository
	actionRepo         secondary.ActionRepository
	decisionRepo       secondary.DecisionRepository
	escalationRepo     secondary.EscalationRepository
	benefitRepo        secondary.BenefitRepository
	snapshotRepo       secondary.HealthSnapshotRepository
	now                func() time.Time
}

// NewHealthService creates a new HealthService with injected dependencies.
func NewHealthService(
	projectRepo secondary.ProjectRepository,
	gateRepo secondary.GateRepository,
	gateAssignmentRepo secondary.GateAssignmentRepository,
	complianceRepo secondary.ComplianceRepository,
	actionRepo secondary.ActionRepository,
	decisionRepo secondary.DecisionRepository,
	escalationRepo secondary.EscalationRepository,
	benefitRepo secondary.BenefitRepository,
	settingsRepo secondary.SettingsRepository,
	snapshotRepo secondary.HealthSnapshotRepository,
) *HealthServiceImpl {
	return &HealthServiceImpl{
		health: &portfolioHealth{
			projectRepo:    projectRepo,
			complianceRepo: complianceRepo,
			escalationRepo: escalationRepo,
			benefitRepo:    benefitRepo,
			settingsRepo:   settingsRepo,
		},
		gateRepo:           gateRepo,
		gateAssignmentRepo: gateAssignmentRepo,
		complianceRepo:     complianceRepo,
		actionRepo:         actionRepo,
		decisionRepo:       decisionRepo,
		escalationRepo:     escalationRepo,
		benefitRepo:        benefitRepo,
		snapshotRepo:       snapshotRepo,
		now:                func() time.Time { return time.Now().UTC() },
	}
}

// CalculatePortfolioHealthScore computes the weighted composite health score.
func (s *HealthServiceImpl) CalculatePortfolioHealthScore(ctx context.Context) (*primary.HealthScore, error) {
	now := s.now()
	result, err := s.health.calculate(ctx, now)
	if err != nil {
		return nil, err
	}
	return result.toHealthScore(now), nil
}

// GetPortfolioDashboardData aggregates every dashboard panel. Panels are
// computed concurrently; the first failure fails the whole call.
func (s *HealthServiceImpl) GetPortfolioDashboardData(ctx context.Context) (*primary.DashboardData, error) {
	now := s.now()
	data := &primary.DashboardData{GeneratedAt: now.Format(time.RFC3339)}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result, err := s.health.calculate(gctx, now)
		if err != nil {
			return err
		}
		data.Health = result.toHealthScore(now)
		return nil
	})
	g.Go(func() error {
		dist, err := s.gateDistribution(gctx)
		if err != nil {
			return err
		}
		data.GateDistribution = dist
		return nil
	})
	g.Go(func() error {
		overdue, err := s.complianceRepo.ListOverdue(gctx, now)
		if err != nil {
			return fmt.Errorf("failed to list overdue compliance: %w", err)
		}
		data.ComplianceAlert = primary.ComplianceAlert{
			OverdueCount: len(overdue),
			Severity:     scoring.ComplianceAlertSeverity(len(overdue)),
		}
		return nil
	})
	g.Go(func() error {
		breakdown, err := s.actionBreakdown(gctx, now)
		if err != nil {
			return err
		}
		data.Actions = breakdown
		return nil
	})
	g.Go(func() error {
		decisions, err := s.decisionRepo.ListRecent(gctx, recentDecisionLimit)
		if err != nil {
			return fmt.Errorf("failed to list recent decisions: %w", err)
		}
		data.RecentDecisions = make([]primary.Decision, len(decisions))
		for i, d := range decisions {
			data.RecentDecisions[i] = primary.Decision{
				ID:          d.ID,
				ProjectID:   d.ProjectID,
				ProjectName: d.ProjectName,
				Title:       d.Title,
				Outcome:     d.Outcome,
				DecidedAt:   d.DecidedAt.Format(time.RFC3339),
			}
		}
		return nil
	})
	g.Go(func() error {
		open, err := s.escalationRepo.List(gctx, secondary.EscalationFilters{Status: escalation.StatusOpen})
		if err != nil {
			return fmt.Errorf("failed to list open escalations: %w", err)
		}
		data.OpenEscalations = len(open)
		return nil
	})
	g.Go(func() error {
		benefits, err := s.benefitRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list benefits: %w", err)
		}
		for _, b := range benefits {
			if b.RealizationStatus != scoring.RealizationFull && escalation.IsAtRisk(b.ProjectGovernanceStatus) {
				data.BenefitsAtRiskCount++
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// gateDistribution lists every gate in sequence order with its distinct projects.
func (s *HealthServiceImpl) gateDistribution(ctx context.Context) ([]primary.GateDistribution, error) {
	gates, err := s.gateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list gates: %w", err)
	}
	pairs, err := s.gateAssignmentRepo.ListProjectsByGate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list gate assignments: %w", err)
	}

	byGate := make(map[string][]primary.ProjectRef)
	for _, p := range pairs {
		byGate[p.GateID] = append(byGate[p.GateID], primary.ProjectRef{ID: p.ProjectID, Name: p.ProjectName})
	}

	dist := make([]primary.GateDistribution, len(gates))
	for i, g := range gates {
		projects := byGate[g.ID]
		if projects == nil {
			projects = []primary.ProjectRef{}
		}
		dist[i] = primary.GateDistribution{
			GateID:       g.ID,
			GateName:     g.Name,
			Sequence:     g.Sequence,
			ProjectCount: len(projects),
			Projects:     projects,
		}
	}
	return dist, nil
}

// actionBreakdown counts open actions by urgency and priority.
func (s *HealthServiceImpl) actionBreakdown(ctx context.Context, now time.Time) (primary.ActionBreakdown, error) {
	actions, err := s.actionRepo.List(ctx, secondary.ActionFilters{OpenOnly: true})
	if err != nil {
		return primary.ActionBreakdown{}, fmt.Errorf("failed to list open actions: %w", err)
	}

	breakdown := primary.ActionBreakdown{
		Total:      len(actions),
		ByPriority: make(map[string]int, len(actionPriorities)),
	}
	for _, p := range actionPriorities {
		breakdown.ByPriority[p] = 0
	}

	weekAhead := now.Add(dueSoonWindow)
	for _, a := range actions {
		breakdown.ByPriority[a.Priority]++
		if a.DueDate == nil {
			continue
		}
		switch {
		case a.DueDate.Before(now):
			breakdown.Overdue++
		case !a.DueDate.After(weekAhead):
			breakdown.DueThisWeek++
		}
	}
	return breakdown, nil
}

// RefreshPortfolioMetrics is the hook a cache would attach to. Every call
// recomputes from the store, so there is nothing to invalidate.
func (s *HealthServiceImpl) RefreshPortfolioMetrics(ctx context.Context) error {
	slog.DebugContext(ctx, "refresh portfolio metrics requested; no cache to invalidate")
	return nil
}

// RecordHealthSnapshot computes the current score and persists it.
func (s *HealthServiceImpl) RecordHealthSnapshot(ctx context.Context) (*primary.HealthScore, error) {
	now := s.now()
	result, err := s.health.calculate(ctx, now)
	if err != nil {
		return nil, err
	}

	snapshot := &secondary.HealthSnapshotRecord{
		ID:                  uuid.NewString(),
		Total:               result.Total,
		OnTimeDelivery:      result.Components.OnTimeDelivery,
		BudgetPerformance:   result.Components.BudgetPerformance,
		Risk:                result.Components.Risk,
		Compliance:          result.Components.Compliance,
		BenefitsRealization: result.Components.BenefitsRealization,
		Band:                result.Band.Label,
		CapturedAt:          now,
	}
	if err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to record health snapshot: %w", err)
	}

	slog.InfoContext(ctx, "health snapshot recorded", "snapshot_id", snapshot.ID, "total", result.Total, "band", result.Band.Label)
	return result.toHealthScore(now), nil
}

// Ensure HealthServiceImpl implements the interface
var _ primary.HealthService = (*HealthServiceImpl)(nil)
