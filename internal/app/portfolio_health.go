package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/govboard/internal/core/escalation"
	"github.com/example/govboard/internal/core/scoring"
	"github.com/example/govboard/internal/ports/primary"
	"github.com/example/govboard/internal/ports/secondary"
)

// portfolioHealth computes the composite portfolio health score. The health
// and analytics services each own one, so neither calls the other.
type portfolioHealth struct {
	projectRepo    secondary.ProjectRepository
	complianceRepo secondary.ComplianceRepository
	escalationRepo secondary.EscalationRepository
	benefitRepo    secondary.BenefitRepository
	settingsRepo   secondary.SettingsRepository
}

type healthResult struct {
	Total      int
	Components scoring.Components
	Band       scoring.Band
}

// calculate runs the five sub-scores and the weights lookup concurrently.
func (h *portfolioHealth) calculate(ctx context.Context, now time.Time) (*healthResult, error) {
	var (
		c       scoring.Components
		weights scoring.Weights
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		projects, err := h.listProjectFacts(gctx)
		if err != nil {
			return err
		}
		c.OnTimeDelivery = scoring.OnTimeDeliveryScore(projects, now)
		return nil
	})
	g.Go(func() error {
		projects, err := h.listProjectFacts(gctx)
		if err != nil {
			return err
		}
		c.BudgetPerformance = scoring.BudgetPerformanceScore(projects)
		return nil
	})
	g.Go(func() error {
		open, err := h.escalationRepo.List(gctx, secondary.EscalationFilters{Status: escalation.StatusOpen})
		if err != nil {
			return fmt.Errorf("failed to list open escalations: %w", err)
		}
		levels := make([]int, len(open))
		for i, e := range open {
			levels[i] = e.Level
		}
		c.Risk = scoring.RiskScore(levels)
		return nil
	})
	g.Go(func() error {
		records, err := h.complianceRepo.List(gctx, secondary.ComplianceFilters{})
		if err != nil {
			return fmt.Errorf("failed to list compliance records: %w", err)
		}
		statuses := make([]string, len(records))
		for i, r := range records {
			statuses[i] = r.Status
		}
		c.Compliance = scoring.ComplianceScore(statuses)
		return nil
	})
	g.Go(func() error {
		benefits, err := h.benefitRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list benefits: %w", err)
		}
		statuses := make([]string, len(benefits))
		for i, b := range benefits {
			statuses[i] = b.RealizationStatus
		}
		c.BenefitsRealization = scoring.BenefitsRealizationScore(statuses)
		return nil
	})
	g.Go(func() error {
		w, err := loadHealthWeights(gctx, h.settingsRepo)
		if err != nil {
			return fmt.Errorf("failed to load health weights: %w", err)
		}
		weights = w
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := scoring.Composite(c, weights)
	return &healthResult{
		Total:      total,
		Components: c,
		Band:       scoring.ClassifyBand(total),
	}, nil
}

func (h *portfolioHealth) listProjectFacts(ctx context.Context) ([]scoring.ProjectFacts, error) {
	projects, err := h.projectRepo.List(ctx, secondary.ProjectFilters{ExcludeArchived: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	facts := make([]scoring.ProjectFacts, len(projects))
	for i, p := range projects {
		facts[i] = scoring.ProjectFacts{
			Status:      p.Status,
			EndDate:     p.EndDate,
			Budget:      p.Budget,
			ActualSpend: p.ActualSpend,
		}
	}
	return facts, nil
}

func (r *healthResult) toHealthScore(calculatedAt time.Time) *primary.HealthScore {
	return &primary.HealthScore{
		Total: r.Total,
		Components: primary.HealthComponents{
			OnTimeDelivery:      r.Components.OnTimeDelivery,
			BudgetPerformance:   r.Components.BudgetPerformance,
			Risk:                r.Components.Risk,
			Compliance:          r.Components.Compliance,
			BenefitsRealization: r.Components.BenefitsRealization,
		},
		Band:         primary.ScoreBand{Label: r.Band.Label, Color: r.Band.Color},
		CalculatedAt: calculatedAt.UTC().Format(time.RFC3339),
	}
}
