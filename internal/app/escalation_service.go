package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/example/govboard/internal/core/escalation"
	"github.com/example/govboard/internal/ctxutil"
	"github.com/example/govboard/internal/ports/primary"
	"github.com/example/govboard/internal/ports/secondary"
)

// EscalationServiceImpl implements the EscalationService interface.
type EscalationServiceImpl struct {
	escalationRepo secondary.EscalationRepository
	projectRepo    secondary.ProjectRepository
	actionRepo     secondary.ActionRepository
	settingsRepo   secondary.SettingsRepository
	now            func() time.Time
}

// NewEscalationService creates a new EscalationService with injected dependencies.
func NewEscalationService(
	escalationRepo secondary.EscalationRepository,
	projectRepo secondary.ProjectRepository,
	actionRepo secondary.ActionRepository,
	settingsRepo secondary.SettingsRepository,
) *EscalationServiceImpl {
	return &EscalationServiceImpl{
		escalationRepo: escalationRepo,
		projectRepo:    projectRepo,
		actionRepo:     actionRepo,
		settingsRepo:   settingsRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// CreateEscalation raises an escalation against a project and marks the project escalated.
func (s *EscalationServiceImpl) CreateEscalation(ctx context.Context, req primary.CreateEscalationRequest) (*primary.Escalation, error) {
	raisedBy := req.RaisedBy
	if raisedBy == "" {
		raisedBy = ctxutil.ActorFromContext(ctx)
	}
	if raisedBy == "" {
		return nil, fmt.Errorf("raised-by identity is required")
	}

	escType := req.Type
	if escType == "" {
		escType = escalation.TypeManual
	}

	exists, err := s.projectExists(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	guard := escalation.CanCreate(escalation.CreateContext{
		ProjectID:     req.ProjectID,
		ProjectExists: exists,
		Type:          escType,
		Level:         req.Level,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	record, err := s.create(ctx, req.ProjectID, escType, req.Level, req.Reason, raisedBy)
	if err != nil {
		return nil, err
	}
	return s.recordToEscalation(record), nil
}

// create persists an open escalation and marks its project escalated.
func (s *EscalationServiceImpl) create(ctx context.Context, projectID, escType string, level int, reason, raisedBy string) (*secondary.EscalationRecord, error) {
	id, err := s.escalationRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate escalation ID: %w", err)
	}

	record := &secondary.EscalationRecord{
		ID:        id,
		ProjectID: projectID,
		Type:      escType,
		Level:     level,
		Reason:    reason,
		Status:    escalation.StatusOpen,
		RaisedBy:  raisedBy,
		RaisedAt:  s.now(),
	}
	if err := s.escalationRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create escalation: %w", err)
	}

	if err := s.projectRepo.UpdateGovernanceStatus(ctx, projectID, escalation.GovernanceEscalated); err != nil {
		return nil, fmt.Errorf("failed to mark project escalated: %w", err)
	}

	slog.InfoContext(ctx, "escalation raised",
		"escalation_id", record.ID,
		"project_id", projectID,
		"type", escType,
		"level", level,
		"raised_by", raisedBy,
	)
	return record, nil
}

func (s *EscalationServiceImpl) projectExists(ctx context.Context, projectID string) (bool, error) {
	_, err := s.projectRepo.GetByID(ctx, projectID)
	if errors.Is(err, secondary.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get project: %w", err)
	}
	return true, nil
}

// ProcessAutoEscalations raises every open escalation whose SLA thresholds have
// passed. A second run at the same instant writes nothing.
func (s *EscalationServiceImpl) ProcessAutoEscalations(ctx context.Context) (*primary.SweepResult, error) {
	thresholds, err := loadSLAThresholds(ctx, s.settingsRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to load SLA thresholds: %w", err)
	}

	open, err := s.escalationRepo.List(ctx, secondary.EscalationFilters{Status: escalation.StatusOpen})
	if err != nil {
		return nil, fmt.Errorf("failed to list open escalations: %w", err)
	}

	now := s.now()
	result := &primary.SweepResult{Examined: len(open), Changes: []primary.LevelChange{}}
	for _, e := range open {
		change, ok := escalation.PlanAutoEscalation(e.Level, e.RaisedAt, now, thresholds)
		if !ok {
			continue
		}

		updated, err := s.escalationRepo.UpdateLevel(ctx, e.ID, change.To)
		if err != nil {
			return nil, fmt.Errorf("failed to escalate %s: %w", e.ID, err)
		}
		if !updated {
			continue
		}

		elapsed := roundTo(escalation.ElapsedHours(e.RaisedAt, now), 1)
		result.Changes = append(result.Changes, primary.LevelChange{
			EscalationID: e.ID,
			ProjectID:    e.ProjectID,
			FromLevel:    change.From,
			ToLevel:      change.To,
			ElapsedHours: elapsed,
		})
		slog.InfoContext(ctx, "escalation level raised",
			"escalation_id", e.ID,
			"project_id", e.ProjectID,
			"from_level", change.From,
			"to_level", change.To,
			"elapsed_hours", elapsed,
		)
	}
	result.Escalated = len(result.Changes)

	return result, nil
}

// DetectNewEscalations raises one action-overdue escalation per project with
// overdue critical or high actions, unless one is already open.
func (s *EscalationServiceImpl) DetectNewEscalations(ctx context.Context) (*primary.DetectResult, error) {
	now := s.now()
	overdue, err := s.actionRepo.ListOverdueCritical(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue actions: %w", err)
	}

	byProject := make(map[string][]*secondary.ActionRecord)
	var projectIDs []string
	for _, a := range overdue {
		if _, seen := byProject[a.ProjectID]; !seen {
			projectIDs = append(projectIDs, a.ProjectID)
		}
		byProject[a.ProjectID] = append(byProject[a.ProjectID], a)
	}
	sort.Strings(projectIDs)

	result := &primary.DetectResult{Examined: len(overdue), Created: []*primary.Escalation{}}
	for _, projectID := range projectIDs {
		existing, err := s.escalationRepo.List(ctx, secondary.EscalationFilters{
			ProjectID: projectID,
			Status:    escalation.StatusOpen,
			Type:      escalation.TypeActionOverdue,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to check open escalations for %s: %w", projectID, err)
		}
		if len(existing) > 0 {
			continue
		}

		record, err := s.create(ctx, projectID, escalation.TypeActionOverdue, escalation.SystemLevel,
			overdueReason(byProject[projectID]), escalation.SystemActor)
		if err != nil {
			return nil, err
		}
		result.Created = append(result.Created, s.recordToEscalation(record))
	}

	return result, nil
}

func overdueReason(actions []*secondary.ActionRecord) string {
	titles := make([]string, len(actions))
	for i, a := range actions {
		titles[i] = a.Title
	}
	return fmt.Sprintf("%d overdue critical/high action(s): %s", len(actions), strings.Join(titles, "; "))
}

// ResolveEscalation resolves an escalation and, when it was the project's last
// open escalation, returns the project to on-track.
func (s *EscalationServiceImpl) ResolveEscalation(ctx context.Context, req primary.ResolveEscalationRequest) error {
	record, err := s.escalationRepo.GetByID(ctx, req.EscalationID)
	if err != nil {
		return fmt.Errorf("failed to get escalation: %w", err)
	}

	guard := escalation.CanResolve(escalation.ResolveContext{
		EscalationID: record.ID,
		Status:       record.Status,
	})
	if err := guard.Error(); err != nil {
		return err
	}

	resolvedBy := req.ResolvedBy
	if resolvedBy == "" {
		resolvedBy = ctxutil.ActorFromContext(ctx)
	}
	if resolvedBy == "" {
		return fmt.Errorf("resolver identity is required")
	}

	if err := s.escalationRepo.Resolve(ctx, record.ID, req.Resolution, resolvedBy, s.now()); err != nil {
		return fmt.Errorf("failed to resolve escalation: %w", err)
	}

	remaining, err := s.escalationRepo.List(ctx, secondary.EscalationFilters{
		ProjectID: record.ProjectID,
		Status:    escalation.StatusOpen,
	})
	if err != nil {
		return fmt.Errorf("failed to list open escalations: %w", err)
	}

	status := escalation.GovernanceAfterResolve(len(remaining))
	if err := s.projectRepo.UpdateGovernanceStatus(ctx, record.ProjectID, status); err != nil {
		return fmt.Errorf("failed to update governance status: %w", err)
	}

	slog.InfoContext(ctx, "escalation resolved",
		"escalation_id", record.ID,
		"project_id", record.ProjectID,
		"resolved_by", resolvedBy,
		"governance_status", status,
	)
	return nil
}

// GetEscalation retrieves an escalation by ID.
func (s *EscalationServiceImpl) GetEscalation(ctx context.Context, escalationID string) (*primary.Escalation, error) {
	record, err := s.escalationRepo.GetByID(ctx, escalationID)
	if err != nil {
		return nil, err
	}
	return s.recordToEscalation(record), nil
}

// ListEscalations lists escalations with optional filters.
func (s *EscalationServiceImpl) ListEscalations(ctx context.Context, filters primary.EscalationFilters) ([]*primary.Escalation, error) {
	records, err := s.escalationRepo.List(ctx, secondary.EscalationFilters{
		ProjectID: filters.ProjectID,
		Status:    filters.Status,
		Type:      filters.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list escalations: %w", err)
	}

	escalations := make([]*primary.Escalation, len(records))
	for i, r := range records {
		escalations[i] = s.recordToEscalation(r)
	}
	return escalations, nil
}

// GetPortfolioEscalationSummary aggregates every escalation by level and type.
func (s *EscalationServiceImpl) GetPortfolioEscalationSummary(ctx context.Context) (*primary.EscalationSummary, error) {
	records, err := s.escalationRepo.List(ctx, secondary.EscalationFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list escalations: %w", err)
	}

	summary := &primary.EscalationSummary{
		Total:   len(records),
		ByLevel: make(map[int]int, escalation.MaxLevel),
		ByType:  make(map[string]int),
	}
	for level := escalation.MinLevel; level <= escalation.MaxLevel; level++ {
		summary.ByLevel[level] = 0
	}

	var totalHours float64
	resolvedWithTime := 0
	for _, r := range records {
		summary.ByLevel[r.Level]++
		summary.ByType[r.Type]++
		if r.Status == escalation.StatusResolved {
			summary.Resolved++
			if r.ResolvedAt != nil {
				totalHours += r.ResolvedAt.Sub(r.RaisedAt).Hours()
				resolvedWithTime++
			}
		} else {
			summary.Open++
		}
	}
	if resolvedWithTime > 0 {
		summary.AverageResolutionHours = roundTo(totalHours/float64(resolvedWithTime), 1)
	}

	return summary, nil
}

// Helper methods

func (s *EscalationServiceImpl) recordToEscalation(r *secondary.EscalationRecord) *primary.Escalation {
	e := &primary.Escalation{
		ID:         r.ID,
		ProjectID:  r.ProjectID,
		Type:       r.Type,
		Level:      r.Level,
		Reason:     r.Reason,
		Status:     r.Status,
		RaisedBy:   r.RaisedBy,
		RaisedAt:   r.RaisedAt.UTC().Format(time.RFC3339),
		Resolution: r.Resolution,
		ResolvedBy: r.ResolvedBy,
	}
	if r.ResolvedAt != nil {
		e.ResolvedAt = r.ResolvedAt.UTC().Format(time.RFC3339)
	}
	return e
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Ensure EscalationServiceImpl implements the interface
var _ primary.EscalationService = (*EscalationServiceImpl)(nil)
