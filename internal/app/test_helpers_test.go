package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/example/govboard/internal/ports/secondary"
)

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func hoursAgo(h float64) time.Time {
	return fixedNow.Add(-time.Duration(h * float64(time.Hour)))
}

func daysFromNow(d int) *time.Time {
	t := fixedNow.AddDate(0, 0, d)
	return &t
}

// Ensure mocks implement the interfaces
var (
	_ secondary.ProjectRepository        = (*mockProjectRepository)(nil)
	_ secondary.GateRepository           = (*mockGateRepository)(nil)
	_ secondary.GateAssignmentRepository = (*mockGateAssignmentRepository)(nil)
	_ secondary.ComplianceRepository     = (*mockComplianceRepository)(nil)
	_ secondary.DecisionRepository       = (*mockDecisionRepository)(nil)
	_ secondary.ActionRepository         = (*mockActionRepository)(nil)
	_ secondary.BenefitRepository        = (*mockBenefitRepository)(nil)
	_ secondary.EscalationRepository     = (*mockEscalationRepository)(nil)
	_ secondary.SettingsRepository       = (*mockSettingsRepository)(nil)
	_ secondary.HealthSnapshotRepository = (*mockHealthSnapshotRepository)(nil)
)

// mockProjectRepository implements secondary.ProjectRepository for testing.
type mockProjectRepository struct {
	mu       sync.Mutex
	projects map[string]*secondary.ProjectRecord
	listErr  error
}

func newMockProjectRepository(projects ...*secondary.ProjectRecord) *mockProjectRepository {
	m := &mockProjectRepository{projects: make(map[string]*secondary.ProjectRecord)}
	for _, p := range projects {
		if p.GovernanceStatus == "" {
			p.GovernanceStatus = "on-track"
		}
		m.projects[p.ID] = p
	}
	return m
}

func (m *mockProjectRepository) List(ctx context.Context, filters secondary.ProjectFilters) ([]*secondary.ProjectRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.ProjectRecord
	for _, p := range m.projects {
		if filters.ExcludeArchived && p.Status == "archived" {
			continue
		}
		if filters.GovernanceStatus != "" && p.GovernanceStatus != filters.GovernanceStatus {
			continue
		}
		if filters.CurrentGateID != "" && p.CurrentGateID != filters.CurrentGateID {
			continue
		}
		if filters.StrategicInitiativeID != "" && p.StrategicInitiativeID != filters.StrategicInitiativeID {
			continue
		}
		cp := *p
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, fmt.Errorf("project %s: %w", id, secondary.ErrNotFound)
}

func (m *mockProjectRepository) UpdateGovernanceStatus(ctx context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.projects[id]
	if !ok {
		return fmt.Errorf("project %s: %w", id, secondary.ErrNotFound)
	}
	p.GovernanceStatus = status
	return nil
}

func (m *mockProjectRepository) governance(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.projects[id].GovernanceStatus
}

// mockGateRepository implements secondary.GateRepository for testing.
type mockGateRepository struct {
	gates []*secondary.GateRecord
}

func (m *mockGateRepository) List(ctx context.Context) ([]*secondary.GateRecord, error) {
	return m.gates, nil
}

// mockGateAssignmentRepository implements secondary.GateAssignmentRepository for testing.
type mockGateAssignmentRepository struct {
	pairs      []*secondary.GateProjectRecord
	completed  []*secondary.GateAssignmentRecord
	inProgress []*secondary.GateAssignmentRecord
}

func (m *mockGateAssignmentRepository) ListProjectsByGate(ctx context.Context) ([]*secondary.GateProjectRecord, error) {
	return m.pairs, nil
}

func (m *mockGateAssignmentRepository) ListCompleted(ctx context.Context) ([]*secondary.GateAssignmentRecord, error) {
	return m.completed, nil
}

func (m *mockGateAssignmentRepository) ListInProgress(ctx context.Context) ([]*secondary.GateAssignmentRecord, error) {
	return m.inProgress, nil
}

// mockComplianceRepository implements secondary.ComplianceRepository for testing.
type mockComplianceRepository struct {
	records          []*secondary.ComplianceRecord
	archivedProjects map[string]bool
	listErr          error
	overdueErr       error
}

func (m *mockComplianceRepository) List(ctx context.Context, filters secondary.ComplianceFilters) ([]*secondary.ComplianceRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.ComplianceRecord
	for _, r := range m.records {
		if filters.ProjectID != "" && r.ProjectID != filters.ProjectID {
			continue
		}
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		if filters.ExcludeArchived && m.archivedProjects[r.ProjectID] {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *mockComplianceRepository) ListOverdue(ctx context.Context, now time.Time) ([]*secondary.ComplianceRecord, error) {
	if m.overdueErr != nil {
		return nil, m.overdueErr
	}
	var result []*secondary.ComplianceRecord
	for _, r := range m.records {
		if m.archivedProjects[r.ProjectID] {
			continue
		}
		if r.Status == "overdue" || (r.Status == "non-compliant" && r.DueDate != nil && r.DueDate.Before(now)) {
			result = append(result, r)
		}
	}
	return result, nil
}

// mockDecisionRepository implements secondary.DecisionRepository for testing.
type mockDecisionRepository struct {
	decisions []*secondary.DecisionRecord
}

func (m *mockDecisionRepository) ListRecent(ctx context.Context, limit int) ([]*secondary.DecisionRecord, error) {
	sorted := append([]*secondary.DecisionRecord(nil), m.decisions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DecidedAt.After(sorted[j].DecidedAt) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// mockActionRepository implements secondary.ActionRepository for testing.
type mockActionRepository struct {
	actions []*secondary.ActionRecord
}

func isOpenAction(a *secondary.ActionRecord) bool {
	return a.Status == "pending" || a.Status == "in-progress"
}

func (m *mockActionRepository) List(ctx context.Context, filters secondary.ActionFilters) ([]*secondary.ActionRecord, error) {
	var result []*secondary.ActionRecord
	for _, a := range m.actions {
		if filters.ProjectID != "" && a.ProjectID != filters.ProjectID {
			continue
		}
		if filters.OpenOnly && !isOpenAction(a) {
			continue
		}
		if filters.DueBefore != nil && (a.DueDate == nil || !a.DueDate.Before(*filters.DueBefore)) {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *mockActionRepository) ListOverdueCritical(ctx context.Context, now time.Time) ([]*secondary.ActionRecord, error) {
	var result []*secondary.ActionRecord
	for _, a := range m.actions {
		if (a.Priority == "critical" || a.Priority == "high") && isOpenAction(a) && a.DueDate != nil && a.DueDate.Before(now) {
			result = append(result, a)
		}
	}
	return result, nil
}

// mockBenefitRepository implements secondary.BenefitRepository for testing.
type mockBenefitRepository struct {
	benefits []*secondary.BenefitRecord
}

func (m *mockBenefitRepository) List(ctx context.Context) ([]*secondary.BenefitRecord, error) {
	return m.benefits, nil
}

func (m *mockBenefitRepository) TotalsByProject(ctx context.Context) (map[string]float64, error) {
	totals := make(map[string]float64)
	for _, b := range m.benefits {
		totals[b.ProjectID] += b.ExpectedValue
	}
	return totals, nil
}

// mockEscalationRepository implements secondary.EscalationRepository for testing.
type mockEscalationRepository struct {
	mu               sync.Mutex
	escalations      map[string]*secondary.EscalationRecord
	nextID           int
	updateLevelCalls int
	levelWrites      int
}

func newMockEscalationRepository(escalations ...*secondary.EscalationRecord) *mockEscalationRepository {
	m := &mockEscalationRepository{
		escalations: make(map[string]*secondary.EscalationRecord),
		nextID:      1,
	}
	for _, e := range escalations {
		m.escalations[e.ID] = e
		m.nextID++
	}
	return m
}

func (m *mockEscalationRepository) Create(ctx context.Context, escalation *secondary.EscalationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.escalations[escalation.ID] = escalation
	return nil
}

func (m *mockEscalationRepository) GetByID(ctx context.Context, id string) (*secondary.EscalationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.escalations[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, fmt.Errorf("escalation %s: %w", id, secondary.ErrNotFound)
}

func (m *mockEscalationRepository) List(ctx context.Context, filters secondary.EscalationFilters) ([]*secondary.EscalationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*secondary.EscalationRecord
	for _, e := range m.escalations {
		if filters.ProjectID != "" && e.ProjectID != filters.ProjectID {
			continue
		}
		if filters.Status != "" && e.Status != filters.Status {
			continue
		}
		if filters.Type != "" && e.Type != filters.Type {
			continue
		}
		cp := *e
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockEscalationRepository) UpdateLevel(ctx context.Context, id string, newLevel int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateLevelCalls++
	e, ok := m.escalations[id]
	if !ok || e.Status != "open" || e.Level >= newLevel {
		return false, nil
	}
	e.Level = newLevel
	m.levelWrites++
	return true, nil
}

func (m *mockEscalationRepository) Resolve(ctx context.Context, id, resolution, resolvedBy string, resolvedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.escalations[id]
	if !ok {
		return fmt.Errorf("escalation %s: %w", id, secondary.ErrNotFound)
	}
	e.Status = "resolved"
	e.Resolution = resolution
	e.ResolvedBy = resolvedBy
	e.ResolvedAt = &resolvedAt
	return nil
}

func (m *mockEscalationRepository) GetNextID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("ESC-%03d", id), nil
}

func (m *mockEscalationRepository) level(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.escalations[id].Level
}

// mockSettingsRepository implements secondary.SettingsRepository for testing.
type mockSettingsRepository struct {
	mu     sync.Mutex
	values map[string]string
}

func newMockSettingsRepository() *mockSettingsRepository {
	return &mockSettingsRepository{values: make(map[string]string)}
}

func (m *mockSettingsRepository) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockSettingsRepository) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// mockHealthSnapshotRepository implements secondary.HealthSnapshotRepository for testing.
type mockHealthSnapshotRepository struct {
	snapshots []*secondary.HealthSnapshotRecord
}

func (m *mockHealthSnapshotRepository) Create(ctx context.Context, snapshot *secondary.HealthSnapshotRecord) error {
	m.snapshots = append(m.snapshots, snapshot)
	return nil
}

func (m *mockHealthSnapshotRepository) ListSince(ctx context.Context, since time.Time) ([]*secondary.HealthSnapshotRecord, error) {
	var result []*secondary.HealthSnapshotRecord
	for _, s := range m.snapshots {
		if !s.CapturedAt.Before(since) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CapturedAt.Before(result[j].CapturedAt) })
	return result, nil
}

// portfolioFixture bundles every mock so services can be built from one value.
type portfolioFixture struct {
	projects    *mockProjectRepository
	gates       *mockGateRepository
	assignments *mockGateAssignmentRepository
	compliance  *mockComplianceRepository
	decisions   *mockDecisionRepository
	actions     *mockActionRepository
	benefits    *mockBenefitRepository
	escalations *mockEscalationRepository
	settings    *mockSettingsRepository
	snapshots   *mockHealthSnapshotRepository
}

func newPortfolioFixture() *portfolioFixture {
	return &portfolioFixture{
		projects:    newMockProjectRepository(),
		gates:       &mockGateRepository{},
		assignments: &mockGateAssignmentRepository{},
		compliance:  &mockComplianceRepository{archivedProjects: map[string]bool{}},
		decisions:   &mockDecisionRepository{},
		actions:     &mockActionRepository{},
		benefits:    &mockBenefitRepository{},
		escalations: newMockEscalationRepository(),
		settings:    newMockSettingsRepository(),
		snapshots:   &mockHealthSnapshotRepository{},
	}
}

func (f *portfolioFixture) healthService() *HealthServiceImpl {
	svc := NewHealthService(f.projects, f.gates, f.assignments, f.compliance, f.actions,
		f.decisions, f.escalations, f.benefits, f.settings, f.snapshots)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func (f *portfolioFixture) escalationService() *EscalationServiceImpl {
	svc := NewEscalationService(f.escalations, f.projects, f.actions, f.settings)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func (f *portfolioFixture) analyticsService() *AnalyticsServiceImpl {
	svc := NewAnalyticsService(f.projects, f.gates, f.assignments, f.compliance, f.actions,
		f.escalations, f.benefits, f.settings, f.snapshots, 4)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

// scenarioFixture is the reference portfolio: four projects (two done, one due
// in the future, one past due), nine of ten compliance records compliant,
// three of five benefits realized and one level-1 escalation raised 30h ago.
func scenarioFixture() *portfolioFixture {
	f := newPortfolioFixture()
	f.projects = newMockProjectRepository(
		&secondary.ProjectRecord{ID: "PRJ-001", Name: "Alpha", Status: "done"},
		&secondary.ProjectRecord{ID: "PRJ-002", Name: "Beta", Status: "done"},
		&secondary.ProjectRecord{ID: "PRJ-003", Name: "Gamma", Status: "in-progress", EndDate: daysFromNow(30)},
		&secondary.ProjectRecord{ID: "PRJ-004", Name: "Delta", Status: "in-progress", EndDate: daysFromNow(-10), GovernanceStatus: "escalated"},
	)
	for i := 0; i < 10; i++ {
		status := "compliant"
		if i == 9 {
			status = "non-compliant"
		}
		f.compliance.records = append(f.compliance.records, &secondary.ComplianceRecord{
			ID:       fmt.Sprintf("PC-%d", i), ProjectID: "PRJ-004", ProjectName: "Delta",
			PolicyID: "POL-1", PolicyName: "Security", Status: status,
		})
	}
	for i, status := range []string{"full", "full", "full", "not-yet", "not-yet"} {
		f.benefits.benefits = append(f.benefits.benefits, &secondary.BenefitRecord{
			ID: fmt.Sprintf("BEN-%d", i), ProjectID: "PRJ-003", ExpectedValue: 100, RealizationStatus: status,
		})
	}
	f.escalations = newMockEscalationRepository(&secondary.EscalationRecord{
		ID:     "ESC-001", ProjectID: "PRJ-004", Type: "manual", Level: 1,
		Status: "open", RaisedBy: "pmo", RaisedAt: hoursAgo(30),
	})
	return f
}
