package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/govboard/internal/ports/primary"
)

func TestAnalyticsAdapter_Heatmap(t *testing.T) {
	var captured primary.HeatmapFilters
	mock := &mockAnalyticsService{
		heatmapFn: func(ctx context.Context, filters primary.HeatmapFilters) ([]*primary.HeatmapEntry, error) {
			captured = filters
			return []*primary.HeatmapEntry{
				{ProjectID: "PRJ-004", ProjectName: "Data Platform", RiskScore: 62, ValueScore: 40, AlignmentScore: 70, GovernanceStatus: "escalated"},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewAnalyticsAdapter(mock, &buf, FormatTable)

	_, err := adapter.Heatmap(context.Background(), primary.HeatmapFilters{GovernanceStatus: "escalated"})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if captured.GovernanceStatus != "escalated" {
		t.Errorf("expected filter to be forwarded, got %+v", captured)
	}
	output := buf.String()
	for _, want := range []string{"Data Platform", "62", "escalated"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got '%s'", want, output)
		}
	}
}

func TestAnalyticsAdapter_Heatmap_Empty(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewAnalyticsAdapter(&mockAnalyticsService{}, &buf, FormatTable)

	_, err := adapter.Heatmap(context.Background(), primary.HeatmapFilters{})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No projects match") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}

func TestAnalyticsAdapter_Risk(t *testing.T) {
	mock := &mockAnalyticsService{
		riskFn: func(ctx context.Context, projectID string) (*primary.ProjectRisk, error) {
			return &primary.ProjectRisk{
				ProjectID:       projectID,
				Score:           48,
				Escalation:      50,
				Compliance:      40,
				OverdueActions:  60,
				ScheduleSlip:    33,
				DaysPastEndDate: 30,
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewAnalyticsAdapter(mock, &buf, FormatTable)

	_, err := adapter.Risk(context.Background(), "PRJ-004")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := buf.String()
	for _, want := range []string{"Risk for PRJ-004: 48", "Schedule slip (30d)", "40%"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got '%s'", want, output)
		}
	}
}

func TestAnalyticsAdapter_Trend(t *testing.T) {
	var capturedDays int
	mock := &mockAnalyticsService{
		trendFn: func(ctx context.Context, days int) ([]*primary.TrendPoint, error) {
			capturedDays = days
			return []*primary.TrendPoint{
				{Date: "2026-03-14", Score: 81, Band: "Good"},
				{Date: "2026-03-15", Score: 87, Band: "Good", Live: true},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewAnalyticsAdapter(mock, &buf, FormatTable)

	points, err := adapter.Trend(context.Background(), 30)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if capturedDays != 30 {
		t.Errorf("expected 30 days, got %d", capturedDays)
	}
	if len(points) != 2 {
		t.Errorf("expected 2 points, got %d", len(points))
	}
	if !strings.Contains(buf.String(), "2026-03-15 (live)") {
		t.Errorf("expected live marker, got '%s'", buf.String())
	}
}

func TestAnalyticsAdapter_Trend_Error(t *testing.T) {
	mock := &mockAnalyticsService{
		trendFn: func(ctx context.Context, days int) ([]*primary.TrendPoint, error) {
			return nil, errors.New("days must be at least 1")
		},
	}
	adapter := NewAnalyticsAdapter(mock, &bytes.Buffer{}, FormatTable)

	_, err := adapter.Trend(context.Background(), 0)

	if err == nil || !strings.Contains(err.Error(), "at least 1") {
		t.Errorf("expected wrapped validation error, got %v", err)
	}
}

func TestAnalyticsAdapter_Gates(t *testing.T) {
	mock := &mockAnalyticsService{
		gatesFn: func(ctx context.Context) (*primary.GateProgressionReport, error) {
			return &primary.GateProgressionReport{
				Gates: []primary.GateStats{
					{GateID: "G1", GateName: "Ideation", Sequence: 1, AverageDays: 12.5, CompletedCount: 4, InProgressCount: 1},
				},
				StuckProjects: []primary.StuckProject{
					{ProjectID: "PRJ-004", ProjectName: "Data Platform", GateName: "Ideation", DaysInGate: 75},
				},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewAnalyticsAdapter(mock, &buf, FormatTable)

	_, err := adapter.Gates(context.Background())

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := buf.String()
	for _, want := range []string{"Ideation", "12.5", "Stuck projects:", "75 days"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got '%s'", want, output)
		}
	}
}

func TestAnalyticsAdapter_Gates_NoneStuck(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewAnalyticsAdapter(&mockAnalyticsService{}, &buf, FormatTable)

	_, err := adapter.Gates(context.Background())

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No stuck projects") {
		t.Errorf("unexpected output '%s'", buf.String())
	}
}

func TestAnalyticsAdapter_Compliance_JSON(t *testing.T) {
	mock := &mockAnalyticsService{
		complianceFn: func(ctx context.Context) (*primary.ComplianceAnalytics, error) {
			return &primary.ComplianceAnalytics{
				OverallRate:  90,
				TotalRecords: 10,
				ByPolicy:     []primary.PolicyCompliance{{PolicyID: "POL-1", PolicyName: "Security", Total: 10, Compliant: 9, Rate: 90}},
				TopViolators: []primary.Violator{{ProjectID: "PRJ-004", ProjectName: "Data Platform", Violations: 1}},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewAnalyticsAdapter(mock, &buf, FormatJSON)

	_, err := adapter.Compliance(context.Background())

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, `"overall_rate": 90`) || !strings.Contains(output, `"violations": 1`) {
		t.Errorf("unexpected JSON '%s'", output)
	}
}

func TestAnalyticsAdapter_Compliance_Table(t *testing.T) {
	mock := &mockAnalyticsService{
		complianceFn: func(ctx context.Context) (*primary.ComplianceAnalytics, error) {
			return &primary.ComplianceAnalytics{
				OverallRate:  90,
				TotalRecords: 10,
				ByPolicy:     []primary.PolicyCompliance{{PolicyID: "POL-1", PolicyName: "Security", Total: 10, Compliant: 9, Rate: 90}},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewAnalyticsAdapter(mock, &buf, FormatTable)

	_, err := adapter.Compliance(context.Background())

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := buf.String()
	if !strings.Contains(output, "Overall compliance: 90.00% across 10 record(s)") {
		t.Errorf("unexpected header '%s'", output)
	}
	if strings.Contains(output, "Top violators") {
		t.Errorf("expected no violators section, got '%s'", output)
	}
}
