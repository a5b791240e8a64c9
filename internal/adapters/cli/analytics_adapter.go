package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/govboard/internal/ports/primary"
)

// AnalyticsAdapter renders portfolio analytics.
type AnalyticsAdapter struct {
	service primary.AnalyticsService
	out     io.Writer
	format  Format
}

// NewAnalyticsAdapter creates a new AnalyticsAdapter with the given service.
func NewAnalyticsAdapter(service primary.AnalyticsService, out io.Writer, format Format) *AnalyticsAdapter {
	return &AnalyticsAdapter{
		service: service,
		out:     out,
		format:  format,
	}
}

// Heatmap prints projects on the risk/value grid, riskiest first.
func (a *AnalyticsAdapter) Heatmap(ctx context.Context, filters primary.HeatmapFilters) ([]*primary.HeatmapEntry, error) {
	entries, err := a.service.GeneratePortfolioHeatmap(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to generate heatmap: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, entries); done {
		return entries, err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No projects match.")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tNAME\tRISK\tVALUE\tALIGNMENT\tGOVERNANCE")
	fmt.Fprintln(w, "-------\t----\t----\t-----\t---------\t----------")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0f\t%s\n",
			e.ProjectID, e.ProjectName, e.RiskScore, e.ValueScore, e.AlignmentScore, e.GovernanceStatus)
	}
	w.Flush()
	return entries, nil
}

// Risk prints one project's composite risk breakdown.
func (a *AnalyticsAdapter) Risk(ctx context.Context, projectID string) (*primary.ProjectRisk, error) {
	risk, err := a.service.CalculateProjectRiskScore(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to score project risk: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, risk); done {
		return risk, err
	}

	fmt.Fprintf(a.out, "Risk for %s: %d\n\n", risk.ProjectID, risk.Score)
	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tSCORE\tWEIGHT")
	fmt.Fprintf(w, "Escalations\t%.0f\t40%%\n", risk.Escalation)
	fmt.Fprintf(w, "Compliance\t%.0f\t30%%\n", risk.Compliance)
	fmt.Fprintf(w, "Overdue actions\t%.0f\t20%%\n", risk.OverdueActions)
	fmt.Fprintf(w, "Schedule slip (%dd)\t%.0f\t10%%\n", risk.DaysPastEndDate, risk.ScheduleSlip)
	w.Flush()
	return risk, nil
}

// Trend prints the health trend over the last days days.
func (a *AnalyticsAdapter) Trend(ctx context.Context, days int) ([]*primary.TrendPoint, error) {
	points, err := a.service.GetPortfolioHealthTrend(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to load health trend: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, points); done {
		return points, err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DATE\tSCORE\tBAND")
	fmt.Fprintln(w, "----\t-----\t----")
	for _, p := range points {
		date := p.Date
		if p.Live {
			date += " (live)"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", date, p.Score, bandColor(p.Band).Sprint(p.Band))
	}
	w.Flush()
	return points, nil
}

// Gates prints per-gate timing and stuck projects.
func (a *AnalyticsAdapter) Gates(ctx context.Context) (*primary.GateProgressionReport, error) {
	report, err := a.service.GetGateProgressionAnalytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gate analytics: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, report); done {
		return report, err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SEQ\tGATE\tAVG DAYS\tCOMPLETED\tIN PROGRESS")
	fmt.Fprintln(w, "---\t----\t--------\t---------\t-----------")
	for _, g := range report.Gates {
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%d\t%d\n", g.Sequence, g.GateName, g.AverageDays, g.CompletedCount, g.InProgressCount)
	}
	w.Flush()

	if len(report.StuckProjects) == 0 {
		fmt.Fprintln(a.out, "\nNo stuck projects.")
		return report, nil
	}

	fmt.Fprintln(a.out, "\nStuck projects:")
	w = tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	for _, s := range report.StuckProjects {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%d days\n", s.ProjectID, s.ProjectName, s.GateName, s.DaysInGate)
	}
	w.Flush()
	return report, nil
}

// Compliance prints compliance rates and the top violators.
func (a *AnalyticsAdapter) Compliance(ctx context.Context) (*primary.ComplianceAnalytics, error) {
	result, err := a.service.GetComplianceAnalytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load compliance analytics: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, result); done {
		return result, err
	}

	fmt.Fprintf(a.out, "Overall compliance: %.2f%% across %d record(s)\n\n", result.OverallRate, result.TotalRecords)

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "POLICY\tTOTAL\tCOMPLIANT\tNON-COMPLIANT\tOVERDUE\tRATE")
	fmt.Fprintln(w, "------\t-----\t---------\t-------------\t-------\t----")
	for _, p := range result.ByPolicy {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%.2f%%\n", p.PolicyName, p.Total, p.Compliant, p.NonCompliant, p.Overdue, p.Rate)
	}
	w.Flush()

	if len(result.TopViolators) > 0 {
		fmt.Fprintln(a.out, "\nTop violators:")
		w = tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
		for _, v := range result.TopViolators {
			fmt.Fprintf(w, "  %s\t%s\t%d\n", v.ProjectID, v.ProjectName, v.Violations)
		}
		w.Flush()
	}
	return result, nil
}
