// Package cli contains the output adapters used by the govboard commands.
// Each adapter depends only on a primary port, so it can be tested with mocks.
package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/example/govboard/internal/ports/primary"
)

// HealthAdapter renders portfolio health and the dashboard.
type HealthAdapter struct {
	service primary.HealthService
	out     io.Writer
	format  Format
}

// NewHealthAdapter creates a new HealthAdapter with the given service.
func NewHealthAdapter(service primary.HealthService, out io.Writer, format Format) *HealthAdapter {
	return &HealthAdapter{
		service: service,
		out:     out,
		format:  format,
	}
}

// Score prints the current portfolio health score. With snapshot set the
// score is also persisted for trend reporting.
func (a *HealthAdapter) Score(ctx context.Context, snapshot bool) (*primary.HealthScore, error) {
	var (
		score *primary.HealthScore
		err   error
	)
	if snapshot {
		score, err = a.service.RecordHealthSnapshot(ctx)
	} else {
		score, err = a.service.CalculatePortfolioHealthScore(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to calculate health score: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, score); done {
		return score, err
	}

	a.printScore(score)
	if snapshot {
		fmt.Fprintln(a.out, "✓ Snapshot recorded")
	}
	return score, nil
}

func (a *HealthAdapter) printScore(score *primary.HealthScore) {
	fmt.Fprintf(a.out, "Portfolio health: %d %s\n", score.Total, bandColor(score.Band.Label).Sprintf("[%s]", score.Band.Label))
	fmt.Fprintln(a.out)

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "COMPONENT\tSCORE")
	fmt.Fprintln(w, "---------\t-----")
	fmt.Fprintf(w, "On-time delivery\t%.1f\n", score.Components.OnTimeDelivery)
	fmt.Fprintf(w, "Budget performance\t%.1f\n", score.Components.BudgetPerformance)
	fmt.Fprintf(w, "Risk\t%.1f\n", score.Components.Risk)
	fmt.Fprintf(w, "Compliance\t%.1f\n", score.Components.Compliance)
	fmt.Fprintf(w, "Benefits realization\t%.1f\n", score.Components.BenefitsRealization)
	w.Flush()

	fmt.Fprintf(a.out, "\nCalculated at %s\n", score.CalculatedAt)
}

// Dashboard prints every dashboard panel.
func (a *HealthAdapter) Dashboard(ctx context.Context) (*primary.DashboardData, error) {
	data, err := a.service.GetPortfolioDashboardData(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, data); done {
		return data, err
	}

	a.printScore(data.Health)

	fmt.Fprintln(a.out, "\nGates:")
	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SEQ\tGATE\tPROJECTS\tMEMBERS")
	fmt.Fprintln(w, "---\t----\t--------\t-------")
	for _, g := range data.GateDistribution {
		names := make([]string, len(g.Projects))
		for i, p := range g.Projects {
			names[i] = p.ID
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", g.Sequence, g.GateName, g.ProjectCount, strings.Join(names, ", "))
	}
	w.Flush()

	fmt.Fprintf(a.out, "\nCompliance alert: %d overdue %s\n",
		data.ComplianceAlert.OverdueCount,
		severityColor(data.ComplianceAlert.Severity).Sprintf("[%s]", data.ComplianceAlert.Severity))

	priorities := make([]string, 0, len(data.Actions.ByPriority))
	for p := range data.Actions.ByPriority {
		priorities = append(priorities, p)
	}
	sort.Strings(priorities)
	counts := make([]string, len(priorities))
	for i, p := range priorities {
		counts[i] = fmt.Sprintf("%s=%d", p, data.Actions.ByPriority[p])
	}
	fmt.Fprintf(a.out, "Open actions: %d (overdue %d, due this week %d; %s)\n",
		data.Actions.Total, data.Actions.Overdue, data.Actions.DueThisWeek, strings.Join(counts, " "))
	fmt.Fprintf(a.out, "Open escalations: %d\n", data.OpenEscalations)
	fmt.Fprintf(a.out, "Benefits at risk: %d\n", data.BenefitsAtRiskCount)

	if len(data.RecentDecisions) > 0 {
		fmt.Fprintln(a.out, "\nRecent decisions:")
		w = tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
		for _, d := range data.RecentDecisions {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", d.DecidedAt, d.ProjectName, d.Title, d.Outcome)
		}
		w.Flush()
	}

	return data, nil
}
