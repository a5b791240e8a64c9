package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/example/govboard/internal/ports/primary"
)

// EscalationAdapter translates CLI operations to EscalationService calls.
type EscalationAdapter struct {
	service primary.EscalationService
	out     io.Writer
	format  Format
}

// NewEscalationAdapter creates a new EscalationAdapter with the given service.
func NewEscalationAdapter(service primary.EscalationService, out io.Writer, format Format) *EscalationAdapter {
	return &EscalationAdapter{
		service: service,
		out:     out,
		format:  format,
	}
}

// List lists escalations with optional filters.
func (a *EscalationAdapter) List(ctx context.Context, filters primary.EscalationFilters) ([]*primary.Escalation, error) {
	escalations, err := a.service.ListEscalations(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list escalations: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, escalations); done {
		return escalations, err
	}

	if len(escalations) == 0 {
		fmt.Fprintln(a.out, "No escalations found.")
		return escalations, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tPROJECT\tTYPE\tLEVEL\tSTATUS\tRAISED")
	fmt.Fprintln(w, "--\t-------\t----\t-----\t------\t------")
	for _, e := range escalations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.ProjectID,
			e.Type,
			levelColor(e.Level).Sprintf("L%d", e.Level),
			e.Status,
			e.RaisedAt,
		)
	}
	w.Flush()
	return escalations, nil
}

// Show displays details for a single escalation.
func (a *EscalationAdapter) Show(ctx context.Context, escalationID string) (*primary.Escalation, error) {
	e, err := a.service.GetEscalation(ctx, escalationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get escalation: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, e); done {
		return e, err
	}

	fmt.Fprintf(a.out, "\nEscalation: %s\n", e.ID)
	fmt.Fprintf(a.out, "Project:  %s\n", e.ProjectID)
	fmt.Fprintf(a.out, "Type:     %s\n", e.Type)
	fmt.Fprintf(a.out, "Level:    %s\n", levelColor(e.Level).Sprintf("%d", e.Level))
	fmt.Fprintf(a.out, "Status:   %s\n", e.Status)
	fmt.Fprintf(a.out, "Reason:   %s\n", e.Reason)
	fmt.Fprintf(a.out, "Raised:   %s by %s\n", e.RaisedAt, e.RaisedBy)
	if e.ResolvedAt != "" {
		fmt.Fprintf(a.out, "Resolved: %s by %s\n", e.ResolvedAt, e.ResolvedBy)
		fmt.Fprintf(a.out, "Outcome:  %s\n", e.Resolution)
	}
	fmt.Fprintln(a.out)

	return e, nil
}

// Create raises an escalation.
func (a *EscalationAdapter) Create(ctx context.Context, req primary.CreateEscalationRequest) (*primary.Escalation, error) {
	e, err := a.service.CreateEscalation(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create escalation: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, e); done {
		return e, err
	}

	fmt.Fprintf(a.out, "✓ Created escalation %s on %s at level %d\n", e.ID, e.ProjectID, e.Level)
	return e, nil
}

// Resolve resolves an escalation.
func (a *EscalationAdapter) Resolve(ctx context.Context, req primary.ResolveEscalationRequest) error {
	if err := a.service.ResolveEscalation(ctx, req); err != nil {
		return fmt.Errorf("failed to resolve escalation: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Escalation %s resolved\n", req.EscalationID)
	return nil
}

// Sweep runs one auto-escalation sweep and reports the level changes.
func (a *EscalationAdapter) Sweep(ctx context.Context) (*primary.SweepResult, error) {
	result, err := a.service.ProcessAutoEscalations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to process auto-escalations: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, result); done {
		return result, err
	}

	fmt.Fprintf(a.out, "Examined %d open escalation(s), raised %d\n", result.Examined, result.Escalated)
	if len(result.Changes) == 0 {
		return result, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tPROJECT\tFROM\tTO\tHOURS")
	fmt.Fprintln(w, "--\t-------\t----\t--\t-----")
	for _, c := range result.Changes {
		fmt.Fprintf(w, "%s\t%s\tL%d\t%s\t%.1f\n",
			c.EscalationID, c.ProjectID, c.FromLevel, levelColor(c.ToLevel).Sprintf("L%d", c.ToLevel), c.ElapsedHours)
	}
	w.Flush()
	return result, nil
}

// Detect raises escalations for overdue critical and high actions.
func (a *EscalationAdapter) Detect(ctx context.Context) (*primary.DetectResult, error) {
	result, err := a.service.DetectNewEscalations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to detect escalations: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, result); done {
		return result, err
	}

	fmt.Fprintf(a.out, "Examined %d overdue action(s), created %d escalation(s)\n", result.Examined, len(result.Created))
	for _, e := range result.Created {
		fmt.Fprintf(a.out, "  ✓ %s on %s: %s\n", e.ID, e.ProjectID, e.Reason)
	}
	return result, nil
}

// Summary prints the portfolio escalation summary.
func (a *EscalationAdapter) Summary(ctx context.Context) (*primary.EscalationSummary, error) {
	summary, err := a.service.GetPortfolioEscalationSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to summarise escalations: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, summary); done {
		return summary, err
	}

	fmt.Fprintf(a.out, "Escalations: %d total, %d open, %d resolved\n", summary.Total, summary.Open, summary.Resolved)
	fmt.Fprintf(a.out, "Mean resolution: %.1fh\n\n", summary.AverageResolutionHours)

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tCOUNT")
	for level := 1; level <= 4; level++ {
		fmt.Fprintf(w, "%s\t%d\n", levelColor(level).Sprintf("L%d", level), summary.ByLevel[level])
	}
	w.Flush()

	types := make([]string, 0, len(summary.ByType))
	for t := range summary.ByType {
		types = append(types, t)
	}
	sort.Strings(types)
	if len(types) > 0 {
		fmt.Fprintln(a.out)
		w = tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TYPE\tCOUNT")
		for _, t := range types {
			fmt.Fprintf(w, "%s\t%d\n", t, summary.ByType[t])
		}
		w.Flush()
	}

	return summary, nil
}
