package escalation

import "fmt"

// Governance status values a project can carry.
const (
	GovernanceOnTrack   = "on-track"
	GovernanceAtRisk    = "at-risk"
	GovernanceBlocked   = "blocked"
	GovernanceEscalated = "escalated"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateContext provides context for escalation creation guards.
type CreateContext struct {
	ProjectID     string
	ProjectExists bool
	Type          string
	Level         int
}

// CanCreate evaluates whether an escalation can be created.
// Rules:
// - Project must exist
// - Type must be set
// - Level must be within 1..4
func CanCreate(ctx CreateContext) GuardResult {
	if !ctx.ProjectExists {
		return GuardResult{Reason: fmt.Sprintf("project %s not found", ctx.ProjectID)}
	}
	if ctx.Type == "" {
		return GuardResult{Reason: "escalation type is required"}
	}
	if ctx.Level < MinLevel || ctx.Level > MaxLevel {
		return GuardResult{Reason: fmt.Sprintf("escalation level must be between %d and %d, got %d", MinLevel, MaxLevel, ctx.Level)}
	}
	return GuardResult{Allowed: true}
}

// ResolveContext provides context for resolution guards.
type ResolveContext struct {
	EscalationID string
	Status       string
}

// CanResolve evaluates whether an escalation can be resolved.
// Rule: only open escalations can be resolved.
func CanResolve(ctx ResolveContext) GuardResult {
	if ctx.Status != StatusOpen {
		return GuardResult{Reason: fmt.Sprintf("escalation %s is not open (current status: %s)", ctx.EscalationID, ctx.Status)}
	}
	return GuardResult{Allowed: true}
}

// GovernanceAfterResolve returns the project's governance status once an
// escalation is resolved, given how many other escalations remain open.
func GovernanceAfterResolve(remainingOpen int) string {
	if remainingOpen > 0 {
		return GovernanceEscalated
	}
	return GovernanceOnTrack
}

// IsAtRisk reports whether a governance status marks its project as at risk.
func IsAtRisk(governanceStatus string) bool {
	switch governanceStatus {
	case GovernanceAtRisk, GovernanceBlocked, GovernanceEscalated:
		return true
	}
	return false
}
