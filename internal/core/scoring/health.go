// Package scoring contains the pure portfolio scoring engine.
// This is part of the Functional Core - no I/O, only pure functions.
package scoring

import (
	"math"
	"time"
)

// Project lifecycle status values consumed by the scoring rules.
const (
	ProjectStatusPlanned    = "planned"
	ProjectStatusInProgress = "in-progress"
	ProjectStatusBlocked    = "blocked"
	ProjectStatusDone       = "done"
	ProjectStatusArchived   = "archived"
)

// Compliance status values.
const (
	ComplianceCompliant    = "compliant"
	ComplianceWaived       = "waived"
	ComplianceNonCompliant = "non-compliant"
	ComplianceOverdue      = "overdue"
)

// Benefit realization status values.
const (
	RealizationNotYet  = "not-yet"
	RealizationPartial = "partial"
	RealizationFull    = "full"
)

// CriticalEscalationLevel is the level at or above which an escalation counts as critical.
const CriticalEscalationLevel = 4

// perfectScore is returned by every ratio score whose denominator is empty.
const perfectScore = 100.0

// ProjectFacts is the slice of a project the health rules need.
type ProjectFacts struct {
	Status      string
	EndDate     *time.Time
	Budget      float64
	ActualSpend float64
}

// Components holds the five sub-scores, each on a 0-100 scale.
type Components struct {
	OnTimeDelivery      float64
	BudgetPerformance   float64
	Risk                float64
	Compliance          float64
	BenefitsRealization float64
}

// OnTimeDeliveryScore returns the percentage of non-archived projects that are
// finished or whose end date has not passed yet.
func OnTimeDeliveryScore(projects []ProjectFacts, now time.Time) float64 {
	total, onTime := 0, 0
	for _, p := range projects {
		if p.Status == ProjectStatusArchived {
			continue
		}
		total++
		switch {
		case p.Status == ProjectStatusDone:
			onTime++
		case p.EndDate == nil || !now.After(*p.EndDate):
			onTime++
		}
	}
	return percentage(onTime, total)
}

// WithinBudget reports whether a project's spend is inside its budget.
// Projects without a budget are treated as within budget.
func WithinBudget(p ProjectFacts) bool {
	if p.Budget <= 0 {
		return true
	}
	return p.ActualSpend <= p.Budget
}

// BudgetPerformanceScore returns the percentage of non-archived projects within budget.
func BudgetPerformanceScore(projects []ProjectFacts) float64 {
	total, within := 0, 0
	for _, p := range projects {
		if p.Status == ProjectStatusArchived {
			continue
		}
		total++
		if WithinBudget(p) {
			within++
		}
	}
	return percentage(within, total)
}

// RiskScore is the inverse of escalation severity across open escalations:
// 100 - (critical/open)*50.
func RiskScore(openLevels []int) float64 {
	if len(openLevels) == 0 {
		return perfectScore
	}
	critical := 0
	for _, level := range openLevels {
		if level >= CriticalEscalationLevel {
			critical++
		}
	}
	return perfectScore - float64(critical)/float64(len(openLevels))*50
}

// ComplianceScore returns the percentage of records that are compliant or waived.
func ComplianceScore(statuses []string) float64 {
	ok := 0
	for _, s := range statuses {
		if IsCompliant(s) {
			ok++
		}
	}
	return percentage(ok, len(statuses))
}

// IsCompliant reports whether a compliance status counts toward the compliance rate.
func IsCompliant(status string) bool {
	return status == ComplianceCompliant || status == ComplianceWaived
}

// IsViolation reports whether a compliance status counts as a violation.
func IsViolation(status string) bool {
	return status == ComplianceNonCompliant || status == ComplianceOverdue
}

// BenefitsRealizationScore returns the percentage of benefits partially or fully realized.
func BenefitsRealizationScore(statuses []string) float64 {
	realized := 0
	for _, s := range statuses {
		if s == RealizationPartial || s == RealizationFull {
			realized++
		}
	}
	return percentage(realized, len(statuses))
}

// Composite combines the sub-scores with the given weights and returns the
// integer-rounded total, clamped to [0,100].
func Composite(c Components, w Weights) int {
	sum := c.OnTimeDelivery*w.OnTimeDelivery +
		c.BudgetPerformance*w.BudgetPerformance +
		c.Risk*w.Risk +
		c.Compliance*w.Compliance +
		c.BenefitsRealization*w.BenefitsRealization
	return int(math.Round(clamp(sum, 0, 100)))
}

func percentage(part, total int) float64 {
	if total == 0 {
		return perfectScore
	}
	return float64(part) / float64(total) * 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
