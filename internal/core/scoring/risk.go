package scoring

import (
	"math"
	"time"
)

// Per-unit contributions and weights of the composite project risk score.
const (
	escalationPointsPerLevel = 25
	violationPoints          = 33
	overdueActionPoints      = 20
	slipPointsPerDay         = 2

	escalationRiskWeight = 0.40
	complianceRiskWeight = 0.30
	actionRiskWeight     = 0.20
	scheduleRiskWeight   = 0.10

	componentCap = 100.0
)

// RiskInputs are the per-project facts the composite risk score is built from.
type RiskInputs struct {
	OpenEscalationLevels []int
	NonCompliantCount    int
	OverdueActionCount   int
	EndDate              *time.Time
	Now                  time.Time
}

// RiskBreakdown is the composite risk score with its capped components.
type RiskBreakdown struct {
	Score           int
	Escalation      float64
	Compliance      float64
	OverdueActions  float64
	ScheduleSlip    float64
	DaysPastEndDate int
}

// DaysOverdue returns whole days elapsed since the end date, or 0 when it has not passed.
func DaysOverdue(endDate *time.Time, now time.Time) int {
	if endDate == nil || !now.After(*endDate) {
		return 0
	}
	return int(now.Sub(*endDate).Hours() / 24)
}

// ProjectRisk computes the composite risk score. Every component is capped at
// 100 before weighting, so the result never exceeds 100.
func ProjectRisk(in RiskInputs) RiskBreakdown {
	levelSum := 0
	for _, level := range in.OpenEscalationLevels {
		levelSum += level
	}
	days := DaysOverdue(in.EndDate, in.Now)

	b := RiskBreakdown{
		Escalation:      capComponent(float64(levelSum * escalationPointsPerLevel)),
		Compliance:      capComponent(float64(in.NonCompliantCount * violationPoints)),
		OverdueActions:  capComponent(float64(in.OverdueActionCount * overdueActionPoints)),
		ScheduleSlip:    capComponent(float64(days * slipPointsPerDay)),
		DaysPastEndDate: days,
	}
	total := b.Escalation*escalationRiskWeight +
		b.Compliance*complianceRiskWeight +
		b.OverdueActions*actionRiskWeight +
		b.ScheduleSlip*scheduleRiskWeight
	b.Score = int(math.Round(clamp(total, 0, 100)))
	return b
}

func capComponent(v float64) float64 {
	return math.Min(v, componentCap)
}

// ComplianceRate returns ok/total as a percentage rounded to two decimals.
// An empty set is reported as fully compliant.
func ComplianceRate(ok, total int) float64 {
	if total == 0 {
		return perfectScore
	}
	return math.Round(float64(ok)/float64(total)*10000) / 100
}

// NormalizeValue scales value against max onto 0-100, rounded to an integer.
func NormalizeValue(value, max float64) int {
	if max <= 0 {
		return 0
	}
	return int(math.Round(clamp(value/max*100, 0, 100)))
}
