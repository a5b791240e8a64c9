// Package escalation contains the pure business logic for the escalation state machine.
// This is part of the Functional Core - no I/O, only pure functions.
package escalation

import (
	"fmt"
	"time"
)

// Status values of an escalation.
const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
)

// Level bounds.
const (
	MinLevel = 1
	MaxLevel = 4
)

// SystemLevel is the level every system-detected escalation starts at.
const SystemLevel = 2

// Escalation types.
const (
	TypeActionOverdue = "action-overdue"
	TypeManual        = "manual"
)

// SystemActor is recorded as the raiser of system-detected escalations.
const SystemActor = "system"

// Thresholds are the ascending elapsed-hour boundaries of the SLA. Crossing
// each boundary raises the target level by one, saturating at MaxLevel.
type Thresholds struct {
	Level1Hours float64
	Level2Hours float64
	Level3Hours float64
	Level4Hours float64
}

// DefaultThresholds returns the SLA hours used when no configuration is stored.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Level1Hours: 24,
		Level2Hours: 48,
		Level3Hours: 72,
		Level4Hours: 168,
	}
}

// Validate checks the thresholds are positive and strictly ascending.
func (t Thresholds) Validate() error {
	hours := t.ordered()
	for i, h := range hours {
		if h <= 0 {
			return fmt.Errorf("SLA threshold %d must be positive, got %v", i+1, h)
		}
		if i > 0 && h <= hours[i-1] {
			return fmt.Errorf("SLA thresholds must be strictly ascending, got %v after %v", h, hours[i-1])
		}
	}
	return nil
}

func (t Thresholds) ordered() [4]float64 {
	return [4]float64{t.Level1Hours, t.Level2Hours, t.Level3Hours, t.Level4Hours}
}

// TargetLevel maps elapsed hours onto the level an open escalation should have reached.
func TargetLevel(elapsedHours float64, t Thresholds) int {
	level := MinLevel
	for _, h := range t.ordered() {
		if elapsedHours >= h {
			level++
		}
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// LevelChange describes a required level increase for one escalation.
type LevelChange struct {
	From int
	To   int
}

// PlanAutoEscalation decides whether an open escalation must be raised. It
// never proposes a decrease, and returns ok=false when nothing should be written.
func PlanAutoEscalation(currentLevel int, raisedAt, now time.Time, t Thresholds) (LevelChange, bool) {
	target := TargetLevel(ElapsedHours(raisedAt, now), t)
	if target <= currentLevel {
		return LevelChange{}, false
	}
	return LevelChange{From: currentLevel, To: target}, true
}

// ElapsedHours returns the hours between raisedAt and now.
func ElapsedHours(raisedAt, now time.Time) float64 {
	return now.Sub(raisedAt).Hours()
}
