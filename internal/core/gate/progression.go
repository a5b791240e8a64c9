// Package gate contains the pure gate-progression rules.
// This is part of the Functional Core - no I/O, only pure functions.
package gate

import (
	"math"
	"sort"
	"time"
)

// Assignment status values.
const (
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// DefaultStuckThresholdDays is how long an assignment may stay in progress before
// its project counts as stuck.
const DefaultStuckThresholdDays = 60

// DaysBetween returns the fractional number of days from start to end.
func DaysBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// AverageDays returns the mean of durations rounded to one decimal, or 0 when empty.
func AverageDays(durations []float64) float64 {
	if len(durations) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range durations {
		sum += d
	}
	return math.Round(sum/float64(len(durations))*10) / 10
}

// OpenAssignment is an in-progress assignment considered for stuck detection.
type OpenAssignment struct {
	ProjectID   string
	ProjectName string
	GateID      string
	GateName    string
	EnteredAt   time.Time
}

// StuckProject is an in-progress assignment that has exceeded the threshold.
type StuckProject struct {
	OpenAssignment
	DaysInGate int
}

// FindStuck returns assignments open longer than thresholdDays, ordered by
// days in gate descending, then by project ID.
func FindStuck(open []OpenAssignment, now time.Time, thresholdDays int) []StuckProject {
	var stuck []StuckProject
	for _, a := range open {
		days := int(DaysBetween(a.EnteredAt, now))
		if days > thresholdDays {
			stuck = append(stuck, StuckProject{OpenAssignment: a, DaysInGate: days})
		}
	}
	sort.SliceStable(stuck, func(i, j int) bool {
		if stuck[i].DaysInGate != stuck[j].DaysInGate {
			return stuck[i].DaysInGate > stuck[j].DaysInGate
		}
		return stuck[i].ProjectID < stuck[j].ProjectID
	})
	return stuck
}
