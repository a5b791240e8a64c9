package scoring

import (
	"fmt"
	"math"
)

// weightTolerance absorbs float rounding when checking that weights sum to one.
const weightTolerance = 1e-6

// Weights are the multipliers applied to each sub-score. They must sum to 1.0.
type Weights struct {
	OnTimeDelivery      float64
	BudgetPerformance   float64
	Risk                float64
	Compliance          float64
	BenefitsRealization float64
}

// DefaultWeights returns the weights used when no configuration is stored.
func DefaultWeights() Weights {
	return Weights{
		OnTimeDelivery:      0.30,
		BudgetPerformance:   0.25,
		Risk:                0.20,
		Compliance:          0.15,
		BenefitsRealization: 0.10,
	}
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.OnTimeDelivery + w.BudgetPerformance + w.Risk + w.Compliance + w.BenefitsRealization
}

// Validate checks every weight is within [0,1] and that they sum to 1.0.
func (w Weights) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"on_time_delivery", w.OnTimeDelivery},
		{"budget_performance", w.BudgetPerformance},
		{"risk", w.Risk},
		{"compliance", w.Compliance},
		{"benefits_realization", w.BenefitsRealization},
	}
	for _, n := range named {
		if math.IsNaN(n.value) || n.value < 0 || n.value > 1 {
			return fmt.Errorf("weight %s must be within [0,1], got %v", n.name, n.value)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.4f", sum)
	}
	return nil
}
