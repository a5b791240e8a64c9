package scoring

import (
	"math"
	"testing"
)

func TestWeights_SumToOne(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
	}{
		{"defaults", DefaultWeights()},
		{"equal split", Weights{OnTimeDelivery: 0.2, BudgetPerformance: 0.2, Risk: 0.2, Compliance: 0.2, BenefitsRealization: 0.2}},
		{"delivery heavy", Weights{OnTimeDelivery: 0.5, BudgetPerformance: 0.2, Risk: 0.1, Compliance: 0.1, BenefitsRealization: 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.weights.Sum()-1) > weightTolerance {
				t.Errorf("Sum() = %v, want 1.0", tt.weights.Sum())
			}
			if err := tt.weights.Validate(); err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestWeights_ValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
	}{
		{"sum below one", Weights{OnTimeDelivery: 0.3}},
		{"negative weight", Weights{OnTimeDelivery: 1.2, BudgetPerformance: -0.2}},
		{"weight above one", Weights{OnTimeDelivery: 1.5, BudgetPerformance: -0.5}},
		{"not a number", Weights{OnTimeDelivery: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.weights.Validate(); err == nil {
				t.Errorf("Validate(%+v) expected error, got nil", tt.weights)
			}
		})
	}
}
