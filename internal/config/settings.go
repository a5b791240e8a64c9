package config

import (
	"encoding/json"
	"fmt"

	"github.com/example/govboard/internal/core/escalation"
	"github.com/example/govboard/internal/core/scoring"
)

// Settings keys consumed from the settings store.
const (
	KeyHealthWeights      = "portfolio.health_weights"
	KeyEscalationSLAHours = "portfolio.escalation_sla_hours"
)

// SettingsVersion is the schema version written by this build.
const SettingsVersion = 1

// HealthWeights is the stored form of the portfolio health weights.
type HealthWeights struct {
	Version             int     `json:"version"`
	OnTimeDelivery      float64 `json:"on_time_delivery"`
	BudgetPerformance   float64 `json:"budget_performance"`
	Risk                float64 `json:"risk"`
	Compliance          float64 `json:"compliance"`
	BenefitsRealization float64 `json:"benefits_realization"`
}

// DefaultHealthWeights returns the stored form of the default weights.
func DefaultHealthWeights() HealthWeights {
	w := scoring.DefaultWeights()
	return HealthWeights{
		Version:             SettingsVersion,
		OnTimeDelivery:      w.OnTimeDelivery,
		BudgetPerformance:   w.BudgetPerformance,
		Risk:                w.Risk,
		Compliance:          w.Compliance,
		BenefitsRealization: w.BenefitsRealization,
	}
}

// Weights converts the stored form into scoring weights.
func (h HealthWeights) Weights() scoring.Weights {
	return scoring.Weights{
		OnTimeDelivery:      h.OnTimeDelivery,
		BudgetPerformance:   h.BudgetPerformance,
		Risk:                h.Risk,
		Compliance:          h.Compliance,
		BenefitsRealization: h.BenefitsRealization,
	}
}

// Validate checks the schema version and the weights themselves.
func (h HealthWeights) Validate() error {
	if h.Version != SettingsVersion {
		return fmt.Errorf("unsupported health weights version %d", h.Version)
	}
	return h.Weights().Validate()
}

// ParseHealthWeights decodes and validates stored weights.
func ParseHealthWeights(raw string) (scoring.Weights, error) {
	var h HealthWeights
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		return scoring.Weights{}, fmt.Errorf("failed to parse health weights: %w", err)
	}
	if err := h.Validate(); err != nil {
		return scoring.Weights{}, err
	}
	return h.Weights(), nil
}

// SLAHours is the stored form of the escalation SLA thresholds.
type SLAHours struct {
	Version int     `json:"version"`
	Level1  float64 `json:"level_1"`
	Level2  float64 `json:"level_2"`
	Level3  float64 `json:"level_3"`
	Level4  float64 `json:"level_4"`
}

// DefaultSLAHours returns the stored form of the default thresholds.
func DefaultSLAHours() SLAHours {
	t := escalation.DefaultThresholds()
	return SLAHours{
		Version: SettingsVersion,
		Level1:  t.Level1Hours,
		Level2:  t.Level2Hours,
		Level3:  t.Level3Hours,
		Level4:  t.Level4Hours,
	}
}

// Thresholds converts the stored form into escalation thresholds.
func (s SLAHours) Thresholds() escalation.Thresholds {
	return escalation.Thresholds{
		Level1Hours: s.Level1,
		Level2Hours: s.Level2,
		Level3Hours: s.Level3,
		Level4Hours: s.Level4,
	}
}

// Validate checks the schema version and the thresholds themselves.
func (s SLAHours) Validate() error {
	if s.Version != SettingsVersion {
		return fmt.Errorf("unsupported SLA hours version %d", s.Version)
	}
	return s.Thresholds().Validate()
}

// ParseSLAHours decodes and validates stored SLA thresholds.
func ParseSLAHours(raw string) (escalation.Thresholds, error) {
	var s SLAHours
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return escalation.Thresholds{}, fmt.Errorf("failed to parse SLA hours: %w", err)
	}
	if err := s.Validate(); err != nil {
		return escalation.Thresholds{}, err
	}
	return s.Thresholds(), nil
}

// Encode renders a settings value object as the JSON stored in the settings table.
func Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode setting: %w", err)
	}
	return string(data), nil
}
