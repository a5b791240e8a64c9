package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/govboard/internal/config"
	"github.com/example/govboard/internal/core/escalation"
	"github.com/example/govboard/internal/core/scoring"
	"github.com/example/govboard/internal/ports/primary"
	"github.com/example/govboard/internal/ports/secondary"
)

// SettingsServiceImpl implements the SettingsService interface.
type SettingsServiceImpl struct {
	settingsRepo secondary.SettingsRepository
}

// NewSettingsService creates a new SettingsService with injected dependencies.
func NewSettingsService(settingsRepo secondary.SettingsRepository) *SettingsServiceImpl {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

// GetSetting returns the stored value for key, or the encoded defaults.
func (s *SettingsServiceImpl) GetSetting(ctx context.Context, key string) (*primary.Setting, error) {
	defaults, err := defaultSetting(key)
	if err != nil {
		return nil, err
	}

	value, found, err := s.settingsRepo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return &primary.Setting{Key: key, Value: defaults}, nil
	}
	return &primary.Setting{Key: key, Value: value, Stored: true}, nil
}

// SetSetting validates value for key and stores it.
func (s *SettingsServiceImpl) SetSetting(ctx context.Context, key, value string) error {
	var err error
	switch key {
	case config.KeyHealthWeights:
		_, err = config.ParseHealthWeights(value)
	case config.KeyEscalationSLAHours:
		_, err = config.ParseSLAHours(value)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	if err := s.settingsRepo.Set(ctx, key, value); err != nil {
		return err
	}
	slog.InfoContext(ctx, "setting updated", "key", key)
	return nil
}

func defaultSetting(key string) (string, error) {
	switch key {
	case config.KeyHealthWeights:
		return config.Encode(config.DefaultHealthWeights())
	case config.KeyEscalationSLAHours:
		return config.Encode(config.DefaultSLAHours())
	}
	return "", fmt.Errorf("unknown setting %q", key)
}

// loadHealthWeights reads the configured weights. A missing or unusable value
// falls back to the defaults; only a failing read is an error.
func loadHealthWeights(ctx context.Context, repo secondary.SettingsRepository) (scoring.Weights, error) {
	raw, found, err := repo.Get(ctx, config.KeyHealthWeights)
	if err != nil {
		return scoring.Weights{}, err
	}
	if !found {
		return scoring.DefaultWeights(), nil
	}
	weights, err := config.ParseHealthWeights(raw)
	if err != nil {
		slog.WarnContext(ctx, "ignoring stored health weights, using defaults", "key", config.KeyHealthWeights, "error", err)
		return scoring.DefaultWeights(), nil
	}
	return weights, nil
}

// loadSLAThresholds reads the configured SLA hours with the same fallback rules.
func loadSLAThresholds(ctx context.Context, repo secondary.SettingsRepository) (escalation.Thresholds, error) {
	raw, found, err := repo.Get(ctx, config.KeyEscalationSLAHours)
	if err != nil {
		return escalation.Thresholds{}, err
	}
	if !found {
		return escalation.DefaultThresholds(), nil
	}
	thresholds, err := config.ParseSLAHours(raw)
	if err != nil {
		slog.WarnContext(ctx, "ignoring stored SLA hours, using defaults", "key", config.KeyEscalationSLAHours, "error", err)
		return escalation.DefaultThresholds(), nil
	}
	return thresholds, nil
}

// Ensure SettingsServiceImpl implements the interface
var _ primary.SettingsService = (*SettingsServiceImpl)(nil)
