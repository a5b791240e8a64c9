package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/govboard/internal/ports/primary"
)

// SettingsAdapter translates CLI operations to SettingsService calls.
type SettingsAdapter struct {
	service primary.SettingsService
	out     io.Writer
	format  Format
}

// NewSettingsAdapter creates a new SettingsAdapter with the given service.
func NewSettingsAdapter(service primary.SettingsService, out io.Writer, format Format) *SettingsAdapter {
	return &SettingsAdapter{
		service: service,
		out:     out,
		format:  format,
	}
}

// Get prints the effective value of a setting.
func (a *SettingsAdapter) Get(ctx context.Context, key string) (*primary.Setting, error) {
	setting, err := a.service.GetSetting(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}

	if done, err := renderStructured(a.out, a.format, setting); done {
		return setting, err
	}

	source := "stored"
	if !setting.Stored {
		source = "default"
	}
	fmt.Fprintf(a.out, "%s (%s)\n%s\n", setting.Key, source, setting.Value)
	return setting, nil
}

// Set validates and stores a setting.
func (a *SettingsAdapter) Set(ctx context.Context, key, value string) error {
	if err := a.service.SetSetting(ctx, key, value); err != nil {
		return fmt.Errorf("failed to set setting: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Updated %s\n", key)
	return nil
}
