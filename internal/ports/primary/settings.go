package primary

import "context"

// SettingsService defines the primary port for the versioned portfolio settings.
type SettingsService interface {
	// GetSetting returns the effective JSON value for key and whether it was stored
	// (false means the defaults are in effect).
	GetSetting(ctx context.Context, key string) (*Setting, error)

	// SetSetting validates value for key and stores it.
	SetSetting(ctx context.Context, key, value string) error
}

// Setting is a settings value at the port boundary.
type Setting struct {
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value" yaml:"value"`
	Stored bool   `json:"stored" yaml:"stored"`
}
