package driving

import "github.com/custodia-labs/stylist-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves current settings: defaults, then stored values, then overrides.
	Get() (*domain.AppSettings, error)

	// Save validates and persists settings.
	Save(settings *domain.AppSettings) error

	// GetValue returns the effective value of a single key as text.
	GetValue(key string) (string, error)

	// SetValue parses, validates and persists a single key.
	SetValue(key, value string) error

	// Keys returns the supported setting keys.
	Keys() []string

	// Path returns where settings are stored.
	Path() string

	// Validate checks the effective settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
