package driving

import "github.com/custodia-labs/filesearch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get builds the current settings, applying defaults for unset keys.
	Get() (domain.Settings, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// Set validates and persists a single setting.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string

	// Path returns where settings are persisted.
	Path() string
}
