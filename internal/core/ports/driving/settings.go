package driving

import "github.com/custodia-labs/arke-mcp/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, filling defaults.
	Get() (*domain.AppSettings, error)

	// Set stores a single setting by its dotted key.
	// Unknown keys and ill-typed values are rejected.
	Set(key, value string) error

	// Lookup returns the effective value of one setting as display text.
	Lookup(key string) (string, error)

	// Keys returns every supported setting key.
	Keys() []string

	// Validate checks the current settings are usable.
	Validate() error
}
