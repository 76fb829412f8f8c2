package settings

import "context"

// Store persists Settings as a key-value document.
type Store interface {
	// Load reads the document. Fields that are missing or cannot be decoded
	// keep their value from fallback; the returned error then wraps
	// ErrSettingsMissing or ErrSettingsInvalid and the settings are still usable.
	Load(ctx context.Context, fallback Settings) (Settings, error)
	Save(ctx context.Context, s Settings) error
	Path() string
}
