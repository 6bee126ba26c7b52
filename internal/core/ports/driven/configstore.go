package driven

// ConfigStore provides access to application configuration.
// Nested tables are addressed with dot-separated keys such as
// "source.owner".
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString returns "" if the key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt returns 0 if the key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool returns false if the key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// GetStringMap returns the string values stored below prefix, keyed
	// by the remainder of their key. It returns nil when there are none.
	GetStringMap(prefix string) map[string]string

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
