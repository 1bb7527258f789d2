package cache

// Config holds configuration for the local cache.
type Config struct {
	// Backend selects the cache store implementation (memory, database, object).
	Backend string `mapstructure:"backend" default:"memory"`
}

const (
	BackendMemory   = "memory"
	BackendDatabase = "database"
	BackendObject   = "object"
)

// IsValidBackend checks if the configured cache backend is valid.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendMemory, BackendDatabase, BackendObject:
		return true
	default:
		return false
	}
}
