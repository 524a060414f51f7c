// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() defaults and Load(ctx) for layered loading.
// - External errors must be wrapped via this package's error helpers.
package config

// Store backend names.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the prediction store backend: sqlite or memory.
	Store string `koanf:"store"`

	// DBPath is the SQLite database file for the prediction store.
	DBPath string `koanf:"db_path"`

	// StoreTimeoutMS bounds each store operation in milliseconds.
	StoreTimeoutMS int `koanf:"store_timeout_ms"`

	// ModelDir holds the classifier artifacts: columns.json, dtypes.json
	// and scorecard.json.
	ModelDir string `koanf:"model_dir"`

	// MaxBodyBytes caps the size of accepted request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Addr:           ":9090",
		Store:          StoreSQLite,
		DBPath:         "predictions.db",
		StoreTimeoutMS: 2000,
		ModelDir:       "artifacts",
		MaxBodyBytes:   1 << 20,
	}
}
