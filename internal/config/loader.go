package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FRISK_CONFIG is set
//  3. env (prefix FRISK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("FRISK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: FRISK_ADDR, FRISK_DB_PATH, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("FRISK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "frisk_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.Store {
	case StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("%w: store must be %q or %q, got %q", ErrInvalidConfig, StoreSQLite, StoreMemory, c.Store)
	}
	if c.Store == StoreSQLite && c.DBPath == "" {
		return fmt.Errorf("%w: db_path must not be empty for the sqlite store", ErrInvalidConfig)
	}
	if c.ModelDir == "" {
		return fmt.Errorf("%w: model_dir must not be empty", ErrInvalidConfig)
	}
	if c.StoreTimeoutMS <= 0 {
		return fmt.Errorf("%w: store_timeout_ms must be positive", ErrInvalidConfig)
	}
	return nil
}
