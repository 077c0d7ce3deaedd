package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "CHAINCONFIG"

// Config is read from CHAINCONFIG_* variables. All fields are optional.
// TargetPath is resolved against the working directory; the updater is
// expected to run from the blockchain/ folder next to the Flutter lib/.
type Config struct {
	Env      string     `split_words:"true" default:"development"`
	LogLevel slog.Level `split_words:"true" default:"error"`

	TargetPath string `split_words:"true" default:"../lib/services/blockchain_service.dart"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
