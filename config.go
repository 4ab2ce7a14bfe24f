package scrub

import (
	"errors"

	"github.com/caarlos0/env/v11"
)

// Config holds engine settings that can be supplied through the environment.
// The zero Config describes the same engine as New with no options.
type Config struct {
	TagKey string `env:"SCRUB_TAG_KEY" envDefault:"scrub"` // Struct tag key read during discovery; empty means DefaultTagKey
	Flat   bool   `env:"SCRUB_FLAT"`                       // Do not walk untagged nested structs
}

// DefaultConfig returns the settings New uses without options.
func DefaultConfig() Config {
	return Config{TagKey: DefaultTagKey}
}

// ConfigFromEnv loads a Config from SCRUB_* environment variables.
// Parse failures wrap ErrConfig.
func ConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrConfig, err)
	}
	if cfg.TagKey == "" {
		cfg.TagKey = DefaultTagKey
	}
	return cfg, nil
}
