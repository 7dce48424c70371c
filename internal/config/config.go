package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Config holds the process settings read from the environment
type Config struct {
	LogLevel   string `validate:"oneof=debug info warn error"`
	SeqURL     string `validate:"omitempty,url"`
	IDStrategy string `validate:"oneof=uuid ksuid nanoid"`
}

var validate = validator.New()

// GetEnvOrDefault returns the environment variable env, or defaultVal when it is unset or empty
func GetEnvOrDefault(env, defaultVal string) string {
	e := os.Getenv(env)
	if e == "" {
		return defaultVal
	}
	return e
}

// Load reads ROWKIT_* variables and validates the result
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:   GetEnvOrDefault("ROWKIT_LOG_LEVEL", "info"),
		SeqURL:     os.Getenv("ROWKIT_SEQ_URL"),
		IDStrategy: GetEnvOrDefault("ROWKIT_ID_STRATEGY", "uuid"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
