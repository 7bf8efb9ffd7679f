package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/funvibe/typedispatch/internal/config"
)

var validate = validator.New()

// Config holds the settings read from the environment.
type Config struct {
	LogLevel string `validate:"oneof=debug info warn error"`
	Strict   bool
}

// LoadConfig reads the configuration from the environment after loading
// envFile, if it exists. Variables already set are not overridden.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{LogLevel: "warn"}
	if v := os.Getenv(config.EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(config.EnvStrict); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.EnvStrict, err)
		}
		cfg.Strict = strict
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: invalid log level %q: %w", config.EnvLogLevel, cfg.LogLevel, err)
	}
	return cfg, nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}
