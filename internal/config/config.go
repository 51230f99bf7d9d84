// internal/config/config.go
//
// Runtime configuration for guessgame.
//
// Precedence (lowest → highest):
//   1. Defaults (Default()).
//   2. YAML file given by path, or GUESS_CONFIG when path is empty.
//   3. Environment variables (a .env file is loaded by main beforehand).
//   4. CLI flags, applied by the caller.
//
// Environment variables:
//   LOG_LEVEL            zerolog level (trace|debug|info|warn|error|...)
//   GUESS_LANG           feedback language; falls back to LANG
//   GUESS_MESSAGES_FILE  extra locale YAML
//   GUESS_DAILY          "true" to play the daily target
//   GUESS_DAILY_SALT     HMAC salt for the daily target

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every configuration failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the resolved configuration.
type Config struct {
	LogLevel     string `yaml:"log_level"`
	Lang         string `yaml:"lang"`
	MessagesFile string `yaml:"messages_file"`
	Daily        bool   `yaml:"daily"`
	DailySalt    string `yaml:"daily_salt"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:  "info",
		DailySalt: "local_dev_salt",
	}
}

// Load resolves configuration from defaults, an optional YAML file and the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("GUESS_CONFIG")
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Lang = getEnv("GUESS_LANG", cfg.Lang)
	if cfg.Lang == "" {
		cfg.Lang = os.Getenv("LANG")
	}
	cfg.MessagesFile = getEnv("GUESS_MESSAGES_FILE", cfg.MessagesFile)
	cfg.DailySalt = getEnv("GUESS_DAILY_SALT", cfg.DailySalt)
	if v := os.Getenv("GUESS_DAILY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: GUESS_DAILY=%q", ErrInvalidConfig, v)
		}
		cfg.Daily = b
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

// Validate checks values that cannot be checked at parse time.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.Daily && c.DailySalt == "" {
		return fmt.Errorf("%w: daily mode needs a salt", ErrInvalidConfig)
	}
	return nil
}

// Level returns the parsed log level. Call after Validate.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
