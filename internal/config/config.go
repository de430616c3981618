// Package config loads ringlru settings from a JSONC file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
	"go.uber.org/zap/zapcore"
)

var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrConfigRead      = errors.New("cannot read config file")
	ErrConfigInvalid   = errors.New("invalid config file")
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
	ErrInvalidLogLevel = errors.New("unknown log level")
)

// Config holds all configuration options.
type Config struct {
	Capacity    int    `json:"capacity"`
	LogLevel    string `json:"log_level,omitempty"`    //nolint:tagliatelle // snake_case for config file
	LogFile     string `json:"log_file,omitempty"`     //nolint:tagliatelle // snake_case for config file
	HistoryFile string `json:"history_file,omitempty"` //nolint:tagliatelle // snake_case for config file
}

// DefaultCapacity is used when neither the config file nor flags set one.
const DefaultCapacity = 128

// Default returns the default configuration.
func Default() Config {
	return Config{
		Capacity:    DefaultCapacity,
		LogLevel:    "info",
		LogFile:     "ringlru.log",
		HistoryFile: defaultHistoryFile(),
	}
}

// defaultHistoryFile returns ~/.ringlru_history, or "" when there is no home directory.
func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ringlru_history")
}

// Load reads the config file at path on top of the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("%w %s: %w", ErrConfigRead, path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes JSONC data on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	// a trailing line comment needs its newline
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data[:len(data):len(data)], '\n')
	}

	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w: invalid JSONC: %w", ErrConfigInvalid, err)
	}

	cfg := Default()
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that cfg can build a cache and a logger.
func (c Config) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, c.Capacity)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the zap level named by LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return lvl, nil
}
