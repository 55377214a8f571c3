// Package config loads the user's YAML settings for the command line and terminal front ends.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"crosswarped.com/wrd/internal/logging"
	"crosswarped.com/wrd/pkg/dictionary"
)

// ColorMode controls colored output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the contents of the settings file. Fields left out of the file keep their defaults.
type Config struct {
	Dictionary string    `yaml:"dictionary"`
	Columns    int       `yaml:"columns"`
	Color      ColorMode `yaml:"color"`
	LogLevel   string    `yaml:"log_level"`
	LogJSON    bool      `yaml:"log_json"`
	LogFile    string    `yaml:"log_file,omitempty"`
}

func Default() Config {
	return Config{
		Dictionary: string(dictionary.DefaultName),
		Columns:    14,
		Color:      ColorAuto,
		LogLevel:   "warn",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/wrd/config.yaml, falling back to ~/.config/wrd/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's config directory: %w", err)
	}
	return filepath.Join(dir, "wrd", "config.yaml"), nil
}

// Load reads the settings at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c Config) Validate() error {
	var errs []error
	if _, err := dictionary.ParseName(c.Dictionary); err != nil {
		errs = append(errs, err)
	}
	if c.Columns <= 0 {
		errs = append(errs, fmt.Errorf("columns must be positive, got %d", c.Columns))
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("color must be auto, always or never, got %q", c.Color))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DictionaryName returns the validated dictionary name.
func (c Config) DictionaryName() dictionary.Name {
	name, err := dictionary.ParseName(c.Dictionary)
	if err != nil {
		return dictionary.DefaultName
	}
	return name
}

// Logging returns the logger settings for the configured level and format.
func (c Config) Logging() logging.Config {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		level = logging.LevelWarn
	}
	return logging.Config{
		Level: level,
		JSON:  c.LogJSON,
		File:  c.LogFile,
	}
}
