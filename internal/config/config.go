// Package config loads liftmate's YAML configuration file and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/liftmate/liftmate/internal/units"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

type DatabaseConfig struct {
	// Path of the SQLite file; empty means the XDG data directory.
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File enables rotated file logging; empty logs to stderr.
	File string `yaml:"file"`
	JSON bool   `yaml:"json"`
}

type DefaultsConfig struct {
	// Unit is used until settings are stored.
	Unit units.Unit `yaml:"unit"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Log:      LogConfig{Level: "warn"},
		Defaults: DefaultsConfig{Unit: units.Kilograms},
	}
}

// DefaultPath resolves the config file path in priority order:
// 1. LIFTMATE_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/liftmate/config.yaml
// 3. ~/.config/liftmate/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("LIFTMATE_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "liftmate", "config.yaml"), nil
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error. Env vars:
//
//	LIFTMATE_DB, LIFTMATE_LOG_LEVEL, LIFTMATE_LOG_FILE,
//	LIFTMATE_LOG_JSON, LIFTMATE_UNIT
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTMATE_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("LIFTMATE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LIFTMATE_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("LIFTMATE_LOG_JSON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.JSON = b
		}
	}
	if v := os.Getenv("LIFTMATE_UNIT"); v != "" {
		cfg.Defaults.Unit = units.Unit(v)
	}
}

var logLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true,
}

func (c *Config) validate() error {
	var err error
	if !logLevels[c.Log.Level] {
		err = multierr.Append(err, fmt.Errorf("log.level %q is not one of trace, debug, info, warn, error, fatal", c.Log.Level))
	}
	if !c.Defaults.Unit.Valid() {
		err = multierr.Append(err, fmt.Errorf("defaults.unit: %w: %q", units.ErrUnknownUnit, c.Defaults.Unit))
	}
	return err
}
