// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles application configuration: reading and writing the
// YAML configuration file, overlaying environment variables and giving
// typed access to the settings the rest of the application needs.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"cmdeck/internal/logger"
	"cmdeck/internal/shortcut"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultListen is the address the HTTP API binds to when none is configured.
const DefaultListen = "127.0.0.1:8765"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the top-level application configuration
type Config struct {
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level,omitempty" env:"CMDECK_LOG_LEVEL"`

	// LogToFile enables the rotated log file in CLI mode. The TUI always
	// logs to the file since it owns the terminal.
	LogToFile bool `yaml:"log_to_file" env:"CMDECK_LOG_TO_FILE"`

	// Listen is the HTTP API address used by serve and tui --listen
	Listen string `yaml:"listen,omitempty" env:"CMDECK_LISTEN"`

	// SetShortcutKeys is given to new UI commands: bind their chord on controls
	SetShortcutKeys bool `yaml:"set_shortcut_keys" env:"CMDECK_SET_SHORTCUT_KEYS"`

	// SetShortcutText is given to new UI commands: display their chord on controls
	SetShortcutText bool `yaml:"set_shortcut_text" env:"CMDECK_SET_SHORTCUT_TEXT"`

	// Shortcuts overrides the chord of UI commands by command name
	Shortcuts map[string]string `yaml:"shortcuts,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel:        "info",
		LogToFile:       true,
		Listen:          DefaultListen,
		SetShortcutKeys: true,
		SetShortcutText: true,
	}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "cmdeck", "config.yaml"), nil
}

// LoadConfig reads the default config file and applies the environment.
func LoadConfig() (Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return Config{}, err
	}
	return Load(configPath)
}

// Load reads the config file at path, applies the environment and validates
// the result. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads the config file at path without looking at the environment.
// Keys absent from the file keep their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No config file, using defaults.", "path", path)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays the CMDECK_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the log level and every shortcut chord.
func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for name, chord := range c.Shortcuts {
		if _, err := shortcut.Parse(chord); err != nil {
			return fmt.Errorf("%w: shortcut for %s: %w", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

// Level returns the configured log level, info if it cannot be parsed.
func (c Config) Level() slog.Level {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Shortcut returns the configured chord for the named command, or fallback
// when the config does not override it.
func (c Config) Shortcut(name string, fallback shortcut.Keys) shortcut.Keys {
	chord, ok := c.Shortcuts[name]
	if !ok {
		return fallback
	}
	keys, err := shortcut.Parse(chord)
	if err != nil {
		logger.Warn("Ignoring invalid shortcut in config.", "command", name, "shortcut", chord, "error", err)
		return fallback
	}
	return keys
}

// SetShortcut validates chord and stores it, normalized, for the named
// command. A blank chord removes the override.
func (c *Config) SetShortcut(name, chord string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty command name", ErrInvalidConfig)
	}
	if strings.TrimSpace(chord) == "" {
		delete(c.Shortcuts, name)
		return nil
	}
	keys, err := shortcut.Parse(chord)
	if err != nil {
		return err
	}

	shortcuts := make(map[string]string, len(c.Shortcuts)+1)
	maps.Copy(shortcuts, c.Shortcuts)
	shortcuts[name] = keys.String()
	c.Shortcuts = shortcuts
	return nil
}

func EnsureConfigDir(configPath string) error {
	configDir := filepath.Dir(configPath)
	err := os.MkdirAll(configDir, 0750) // rwxr-x---
	if err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	return nil
}

// SaveConfig writes cfg to the default config path.
func SaveConfig(cfg Config) error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return Save(configPath, cfg)
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	err := EnsureConfigDir(path)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// Write with permissions rw-r----- (0640)
	err = os.WriteFile(path, data, 0640)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}
