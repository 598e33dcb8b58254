// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config is the root configuration structure.
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	Autosave AutosaveConfig `toml:"autosave"`
	Store    StoreConfig    `toml:"store"`
	Log      LogConfig      `toml:"log"`
}

// EditorConfig holds editor component settings.
type EditorConfig struct {
	ShowLineNumbers bool `toml:"show_line_numbers"`
	// HistoryLimit bounds undo history; 0 selects the default, negative is unbounded.
	HistoryLimit int `toml:"history_limit"`
	TabWidth     int `toml:"tab_width"`
}

// AutosaveConfig holds debounce settings for background saves.
type AutosaveConfig struct {
	Enabled bool `toml:"enabled"`
	DelayMS int  `toml:"delay_ms"`
}

// StoreConfig holds document database settings.
type StoreConfig struct {
	Path string `toml:"path"`
}

// LogConfig holds log output settings. The TUI owns the terminal, so logs
// always go to a file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			ShowLineNumbers: true,
			HistoryLimit:    1000,
			TabWidth:        4,
		},
		Autosave: AutosaveConfig{
			Enabled: true,
			DelayMS: 2000,
		},
		Store: StoreConfig{Path: "~/.config/plume/plume.db"},
		Log: LogConfig{
			Level: "info",
			File:  "~/.config/plume/plume.log",
		},
	}
}

// Load reads configuration from a TOML file on top of Default and applies
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Autosave.DelayMS < 0 {
		errs = append(errs, fmt.Errorf("autosave.delay_ms=%d must not be negative", c.Autosave.DelayMS))
	}
	if c.Autosave.Enabled && c.Autosave.DelayMS == 0 {
		errs = append(errs, errors.New("autosave.delay_ms is required when autosave is enabled"))
	}
	if c.Editor.TabWidth < 0 || c.Editor.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("editor.tab_width=%d must be between 0 and 16", c.Editor.TabWidth))
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		errs = append(errs, errors.New("store.path is required"))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"PLUME_DB", func(v string) {
			if v != "" {
				cfg.Store.Path = v
			}
		}},
		{"PLUME_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = strings.ToLower(v)
			}
		}},
		{"PLUME_LOG_FILE", func(v string) {
			if v != "" {
				cfg.Log.File = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// DataDir returns the path to the plume data directory (~/.config/plume).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "plume"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := DataDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}
