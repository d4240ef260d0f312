// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the side panel.
//
// Configuration is TOML, loaded from ~/.sidepanel/config.toml, with
// environment variable overrides (SIDEPANEL_*) and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete side panel configuration.
type Config struct {
	Workspace WorkspaceConfig `toml:"workspace"`
	History   HistoryConfig   `toml:"history"`
	Terminal  TerminalConfig  `toml:"terminal"`
	UI        UIConfig        `toml:"ui"`
}

// WorkspaceConfig controls the file index and search engine.
type WorkspaceConfig struct {
	// Root is the workspace root. Empty means "use the working directory".
	Root string `toml:"root"`

	// TTLSeconds is snapshot time-to-live in seconds.
	TTLSeconds int `toml:"ttl_seconds"`

	// MaxFiles caps how many files a snapshot may hold.
	MaxFiles int `toml:"max_files"`

	// MaxResults caps how many entries one query returns.
	MaxResults int `toml:"max_results"`

	// Exclude lists glob patterns for noise directories and files.
	Exclude []string `toml:"exclude"`

	// Watch enables filesystem change notifications.
	Watch bool `toml:"watch"`
}

// HistoryConfig controls message history persistence.
type HistoryConfig struct {
	// Path is the SQLite database location.
	// Default: ~/.sidepanel/history.db
	Path string `toml:"path"`

	// Limit is how many recent messages the panel shows.
	Limit int `toml:"limit"`
}

// TerminalConfig controls the terminal bridge.
type TerminalConfig struct {
	// Multiplexer names the terminal multiplexer. Only "tmux" is
	// supported.
	Multiplexer string `toml:"multiplexer"`

	// Target optionally pins a pane target; empty means pick at runtime.
	Target string `toml:"target"`
}

// UIConfig contains panel display settings.
type UIConfig struct {
	// Icons toggles file type icons in suggestion rows.
	Icons bool `toml:"icons"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	wd, _ := os.Getwd()
	return &Config{
		Workspace: WorkspaceConfig{
			Root:       wd,
			TTLSeconds: 30,
			MaxFiles:   10000,
			MaxResults: 50,
			Exclude: []string{
				".git", ".svn", ".hg",
				"node_modules", "__pycache__", ".venv", "venv",
				"vendor", "target", "dist", "build", "out",
				".idea", ".vscode", ".vs",
				"*.min.js", "*.min.css", "*.map",
			},
			Watch: true,
		},
		History: HistoryConfig{
			Path:  filepath.Join(baseDir(), "history.db"),
			Limit: 50,
		},
		Terminal: TerminalConfig{
			Multiplexer: "tmux",
		},
		UI: UIConfig{
			Icons: true,
		},
	}
}

// baseDir returns the sidepanel configuration directory.
func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sidepanel"
	}
	return filepath.Join(home, ".sidepanel")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(baseDir(), "config.toml")
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from the default location, falling back to
// defaults when no file exists, then applies environment overrides and
// validates.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides select settings from SIDEPANEL_* variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("SIDEPANEL_WORKSPACE_ROOT"); v != "" {
		c.Workspace.Root = v
	}
	if v := os.Getenv("SIDEPANEL_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workspace.TTLSeconds = n
		}
	}
	if v := os.Getenv("SIDEPANEL_MAX_FILES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workspace.MaxFiles = n
		}
	}
	if v := os.Getenv("SIDEPANEL_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
	if v := os.Getenv("SIDEPANEL_TMUX_TARGET"); v != "" {
		c.Terminal.Target = v
	}
	if v := os.Getenv("SIDEPANEL_NO_WATCH"); v != "" {
		c.Workspace.Watch = false
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

var (
	ErrBadTTL        = errors.New("workspace.ttl_seconds must be positive")
	ErrBadMaxFiles   = errors.New("workspace.max_files must be positive")
	ErrBadMaxResults = errors.New("workspace.max_results must be positive")
	ErrBadMux        = errors.New("terminal.multiplexer must be \"tmux\"")
)

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Workspace.TTLSeconds <= 0 {
		return ErrBadTTL
	}
	if c.Workspace.MaxFiles <= 0 {
		return ErrBadMaxFiles
	}
	if c.Workspace.MaxResults <= 0 {
		return ErrBadMaxResults
	}
	if c.Terminal.Multiplexer != "tmux" {
		return ErrBadMux
	}
	if c.History.Limit <= 0 {
		c.History.Limit = 50
	}
	return nil
}

// TTL returns the snapshot time-to-live as a duration.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.Workspace.TTLSeconds) * time.Second
}
