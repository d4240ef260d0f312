// sidepanel - workspace file mentions and slash commands for a terminal
// AI assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sidepanel/internal/commands"
	"github.com/jeranaias/sidepanel/internal/config"
	"github.com/jeranaias/sidepanel/internal/history"
	"github.com/jeranaias/sidepanel/internal/terminal"
	"github.com/jeranaias/sidepanel/internal/ui/panel"
	"github.com/jeranaias/sidepanel/internal/workspace"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		rootFlag    = flag.String("root", "", "workspace root (default: working directory)")
		configFlag  = flag.String("config", "", "config file path")
		targetFlag  = flag.String("target", "", "tmux pane target")
		versionFlag = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("sidepanel %s (%s, %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if err := run(*rootFlag, *configFlag, *targetFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the collaborators together and starts the TUI.
func run(root, configPath, target string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if root != "" {
		cfg.Workspace.Root = root
	}
	if target != "" {
		cfg.Terminal.Target = target
	}

	logger, logClose, err := openLogger()
	if err != nil {
		return err
	}
	defer logClose()

	logger.Info("starting",
		"version", Version,
		"root", cfg.Workspace.Root,
		"watch", cfg.Workspace.Watch)

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		// History is optional; the panel works without it.
		logger.Warn("history disabled", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	engineConfig := workspace.DefaultConfig(cfg.Workspace.Root)
	engineConfig.TTL = cfg.TTL()
	engineConfig.MaxFiles = cfg.Workspace.MaxFiles
	engineConfig.MaxResults = cfg.Workspace.MaxResults
	engineConfig.ExcludePatterns = cfg.Workspace.Exclude
	engineConfig.Watch = cfg.Workspace.Watch

	engine, err := workspace.NewEngine(engineConfig)
	if err != nil {
		return fmt.Errorf("workspace engine: %w", err)
	}
	defer engine.Close()

	m := panel.New(panel.Options{
		Engine:   engine,
		Registry: commands.NewRegistry(),
		Store:    store,
		Bridge:   terminal.New(),
		Config:   cfg,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", "error", err)
		return err
	}

	logger.Info("stopped")
	return nil
}

// loadConfig loads the TOML config, falling back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// openLogger sets up slog to a file. The TUI owns the terminal, so
// diagnostics never go to stderr while it runs.
func openLogger() (*slog.Logger, func(), error) {
	dir := filepath.Dir(config.DefaultPath())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("log directory: %w", err)
	}

	path := filepath.Join(dir, "sidepanel.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, func() { f.Close() }, nil
}
