// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sidepanel/internal/commands"
	"github.com/jeranaias/sidepanel/internal/config"
	"github.com/jeranaias/sidepanel/internal/history"
	"github.com/jeranaias/sidepanel/internal/terminal"
	"github.com/jeranaias/sidepanel/internal/workspace"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options are the collaborators the panel is wired to. Engine, Registry
// and Bridge are required; Store may be nil to disable history.
type Options struct {
	Engine   *workspace.Engine
	Registry *commands.Registry
	Store    *history.Store
	Bridge   *terminal.Bridge
	Config   *config.Config
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the side panel.
type Model struct {
	engine   *workspace.Engine
	registry *commands.Registry
	store    *history.Store
	bridge   *terminal.Bridge
	cfg      *config.Config

	keys     KeyMap
	input    textarea.Model
	viewport viewport.Model

	messages      []history.Message
	popup         popupState
	target        string // tmux pane the panel sends to
	status        string
	statusIsError bool

	// generation stamps suggestion queries so late replies for an
	// earlier keystroke are dropped.
	generation int

	width  int
	height int
	ready  bool
}

// New creates the panel model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	ta := textarea.New()
	ta.Placeholder = "Message (/ for commands, @ for files)"
	ta.Prompt = "> "
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	return Model{
		engine:   opts.Engine,
		registry: opts.Registry,
		store:    opts.Store,
		bridge:   opts.Bridge,
		cfg:      cfg,
		keys:     DefaultKeyMap(),
		input:    ta,
		target:   cfg.Terminal.Target,
		status:   "ready",
	}
}

// Init loads recent history and the pane list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		loadHistoryCmd(m.store, m.cfg.History.Limit),
		listProcessesCmd(m.bridge),
	)
}

// setStatus replaces the status line.
func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.statusIsError = isError
}
