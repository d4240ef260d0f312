// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case historyLoadedMsg:
		if msg.err != nil {
			m.setStatus("history: "+msg.err.Error(), true)
			return m, nil
		}
		m.messages = msg.messages
		m.refreshViewport()
		return m, nil

	case historyClearedMsg:
		if msg.err != nil {
			m.setStatus("clear: "+msg.err.Error(), true)
			return m, nil
		}
		m.messages = nil
		m.refreshViewport()
		m.setStatus("history cleared", false)
		return m, nil

	case sentMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.messages = append(m.messages, msg.message)
		m.refreshViewport()
		m.setStatus("sent to "+msg.message.Target, false)
		return m, nil

	case processListMsg:
		return m.handleProcessList(msg), nil

	case suggestionsMsg:
		// Only the latest keystroke's results may drive the popup.
		if msg.generation != m.generation {
			return m, nil
		}
		if len(msg.files) == 0 {
			if m.popup.mode == popupFile {
				m.popup.clear()
			}
			return m, nil
		}
		m.popup = popupState{mode: popupFile, files: msg.files, at: msg.at}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize lays the panel out for a new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	inputHeight := m.input.Height() + inputBoxStyle.GetVerticalFrameSize()
	viewportHeight := m.height - inputHeight - 3 // title + status + spacing
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = viewportHeight
	}
	m.input.SetWidth(m.width - inputBoxStyle.GetHorizontalFrameSize())
	m.refreshViewport()
	return m
}

// handleKey routes one keystroke.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		if m.popup.mode != popupNone {
			m.popup.clear()
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Tab):
		if m.popup.mode != popupNone {
			m.popup.next()
			return m, nil
		}

	case key.Matches(msg, m.keys.Up):
		if m.popup.mode != popupNone {
			m.popup.prev()
			return m, nil
		}

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Newline):
		m.input.InsertString("\n")
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.popup.mode != popupNone {
			return m.applySelection()
		}
		return m.submit()
	}

	// Everything else edits the input, then recomputes suggestions.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	refreshCmd := m.refreshSuggestions()
	return m, tea.Batch(cmd, refreshCmd)
}

// handleProcessList stores the pane list. During /terminal it opens the
// picker; at startup it auto-selects a pane when none is configured.
func (m Model) handleProcessList(msg processListMsg) Model {
	if msg.err != nil {
		m.setStatus("terminal: "+msg.err.Error(), true)
		return m
	}

	if m.popup.mode == popupTerminal {
		if len(msg.procs) == 0 {
			m.popup.clear()
			m.setStatus("no terminal panes visible", true)
			return m
		}
		m.popup.procs = msg.procs
		m.popup.selected = 0
		return m
	}

	// Startup path: prefer the first pane that is not the one the panel
	// itself runs in.
	if m.target == "" {
		for _, p := range msg.procs {
			if !p.Active {
				m.target = p.ID
				m.setStatus("target "+p.Label(), false)
				break
			}
		}
	}
	return m
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

// refreshSuggestions recomputes the popup for the current input. Command
// filtering is synchronous; file search goes through a tea.Cmd because
// it may trigger a snapshot rebuild.
func (m *Model) refreshSuggestions() tea.Cmd {
	if m.popup.mode == popupTerminal {
		return nil
	}

	value := m.input.Value()

	if q, ok := commandQuery(value); ok {
		matches := m.registry.Filter(q)
		if len(matches) == 0 {
			m.popup.clear()
			return nil
		}
		m.popup = popupState{mode: popupCommand, commands: matches}
		return nil
	}

	if token, at, ok := mentionToken(value, m.cursorOffset()); ok {
		scope, query := splitMention(token)
		m.generation++
		return searchCmd(m.engine, m.generation, at, query, scope)
	}

	m.generation++
	m.popup.clear()
	return nil
}

// cursorOffset translates the textarea's row and column into a byte
// offset in Value, so editing an @-token mid-input resolves the token
// under the cursor rather than whatever ends the text.
func (m *Model) cursorOffset() int {
	value := m.input.Value()
	row := m.input.Line()
	info := m.input.LineInfo()
	col := info.StartColumn + info.CharOffset

	lines := strings.Split(value, "\n")
	if row >= len(lines) {
		return len(value)
	}

	offset := 0
	for _, line := range lines[:row] {
		offset += len(line) + 1
	}
	runes := []rune(lines[row])
	if col > len(runes) {
		col = len(runes)
	}
	return offset + len(string(runes[:col]))
}

// applySelection inserts the highlighted popup entry into the input.
func (m Model) applySelection() (tea.Model, tea.Cmd) {
	switch m.popup.mode {
	case popupCommand:
		if m.popup.selected < len(m.popup.commands) {
			m.input.SetValue(insertCommand(m.input.Value(), m.popup.commands[m.popup.selected]))
			m.input.CursorEnd()
		}
		m.popup.clear()
		return m, textarea.Blink

	case popupFile:
		if m.popup.selected < len(m.popup.files) {
			entry := m.popup.files[m.popup.selected]
			m.input.SetValue(insertMention(m.input.Value(), m.popup.at, entry))
			m.input.CursorEnd()
			m.popup.clear()
			// A folder selection reopens the popup scoped to it.
			return m, m.refreshSuggestions()
		}
		m.popup.clear()
		return m, textarea.Blink

	case popupTerminal:
		if m.popup.selected < len(m.popup.procs) {
			proc := m.popup.procs[m.popup.selected]
			m.target = proc.ID
			m.setStatus("target "+proc.Label(), false)
		}
		m.popup.clear()
		return m, nil
	}
	return m, nil
}

// =============================================================================
// SUBMIT
// =============================================================================

// submit sends the composed input or runs a slash command.
func (m Model) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	if strings.HasPrefix(text, "/") {
		return m.runCommand(text)
	}

	if m.target == "" {
		m.setStatus("no terminal target; use /terminal to pick one", true)
		return m, nil
	}

	m.input.Reset()
	m.setStatus("sending...", false)
	return m, sendCmd(m.bridge, m.store, m.target, text)
}

// runCommand dispatches one slash command.
func (m Model) runCommand(text string) (tea.Model, tea.Cmd) {
	name, _, _ := strings.Cut(text, " ")
	cmd := m.registry.Get(name)
	if cmd == nil {
		m.setStatus("unknown command: "+name, true)
		return m, nil
	}

	m.input.Reset()
	m.popup.clear()

	switch cmd.Name {
	case "/help":
		m.setStatus(helpLine(m.registry.All()), false)
		return m, nil

	case "/clear":
		return m, clearHistoryCmd(m.store)

	case "/history":
		return m, loadHistoryCmd(m.store, m.cfg.History.Limit)

	case "/refresh":
		m.engine.Invalidate()
		m.setStatus("workspace index refreshed", false)
		return m, nil

	case "/terminal":
		m.popup = popupState{mode: popupTerminal}
		m.setStatus("pick a terminal pane", false)
		return m, listProcessesCmd(m.bridge)

	case "/quit":
		return m, tea.Quit
	}

	m.setStatus(cmd.Name+" is not implemented", true)
	return m, nil
}
