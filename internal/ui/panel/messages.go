// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/sidepanel/internal/history"
	"github.com/jeranaias/sidepanel/internal/terminal"
	"github.com/jeranaias/sidepanel/internal/workspace"
)

// =============================================================================
// MESSAGES
// =============================================================================

// historyLoadedMsg carries recent messages read from the store.
type historyLoadedMsg struct {
	messages []history.Message
	err      error
}

// historyClearedMsg reports the outcome of /clear.
type historyClearedMsg struct {
	err error
}

// sentMsg reports the outcome of a send to the terminal.
type sentMsg struct {
	message history.Message
	err     error
}

// processListMsg carries the visible terminal panes.
type processListMsg struct {
	procs []terminal.Process
	err   error
}

// suggestionsMsg carries file suggestions for the mention popup. The
// generation ties results back to the keystroke that requested them so
// stale replies are dropped.
type suggestionsMsg struct {
	generation int
	at         int
	files      []workspace.FileEntry
}

// =============================================================================
// COMMANDS
// =============================================================================

// opTimeout bounds one engine or bridge call, including any snapshot
// rebuild a query triggers.
const opTimeout = 10 * time.Second

// loadHistoryCmd reads the most recent messages.
func loadHistoryCmd(store *history.Store, limit int) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return historyLoadedMsg{}
		}
		msgs, err := store.Recent(limit)
		return historyLoadedMsg{messages: msgs, err: err}
	}
}

// clearHistoryCmd empties the store.
func clearHistoryCmd(store *history.Store) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return historyClearedMsg{}
		}
		return historyClearedMsg{err: store.Clear()}
	}
}

// sendCmd delivers text to the target pane and records it in history.
func sendCmd(bridge *terminal.Bridge, store *history.Store, target, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		if err := bridge.Send(ctx, target, text); err != nil {
			return sentMsg{err: err}
		}

		m := history.Message{Role: history.RoleUser, Text: text, Target: target}
		if store != nil {
			stored, err := store.Append(m)
			if err != nil {
				return sentMsg{message: m, err: err}
			}
			m = stored
		}
		return sentMsg{message: m}
	}
}

// listProcessesCmd asks the bridge for visible panes.
func listProcessesCmd(bridge *terminal.Bridge) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		procs, err := bridge.List(ctx)
		return processListMsg{procs: procs, err: err}
	}
}

// searchCmd queries the workspace engine for mention suggestions.
func searchCmd(engine *workspace.Engine, generation, at int, query, scope string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		files := engine.Search(ctx, query, scope)
		return suggestionsMsg{generation: generation, at: at, files: files}
	}
}
