// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package panel implements the side panel TUI.
//
// The panel is a single Bubble Tea model: a message viewport over a text
// input, with popup suggestions layered on top. Typing "/" at the start
// of the input opens the slash-command popup; typing "@" anywhere opens
// the file popup backed by the workspace engine. Enter sends the
// composed text to the selected terminal pane and records it in history.
//
// # Key Types
//
//   - Model: the Bubble Tea model, created with New.
//   - Options: the collaborators the panel is wired to.
//
// # Usage
//
//	m := panel.New(panel.Options{
//		Engine:   engine,
//		Registry: registry,
//		Store:    store,
//		Bridge:   bridge,
//		Config:   cfg,
//	})
//	p := tea.NewProgram(m, tea.WithAltScreen())
//	_, err := p.Run()
package panel
