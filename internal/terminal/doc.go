// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal bridges the side panel to the assistant's terminal
// process. It can list the visible tmux panes and send composed text to
// one of them. tmux absence degrades to an empty pane list; it is never a
// fatal condition for the panel.
package terminal
