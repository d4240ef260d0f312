// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/sidepanel/internal/commands"
	"github.com/jeranaias/sidepanel/internal/history"
	"github.com/jeranaias/sidepanel/internal/workspace"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the panel.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("sidepanel"))
	b.WriteString("  ")
	b.WriteString(helpStyle.Render(m.targetLine()))
	b.WriteString("\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if popup := m.renderPopup(); popup != "" {
		b.WriteString(popup)
		b.WriteString("\n")
	}

	b.WriteString(inputBoxStyle.Render(m.input.View()))
	b.WriteString("\n")

	if m.statusIsError {
		b.WriteString(errorStyle.Render(m.status))
	} else {
		b.WriteString(statusStyle.Render(m.status))
	}

	return b.String()
}

// targetLine describes where sends go.
func (m Model) targetLine() string {
	if m.target == "" {
		return "no target"
	}
	return "-> " + m.target
}

// refreshViewport re-renders the message list and scrolls to the bottom.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	var lines []string
	for _, msg := range m.messages {
		lines = append(lines, renderMessage(msg, m.viewport.Width))
	}
	if len(lines) == 0 {
		lines = []string{helpStyle.Render("no messages yet")}
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.GotoBottom()
}

// renderMessage formats one history entry.
func renderMessage(msg history.Message, width int) string {
	header := roleStyle.Render(msg.Role)
	if msg.Target != "" {
		header += " " + timestampStyle.Render(msg.Target)
	}
	header += " " + timestampStyle.Render(msg.CreatedAt.Format("15:04"))

	body := messageStyle.Render(msg.Text)
	if width > 0 {
		body = messageStyle.Width(width).Render(msg.Text)
	}
	return header + "\n" + body
}

// =============================================================================
// POPUP
// =============================================================================

// renderPopup renders the active suggestion popup, or "".
func (m Model) renderPopup() string {
	if m.popup.mode == popupNone || m.popup.length() == 0 {
		return ""
	}

	width := m.width - popupStyle.GetHorizontalFrameSize()
	if width > 60 {
		width = 60
	}

	start, end := popupWindow(m.popup.selected, m.popup.length(), maxPopupRows)

	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, m.renderPopupRow(i, width))
	}
	return popupStyle.Width(width).Render(strings.Join(rows, "\n"))
}

// popupWindow returns the visible slice of a scrolling list, keeping the
// selection inside the window.
func popupWindow(selected, length, visible int) (start, end int) {
	if length <= visible {
		return 0, length
	}
	start = selected - visible/2
	if start < 0 {
		start = 0
	}
	end = start + visible
	if end > length {
		end = length
		start = end - visible
	}
	return start, end
}

// renderPopupRow renders one suggestion row.
func (m Model) renderPopupRow(i, width int) string {
	selected := i == m.popup.selected

	indicator := "  "
	if selected {
		indicator = "> "
	}

	var label, desc string
	var folder bool
	switch m.popup.mode {
	case popupCommand:
		cmd := m.popup.commands[i]
		label = cmd.Name
		desc = cmd.Description
	case popupFile:
		entry := m.popup.files[i]
		label = entry.RelativePath
		folder = entry.Kind == workspace.KindFolder
		if folder {
			label += "/"
		}
		if m.cfg.UI.Icons {
			desc = entry.Icon
		}
	case popupTerminal:
		proc := m.popup.procs[i]
		label = proc.Label()
	}

	labelWidth := width - 4
	if desc != "" {
		labelWidth = width/2 - 2
	}
	label = truncate(label, labelWidth)

	style := popupItemStyle
	if folder {
		style = popupFolderStyle
	}
	if selected {
		style = popupSelectedStyle
	}

	row := indicator + style.Render(padRight(label, labelWidth))
	if desc != "" {
		row += " " + popupDescStyle.Render(truncate(desc, width-labelWidth-3))
	}
	return row
}

// truncate shortens s to the given display width.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// padRight pads s to the given display width.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// =============================================================================
// HELP
// =============================================================================

// helpLine summarizes the available commands for the status line.
func helpLine(cmds []*commands.Command) string {
	var names []string
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	return strings.Join(names, " ") + "  (@ mentions files)"
}
