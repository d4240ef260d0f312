// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package panel

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// COLORS
// =============================================================================

// All colors use AdaptiveColor for automatic light/dark detection.
var (
	// Cyan - commands, selections, accents
	colorCyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

	// Purple - mentions, folder rows
	colorPurple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

	// Rose - errors
	colorRose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

	// Surface - background behind selections
	colorSurface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

	// Overlay - borders, separators
	colorOverlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

	colorText      = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
	colorMuted     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
)

// =============================================================================
// STYLES
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRose)

	roleStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(colorText)

	timestampStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	inputBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorOverlay).
			Padding(0, 1)

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(0, 1)

	popupItemStyle = lipgloss.NewStyle().
			Foreground(colorText)

	popupSelectedStyle = lipgloss.NewStyle().
				Background(colorCyan).
				Foreground(colorSurface).
				Bold(true)

	popupDescStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	popupFolderStyle = lipgloss.NewStyle().
				Foreground(colorPurple)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)
)
