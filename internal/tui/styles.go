// Package tui provides the live status view for tempo.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles for the watch view.
var (
	colorActive = lipgloss.Color("#10B981")
	colorIdle   = lipgloss.Color("#6B7280")
	colorAccent = lipgloss.Color("#7C3AED")

	StyleActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorActive)

	StyleInactive = lipgloss.NewStyle().
			Foreground(colorIdle)

	StyleSubtitle = lipgloss.NewStyle().
			Foreground(colorIdle)

	StyleDuration = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	StyleNote = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorIdle)

	StyleStatusBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorIdle).
			Padding(1, 2)

	StyleActiveStatusBox = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorActive).
				Padding(1, 2)

	StyleHelp = lipgloss.NewStyle().
			Foreground(colorIdle).
			MarginTop(1)
)
