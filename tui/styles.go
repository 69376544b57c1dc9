package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#1DB954")
	textColor    = lipgloss.Color("#FFFFFF")
	mutedColor   = lipgloss.Color("#B3B3B3")
	accentColor  = lipgloss.Color("#1ED760")
	errorColor   = lipgloss.Color("#E22134")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	// For the item under the cursor
	cursorStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(lipgloss.Color("#2A2A2A")).
			Bold(true)

	// For selected items not under the cursor
	selectedItemStyle = lipgloss.NewStyle().Foreground(accentColor)

	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().Foreground(errorColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(lipgloss.Color("#121212"))
)
