package cmd

import "github.com/charmbracelet/lipgloss"

// Styles used across the CLI commands
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")). // Gold/Amber
			Bold(true).
			Padding(1, 0)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")) // Light Gray

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6347")). // Tomato red
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			PaddingRight(2)

	cellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	positiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#32CD32")) // Lime green

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")) // Sky blue
)
