package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#007BFF")).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1976D2")).
			Padding(0, 2)

	rowStyle         = lipgloss.NewStyle().PaddingLeft(1)
	selectedRowStyle = lipgloss.NewStyle().PaddingLeft(1).Background(lipgloss.Color("#E0E0E0")).Foreground(lipgloss.Color("#000000"))
	completedStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("245"))
	deleteHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5C5C"))
	editHintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)
