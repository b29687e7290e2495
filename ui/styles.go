package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorRed    = lipgloss.Color("#FF5555")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorGreen  = lipgloss.Color("#50FA7B")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorWhite  = lipgloss.Color("#F8F8F2")
	colorGray   = lipgloss.Color("#6272A4")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	labelStyle = lipgloss.NewStyle().Foreground(colorGray)
	valueStyle = lipgloss.NewStyle().Foreground(colorWhite)
	warnStyle  = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	critStyle  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	dimStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

// statusStyle colors a quality tier: green for excellent/good, yellow for
// fair, red for poor.
func statusStyle(total int) lipgloss.Style {
	switch {
	case total >= 60:
		return okStyle
	case total >= 40:
		return warnStyle
	default:
		return critStyle
	}
}
