package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#4f46e5", Dark: "#a5b4fc"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	colorError  = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
	colorOK     = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"}

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	okStyle       = lipgloss.NewStyle().Foreground(colorOK)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1)
	activeButton  = buttonStyle.Reverse(true)
	footerStyle   = lipgloss.NewStyle().Faint(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(colorAccent)
)

func panel(focused bool) lipgloss.Style {
	if focused {
		return focusedPanelStyle
	}
	return panelStyle
}
