package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorBlue     = lipgloss.Color("#89b4fa")
	colorPeach    = lipgloss.Color("#fab387")
	colorSuccess  = lipgloss.Color("#a6e3a1")
	colorError    = lipgloss.Color("#f38ba8")
	colorOverlay1 = lipgloss.Color("#7f849c")
	colorSurface2 = lipgloss.Color("#585b70")

	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	okStyle      = lipgloss.NewStyle().Foreground(colorSuccess)

	barStyle         = lipgloss.NewStyle().Foreground(colorBlue)
	cursorBarStyle   = lipgloss.NewStyle().Foreground(colorPeach)
	focusBarStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	cursorLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPeach)
	hbarFilled       = lipgloss.NewStyle().Foreground(colorBlue)
	hbarEmpty        = lipgloss.NewStyle().Foreground(colorSurface2)

	kpiBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface2).
			Padding(0, 1)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPeach).
			Padding(1, 2)
	kpiLabelStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
	kpiValueStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPeach)
)
