package controller

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen    = lipgloss.Color("82")
	colorYellow   = lipgloss.Color("228")
	colorRed      = lipgloss.Color("196")
	colorCyan     = lipgloss.Color("45")
	colorDarkGray = lipgloss.Color("240")

	infoStyle    = lipgloss.NewStyle().Foreground(colorCyan)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorYellow)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorDarkGray)
)

var statusPrefix = map[StatusLevel]string{
	StatusInfo:    "[*]",
	StatusSuccess: "[+]",
	StatusWarning: "[!]",
	StatusError:   "[-]",
}

func styleFor(level StatusLevel) lipgloss.Style {
	switch level {
	case StatusSuccess:
		return successStyle
	case StatusWarning:
		return warningStyle
	case StatusError:
		return errorStyle
	default:
		return infoStyle
	}
}
