package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleTask    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleSystem  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleWarn    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleDivider = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
