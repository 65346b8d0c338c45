package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Title    lipgloss.Style
	Tab      lipgloss.Style
	TabFocus lipgloss.Style
	Selected lipgloss.Style
	Dim      lipgloss.Style
	Hint     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Overdue  lipgloss.Style
	Streak   lipgloss.Style
	Border   lipgloss.Style
}

var DefaultTheme = Theme{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Tab:      lipgloss.NewStyle().Faint(true).Padding(0, 1),
	TabFocus: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89B4FA")).Padding(0, 1),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F2CDCD")),
	Dim:      lipgloss.NewStyle().Faint(true),
	Hint:     lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("#CBA6F7")),
	Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
	Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
	Overdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	Streak:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")),
	Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
}
