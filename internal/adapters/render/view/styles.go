package view

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	command   lipgloss.Style
	warning   lipgloss.Style
	success   lipgloss.Style
	section   lipgloss.Style
	empty     lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	stamp     lipgloss.Style
	body      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		header:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		command:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		success:   lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		section:   lipgloss.NewStyle().MarginTop(1),
		empty:     lipgloss.NewStyle().Faint(true),
		user:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("219")),
		stamp:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		body:      lipgloss.NewStyle().PaddingLeft(2),
	}
}
