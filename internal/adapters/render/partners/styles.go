package partners

import "github.com/charmbracelet/lipgloss"

type styles struct {
	id      lipgloss.Style
	name    lipgloss.Style
	email   lipgloss.Style
	noEmail lipgloss.Style
	empty   lipgloss.Style
	summary lipgloss.Style
}

func newStyles() styles {
	return styles{
		id:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		email:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		noEmail: lipgloss.NewStyle().Faint(true),
		empty:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		summary: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}
