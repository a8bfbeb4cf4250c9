package view

import (
	"github.com/bnema/medconnect/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	name       lipgloss.Style
	detail     lipgloss.Style
	muted      lipgloss.Style
	taken      lipgloss.Style
	pending    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	avatar     lipgloss.Style
	card       lipgloss.Style
	barBracket lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		taken:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		pending:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		avatar:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("33")).Padding(0, 1),
		card:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

func (s styles) badge(badge domain.AdherenceBadge) lipgloss.Style {
	color := "203"
	switch badge {
	case domain.BadgeExcellent:
		color = "42"
	case domain.BadgeGood:
		color = "39"
	case domain.BadgeFair:
		color = "214"
	}

	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
}
