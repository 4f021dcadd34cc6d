package portal

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	greeting   lipgloss.Style
	card       lipgloss.Style
	cardTitle  lipgloss.Style
	detail     lipgloss.Style
	muted      lipgloss.Style
	empty      lipgloss.Style
	etaActive  lipgloss.Style
	etaIdle    lipgloss.Style
	barBracket lipgloss.Style
	barEmpty   lipgloss.Style
	levels     map[string]lipgloss.Style
	badges     map[string]lipgloss.Style
	chartBar   lipgloss.Style
	template   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		greeting:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		card:       lipgloss.NewStyle().MarginTop(1).Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")),
		cardTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		empty:      lipgloss.NewStyle().Faint(true),
		etaActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		etaIdle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		levels: map[string]lipgloss.Style{
			"success": lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
			"warning": lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			"danger":  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		badges: map[string]lipgloss.Style{
			"open":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
			"closed":  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			"default": lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		},
		chartBar: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		template: lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
	}
}

func (s styles) level(name string) lipgloss.Style {
	if style, ok := s.levels[name]; ok {
		return style
	}
	return s.levels["success"]
}

func (s styles) badge(name string) lipgloss.Style {
	if style, ok := s.badges[name]; ok {
		return style
	}
	return s.badges["default"]
}
