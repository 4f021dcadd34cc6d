package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/containerdesk/internal/domain"
)

type styles struct {
	tab       lipgloss.Style
	activeTab lipgloss.Style
	selected  lipgloss.Style
	help      lipgloss.Style
	spinner   lipgloss.Style
	toasts    map[domain.NoticeKind]lipgloss.Style
}

func newStyles() styles {
	return styles{
		tab:       lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245")),
		activeTab: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("25")),
		selected:  lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("159")),
		help:      lipgloss.NewStyle().MarginTop(1).Foreground(lipgloss.Color("241")),
		spinner:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		toasts: map[domain.NoticeKind]lipgloss.Style{
			domain.NoticeSuccess: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
			domain.NoticeError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
			domain.NoticeInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		},
	}
}

func (s styles) toast(kind domain.NoticeKind) lipgloss.Style {
	if style, ok := s.toasts[kind]; ok {
		return style
	}
	return s.toasts[domain.NoticeInfo]
}
