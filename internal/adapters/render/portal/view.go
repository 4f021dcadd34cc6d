package portal

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/containerdesk/internal/domain"
)

const (
	progressBarWidth = 24
	chartBarWidth    = 20
)

type RenderOptions struct {
	Now time.Time
	// Location for request log timestamps. Defaults to time.Local.
	Location *time.Location
}

func (o RenderOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// PageView renders one portal page for the session without running a
// bubbletea program. Interactive callers use it directly.
func PageView(page Page, session domain.Session, opts RenderOptions) string {
	return renderPage(page, session, opts, newStyles())
}

func renderPage(page Page, session domain.Session, opts RenderOptions, s styles) string {
	now := opts.now()
	header := renderHeader(BuildHeader(session, now), s)

	var body string
	switch page {
	case PageContainers:
		body = renderContainers(BuildContainers(session, now), s)
	case PageHistory:
		body = renderHistory(BuildHistory(session), s)
	case PageChat:
		body = renderChat(BuildChat(), s)
	default:
		body = renderHome(BuildHome(session, now), s)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func renderHeader(h Header, s styles) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		s.greeting.Render(h.Greeting),
		s.header.Render(fmt.Sprintf("%s  %s  %s", h.ClientName, h.Clock, h.Date)),
	)
}

func renderHome(view HomeView, s styles) string {
	if !view.HasActive {
		return s.card.Render(s.empty.Render(view.Empty))
	}

	order := s.card.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		s.cardTitle.Render("ההזמנה הפעילה שלך"),
		s.detail.Render(view.ContainerType+" בכתובת:"),
		s.muted.Render(view.Address),
	))

	lines := []string{order}
	if view.ETA != nil {
		valueStyle := s.etaIdle
		if view.ETA.Active {
			valueStyle = s.etaActive
		}
		lines = append(lines, s.card.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			s.muted.Render(view.ETA.Label),
			valueStyle.Render(view.ETA.Value),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderContainers(view ContainersView, s styles) string {
	if len(view.Cards) == 0 {
		return s.card.Render(s.empty.Render(view.Empty))
	}

	cards := make([]string, 0, len(view.Cards))
	for _, card := range view.Cards {
		cards = append(cards, s.card.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, s.cardTitle.Render("מכולה "+card.ContainerID), "  ", s.muted.Render(card.Address)),
			s.detail.Render(fmt.Sprintf("התחלה: %s   סיום: %s", card.StartDate, card.EndDate)),
			lipgloss.JoinHorizontal(lipgloss.Top, renderProgressBar(card.Percent, string(card.Level), progressBarWidth, s), " ", s.level(string(card.Level)).Render(fmt.Sprintf("%3.0f%%", card.Percent))),
			s.detail.Render(fmt.Sprintf("נשארו כ-%d ימים לסיום", card.DaysRemaining)),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderHistory(view HistoryView, s styles) string {
	if len(view.Rows) == 0 {
		return s.card.Render(s.empty.Render(view.Empty))
	}

	rows := []string{s.header.Render(fmt.Sprintf("%-10s %-10s %-8s %s", "תעודה", "תאריך", "פעולה", "כתובת"))}
	for _, row := range view.Rows {
		rows = append(rows, s.detail.Render(fmt.Sprintf("%-10s %-10s %-8s %s", row.DocNumber, row.Date, row.ActionType, row.Address)))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		s.card.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
		s.card.Render(renderMonthChart(view.Months, s)),
	)
}

func renderMonthChart(months []MonthCount, s styles) string {
	peak := 0
	for _, month := range months {
		if month.Count > peak {
			peak = month.Count
		}
	}

	lines := []string{s.cardTitle.Render("כמות הזמנות")}
	for _, month := range months {
		width := 0
		if peak > 0 {
			width = int(math.Round(float64(chartBarWidth) * float64(month.Count) / float64(peak)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.muted.Render(fmt.Sprintf("%-10s", month.Label)),
			s.chartBar.Render(strings.Repeat("█", width)),
			" ",
			s.detail.Render(fmt.Sprintf("%d", month.Count)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderChat(view ChatView, s styles) string {
	lines := []string{s.cardTitle.Render("הודעות מהירות")}
	for i, template := range view.Templates {
		lines = append(lines, s.template.Render(fmt.Sprintf("%2d. %s", i+1, template)))
	}
	return s.card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderStatusPage(view StatusPageView, s styles) string {
	lines := []string{s.greeting.Render(view.Greeting)}

	if order := view.ActiveOrder; order != nil {
		details := []string{
			lipgloss.JoinHorizontal(lipgloss.Top, s.cardTitle.Render("הזמנה פעילה "), s.badge(string(order.Badge)).Render(order.Status)),
			s.detail.Render("כתובת: " + order.Address),
			s.detail.Render("מספר תעודה: " + order.DocNumber),
			s.detail.Render("ימים באתר: " + order.DaysOnSite),
			s.detail.Render("פעולה אחרונה: " + order.LastAction),
		}
		if order.ShowProgress {
			details = append(details,
				lipgloss.JoinHorizontal(lipgloss.Top, renderProgressBar(order.Percent, string(order.Level), progressBarWidth, s), " ", s.level(string(order.Level)).Render(fmt.Sprintf("%3.0f%%", order.Percent))),
				s.muted.Render(order.StartDate+" - "+order.EndDate),
			)
		}
		lines = append(lines, s.card.Render(lipgloss.JoinVertical(lipgloss.Left, details...)))
	} else {
		lines = append(lines, s.card.Render(s.empty.Render(view.NoActive)))
	}

	history := []string{s.cardTitle.Render("היסטוריית הזמנות")}
	if len(view.History) == 0 {
		history = append(history, s.empty.Render(view.Empty))
	}
	for _, row := range view.History {
		history = append(history, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.detail.Render(row.Title),
			"  ",
			s.muted.Render(row.Date+" • "+row.Address),
			"  ",
			s.badge(string(row.Badge)).Render(row.Status),
		))
	}
	lines = append(lines, s.card.Render(lipgloss.JoinVertical(lipgloss.Left, history...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAdminClients(view AdminClientsView, s styles) string {
	lines := []string{
		s.title.Render("לקוחות פעילים"),
		s.header.Render(fmt.Sprintf("clients: %d", len(view.Rows))),
	}
	if len(view.Rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render(view.Empty))...)
	}

	lines = append(lines, s.header.Render(fmt.Sprintf("%-8s %-16s %-20s %s", "מזהה", "שם", "כתובת", "ימים")))
	for _, row := range view.Rows {
		lines = append(lines, s.detail.Render(fmt.Sprintf("%-8s %-16s %-20s %s", row.ClientID, row.ClientName, row.Address, row.DaysOnSite)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAdminRequests(view AdminRequestsView, s styles) string {
	lines := []string{s.title.Render("בקשות אחרונות")}
	if len(view.Rows) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, s.empty.Render(view.Empty))...)
	}

	for _, row := range view.Rows {
		icon := "⇄"
		if !row.Swap {
			icon = "⤓"
		}
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.greeting.Render(icon+" "),
			lipgloss.JoinVertical(lipgloss.Left, s.cardTitle.Render(row.Title), s.muted.Render(row.Meta)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProgressBar(percent float64, level string, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * percent / 100))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.level(level).Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}
