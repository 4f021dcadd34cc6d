package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	portalview "github.com/bnema/containerdesk/internal/adapters/render/portal"
	"github.com/bnema/containerdesk/internal/application"
	"github.com/bnema/containerdesk/internal/domain"
)

const (
	toastDuration = 4 * time.Second
	clockInterval = 30 * time.Second
)

var pageTitles = map[portalview.Page]string{
	portalview.PageHome:       "בית",
	portalview.PageContainers: "מכולות",
	portalview.PageHistory:    "היסטוריה",
	portalview.PageChat:       "צ'אט",
}

var controlLabels = map[application.ControlID]string{
	application.ControlSwap:    "החלפה",
	application.ControlRemoval: "פינוי",
	application.ControlChat:    "שליחה",
	application.ControlReload:  "רענון",
}

// Portal is the subset of the portal service the interactive view drives.
type Portal interface {
	Reload(ctx context.Context) error
	RequestService(ctx context.Context, kind domain.RequestKind) error
	SendChatMessage(ctx context.Context, message string) error
}

type sessionMsg struct {
	session domain.Session
}

type transitionMsg application.Transition

type noticeMsg domain.Notice

type actionDoneMsg struct {
	control application.ControlID
	err     error
}

type toastExpiredMsg struct {
	id int
}

type clockMsg time.Time

type model struct {
	ctx    context.Context
	portal Portal
	now    func() time.Time
	styles styles

	page     portalview.Page
	session  domain.Session
	template int

	input   textinput.Model
	spinner spinner.Model

	pending map[application.ControlID]bool
	failed  map[application.ControlID]bool

	toast   *domain.Notice
	toastID int

	err error
}

func newModel(ctx context.Context, p Portal, session domain.Session, now func() time.Time) model {
	if now == nil {
		now = time.Now
	}

	input := textinput.New()
	input.Placeholder = "הקלד הודעה..."
	input.CharLimit = 500
	input.Prompt = "› "

	s := newStyles()

	return model{
		ctx:     ctx,
		portal:  p,
		now:     now,
		styles:  s,
		page:    portalview.PageHome,
		session: session,
		input:   input,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.spinner)),
		pending: map[application.ControlID]bool{},
		failed:  map[application.ControlID]bool{},
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, clockTick())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case sessionMsg:
		m.session = msg.session
		if !msg.session.Active() {
			m.err = domain.ErrClientNotFound
			return m, tea.Quit
		}
		return m, nil
	case transitionMsg:
		switch msg.To {
		case application.StateSubmitting:
			m.pending[msg.Control] = true
			m.failed[msg.Control] = false
		case application.StateFailed:
			m.failed[msg.Control] = true
		case application.StateIdle:
			m.pending[msg.Control] = false
		}
		return m, nil
	case noticeMsg:
		return m.showToast(domain.Notice(msg))
	case actionDoneMsg:
		return m.actionDone(msg)
	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = nil
		}
		return m, nil
	case clockMsg:
		return m, clockTick()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.input.Focused() {
		switch msg.String() {
		case "esc":
			m.input.Blur()
			return m, nil
		case "enter":
			message := strings.TrimSpace(m.input.Value())
			if message == "" {
				return m, nil
			}
			m.input.Reset()
			return m, m.sendChat(message)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "tab", "right":
		m.page = shiftPage(m.page, 1)
	case "shift+tab", "left":
		m.page = shiftPage(m.page, -1)
	case "1", "2", "3", "4":
		m.page = portalview.Pages[int(msg.String()[0]-'1')]
	case "r":
		return m, m.dispatch(application.ControlReload, m.portal.Reload)
	case "s":
		return m, m.requestService(domain.RequestSwap)
	case "x":
		return m, m.requestService(domain.RequestRemoval)
	}

	if m.page != portalview.PageChat {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.template > 0 {
			m.template--
		}
	case "down", "j":
		if m.template < len(domain.ChatTemplates)-1 {
			m.template++
		}
	case "enter":
		return m, m.sendChat(domain.ChatTemplates[m.template])
	case "i":
		return m, m.input.Focus()
	}

	return m, nil
}

func (m model) requestService(kind domain.RequestKind) tea.Cmd {
	control := application.ControlSwap
	if kind == domain.RequestRemoval {
		control = application.ControlRemoval
	}
	return m.dispatch(control, func(ctx context.Context) error {
		return m.portal.RequestService(ctx, kind)
	})
}

func (m model) sendChat(message string) tea.Cmd {
	return m.dispatch(application.ControlChat, func(ctx context.Context) error {
		return m.portal.SendChatMessage(ctx, message)
	})
}

// dispatch runs fn off the update loop. A control that is already
// submitting is left alone.
func (m model) dispatch(control application.ControlID, fn func(context.Context) error) tea.Cmd {
	if m.pending[control] {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{control: control, err: fn(ctx)}
	}
}

func (m model) actionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err == nil:
		return m, nil
	case errors.Is(msg.err, domain.ErrAlreadySubmitting):
		return m, nil
	case m.failed[msg.control]:
		// the dispatcher already reported it
		return m, nil
	default:
		return m.showToast(domain.Notice{Kind: domain.NoticeError, Message: msg.err.Error()})
	}
}

func (m model) showToast(notice domain.Notice) (tea.Model, tea.Cmd) {
	m.toastID++
	m.toast = &notice
	id := m.toastID
	return m, tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m model) View() string {
	sections := []string{
		m.renderTabs(),
		portalview.PageView(m.page, m.session, portalview.RenderOptions{Now: m.now()}),
	}

	if m.page == portalview.PageChat {
		sections = append(sections,
			m.styles.selected.Render("› "+domain.ChatTemplates[m.template]),
			m.input.View(),
		)
	}

	if status := m.renderPending(); status != "" {
		sections = append(sections, status)
	}
	if m.toast != nil {
		sections = append(sections, m.styles.toast(m.toast.Kind).Render(m.toast.Message))
	}
	sections = append(sections, m.styles.help.Render(m.help()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) renderTabs() string {
	tabs := make([]string, 0, len(portalview.Pages))
	for i, page := range portalview.Pages {
		label := fmt.Sprintf("%d %s", i+1, pageTitles[page])
		if page == m.page {
			tabs = append(tabs, m.styles.activeTab.Render(label))
			continue
		}
		tabs = append(tabs, m.styles.tab.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) renderPending() string {
	labels := make([]string, 0, len(m.pending))
	for _, control := range []application.ControlID{application.ControlReload, application.ControlSwap, application.ControlRemoval, application.ControlChat} {
		if m.pending[control] {
			labels = append(labels, controlLabels[control])
		}
	}
	if len(labels) == 0 {
		return ""
	}
	return fmt.Sprintf("%s שולח: %s", m.spinner.View(), strings.Join(labels, ", "))
}

func (m model) help() string {
	if m.input.Focused() {
		return "enter send • esc cancel"
	}
	keys := "tab page • r reload • s swap • x removal • q quit"
	if m.page == portalview.PageChat {
		keys = "↑/↓ template • enter send • i type • " + keys
	}
	return keys
}

func shiftPage(current portalview.Page, delta int) portalview.Page {
	pages := portalview.Pages
	for i, page := range pages {
		if page == current {
			return pages[(i+delta+len(pages))%len(pages)]
		}
	}
	return pages[0]
}

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}
