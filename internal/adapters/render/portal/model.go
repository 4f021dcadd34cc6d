package portal

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/containerdesk/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	draw   func(styles) string
	styles styles
	output string
}

func newModel(draw func(styles) string) model {
	return model{draw: draw, styles: newStyles()}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.draw(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

func Render(page Page, session domain.Session, opts RenderOptions) (string, error) {
	return run(func(s styles) string { return renderPage(page, session, opts, s) })
}

func RenderStatusPage(page domain.StatusPage, opts RenderOptions) (string, error) {
	view := BuildStatusPage(page, opts.now())
	return run(func(s styles) string { return renderStatusPage(view, s) })
}

func RenderAdminClients(clients []domain.ClientSummary) (string, error) {
	view := BuildAdminClients(clients)
	return run(func(s styles) string { return renderAdminClients(view, s) })
}

func RenderAdminRequests(requests []domain.RequestLogEntry, opts RenderOptions) (string, error) {
	view := BuildAdminRequests(requests, opts.Location)
	return run(func(s styles) string { return renderAdminRequests(view, s) })
}

// AdminRequestsText renders the request log without a bubbletea program.
func AdminRequestsText(requests []domain.RequestLogEntry, opts RenderOptions) string {
	return renderAdminRequests(BuildAdminRequests(requests, opts.Location), newStyles())
}

func run(draw func(styles) string) (string, error) {
	p := tea.NewProgram(
		newModel(draw),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
