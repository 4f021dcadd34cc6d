package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/containerdesk/internal/domain"
)

// Calls slower than this show how long they have been waiting.
const showElapsedAfter = time.Second

type callDoneMsg struct {
	err error
}

type callNoticeMsg domain.Notice

// gatewayCallModel keeps a spinner up while one gateway round trip runs.
// Notices raised by the call are held until the spinner is gone so they
// never interleave with its frames.
type gatewayCallModel struct {
	spinner spinner.Model
	label   string
	clock   func() time.Time
	started time.Time
	waited  time.Duration
	call    tea.Cmd
	notices []domain.Notice
	err     error
	done    bool
}

var (
	callLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	callElapsedStyle = lipgloss.NewStyle().Faint(true)
)

func newGatewayCallModel(label string, clock func() time.Time, call tea.Cmd) gatewayCallModel {
	return gatewayCallModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(callLabelStyle)),
		label:   label,
		clock:   clock,
		started: clock(),
		call:    call,
	}
}

func (m gatewayCallModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.call)
}

func (m gatewayCallModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.waited = m.clock().Sub(m.started)
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case callNoticeMsg:
		m.notices = append(m.notices, domain.Notice(msg))
		return m, nil
	case callDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m gatewayCallModel) View() string {
	if m.done {
		return ""
	}

	view := fmt.Sprintf("%s %s", m.spinner.View(), m.label)
	if m.waited >= showElapsedAfter {
		view += " " + callElapsedStyle.Render(fmt.Sprintf("%ds", int(m.waited.Seconds())))
	}
	return view
}

// runGatewayCall shows label on stderr while call runs and returns its error.
// Notices emitted meanwhile are printed after the spinner clears.
func runGatewayCall(cmd *cobra.Command, app *app, label string, call func(context.Context) error) error {
	ctx := cmd.Context()
	callCmd := func() tea.Msg {
		return callDoneMsg{err: call(ctx)}
	}

	p := tea.NewProgram(
		newGatewayCallModel(label, app.clock.Now, callCmd),
		tea.WithInput(nil),
		tea.WithOutput(cmd.ErrOrStderr()),
		tea.WithContext(ctx),
	)

	restore := app.notices.redirect(func(notice domain.Notice) {
		p.Send(callNoticeMsg(notice))
	})
	finalModel, runErr := p.Run()
	restore()

	result, ok := finalModel.(gatewayCallModel)
	if !ok {
		if runErr != nil {
			return runErr
		}
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}
	if len(result.notices) > 0 {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), result.summary())
	}
	if runErr != nil {
		return runErr
	}

	return result.err
}

func (m gatewayCallModel) summary() string {
	lines := make([]string, 0, len(m.notices))
	for _, notice := range m.notices {
		lines = append(lines, formatNotice(notice))
	}
	return strings.Join(lines, "\n")
}
