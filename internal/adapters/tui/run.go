package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/containerdesk/internal/application"
	"github.com/bnema/containerdesk/internal/domain"
)

// SessionSource publishes session swaps.
type SessionSource interface {
	Current() domain.Session
	Subscribe(fn func(domain.Session)) func()
}

type Config struct {
	Portal   Portal
	Sessions SessionSource
	// ObserveTransitions registers the dispatcher observer; it is called
	// with nil when the program exits.
	ObserveTransitions func(func(application.Transition))
	// ForwardNotices redirects notices into the program; nil restores the
	// previous sink.
	ForwardNotices func(func(domain.Notice))
	Now            func() time.Time
	Input          io.Reader
	Output         io.Writer
}

// Run blocks until the user quits, ctx ends or the session is revoked.
func Run(ctx context.Context, cfg Config) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}

	p := tea.NewProgram(newModel(ctx, cfg.Portal, cfg.Sessions.Current(), cfg.Now), opts...)

	unsubscribe := cfg.Sessions.Subscribe(func(session domain.Session) {
		p.Send(sessionMsg{session: session})
	})
	defer unsubscribe()

	if cfg.ObserveTransitions != nil {
		cfg.ObserveTransitions(func(t application.Transition) {
			p.Send(transitionMsg(t))
		})
		defer cfg.ObserveTransitions(nil)
	}
	if cfg.ForwardNotices != nil {
		cfg.ForwardNotices(func(notice domain.Notice) {
			p.Send(noticeMsg(notice))
		})
		defer cfg.ForwardNotices(nil)
	}

	finalModel, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	final, ok := finalModel.(model)
	if !ok {
		return fmt.Errorf("unexpected final portal model type %T", finalModel)
	}

	return final.err
}
