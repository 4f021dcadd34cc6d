package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/containerdesk/internal/domain"
	"github.com/bnema/containerdesk/internal/ports"
	log "github.com/sirupsen/logrus"
)

type ControlID string

const (
	ControlSwap       ControlID = "swap"
	ControlRemoval    ControlID = "removal"
	ControlOrder      ControlID = "order"
	ControlChat       ControlID = "chat"
	ControlReload     ControlID = "reload"
	ControlPushToken  ControlID = "push-token"
	ControlAdminNotif ControlID = "admin-notify"
)

type ActionState string

const (
	StateIdle       ActionState = "idle"
	StateSubmitting ActionState = "submitting"
	StateSucceeded  ActionState = "succeeded"
	StateFailed     ActionState = "failed"
)

type Transition struct {
	Control ControlID
	From    ActionState
	To      ActionState
	Err     error
}

// Outcome is what a successful action hands back to the dispatcher. Data,
// when set, replaces the session for Client.
type Outcome struct {
	Client  domain.ClientID
	Data    *domain.ClientData
	Message string
}

type Action func(ctx context.Context) (Outcome, error)

// Dispatcher turns user actions into gateway calls while tracking a
// per-control Idle -> Submitting -> Succeeded|Failed -> Idle machine.
type Dispatcher struct {
	sessions *SessionStore
	notifier ports.Notifier

	mu       sync.Mutex
	states   map[ControlID]ActionState
	observer func(Transition)
}

func NewDispatcher(sessions *SessionStore, notifier ports.Notifier) *Dispatcher {
	if notifier == nil {
		notifier = ports.NotifierFunc(func(domain.Notice) {})
	}

	return &Dispatcher{
		sessions: sessions,
		notifier: notifier,
		states:   map[ControlID]ActionState{},
	}
}

// Observe sets the transition observer. The observer runs on the
// dispatching goroutine.
func (d *Dispatcher) Observe(fn func(Transition)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.observer = fn
}

func (d *Dispatcher) State(control ControlID) ActionState {
	d.mu.Lock()
	defer d.mu.Unlock()

	if state, ok := d.states[control]; ok {
		return state
	}
	return StateIdle
}

func (d *Dispatcher) Dispatch(ctx context.Context, control ControlID, action Action) error {
	if err := d.enter(control); err != nil {
		return err
	}

	outcome, err := action(ctx)
	if err != nil {
		d.transition(control, StateSubmitting, StateFailed, err)
		d.notifier.Notify(domain.Notice{Kind: domain.NoticeError, Message: failureMessage(err)})
		log.WithError(err).WithField("control", control).Warn("action failed")
		d.transition(control, StateFailed, StateIdle, nil)
		return err
	}

	if outcome.Data != nil && outcome.Client != "" {
		d.sessions.Replace(outcome.Client, *outcome.Data)
	}

	d.transition(control, StateSubmitting, StateSucceeded, nil)
	if outcome.Message != "" {
		d.notifier.Notify(domain.Notice{Kind: domain.NoticeSuccess, Message: outcome.Message})
	}
	d.transition(control, StateSucceeded, StateIdle, nil)

	return nil
}

func (d *Dispatcher) enter(control ControlID) error {
	d.mu.Lock()
	if d.states[control] == StateSubmitting {
		d.mu.Unlock()
		return fmt.Errorf("%s: %w", control, domain.ErrAlreadySubmitting)
	}
	from := d.stateLocked(control)
	d.states[control] = StateSubmitting
	observer := d.observer
	d.mu.Unlock()

	if observer != nil {
		observer(Transition{Control: control, From: from, To: StateSubmitting})
	}
	return nil
}

func (d *Dispatcher) transition(control ControlID, from, to ActionState, err error) {
	d.mu.Lock()
	d.states[control] = to
	observer := d.observer
	d.mu.Unlock()

	if observer != nil {
		observer(Transition{Control: control, From: from, To: to, Err: err})
	}
}

func (d *Dispatcher) stateLocked(control ControlID) ActionState {
	if state, ok := d.states[control]; ok {
		return state
	}
	return StateIdle
}

func failureMessage(err error) string {
	var gatewayErr *domain.GatewayError
	switch {
	case errors.As(err, &gatewayErr) && gatewayErr.Message != "":
		return "שליחת הבקשה נכשלה: " + gatewayErr.Message
	case errors.Is(err, domain.ErrNetwork):
		return "שליחת הבקשה נכשלה: שגיאת רשת"
	default:
		return "שליחת הבקשה נכשלה: " + err.Error()
	}
}

// Notify forwards a notice that is not tied to a control transition.
func (d *Dispatcher) Notify(notice domain.Notice) {
	d.notifier.Notify(notice)
}
