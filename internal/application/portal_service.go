package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/containerdesk/internal/domain"
	"github.com/bnema/containerdesk/internal/ports"
	log "github.com/sirupsen/logrus"
)

const (
	requestSentMessage = "הבקשה נשלחה בהצלחה!"
	clientRequestSent  = "בקשתך נשלחה בהצלחה!"
	reloadedMessage    = "הנתונים עודכנו"
	pushTokenSaved     = "אישרת קבלת עדכונים!"
)

type PushConfig struct {
	Secrets  ports.SecretStore
	TokenKey string
}

// PortalService drives the client portal: identification, loading, the
// refresh loop and every client-initiated write.
type PortalService struct {
	gateway    ports.Gateway
	identity   ports.IdentityStore
	sessions   *SessionStore
	refresher  *Refresher
	dispatcher *Dispatcher
	push       PushConfig

	mu       sync.Mutex
	watchCtx context.Context
}

func NewPortalService(gateway ports.Gateway, identity ports.IdentityStore, sessions *SessionStore, refresher *Refresher, dispatcher *Dispatcher, push PushConfig) *PortalService {
	return &PortalService{
		gateway:    gateway,
		identity:   identity,
		sessions:   sessions,
		refresher:  refresher,
		dispatcher: dispatcher,
		push:       push,
	}
}

func (s *PortalService) Sessions() *SessionStore {
	return s.sessions
}

func (s *PortalService) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// Resume logs in with the persisted client id. It returns
// domain.ErrIdentityRequired when no id was stored.
func (s *PortalService) Resume(ctx context.Context) (domain.Session, error) {
	id, err := s.identity.Load(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load persisted client id: %w", err)
	}
	if id == "" {
		return domain.Session{}, domain.ErrIdentityRequired
	}

	return s.Login(ctx, id)
}

func (s *PortalService) Login(ctx context.Context, id domain.ClientID) (domain.Session, error) {
	id = domain.ClientID(strings.TrimSpace(string(id)))
	if id == "" {
		return domain.Session{}, domain.ErrIdentityRequired
	}

	data, err := s.fetch(ctx, id, true)
	if err != nil {
		return domain.Session{}, err
	}

	// The previous client's loop keeps running until the new data is in hand,
	// and is stopped before publishing so it cannot overwrite it.
	if running, ok := s.refresher.Running(); ok && running != string(id) {
		s.refresher.Stop()
	}
	session := s.sessions.Replace(id, data)

	if err := s.identity.Save(ctx, id); err != nil {
		return session, fmt.Errorf("persist client id: %w", err)
	}

	s.restartWatch(id)

	return session, nil
}

// Watch starts the periodic refresh for the current client and keeps it
// following identity changes until ctx ends or Logout is called.
func (s *PortalService) Watch(ctx context.Context) {
	s.mu.Lock()
	s.watchCtx = ctx
	s.mu.Unlock()

	if session := s.sessions.Current(); session.Active() {
		s.restartWatch(session.ClientID)
	}
}

func (s *PortalService) Logout(ctx context.Context) error {
	s.refresher.Stop()
	s.sessions.Reset()

	if err := s.identity.Clear(ctx); err != nil {
		return fmt.Errorf("clear persisted client id: %w", err)
	}

	return nil
}

// Reload fetches the current client's data as a dispatched action.
func (s *PortalService) Reload(ctx context.Context) error {
	id := s.sessions.Current().ClientID
	if id == "" {
		return domain.ErrIdentityRequired
	}

	return s.dispatcher.Dispatch(ctx, ControlReload, func(ctx context.Context) (Outcome, error) {
		data, err := s.gateway.FetchClientData(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrClientNotFound) {
				s.forget(ctx, id, true)
			}
			return Outcome{}, fmt.Errorf("reload client %s: %w", id, err)
		}

		return Outcome{Client: id, Data: &data, Message: reloadedMessage}, nil
	})
}

func (s *PortalService) RequestSwap(ctx context.Context) error {
	return s.RequestService(ctx, domain.RequestSwap)
}

func (s *PortalService) RequestRemoval(ctx context.Context) error {
	return s.RequestService(ctx, domain.RequestRemoval)
}

func (s *PortalService) RequestService(ctx context.Context, kind domain.RequestKind) error {
	session, err := s.requireSession()
	if err != nil {
		return err
	}

	return s.SendServiceRequest(ctx, session.ClientID, session.ClientName, kind)
}

// SendServiceRequest logs a swap or removal request. The status page uses
// it directly since it has no portal session.
func (s *PortalService) SendServiceRequest(ctx context.Context, id domain.ClientID, clientName string, kind domain.RequestKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unsupported request type %q", domain.ErrValidation, kind)
	}

	control := ControlSwap
	if kind == domain.RequestRemoval {
		control = ControlRemoval
	}

	return s.dispatcher.Dispatch(ctx, control, func(ctx context.Context) (Outcome, error) {
		err := s.gateway.SubmitAction(ctx, ports.ActionLogClientRequest, map[string]any{
			"clientId":    string(id),
			"clientName":  clientName,
			"requestType": string(kind),
		})
		if err != nil {
			return Outcome{}, err
		}

		return Outcome{Message: requestSentMessage}, nil
	})
}

func (s *PortalService) SubmitOrderRequest(ctx context.Context, req domain.OrderRequest) error {
	session, err := s.requireSession()
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		s.dispatcher.Notify(domain.Notice{Kind: domain.NoticeError, Message: "אנא בחר כתובת קיימת או הקלד כתובת חדשה."})
		return err
	}

	return s.dispatcher.Dispatch(ctx, ControlOrder, s.clientRequest(session, req.ActionType, req.Details()))
}

func (s *PortalService) SendChatMessage(ctx context.Context, message string) error {
	session, err := s.requireSession()
	if err != nil {
		return err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("%w: message is empty", domain.ErrValidation)
	}

	if reply, ok := domain.ETAReply(session, message); ok {
		s.dispatcher.Notify(domain.Notice{Kind: domain.NoticeInfo, Message: reply})
	}

	return s.dispatcher.Dispatch(ctx, ControlChat, s.clientRequest(session, domain.ChatRequestType, message))
}

// RegisterPushToken forwards the platform registration token to the gateway.
func (s *PortalService) RegisterPushToken(ctx context.Context) error {
	session, err := s.requireSession()
	if err != nil {
		return err
	}
	if s.push.Secrets == nil || strings.TrimSpace(s.push.TokenKey) == "" {
		return errors.New("push token source is not configured")
	}

	token, err := s.push.Secrets.Get(ctx, s.push.TokenKey)
	if err != nil {
		return fmt.Errorf("load push registration token: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("push registration token %q is empty", s.push.TokenKey)
	}

	return s.dispatcher.Dispatch(ctx, ControlPushToken, func(ctx context.Context) (Outcome, error) {
		err := s.gateway.SubmitAction(ctx, ports.ActionSaveFCMToken, map[string]any{
			"clientId": string(session.ClientID),
			"token":    token,
		})
		if err != nil {
			return Outcome{}, err
		}

		return Outcome{Message: pushTokenSaved}, nil
	})
}

func (s *PortalService) StatusPage(ctx context.Context, id domain.ClientID) (domain.StatusPage, error) {
	id = domain.ClientID(strings.TrimSpace(string(id)))
	if id == "" {
		return domain.StatusPage{}, domain.ErrIdentityRequired
	}

	page, err := s.gateway.FetchStatusPage(ctx, id)
	if err != nil {
		return domain.StatusPage{}, fmt.Errorf("load status page for %s: %w", id, err)
	}

	return page, nil
}

func (s *PortalService) clientRequest(session domain.Session, requestType, details string) Action {
	return func(ctx context.Context) (Outcome, error) {
		err := s.gateway.SubmitAction(ctx, ports.ActionClientRequest, map[string]any{
			"clientId":    string(session.ClientID),
			"clientName":  session.ClientName,
			"requestType": requestType,
			"details":     details,
		})
		if err != nil {
			return Outcome{}, err
		}

		return Outcome{Message: clientRequestSent}, nil
	}
}

func (s *PortalService) fetch(ctx context.Context, id domain.ClientID, stopLoop bool) (domain.ClientData, error) {
	data, err := s.gateway.FetchClientData(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			s.forget(ctx, id, stopLoop)
		}
		return domain.ClientData{}, fmt.Errorf("load client %s: %w", id, err)
	}
	if err := ctx.Err(); err != nil {
		return domain.ClientData{}, err
	}

	return data, nil
}

// refresh runs inside the refresh loop, which ends itself on NotFound.
func (s *PortalService) refresh(ctx context.Context, id domain.ClientID) error {
	data, err := s.fetch(ctx, id, false)
	if err != nil {
		return err
	}

	s.sessions.Replace(id, data)
	return nil
}

// forget drops an identifier the gateway no longer recognizes. stopLoop is
// false when called from inside the refresh loop, which ends itself.
func (s *PortalService) forget(ctx context.Context, id domain.ClientID, stopLoop bool) {
	log.WithField("client", id).Warn("gateway does not recognize client id, clearing it")

	if stopLoop {
		s.refresher.Stop()
	}
	if err := s.identity.Clear(context.WithoutCancel(ctx)); err != nil {
		log.WithError(err).Error("clear persisted client id")
	}
	s.sessions.Reset()
}

func (s *PortalService) restartWatch(id domain.ClientID) {
	s.mu.Lock()
	watchCtx := s.watchCtx
	s.mu.Unlock()

	if watchCtx == nil || watchCtx.Err() != nil {
		return
	}

	s.refresher.Start(watchCtx, string(id), func(ctx context.Context) error {
		err := s.refresh(ctx, id)
		if errors.Is(err, domain.ErrClientNotFound) {
			return fmt.Errorf("%w: %w", ErrStopRefresh, err)
		}
		return err
	})
}

func (s *PortalService) requireSession() (domain.Session, error) {
	session := s.sessions.Current()
	if !session.Active() {
		return domain.Session{}, domain.ErrIdentityRequired
	}
	return session, nil
}
