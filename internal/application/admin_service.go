package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/containerdesk/internal/domain"
	"github.com/bnema/containerdesk/internal/ports"
)

const (
	adminRequestsLoop   = "admin-requests"
	adminNotificationOK = "ההתראה נשלחה בהצלחה!"
)

type AdminService struct {
	gateway    ports.Gateway
	dispatcher *Dispatcher
	refresher  *Refresher
}

func NewAdminService(gateway ports.Gateway, dispatcher *Dispatcher, refresher *Refresher) *AdminService {
	return &AdminService{gateway: gateway, dispatcher: dispatcher, refresher: refresher}
}

func (s *AdminService) ActiveClients(ctx context.Context) ([]domain.ClientSummary, error) {
	clients, err := s.gateway.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active clients: %w", err)
	}
	return clients, nil
}

func (s *AdminService) RecentRequests(ctx context.Context) ([]domain.RequestLogEntry, error) {
	requests, err := s.gateway.RecentRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recent requests: %w", err)
	}
	return requests, nil
}

// WatchRequests re-fetches the request log on every tick and hands each
// successful result to fn.
func (s *AdminService) WatchRequests(ctx context.Context, fn func([]domain.RequestLogEntry)) {
	s.refresher.Start(ctx, adminRequestsLoop, func(ctx context.Context) error {
		requests, err := s.RecentRequests(ctx)
		if err != nil {
			return err
		}
		fn(requests)
		return nil
	})
}

func (s *AdminService) StopWatching() {
	s.refresher.Stop()
}

func (s *AdminService) SendAdminNotification(ctx context.Context, id domain.ClientID, title, body string) error {
	if strings.TrimSpace(string(id)) == "" {
		return fmt.Errorf("%w: client id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: notification title and body are required", domain.ErrValidation)
	}

	return s.dispatcher.Dispatch(ctx, ControlAdminNotif, func(ctx context.Context) (Outcome, error) {
		err := s.gateway.SubmitAction(ctx, ports.ActionSendAdminNotification, map[string]any{
			"clientId": string(id),
			"title":    title,
			"body":     body,
		})
		if err != nil {
			return Outcome{}, err
		}

		return Outcome{Message: adminNotificationOK}, nil
	})
}
