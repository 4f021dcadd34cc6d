package ports

import (
	"context"

	"github.com/bnema/containerdesk/internal/domain"
)

// Action is the discriminator carried in every gateway write.
type Action string

const (
	ActionLogClientRequest      Action = "logClientRequest"
	ActionClientRequest         Action = "clientRequest"
	ActionSaveFCMToken          Action = "saveFCMToken"
	ActionSendAdminNotification Action = "sendAdminNotification"
)

type Gateway interface {
	FetchClientData(ctx context.Context, id domain.ClientID) (domain.ClientData, error)
	FetchStatusPage(ctx context.Context, id domain.ClientID) (domain.StatusPage, error)
	// SubmitAction sends {action, ...payload}. The gateway does not
	// deduplicate, callers guard against double submission.
	SubmitAction(ctx context.Context, action Action, payload map[string]any) error
	ListClients(ctx context.Context) ([]domain.ClientSummary, error)
	RecentRequests(ctx context.Context) ([]domain.RequestLogEntry, error)
}
