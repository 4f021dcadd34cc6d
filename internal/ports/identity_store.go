package ports

import (
	"context"

	"github.com/bnema/containerdesk/internal/domain"
)

// IdentityStore is the single durable slot holding the last-used client id.
// Load returns an empty id and no error when nothing is stored.
type IdentityStore interface {
	Load(ctx context.Context) (domain.ClientID, error)
	Save(ctx context.Context, id domain.ClientID) error
	Clear(ctx context.Context) error
}
