package chain

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	filestore "github.com/bnema/containerdesk/internal/adapters/secrets/file"
	passstore "github.com/bnema/containerdesk/internal/adapters/secrets/pass"
	"github.com/bnema/containerdesk/internal/ports"
)

// Store tries primary first and falls back to the second backend, so the
// push token works on machines without pass.
type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary secret store is nil")
	errNilFallbackStore = errors.New("fallback secret store is nil")
)

func New(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return New(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if shouldSkipFallback(err) {
		return err
	}

	log.WithError(err).WithField("key", key).Debug("primary secret backend put failed, using fallback")
	fallbackErr := s.fallback.Put(ctx, key, value)
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("primary backend put failed: %w; fallback backend put failed: %w", err, fallbackErr)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if shouldSkipFallback(err) {
		return "", err
	}

	log.WithError(err).WithField("key", key).Debug("primary secret backend get failed, using fallback")
	fallbackValue, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return fallbackValue, nil
	}

	return "", fmt.Errorf("primary backend get failed: %w; fallback backend get failed: %w", err, fallbackErr)
}

// Delete removes the key from both backends since either may hold it.
func (s *Store) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	if shouldSkipFallback(primaryErr) {
		return primaryErr
	}
	fallbackErr := s.fallback.Delete(ctx, key)

	switch {
	case primaryErr == nil || fallbackErr == nil:
		if primaryErr != nil {
			log.WithError(primaryErr).WithField("key", key).Debug("primary secret backend delete failed")
		}
		return nil
	default:
		return fmt.Errorf("primary backend delete failed: %w; fallback backend delete failed: %w", primaryErr, fallbackErr)
	}
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
