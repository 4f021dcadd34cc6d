package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/bnema/containerdesk/internal/domain"
	"github.com/bnema/containerdesk/internal/ports"
)

const DefaultKey = "cdesk:identity"

type Options struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

type record struct {
	ID      string `json:"id"`
	SavedAt int64  `json:"saved_at"`
}

// Store keeps the last client id under a single Redis key so several
// terminals can share one login.
type Store struct {
	cli *redis.Client
	key string
	now func() time.Time
}

var _ ports.IdentityStore = (*Store)(nil)

func NewStore(cli *redis.Client, key string) *Store {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &Store{cli: cli, key: key, now: time.Now}
}

// Dial connects and pings the server before returning the store.
func Dial(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, errors.New("redis address is required")
	}

	cli := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if _, err := cli.Ping(ctx).Result(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return NewStore(cli, opts.Key), nil
}

func (s *Store) Load(ctx context.Context) (domain.ClientID, error) {
	out := s.cli.Get(ctx, s.key)
	if out.Err() != nil {
		if errors.Is(out.Err(), redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("load identity: %w", out.Err())
	}

	var rec record
	if err := json.Unmarshal([]byte(out.Val()), &rec); err != nil {
		return "", fmt.Errorf("decode identity: %w", err)
	}
	return domain.ClientID(strings.TrimSpace(rec.ID)), nil
}

func (s *Store) Save(ctx context.Context, id domain.ClientID) error {
	if strings.TrimSpace(string(id)) == "" {
		return errors.New("client id is empty")
	}

	raw, err := json.Marshal(record{ID: string(id), SavedAt: s.now().Unix()})
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if err := s.cli.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.cli.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.cli.Close()
}
