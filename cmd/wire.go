package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/bnema/containerdesk/internal/adapters/gateway"
	redisidentity "github.com/bnema/containerdesk/internal/adapters/identity/redis"
	tomlidentity "github.com/bnema/containerdesk/internal/adapters/identity/toml"
	chainstore "github.com/bnema/containerdesk/internal/adapters/secrets/chain"
	"github.com/bnema/containerdesk/internal/application"
	"github.com/bnema/containerdesk/internal/domain"
	"github.com/bnema/containerdesk/internal/ports"
)

const redisDialTimeout = 5 * time.Second

var errGatewayNotConfigured = errors.New("gateway url is not configured: set gateway.url in ~/.cdesk/config.toml or CDESK_GATEWAY_URL")

type app struct {
	portal       *application.PortalService
	admin        *application.AdminService
	sessions     *application.SessionStore
	dispatcher   *application.Dispatcher
	identity     ports.IdentityStore
	secretStore  ports.SecretStore
	pushTokenKey string
	notices      *noticeSink
	location     *time.Location
	clock        ports.Clock
	closers      []func() error
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := loadConfig(homeDir)
	if err != nil {
		return nil, err
	}
	if err := configureLogging(cfg); err != nil {
		return nil, err
	}

	location, err := displayLocation(cfg)
	if err != nil {
		return nil, err
	}

	gw, err := wireGateway(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire gateway: %w", err)
	}

	a := &app{
		notices:      &noticeSink{out: os.Stderr},
		location:     location,
		clock:        ports.SystemClock{},
		pushTokenKey: cfg.GetString(keyPushTokenKey),
	}

	a.identity, err = a.wireIdentity(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire identity store: %w", err)
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(cfg.GetString(keySecretsDir))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}
	a.secretStore = secretStore

	a.sessions = application.NewSessionStore()
	a.dispatcher = application.NewDispatcher(a.sessions, a.notices)
	a.portal = application.NewPortalService(
		gw,
		a.identity,
		a.sessions,
		application.NewRefresher(cfg.GetDuration(keyRefreshInterval)),
		a.dispatcher,
		application.PushConfig{Secrets: secretStore, TokenKey: a.pushTokenKey},
	)
	a.admin = application.NewAdminService(gw, a.dispatcher, application.NewRefresher(cfg.GetDuration(keyAdminRefreshInterval)))

	return a, nil
}

func wireGateway(cfg *viper.Viper) (ports.Gateway, error) {
	if strings.TrimSpace(cfg.GetString(keyGatewayURL)) == "" {
		return unconfiguredGateway{}, nil
	}

	return gateway.New(gateway.Config{
		BaseURL:        cfg.GetString(keyGatewayURL),
		HTTPClient:     http.DefaultClient,
		RequestTimeout: cfg.GetDuration(keyGatewayTimeout),
		Fields:         fieldOverrides(cfg),
	})
}

func (a *app) wireIdentity(cfg *viper.Viper) (ports.IdentityStore, error) {
	switch backend := strings.ToLower(strings.TrimSpace(cfg.GetString(keyIdentityBackend))); backend {
	case identityBackendTOML:
		return tomlidentity.NewStore(cfg)
	case identityBackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
		defer cancel()

		store, err := redisidentity.Dial(ctx, redisidentity.Options{
			Addr:     cfg.GetString(keyRedisAddr),
			Password: cfg.GetString(keyRedisPassword),
			DB:       cfg.GetInt(keyRedisDB),
			Key:      cfg.GetString(keyRedisKey),
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown %s %q (want %s or %s)", keyIdentityBackend, backend, identityBackendTOML, identityBackendRedis)
	}
}

func (a *app) close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// unconfiguredGateway lets commands that never reach the gateway run
// before gateway.url is set.
type unconfiguredGateway struct{}

func (unconfiguredGateway) FetchClientData(context.Context, domain.ClientID) (domain.ClientData, error) {
	return domain.ClientData{}, errGatewayNotConfigured
}

func (unconfiguredGateway) FetchStatusPage(context.Context, domain.ClientID) (domain.StatusPage, error) {
	return domain.StatusPage{}, errGatewayNotConfigured
}

func (unconfiguredGateway) SubmitAction(context.Context, ports.Action, map[string]any) error {
	return errGatewayNotConfigured
}

func (unconfiguredGateway) ListClients(context.Context) ([]domain.ClientSummary, error) {
	return nil, errGatewayNotConfigured
}

func (unconfiguredGateway) RecentRequests(context.Context) ([]domain.RequestLogEntry, error) {
	return nil, errGatewayNotConfigured
}
