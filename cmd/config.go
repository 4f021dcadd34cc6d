package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bnema/containerdesk/internal/adapters/gateway"
	"github.com/bnema/containerdesk/internal/application"
)

const (
	configDirName = ".cdesk"
	envPrefix     = "CDESK"
	envFileKey    = "CDESK_ENV_FILE"
)

const (
	keyGatewayURL           = "gateway.url"
	keyGatewayTimeout       = "gateway.timeout"
	keyRefreshInterval      = "refresh.interval"
	keyAdminRefreshInterval = "admin.refresh_interval"
	keyIdentityBackend      = "identity.backend"
	keyRedisAddr            = "redis.addr"
	keyRedisPassword        = "redis.password"
	keyRedisDB              = "redis.db"
	keyRedisKey             = "redis.key"
	keyPushTokenKey         = "push.token_key"
	keySecretsDir           = "secrets.dir"
	keyLogLevel             = "log.level"
	keyTimezone             = "time.zone"
)

const (
	identityBackendTOML  = "toml"
	identityBackendRedis = "redis"
)

// loadConfig layers defaults, ~/.cdesk/config.toml, an optional .env file
// and CDESK_* environment variables.
func loadConfig(homeDir string) (*viper.Viper, error) {
	envFile := envOrDefault(envFileKey, ".env")
	if err := godotenv.Load(envFile); err != nil {
		log.WithField("file", envFile).Debug("no env file loaded")
	}

	cfg := viper.New()
	cfg.SetConfigName("config")
	cfg.SetConfigType("toml")
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(keyGatewayTimeout, 30*time.Second)
	cfg.SetDefault(keyRefreshInterval, application.DefaultPortalRefreshInterval)
	cfg.SetDefault(keyAdminRefreshInterval, application.DefaultAdminRefreshInterval)
	cfg.SetDefault(keyIdentityBackend, identityBackendTOML)
	cfg.SetDefault(keyRedisDB, 0)
	cfg.SetDefault(keyPushTokenKey, "cdesk/push/token")
	cfg.SetDefault(keySecretsDir, filepath.Join(homeDir, configDirName, "secrets"))
	cfg.SetDefault(keyLogLevel, "warn")

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func configureLogging(cfg *viper.Viper) error {
	level, err := log.ParseLevel(cfg.GetString(keyLogLevel))
	if err != nil {
		return fmt.Errorf("parse %s: %w", keyLogLevel, err)
	}

	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return nil
}

// fieldOverrides collects fields.<name> entries; unset names keep their
// defaults.
func fieldOverrides(cfg *viper.Viper) map[string]string {
	overrides := map[string]string{}
	for name := range gateway.DefaultFields {
		key := "fields." + name
		if cfg.IsSet(key) {
			overrides[name] = cfg.GetString(key)
		}
	}
	return overrides
}

func displayLocation(cfg *viper.Viper) (*time.Location, error) {
	name := strings.TrimSpace(cfg.GetString(keyTimezone))
	if name == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", keyTimezone, err)
	}
	return loc, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
