// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/crmlink/internal/integration"
	"github.com/dmitrymomot/crmlink/internal/metrics"
	"github.com/dmitrymomot/crmlink/pkg/logger"
	"github.com/dmitrymomot/crmlink/pkg/oauth"
	"github.com/dmitrymomot/crmlink/pkg/redis"
)

// Store drivers.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// ErrUnknownStoreDriver is returned when STORE_DRIVER names no known backend.
var ErrUnknownStoreDriver = errors.New("config: unknown store driver")

// Config is the complete service configuration.
type Config struct {
	HubSpot     oauth.HubSpotConfig
	Integration integration.Config
	Redis       redis.Config
	Log         logger.Config
	Metrics     metrics.Config
	Server      ServerConfig

	StoreDriver string `env:"STORE_DRIVER" envDefault:"memory"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address         string        `env:"HTTP_ADDRESS" envDefault:":8000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// Load parses the process environment.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

// LoadFrom parses the given environment instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: environ})
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreRedis:
		return nil
	default:
		return errors.Join(ErrUnknownStoreDriver, fmt.Errorf("driver=%q", c.StoreDriver))
	}
}
