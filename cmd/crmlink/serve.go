package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/crmlink/internal/config"
	"github.com/dmitrymomot/crmlink/internal/httpapi"
	"github.com/dmitrymomot/crmlink/internal/integration"
	"github.com/dmitrymomot/crmlink/internal/metrics"
	"github.com/dmitrymomot/crmlink/internal/server"
	"github.com/dmitrymomot/crmlink/middlewares"
	"github.com/dmitrymomot/crmlink/pkg/health"
	"github.com/dmitrymomot/crmlink/pkg/kvstore"
	"github.com/dmitrymomot/crmlink/pkg/logger"
	"github.com/dmitrymomot/crmlink/pkg/oauth"
	"github.com/dmitrymomot/crmlink/pkg/redis"
)

const sentryFlushTimeout = 2 * time.Second

func newServeCmd(version string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			cfg.Metrics.ServiceVersion = version
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDRESS)")
	return cmd
}

// backend is an opened store plus what the server needs to probe and close it.
type backend struct {
	store  kvstore.Store
	checks health.Checks
	close  server.ShutdownHook
}

func serve(ctx context.Context, cfg config.Config) error {
	log, err := logger.FromConfig(cfg.Log, middlewares.RequestIDExtractor())
	if err != nil {
		return err
	}
	defer logger.Flush(sentryFlushTimeout)

	provider, err := oauth.NewHubSpotProvider(cfg.HubSpot)
	if err != nil {
		return err
	}

	be, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}

	mp, err := metrics.New(cfg.Metrics)
	if err != nil {
		_ = be.close(ctx)
		return err
	}

	svc, err := integration.New(provider, be.store, cfg.Integration,
		integration.WithLogger(log.With(slog.String("component", "integration"))),
		integration.WithRecorder(mp.Metrics()),
	)
	if err != nil {
		_ = be.close(ctx)
		return err
	}

	routerCfg := httpapi.RouterConfig{
		Logger:         log,
		Metrics:        mp.Metrics(),
		Checks:         be.checks,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if mp.Enabled() {
		routerCfg.MetricsHandler = mp.Handler()
	}
	router := httpapi.NewRouter(httpapi.NewHandler(svc, log), routerCfg)

	log.Info("starting crmlink",
		slog.String("store", cfg.StoreDriver),
		slog.Bool("pkce", cfg.Integration.UsePKCE),
		slog.Bool("metrics", mp.Enabled()),
	)

	return server.Run(ctx, router,
		server.WithAddress(cfg.Server.Address),
		server.WithLogger(log),
		server.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		server.WithShutdownHook(be.close, mp.Shutdown),
	)
}

func openBackend(ctx context.Context, cfg config.Config) (backend, error) {
	switch cfg.StoreDriver {
	case config.StoreRedis:
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return backend{}, err
		}
		store := kvstore.NewRedis(client)
		return backend{
			store: store,
			checks: health.Checks{
				"redis": redis.Healthcheck(client),
				"store": health.StoreCheck(store),
			},
			close: redis.Shutdown(client),
		}, nil
	case config.StoreMemory:
		store := kvstore.NewMemory()
		return backend{
			store:  store,
			checks: health.Checks{"store": health.StoreCheck(store)},
			close:  func(context.Context) error { return store.Close() },
		}, nil
	default:
		return backend{}, fmt.Errorf("%w: %q", config.ErrUnknownStoreDriver, cfg.StoreDriver)
	}
}
