package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/crmlink/internal/metrics"
	"github.com/dmitrymomot/crmlink/middlewares"
	"github.com/dmitrymomot/crmlink/pkg/health"
	"github.com/dmitrymomot/crmlink/pkg/logger"
)

// RouterConfig wires the optional parts of the router.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	Checks         health.Checks
	AllowedOrigins []string
}

// NewRouter mounts the integration endpoints, health probes and metrics.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNope()
	}

	r := chi.NewRouter()
	r.Use(middlewares.RequestID())
	r.Use(middlewares.Recover(log))
	r.Use(middleware.RealIP)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
	}
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(middlewares.CORS(
			middlewares.WithAllowOrigins(cfg.AllowedOrigins...),
			middlewares.WithExposeHeaders("X-Request-ID"),
		))
	}

	r.Route("/integrations/hubspot", func(r chi.Router) {
		r.Post("/authorize", h.Authorize)
		r.Get("/oauth2callback", h.Callback)
		r.Post("/credentials", h.Credentials)
		r.Post("/load", h.Load)
	})

	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(cfg.Checks, health.WithLogger(log)))

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	return r
}
