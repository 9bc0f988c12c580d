package metrics_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crmlink/internal/integration"
	"github.com/dmitrymomot/crmlink/internal/metrics"
)

var _ integration.Recorder = (*metrics.Metrics)(nil)

func scrape(t *testing.T, p *metrics.Provider) string {
	t.Helper()

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestProvider(t *testing.T) {
	t.Parallel()

	t.Run("exports connect-flow counters", func(t *testing.T) {
		t.Parallel()

		p, err := metrics.New(metrics.Config{Enabled: true, ServiceName: "crmlink-test"})
		require.NoError(t, err)
		t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

		ctx := context.Background()
		m := p.Metrics()
		m.AuthorizationStarted(ctx, "contact")
		m.CallbackCompleted(ctx, integration.OutcomeSuccess)
		m.ItemsListed(ctx, "company", integration.OutcomeSuccess, 3)
		m.ItemsListed(ctx, "calendar", integration.OutcomeUnsupportedType, 0)

		body := scrape(t, p)
		require.Contains(t, body, "hubspot_authorizations_started_total")
		require.Contains(t, body, "hubspot_oauth_callbacks_total")
		require.Contains(t, body, `outcome="success"`)
		require.Contains(t, body, "hubspot_items_returned_total")
		require.Contains(t, body, `item_type="other"`)
		require.NotContains(t, body, `item_type="calendar"`)
	})

	t.Run("providers do not share registries", func(t *testing.T) {
		t.Parallel()

		a, err := metrics.New(metrics.Config{Enabled: true})
		require.NoError(t, err)
		b, err := metrics.New(metrics.Config{Enabled: true})
		require.NoError(t, err)

		a.Metrics().CallbackCompleted(context.Background(), integration.OutcomeInvalidState)

		require.Contains(t, scrape(t, a), `outcome="invalid_state"`)
		require.NotContains(t, scrape(t, b), `outcome="invalid_state"`)
	})

	t.Run("disabled provider records into no-op meter", func(t *testing.T) {
		t.Parallel()

		p, err := metrics.New(metrics.Config{Enabled: false})
		require.NoError(t, err)
		require.False(t, p.Enabled())
		require.NotPanics(t, func() {
			p.Metrics().CallbackCompleted(context.Background(), integration.OutcomeSuccess)
		})

		rec := httptest.NewRecorder()
		p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.NoError(t, p.Shutdown(context.Background()))
	})
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	p, err := metrics.New(metrics.Config{Enabled: true})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(p.Metrics().Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	body := scrape(t, p)
	require.Contains(t, body, `route="/items/{id}"`)
	require.Contains(t, body, `status="418"`)
}
