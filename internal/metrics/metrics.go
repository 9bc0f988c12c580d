package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	attrItemType = "item_type"
	attrOutcome  = "outcome"
	attrMethod   = "method"
	attrRoute    = "route"
	attrStatus   = "status"

	// itemTypeOther replaces item types outside the supported set so that
	// caller input cannot grow label cardinality.
	itemTypeOther = "other"
)

// Metrics records connect-flow and HTTP metrics.
// It satisfies integration.Recorder.
type Metrics struct {
	authorizationsTotal metric.Int64Counter
	callbacksTotal      metric.Int64Counter
	listingsTotal       metric.Int64Counter
	itemsReturnedTotal  metric.Int64Counter

	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	m.authorizationsTotal, err = meter.Int64Counter(
		"hubspot_authorizations_started_total",
		metric.WithDescription("Authorization URLs issued"),
		metric.WithUnit("{authorization}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create hubspot_authorizations_started_total counter: %w", err)
	}

	m.callbacksTotal, err = meter.Int64Counter(
		"hubspot_oauth_callbacks_total",
		metric.WithDescription("OAuth callbacks processed, by outcome"),
		metric.WithUnit("{callback}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create hubspot_oauth_callbacks_total counter: %w", err)
	}

	m.listingsTotal, err = meter.Int64Counter(
		"hubspot_listings_total",
		metric.WithDescription("Item listing requests, by item type and outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create hubspot_listings_total counter: %w", err)
	}

	m.itemsReturnedTotal, err = meter.Int64Counter(
		"hubspot_items_returned_total",
		metric.WithDescription("Normalized items returned by listings"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create hubspot_items_returned_total counter: %w", err)
	}

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// AuthorizationStarted records an issued authorization URL.
func (m *Metrics) AuthorizationStarted(ctx context.Context, itemType string) {
	m.authorizationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrItemType, boundItemType(itemType)),
	))
}

// CallbackCompleted records a processed OAuth callback.
func (m *Metrics) CallbackCompleted(ctx context.Context, outcome string) {
	m.callbacksTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrOutcome, outcome),
	))
}

// ItemsListed records a listing request and the number of items it returned.
func (m *Metrics) ItemsListed(ctx context.Context, itemType, outcome string, count int) {
	attrs := metric.WithAttributes(
		attribute.String(attrItemType, boundItemType(itemType)),
		attribute.String(attrOutcome, outcome),
	)
	m.listingsTotal.Add(ctx, 1, attrs)
	if count > 0 {
		m.itemsReturnedTotal.Add(ctx, int64(count), attrs)
	}
}

// RecordHTTPRequest records an HTTP request by route pattern.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrMethod, method),
		attribute.String(attrRoute, route),
		attribute.String(attrStatus, strconv.Itoa(status)),
	)
	m.httpRequestsTotal.Add(ctx, 1, attrs)
	m.httpRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

func boundItemType(itemType string) string {
	switch itemType {
	case "contact", "company", "":
		return itemType
	default:
		return itemTypeOther
	}
}
