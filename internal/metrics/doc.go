// Package metrics exposes connect-flow and HTTP metrics through an
// OpenTelemetry meter provider backed by a Prometheus exporter.
//
// Each Provider owns its own Prometheus registry, so several providers can
// coexist in one process (tests, embedded servers).
package metrics
