// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] always reports OK while the process runs.
// [ReadinessHandler] runs a set of named [Checks] concurrently under a shared
// deadline and reports 503 if any of them fails.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis": redis.Healthcheck(client),
//	    "store": health.StoreCheck(store),
//	}, health.WithLogger(log)))
//
// Responses are plain text ("OK" / "Service Unavailable") unless the client
// asks for JSON with Accept: application/json or ?format=json:
//
//	{"status":"unhealthy","checks":{"store":{"status":"unhealthy","error":"..."}}}
package health
