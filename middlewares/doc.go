// Package middlewares provides net/http middleware used by the HTTP API.
//
// # Request ID
//
// RequestID assigns an ID to each request, reusing one from an upstream
// header when present, and echoes it in the X-Request-ID response header.
// RequestIDExtractor adds it to every log record written with the request
// context:
//
//	log := logger.New(slog.LevelInfo, middlewares.RequestIDExtractor())
//	r.Use(middlewares.RequestID())
//
// # Recover
//
// Recover turns a handler panic into a logged 500 response.
//
//	r.Use(middlewares.Recover(log))
//
// # CORS
//
// CORS answers preflight requests and adds Access-Control headers for
// allowed origins. The connect UI runs on a different origin than the API.
//
//	r.Use(middlewares.CORS(middlewares.WithAllowOrigins("http://localhost:3000")))
package middlewares
