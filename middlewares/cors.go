package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultCORSMaxAge = 12 * time.Hour

var (
	corsMethods = strings.Join([]string{http.MethodGet, http.MethodPost, http.MethodOptions}, ", ")
	corsHeaders = strings.Join([]string{"Origin", "Content-Type", "Accept", "X-Request-ID"}, ", ")
)

type corsConfig struct {
	origins       map[string]struct{}
	anyOrigin     bool
	credentials   bool
	exposeHeaders []string
	maxAge        time.Duration
}

// CORSOption configures the CORS middleware.
type CORSOption func(*corsConfig)

// WithAllowOrigins restricts cross-origin access to the given origins.
// "*" allows any origin. Matching ignores case and a trailing slash.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(c *corsConfig) {
		c.anyOrigin = false
		c.origins = make(map[string]struct{}, len(origins))
		for _, o := range origins {
			o = normalizeOrigin(o)
			switch o {
			case "":
			case "*":
				c.anyOrigin = true
			default:
				c.origins[o] = struct{}{}
			}
		}
	}
}

// WithAllowCredentials lets the browser send cookies and echoes the request
// origin instead of "*".
func WithAllowCredentials() CORSOption {
	return func(c *corsConfig) {
		c.credentials = true
	}
}

// WithExposeHeaders makes response headers readable by frontend scripts.
func WithExposeHeaders(headers ...string) CORSOption {
	return func(c *corsConfig) {
		c.exposeHeaders = append(c.exposeHeaders, headers...)
	}
}

// WithMaxAge sets how long browsers may cache a preflight answer.
func WithMaxAge(d time.Duration) CORSOption {
	return func(c *corsConfig) {
		c.maxAge = d
	}
}

// CORS lets the browser frontend call the integration endpoints from another
// origin. Without options every origin is allowed. Preflight requests from
// allowed origins are answered with 204 and never reach the wrapped handler.
// Requests from other origins pass through without CORS headers and the
// browser blocks the response.
func CORS(opts ...CORSOption) func(http.Handler) http.Handler {
	cfg := &corsConfig{anyOrigin: true, maxAge: defaultCORSMaxAge}
	for _, opt := range opts {
		opt(cfg)
	}

	expose := strings.Join(cfg.exposeHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.maxAge.Seconds()))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !cfg.allows(origin) {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Add("Vary", "Origin")
			if cfg.credentials || !cfg.anyOrigin {
				h.Set("Access-Control-Allow-Origin", origin)
			} else {
				h.Set("Access-Control-Allow-Origin", "*")
			}
			if cfg.credentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if expose != "" {
				h.Set("Access-Control-Expose-Headers", expose)
			}

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				next.ServeHTTP(w, r)
				return
			}

			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			if cfg.maxAge > 0 {
				h.Set("Access-Control-Max-Age", maxAge)
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

func (c *corsConfig) allows(origin string) bool {
	if c.anyOrigin {
		return true
	}
	_, ok := c.origins[normalizeOrigin(origin)]
	return ok
}

func normalizeOrigin(o string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(o), "/"))
}
