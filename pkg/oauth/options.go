package oauth

import "net/http"

// Option configures an OAuth provider.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient sets a custom HTTP client for token and API requests.
// Tests use it to point the provider at an httptest server; production code
// can inject instrumented transports. When set, it replaces the default
// client and its HubSpotConfig.HTTPTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}
