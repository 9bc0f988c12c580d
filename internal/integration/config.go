package integration

import "time"

const (
	defaultStateTTL     = 10 * time.Minute
	defaultExpiryMargin = 60 * time.Second
	minStateSecretLen   = 32
)

// Config holds the connect-flow settings.
// Embed it in the application config for env parsing with caarlos0/env.
type Config struct {
	// StateSecret is the HMAC key used to sign authorization state tokens.
	StateSecret string `env:"STATE_SECRET,required"`
	// StateTTL bounds how long a consent page may stay open.
	StateTTL time.Duration `env:"STATE_TTL" envDefault:"10m"`
	// ExpiryMargin is subtracted from the provider's expires_in so a token
	// is never read after the provider already considers it stale.
	ExpiryMargin time.Duration `env:"TOKEN_EXPIRY_MARGIN" envDefault:"60s"`
	// UsePKCE adds an S256 code challenge to the consent URL and sends the
	// stored verifier on exchange.
	UsePKCE bool `env:"HUBSPOT_USE_PKCE" envDefault:"false"`
}

func (c Config) withDefaults() Config {
	if c.StateTTL <= 0 {
		c.StateTTL = defaultStateTTL
	}
	if c.ExpiryMargin < 0 {
		c.ExpiryMargin = defaultExpiryMargin
	}
	return c
}
