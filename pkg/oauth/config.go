package oauth

import "time"

// HubSpotConfig holds HubSpot OAuth and CRM API configuration.
type HubSpotConfig struct {
	ClientID     string        `env:"HUBSPOT_CLIENT_ID,required"`
	ClientSecret string        `env:"HUBSPOT_CLIENT_SECRET,required"`
	RedirectURL  string        `env:"HUBSPOT_REDIRECT_URL" envDefault:"http://localhost:8000/integrations/hubspot/oauth2callback"`
	Scopes       []string      `env:"HUBSPOT_SCOPES" envSeparator:","`
	AuthURL      string        `env:"HUBSPOT_AUTH_URL" envDefault:"https://app.hubspot.com/oauth/authorize"`
	TokenURL     string        `env:"HUBSPOT_TOKEN_URL" envDefault:"https://api.hubspot.com/oauth/v1/token"`
	APIBaseURL   string        `env:"HUBSPOT_API_BASE" envDefault:"https://api.hubspot.com/crm/v3"`
	HTTPTimeout  time.Duration `env:"HUBSPOT_HTTP_TIMEOUT" envDefault:"15s"`
}
