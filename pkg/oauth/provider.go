package oauth

import (
	"context"
	"encoding/json"

	"golang.org/x/oauth2"
)

// Object types exposed by the CRM listing endpoints.
const (
	ObjectContacts  = "contacts"
	ObjectCompanies = "companies"
)

// Provider abstracts the provider operations the connect flow needs.
type Provider interface {
	// Name returns the provider identifier (e.g., "hubspot").
	Name() string

	// AuthCodeURL generates the authorization URL for the consent screen.
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string

	// Exchange trades an authorization code for tokens.
	// Implementations must not retry: authorization codes are single-use.
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)

	// ListObjects returns the raw records of one CRM object type, as
	// found in the "results" array of the listing response.
	ListObjects(ctx context.Context, accessToken, object string) ([]json.RawMessage, error)
}
