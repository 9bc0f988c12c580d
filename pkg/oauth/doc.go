// Package oauth provides the HubSpot OAuth2 authorization code flow and
// CRM object listing.
//
// The Provider interface covers what the connect flow needs from an OAuth
// provider: building the consent URL, exchanging an authorization code for
// tokens, and listing CRM records with an access token. HubSpotProvider is
// the implementation, built on golang.org/x/oauth2.
//
// # Usage
//
//	provider, err := oauth.NewHubSpotProvider(oauth.HubSpotConfig{
//		ClientID:     os.Getenv("HUBSPOT_CLIENT_ID"),
//		ClientSecret: os.Getenv("HUBSPOT_CLIENT_SECRET"),
//		RedirectURL:  "https://example.com/integrations/hubspot/oauth2callback",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Consent URL
//	url := provider.AuthCodeURL(state)
//
//	// Callback: exchange the code (never retried, codes are single-use)
//	token, err := provider.Exchange(ctx, code)
//
//	// Listing
//	records, err := provider.ListObjects(ctx, token.AccessToken, oauth.ObjectContacts)
//
// The token request sends client_id and client_secret in the form body,
// which is what HubSpot expects.
//
// # Testing
//
// Point the endpoints at an httptest server and inject its client:
//
//	ts := httptest.NewServer(handler)
//	provider, err := oauth.NewHubSpotProvider(oauth.HubSpotConfig{
//		ClientID:     "id",
//		ClientSecret: "secret",
//		TokenURL:     ts.URL + "/oauth/v1/token",
//		APIBaseURL:   ts.URL + "/crm/v3",
//	}, oauth.WithHTTPClient(ts.Client()))
//
// # Error Handling
//
//   - ErrMissingClientID, ErrMissingClientSecret: constructor misconfiguration
//   - ErrExchangeFailed: token endpoint rejected the code or sent a malformed body
//   - ErrMissingExpiry: token response had no positive expires_in (joined with ErrExchangeFailed)
//   - ErrUnknownObject: listing an unsupported object type
//   - ErrFetchFailed, ErrNilResponse, ErrRequestFailed, ErrDecodeFailed: listing failures
//
// Errors are joined with their cause; use errors.Is to check them.
// ErrRequestFailed messages include the provider's response body for
// diagnosis; do not surface them to end users.
package oauth
