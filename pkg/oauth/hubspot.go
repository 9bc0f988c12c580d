package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	// HubSpotProviderName is the identifier for the HubSpot provider.
	HubSpotProviderName = "hubspot"

	defaultHubSpotAuthURL  = "https://app.hubspot.com/oauth/authorize"
	defaultHubSpotTokenURL = "https://api.hubspot.com/oauth/v1/token"
	defaultHubSpotAPIBase  = "https://api.hubspot.com/crm/v3"
	defaultHTTPTimeout     = 15 * time.Second

	maxListResponseBytes = 1 << 20
	maxErrorBodyBytes    = 4 << 10
)

// HubSpotDefaultScopes returns the read scopes needed to list contacts and companies.
func HubSpotDefaultScopes() []string {
	return []string{"crm.objects.contacts.read", "crm.objects.companies.read"}
}

// HubSpotProvider implements Provider for HubSpot.
type HubSpotProvider struct {
	config      *oauth2.Config
	httpClient  *http.Client
	tokenClient *http.Client
	apiBase     string
}

// NewHubSpotProvider creates a new HubSpot provider.
// Returns an error if ClientID or ClientSecret is empty.
func NewHubSpotProvider(cfg HubSpotConfig, opts ...Option) (*HubSpotProvider, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = HubSpotDefaultScopes()
	}

	httpClient := o.httpClient
	if httpClient == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &HubSpotProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  orDefault(cfg.AuthURL, defaultHubSpotAuthURL),
				TokenURL: orDefault(cfg.TokenURL, defaultHubSpotTokenURL),
				// HubSpot expects client_id and client_secret in the form body.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient:  httpClient,
		tokenClient: strictTokenClient(httpClient),
		apiBase:     strings.TrimRight(orDefault(cfg.APIBaseURL, defaultHubSpotAPIBase), "/"),
	}, nil
}

// Name returns the provider identifier.
func (p *HubSpotProvider) Name() string {
	return HubSpotProviderName
}

// AuthCodeURL generates the authorization URL.
func (p *HubSpotProvider) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return p.config.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens.
// Any status other than 200 or a body without access_token yields ErrExchangeFailed.
// A response without a positive expires_in yields ErrMissingExpiry, since the
// caller cannot bound the credential lifetime without it.
func (p *HubSpotProvider) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.tokenClient)

	token, err := p.config.Exchange(ctx, code, opts...)
	if err != nil {
		return nil, errors.Join(ErrExchangeFailed, err)
	}

	if TokenLifetime(token) <= 0 {
		return nil, errors.Join(ErrExchangeFailed, ErrMissingExpiry)
	}

	return token, nil
}

// ListObjects fetches one page of CRM objects with the given access token.
func (p *HubSpotProvider) ListObjects(ctx context.Context, accessToken, object string) ([]json.RawMessage, error) {
	if object != ObjectContacts && object != ObjectCompanies {
		return nil, errors.Join(ErrUnknownObject, fmt.Errorf("object=%q", object))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiBase+"/objects/"+object, nil)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, fmt.Errorf("fetch %s: %w", object, err))
	}
	if resp == nil {
		return nil, errors.Join(ErrNilResponse, fmt.Errorf("unexpected nil response from %s endpoint", object))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, errors.Join(ErrRequestFailed, fmt.Errorf("%s request failed: status=%d body=%s", object, resp.StatusCode, body))
	}

	var page hubspotListResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxListResponseBytes)).Decode(&page); err != nil {
		return nil, errors.Join(ErrDecodeFailed, fmt.Errorf("decode %s: %w", object, err))
	}

	return page.Results, nil
}

// TokenLifetime returns the provider-reported lifetime of token.
// It prefers the raw expires_in field and falls back to the computed expiry.
// Returns zero when the lifetime is unknown.
func TokenLifetime(token *oauth2.Token) time.Duration {
	if token == nil {
		return 0
	}
	if token.ExpiresIn > 0 {
		return time.Duration(token.ExpiresIn) * time.Second
	}
	switch v := token.Extra("expires_in").(type) {
	case float64:
		return time.Duration(v) * time.Second
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	if !token.Expiry.IsZero() {
		return time.Until(token.Expiry).Round(time.Second)
	}
	return 0
}

// strictTokenClient copies c so that token responses with a 2xx status other
// than 200 fail; x/oauth2 alone accepts any 2xx.
func strictTokenClient(c *http.Client) *http.Client {
	tc := *c
	tc.Transport = statusOKTransport{base: c.Transport}
	return &tc
}

type statusOKTransport struct {
	base http.RoundTripper
}

func (t statusOKTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 && resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status=%d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return resp, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// hubspotListResponse is the envelope of the CRM v3 object listing endpoints.
type hubspotListResponse struct {
	Results []json.RawMessage `json:"results"`
}
