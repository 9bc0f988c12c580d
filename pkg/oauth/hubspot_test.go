package oauth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/crmlink/pkg/oauth"
)

var _ oauth.Provider = (*oauth.HubSpotProvider)(nil)

func newTestProvider(t *testing.T, handler http.Handler) *oauth.HubSpotProvider {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	p, err := oauth.NewHubSpotProvider(oauth.HubSpotConfig{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		RedirectURL:  "https://example.com/callback",
		TokenURL:     ts.URL + "/oauth/v1/token",
		APIBaseURL:   ts.URL + "/crm/v3",
	}, oauth.WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	return p
}

func TestNewHubSpotProvider(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		p, err := oauth.NewHubSpotProvider(oauth.HubSpotConfig{
			ClientID:     "test-id",
			ClientSecret: "test-secret",
		})
		require.NoError(t, err)
		require.NotNil(t, p)
		require.Equal(t, "hubspot", p.Name())
	})

	t.Run("missing client ID", func(t *testing.T) {
		t.Parallel()
		p, err := oauth.NewHubSpotProvider(oauth.HubSpotConfig{ClientSecret: "test-secret"})
		require.ErrorIs(t, err, oauth.ErrMissingClientID)
		require.Nil(t, p)
	})

	t.Run("missing client secret", func(t *testing.T) {
		t.Parallel()
		p, err := oauth.NewHubSpotProvider(oauth.HubSpotConfig{ClientID: "test-id"})
		require.ErrorIs(t, err, oauth.ErrMissingClientSecret)
		require.Nil(t, p)
	})
}

func TestHubSpotProvider_AuthCodeURL(t *testing.T) {
	t.Parallel()

	p, err := oauth.NewHubSpotProvider(oauth.HubSpotConfig{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		RedirectURL:  "https://example.com/callback",
	})
	require.NoError(t, err)

	u, err := url.Parse(p.AuthCodeURL("test-state"))
	require.NoError(t, err)

	require.Equal(t, "app.hubspot.com", u.Host)
	require.Equal(t, "/oauth/authorize", u.Path)

	q := u.Query()
	require.Equal(t, "test-id", q.Get("client_id"))
	require.Equal(t, "https://example.com/callback", q.Get("redirect_uri"))
	require.Equal(t, "crm.objects.contacts.read crm.objects.companies.read", q.Get("scope"))
	require.Equal(t, "test-state", q.Get("state"))
	require.Empty(t, q.Get("client_secret"), "secret must never appear in the consent URL")
}

func TestHubSpotProvider_Exchange(t *testing.T) {
	t.Parallel()

	t.Run("sends form-encoded credentials and parses tokens", func(t *testing.T) {
		t.Parallel()

		var (
			method string
			form   url.Values
		)
		p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method = r.Method
			_ = r.ParseForm()
			form = r.PostForm
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "access-1",
				"refresh_token": "refresh-1",
				"expires_in":    1800,
				"token_type":    "bearer",
			})
		}))

		token, err := p.Exchange(context.Background(), "code-1")
		require.NoError(t, err)
		require.Equal(t, "access-1", token.AccessToken)
		require.Equal(t, "refresh-1", token.RefreshToken)
		require.Equal(t, 1800, int(oauth.TokenLifetime(token).Seconds()))

		require.Equal(t, http.MethodPost, method)
		require.Equal(t, "authorization_code", form.Get("grant_type"))
		require.Equal(t, "test-id", form.Get("client_id"))
		require.Equal(t, "test-secret", form.Get("client_secret"))
		require.Equal(t, "https://example.com/callback", form.Get("redirect_uri"))
		require.Equal(t, "code-1", form.Get("code"))
	})

	t.Run("forwards PKCE verifier", func(t *testing.T) {
		t.Parallel()

		var verifier string
		p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			verifier = r.FormValue("code_verifier")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "a", "expires_in": 3600})
		}))

		_, err := p.Exchange(context.Background(), "code", oauth2.VerifierOption("verifier-123"))
		require.NoError(t, err)
		require.Equal(t, "verifier-123", verifier)
	})

	t.Run("rejected code", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
		}))

		token, err := p.Exchange(context.Background(), "bad-code")
		require.ErrorIs(t, err, oauth.ErrExchangeFailed)
		require.Nil(t, token)

		var retrieveErr *oauth2.RetrieveError
		require.True(t, errors.As(err, &retrieveErr))
	})

	t.Run("non-200 success status", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "a", "expires_in": 3600})
		}))

		token, err := p.Exchange(context.Background(), "code")
		require.ErrorIs(t, err, oauth.ErrExchangeFailed)
		require.ErrorIs(t, err, oauth.ErrUnexpectedStatus)
		require.Nil(t, token)
	})

	t.Run("missing access token", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"refresh_token": "r", "expires_in": 3600})
		}))

		_, err := p.Exchange(context.Background(), "code")
		require.ErrorIs(t, err, oauth.ErrExchangeFailed)
	})

	t.Run("missing expires_in", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "a"})
		}))

		_, err := p.Exchange(context.Background(), "code")
		require.ErrorIs(t, err, oauth.ErrExchangeFailed)
		require.ErrorIs(t, err, oauth.ErrMissingExpiry)
	})
}

func TestHubSpotProvider_ListObjects(t *testing.T) {
	t.Parallel()

	t.Run("returns raw results with bearer auth", func(t *testing.T) {
		t.Parallel()

		var gotAuth, gotPath string
		p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"results":[{"id":"1","properties":{"name":"Acme"}},{"id":"2"}]}`))
		}))

		records, err := p.ListObjects(context.Background(), "access-1", oauth.ObjectCompanies)
		require.NoError(t, err)
		require.Len(t, records, 2)
		require.JSONEq(t, `{"id":"1","properties":{"name":"Acme"}}`, string(records[0]))
		require.Equal(t, "Bearer access-1", gotAuth)
		require.Equal(t, "/crm/v3/objects/companies", gotPath)
	})

	t.Run("missing results array yields empty slice", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))

		records, err := p.ListObjects(context.Background(), "token", oauth.ObjectContacts)
		require.NoError(t, err)
		require.Empty(t, records)
	})

	t.Run("non-OK status", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"expired"}`))
		}))

		_, err := p.ListObjects(context.Background(), "token", oauth.ObjectContacts)
		require.ErrorIs(t, err, oauth.ErrRequestFailed)
		require.Contains(t, err.Error(), "status=401")
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))

		_, err := p.ListObjects(context.Background(), "token", oauth.ObjectContacts)
		require.ErrorIs(t, err, oauth.ErrDecodeFailed)
	})

	t.Run("unknown object type", func(t *testing.T) {
		t.Parallel()

		p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))

		_, err := p.ListObjects(context.Background(), "token", "deals")
		require.ErrorIs(t, err, oauth.ErrUnknownObject)
	})
}

func TestTokenLifetime(t *testing.T) {
	t.Parallel()

	require.Zero(t, oauth.TokenLifetime(nil))
	require.Zero(t, oauth.TokenLifetime(&oauth2.Token{AccessToken: "a"}))
	require.Equal(t, 3600, int(oauth.TokenLifetime(&oauth2.Token{ExpiresIn: 3600}).Seconds()))
}
