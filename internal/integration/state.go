package integration

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/crmlink/pkg/kvstore"
)

// stateClaims is the payload of the authorization state token.
// The nonce travels as the registered jti claim.
type stateClaims struct {
	Provider string `json:"prv"`
	UserID   string `json:"uid"`
	OrgID    string `json:"oid"`
	ItemType string `json:"itm"`
	jwt.RegisteredClaims
}

// Callback is the validated result of a provider redirect.
type Callback struct {
	Identity
	Code string
}

// BeginAuthorization mints a state token bound to the caller and returns the
// provider consent URL. Any earlier pending authorization for the same
// (user, org) pair is replaced.
func (s *Service) BeginAuthorization(ctx context.Context, userID, orgID, itemType string) (string, error) {
	if err := validateIdentity(userID, orgID); err != nil {
		return "", err
	}
	itemType = normalizeItemType(itemType)

	state, err := s.signState(userID, orgID, itemType)
	if err != nil {
		return "", err
	}

	// Verifier first: a stored state must always have its verifier.
	var opts []oauth2.AuthCodeOption
	if s.cfg.UsePKCE {
		verifier := oauth2.GenerateVerifier()
		if err := s.store.Put(ctx, s.keys.codeVerifier(orgID, userID), verifier, s.cfg.StateTTL); err != nil {
			s.logger.ErrorContext(ctx, "failed to store PKCE verifier",
				slog.String("user_id", userID),
				slog.String("org_id", orgID),
				slog.String("error", err.Error()),
			)
			return "", errors.Join(ErrStoreUnavailable, err)
		}
		opts = append(opts, oauth2.S256ChallengeOption(verifier))
	}

	if err := s.store.Put(ctx, s.keys.state(orgID, userID), state, s.cfg.StateTTL); err != nil {
		s.logger.ErrorContext(ctx, "failed to store authorization state",
			slog.String("user_id", userID),
			slog.String("org_id", orgID),
			slog.String("error", err.Error()),
		)
		return "", errors.Join(ErrStoreUnavailable, err)
	}

	s.recorder.AuthorizationStarted(ctx, itemType)
	s.logger.InfoContext(ctx, "authorization started",
		slog.String("user_id", userID),
		slog.String("org_id", orgID),
		slog.String("item_type", itemType),
	)

	return s.provider.AuthCodeURL(state, opts...), nil
}

// ValidateCallback checks the state and code of a provider redirect.
// The state must verify, name this provider, and match the value stored for
// the (user, org) pair it carries. The stored state is not consumed here.
func (s *Service) ValidateCallback(ctx context.Context, query url.Values) (Callback, error) {
	raw := query.Get("state")
	if raw == "" {
		return Callback{}, errors.Join(ErrInvalidState, errors.New("state parameter is missing"))
	}

	claims, err := s.parseState(raw)
	if err != nil {
		return Callback{}, errors.Join(ErrInvalidState, err)
	}

	id := Identity{
		UserID:   claims.UserID,
		OrgID:    claims.OrgID,
		ItemType: normalizeItemType(claims.ItemType),
	}

	stored, err := s.store.Get(ctx, s.keys.state(id.OrgID, id.UserID))
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		return Callback{}, errors.Join(ErrInvalidState, errors.New("no pending authorization"))
	case err != nil:
		return Callback{}, errors.Join(ErrStoreUnavailable, err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(raw)) != 1 {
		return Callback{}, errors.Join(ErrInvalidState, errors.New("state does not match pending authorization"))
	}

	code := query.Get("code")
	if code == "" {
		return Callback{}, ErrMissingCode
	}

	return Callback{Identity: id, Code: code}, nil
}

func (s *Service) signState(userID, orgID, itemType string) (string, error) {
	now := s.now()
	claims := stateClaims{
		Provider: s.provider.Name(),
		UserID:   userID,
		OrgID:    orgID,
		ItemType: itemType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.StateTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return signed, nil
}

func (s *Service) parseState(raw string) (*stateClaims, error) {
	claims := &stateClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}

	if claims.Provider != s.provider.Name() {
		return nil, fmt.Errorf("state issued for provider %q", claims.Provider)
	}
	if claims.ID == "" {
		return nil, errors.New("state nonce is missing")
	}
	if err := validateIdentity(claims.UserID, claims.OrgID); err != nil {
		return nil, err
	}
	return claims, nil
}

func validateIdentity(userID, orgID string) error {
	if userID == "" || orgID == "" {
		return ErrMissingIdentity
	}
	if strings.Contains(userID, ":") || strings.Contains(orgID, ":") {
		return ErrInvalidIdentity
	}
	return nil
}
