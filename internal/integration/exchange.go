package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/crmlink/pkg/kvstore"
	"github.com/dmitrymomot/crmlink/pkg/oauth"
)

// CompleteAuthorization validates a provider redirect and exchanges its code
// for tokens. It returns the identity the flow was bound to.
func (s *Service) CompleteAuthorization(ctx context.Context, query url.Values) (Identity, error) {
	cb, err := s.ValidateCallback(ctx, query)
	if err != nil {
		s.recorder.CallbackCompleted(ctx, outcomeOf(err))
		s.logger.WarnContext(ctx, "authorization callback rejected", slog.String("error", err.Error()))
		return Identity{}, err
	}

	if err := s.ExchangeCodeForTokens(ctx, cb.Code, cb.Identity); err != nil {
		s.recorder.CallbackCompleted(ctx, outcomeOf(err))
		return Identity{}, err
	}

	s.recorder.CallbackCompleted(ctx, OutcomeSuccess)
	return cb.Identity, nil
}

// ExchangeCodeForTokens trades code for tokens and stores them for id.
//
// All credential entries share one TTL: the provider lifetime minus the
// configured margin. A lifetime that does not exceed the margin stores
// nothing and returns ErrTokenExpired. Pending state is cleared once the code
// has been spent, whether or not credentials were stored.
func (s *Service) ExchangeCodeForTokens(ctx context.Context, code string, id Identity) error {
	if code == "" {
		return ErrMissingCode
	}
	if err := validateIdentity(id.UserID, id.OrgID); err != nil {
		return err
	}
	id.ItemType = normalizeItemType(id.ItemType)

	log := s.logger.With(
		slog.String("user_id", id.UserID),
		slog.String("org_id", id.OrgID),
	)

	opts, err := s.exchangeOptions(ctx, id)
	if err != nil {
		return err
	}

	token, err := s.provider.Exchange(ctx, code, opts...)
	if err != nil {
		log.WarnContext(ctx, "token exchange failed", slog.String("error", err.Error()))
		return errors.Join(ErrTokenExchangeFailed, err)
	}

	ttl := oauth.TokenLifetime(token) - s.cfg.ExpiryMargin
	if ttl <= 0 {
		log.WarnContext(ctx, "granted token expires within safety margin",
			slog.Duration("lifetime", oauth.TokenLifetime(token)),
			slog.Duration("margin", s.cfg.ExpiryMargin),
		)
		s.deleteBestEffort(ctx, log, s.credentialKeys(id)...)
		s.deleteBestEffort(ctx, log, s.pendingKeys(id)...)
		return ErrTokenExpired
	}

	if err := s.storeCredentials(ctx, id, token, ttl); err != nil {
		log.ErrorContext(ctx, "failed to store credentials", slog.String("error", err.Error()))
		return errors.Join(ErrStoreUnavailable, err)
	}

	s.deleteBestEffort(ctx, log, s.pendingKeys(id)...)

	log.InfoContext(ctx, "authorization completed",
		slog.String("item_type", id.ItemType),
		slog.Duration("ttl", ttl),
	)
	return nil
}

// exchangeOptions attaches the stored PKCE verifier, if any.
func (s *Service) exchangeOptions(ctx context.Context, id Identity) ([]oauth2.AuthCodeOption, error) {
	verifier, err := s.store.Get(ctx, s.keys.codeVerifier(id.OrgID, id.UserID))
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return []oauth2.AuthCodeOption{oauth2.VerifierOption(verifier)}, nil
}

func (s *Service) storeCredentials(ctx context.Context, id Identity, token *oauth2.Token, ttl time.Duration) error {
	expiresAt := s.now().Add(ttl).UTC()
	record, err := json.Marshal(CredentialBundle{
		UserID:    id.UserID,
		OrgID:     id.OrgID,
		ItemType:  id.ItemType,
		ExpiresAt: &expiresAt,
	})
	if err != nil {
		return fmt.Errorf("encode connection record: %w", err)
	}

	entries := []struct {
		key   string
		value string
	}{
		{s.keys.accessToken(id.OrgID, id.UserID), token.AccessToken},
		{s.keys.refreshToken(id.OrgID, id.UserID), token.RefreshToken},
		{s.keys.itemType(id.OrgID, id.UserID), id.ItemType},
		{s.keys.credentials(id.UserID, id.OrgID), string(record)},
	}
	for _, e := range entries {
		if err := s.store.Put(ctx, e.key, e.value, ttl); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) credentialKeys(id Identity) []string {
	return []string{
		s.keys.accessToken(id.OrgID, id.UserID),
		s.keys.refreshToken(id.OrgID, id.UserID),
		s.keys.itemType(id.OrgID, id.UserID),
		s.keys.credentials(id.UserID, id.OrgID),
	}
}

func (s *Service) pendingKeys(id Identity) []string {
	return []string{
		s.keys.state(id.OrgID, id.UserID),
		s.keys.codeVerifier(id.OrgID, id.UserID),
	}
}

// deleteBestEffort removes keys concurrently, detached from ctx cancellation.
// Failures are logged only.
func (s *Service) deleteBestEffort(ctx context.Context, log *slog.Logger, keys ...string) {
	ctx = context.WithoutCancel(ctx)

	var g errgroup.Group
	for _, key := range keys {
		g.Go(func() error {
			if err := s.store.Delete(ctx, key); err != nil {
				log.WarnContext(ctx, "cleanup delete failed",
					slog.String("key", key),
					slog.String("error", err.Error()),
				)
				return err
			}
			return nil
		})
	}
	_ = g.Wait()
}

// outcomeOf maps a connect-flow error to a metrics label.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrStoreUnavailable):
		return OutcomeStoreUnavailable
	case errors.Is(err, ErrInvalidState):
		return OutcomeInvalidState
	case errors.Is(err, ErrMissingCode):
		return OutcomeMissingCode
	case errors.Is(err, ErrTokenExpired):
		return OutcomeTokenExpired
	default:
		return OutcomeExchangeFailed
	}
}
