package integration

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/crmlink/pkg/kvstore"
)

// CredentialBundle is the connection descriptor handed to callers.
// Token fields are never populated from the connection record; they exist so
// a caller-supplied bundle can round-trip through ListItems.
type CredentialBundle struct {
	UserID       string     `json:"user_id"`
	OrgID        string     `json:"org_id"`
	ItemType     string     `json:"item_type"`
	AccessToken  string     `json:"access_token,omitempty"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// Connected reports whether the bundle came from a live connection record.
func (b CredentialBundle) Connected() bool {
	return b.ExpiresAt != nil
}

// GetCredentials returns the stored connection record for (user, org).
// A missing or malformed record yields a default bundle carrying only the
// identity. The returned item type is always the requested one.
func (s *Service) GetCredentials(ctx context.Context, userID, orgID, itemType string) (CredentialBundle, error) {
	if err := validateIdentity(userID, orgID); err != nil {
		return CredentialBundle{}, err
	}

	bundle := CredentialBundle{
		UserID:   userID,
		OrgID:    orgID,
		ItemType: normalizeItemType(itemType),
	}

	raw, err := s.store.Get(ctx, s.keys.credentials(userID, orgID))
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		return bundle, nil
	case err != nil:
		return CredentialBundle{}, errors.Join(ErrStoreUnavailable, err)
	}

	var stored CredentialBundle
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.WarnContext(ctx, "malformed connection record",
			slog.String("user_id", userID),
			slog.String("org_id", orgID),
			slog.String("error", err.Error()),
		)
		return bundle, nil
	}

	bundle.ExpiresAt = stored.ExpiresAt
	return bundle, nil
}
