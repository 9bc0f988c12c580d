package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/crmlink/pkg/kvstore"
	"github.com/dmitrymomot/crmlink/pkg/oauth"
	"github.com/dmitrymomot/crmlink/pkg/sanitizer"
)

// Listing error messages. They are part of the response contract.
const (
	msgInvalidCredentials = "Invalid credentials format"
	msgStoreUnavailable   = "Credential store unavailable"
)

var providerObjects = map[string]string{
	ItemTypeContact: oauth.ObjectContacts,
	ItemTypeCompany: oauth.ObjectCompanies,
}

// NormalizedItem is a provider record projected onto a stable shape.
type NormalizedItem struct {
	ID     string
	Type   string
	Name   string
	Email  string
	Phone  string
	Domain string
}

// MarshalJSON emits only the fields that belong to the item's type.
func (i NormalizedItem) MarshalJSON() ([]byte, error) {
	if i.Type == ItemTypeCompany {
		return json.Marshal(struct {
			ID     string `json:"id"`
			Type   string `json:"type"`
			Name   string `json:"name"`
			Domain string `json:"domain"`
		}{i.ID, i.Type, i.Name, i.Domain})
	}
	return json.Marshal(struct {
		ID    string `json:"id"`
		Type  string `json:"type"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}{i.ID, i.Type, i.Name, i.Email, i.Phone})
}

// ItemsResult is either a list of items or a human-readable error.
type ItemsResult struct {
	Items []NormalizedItem
	Error string
}

// Failed reports whether the result carries an error.
func (r ItemsResult) Failed() bool {
	return r.Error != ""
}

// MarshalJSON encodes {"items": [...]} or {"error": "..."}.
func (r ItemsResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(map[string]string{"error": r.Error})
	}
	items := r.Items
	if items == nil {
		items = []NormalizedItem{}
	}
	return json.Marshal(map[string][]NormalizedItem{"items": items})
}

func failed(msg string) ItemsResult {
	return ItemsResult{Error: msg}
}

// listingCredentials is the caller-supplied bundle accepted by ListItems.
type listingCredentials struct {
	UserID         string `json:"user_id"`
	OrgID          string `json:"org_id"`
	ItemType       string `json:"item_type"`
	LegacyItemType string `json:"itemType"`
}

// ListItems lists provider records for the connection described by
// credentials and projects them onto NormalizedItem. A non-empty override
// takes precedence over the item type in the bundle.
//
// Failures are reported in ItemsResult.Error, never as a Go error.
func (s *Service) ListItems(ctx context.Context, credentials, override string) ItemsResult {
	var creds listingCredentials
	if err := json.Unmarshal([]byte(credentials), &creds); err != nil {
		s.recorder.ItemsListed(ctx, "", OutcomeInvalidCredentials, 0)
		return failed(msgInvalidCredentials)
	}

	itemType := firstNonEmpty(override, creds.ItemType, creds.LegacyItemType, ItemTypeContact)

	if creds.UserID == "" || creds.OrgID == "" {
		s.recorder.ItemsListed(ctx, itemType, OutcomeInvalidCredentials, 0)
		return failed(msgInvalidCredentials)
	}

	object, ok := providerObjects[itemType]
	if !ok {
		s.recorder.ItemsListed(ctx, itemType, OutcomeUnsupportedType, 0)
		return failed(fmt.Sprintf("Unsupported item type: %s", itemType))
	}

	log := s.logger.With(
		slog.String("user_id", creds.UserID),
		slog.String("org_id", creds.OrgID),
		slog.String("item_type", itemType),
	)

	token, err := s.store.Get(ctx, s.keys.accessToken(creds.OrgID, creds.UserID))
	switch {
	case errors.Is(err, kvstore.ErrNotFound), err == nil && token == "":
		s.recorder.ItemsListed(ctx, itemType, OutcomeNotConnected, 0)
		return failed(fmt.Sprintf("No %s access token found", providerLabel))
	case err != nil:
		log.ErrorContext(ctx, "failed to read access token", slog.String("error", err.Error()))
		s.recorder.ItemsListed(ctx, itemType, OutcomeStoreUnavailable, 0)
		return failed(msgStoreUnavailable)
	}

	records, err := s.provider.ListObjects(ctx, token, object)
	if err != nil {
		log.ErrorContext(ctx, "provider listing failed", slog.String("error", err.Error()))
		s.recorder.ItemsListed(ctx, itemType, OutcomeProviderError, 0)
		return failed(fmt.Sprintf("Failed to fetch %s from %s", object, providerLabel))
	}

	items := make([]NormalizedItem, 0, len(records))
	for _, rec := range records {
		item, err := project(itemType, rec)
		if err != nil {
			log.DebugContext(ctx, "skipping record", slog.String("error", err.Error()))
			continue
		}
		items = append(items, item)
	}

	s.recorder.ItemsListed(ctx, itemType, OutcomeSuccess, len(items))
	return ItemsResult{Items: items}
}

// providerRecord is the common envelope of a CRM v3 object.
type providerRecord struct {
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
}

// prop returns a property as plain text. Missing and null properties are empty.
func (r providerRecord) prop(name string) string {
	switch v := r.Properties[name].(type) {
	case string:
		return sanitizer.PlainText(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func project(itemType string, raw json.RawMessage) (NormalizedItem, error) {
	var rec providerRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return NormalizedItem{}, fmt.Errorf("decode record: %w", err)
	}
	if rec.ID == "" {
		return NormalizedItem{}, errors.New("record has no id")
	}

	switch itemType {
	case ItemTypeCompany:
		return NormalizedItem{
			ID:     rec.ID,
			Type:   ItemTypeCompany,
			Name:   rec.prop("name"),
			Domain: rec.prop("domain"),
		}, nil
	default:
		return NormalizedItem{
			ID:    rec.ID,
			Type:  ItemTypeContact,
			Name:  strings.TrimSpace(rec.prop("firstname") + " " + rec.prop("lastname")),
			Email: rec.prop("email"),
			Phone: rec.prop("phone"),
		}, nil
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
