package integration

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/crmlink/pkg/kvstore"
	"github.com/dmitrymomot/crmlink/pkg/logger"
	"github.com/dmitrymomot/crmlink/pkg/oauth"
)

// Item types accepted by the connect flow and the listing path.
const (
	ItemTypeContact = "contact"
	ItemTypeCompany = "company"
)

// providerLabel is the human-readable provider name used in listing errors.
const providerLabel = "HubSpot"

// Outcome labels passed to Recorder.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidState       = "invalid_state"
	OutcomeMissingCode        = "missing_code"
	OutcomeExchangeFailed     = "exchange_failed"
	OutcomeTokenExpired       = "token_expired"
	OutcomeStoreUnavailable   = "store_unavailable"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeUnsupportedType    = "unsupported_type"
	OutcomeNotConnected       = "not_connected"
	OutcomeProviderError      = "provider_error"
)

// Recorder receives connect-flow and listing events for metrics.
type Recorder interface {
	AuthorizationStarted(ctx context.Context, itemType string)
	CallbackCompleted(ctx context.Context, outcome string)
	ItemsListed(ctx context.Context, itemType, outcome string, count int)
}

type nopRecorder struct{}

func (nopRecorder) AuthorizationStarted(context.Context, string)     {}
func (nopRecorder) CallbackCompleted(context.Context, string)        {}
func (nopRecorder) ItemsListed(context.Context, string, string, int) {}

// Identity is the (user, organization, item type) triple a flow is bound to.
type Identity struct {
	UserID   string `json:"user_id"`
	OrgID    string `json:"org_id"`
	ItemType string `json:"item_type"`
}

// Service implements the provider connect flow and the read path on top of
// an expiring key-value store.
type Service struct {
	provider oauth.Provider
	store    kvstore.Store
	cfg      Config
	keys     keys
	secret   []byte
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithClock overrides the time source used for state expiry and
// connection record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Service.
func New(provider oauth.Provider, store kvstore.Store, cfg Config, opts ...Option) (*Service, error) {
	if len(cfg.StateSecret) < minStateSecretLen {
		return nil, ErrMissingStateSecret
	}

	s := &Service{
		provider: provider,
		store:    store,
		cfg:      cfg.withDefaults(),
		keys:     keys{provider: provider.Name()},
		secret:   []byte(cfg.StateSecret),
		logger:   logger.NewNope(),
		recorder: nopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("provider", provider.Name()))

	return s, nil
}

func normalizeItemType(itemType string) string {
	if itemType == "" {
		return ItemTypeContact
	}
	return itemType
}
