package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/crmlink/internal/integration"
	"github.com/dmitrymomot/crmlink/pkg/logger"
)

// Integration is the connect-flow service the handlers dispatch to.
type Integration interface {
	BeginAuthorization(ctx context.Context, userID, orgID, itemType string) (string, error)
	CompleteAuthorization(ctx context.Context, query url.Values) (integration.Identity, error)
	GetCredentials(ctx context.Context, userID, orgID, itemType string) (integration.CredentialBundle, error)
	ListItems(ctx context.Context, credentials, override string) integration.ItemsResult
}

// Handler serves the HubSpot integration endpoints.
type Handler struct {
	svc    Integration
	logger *slog.Logger
}

// NewHandler creates a Handler. A nil logger discards output.
func NewHandler(svc Integration, log *slog.Logger) *Handler {
	if log == nil {
		log = logger.NewNope()
	}
	return &Handler{svc: svc, logger: log}
}

type authorizeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

// Authorize returns the provider consent URL for the posted identity.
func (h *Handler) Authorize(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.writeError(w, r, err)
		return
	}

	authURL, err := h.svc.BeginAuthorization(r.Context(),
		r.FormValue("user_id"),
		r.FormValue("org_id"),
		r.FormValue("item_type"),
	)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authorizeResponse{AuthorizationURL: authURL})
}

// Callback completes the flow the provider redirected back from and renders
// a page that notifies the opener window and closes itself.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if providerErr := query.Get("error"); providerErr != "" {
		msg := query.Get("error_description")
		if msg == "" {
			msg = providerErr
		}
		h.writeError(w, r, badRequest(msg))
		return
	}

	if _, err := h.svc.CompleteAuthorization(r.Context(), query); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	templ.Handler(
		SuccessPage(SuccessMessage, successCloseAfter),
		templ.WithErrorHandler(h.renderFailed),
	).ServeHTTP(w, r)
}

func (h *Handler) renderFailed(_ *http.Request, err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.logger.ErrorContext(r.Context(), "failed to render success page", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
	})
}

// Credentials returns the connection descriptor for the posted identity.
func (h *Handler) Credentials(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.writeError(w, r, err)
		return
	}

	bundle, err := h.svc.GetCredentials(r.Context(),
		r.FormValue("user_id"),
		r.FormValue("org_id"),
		r.FormValue("item_type"),
	)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bundle)
}

// Load lists normalized items for the posted credentials bundle.
// Listing failures are reported in the body with status 200.
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		h.writeError(w, r, err)
		return
	}

	result := h.svc.ListItems(r.Context(), r.FormValue("credentials"), r.FormValue("item_type"))
	writeJSON(w, http.StatusOK, result)
}
