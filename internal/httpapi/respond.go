package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/crmlink/middlewares"
)

// maxFormBytes caps form bodies. A credentials bundle is a few hundred bytes.
const maxFormBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	he := toHTTPError(err)

	level := slog.LevelWarn
	if he.Code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", he.Code),
		slog.String("error", err.Error()),
	)

	writeJSON(w, he.Code, errorBody{
		Detail:    he.Message,
		Code:      he.ErrorCode,
		RequestID: middlewares.GetRequestID(r.Context()),
	})
}

// parseForm accepts both urlencoded and multipart bodies. The connect UI
// posts FormData, which browsers send as multipart.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	err := r.ParseMultipartForm(maxFormBytes)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return badRequest("Malformed form body")
	}
	return nil
}
