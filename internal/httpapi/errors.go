package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/crmlink/internal/integration"
)

// HTTPError is an error with the status code and user-facing message it
// renders as. Err is logged, never exposed.
type HTTPError struct {
	Err       error
	Message   string
	ErrorCode string
	Code      int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// errorBody is the JSON shape of an error response. "detail" matches what
// the connect UI reads.
type errorBody struct {
	Detail    string `json:"detail"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// toHTTPError maps service errors onto HTTP responses.
func toHTTPError(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}

	e := &HTTPError{Err: err}
	switch {
	case errors.Is(err, integration.ErrStoreUnavailable):
		e.Code, e.ErrorCode, e.Message = http.StatusServiceUnavailable, "store_unavailable", "Credential store unavailable"
	case errors.Is(err, integration.ErrMissingIdentity):
		e.Code, e.ErrorCode, e.Message = http.StatusBadRequest, "missing_identity", "user_id and org_id are required"
	case errors.Is(err, integration.ErrInvalidIdentity):
		e.Code, e.ErrorCode, e.Message = http.StatusBadRequest, "invalid_identity", "user_id and org_id must not contain ':'"
	case errors.Is(err, integration.ErrInvalidState):
		e.Code, e.ErrorCode, e.Message = http.StatusBadRequest, "invalid_state", "Invalid state"
	case errors.Is(err, integration.ErrMissingCode):
		e.Code, e.ErrorCode, e.Message = http.StatusBadRequest, "missing_code", "Missing authorization code"
	case errors.Is(err, integration.ErrTokenExchangeFailed):
		e.Code, e.ErrorCode, e.Message = http.StatusBadRequest, "exchange_failed", "Failed to exchange code for access token"
	case errors.Is(err, integration.ErrTokenExpired):
		e.Code, e.ErrorCode, e.Message = http.StatusBadRequest, "token_expired", "Access token expired before it could be stored"
	default:
		e.Code, e.ErrorCode, e.Message = http.StatusInternalServerError, "internal", "Internal server error"
	}
	return e
}

func badRequest(message string) *HTTPError {
	return &HTTPError{Code: http.StatusBadRequest, ErrorCode: "bad_request", Message: message}
}
