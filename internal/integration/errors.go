package integration

import "errors"

// Errors returned by the authorization path. The listing path never returns
// errors; it reports failures inside ItemsResult.
var (
	// ErrInvalidState is returned when the callback state is missing, malformed,
	// expired, or does not match the state stored for the (user, org) pair.
	ErrInvalidState = errors.New("integration: invalid state")

	// ErrMissingCode is returned when the callback carries no authorization code.
	ErrMissingCode = errors.New("integration: missing authorization code")

	// ErrMissingIdentity is returned when user or organization is empty.
	ErrMissingIdentity = errors.New("integration: user_id and org_id are required")

	// ErrInvalidIdentity is returned when an identifier contains the key delimiter.
	ErrInvalidIdentity = errors.New("integration: user_id and org_id must not contain ':'")

	// ErrTokenExchangeFailed is returned when the provider rejects the code.
	// No credentials are stored.
	ErrTokenExchangeFailed = errors.New("integration: token exchange failed")

	// ErrTokenExpired is returned when the provider grants a token whose
	// lifetime does not exceed the expiry margin. Nothing is stored.
	ErrTokenExpired = errors.New("integration: token expires within safety margin")

	// ErrStoreUnavailable wraps key-value store failures on the authorization path.
	ErrStoreUnavailable = errors.New("integration: credential store unavailable")

	// ErrMissingStateSecret is returned by New when the state signing key is
	// empty or too short.
	ErrMissingStateSecret = errors.New("integration: state secret must be at least 32 bytes")
)
