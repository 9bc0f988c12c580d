package oauth

import "errors"

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrExchangeFailed is returned when the token endpoint rejects the
	// authorization code or answers with a malformed body.
	ErrExchangeFailed = errors.New("oauth: code exchange failed")

	// ErrUnexpectedStatus is returned when the token endpoint answers with a
	// success status other than 200.
	ErrUnexpectedStatus = errors.New("oauth: unexpected token endpoint status")

	// ErrMissingExpiry is returned when the token response carries no usable expires_in.
	ErrMissingExpiry = errors.New("oauth: token response missing expires_in")

	// ErrUnknownObject is returned when listing an object type the provider does not expose.
	ErrUnknownObject = errors.New("oauth: unknown object type")

	// ErrNilResponse is returned when the OAuth provider returns a nil response.
	ErrNilResponse = errors.New("oauth: nil response from provider")

	// ErrFetchFailed is returned when fetching data from the OAuth provider fails.
	ErrFetchFailed = errors.New("oauth: failed to fetch from provider")

	// ErrRequestFailed is returned when the OAuth provider returns a non-OK status.
	ErrRequestFailed = errors.New("oauth: request returned non-OK status")

	// ErrDecodeFailed is returned when decoding the OAuth provider response fails.
	ErrDecodeFailed = errors.New("oauth: failed to decode response")
)
