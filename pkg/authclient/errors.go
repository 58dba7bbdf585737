package authclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrRequestFailed indicates the request never produced a response
	// (connection refused, timeout, DNS failure)
	ErrRequestFailed = errors.New("authclient.request_failed")

	// ErrMalformedResponse indicates a 2xx response whose body did not
	// match the documented shape
	ErrMalformedResponse = errors.New("authclient.malformed_response")
)

// APIError is a non-2xx response from the remote authentication service.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("authclient: remote returned %d", e.StatusCode)
	}
	return fmt.Sprintf("authclient: remote returned %d: %s", e.StatusCode, e.Message)
}

// IsCredentialRejected reports whether err is a 401-class rejection of the
// presented credentials or token. Always recoverable by logging in again.
func IsCredentialRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsValidation reports whether err is a 4xx rejection of the submitted
// data, other than a credential rejection. These never mutate the session.
func IsValidation(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 &&
		apiErr.StatusCode != http.StatusUnauthorized
}
