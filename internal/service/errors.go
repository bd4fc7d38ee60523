package service

import (
	"context"
	"errors"
	"net"
)

// Sentinel errors shared across services. Transport handlers map these
// to HTTP status codes.
var (
	// ErrQuotaExceeded means the upstream model or search quota ran out
	// and retrying later is the only recovery.
	ErrQuotaExceeded = errors.New("upstream quota exceeded")

	// ErrUpstreamTimeout means an upstream API did not answer within
	// the client's deadline. Distinct from quota so handlers can return
	// 504 instead of 429.
	ErrUpstreamTimeout = errors.New("upstream timeout")

	// ErrSafetyBlocked means the model refused the prompt on safety
	// grounds. Not retryable with the same input.
	ErrSafetyBlocked = errors.New("blocked by safety filter")

	// ErrUnauthorized means the caller does not own the resource.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation means the request payload failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials means email/password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken means the bearer token failed verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNotFound means the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken means registration hit an existing account.
	ErrEmailTaken = errors.New("email already registered")
)

// isTimeoutErr reports whether err is a deadline expiry, either from
// the request context or from the HTTP client's own timeout.
func isTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
