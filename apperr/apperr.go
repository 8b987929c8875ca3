// Package apperr contains sentinel errors used across layers for stable error
// mapping. Handlers translate these into HTTP status codes in one place.
package apperr

import (
	"context"
	"errors"
	"net"
)

var (
	// ErrUnauthorized indicates bad credentials or an invalid/expired token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the referenced entity id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation (duplicate username,
	// email, GSTIN or business key).
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates the datastore is unreachable.
	ErrUnavailable = errors.New("unavailable")
)

// IsUnavailable reports whether err looks like a datastore/network outage
// rather than a request-level failure.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
