// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrUnauthorized       = errors.New("session is not authenticated")
	ErrSessionExpired     = errors.New("session token has expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedEnvelope  = errors.New("malformed response envelope")
	ErrNotFound           = errors.New("resource not found")
	ErrServerRejected     = errors.New("server rejected the request")
	ErrUnknownTab         = errors.New("unknown tab for this entity")
)

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
