package api

import (
	"errors"
	"fmt"
)

// Kind classifies client errors so callers can branch without
// inspecting status codes.
type Kind string

const (
	// KindAuthRequired covers 401/403: the session token is missing,
	// expired or insufficient. Never retried automatically.
	KindAuthRequired Kind = "auth_required"
	// KindServer covers any other non-success response.
	KindServer Kind = "server_error"
	// KindTransport covers connection-level failures before a status
	// code was received.
	KindTransport Kind = "transport_error"
	// KindDecode covers a success status with a body that does not
	// match the expected schema.
	KindDecode Kind = "malformed_response"
)

// Error is the single error type returned by the Client.
type Error struct {
	Kind    Kind
	Status  int // HTTP status, 0 for transport failures
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsAuthRequired reports whether err is an authentication failure.
func IsAuthRequired(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == KindAuthRequired
}
