package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when a credential is requested without a live session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionExpired is returned when the live token has passed its expiry.
	ErrSessionExpired = errors.New("session expired")
)

// DecodeError reports a malformed or unparseable bearer token.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode token: %s: %v", e.Reason, e.Err)
	}
	return "decode token: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AuthFailure reports a login rejected by the backend or an unreachable backend.
// Message is safe to show on the login form.
type AuthFailure struct {
	Message string
	Status  int // 0 when the backend could not be reached
	Err     error
}

func (e *AuthFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Message, e.Err)
	}
	return "authentication failed: " + e.Message
}

func (e *AuthFailure) Unwrap() error { return e.Err }
