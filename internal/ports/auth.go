package ports

// Package ports defines interfaces (hexagonal ports) for session-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
)

// TokenStore persists the single bearer token of the operator session.
// It performs no validation; it is purely storage.
type TokenStore interface {
	// Load returns the persisted token and whether one is present.
	Load(ctx context.Context) (token string, ok bool, err error)
	// Save persists token, replacing any prior value.
	Save(ctx context.Context, token string) error
	// Clear removes the persisted token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// TokenDecoder turns a compact bearer token into claims without verifying it.
type TokenDecoder interface {
	// Decode returns *domainauth.DecodeError when the token is malformed.
	Decode(token string) (domainauth.Claims, error)
}

// LoginRequest carries operator credentials for the backend login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the backend's answer to a successful login.
type LoginResponse struct {
	Token string          `json:"token"`
	User  domainauth.User `json:"user"`
}

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	// Login returns *domainauth.AuthFailure when the backend rejects the
	// credentials or cannot be reached.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}

// ActivitySource delivers operator interaction signals.
type ActivitySource interface {
	// Subscribe registers fn and returns a function that removes it.
	Subscribe(fn func(domainauth.ActivityKind)) (unsubscribe func())
}
