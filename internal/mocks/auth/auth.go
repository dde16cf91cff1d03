package auth

// Package auth contains simple hand-written test doubles for session ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sigmaport/prodmon-ui/internal/adapters/jwtclaims"
	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.Authenticator = (*MockAuthenticator)(nil)
	_ ports.Authenticator = (*GatedAuthenticator)(nil)
	_ ports.TokenStore    = (*FailingTokenStore)(nil)
)

// TestSigningKey signs tokens minted by the doubles. Nothing verifies it.
var TestSigningKey = []byte("prodmon-test-key")

// MockAuthenticator simulates the backend login endpoint with a fixed
// account table. Tokens are real compact tokens that decode to the account.
type MockAuthenticator struct {
	LoginFunc func(ctx context.Context, req ports.LoginRequest) (ports.LoginResponse, error)

	// Accounts maps username to password and claims.
	Accounts map[string]Account
	// TTL is the token lifetime; defaults to one hour from Now.
	TTL time.Duration
	Now func() time.Time

	mu        sync.Mutex
	callCount int
}

// Account is one login the MockAuthenticator accepts.
type Account struct {
	Password string
	Claims   domainauth.Claims
}

// NewMockAuthenticator creates a MockAuthenticator with one account per role.
func NewMockAuthenticator() *MockAuthenticator {
	return &MockAuthenticator{
		Accounts: map[string]Account{
			"root": {Password: "secret", Claims: domainauth.Claims{
				SubjectID: "1", Username: "root", Role: domainauth.RoleSuperuser,
			}},
			"pabrik": {Password: "secret", Claims: domainauth.Claims{
				SubjectID: "7", Username: "pabrik", Role: domainauth.RoleEntryAdmin,
				AllowedGroups: []string{"Pabrik"},
			}},
			"viewer": {Password: "secret", Claims: domainauth.Claims{
				SubjectID: "9", Username: "viewer", Role: domainauth.RoleViewer,
			}},
		},
	}
}

// Calls returns how many logins were attempted.
func (m *MockAuthenticator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

func (m *MockAuthenticator) Login(ctx context.Context, req ports.LoginRequest) (ports.LoginResponse, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}

	acct, ok := m.Accounts[req.Username]
	if !ok || acct.Password != req.Password {
		return ports.LoginResponse{}, &domainauth.AuthFailure{
			Message: "Username atau password salah",
			Status:  http.StatusUnauthorized,
		}
	}

	now := time.Now()
	if m.Now != nil {
		now = m.Now()
	}
	ttl := m.TTL
	if ttl == 0 {
		ttl = time.Hour
	}
	claims := acct.Claims
	claims.ExpiresAt = now.Add(ttl).Unix()

	token, err := MintToken(claims)
	if err != nil {
		return ports.LoginResponse{}, err
	}
	return ports.LoginResponse{Token: token, User: claims.User()}, nil
}

// MintToken signs claims with TestSigningKey.
func MintToken(claims domainauth.Claims) (string, error) {
	token, err := jwtclaims.Encode(claims, TestSigningKey)
	if err != nil {
		return "", fmt.Errorf("mint token: %w", err)
	}
	return token, nil
}

// GatedAuthenticator holds every login until the test releases it, so tests
// can interleave logins with logouts deterministically.
type GatedAuthenticator struct {
	Inner ports.Authenticator

	started chan string
	mu      sync.Mutex
	gates   map[string]chan struct{}
}

// NewGatedAuthenticator wraps inner.
func NewGatedAuthenticator(inner ports.Authenticator) *GatedAuthenticator {
	return &GatedAuthenticator{
		Inner:   inner,
		started: make(chan string, 16),
		gates:   make(map[string]chan struct{}),
	}
}

// Started delivers the username of each login as it begins waiting.
func (g *GatedAuthenticator) Started() <-chan string { return g.started }

// Release lets the pending login for username complete.
func (g *GatedAuthenticator) Release(username string) {
	close(g.gate(username))
}

func (g *GatedAuthenticator) gate(username string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[username]
	if !ok {
		ch = make(chan struct{})
		g.gates[username] = ch
	}
	return ch
}

func (g *GatedAuthenticator) Login(ctx context.Context, req ports.LoginRequest) (ports.LoginResponse, error) {
	gate := g.gate(req.Username)
	g.started <- req.Username
	select {
	case <-gate:
	case <-ctx.Done():
		return ports.LoginResponse{}, ctx.Err()
	}
	return g.Inner.Login(ctx, req)
}

// ErrStoreUnavailable is returned by FailingTokenStore.
var ErrStoreUnavailable = errors.New("token store unavailable")

// FailingTokenStore fails the operations selected by its flags.
type FailingTokenStore struct {
	FailLoad  bool
	FailSave  bool
	FailClear bool
	Token     string
}

func (s *FailingTokenStore) Load(context.Context) (string, bool, error) {
	if s.FailLoad {
		return "", false, ErrStoreUnavailable
	}
	return s.Token, s.Token != "", nil
}

func (s *FailingTokenStore) Save(_ context.Context, token string) error {
	if s.FailSave {
		return ErrStoreUnavailable
	}
	s.Token = token
	return nil
}

func (s *FailingTokenStore) Clear(context.Context) error {
	if s.FailClear {
		return ErrStoreUnavailable
	}
	s.Token = ""
	return nil
}
