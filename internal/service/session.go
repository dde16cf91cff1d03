package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

// Messages returned in LoginResult for failures that have no backend message.
const (
	MsgConnectivity    = "Unable to reach the server. Check your connection and try again."
	MsgLoginSuperseded = "login superseded"
	MsgInvalidToken    = "The server returned an unusable session token."
	MsgPersistFailed   = "Signed in, but the session could not be stored."
	MsgMissingLogin    = "Username and password are required."
)

var _ oauth2.TokenSource = (*SessionManager)(nil)

// SessionDeps are the collaborators of SessionManager.
type SessionDeps struct {
	Store         ports.TokenStore    // Required
	Decoder       ports.TokenDecoder  // Required
	Authenticator ports.Authenticator // Required for Login
	Monitor       *IdleMonitor        // Optional: one is created from Clock when nil
}

// SessionConfig tunes SessionManager.
type SessionConfig struct {
	IdleTimeout time.Duration // 0 disables idle enforcement
	Clock       clock.Clock
	// OnSessionEnded is called after an authenticated session ends, outside
	// internal locks.
	OnSessionEnded func(domainauth.SessionEnd)
}

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	Deps   SessionDeps
	Config SessionConfig
	Logger *slog.Logger
}

// SessionManager owns the operator session: the bearer token, the identity
// decoded from it and the idle deadline. It is the only writer of the
// outgoing-request credential; readers go through Token.
type SessionManager struct {
	store   ports.TokenStore
	decoder ports.TokenDecoder
	authn   ports.Authenticator
	monitor *IdleMonitor
	clock   clock.Clock
	logger  *slog.Logger

	idleTimeout time.Duration
	onEnded     func(domainauth.SessionEnd)

	mu        sync.Mutex
	state     domainauth.SessionState
	token     string
	claims    domainauth.Claims
	user      domainauth.User
	sessionID string
	endReason domainauth.EndReason
	// seq is bumped by every login attempt and every logout. A login response
	// is applied only if seq still equals the value it was issued with.
	seq      uint64
	inflight int
}

// NewSessionManager constructs a SessionManager in the initializing state.
// It panics when Store or Decoder is nil.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	if opts.Deps.Store == nil {
		panic("service: SessionManager requires a token store")
	}
	if opts.Deps.Decoder == nil {
		panic("service: SessionManager requires a token decoder")
	}

	clk := opts.Config.Clock
	if clk == nil {
		clk = clock.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	monitor := opts.Deps.Monitor
	if monitor == nil {
		monitor = NewIdleMonitor(IdleMonitorOptions{Clock: clk, Logger: logger})
	}

	return &SessionManager{
		store:       opts.Deps.Store,
		decoder:     opts.Deps.Decoder,
		authn:       opts.Deps.Authenticator,
		monitor:     monitor,
		clock:       clk,
		logger:      logger.With("component", "session"),
		idleTimeout: opts.Config.IdleTimeout,
		onEnded:     opts.Config.OnSessionEnded,
		state:       domainauth.StateInitializing,
	}
}

// Init restores the persisted session. It only acts while initializing and
// returns the resulting state. Storage and decode problems resolve to
// anonymous; they are logged, never returned.
func (m *SessionManager) Init(ctx context.Context) domainauth.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != domainauth.StateInitializing {
		return m.state
	}

	token, ok, err := m.store.Load(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "load persisted token", "error", err)
		ok = false
	}
	if !ok || token == "" {
		m.state = domainauth.StateAnonymous
		return m.state
	}

	claims, err := m.decoder.Decode(token)
	switch {
	case err != nil:
		m.logger.InfoContext(ctx, "discarding unreadable persisted token", "error", err)
		m.discardPersistedLocked(ctx, domainauth.EndReasonInvalidToken)
	case !claims.ValidAt(m.clock.Now()):
		m.logger.InfoContext(ctx, "discarding expired persisted token", "expired_at", claims.Expiry())
		m.discardPersistedLocked(ctx, domainauth.EndReasonExpired)
	default:
		m.establishLocked(token, claims, claims.User())
		m.logger.InfoContext(ctx, "session restored", m.sessionAttrsLocked()...)
	}
	return m.state
}

func (m *SessionManager) discardPersistedLocked(ctx context.Context, reason domainauth.EndReason) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.WarnContext(ctx, "clear persisted token", "error", err)
	}
	m.state = domainauth.StateAnonymous
	m.endReason = reason
}

// Login exchanges credentials for a session. Failures come back as a
// LoginResult with a message fit for the login form; the session is left
// untouched. A response that arrives after a newer login or a logout is
// discarded.
func (m *SessionManager) Login(ctx context.Context, username, password string) domainauth.LoginResult {
	if username == "" || password == "" {
		return domainauth.LoginResult{Message: MsgMissingLogin}
	}
	if m.authn == nil {
		return domainauth.LoginResult{Message: MsgConnectivity}
	}

	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.inflight++
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inflight--
		m.mu.Unlock()
	}()

	resp, err := m.authn.Login(ctx, ports.LoginRequest{Username: username, Password: password})
	if err != nil {
		return m.loginFailure(ctx, username, err)
	}

	claims, err := m.decoder.Decode(resp.Token)
	if err != nil {
		m.logger.WarnContext(ctx, "login returned undecodable token", "username", username, "error", err)
		return domainauth.LoginResult{Message: MsgInvalidToken}
	}
	if !claims.ValidAt(m.clock.Now()) {
		m.logger.WarnContext(ctx, "login returned expired token", "username", username, "expired_at", claims.Expiry())
		return domainauth.LoginResult{Message: MsgInvalidToken}
	}
	user := mergeUser(claims.User(), resp.User)

	m.mu.Lock()
	if seq != m.seq {
		m.mu.Unlock()
		m.logger.InfoContext(ctx, "discarding stale login response", "username", username)
		return domainauth.LoginResult{Message: MsgLoginSuperseded}
	}
	if err := m.store.Save(ctx, resp.Token); err != nil {
		m.mu.Unlock()
		m.logger.ErrorContext(ctx, "persist token", "error", err)
		return domainauth.LoginResult{Message: MsgPersistFailed}
	}
	var replaced *domainauth.SessionEnd
	if m.state == domainauth.StateAuthenticated {
		end := m.sessionEndLocked(domainauth.EndReasonManual)
		replaced = &end
	}
	m.establishLocked(resp.Token, claims, user)
	attrs := m.sessionAttrsLocked()
	m.mu.Unlock()

	if replaced != nil {
		m.notifyEnded(ctx, *replaced)
	}
	m.logger.InfoContext(ctx, "login succeeded", attrs...)
	u := user
	return domainauth.LoginResult{Success: true, User: &u}
}

func (m *SessionManager) loginFailure(ctx context.Context, username string, err error) domainauth.LoginResult {
	var failure *domainauth.AuthFailure
	if errors.As(err, &failure) && failure.Message != "" {
		m.logger.InfoContext(ctx, "login rejected", "username", username, "status", failure.Status)
		return domainauth.LoginResult{Message: failure.Message}
	}
	m.logger.WarnContext(ctx, "login failed", "username", username, "error", err)
	return domainauth.LoginResult{Message: MsgConnectivity}
}

// mergeUser prefers the backend's user record and falls back to the claims
// for fields the record leaves empty.
func mergeUser(fromClaims, record domainauth.User) domainauth.User {
	u := fromClaims
	if record.ID != "" {
		u.ID = record.ID
	}
	if record.Username != "" {
		u.Username = record.Username
	}
	if record.Role != "" {
		u.Role = record.Role
	}
	if record.AllowedGroups != nil {
		u.AllowedGroups = append([]string(nil), record.AllowedGroups...)
	}
	return u
}

// Logout ends the session. Calling it while anonymous is a no-op. Any login
// still in flight is discarded when it returns. A storage error is returned
// after the in-memory session has already ended.
func (m *SessionManager) Logout(ctx context.Context) error {
	return m.Invalidate(ctx, domainauth.EndReasonManual)
}

// Invalidate ends the session for reason. It is the logout path for idle
// timeout, token expiry and backend rejections.
func (m *SessionManager) Invalidate(ctx context.Context, reason domainauth.EndReason) error {
	m.mu.Lock()
	end, ended, err := m.endLocked(ctx, reason)
	m.mu.Unlock()

	if ended {
		m.notifyEnded(ctx, end)
	}
	return err
}

// invalidateSession ends the session only if sessionID is still current.
func (m *SessionManager) invalidateSession(ctx context.Context, sessionID string, reason domainauth.EndReason) {
	m.mu.Lock()
	if m.state != domainauth.StateAuthenticated || m.sessionID != sessionID {
		m.mu.Unlock()
		return
	}
	end, ended, err := m.endLocked(ctx, reason)
	m.mu.Unlock()

	if err != nil {
		m.logger.WarnContext(ctx, "clear token", "error", err)
	}
	if ended {
		m.notifyEnded(ctx, end)
	}
}

// endLocked tears down the session. It always bumps seq.
func (m *SessionManager) endLocked(ctx context.Context, reason domainauth.EndReason) (domainauth.SessionEnd, bool, error) {
	m.seq++
	if m.state != domainauth.StateAuthenticated {
		if m.state == domainauth.StateInitializing {
			m.state = domainauth.StateAnonymous
		}
		return domainauth.SessionEnd{}, false, nil
	}

	var err error
	if cerr := m.store.Clear(ctx); cerr != nil {
		err = fmt.Errorf("clear token: %w", cerr)
	}
	end := m.sessionEndLocked(reason)
	m.state = domainauth.StateAnonymous
	m.endReason = reason
	return end, true, err
}

// sessionEndLocked stops the idle monitor and forgets the credential.
func (m *SessionManager) sessionEndLocked(reason domainauth.EndReason) domainauth.SessionEnd {
	m.monitor.Stop()
	end := domainauth.SessionEnd{
		Reason:    reason,
		User:      m.user,
		SessionID: m.sessionID,
		At:        m.clock.Now(),
	}
	m.token = ""
	m.claims = domainauth.Claims{}
	m.user = domainauth.User{}
	m.sessionID = ""
	return end
}

func (m *SessionManager) establishLocked(token string, claims domainauth.Claims, user domainauth.User) {
	m.token = token
	m.claims = claims
	m.user = user
	m.sessionID = uuid.NewString()
	m.state = domainauth.StateAuthenticated
	m.endReason = domainauth.EndReasonNone

	sid := m.sessionID
	m.monitor.Start(m.idleTimeout, func() {
		m.invalidateSession(context.Background(), sid, domainauth.EndReasonIdle)
	})
}

func (m *SessionManager) notifyEnded(ctx context.Context, end domainauth.SessionEnd) {
	m.logger.InfoContext(ctx, "session ended",
		"session_id", end.SessionID,
		"username", end.User.Username,
		"reason", string(end.Reason),
	)
	if m.onEnded != nil {
		m.onEnded(end)
	}
}

func (m *SessionManager) sessionAttrsLocked() []any {
	return []any{
		"session_id", m.sessionID,
		"username", m.user.Username,
		"role", string(m.user.Role),
		"expires_at", m.claims.Expiry(),
	}
}

// liveLocked reports whether an authenticated session is still within its
// token lifetime, ending it with reason expired when it is not.
func (m *SessionManager) liveLocked(ctx context.Context) (domainauth.SessionEnd, bool, bool) {
	if m.state != domainauth.StateAuthenticated {
		return domainauth.SessionEnd{}, false, false
	}
	if m.claims.ValidAt(m.clock.Now()) {
		return domainauth.SessionEnd{}, false, true
	}
	end, ended, err := m.endLocked(ctx, domainauth.EndReasonExpired)
	if err != nil {
		m.logger.WarnContext(ctx, "clear expired token", "error", err)
	}
	return end, ended, false
}

// CurrentUser returns the signed-in user. An expired token ends the session.
func (m *SessionManager) CurrentUser(ctx context.Context) (domainauth.User, bool) {
	m.mu.Lock()
	end, ended, live := m.liveLocked(ctx)
	user := m.user
	m.mu.Unlock()

	if ended {
		m.notifyEnded(ctx, end)
	}
	if !live {
		return domainauth.User{}, false
	}
	return user, true
}

// State returns the lifecycle state without re-checking expiry.
func (m *SessionManager) State() domainauth.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Loading reports whether the session is still initializing or a login is
// in flight.
func (m *SessionManager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == domainauth.StateInitializing || m.inflight > 0
}

// IsAdmin applies domainauth.IsAdmin to the current user.
func (m *SessionManager) IsAdmin(ctx context.Context) bool {
	u, ok := m.CurrentUser(ctx)
	if !ok {
		return false
	}
	return domainauth.IsAdmin(&u)
}

// CanAccessGroup applies domainauth.CanAccessGroup to the current user.
func (m *SessionManager) CanAccessGroup(ctx context.Context, group string) bool {
	u, ok := m.CurrentUser(ctx)
	if !ok {
		return false
	}
	return domainauth.CanAccessGroup(&u, group)
}

// SessionStatus is the view of the session served to the dashboard page.
type SessionStatus struct {
	State       domainauth.SessionState `json:"state"`
	Loading     bool                    `json:"loading"`
	User        *domainauth.User        `json:"user,omitempty"`
	IsAdmin     bool                    `json:"is_admin"`
	ExpiresAt   *time.Time              `json:"expires_at,omitempty"`
	IdleUntil   *time.Time              `json:"idle_until,omitempty"`
	EndedReason domainauth.EndReason    `json:"ended_reason,omitempty"`
	// Forced is set when the last session ended without an operator action.
	Forced bool `json:"forced,omitempty"`
}

// Status snapshots the session.
func (m *SessionManager) Status(ctx context.Context) SessionStatus {
	m.mu.Lock()
	end, ended, live := m.liveLocked(ctx)
	st := SessionStatus{
		State:       m.state,
		Loading:     m.state == domainauth.StateInitializing || m.inflight > 0,
		EndedReason: m.endReason,
		Forced:      m.endReason.IsForced(),
	}
	if live {
		u := m.user
		st.User = &u
		st.IsAdmin = domainauth.IsAdmin(&u)
		exp := m.claims.Expiry()
		st.ExpiresAt = &exp
	}
	m.mu.Unlock()

	if live {
		if at, armed := m.monitor.FiresAt(); armed {
			st.IdleUntil = &at
		}
	}
	if ended {
		m.notifyEnded(ctx, end)
	}
	return st
}

// SessionID returns the correlation id of the current session, if any.
func (m *SessionManager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// Token implements oauth2.TokenSource. It is the only way outgoing requests
// obtain the bearer credential.
func (m *SessionManager) Token() (*oauth2.Token, error) {
	ctx := context.Background()

	m.mu.Lock()
	wasAuthenticated := m.state == domainauth.StateAuthenticated
	end, ended, live := m.liveLocked(ctx)
	token, expiry := m.token, m.claims.Expiry()
	m.mu.Unlock()

	if ended {
		m.notifyEnded(ctx, end)
	}
	if !live {
		if wasAuthenticated {
			return nil, domainauth.ErrSessionExpired
		}
		return nil, domainauth.ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer", Expiry: expiry}, nil
}

// Shutdown stops the idle timer without ending the session, leaving the
// persisted token in place for the next start.
func (m *SessionManager) Shutdown() {
	m.monitor.Stop()
}
