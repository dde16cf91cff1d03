package auth

// Package auth contains domain-level types for the operator session.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents the backend-assigned authorization role of an operator.
// Kept in string form because it travels inside the token claims as-is.
type Role string

const (
	RoleSuperuser  Role = "superuser"
	RoleAdmin      Role = "admin"
	RoleEntryAdmin Role = "entry_admin"
	RoleViewer     Role = "viewer"
)

// Claims is the decoded identity carried in the bearer token payload.
// It is never persisted on its own; it is always re-derivable from the token.
type Claims struct {
	SubjectID     string
	Username      string
	Role          Role
	AllowedGroups []string
	ExpiresAt     int64 // seconds since epoch
}

// IsExpired reports whether the claims expired strictly before now.
func (c Claims) IsExpired(now time.Time) bool {
	return c.ExpiresAt*1000 < now.UnixMilli()
}

// ValidAt reports whether the claims still describe a live session at now.
// A token whose expiry equals now is no longer valid.
func (c Claims) ValidAt(now time.Time) bool {
	return c.ExpiresAt*1000 > now.UnixMilli()
}

// Expiry returns the expiry as a time.Time.
func (c Claims) Expiry() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}

// User projects the claims into the externally visible identity.
func (c Claims) User() User {
	groups := make([]string, len(c.AllowedGroups))
	copy(groups, c.AllowedGroups)
	return User{
		ID:            c.SubjectID,
		Username:      c.Username,
		Role:          c.Role,
		AllowedGroups: groups,
	}
}

// User is the identity exposed to the rest of the application.
type User struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	Role          Role     `json:"role"`
	AllowedGroups []string `json:"allowed_groups"`
}

// SplitGroups turns the comma-joined allowed_groups claim into a list.
// Entries are trimmed and empty entries dropped.
func SplitGroups(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// JoinGroups is the inverse of SplitGroups.
func JoinGroups(groups []string) string {
	return strings.Join(groups, ",")
}

// SessionState is the lifecycle state of the operator session.
type SessionState string

const (
	StateInitializing  SessionState = "initializing"
	StateAnonymous     SessionState = "anonymous"
	StateAuthenticated SessionState = "authenticated"
)

// EndReason explains why an authenticated session ended.
type EndReason string

const (
	EndReasonNone         EndReason = ""
	EndReasonManual       EndReason = "logout"
	EndReasonIdle         EndReason = "idle_timeout"
	EndReasonExpired      EndReason = "expired"
	EndReasonInvalidToken EndReason = "invalid_token"
	EndReasonUnauthorized EndReason = "unauthorized"
)

// IsForced reports whether the session ended without an explicit operator action.
// The UI uses this to explain the return to the login screen.
func (r EndReason) IsForced() bool {
	switch r {
	case EndReasonIdle, EndReasonExpired, EndReasonUnauthorized:
		return true
	default:
		return false
	}
}

// SessionEnd describes a completed authenticated session.
type SessionEnd struct {
	Reason    EndReason
	User      User
	SessionID string
	At        time.Time
}

// LoginResult is returned by login attempts instead of an error so callers
// do not need error control flow for expected rejections.
type LoginResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// ActivityKind enumerates operator interaction signals that keep a session alive.
type ActivityKind string

const (
	ActivityPointerMove ActivityKind = "pointer_move"
	ActivityPointerDown ActivityKind = "pointer_down"
	ActivityClick       ActivityKind = "click"
	ActivityScroll      ActivityKind = "scroll"
	ActivityKeyPress    ActivityKind = "key_press"
	ActivityNavigation  ActivityKind = "navigation"
)

// ParseActivityKind validates a client-supplied activity kind.
func ParseActivityKind(s string) (ActivityKind, bool) {
	switch k := ActivityKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ActivityPointerMove, ActivityPointerDown, ActivityClick, ActivityScroll, ActivityKeyPress, ActivityNavigation:
		return k, true
	default:
		return "", false
	}
}
