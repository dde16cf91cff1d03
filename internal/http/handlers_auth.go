package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/service"
)

// SessionService is the part of *service.SessionManager the HTTP layer uses.
type SessionService interface {
	CurrentUserReader
	SessionInvalidator
	Login(ctx context.Context, username, password string) domainauth.LoginResult
	Logout(ctx context.Context) error
	Status(ctx context.Context) service.SessionStatus
}

// AuthHandlers serves login, logout, session status and activity reports.
type AuthHandlers struct {
	Session  SessionService
	Activity ActivityPublisher
	Logger   *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session.
// POST /auth/login {"username": "...", "password": "..."}.
//
// The body is always a LoginResult. A rejected attempt is 401; an attempt
// overtaken by a newer login or a logout is 409.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res := h.Session.Login(r.Context(), req.Username, req.Password)
	switch {
	case res.Success:
		WriteJSON(w, http.StatusOK, res)
	case res.Message == service.MsgLoginSuperseded:
		WriteJSON(w, http.StatusConflict, res)
	case res.Message == service.MsgMissingLogin:
		WriteJSON(w, http.StatusBadRequest, res)
	default:
		WriteJSON(w, http.StatusUnauthorized, res)
	}
}

// Logout ends the session. It succeeds when no session exists.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Logout(r.Context()); err != nil {
		// The in-memory session is gone either way; only the stored copy may linger.
		h.logger().ErrorContext(r.Context(), "logout: clearing stored token failed", "error", err)
	}
	WriteJSON(w, http.StatusOK, h.Session.Status(r.Context()))
}

// Status returns the session view model.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Session.Status(r.Context()))
}

type activityRequest struct {
	Kind string `json:"kind"`
}

// ReportActivity records an operator interaction reported by the page.
// POST /auth/activity {"kind": "click"}.
func (h *AuthHandlers) ReportActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	kind, ok := domainauth.ParseActivityKind(req.Kind)
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_activity",
			Err:     errors.New("unknown activity kind"),
			Field:   "kind",
		})
		return
	}
	if _, signedIn := h.Session.CurrentUser(r.Context()); !signedIn {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}
	if h.Activity != nil {
		h.Activity.Publish(kind)
	}
	w.WriteHeader(http.StatusNoContent)
}
