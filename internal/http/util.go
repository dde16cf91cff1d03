package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/domain/model"
	apperrors "github.com/sigmaport/prodmon-ui/internal/errors"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

// SessionInvalidator ends the operator session when the backend rejects its credential.
type SessionInvalidator interface {
	Invalidate(ctx context.Context, reason domainauth.EndReason) error
}

// statusClientClosedRequest is the de facto status for a request the client abandoned.
const statusClientClosedRequest = 499

//nolint:gochecknoglobals // static read-only lookup
var statusByCode = map[apperrors.ErrorCode]int{
	apperrors.ErrCodeNotFound:     http.StatusNotFound,
	apperrors.ErrCodeValidation:   http.StatusBadRequest,
	apperrors.ErrCodeUnauthorized: http.StatusUnauthorized,
	apperrors.ErrCodeForbidden:    http.StatusForbidden,
	apperrors.ErrCodeUpstream:     http.StatusBadGateway,
	apperrors.ErrCodeTimeout:      http.StatusGatewayTimeout,
	apperrors.ErrCodeCanceled:     statusClientClosedRequest,
	apperrors.ErrCodeInternal:     http.StatusInternalServerError,
}

// errorResponder turns service and backend errors into JSON responses.
type errorResponder struct {
	session SessionInvalidator
	logger  *slog.Logger
}

func (e errorResponder) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

// write maps err to a status and writes it. A backend credential rejection
// ends the session before the 401 goes out.
func (e errorResponder) write(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	if errors.Is(err, ports.ErrUnauthorized) && e.session != nil {
		e.log().WarnContext(ctx, "backend rejected session credential", "path", r.URL.Path)
		if ierr := e.session.Invalidate(ctx, domainauth.EndReasonUnauthorized); ierr != nil {
			e.log().ErrorContext(ctx, "invalidate session", "error", ierr)
		}
	}

	mapped := apperrors.MapUpstreamError(err)
	code := apperrors.GetCode(mapped)
	status, ok := statusByCode[code]
	if !ok {
		code, status = apperrors.ErrCodeInternal, http.StatusInternalServerError
	}

	var appErr *apperrors.AppError
	msg := http.StatusText(status)
	if errors.As(mapped, &appErr) && appErr.Message != "" {
		msg = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		e.log().ErrorContext(ctx, "request failed", "path", r.URL.Path, "status", status, "error", err)
	}

	WriteError(w, ErrorParams{
		Code:    status,
		ErrCode: string(code),
		Err:     errors.New(msg),
		Field:   apperrors.GetField(mapped),
	})
}

// pathInt parses a positive integer path value. On failure it writes a 400
// response and returns false.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.PathValue(name)
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: string(apperrors.ErrCodeValidation),
			Err:     errors.New(name + " must be a positive integer"),
			Field:   name,
		})
		return 0, false
	}
	return v, true
}

// pathModule parses the {module} path value.
func pathModule(w http.ResponseWriter, r *http.Request) (model.Module, bool) {
	m, err := model.ParseModule(r.PathValue("module"))
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusNotFound,
			ErrCode: string(apperrors.ErrCodeNotFound),
			Err:     err,
			Field:   "module",
		})
		return "", false
	}
	return m, true
}

func errNoRoute(r *http.Request) error {
	return fmt.Errorf("no route for %s %s", r.Method, r.URL.Path)
}
