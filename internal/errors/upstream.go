package errors

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

// StatusCoder is implemented by backend errors that carry an HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// PublicMessager is implemented by backend errors whose message may be shown
// to the operator as-is.
type PublicMessager interface {
	PublicMessage() string
}

// MapUpstreamError maps backend client errors to AppError instances:
//   - ports.ErrUnauthorized and missing/expired sessions → Unauthorized
//   - ports.ErrNotFound → NotFound
//   - 4xx statuses → Validation, carrying the backend message
//   - other statuses → Upstream
//   - context timeouts/cancellations → Timeout/Canceled
//
// Errors that are already AppErrors are returned unchanged.
func MapUpstreamError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, "backend request timed out")
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, "request canceled")
	case errors.Is(err, ports.ErrUnauthorized):
		return Wrap(err, ErrCodeUnauthorized, "session rejected by backend")
	case errors.Is(err, domainauth.ErrNotAuthenticated), errors.Is(err, domainauth.ErrSessionExpired):
		return Wrap(err, ErrCodeUnauthorized, "not signed in")
	case errors.Is(err, ports.ErrNotFound):
		return Wrap(err, ErrCodeNotFound, "resource not found")
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		status := sc.StatusCode()
		if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
			msg := "backend rejected the request"
			var pm PublicMessager
			if errors.As(err, &pm) && pm.PublicMessage() != "" {
				msg = pm.PublicMessage()
			}
			return &AppError{Code: ErrCodeValidation, Message: msg, Cause: err}
		}
	}
	return Wrap(err, ErrCodeUpstream, "backend request failed")
}
