package httpx

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
)

type fakeUserReader struct {
	user *domainauth.User
}

func (f fakeUserReader) CurrentUser(context.Context) (domainauth.User, bool) {
	if f.user == nil {
		return domainauth.User{}, false
	}
	return *f.user, true
}

type kindRecorder []domainauth.ActivityKind

func (k *kindRecorder) Publish(kind domainauth.ActivityKind) { *k = append(*k, kind) }

func TestRecover(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	h := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/units", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "boom")
}

func TestLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/auth/status", nil))

	assert.Contains(t, logs.String(), "status=418")
	assert.Contains(t, logs.String(), "path=/auth/status")
}

func TestRequireSession(t *testing.T) {
	var seen *domainauth.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := UserFromContext(r.Context()); ok {
			seen = &u
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous", func(t *testing.T) {
		seen = nil
		rec := httptest.NewRecorder()
		RequireSession(fakeUserReader{})(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/units", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("signed in", func(t *testing.T) {
		seen = nil
		u := domainauth.User{ID: "1", Username: "root", Role: domainauth.RoleSuperuser}
		rec := httptest.NewRecorder()
		RequireSession(fakeUserReader{user: &u})(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/units", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		if assert.NotNil(t, seen) {
			assert.Equal(t, "root", seen.Username)
		}
	})
}

func TestActivity(t *testing.T) {
	var kinds kindRecorder
	h := Activity(&kinds)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for range 2 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/units", nil))
	}
	assert.Equal(t, kindRecorder{domainauth.ActivityNavigation, domainauth.ActivityNavigation}, kinds)

	// A nil publisher leaves the handler untouched.
	rec := httptest.NewRecorder()
	Activity(nil)(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
