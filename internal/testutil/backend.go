package testutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/domain/model"
	authmocks "github.com/sigmaport/prodmon-ui/internal/mocks/auth"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

// FakeBackend is an httptest server speaking the backend REST API for the
// login, units and release endpoints. Authenticated endpoints require a
// bearer token and wrap results in a {"data": ...} envelope.
type FakeBackend struct {
	Server *httptest.Server
	Authn  *authmocks.MockAuthenticator

	mu       sync.Mutex
	units    []model.Unit
	releases map[model.Module][]model.ReleaseRow
	tokens   []string
	reject   bool
}

// NewFakeBackend starts a FakeBackend with DefaultUnits and the accounts of
// authmocks.NewMockAuthenticator. It is closed when the test ends.
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()
	b := &FakeBackend{
		Authn:    authmocks.NewMockAuthenticator(),
		units:    DefaultUnits(),
		releases: make(map[model.Module][]model.ReleaseRow),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", b.login)
	mux.HandleFunc("GET /api/units", b.authed(b.listUnits))
	mux.HandleFunc("GET /api/{module}/rilis/{year}", b.authed(b.listReleases))
	b.Server = httptest.NewServer(mux)
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the base URL to configure the client with.
func (b *FakeBackend) URL() string { return b.Server.URL }

// SetReleases replaces the release rows served for module.
func (b *FakeBackend) SetReleases(module model.Module, rows []model.ReleaseRow) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releases[module] = rows
}

// RejectCredentials makes every authenticated endpoint answer 401.
func (b *FakeBackend) RejectCredentials(reject bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reject = reject
}

// SeenTokens returns the bearer tokens received, in order.
func (b *FakeBackend) SeenTokens() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.tokens))
	copy(out, b.tokens)
	return out
}

func (b *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var req ports.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Body tidak valid"})
		return
	}
	resp, err := b.Authn.Login(r.Context(), req)
	if err != nil {
		status, msg := http.StatusInternalServerError, err.Error()
		var failure *domainauth.AuthFailure
		if errors.As(err, &failure) {
			status, msg = failure.Status, failure.Message
		}
		writeJSON(w, status, map[string]string{"message": msg})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": resp.Token,
		"user": map[string]any{
			"id":             resp.User.ID,
			"username":       resp.User.Username,
			"role":           resp.User.Role,
			"allowed_groups": domainauth.JoinGroups(resp.User.AllowedGroups),
		},
	})
}

func (b *FakeBackend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		if ok {
			b.tokens = append(b.tokens, token)
		}
		reject := b.reject
		b.mu.Unlock()

		if !ok || token == "" || reject {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token tidak valid"})
			return
		}
		next(w, r)
	}
}

func (b *FakeBackend) listUnits(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	units := append([]model.Unit(nil), b.units...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": units})
}

func (b *FakeBackend) listReleases(w http.ResponseWriter, r *http.Request) {
	if _, err := strconv.Atoi(r.PathValue("year")); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Tahun tidak valid"})
		return
	}
	b.mu.Lock()
	rows := append([]model.ReleaseRow{}, b.releases[model.Module(r.PathValue("module"))]...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"data": rows})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
