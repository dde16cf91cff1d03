package httpx

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sigmaport/prodmon-ui/internal/adapters/activity"
	"github.com/sigmaport/prodmon-ui/internal/adapters/jwtclaims"
	"github.com/sigmaport/prodmon-ui/internal/adapters/memtoken"
	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/mocks"
	authmocks "github.com/sigmaport/prodmon-ui/internal/mocks/auth"
	"github.com/sigmaport/prodmon-ui/internal/service"
)

// routerFixture wires the real session manager and dashboard service to a
// mocked backend.
type routerFixture struct {
	handler http.Handler
	session *service.SessionManager
	api     *mocks.MockReportsAPI
	hub     *activity.Hub

	mu    sync.Mutex
	kinds []domainauth.ActivityKind
}

func newRouterFixture(t *testing.T, static fs.FS) *routerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &routerFixture{api: mocks.NewMockReportsAPI(ctrl), hub: activity.NewHub()}
	t.Cleanup(f.hub.Subscribe(func(k domainauth.ActivityKind) {
		f.mu.Lock()
		f.kinds = append(f.kinds, k)
		f.mu.Unlock()
	}))

	f.session = service.NewSessionManager(service.SessionManagerOptions{
		Deps: service.SessionDeps{
			Store:         memtoken.New(),
			Decoder:       jwtclaims.NewDecoder(),
			Authenticator: authmocks.NewMockAuthenticator(),
			Monitor:       service.NewIdleMonitor(service.IdleMonitorOptions{Source: f.hub}),
		},
		Config: service.SessionConfig{IdleTimeout: service.DefaultIdleTimeout},
	})
	t.Cleanup(f.session.Shutdown)
	f.session.Init(t.Context())

	dash := service.NewDashboardService(service.DashboardServiceOptions{API: f.api, Session: f.session})
	f.handler = NewRouter(RouterServices{
		Session:   f.session,
		Dashboard: dash,
		Activity:  f.hub,
		Static:    static,
	})
	return f
}

func (f *routerFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func (f *routerFixture) login(t *testing.T, username string) {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/auth/login", `{"username":"`+username+`","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func (f *routerFixture) activity() []domainauth.ActivityKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domainauth.ActivityKind, len(f.kinds))
	copy(out, f.kinds)
	return out
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field"`
}
