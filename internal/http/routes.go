package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/sigmaport/prodmon-ui/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Session   SessionService            // Required
	Dashboard *service.DashboardService // Required
	Activity  ActivityPublisher         // Optional: idle tracking is off when nil
	// Optional: page assets served at / and /static/.
	Static fs.FS
	Logger *slog.Logger
}

// NewRouter creates the HTTP router. Everything under /api/ requires a
// signed-in operator and counts as activity.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	errs := errorResponder{session: services.Session, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	registerAuthRoutes(mux, &AuthHandlers{Session: services.Session, Activity: services.Activity, Logger: logger})

	api := http.NewServeMux()
	registerDashboardRoutes(api, &DashboardHandlers{Svc: services.Dashboard, errorResponder: errs})
	registerReportRoutes(api, &ReportHandlers{Svc: services.Dashboard, errorResponder: errs})
	registerTargetRoutes(api, &TargetHandlers{Svc: services.Dashboard, errorResponder: errs})
	api.HandleFunc("/api/", apiNotFound)

	guarded := RequireSession(services.Session)(Activity(services.Activity)(api))
	mux.Handle("/api/", guarded)

	if services.Static != nil {
		registerStaticRoutes(mux, services.Static)
	}
	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
	mux.HandleFunc("POST /auth/activity", h.ReportActivity)
}

func registerDashboardRoutes(mux *http.ServeMux, h *DashboardHandlers) {
	mux.HandleFunc("GET /api/units", h.Units)
	mux.HandleFunc("GET /api/dashboard/{module}/{unitId}/{year}/{month}", h.Dashboard)
	mux.HandleFunc("GET /api/rilis/{module}/{year}", h.Release)
	mux.HandleFunc("GET /api/overview/{year}", h.Overview)
}

func registerReportRoutes(mux *http.ServeMux, h *ReportHandlers) {
	mux.HandleFunc("GET /api/laporan/{module}", h.List)
	mux.HandleFunc("POST /api/laporan/{module}", h.Create)
	mux.HandleFunc("GET /api/laporan/{module}/{id}", h.Get)
	mux.HandleFunc("PUT /api/laporan/{module}/{id}", h.Update)
	mux.HandleFunc("DELETE /api/laporan/{module}/{id}", h.Delete)
}

func registerTargetRoutes(mux *http.ServeMux, h *TargetHandlers) {
	mux.HandleFunc("GET /api/rkap/{year}", h.List)
	mux.HandleFunc("POST /api/rkap", h.Save)
}

func registerStaticRoutes(mux *http.ServeMux, static fs.FS) {
	files := http.FileServer(http.FS(static))
	mux.Handle("GET /static/", staticWithCacheHeaders(http.StripPrefix("/static/", files)))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeFileFS(w, r, static, "index.html")
	})
}

// staticWithCacheHeaders lets browsers revalidate assets on every load; the
// page is small and served from localhost.
func staticWithCacheHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errNoRoute(r)})
}
