package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	prodmon "github.com/sigmaport/prodmon-ui"
	"github.com/sigmaport/prodmon-ui/config"
	httpx "github.com/sigmaport/prodmon-ui/internal/http"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *SessionContainer
	Logger   *slog.Logger
}

// NewHTTPServer builds the server with its middleware chain. It does not listen.
func NewHTTPServer(cfg HTTPServerConfig) (*http.Server, error) {
	if cfg.Config == nil || cfg.Services == nil {
		return nil, errors.New("http server requires config and services")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	static, err := staticFS(cfg.Config.HTTP.StaticDir)
	if err != nil {
		return nil, err
	}

	handler := buildHTTPHandler(httpHandlerConfig{
		Logger: logger,
		HTTP:   cfg.Config.HTTP,
		Services: httpx.RouterServices{
			Session:   cfg.Services.Session,
			Dashboard: cfg.Services.Dashboard,
			Activity:  cfg.Services.Activity,
			Static:    static,
			Logger:    logger,
		},
	})

	addr := cfg.Config.HTTP.Addr
	if addr == "" {
		addr = "127.0.0.1:8080"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}, nil
}

// staticFS serves from dir when set, otherwise from the embedded page.
//
//nolint:ireturn // fs.FS is the natural return for either source.
func staticFS(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("static dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("static dir %q is not a directory", dir)
		}
		return os.DirFS(dir), nil
	}
	sub, err := fs.Sub(prodmon.StaticFS, "web/static")
	if err != nil {
		return nil, fmt.Errorf("embedded static assets: %w", err)
	}
	return sub, nil
}

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Services httpx.RouterServices
	HTTP     config.HTTPConfig
}

func buildHTTPHandler(cfg httpHandlerConfig) http.Handler {
	router := httpx.NewRouter(cfg.Services)

	// Order: Recover -> Logging -> Compression -> Router
	h := router
	if cfg.HTTP.CompressionEnabled {
		cfg.Logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: cfg.HTTP.CompressionLevel, Logger: cfg.Logger})(h)
	}

	h = httpx.Logging(cfg.Logger)(h)
	h = httpx.Recover(cfg.Logger)(h)
	return h
}

// ServeHTTP listens on srv.Addr and serves until ctx is canceled, then shuts
// the server down gracefully.
func ServeHTTP(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return serveListener(ctx, srv, ln, logger)
}

func serveListener(ctx context.Context, srv *http.Server, ln net.Listener, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "starting HTTP server", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}
