package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/benbjohnson/clock"

	"github.com/sigmaport/prodmon-ui/config"
	"github.com/sigmaport/prodmon-ui/internal/adapters/activity"
	"github.com/sigmaport/prodmon-ui/internal/adapters/backend"
	"github.com/sigmaport/prodmon-ui/internal/adapters/filetoken"
	"github.com/sigmaport/prodmon-ui/internal/adapters/jwtclaims"
	"github.com/sigmaport/prodmon-ui/internal/adapters/memtoken"
	redisadapter "github.com/sigmaport/prodmon-ui/internal/adapters/redis"
	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/observability/metrics"
	"github.com/sigmaport/prodmon-ui/internal/observability/statsd"
	"github.com/sigmaport/prodmon-ui/internal/ports"
	"github.com/sigmaport/prodmon-ui/internal/service"
)

// SessionDeps contains what BuildSession needs.
type SessionDeps struct {
	Config *config.AppConfig // Required
	Logger *slog.Logger
	Clock  clock.Clock // Optional: wall clock when nil
	// Store overrides the configured token store.
	Store ports.TokenStore
}

// SessionContainer holds the wired session core and the services built on it.
type SessionContainer struct {
	Session   *service.SessionManager
	Dashboard *service.DashboardService
	Activity  *activity.Hub
	Backend   *backend.Client
	Reports   *backend.ReportsClient
	Store     ports.TokenStore
	// Metrics is nil when metrics are disabled; a nil client drops everything.
	Metrics *statsd.Client

	closers []func() error
}

// BuildSession wires token store, decoder, idle monitor, backend client and
// session manager. Init is left to the caller.
func BuildSession(ctx context.Context, deps SessionDeps) (*SessionContainer, error) {
	if deps.Config == nil {
		return nil, errors.New("session deps missing AppConfig")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.New()
	}

	c := &SessionContainer{Activity: activity.NewHub(), Store: deps.Store}
	if c.Store == nil {
		store, closeStore, err := BuildTokenStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		c.Store = store
		if closeStore != nil {
			c.closers = append(c.closers, closeStore)
		}
	}

	loc, err := cfg.Backend.Location()
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	var rt http.RoundTripper = http.DefaultTransport
	c.Metrics = buildMetrics(ctx, cfg.Metrics, logger)
	if c.Metrics != nil {
		c.closers = append(c.closers, c.Metrics.Close)
		rt = &metrics.Transport{Base: rt, Sink: c.Metrics}
	}

	client, err := backend.New(backend.Config{
		BaseURL:          cfg.Backend.BaseURL,
		Timeout:          cfg.Backend.Timeout,
		ErrorMessagePath: cfg.Backend.ErrorMessagePath,
		Transport:        rt,
		Logger:           logger,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("backend client: %w", err), c.Close())
	}
	c.Backend = client

	c.Session = service.NewSessionManager(service.SessionManagerOptions{
		Deps: service.SessionDeps{
			Store:         c.Store,
			Decoder:       jwtclaims.NewDecoder(),
			Authenticator: client,
			Monitor: service.NewIdleMonitor(service.IdleMonitorOptions{
				Clock:  clk,
				Source: c.Activity,
				Logger: logger,
			}),
		},
		Config: service.SessionConfig{
			IdleTimeout:    cfg.Session.IdleTimeout,
			Clock:          clk,
			OnSessionEnded: sessionEndHook(c.Metrics),
		},
		Logger: logger,
	})
	c.Reports = client.WithCredentials(c.Session)
	c.Dashboard = service.NewDashboardService(service.DashboardServiceOptions{
		API:      c.Reports,
		Session:  c.Session,
		Logger:   logger,
		Location: loc,
	})
	return c, nil
}

// Close stops the idle timer and releases the token store connection.
// The persisted token is kept.
func (c *SessionContainer) Close() error {
	if c == nil {
		return nil
	}
	if c.Session != nil {
		c.Session.Shutdown()
	}
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// sessionEndHook counts session ends. The manager already logs them.
func sessionEndHook(sink *statsd.Client) func(domainauth.SessionEnd) {
	if sink == nil {
		return nil
	}
	return func(e domainauth.SessionEnd) {
		metrics.EmitSessionEnded(sink, e)
	}
}

// buildMetrics dials StatsD when enabled. A dial failure is logged and
// metrics stay off.
func buildMetrics(ctx context.Context, cfg config.MetricsConfig, logger *slog.Logger) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.Dial(ctx, statsd.Config{
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to initialise statsd client", "error", err)
		return nil
	}
	logger.InfoContext(ctx, "statsd metrics enabled", "addr", cfg.StatsdAddress)
	return client
}

// BuildTokenStore creates the configured token store. The returned close
// function is nil when the store holds no resources.
func BuildTokenStore(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (ports.TokenStore, func() error, error) {
	switch cfg.Session.TokenStore {
	case config.TokenStoreMemory:
		logger.WarnContext(ctx, "using in-memory token store; the session will not survive a restart")
		return memtoken.New(), nil, nil
	case config.TokenStoreRedis:
		client, err := ConnectRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return redisadapter.NewTokenStoreWithKey(client, cfg.Session.TokenKey), client.Close, nil
	case config.TokenStoreFile, "":
		store, err := filetoken.New(cfg.Session.TokenFile)
		if err != nil {
			return nil, nil, fmt.Errorf("file token store: %w", err)
		}
		logger.DebugContext(ctx, "using file token store", "path", store.Path())
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown token store %q", cfg.Session.TokenStore)
	}
}
