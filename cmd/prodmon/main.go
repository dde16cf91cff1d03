package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/sigmaport/prodmon-ui/config"
	"github.com/sigmaport/prodmon-ui/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger(config.LogConfig{Level: "info", Format: "json"})
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger = bootstrap.InitLogger(cfg.Log)
	logStartupInfo(ctx, logger, &cfg)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := bootstrap.BuildSession(ctx, bootstrap.SessionDeps{Config: &cfg, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close session services failed", "error", cerr)
		}
	}()

	state := services.Session.Init(ctx)
	logger.InfoContext(ctx, "session restored", "state", string(state))

	srv, err := bootstrap.NewHTTPServer(bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bootstrap.ServeHTTP(gctx, srv, logger)
	})
	err = g.Wait()
	logger.InfoContext(context.WithoutCancel(ctx), "prodmon stopped")
	return err
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting prodmon dashboard",
		"http_addr", cfg.HTTP.Addr,
		"backend", cfg.Backend.BaseURL,
		"token_store", string(cfg.Session.TokenStore),
		"idle_timeout", cfg.Session.IdleTimeout.String(),
		"dev", cfg.IsDev)
}
