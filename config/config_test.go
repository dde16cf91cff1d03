package config

import (
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func parseEnv(t *testing.T, vars map[string]string) AppConfig {
	t.Helper()
	t.Setenv("NODE_ENV", "")
	var cfg AppConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	return cfg
}

func TestAppConfig_Defaults(t *testing.T) {
	cfg := parseEnv(t, map[string]string{"TOKEN_FILE": "/tmp/prodmon-test/token"})
	cfg.Sanitize()

	if cfg.HTTP.Addr != "127.0.0.1:8080" {
		t.Fatalf("expected loopback default addr, got %q", cfg.HTTP.Addr)
	}
	if cfg.Session.IdleTimeout != 20*time.Minute {
		t.Fatalf("expected 20m idle timeout, got %v", cfg.Session.IdleTimeout)
	}
	if cfg.Session.TokenStore != TokenStoreFile {
		t.Fatalf("expected file token store, got %q", cfg.Session.TokenStore)
	}
	if cfg.Backend.ErrorMessagePath != "message || error" {
		t.Fatalf("unexpected error message path %q", cfg.Backend.ErrorMessagePath)
	}
	if cfg.Log.Format != "json" || cfg.Log.SlogLevel() != slog.LevelInfo {
		t.Fatalf("unexpected log config %#v", cfg.Log)
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "BACKEND_BASE_URL") {
		t.Fatalf("expected missing backend url error, got %v", err)
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	cfg := parseEnv(t, map[string]string{
		"DEV":                      "true",
		"LOG_LEVEL":                "WARNING",
		"HTTP_ADDR":                ":9090",
		"HTTP_STATIC_DIR":          " ./web ",
		"HTTP_COMPRESSION_ENABLED": "true",
		"HTTP_COMPRESSION_LEVEL":   "42",
		"BACKEND_BASE_URL":         "http://10.0.0.5:5000/",
		"BACKEND_TIMEOUT":          "3s",
		"SESSION_IDLE_TIMEOUT":     "5m",
		"TOKEN_STORE":              "Redis",
		"TOKEN_KEY":                "ops:token",
		"REDIS_URI":                "redis:6379",
		"REDIS_DB":                 "2",
	})
	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	if !cfg.IsDev || cfg.Log.Format != "text" || cfg.Log.Level != "warn" {
		t.Fatalf("unexpected dev/log settings: dev=%v log=%#v", cfg.IsDev, cfg.Log)
	}

	expectedHTTP := HTTPConfig{Addr: ":9090", StaticDir: "./web", CompressionEnabled: true, CompressionLevel: 9}
	if !reflect.DeepEqual(cfg.HTTP, expectedHTTP) {
		t.Fatalf("unexpected http config:\nexpected: %#v\ngot:      %#v", expectedHTTP, cfg.HTTP)
	}

	expectedBackend := BackendConfig{
		BaseURL:          "http://10.0.0.5:5000",
		Timeout:          3 * time.Second,
		ErrorMessagePath: "message || error",
		Timezone:         "Asia/Jakarta",
	}
	if !reflect.DeepEqual(cfg.Backend, expectedBackend) {
		t.Fatalf("unexpected backend config:\nexpected: %#v\ngot:      %#v", expectedBackend, cfg.Backend)
	}

	if cfg.Session.TokenStore != TokenStoreRedis || cfg.Session.TokenKey != "ops:token" {
		t.Fatalf("unexpected session config %#v", cfg.Session)
	}
	if cfg.Session.IdleTimeout != 5*time.Minute {
		t.Fatalf("expected 5m idle timeout, got %v", cfg.Session.IdleTimeout)
	}
	if cfg.Redis.URI != "redis:6379" || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected redis config %#v", cfg.Redis)
	}
}

func TestBackendConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"http", "http://backend:5000", false},
		{"https with path", "https://ops.example.com/api-gw", false},
		{"empty", "", true},
		{"relative", "backend:5000", true},
		{"ftp", "ftp://backend", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BackendConfig{BaseURL: tt.baseURL}
			b.Sanitize()
			err := b.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackendConfig_Location(t *testing.T) {
	cfg := parseEnv(t, map[string]string{"BACKEND_TIMEZONE": " Asia/Jakarta "})
	cfg.Sanitize()
	loc, err := cfg.Backend.Location()
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	day := time.Date(2025, 5, 31, 17, 0, 0, 0, time.UTC).In(loc).Format(time.DateOnly)
	if day != "2025-06-01" {
		t.Fatalf("expected 17:00Z to be 1 June in Jakarta, got %s", day)
	}

	b := BackendConfig{}
	if loc, err := b.Location(); err != nil || loc != time.UTC {
		t.Fatalf("empty timezone should be UTC, got %v, %v", loc, err)
	}

	b = BackendConfig{BaseURL: "http://backend:5000", Timezone: "Mars/Olympus"}
	b.Sanitize()
	if err := b.Validate(); err == nil || !strings.Contains(err.Error(), "BACKEND_TIMEZONE") {
		t.Fatalf("expected unknown timezone error, got %v", err)
	}
}

func TestSessionConfig_Sanitize(t *testing.T) {
	s := SessionConfig{IdleTimeout: -time.Second, TokenStore: " "}
	s.Sanitize()

	if s.IdleTimeout != 0 {
		t.Fatalf("negative idle timeout should clamp to 0, got %v", s.IdleTimeout)
	}
	if s.TokenStore != TokenStoreFile || s.TokenFile == "" {
		t.Fatalf("expected file store with default path, got %#v", s)
	}
	if s.TokenKey != "prodmon:token" {
		t.Fatalf("expected default token key, got %q", s.TokenKey)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestSessionConfig_ValidateUnknownStore(t *testing.T) {
	s := SessionConfig{TokenStore: "sqlite"}
	s.Sanitize()
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for unknown token store")
	}
}

func TestLogConfig_Sanitize(t *testing.T) {
	tests := []struct {
		in     LogConfig
		dev    bool
		level  slog.Level
		format string
	}{
		{LogConfig{Level: "DEBUG"}, false, slog.LevelDebug, "json"},
		{LogConfig{Level: "error", Format: "TEXT"}, false, slog.LevelError, "text"},
		{LogConfig{Level: "bogus"}, true, slog.LevelInfo, "text"},
		{LogConfig{Level: "warn", Format: "xml"}, false, slog.LevelWarn, "json"},
	}

	for _, tt := range tests {
		l := tt.in
		l.Sanitize(tt.dev)
		if l.SlogLevel() != tt.level || l.Format != tt.format {
			t.Fatalf("Sanitize(%#v, dev=%v) = %#v", tt.in, tt.dev, l)
		}
	}
}

func TestMetricsConfig_Sanitize(t *testing.T) {
	cfg := parseEnv(t, map[string]string{
		"OBSERVABILITY_METRICS_ENABLED": "true",
		"OBSERVABILITY_METRICS_PREFIX":  " ops.prodmon. ",
	})
	cfg.Sanitize()
	if !cfg.Metrics.IsEnabled() || cfg.Metrics.StatsdAddress != "127.0.0.1:8125" {
		t.Fatalf("expected metrics enabled on default address, got %#v", cfg.Metrics)
	}
	if cfg.Metrics.Prefix != "ops.prodmon" {
		t.Fatalf("unexpected prefix %q", cfg.Metrics.Prefix)
	}

	m := MetricsConfig{Enabled: true, StatsdAddress: "  "}
	m.Sanitize()
	if m.IsEnabled() || m.Prefix != "prodmon" {
		t.Fatalf("blank address should disable metrics, got %#v", m)
	}
}
