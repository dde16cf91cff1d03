package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata" // zone names resolve on hosts without a zoneinfo database
)

// BackendConfig describes the production-monitoring REST API the dashboard fronts.
type BackendConfig struct {
	// BaseURL is the API origin, e.g. http://10.0.0.5:5000. Required.
	BaseURL string `env:"BACKEND_BASE_URL"`

	// Timeout bounds each backend request.
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`

	// ErrorMessagePath is a JMESPath expression that extracts the
	// operator-facing message from a JSON error body.
	ErrorMessagePath string `env:"BACKEND_ERROR_MESSAGE_PATH" envDefault:"message || error"`

	// Timezone is the IANA zone the backend's plants report in. Report
	// timestamps are bucketed into calendar days in this zone.
	Timezone string `env:"BACKEND_TIMEZONE" envDefault:"Asia/Jakarta"`
}

// Sanitize normalises backend settings.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = 15 * time.Second
	}
	b.ErrorMessagePath = strings.TrimSpace(b.ErrorMessagePath)
	if b.ErrorMessagePath == "" {
		b.ErrorMessagePath = "message || error"
	}
	b.Timezone = strings.TrimSpace(b.Timezone)
}

// Location resolves Timezone. An empty Timezone means UTC.
func (b *BackendConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, fmt.Errorf("BACKEND_TIMEZONE %q: %w", b.Timezone, err)
	}
	return loc, nil
}

// Validate checks that BaseURL is an absolute http(s) URL and that
// Timezone names a known zone.
func (b *BackendConfig) Validate() error {
	if _, err := b.Location(); err != nil {
		return err
	}
	if b.BaseURL == "" {
		return errors.New("BACKEND_BASE_URL is required")
	}
	u, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("BACKEND_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BACKEND_BASE_URL %q must be an absolute http(s) URL", b.BaseURL)
	}
	return nil
}
