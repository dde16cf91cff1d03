package config

import (
	"errors"
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - backend.go: Backend REST API connection
//   - session.go: Token storage and idle timeout
//   - redis.go: Redis connection for the redis token store
//   - http.go: HTTP server configuration
//   - logging.go: Log level and format
//   - observability.go: StatsD metrics
type AppConfig struct {
	// IsDev controls development mode behavior (text logs, relaxed defaults).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	Log     LogConfig
	HTTP    HTTPConfig
	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig `envPrefix:"REDIS_"`
	Metrics MetricsConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.detectDevMode()

	c.Log.Sanitize(c.IsDev)
	c.HTTP.Sanitize()
	c.Backend.Sanitize()
	c.Session.Sanitize()
	c.Metrics.Sanitize()
}

// Validate reports settings that cannot work. Call it after Sanitize.
func (c *AppConfig) Validate() error {
	var errs []error
	if err := c.Backend.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Session.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
