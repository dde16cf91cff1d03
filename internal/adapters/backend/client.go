// Package backend is the HTTP client for the production-monitoring REST API.
//
// Client handles the anonymous login call. ReportsClient carries the session's
// bearer token on every request through oauth2.Transport, reading it from the
// session per request.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// DefaultErrorMessagePath picks the message out of an error body.
const DefaultErrorMessagePath = "message || error"

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// Config captures the backend connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// ErrorMessagePath is a JMESPath expression evaluated against JSON error
	// bodies to find the operator-facing message.
	ErrorMessagePath string
	// Transport is the base round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
	Logger    *slog.Logger
}

// Client talks to the backend without credentials.
type Client struct {
	base      *url.URL
	timeout   time.Duration
	msgPath   string
	transport http.RoundTripper
	http      *http.Client
	logger    *slog.Logger
}

// New builds a Client. Callers should pass a validated config.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("backend base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend base url %q must be http or https", raw)
	}

	msgPath := strings.TrimSpace(cfg.ErrorMessagePath)
	if msgPath == "" {
		msgPath = DefaultErrorMessagePath
	}
	if _, err := jmespath.Compile(msgPath); err != nil {
		return nil, fmt.Errorf("compile error message path %q: %w", msgPath, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rt := cfg.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:      base,
		timeout:   timeout,
		msgPath:   msgPath,
		transport: rt,
		http:      &http.Client{Timeout: timeout, Transport: rt},
		logger:    logger.With("component", "backend"),
	}, nil
}

// APIError is a non-2xx backend answer other than 401, 403 and 404.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("backend %s %s: %d", e.Method, e.Path, e.Status)
}

// StatusCode returns the HTTP status.
func (e *APIError) StatusCode() int { return e.Status }

// PublicMessage returns the backend's message for the operator.
func (e *APIError) PublicMessage() string { return e.Message }

func (c *Client) endpoint(segments ...string) string {
	return c.base.JoinPath(segments...).String()
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, r)
	if err != nil {
		return nil, fmt.Errorf("create backend request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// errorMessage evaluates the configured JMESPath against an error body.
// Non-JSON bodies yield their trimmed text.
func (c *Client) errorMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		if body[0] == '<' {
			return ""
		}
		return truncate(string(body), 200)
	}
	v, err := jmespath.Search(c.msgPath, doc)
	if err != nil {
		c.logger.Debug("evaluate error message path", "path", c.msgPath, "error", err)
		return ""
	}
	switch m := v.(type) {
	case string:
		return strings.TrimSpace(m)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(m)
		return string(b)
	}
}

func readErrorBody(resp *http.Response) []byte {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return b
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
