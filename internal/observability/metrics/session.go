// Package metrics emits the dashboard's session and backend metrics.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	obserrors "github.com/sigmaport/prodmon-ui/internal/observability/errors"
	"github.com/sigmaport/prodmon-ui/internal/observability/statsd"
)

// Result tag values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// EmitSessionEnded counts a session end by reason.
func EmitSessionEnded(sink statsd.Sink, end domainauth.SessionEnd) {
	if sink == nil {
		return
	}
	reason := string(end.Reason)
	if reason == "" {
		reason = "unknown"
	}
	sink.Count("session.ended", 1, map[string]string{
		"reason": reason,
		"forced": strconv.FormatBool(end.Reason.IsForced()),
	})
}

// Transport records count and latency of every backend request.
type Transport struct {
	Base http.RoundTripper
	Sink statsd.Sink
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	start := time.Now()
	resp, err := base.RoundTrip(req)
	if t.Sink == nil {
		return resp, err
	}

	tags := map[string]string{
		"method":   req.Method,
		"endpoint": EndpointTag(req.URL.Path),
		"result":   ResultSuccess,
	}
	switch {
	case err != nil:
		tags["result"] = ResultError
		tags["error_class"] = obserrors.Classify(err)
	case resp.StatusCode >= 400:
		tags["result"] = ResultError
		tags["status"] = strconv.Itoa(resp.StatusCode)
	default:
		tags["status"] = strconv.Itoa(resp.StatusCode)
	}
	t.Sink.Count("backend.request", 1, tags)
	t.Sink.Timing("backend.duration", time.Since(start), tags)
	return resp, err
}

// EndpointTag collapses a request path into a bounded tag value: the api
// prefix is dropped and numeric segments become "n".
// /api/produksi/rilis/2025 -> produksi.rilis.n
func EndpointTag(path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(parts) > 0 && parts[0] == "api" {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return "root"
	}
	for i, p := range parts {
		if _, err := strconv.Atoi(p); err == nil {
			parts[i] = "n"
		}
	}
	return strings.Join(parts, ".")
}
