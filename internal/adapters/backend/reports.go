package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/sigmaport/prodmon-ui/internal/domain/model"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

var _ ports.ReportsAPI = (*ReportsClient)(nil)

// ReportsClient is the authenticated part of the backend API.
type ReportsClient struct {
	*Client
	authed *http.Client
	units  singleflight.Group
}

// WithCredentials returns a ReportsClient whose requests carry the bearer
// token obtained from src at request time.
func (c *Client) WithCredentials(src oauth2.TokenSource) *ReportsClient {
	return &ReportsClient{
		Client: c,
		authed: &http.Client{
			Timeout:   c.timeout,
			Transport: &oauth2.Transport{Source: src, Base: c.transport},
		},
	}
}

// do performs an authenticated call and decodes a 2xx body into out.
func (r *ReportsClient) do(ctx context.Context, method, endpoint string, body, out any) error {
	req, err := r.newRequest(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	resp, err := r.authed.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		drainAndClose(resp)
		return fmt.Errorf("%s %s: %d: %w", method, req.URL.Path, resp.StatusCode, ports.ErrUnauthorized)
	case resp.StatusCode == http.StatusNotFound:
		drainAndClose(resp)
		return fmt.Errorf("%s %s: %w", method, req.URL.Path, ports.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		b := readErrorBody(resp)
		_ = resp.Body.Close()
		return &APIError{Method: method, Path: req.URL.Path, Status: resp.StatusCode, Message: r.errorMessage(b)}
	}
	defer drainAndClose(resp)

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, req.URL.Path, err)
	}
	if err := json.Unmarshal(unwrapData(raw), out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, req.URL.Path, err)
	}
	return nil
}

//nolint:gochecknoglobals // read-only set of envelope keys
var envelopeKeys = map[string]bool{"data": true, "success": true, "status": true, "message": true, "meta": true}

// unwrapData accepts both bare payloads and {"data": ...} envelopes.
func unwrapData(raw json.RawMessage) json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return raw
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		return raw
	}
	data, ok := env["data"]
	if !ok {
		return raw
	}
	for k := range env {
		if !envelopeKeys[k] {
			return raw
		}
	}
	return data
}

// ListUnits coalesces concurrent calls into one request.
func (r *ReportsClient) ListUnits(ctx context.Context) ([]model.Unit, error) {
	v, err, _ := r.units.Do("units", func() (any, error) {
		var units []model.Unit
		if err := r.do(ctx, http.MethodGet, r.endpoint("api", "units"), nil, &units); err != nil {
			return nil, err
		}
		return units, nil
	})
	if err != nil {
		return nil, err
	}
	units := v.([]model.Unit)
	out := make([]model.Unit, len(units))
	copy(out, units)
	return out, nil
}

func (r *ReportsClient) dashboardEndpoint(q ports.DashboardQuery) string {
	tail := []string{strconv.Itoa(q.UnitID), strconv.Itoa(q.Year), strconv.Itoa(q.Month)}
	if q.Module == model.ModuleProduksi || q.Module == "" {
		return r.endpoint(append([]string{"api", "dashboard"}, tail...)...)
	}
	return r.endpoint(append([]string{"api", string(q.Module), "dashboard"}, tail...)...)
}

// Dashboard fetches one unit-month dashboard.
func (r *ReportsClient) Dashboard(ctx context.Context, q ports.DashboardQuery) (model.DashboardSummary, error) {
	var out model.DashboardSummary
	if err := r.do(ctx, http.MethodGet, r.dashboardEndpoint(q), nil, &out); err != nil {
		return model.DashboardSummary{}, err
	}
	return out, nil
}

// Releases fetches a module's monthly release rows for a year.
func (r *ReportsClient) Releases(ctx context.Context, module model.Module, year int) ([]model.ReleaseRow, error) {
	var out []model.ReleaseRow
	err := r.do(ctx, http.MethodGet, r.endpoint("api", string(module), "rilis", strconv.Itoa(year)), nil, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReportsClient) laporanEndpoint(module model.Module, id ...int) string {
	segs := []string{"api", string(module), "laporan"}
	for _, i := range id {
		segs = append(segs, strconv.Itoa(i))
	}
	return r.endpoint(segs...)
}

// ListReports lists report rows filtered by query.
func (r *ReportsClient) ListReports(ctx context.Context, module model.Module, query url.Values) ([]model.Report, error) {
	endpoint := r.laporanEndpoint(module)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var out []model.Report
	if err := r.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetReport fetches one report row.
func (r *ReportsClient) GetReport(ctx context.Context, module model.Module, id int) (model.Report, error) {
	var out model.Report
	if err := r.do(ctx, http.MethodGet, r.laporanEndpoint(module, id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReport creates a report row.
func (r *ReportsClient) CreateReport(ctx context.Context, module model.Module, report model.Report) (model.Report, error) {
	var out model.Report
	if err := r.do(ctx, http.MethodPost, r.laporanEndpoint(module), report, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateReport replaces a report row.
func (r *ReportsClient) UpdateReport(ctx context.Context, module model.Module, id int, report model.Report) (model.Report, error) {
	var out model.Report
	if err := r.do(ctx, http.MethodPut, r.laporanEndpoint(module, id), report, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteReport deletes a report row.
func (r *ReportsClient) DeleteReport(ctx context.Context, module model.Module, id int) error {
	return r.do(ctx, http.MethodDelete, r.laporanEndpoint(module, id), nil, nil)
}

// ListTargets lists RKAP targets for a year.
func (r *ReportsClient) ListTargets(ctx context.Context, year int) ([]model.Target, error) {
	var out []model.Target
	if err := r.do(ctx, http.MethodGet, r.endpoint("api", "rkap", strconv.Itoa(year)), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveTarget creates or replaces a monthly target.
func (r *ReportsClient) SaveTarget(ctx context.Context, target model.Target) (model.Target, error) {
	var out model.Target
	if err := r.do(ctx, http.MethodPost, r.endpoint("api", "rkap"), target, &out); err != nil {
		return model.Target{}, err
	}
	if out.UnitID == 0 {
		// Some deployments answer with a bare acknowledgement.
		return target, nil
	}
	return out, nil
}
