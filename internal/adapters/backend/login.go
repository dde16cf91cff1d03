package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

var _ ports.Authenticator = (*Client)(nil)

const loginPath = "/api/auth/login"

type loginResponse struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

// wireUser tolerates numeric or string ids and comma-joined or array groups.
type wireUser struct {
	ID            json.RawMessage `json:"id"`
	Username      string          `json:"username"`
	Role          string          `json:"role"`
	AllowedGroups json.RawMessage `json:"allowed_groups"`
}

func (w wireUser) user() (domainauth.User, error) {
	id, err := rawID(w.ID)
	if err != nil {
		return domainauth.User{}, err
	}
	groups, err := rawGroups(w.AllowedGroups)
	if err != nil {
		return domainauth.User{}, err
	}
	return domainauth.User{
		ID:            id,
		Username:      w.Username,
		Role:          domainauth.Role(w.Role),
		AllowedGroups: groups,
	}, nil
}

func rawID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("user id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("user id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}

// rawGroups returns nil when the field is absent so the claims win.
func rawGroups(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("allowed_groups: %w", err)
		}
		return domainauth.SplitGroups(s), nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("allowed_groups: %w", err)
	}
	return domainauth.SplitGroups(domainauth.JoinGroups(list)), nil
}

// Login implements ports.Authenticator. Every failure is a
// *domainauth.AuthFailure; Status is 0 when the backend could not be reached.
func (c *Client) Login(ctx context.Context, in ports.LoginRequest) (ports.LoginResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint(loginPath), in)
	if err != nil {
		return ports.LoginResponse{}, &domainauth.AuthFailure{Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.LoginResponse{}, &domainauth.AuthFailure{Err: fmt.Errorf("login request: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := readErrorBody(resp)
		_ = resp.Body.Close()
		msg := c.errorMessage(body)
		if msg == "" {
			msg = fmt.Sprintf("Login failed (%s).", http.StatusText(resp.StatusCode))
		}
		return ports.LoginResponse{}, &domainauth.AuthFailure{Message: msg, Status: resp.StatusCode}
	}
	defer drainAndClose(resp)

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return ports.LoginResponse{}, &domainauth.AuthFailure{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("decode login response: %w", err),
		}
	}
	if lr.Token == "" {
		return ports.LoginResponse{}, &domainauth.AuthFailure{
			Message: "The server did not return a session token.",
			Status:  resp.StatusCode,
		}
	}
	user, err := lr.User.user()
	if err != nil {
		return ports.LoginResponse{}, &domainauth.AuthFailure{Status: resp.StatusCode, Err: err}
	}
	return ports.LoginResponse{Token: lr.Token, User: user}, nil
}
