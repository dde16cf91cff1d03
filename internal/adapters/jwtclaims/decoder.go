// Package jwtclaims decodes the backend's compact bearer tokens into session claims.
//
// Decoding never verifies the signature. The backend is the only authority on a
// token's authenticity; the decoded claims are used for display and for an early
// expiry check only, never for enforcing access.
package jwtclaims

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

var _ ports.TokenDecoder = (*Decoder)(nil)

// Decoder parses token payloads without signature verification. The header
// segment is never read.
type Decoder struct {
	parser *jwt.Parser
}

// NewDecoder creates a Decoder. Padded base64 segments are tolerated.
func NewDecoder() *Decoder {
	return &Decoder{
		parser: jwt.NewParser(jwt.WithPaddingAllowed()),
	}
}

// Decode implements ports.TokenDecoder.
func (d *Decoder) Decode(token string) (domainauth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domainauth.Claims{}, &domainauth.DecodeError{Reason: "empty token"}
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return domainauth.Claims{}, &domainauth.DecodeError{Reason: fmt.Sprintf("expected 3 segments, got %d", len(parts))}
	}

	// Only the payload matters; the header and signature are the backend's business.
	payload, err := d.parser.DecodeSegment(parts[1])
	if err != nil {
		return domainauth.Claims{}, &domainauth.DecodeError{Reason: "payload is not base64url", Err: err}
	}
	mc := jwt.MapClaims{}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&mc); err != nil {
		return domainauth.Claims{}, &domainauth.DecodeError{Reason: "payload is not a JSON object", Err: err}
	}

	return claimsFromMap(mc)
}

func claimsFromMap(mc jwt.MapClaims) (domainauth.Claims, error) {
	exp, err := mc.GetExpirationTime()
	if err != nil {
		return domainauth.Claims{}, &domainauth.DecodeError{Reason: "non-numeric exp", Err: err}
	}
	if exp == nil {
		return domainauth.Claims{}, &domainauth.DecodeError{Reason: "missing exp"}
	}

	id, err := idString(mc["id"])
	if err != nil {
		return domainauth.Claims{}, &domainauth.DecodeError{Reason: "invalid id", Err: err}
	}
	username, err := optionalString(mc, "username")
	if err != nil {
		return domainauth.Claims{}, &domainauth.DecodeError{Reason: "invalid username", Err: err}
	}
	role, err := optionalString(mc, "role")
	if err != nil {
		return domainauth.Claims{}, &domainauth.DecodeError{Reason: "invalid role", Err: err}
	}
	groups, err := groupList(mc["allowed_groups"])
	if err != nil {
		return domainauth.Claims{}, &domainauth.DecodeError{Reason: "invalid allowed_groups", Err: err}
	}

	return domainauth.Claims{
		SubjectID:     id,
		Username:      username,
		Role:          domainauth.Role(role),
		AllowedGroups: groups,
		ExpiresAt:     exp.Unix(),
	}, nil
}

func idString(v any) (string, error) {
	switch id := v.(type) {
	case nil:
		return "", nil
	case json.Number:
		return id.String(), nil
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	case string:
		return id, nil
	default:
		return "", fmt.Errorf("unexpected type %T", v)
	}
}

func optionalString(mc jwt.MapClaims, key string) (string, error) {
	v, ok := mc[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %T", v)
	}
	return s, nil
}

// groupList accepts the comma-joined form the backend issues and, leniently,
// a JSON array of strings.
func groupList(v any) ([]string, error) {
	switch g := v.(type) {
	case nil:
		return []string{}, nil
	case string:
		return domainauth.SplitGroups(g), nil
	case []any:
		out := make([]string, 0, len(g))
		for _, item := range g {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string group, got %T", item)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected type %T", v)
	}
}

// Encode mints an HS256 token carrying claims in the backend's payload shape.
// It is used to seed development sessions and in tests.
func Encode(claims domainauth.Claims, key []byte) (string, error) {
	if len(key) == 0 {
		return "", errors.New("signing key is required")
	}
	mc := jwt.MapClaims{
		"id":             claims.SubjectID,
		"username":       claims.Username,
		"role":           string(claims.Role),
		"allowed_groups": domainauth.JoinGroups(claims.AllowedGroups),
		"exp":            claims.ExpiresAt,
	}
	if n, err := strconv.ParseInt(claims.SubjectID, 10, 64); err == nil {
		mc["id"] = n
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
