package jwtclaims

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-signing-key")

func segment(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return base64.RawURLEncoding.EncodeToString(b)
}

func rawToken(t *testing.T, payload any) string {
	t.Helper()
	return segment(t, map[string]string{"alg": "HS256", "typ": "JWT"}) + "." + segment(t, payload) + ".c2lnbmF0dXJl"
}

func TestDecode_RoundTrip(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	in := domainauth.Claims{
		SubjectID:     "42",
		Username:      "siti",
		Role:          domainauth.RoleEntryAdmin,
		AllowedGroups: []string{"Pabrik", "BKS"},
		ExpiresAt:     exp,
	}

	token, err := Encode(in, testKey)
	require.NoError(t, err)

	out, err := NewDecoder().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.False(t, out.IsExpired(time.Now()))
}

func TestDecode_NonNumericSubjectID(t *testing.T) {
	token, err := Encode(domainauth.Claims{SubjectID: "u-abc", ExpiresAt: time.Now().Add(time.Minute).Unix()}, testKey)
	require.NoError(t, err)

	out, err := NewDecoder().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "u-abc", out.SubjectID)
	assert.Empty(t, out.AllowedGroups)
}

func TestDecode_IgnoresSignature(t *testing.T) {
	token := rawToken(t, map[string]any{
		"id":             7,
		"username":       "andi",
		"role":           "admin",
		"allowed_groups": "",
		"exp":            time.Now().Add(time.Hour).Unix(),
	})

	out, err := NewDecoder().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "7", out.SubjectID)
	assert.Equal(t, domainauth.RoleAdmin, out.Role)
	assert.Empty(t, out.AllowedGroups)
}

func TestDecode_GroupArray(t *testing.T) {
	token := rawToken(t, map[string]any{
		"id":             1,
		"allowed_groups": []string{"Pabrik", " ", "Pemuatan"},
		"exp":            time.Now().Add(time.Hour).Unix(),
	})

	out, err := NewDecoder().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pabrik", "Pemuatan"}, out.AllowedGroups)
}

func TestDecode_PaddedPayload(t *testing.T) {
	b, err := json.Marshal(map[string]any{"id": 1, "exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)
	header := segment(t, map[string]string{"alg": "HS256"})
	token := header + "." + base64.URLEncoding.EncodeToString(b) + ".sig"

	_, err = NewDecoder().Decode(token)
	require.NoError(t, err)
}

func TestDecode_HeaderIsNotRead(t *testing.T) {
	payload := segment(t, map[string]any{"id": 3, "username": "siti", "exp": 4102444800})
	tests := []struct {
		name   string
		header string
	}{
		{"not base64 json", "xxx"},
		{"no alg", segment(t, map[string]string{"typ": "JWT"})},
		{"unknown alg", segment(t, map[string]string{"alg": "XX1"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewDecoder().Decode(tt.header + "." + payload + ".sig")
			require.NoError(t, err)
			assert.Equal(t, "3", out.SubjectID)
			assert.Equal(t, "siti", out.Username)
			assert.Equal(t, int64(4102444800), out.ExpiresAt)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one segment", "abc"},
		{"two segments", "abc.def"},
		{"four segments", "a.b.c.d"},
		{"payload not base64", segment(t, map[string]string{"alg": "HS256"}) + ".!!!.sig"},
		{"payload not json", segment(t, map[string]string{"alg": "HS256"}) + "." + base64.RawURLEncoding.EncodeToString([]byte("nope")) + ".sig"},
		{"non-numeric exp", rawToken(t, map[string]any{"id": 1, "exp": "tomorrow"})},
		{"missing exp", rawToken(t, map[string]any{"id": 1})},
		{"numeric username", rawToken(t, map[string]any{"username": 12, "exp": future})},
		{"object groups", rawToken(t, map[string]any{"allowed_groups": map[string]any{"a": 1}, "exp": future})},
		{"bool id", rawToken(t, map[string]any{"id": true, "exp": future})},
		{"payload is array", "x." + base64.RawURLEncoding.EncodeToString([]byte("[1]")) + ".sig"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDecoder().Decode(tt.token)
			require.Error(t, err)
			var decErr *domainauth.DecodeError
			assert.True(t, errors.As(err, &decErr), "want DecodeError, got %T", err)
		})
	}
}

func TestDecode_ExpiredStillDecodes(t *testing.T) {
	token, err := Encode(domainauth.Claims{SubjectID: "1", ExpiresAt: time.Now().Add(-time.Hour).Unix()}, testKey)
	require.NoError(t, err)

	out, err := NewDecoder().Decode(token)
	require.NoError(t, err)
	assert.True(t, out.IsExpired(time.Now()))
}

func TestEncode_RequiresKey(t *testing.T) {
	_, err := Encode(domainauth.Claims{}, nil)
	require.Error(t, err)
}
