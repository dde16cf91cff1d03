package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClaims_Expiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	future := Claims{ExpiresAt: now.Unix() + 60}
	assert.False(t, future.IsExpired(now))
	assert.True(t, future.ValidAt(now))

	past := Claims{ExpiresAt: now.Unix() - 1}
	assert.True(t, past.IsExpired(now))
	assert.False(t, past.ValidAt(now))

	// Exactly at expiry the token is neither expired nor valid.
	edge := Claims{ExpiresAt: now.Unix()}
	assert.False(t, edge.IsExpired(now))
	assert.False(t, edge.ValidAt(now))
}

func TestClaims_UserCopiesGroups(t *testing.T) {
	c := Claims{SubjectID: "7", Username: "budi", Role: RoleEntryAdmin, AllowedGroups: []string{"Pabrik"}}
	u := c.User()
	u.AllowedGroups[0] = "BKS"

	assert.Equal(t, "Pabrik", c.AllowedGroups[0])
	assert.Equal(t, "7", u.ID)
	assert.Equal(t, "budi", u.Username)
	assert.Equal(t, RoleEntryAdmin, u.Role)
}

func TestSplitGroups(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"  ", []string{}},
		{"Pabrik", []string{"Pabrik"}},
		{"Pabrik,BKS", []string{"Pabrik", "BKS"}},
		{" Pabrik , ,BKS ,", []string{"Pabrik", "BKS"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitGroups(tt.in), "input %q", tt.in)
	}
	assert.Equal(t, "Pabrik,BKS", JoinGroups(SplitGroups("Pabrik, BKS")))
}

func TestEndReason_IsForced(t *testing.T) {
	assert.False(t, EndReasonManual.IsForced())
	assert.False(t, EndReasonNone.IsForced())
	assert.False(t, EndReasonInvalidToken.IsForced())
	assert.True(t, EndReasonIdle.IsForced())
	assert.True(t, EndReasonExpired.IsForced())
	assert.True(t, EndReasonUnauthorized.IsForced())
}

func TestParseActivityKind(t *testing.T) {
	k, ok := ParseActivityKind(" Click ")
	assert.True(t, ok)
	assert.Equal(t, ActivityClick, k)

	_, ok = ParseActivityKind("wheel")
	assert.False(t, ok)
}
