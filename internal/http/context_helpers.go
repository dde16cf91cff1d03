package httpx

import (
	"context"

	domainauth "github.com/sigmaport/prodmon-ui/internal/domain/auth"
)

// userKey is an unexported context key type to avoid collisions across packages.
type userKey struct{}

// SetUserInContext returns a child context that carries the signed-in user.
func SetUserInContext(ctx context.Context, user domainauth.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the user stored by RequireSession and whether one is present.
func UserFromContext(ctx context.Context) (domainauth.User, bool) {
	u, ok := ctx.Value(userKey{}).(domainauth.User)
	return u, ok
}
