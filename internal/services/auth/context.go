package auth

import (
	"context"
	"strings"
)

type identityContextKey string

const identityKey identityContextKey = "auth_identity"

type Identity struct {
	UserID string
	Role   string
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// ResolveActor returns the user a request acts for. A verified identity wins;
// a claimed id that disagrees with it is ErrForbidden. Without an identity the
// claimed id is trusted, and an empty one is ErrUnauthorized.
func ResolveActor(ctx context.Context, claimed string) (string, error) {
	claimed = strings.TrimSpace(claimed)
	if identity, ok := IdentityFromContext(ctx); ok && identity.UserID != "" {
		if claimed != "" && claimed != identity.UserID {
			return "", ErrForbidden
		}
		return identity.UserID, nil
	}
	if claimed == "" {
		return "", ErrUnauthorized
	}
	return claimed, nil
}
