package auth

import "context"

// CookieName is the cookie carrying the signed identity token.
const CookieName = "jwt"

// Identity is the authenticated caller attached to a request context by the
// identity middleware.
type Identity struct {
	UserID string
}

type contextKey struct{}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext extracts the identity placed by the middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
