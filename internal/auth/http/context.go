// Package http provides HTTP middleware and handlers for authentication and
// the admin allow-list.
package http

import (
	"context"

	authDomain "github.com/agentvault/agentvault/internal/auth/domain"
)

// principalKey is a context key type for storing authenticated principals.
type principalKey struct{}

// WithPrincipal stores an authenticated principal in the context.
// This is typically called by the authentication middleware after successful token validation.
func WithPrincipal(ctx context.Context, principal *authDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves an authenticated principal from the context.
// Returns (principal, true) if present, or (nil, false) if no principal was set.
func GetPrincipal(ctx context.Context) (*authDomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*authDomain.Principal)
	return principal, ok
}
