package auth

import (
	"context"
)

type contextKey string

// ContextKeyAuthority is the context key for the authenticated caller
const ContextKeyAuthority contextKey = "authority"

// WithAuthority adds the caller authority to the context
func WithAuthority(ctx context.Context, a Authority) context.Context {
	return context.WithValue(ctx, ContextKeyAuthority, a)
}

// AuthorityFromContext retrieves the caller authority from the context
func AuthorityFromContext(ctx context.Context) (Authority, bool) {
	a, ok := ctx.Value(ContextKeyAuthority).(Authority)
	return a, ok
}
