package oidcauth

import (
	"context"

	"github.com/digilectron/go-oidc-auth/claims"
)

// TokenContext is the per-request verified-credential state the middleware
// attaches to the request context: the encoded token without its scheme
// prefix, and the decoded claim set. It is populated exactly once, before any
// handler runs, and is read-only afterwards, so concurrent extractions within
// the same request need no synchronization. Requests without a recognized
// credential carry no TokenContext at all.
type TokenContext struct {
	Token  string
	Claims *claims.Document
}

// contextKey is an unexported type for context keys to prevent collisions.
// Only this package can create values under it, so no other package can
// overwrite or shadow the token slot.
type contextKey int

const tokenContextKey contextKey = iota

// WithTokenContext returns a context carrying the verified-token state.
// Middleware and interceptors call this once per authenticated request;
// application code normally has no reason to.
func WithTokenContext(ctx context.Context, tc *TokenContext) context.Context {
	return context.WithValue(ctx, tokenContextKey, tc)
}

// TokenContextFromContext returns the verified-token state of the request and
// whether one is present.
func TokenContextFromContext(ctx context.Context) (*TokenContext, bool) {
	tc, ok := ctx.Value(tokenContextKey).(*TokenContext)
	return tc, ok
}

// HasTokenContext reports whether a verified token rides the context without
// retrieving it.
func HasTokenContext(ctx context.Context) bool {
	_, ok := TokenContextFromContext(ctx)
	return ok
}
