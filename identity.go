package oidcauth

import (
	"context"
	"net/http"

	"github.com/digilectron/go-oidc-auth/claims"
)

// Identity pairs the raw encoded credential with its claims converted into
// the caller's shape T. An Identity is created per extraction call, owned by
// that handler invocation, and holds no reference back to the claim document
// it was converted from.
type Identity[T any] struct {
	// Token is the original encoded credential, without a scheme prefix.
	Token string

	// Claims is the complete reshape of the verified claim set into T.
	Claims T
}

// FromContext extracts an Identity[T] from a request context. It is the
// transport-agnostic core every binding in this module adapts to: anything
// that can hand over a context.Context can resolve an identity.
//
// When no verified-token context is attached the error is ErrNoTokenContext.
// When the context is present but its claims cannot populate T the error
// matches ErrClaimsShape via errors.Is and carries a *claims.FieldError
// reachable with errors.As. Extraction is deterministic: retrying with the
// same context and shape cannot change the outcome.
func FromContext[T any](ctx context.Context) (Identity[T], error) {
	tc, ok := TokenContextFromContext(ctx)
	if !ok {
		return Identity[T]{}, ErrNoTokenContext
	}
	converted, err := claims.As[T](tc.Claims)
	if err != nil {
		return Identity[T]{}, &shapeError{details: err}
	}
	return Identity[T]{Token: tc.Token, Claims: converted}, nil
}

// MustFromContext extracts an Identity[T] or panics. Use only where the
// middleware is known to have run with credentials required.
func MustFromContext[T any](ctx context.Context) Identity[T] {
	id, err := FromContext[T](ctx)
	if err != nil {
		panic(err)
	}
	return id
}

// Extract resolves an Identity[T] for an HTTP request. It reads only the
// request context and never touches the body, so handlers are free to
// consume the body before or after extracting the identity.
func Extract[T any](r *http.Request) (Identity[T], error) {
	return FromContext[T](r.Context())
}

// RequireIdentity adapts a handler that takes the extracted identity as an
// argument. Extraction failures go to the error handler instead of the
// wrapped handler, so the handler body only ever sees a resolved identity.
// Identity extraction stays opt-in per route: handlers that are not wrapped
// and never call Extract behave identically whether or not the request
// carried a credential.
func RequireIdentity[T any](next func(w http.ResponseWriter, r *http.Request, id Identity[T])) http.Handler {
	return RequireIdentityWithErrorHandler(next, DefaultErrorHandler)
}

// RequireIdentityWithErrorHandler is RequireIdentity with a custom error
// handler for the extraction failures described on FromContext.
func RequireIdentityWithErrorHandler[T any](next func(w http.ResponseWriter, r *http.Request, id Identity[T]), onError ErrorHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := Extract[T](r)
		if err != nil {
			onError(w, r, err)
			return
		}
		next(w, r, id)
	})
}
