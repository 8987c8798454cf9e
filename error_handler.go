package oidcauth

import (
	"errors"
	"net/http"
)

// ErrorHandler is a handler which is called when an error occurs in the
// middleware or during identity extraction. Among some general errors, this
// handler also determines the response when a token is not found or is
// invalid. The err can be checked against ErrTokenMissing, ErrTokenInvalid,
// ErrNoTokenContext and ErrClaimsShape for specific cases. The default
// handler returns 401 for all four of those and 500 for anything else. If
// you implement your own ErrorHandler you MUST take the error kinds into
// consideration, as not responding to them properly can leave protected
// routes open.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler is the default error handler implementation. If an
// error handler is not provided via the WithErrorHandler option this will be
// used.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, ErrTokenMissing):
		w.Header().Set("WWW-Authenticate", `Bearer`)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bearer token is missing."}`))
	case errors.Is(err, ErrTokenInvalid):
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bearer token is invalid."}`))
	case errors.Is(err, ErrNoTokenContext), errors.Is(err, ErrClaimsShape):
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"No token found or token is not authorized."}`))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Something went wrong while checking the token."}`))
	}
}
