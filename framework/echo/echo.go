// Package echoauth adapts the token verification middleware to the Echo
// framework.
//
// The adapter wraps the net/http middleware so exclusion rules, credential
// extraction and error rendering behave identically across frameworks:
//
//	v, err := verifier.New("https://issuer.example.com/",
//	    verifier.WithAudiences("https://api.example.com"),
//	    verifier.WithDiscovery(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	mw, err := echoauth.New(v)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	e := echo.New()
//	e.Use(mw)
//	e.GET("/me", func(c echo.Context) error {
//	    id, err := echoauth.Identity[MyClaims](c)
//	    if err != nil {
//	        return echo.NewHTTPError(http.StatusUnauthorized)
//	    }
//	    return c.JSON(http.StatusOK, map[string]string{"subject": id.Claims.Subject})
//	})
package echoauth

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	oidcauth "github.com/digilectron/go-oidc-auth"
)

// echoContextKey carries the echo.Context through the request context so the
// bridged error handler renders on the live request instead of a detached
// context.
type echoContextKey struct{}

// ErrorHandler is called when verification fails, with the Echo context of
// the rejected request.
type ErrorHandler func(c echo.Context, err error)

type config struct {
	errorHandler   ErrorHandler
	middlewareOpts []oidcauth.Option
}

// New returns an echo.MiddlewareFunc that verifies the credential on each
// request before the route handler runs. Requests that fail verification are
// rendered by the configured ErrorHandler and the handler chain stops.
// Errors returned by downstream handlers propagate to Echo's error handling
// as usual.
func New(verifier oidcauth.TokenVerifier, opts ...Option) (echo.MiddlewareFunc, error) {
	cfg := &config{
		errorHandler: DefaultErrorHandler,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	middlewareOpts := append([]oidcauth.Option{
		oidcauth.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			c, ok := r.Context().Value(echoContextKey{}).(echo.Context)
			if !ok {
				oidcauth.DefaultErrorHandler(w, r, err)
				return
			}
			cfg.errorHandler(c, err)
		}),
	}, cfg.middlewareOpts...)

	m, err := oidcauth.New(verifier, middlewareOpts...)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var nextErr error
			encounteredError := true
			var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
				encounteredError = false
				c.SetRequest(r)
				nextErr = next(c)
			}

			request := c.Request()
			ctx := context.WithValue(request.Context(), echoContextKey{}, c)
			m.CheckToken(handler).ServeHTTP(c.Response(), request.WithContext(ctx))

			if encounteredError {
				// The error handler already rendered the response.
				return nil
			}
			return nextErr
		}
	}, nil
}

// DefaultErrorHandler renders the same JSON responses as the net/http
// middleware.
func DefaultErrorHandler(c echo.Context, err error) {
	oidcauth.DefaultErrorHandler(c.Response(), c.Request(), err)
}

// Identity returns the verified token and typed claims for the request.
// It fails with an error matching oidcauth.ErrNoTokenContext when the
// middleware did not attach a verified token, and with one matching
// oidcauth.ErrClaimsShape when the claims cannot populate T.
func Identity[T any](c echo.Context) (oidcauth.Identity[T], error) {
	return oidcauth.Extract[T](c.Request())
}

// MustIdentity is like Identity but panics when the identity is unavailable.
// Use it only on routes guarded by the middleware without optional
// credentials.
func MustIdentity[T any](c echo.Context) oidcauth.Identity[T] {
	return oidcauth.MustFromContext[T](c.Request().Context())
}
