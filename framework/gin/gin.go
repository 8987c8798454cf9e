// Package ginauth adapts the token verification middleware to the Gin
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
//	mw, err := ginauth.New(v)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	router := gin.Default()
//	router.Use(mw)
//	router.GET("/me", func(c *gin.Context) {
//	    id, err := ginauth.Identity[MyClaims](c)
//	    if err != nil {
//	        c.AbortWithStatus(http.StatusUnauthorized)
//	        return
//	    }
//	    c.JSON(http.StatusOK, gin.H{"subject": id.Claims.Subject})
//	})
package ginauth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	oidcauth "github.com/digilectron/go-oidc-auth"
)

// ginContextKey carries the *gin.Context through the request context so the
// bridged error handler can reach Gin's abort machinery.
type ginContextKey struct{}

// ErrorHandler is called when verification fails, with the Gin context of
// the rejected request.
type ErrorHandler func(c *gin.Context, err error)

type config struct {
	errorHandler   ErrorHandler
	middlewareOpts []oidcauth.Option
}

// New returns a gin.HandlerFunc that verifies the credential on each request
// before the route handlers run. Requests that fail verification are
// rendered by the configured ErrorHandler and aborted.
func New(verifier oidcauth.TokenVerifier, opts ...Option) (gin.HandlerFunc, error) {
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
			c, ok := r.Context().Value(ginContextKey{}).(*gin.Context)
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

	return func(c *gin.Context) {
		encounteredError := true
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			encounteredError = false
			c.Request = r
			c.Next()
		}

		ctx := context.WithValue(c.Request.Context(), ginContextKey{}, c)
		m.CheckToken(handler).ServeHTTP(c.Writer, c.Request.WithContext(ctx))

		if encounteredError {
			c.Abort()
		}
	}, nil
}

// DefaultErrorHandler renders the same JSON responses as the net/http
// middleware and aborts the request chain.
func DefaultErrorHandler(c *gin.Context, err error) {
	oidcauth.DefaultErrorHandler(c.Writer, c.Request, err)
	c.Abort()
}

// Identity returns the verified token and typed claims for the request.
// It fails with an error matching oidcauth.ErrNoTokenContext when the
// middleware did not attach a verified token, and with one matching
// oidcauth.ErrClaimsShape when the claims cannot populate T.
func Identity[T any](c *gin.Context) (oidcauth.Identity[T], error) {
	return oidcauth.Extract[T](c.Request)
}

// MustIdentity is like Identity but panics when the identity is unavailable.
// Use it only on routes guarded by the middleware without optional
// credentials.
func MustIdentity[T any](c *gin.Context) oidcauth.Identity[T] {
	return oidcauth.MustFromContext[T](c.Request.Context())
}
