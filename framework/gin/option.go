package ginauth

import (
	"errors"

	oidcauth "github.com/digilectron/go-oidc-auth"
)

// Option configures the middleware returned by New.
type Option func(*config) error

// Sentinel errors for configuration validation.
var (
	ErrErrorHandlerNil = errors.New("errorHandler cannot be nil")
)

// WithErrorHandler sets the handler invoked when verification fails. The
// default renders the same JSON responses as the net/http middleware and
// aborts the request chain.
func WithErrorHandler(h ErrorHandler) Option {
	return func(cfg *config) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		cfg.errorHandler = h
		return nil
	}
}

// WithMiddlewareOptions forwards options to the wrapped middleware, for
// example oidcauth.WithCredentialsOptional or oidcauth.WithExclusionURLs.
func WithMiddlewareOptions(opts ...oidcauth.Option) Option {
	return func(cfg *config) error {
		cfg.middlewareOpts = append(cfg.middlewareOpts, opts...)
		return nil
	}
}
