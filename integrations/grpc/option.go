package grpcauth

import (
	"errors"

	oidcauth "github.com/digilectron/go-oidc-auth"
)

// Option configures the Interceptor. Options returning an error abort New.
type Option func(*Interceptor) error

// WithTokenExtractor sets the function to extract the token from the
// incoming RPC context.
//
// Default: MetadataTokenExtractor.
func WithTokenExtractor(e TokenExtractor) Option {
	return func(i *Interceptor) error {
		if e == nil {
			return ErrTokenExtractorNil
		}
		i.tokenExtractor = e
		return nil
	}
}

// WithErrorHandler sets the function mapping verification failures onto the
// status errors returned to clients.
//
// Default: DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(i *Interceptor) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		i.errorHandler = h
		return nil
	}
}

// WithCredentialsOptional sets whether credentials are optional. If set to
// true, RPCs without a token proceed without a token context, and identity
// extraction on them reports ErrNoTokenContext.
//
// Default: false (credentials required).
func WithCredentialsOptional(value bool) Option {
	return func(i *Interceptor) error {
		i.credentialsOptional = value
		return nil
	}
}

// WithExcludedMethods excludes full method names from token verification,
// in the "/package.Service/Method" form, such as
// "/grpc.health.v1.Health/Check".
func WithExcludedMethods(methods ...string) Option {
	return func(i *Interceptor) error {
		if len(methods) == 0 {
			return ErrExcludedMethodsEmpty
		}
		for _, method := range methods {
			i.excludedMethods[method] = true
		}
		return nil
	}
}

// WithLogger sets an optional logger for the interceptor. The interface is
// compatible with log/slog.Logger; see the root package's Logger for
// adapters.
//
// Default: no logging.
func WithLogger(logger oidcauth.Logger) Option {
	return func(i *Interceptor) error {
		if logger == nil {
			return ErrLoggerNil
		}
		i.logger = logger
		return nil
	}
}

// Sentinel errors for configuration validation.
var (
	ErrTokenExtractorNil    = errors.New("tokenExtractor cannot be nil")
	ErrErrorHandlerNil      = errors.New("errorHandler cannot be nil")
	ErrExcludedMethodsEmpty = errors.New("excluded methods list cannot be empty")
	ErrLoggerNil            = errors.New("logger cannot be nil")
)
