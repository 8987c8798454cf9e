package oidcauth

import (
	"errors"
	"net/http"
)

// Option configures the Middleware. Options returning an error abort New.
type Option func(*Middleware) error

// WithCredentialsOptional sets whether credentials are optional. If set to
// true, requests without a token pass through without a token context, and
// identity extraction on them reports ErrNoTokenContext.
//
// Default: false (credentials required).
func WithCredentialsOptional(value bool) Option {
	return func(m *Middleware) error {
		m.credentialsOptional = value
		return nil
	}
}

// WithValidateOnOptions sets whether OPTIONS requests should have their
// token verified.
//
// Default: true (OPTIONS requests are verified).
func WithValidateOnOptions(value bool) Option {
	return func(m *Middleware) error {
		m.validateOnOptions = value
		return nil
	}
}

// WithErrorHandler sets the handler called when errors occur during token
// verification. See the ErrorHandler type for more information.
//
// Default: DefaultErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Middleware) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		m.errorHandler = h
		return nil
	}
}

// WithTokenExtractor sets the function to extract the token from the request.
//
// Default: AuthHeaderTokenExtractor.
func WithTokenExtractor(e TokenExtractor) Option {
	return func(m *Middleware) error {
		if e == nil {
			return ErrTokenExtractorNil
		}
		m.tokenExtractor = e
		return nil
	}
}

// WithExclusionURLs configures URL patterns to exclude from token
// verification. Entries match either the full request URL or just its path.
func WithExclusionURLs(exclusions []string) Option {
	return func(m *Middleware) error {
		if len(exclusions) == 0 {
			return ErrExclusionURLsEmpty
		}
		m.exclusionHandler = func(r *http.Request) bool {
			requestFullURL := r.URL.String()
			requestPath := r.URL.Path

			for _, exclusion := range exclusions {
				if requestFullURL == exclusion || requestPath == exclusion {
					return true
				}
			}
			return false
		}
		return nil
	}
}

// WithExclusionHandler sets a predicate deciding per request whether token
// verification is skipped entirely. It subsumes WithExclusionURLs for
// matching beyond exact URLs or paths.
func WithExclusionHandler(h ExclusionHandler) Option {
	return func(m *Middleware) error {
		if h == nil {
			return ErrExclusionHandlerNil
		}
		m.exclusionHandler = h
		return nil
	}
}

// WithLogger sets an optional logger for the middleware. The interface is
// compatible with log/slog.Logger; see Logger for adapters.
//
// Default: no logging.
func WithLogger(logger Logger) Option {
	return func(m *Middleware) error {
		if logger == nil {
			return ErrLoggerNil
		}
		m.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics sink for verification counters and timings.
//
// Default: NoopMetrics.
func WithMetrics(metrics Metrics) Option {
	return func(m *Middleware) error {
		if metrics == nil {
			return ErrMetricsNil
		}
		m.metrics = metrics
		return nil
	}
}

// WithTracer sets the tracer that spans each token verification.
//
// Default: NoopTracer.
func WithTracer(tracer Tracer) Option {
	return func(m *Middleware) error {
		if tracer == nil {
			return ErrTracerNil
		}
		m.tracer = tracer
		return nil
	}
}

// Sentinel errors for configuration validation.
var (
	ErrVerifierNil         = errors.New("verifier cannot be nil")
	ErrErrorHandlerNil     = errors.New("errorHandler cannot be nil")
	ErrTokenExtractorNil   = errors.New("tokenExtractor cannot be nil")
	ErrExclusionURLsEmpty  = errors.New("exclusion URLs list cannot be empty")
	ErrExclusionHandlerNil = errors.New("exclusion handler cannot be nil")
	ErrLoggerNil           = errors.New("logger cannot be nil")
	ErrMetricsNil          = errors.New("metrics cannot be nil")
	ErrTracerNil           = errors.New("tracer cannot be nil")
)
