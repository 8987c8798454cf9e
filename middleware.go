package oidcauth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/digilectron/go-oidc-auth/claims"
)

// TokenVerifier is the upstream collaborator the middleware depends on: it
// checks a raw credential cryptographically and returns the decoded claim
// document on success. The verifier package provides the standard
// implementation; any implementation satisfying this interface can be
// plugged in.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*claims.Document, error)
}

// ExclusionHandler is a function that takes an http.Request and returns true
// if the request should be excluded from token verification.
type ExclusionHandler func(r *http.Request) bool

// Middleware verifies the credential on incoming requests and attaches the
// resulting TokenContext for identity extraction further down the chain.
type Middleware struct {
	verifier            TokenVerifier
	errorHandler        ErrorHandler
	tokenExtractor      TokenExtractor
	credentialsOptional bool
	validateOnOptions   bool
	exclusionHandler    ExclusionHandler
	logger              Logger
	metrics             Metrics
	tracer              Tracer
}

// New constructs a Middleware around the given verifier. Behavior beyond the
// defaults is supplied via options.
//
// Example:
//
//	v, err := verifier.New(
//	    "https://issuer.example.com/",
//	    verifier.WithAudiences("my-api"),
//	    verifier.WithDiscovery(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := oidcauth.New(v)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	http.Handle("/api/", m.CheckToken(apiHandler))
func New(verifier TokenVerifier, opts ...Option) (*Middleware, error) {
	m := &Middleware{
		verifier:          verifier,
		validateOnOptions: true,
		metrics:           &NoopMetrics{},
		tracer:            &NoopTracer{},
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if m.verifier == nil {
		return nil, ErrVerifierNil
	}
	if m.errorHandler == nil {
		m.errorHandler = DefaultErrorHandler
	}
	if m.tokenExtractor == nil {
		m.tokenExtractor = AuthHeaderTokenExtractor
	}

	return m, nil
}

// CheckToken is the main middleware function. It is passed an http.Handler
// which will be called once the credential passes verification, with the
// TokenContext attached to the request. The request body is never read or
// altered on any path through the middleware.
func (m *Middleware) CheckToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.exclusionHandler != nil && m.exclusionHandler(r) {
			if m.logger != nil {
				m.logger.Debug("skipping token verification for excluded URL",
					"method", r.Method,
					"path", r.URL.Path)
			}
			next.ServeHTTP(w, r)
			return
		}

		// If we don't validate on OPTIONS and this is OPTIONS
		// then continue onto next without verifying.
		if !m.validateOnOptions && r.Method == http.MethodOptions {
			if m.logger != nil {
				m.logger.Debug("skipping token verification for OPTIONS request")
			}
			next.ServeHTTP(w, r)
			return
		}

		token, err := m.tokenExtractor(r)
		if err != nil {
			// This is not ErrTokenMissing because an error here means that
			// the tokenExtractor had an error and _not_ that the token was
			// missing.
			if m.logger != nil {
				m.logger.Error("failed to extract token from request",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path)
			}
			m.metrics.IncCounter(metricTokenVerifications, map[string]string{"result": "extraction_error"})
			m.errorHandler(w, r, fmt.Errorf("error extracting token: %w", err))
			return
		}

		if token == "" {
			if m.credentialsOptional {
				// No credential and none required: continue without a token
				// context, so identity extraction on this request reports
				// ErrNoTokenContext rather than a stale identity.
				if m.logger != nil {
					m.logger.Debug("no credentials provided, continuing anonymously (credentials optional)")
				}
				next.ServeHTTP(w, r)
				return
			}
			m.metrics.IncCounter(metricTokenVerifications, map[string]string{"result": "missing"})
			m.errorHandler(w, r, ErrTokenMissing)
			return
		}

		ctx, span := m.tracer.StartSpan(r.Context(), "oidcauth.verify_token",
			"http.method", r.Method,
			"http.path", r.URL.Path)
		start := time.Now()
		doc, err := m.verifier.Verify(ctx, token)
		m.metrics.ObserveHistogram(metricTokenVerificationDuration, time.Since(start).Seconds(), nil)

		if err != nil {
			span.SetTag("outcome", "invalid")
			span.Finish()
			if m.logger != nil {
				m.logger.Warn("token verification failed",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path)
			}
			m.metrics.IncCounter(metricTokenVerifications, map[string]string{"result": "invalid"})
			m.errorHandler(w, r, &invalidError{details: err})
			return
		}
		span.SetTag("outcome", "verified")
		span.Finish()
		m.metrics.IncCounter(metricTokenVerifications, map[string]string{"result": "verified"})

		if m.logger != nil {
			m.logger.Debug("token verified, attaching token context",
				"method", r.Method,
				"path", r.URL.Path)
		}

		r = r.Clone(WithTokenContext(ctx, &TokenContext{Token: token, Claims: doc}))
		next.ServeHTTP(w, r)
	})
}
