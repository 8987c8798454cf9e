package verifier

import (
	"errors"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// Option configures the Verifier. Options returning an error abort New.
type Option func(*Verifier) error

// WithAudiences sets the audiences the "aud" claim is checked against. The
// check passes when the token's audience contains at least one of the given
// values.
//
// Default: the audience claim is not checked.
func WithAudiences(audiences ...string) Option {
	return func(v *Verifier) error {
		if len(audiences) == 0 {
			return ErrAudiencesEmpty
		}
		v.audiences = append([]string(nil), audiences...)
		return nil
	}
}

// WithKeySet verifies signatures against a fixed key set instead of fetching
// keys remotely. Useful for tests and for issuers with pinned keys.
func WithKeySet(set jwk.Set) Option {
	return func(v *Verifier) error {
		if set == nil {
			return ErrKeySetNil
		}
		v.staticSet = set
		return nil
	}
}

// WithJWKSURL fetches signing keys from the given JWKS endpoint. Keys are
// cached and refreshed in the background.
func WithJWKSURL(jwksURL string) Option {
	return func(v *Verifier) error {
		if jwksURL == "" {
			return ErrJWKSURLEmpty
		}
		v.jwksURL = jwksURL
		return nil
	}
}

// WithDiscovery resolves the JWKS endpoint from the issuer's OIDC discovery
// metadata on first use. Discovery rejects metadata whose declared issuer
// differs from the issuer the Verifier was built for.
func WithDiscovery() Option {
	return func(v *Verifier) error {
		v.discover = true
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for discovery and JWKS fetches.
//
// Default: a client with a 5 second timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(v *Verifier) error {
		if client == nil {
			return ErrHTTPClientNil
		}
		v.httpClient = client
		return nil
	}
}

// WithClockSkew sets the leeway applied when checking the exp, nbf and iat
// claims, absorbing clock drift between the issuer and this service.
//
// Default: no leeway.
func WithClockSkew(skew time.Duration) Option {
	return func(v *Verifier) error {
		if skew < 0 {
			return ErrClockSkewNegative
		}
		v.clockSkew = skew
		return nil
	}
}

// WithMinRefreshInterval sets the minimum interval between two JWKS fetches
// for remote key sources.
//
// Default: 5 minutes.
func WithMinRefreshInterval(interval time.Duration) Option {
	return func(v *Verifier) error {
		if interval <= 0 {
			return ErrMinRefreshInvalid
		}
		v.minRefresh = interval
		return nil
	}
}

// Sentinel errors for configuration validation.
var (
	ErrIssuerEmpty        = errors.New("issuer cannot be empty")
	ErrAudiencesEmpty     = errors.New("audiences list cannot be empty")
	ErrKeySetNil          = errors.New("key set cannot be nil")
	ErrJWKSURLEmpty       = errors.New("jwks URL cannot be empty")
	ErrHTTPClientNil      = errors.New("http client cannot be nil")
	ErrClockSkewNegative  = errors.New("clock skew cannot be negative")
	ErrMinRefreshInvalid  = errors.New("minimum refresh interval must be positive")
	ErrNoKeySource        = errors.New("a key source is required: use WithKeySet, WithJWKSURL or WithDiscovery")
	ErrMultipleKeySources = errors.New("only one key source may be configured")
)
