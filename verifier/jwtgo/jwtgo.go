// Package jwtgo verifies tokens with the github.com/golang-jwt/jwt package,
// for deployments that already manage signing keys through a jwt.Keyfunc,
// such as shared HMAC secrets or self-managed key stores. The Verifier it
// provides satisfies the middleware's TokenVerifier interface, so it can be
// used anywhere the standard verifier can.
package jwtgo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/digilectron/go-oidc-auth/claims"
)

// Option configures the Verifier. Options returning an error abort New.
type Option func(*Verifier) error

// WithValidMethods restricts the accepted signing method names, for example
// "HS256" or "RS256".
//
// Default: any method the keyFunc returns a key for.
func WithValidMethods(methods ...string) Option {
	return func(v *Verifier) error {
		if len(methods) == 0 {
			return ErrValidMethodsEmpty
		}
		v.validMethods = append([]string(nil), methods...)
		return nil
	}
}

// WithIssuer requires the "iss" claim to equal issuer.
//
// Default: the issuer claim is not checked.
func WithIssuer(issuer string) Option {
	return func(v *Verifier) error {
		if issuer == "" {
			return ErrIssuerEmpty
		}
		v.issuer = issuer
		return nil
	}
}

// WithAudience requires the "aud" claim to contain audience.
//
// Default: the audience claim is not checked.
func WithAudience(audience string) Option {
	return func(v *Verifier) error {
		if audience == "" {
			return ErrAudienceEmpty
		}
		v.audience = audience
		return nil
	}
}

// WithClockSkew sets the leeway applied when checking time claims.
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

// Sentinel errors for configuration validation.
var (
	ErrKeyFuncNil        = errors.New("keyFunc cannot be nil")
	ErrValidMethodsEmpty = errors.New("validMethods list cannot be empty")
	ErrIssuerEmpty       = errors.New("issuer cannot be empty")
	ErrAudienceEmpty     = errors.New("audience cannot be empty")
	ErrClockSkewNegative = errors.New("clock skew cannot be negative")
)

// Verifier checks tokens using a jwt.Keyfunc and returns their payload as a
// claim document.
type Verifier struct {
	keyFunc      jwt.Keyfunc
	validMethods []string
	issuer       string
	audience     string
	clockSkew    time.Duration

	parser *jwt.Parser
}

// New constructs a Verifier around keyFunc. The keyFunc is called for every
// token and returns the key to verify its signature with, typically chosen
// by the token header's kid.
func New(keyFunc jwt.Keyfunc, opts ...Option) (*Verifier, error) {
	if keyFunc == nil {
		return nil, ErrKeyFuncNil
	}

	v := &Verifier{keyFunc: keyFunc}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	parserOpts := []jwt.ParserOption{jwt.WithIssuedAt()}
	if len(v.validMethods) > 0 {
		parserOpts = append(parserOpts, jwt.WithValidMethods(v.validMethods))
	}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}
	if v.clockSkew > 0 {
		parserOpts = append(parserOpts, jwt.WithLeeway(v.clockSkew))
	}
	v.parser = jwt.NewParser(parserOpts...)

	return v, nil
}

// Verify checks the raw token's signature and registered claims and returns
// its payload as a claim document. Errors wrap the jwt package's sentinel
// errors, so callers can test for jwt.ErrTokenExpired and friends.
func (v *Verifier) Verify(ctx context.Context, token string) (*claims.Document, error) {
	if _, err := v.parser.Parse(token, v.keyFunc); err != nil {
		return nil, fmt.Errorf("could not verify the token: %w", err)
	}

	// Decode the payload segment directly so claim order and numeric
	// precision survive, which jwt.MapClaims would not preserve.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("token does not have three segments")
	}
	payload, err := v.parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("could not decode the token payload: %w", err)
	}

	doc, err := claims.Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("could not parse the token claims: %w", err)
	}
	return doc, nil
}
