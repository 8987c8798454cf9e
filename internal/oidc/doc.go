// Package oidc fetches OpenID Connect provider metadata.
//
// Providers publish their configuration at a well-known URL relative to
// the issuer:
//
//	https://issuer.example.com/.well-known/openid-configuration
//
// GetWellKnownEndpointsFromIssuerURL retrieves that document, validates
// that it carries the required issuer and jwks_uri fields, and rejects
// metadata whose declared issuer differs from the expected one.
//
// See OpenID Connect Discovery 1.0,
// https://openid.net/specs/openid-connect-discovery-1_0.html.
package oidc
