// Package verifier implements standard JWT verification for the middleware:
// signature checks against an issuer's JSON Web Key Set plus validation of
// the registered iss, aud, exp, nbf and iat claims.
//
// A Verifier is scoped to a single issuer. Its signing keys come from one of
// three sources, chosen at construction time:
//
//   - WithKeySet pins a static jwk.Set, typically for tests or offline use.
//   - WithJWKSURL fetches keys from a fixed JWKS endpoint.
//   - WithDiscovery resolves the JWKS endpoint from the issuer's OIDC
//     discovery metadata.
//
// Remote key sets are cached and refreshed in the background, so Verify does
// not hit the network on every call. Verification failures are *Error values
// carrying a stable ErrorCode, letting callers distinguish an expired token
// from a signature mismatch without matching error strings.
//
// The zero-configuration path wires a Verifier straight into the middleware:
//
//	v, err := verifier.New("https://issuer.example.com/", verifier.WithDiscovery())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, err := oidcauth.New(v)
package verifier
