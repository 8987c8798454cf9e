package verifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"

	"github.com/digilectron/go-oidc-auth/claims"
	"github.com/digilectron/go-oidc-auth/internal/oidc"
)

const (
	defaultHTTPTimeout = 5 * time.Second
	defaultMinRefresh  = 5 * time.Minute
)

// Verifier checks JWT credentials against an issuer's signing keys and
// returns the decoded claim document. It satisfies the middleware's
// TokenVerifier interface.
//
// Signing keys come from exactly one of three sources: a static jwk.Set, a
// fixed JWKS URL, or OIDC discovery against the issuer. Remote sources are
// cached and refreshed in the background.
type Verifier struct {
	issuer     string
	audiences  []string
	clockSkew  time.Duration
	httpClient *http.Client
	minRefresh time.Duration
	keys       keySource
	now        func() time.Time

	// set by options, resolved into keys at the end of New
	staticSet jwk.Set
	jwksURL   string
	discover  bool
}

// New constructs a Verifier for tokens issued by issuer. Exactly one key
// source option (WithKeySet, WithJWKSURL or WithDiscovery) must be given:
//
//	v, err := verifier.New(
//	    "https://issuer.example.com/",
//	    verifier.WithDiscovery(),
//	    verifier.WithAudiences("https://api.example.com"),
//	)
func New(issuer string, opts ...Option) (*Verifier, error) {
	if issuer == "" {
		return nil, ErrIssuerEmpty
	}

	v := &Verifier{
		issuer:     issuer,
		minRefresh: defaultMinRefresh,
		now:        time.Now,
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}
	if v.httpClient == nil {
		v.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	keys, err := v.buildKeySource()
	if err != nil {
		return nil, err
	}
	v.keys = keys
	return v, nil
}

func (v *Verifier) buildKeySource() (keySource, error) {
	sources := 0
	if v.staticSet != nil {
		sources++
	}
	if v.jwksURL != "" {
		sources++
	}
	if v.discover {
		sources++
	}
	if sources == 0 {
		return nil, ErrNoKeySource
	}
	if sources > 1 {
		return nil, ErrMultipleKeySources
	}

	switch {
	case v.staticSet != nil:
		return &staticSource{set: v.staticSet}, nil
	case v.jwksURL != "":
		return newRemoteSource(v.jwksURL, v.httpClient, v.minRefresh)
	default:
		return &discoverySource{
			issuer:     v.issuer,
			httpClient: v.httpClient,
			minRefresh: v.minRefresh,
		}, nil
	}
}

// Verify checks the raw token's signature and registered claims and returns
// its payload as a claim document. Errors are *Error values whose Code
// reports the failure category.
func (v *Verifier) Verify(ctx context.Context, token string) (*claims.Document, error) {
	if token == "" {
		return nil, newError(ErrCodeMalformed, errors.New("token is empty"))
	}

	set, err := v.keys.keySet(ctx)
	if err != nil {
		return nil, newError(ErrCodeJWKSUnavailable, err)
	}

	// Parse before Verify so structural failures are reported as malformed
	// rather than as a signature mismatch.
	if _, err := jws.Parse([]byte(token)); err != nil {
		return nil, newError(ErrCodeMalformed, err)
	}
	payload, err := jws.Verify([]byte(token), jws.WithKeySet(set, jws.WithInferAlgorithmFromKey(true)))
	if err != nil {
		return nil, newError(ErrCodeSignature, err)
	}

	doc, err := claims.Parse(payload)
	if err != nil {
		return nil, newError(ErrCodeMalformed, err)
	}
	if err := v.checkRegisteredClaims(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (v *Verifier) checkRegisteredClaims(doc *claims.Document) error {
	issuer, _ := doc.Get("iss")
	if s, ok := issuer.(string); !ok || s != v.issuer {
		return newError(ErrCodeInvalidIssuer, fmt.Errorf("expected issuer %q", v.issuer))
	}

	if len(v.audiences) > 0 {
		audience, _ := doc.Get("aud")
		if !audienceContainsAny(audience, v.audiences) {
			return newError(ErrCodeInvalidAudience, fmt.Errorf("expected one of %q", v.audiences))
		}
	}

	now := v.now()

	nbf, ok, err := numericDate(doc, "nbf")
	if err != nil {
		return newError(ErrCodeMalformed, err)
	}
	if ok && now.Add(v.clockSkew).Before(nbf) {
		return newError(ErrCodeNotYetValid, fmt.Errorf("token not valid before %s", nbf.Format(time.RFC3339)))
	}

	exp, ok, err := numericDate(doc, "exp")
	if err != nil {
		return newError(ErrCodeMalformed, err)
	}
	if ok && now.Add(-v.clockSkew).After(exp) {
		return newError(ErrCodeExpired, fmt.Errorf("token expired at %s", exp.Format(time.RFC3339)))
	}

	iat, ok, err := numericDate(doc, "iat")
	if err != nil {
		return newError(ErrCodeMalformed, err)
	}
	if ok && now.Add(v.clockSkew).Before(iat) {
		return newError(ErrCodeIssuedInFuture, fmt.Errorf("token issued at %s", iat.Format(time.RFC3339)))
	}

	return nil
}

// audienceContainsAny reports whether the aud claim, which may be a single
// string or a list of strings, contains at least one of the wanted values.
func audienceContainsAny(value any, wanted []string) bool {
	contains := func(audience string) bool {
		for _, want := range wanted {
			if audience == want {
				return true
			}
		}
		return false
	}

	switch audience := value.(type) {
	case string:
		return contains(audience)
	case []any:
		for _, item := range audience {
			if s, ok := item.(string); ok && contains(s) {
				return true
			}
		}
	}
	return false
}

// numericDate reads the named claim as an RFC 7519 NumericDate. The claim
// being absent is not an error; the claim being present with a non-numeric
// value is.
func numericDate(doc *claims.Document, name string) (time.Time, bool, error) {
	value, ok := doc.Get(name)
	if !ok {
		return time.Time{}, false, nil
	}
	num, ok := value.(json.Number)
	if !ok {
		return time.Time{}, false, fmt.Errorf("claim %q is not a numeric date", name)
	}
	seconds, err := num.Float64()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("claim %q is not a numeric date", name)
	}
	sec, frac := math.Modf(seconds)
	return time.Unix(int64(sec), int64(frac*1e9)), true, nil
}

// keySource yields the key set used to verify signatures.
type keySource interface {
	keySet(ctx context.Context) (jwk.Set, error)
}

type staticSource struct {
	set jwk.Set
}

func (s *staticSource) keySet(context.Context) (jwk.Set, error) {
	return s.set, nil
}

// remoteSource serves keys from a JWKS URL through a refreshing cache.
type remoteSource struct {
	cache   *jwk.Cache
	jwksURL string
}

func newRemoteSource(jwksURL string, client *http.Client, minRefresh time.Duration) (*remoteSource, error) {
	if _, err := url.ParseRequestURI(jwksURL); err != nil {
		return nil, fmt.Errorf("invalid JWKS URL %q: %w", jwksURL, err)
	}

	cache := jwk.NewCache(context.Background())
	if err := cache.Register(
		jwksURL,
		jwk.WithMinRefreshInterval(minRefresh),
		jwk.WithHTTPClient(client),
	); err != nil {
		return nil, fmt.Errorf("could not register JWKS URL %q: %w", jwksURL, err)
	}
	return &remoteSource{cache: cache, jwksURL: jwksURL}, nil
}

func (s *remoteSource) keySet(ctx context.Context) (jwk.Set, error) {
	return s.cache.Get(ctx, s.jwksURL)
}

// discoverySource resolves the JWKS URL from the issuer's OIDC metadata on
// first use, then behaves like a remote source. A failed discovery is
// retried on the next verification rather than latched.
type discoverySource struct {
	issuer     string
	httpClient *http.Client
	minRefresh time.Duration

	mu     sync.Mutex
	remote *remoteSource
}

func (s *discoverySource) keySet(ctx context.Context) (jwk.Set, error) {
	remote, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return remote.keySet(ctx)
}

func (s *discoverySource) resolve(ctx context.Context) (*remoteSource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.remote != nil {
		return s.remote, nil
	}

	issuerURL, err := url.Parse(s.issuer)
	if err != nil {
		return nil, fmt.Errorf("could not parse issuer URL: %w", err)
	}
	endpoints, err := oidc.GetWellKnownEndpointsFromIssuerURL(ctx, s.httpClient, *issuerURL, s.issuer)
	if err != nil {
		return nil, err
	}
	remote, err := newRemoteSource(endpoints.JWKSURI, s.httpClient, s.minRefresh)
	if err != nil {
		return nil, err
	}
	s.remote = remote
	return remote, nil
}
