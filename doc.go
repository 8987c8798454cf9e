/*
Package oidcauth provides HTTP middleware that verifies OIDC/JWT credentials
and hands request handlers a strongly typed identity.

The package splits authentication into two independently usable halves. The
middleware verifies the credential once per request and attaches a
TokenContext (the raw token plus its decoded claim document) to the request
context. Identity extraction then converts that document into any
caller-defined claims struct, at whichever routes opt in. Extraction never
touches the request body, so handlers remain free to read the body exactly
as if no authentication were present.

# Quick Start

	import (
	    "github.com/digilectron/go-oidc-auth"
	    "github.com/digilectron/go-oidc-auth/verifier"
	)

	type APIClaims struct {
	    Subject string   `json:"sub"`
	    Name    string   `json:"name"`
	    Scopes  []string `json:"scopes"`
	    Email   *string  `json:"email"`
	}

	func main() {
	    v, err := verifier.New(
	        "https://your-domain.example.com/",
	        verifier.WithAudiences("your-api-identifier"),
	        verifier.WithDiscovery(),
	    )
	    if err != nil {
	        log.Fatal(err)
	    }

	    m, err := oidcauth.New(v)
	    if err != nil {
	        log.Fatal(err)
	    }

	    http.Handle("/api/", m.CheckToken(http.HandlerFunc(apiHandler)))
	    http.ListenAndServe(":8080", nil)
	}

	func apiHandler(w http.ResponseWriter, r *http.Request) {
	    id, err := oidcauth.Extract[APIClaims](r)
	    if err != nil {
	        http.Error(w, "Unauthorized", http.StatusUnauthorized)
	        return
	    }
	    fmt.Fprintf(w, "Welcome %s!", id.Claims.Name)
	}

# Claims Shapes

A claims shape is any struct: field names (or json tags) name the claims to
bind, pointer fields mark a claim optional, and everything else is required.
Claims in the token that the shape does not declare are dropped, so shapes
stay forward compatible as tokens grow new claims. The conversion rules,
including the strict numeric and list handling, are documented in the claims
package.

Handlers can also take the identity as an argument:

	http.Handle("/profile", m.CheckToken(oidcauth.RequireIdentity(
	    func(w http.ResponseWriter, r *http.Request, id oidcauth.Identity[APIClaims]) {
	        fmt.Fprintf(w, "Welcome %s!", id.Claims.Name)
	    },
	)))

Different routes may extract different shapes from the same request; each
extraction produces an independent identity from the shared, immutable
claim document.

# Body Non-Interference

Neither the middleware nor identity extraction reads the request body. A
handler that decodes a JSON body and extracts an identity gets both, in
either order:

	func updateHandler(w http.ResponseWriter, r *http.Request) {
	    id, err := oidcauth.Extract[APIClaims](r)
	    if err != nil { ... }

	    var body UpdateRequest
	    if err := json.NewDecoder(r.Body).Decode(&body); err != nil { ... }
	}

# Optional Credentials

With WithCredentialsOptional(true) requests without a token pass through
without a TokenContext. Extraction then reports ErrNoTokenContext, which a
handler can treat as the anonymous case:

	id, err := oidcauth.Extract[APIClaims](r)
	if errors.Is(err, oidcauth.ErrNoTokenContext) {
	    fmt.Fprintln(w, "Public content")
	    return
	}

Routes that never extract an identity ignore credentials entirely;
extraction is opt-in per route.

# Token Extraction

Default: Authorization header with Bearer scheme. Alternatives:

	oidcauth.CookieTokenExtractor("token")
	oidcauth.ParameterTokenExtractor("token")
	oidcauth.MultiTokenExtractor(
	    oidcauth.AuthHeaderTokenExtractor,
	    oidcauth.CookieTokenExtractor("token"),
	)

# Error Handling

The middleware reports ErrTokenMissing and ErrTokenInvalid; identity
extraction returns ErrNoTokenContext and ErrClaimsShape. All four are
matchable with errors.Is, and ErrClaimsShape wraps a *claims.FieldError
naming the offending claim with its expected and actual kind:

	id, err := oidcauth.Extract[APIClaims](r)
	if err != nil {
	    var fieldErr *claims.FieldError
	    if errors.As(err, &fieldErr) {
	        log.Printf("claim %s: got %s, want %s", fieldErr.Claim, fieldErr.Got, fieldErr.Want)
	    }
	}

DefaultErrorHandler answers 401 with a JSON body for all four error kinds
(setting WWW-Authenticate on the middleware ones) and 500 for anything else.
Verification failures additionally carry a *verifier.Error with a
machine-readable code such as token_expired, reachable through errors.As in
a custom ErrorHandler.

# Frameworks

The framework/gin and framework/echo packages wrap this middleware for those
routers, and integrations/grpc provides unary and stream interceptors that
attach the same TokenContext to handler contexts. Identity extraction works
identically everywhere because it only needs a context.Context.

# Observability

WithLogger accepts any slog-compatible logger (adapters for zap, zerolog and
logrus are included). WithMetrics(NewPrometheusMetrics()) records a
verification counter tagged by result and a duration histogram. WithTracer
spans each verification; NewOpenTelemetryTracer bridges to OpenTelemetry.

# Thread Safety

A Middleware is immutable after New and safe for concurrent use across
routes. TokenContext values are request-scoped and read-only, so concurrent
extractions within one request are race-free and independent.
*/
package oidcauth
