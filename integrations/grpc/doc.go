// Package grpcauth carries the middleware's verification flow onto gRPC
// servers: unary and stream interceptors extract the bearer token from
// incoming metadata, verify it, and attach the token context so handlers
// can extract a typed identity.
//
//	v, err := verifier.New("https://issuer.example.com/", verifier.WithDiscovery())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	interceptor, err := grpcauth.New(v,
//	    grpcauth.WithExcludedMethods("/grpc.health.v1.Health/Check"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	server := grpc.NewServer(
//	    grpc.UnaryInterceptor(interceptor.UnaryServerInterceptor()),
//	    grpc.StreamInterceptor(interceptor.StreamServerInterceptor()),
//	)
//
// Inside a handler the identity arrives the same way as over HTTP, through
// the context:
//
//	id, err := grpcauth.Identity[apiClaims](ctx)
//
// Verification failures become status errors through an ErrorHandler, by
// default mapping missing and rejected credentials to Unauthenticated,
// malformed authorization metadata to InvalidArgument, untrusted issuers
// and audiences to PermissionDenied, and key-set outages to Internal.
package grpcauth
