package grpcauth

import (
	"context"

	oidcauth "github.com/digilectron/go-oidc-auth"
)

// Identity extracts the caller's identity with claims reshaped into T from
// an RPC context the interceptor has checked:
//
//	func (s *server) GetMessage(ctx context.Context, req *pb.Request) (*pb.Response, error) {
//	    id, err := grpcauth.Identity[apiClaims](ctx)
//	    if err != nil {
//	        return nil, status.Error(codes.Unauthenticated, "no identity")
//	    }
//	    ...
//	}
func Identity[T any](ctx context.Context) (oidcauth.Identity[T], error) {
	return oidcauth.FromContext[T](ctx)
}

// MustIdentity is like Identity but panics on failure. Use only on methods
// the interceptor always verifies.
func MustIdentity[T any](ctx context.Context) oidcauth.Identity[T] {
	return oidcauth.MustFromContext[T](ctx)
}

// HasIdentity reports whether a verified token context is attached to ctx.
func HasIdentity(ctx context.Context) bool {
	return oidcauth.HasTokenContext(ctx)
}
