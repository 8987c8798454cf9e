package grpcauth

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	oidcauth "github.com/digilectron/go-oidc-auth"
	"github.com/digilectron/go-oidc-auth/verifier"
)

// ErrorHandler converts verification failures into the status errors
// returned to clients.
type ErrorHandler func(err error) error

// DefaultErrorHandler maps verification failures onto gRPC status codes:
// missing or bad credentials become Unauthenticated, malformed authorization
// metadata becomes InvalidArgument, untrusted issuers and audiences become
// PermissionDenied, and key-set outages become Internal so clients do not
// mistake an infrastructure failure for a rejected credential.
func DefaultErrorHandler(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, oidcauth.ErrTokenMissing) {
		return status.Error(codes.Unauthenticated, "missing credentials")
	}
	if errors.Is(err, ErrMultipleAuthHeaders) ||
		errors.Is(err, ErrInvalidAuthFormat) ||
		errors.Is(err, ErrUnsupportedScheme) {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	var verr *verifier.Error
	if errors.As(err, &verr) {
		return mapVerifierError(verr)
	}

	// Unknown verification failures stay Unauthenticated so they cannot
	// leak internal detail to callers.
	return status.Error(codes.Unauthenticated, "token is invalid")
}

func mapVerifierError(err *verifier.Error) error {
	switch err.Code {
	case verifier.ErrCodeExpired:
		return status.Error(codes.Unauthenticated, "token is expired")
	case verifier.ErrCodeNotYetValid:
		return status.Error(codes.Unauthenticated, "token is not valid yet")
	case verifier.ErrCodeIssuedInFuture:
		return status.Error(codes.Unauthenticated, "token was issued in the future")
	case verifier.ErrCodeInvalidIssuer:
		return status.Error(codes.PermissionDenied, "token issuer is not trusted")
	case verifier.ErrCodeInvalidAudience:
		return status.Error(codes.PermissionDenied, "token audience is not accepted")
	case verifier.ErrCodeJWKSUnavailable:
		return status.Error(codes.Internal, "unable to verify the token")
	default:
		return status.Error(codes.Unauthenticated, "token is invalid")
	}
}
