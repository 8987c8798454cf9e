package grpcauth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/metadata"
)

// TokenExtractor is a function that takes an incoming RPC context as input
// and returns either a token or an error. An error should only be returned
// if an attempt to specify a token was found, but the information was
// somehow incorrectly formed. In the case where a token is simply not
// present, this should not be treated as an error. An empty string should
// be returned in that case.
type TokenExtractor func(ctx context.Context) (string, error)

// Extractor errors.
var (
	ErrMultipleAuthHeaders = errors.New("multiple authorization metadata entries are not allowed")
	ErrInvalidAuthFormat   = errors.New("authorization metadata format must be Bearer {token}")
	ErrUnsupportedScheme   = errors.New("unsupported authorization scheme, expected: Bearer")
)

// MetadataTokenExtractor extracts the token from the "authorization"
// metadata key, accepting the "Bearer {token}" format. gRPC lowercases
// incoming metadata keys, so only the lowercase key is checked.
func MetadataTokenExtractor(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", nil // no metadata means no credential, not an error
	}

	authHeaders := md.Get("authorization")
	if len(authHeaders) == 0 {
		return "", nil
	}
	if len(authHeaders) > 1 {
		return "", ErrMultipleAuthHeaders
	}

	parts := strings.Fields(authHeaders[0])
	if len(parts) != 2 {
		return "", ErrInvalidAuthFormat
	}
	if !strings.EqualFold(parts[0], "bearer") {
		return "", ErrUnsupportedScheme
	}

	return parts[1], nil
}
