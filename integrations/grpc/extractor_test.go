package grpcauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"
)

func Test_MetadataTokenExtractor(t *testing.T) {
	testCases := []struct {
		name      string
		ctx       context.Context
		wantToken string
		wantErr   error
	}{
		{
			name: "bearer token",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", "Bearer abc123"),
			),
			wantToken: "abc123",
		},
		{
			name: "scheme is matched case insensitively",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", "bearer abc123"),
			),
			wantToken: "abc123",
		},
		{
			name:      "no metadata",
			ctx:       context.Background(),
			wantToken: "",
		},
		{
			name: "no authorization header",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("content-type", "application/grpc"),
			),
			wantToken: "",
		},
		{
			name: "multiple authorization headers",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", "Bearer one", "authorization", "Bearer two"),
			),
			wantErr: ErrMultipleAuthHeaders,
		},
		{
			name: "missing token",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", "Bearer"),
			),
			wantErr: ErrInvalidAuthFormat,
		},
		{
			name: "too many parts",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", "Bearer abc def"),
			),
			wantErr: ErrInvalidAuthFormat,
		},
		{
			name: "unsupported scheme",
			ctx: metadata.NewIncomingContext(
				context.Background(),
				metadata.Pairs("authorization", "Basic dXNlcjpwYXNz"),
			),
			wantErr: ErrUnsupportedScheme,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			token, err := MetadataTokenExtractor(testCase.ctx)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.wantToken, token)
		})
	}
}
