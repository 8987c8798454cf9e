package oidcauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digilectron/go-oidc-auth/claims"
)

func Test_TokenContext(t *testing.T) {
	doc, err := claims.Parse([]byte(`{"sub":"user123"}`))
	require.NoError(t, err)

	t.Run("round trips through a context", func(t *testing.T) {
		want := &TokenContext{Token: "raw-token", Claims: doc}
		ctx := WithTokenContext(context.Background(), want)

		got, ok := TokenContextFromContext(ctx)
		require.True(t, ok)
		assert.Same(t, want, got)
		assert.True(t, HasTokenContext(ctx))
	})

	t.Run("absent from a bare context", func(t *testing.T) {
		got, ok := TokenContextFromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, got)
		assert.False(t, HasTokenContext(context.Background()))
	})
}
