package echoauth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oidcauth "github.com/digilectron/go-oidc-auth"
	"github.com/digilectron/go-oidc-auth/claims"
)

type verifierFunc func(ctx context.Context, token string) (*claims.Document, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (*claims.Document, error) {
	return f(ctx, token)
}

var testVerifier = verifierFunc(func(_ context.Context, token string) (*claims.Document, error) {
	if token == "good-token" {
		return claims.Parse([]byte(`{"iss":"https://issuer.example.com/","sub":"user123","name":"admin"}`))
	}
	return nil, errors.New("signature mismatch")
})

type testClaims struct {
	Issuer  string `json:"iss"`
	Subject string `json:"sub"`
	Name    string `json:"name"`
}

func Test_CheckToken(t *testing.T) {
	testCases := []struct {
		name            string
		options         []Option
		route           string
		token           string
		wantStatusCode  int
		wantBody        string
		wantSubject     string
		wantIdentityErr error
	}{
		{
			name:           "it lets a valid token through",
			route:          "/",
			token:          "Bearer good-token",
			wantStatusCode: http.StatusOK,
			wantBody:       `{"message":"Authenticated."}`,
			wantSubject:    "user123",
		},
		{
			name:            "it rejects a request without a token",
			route:           "/",
			wantStatusCode:  http.StatusUnauthorized,
			wantBody:        `{"message":"Bearer token is missing."}`,
			wantIdentityErr: oidcauth.ErrNoTokenContext,
		},
		{
			name:            "it rejects an invalid token",
			route:           "/",
			token:           "Bearer bad-token",
			wantStatusCode:  http.StatusUnauthorized,
			wantBody:        `{"message":"Bearer token is invalid."}`,
			wantIdentityErr: oidcauth.ErrNoTokenContext,
		},
		{
			name: "it renders errors through a custom handler",
			options: []Option{
				WithErrorHandler(func(c echo.Context, err error) {
					_ = c.JSON(http.StatusTeapot, map[string]string{"error": "nope"})
				}),
			},
			route:           "/",
			token:           "Bearer bad-token",
			wantStatusCode:  http.StatusTeapot,
			wantBody:        `{"error":"nope"}`,
			wantIdentityErr: oidcauth.ErrNoTokenContext,
		},
		{
			name: "it lets an anonymous request through when credentials are optional",
			options: []Option{
				WithMiddlewareOptions(oidcauth.WithCredentialsOptional(true)),
			},
			route:           "/",
			wantStatusCode:  http.StatusOK,
			wantBody:        `{"message":"Authenticated."}`,
			wantIdentityErr: oidcauth.ErrNoTokenContext,
		},
		{
			name: "it skips verification for excluded routes",
			options: []Option{
				WithMiddlewareOptions(oidcauth.WithExclusionURLs([]string{"/public"})),
			},
			route:           "/public",
			token:           "Bearer bad-token",
			wantStatusCode:  http.StatusOK,
			wantBody:        `{"message":"Authenticated."}`,
			wantIdentityErr: oidcauth.ErrNoTokenContext,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			middleware, err := New(testVerifier, testCase.options...)
			require.NoError(t, err)

			var gotIdentity oidcauth.Identity[testClaims]
			var gotIdentityErr error
			handlerCalled := false

			echoServer := echo.New()
			echoServer.Use(middleware)
			echoServer.GET(testCase.route, func(c echo.Context) error {
				handlerCalled = true
				gotIdentity, gotIdentityErr = Identity[testClaims](c)
				return c.JSON(http.StatusOK, map[string]string{"message": "Authenticated."})
			})

			testServer := httptest.NewServer(echoServer)
			defer testServer.Close()

			request, err := http.NewRequest(http.MethodGet, testServer.URL+testCase.route, nil)
			require.NoError(t, err)
			if testCase.token != "" {
				request.Header.Add("Authorization", testCase.token)
			}

			response, err := testServer.Client().Do(request)
			require.NoError(t, err)
			defer response.Body.Close()

			body, err := io.ReadAll(response.Body)
			require.NoError(t, err)

			assert.Equal(t, testCase.wantStatusCode, response.StatusCode)
			assert.JSONEq(t, testCase.wantBody, string(body))

			if testCase.wantStatusCode == http.StatusOK {
				require.True(t, handlerCalled)
			} else {
				assert.False(t, handlerCalled)
			}

			if testCase.wantIdentityErr != nil {
				if handlerCalled {
					assert.ErrorIs(t, gotIdentityErr, testCase.wantIdentityErr)
				}
				return
			}
			require.NoError(t, gotIdentityErr)
			assert.Equal(t, testCase.wantSubject, gotIdentity.Claims.Subject)
			assert.Equal(t, "good-token", gotIdentity.Token)
		})
	}
}

func Test_CheckToken_PropagatesHandlerErrors(t *testing.T) {
	middleware, err := New(testVerifier)
	require.NoError(t, err)

	echoServer := echo.New()
	echoServer.Use(middleware)
	echoServer.GET("/", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusConflict, "handler failed")
	})

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Add("Authorization", "Bearer good-token")
	responseRecorder := httptest.NewRecorder()
	echoServer.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusConflict, responseRecorder.Code)
	assert.Contains(t, responseRecorder.Body.String(), "handler failed")
}

func Test_New_InvalidConfiguration(t *testing.T) {
	t.Run("nil verifier", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, oidcauth.ErrVerifierNil)
	})

	t.Run("nil error handler", func(t *testing.T) {
		_, err := New(testVerifier, WithErrorHandler(nil))
		assert.ErrorIs(t, err, ErrErrorHandlerNil)
	})
}

func Test_DefaultErrorHandler(t *testing.T) {
	echoServer := echo.New()
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	responseRecorder := httptest.NewRecorder()
	c := echoServer.NewContext(request, responseRecorder)

	DefaultErrorHandler(c, oidcauth.ErrTokenMissing)

	assert.Equal(t, http.StatusUnauthorized, responseRecorder.Code)
	assert.Equal(t, `{"message":"Bearer token is missing."}`, responseRecorder.Body.String())
}

func Test_MustIdentity(t *testing.T) {
	middleware, err := New(testVerifier)
	require.NoError(t, err)

	var gotSubject string

	echoServer := echo.New()
	echoServer.Use(middleware)
	echoServer.GET("/", func(c echo.Context) error {
		gotSubject = MustIdentity[testClaims](c).Claims.Subject
		return c.NoContent(http.StatusOK)
	})

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Add("Authorization", "Bearer good-token")
	responseRecorder := httptest.NewRecorder()
	echoServer.ServeHTTP(responseRecorder, request)

	assert.Equal(t, http.StatusOK, responseRecorder.Code)
	assert.Equal(t, "user123", gotSubject)
}
