package grpcauth

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	oidcauth "github.com/digilectron/go-oidc-auth"
)

// Interceptor verifies the credential on incoming RPCs and attaches the
// resulting TokenContext for identity extraction inside handlers.
type Interceptor struct {
	verifier            oidcauth.TokenVerifier
	tokenExtractor      TokenExtractor
	errorHandler        ErrorHandler
	credentialsOptional bool
	excludedMethods     map[string]bool
	logger              oidcauth.Logger
}

// New constructs an Interceptor around the given verifier:
//
//	i, err := grpcauth.New(v)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	server := grpc.NewServer(
//	    grpc.UnaryInterceptor(i.UnaryServerInterceptor()),
//	    grpc.StreamInterceptor(i.StreamServerInterceptor()),
//	)
func New(verifier oidcauth.TokenVerifier, opts ...Option) (*Interceptor, error) {
	i := &Interceptor{
		verifier:        verifier,
		tokenExtractor:  MetadataTokenExtractor,
		errorHandler:    DefaultErrorHandler,
		excludedMethods: make(map[string]bool),
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if i.verifier == nil {
		return nil, oidcauth.ErrVerifierNil
	}

	return i, nil
}

// UnaryServerInterceptor returns a grpc.UnaryServerInterceptor that checks
// the credential carried in the RPC metadata before invoking the handler.
func (i *Interceptor) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if i.excludedMethods[info.FullMethod] {
			if i.logger != nil {
				i.logger.Debug("skipping token verification for excluded method",
					"grpc.method", info.FullMethod)
			}
			return handler(ctx, req)
		}

		checkedCtx, err := i.checkRequest(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(checkedCtx, req)
	}
}

// StreamServerInterceptor returns a grpc.StreamServerInterceptor that checks
// the credential carried in the RPC metadata before invoking the handler.
// The handler receives a stream whose context carries the TokenContext.
func (i *Interceptor) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if i.excludedMethods[info.FullMethod] {
			if i.logger != nil {
				i.logger.Debug("skipping token verification for excluded method",
					"grpc.method", info.FullMethod)
			}
			return handler(srv, ss)
		}

		checkedCtx, err := i.checkRequest(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: checkedCtx})
	}
}

// checkRequest extracts and verifies the credential, returning the context
// the handler should run with.
func (i *Interceptor) checkRequest(ctx context.Context, method string) (context.Context, error) {
	token, err := i.tokenExtractor(ctx)
	if err != nil {
		if i.logger != nil {
			i.logger.Error("failed to extract token from metadata",
				"error", err,
				"grpc.method", method)
		}
		return ctx, i.errorHandler(fmt.Errorf("error extracting token: %w", err))
	}

	if token == "" {
		if i.credentialsOptional {
			// No credential and none required: continue without a token
			// context, so identity extraction on this RPC reports
			// ErrNoTokenContext rather than a stale identity.
			if i.logger != nil {
				i.logger.Debug("no credentials provided, continuing anonymously (credentials optional)",
					"grpc.method", method)
			}
			return ctx, nil
		}
		return ctx, i.errorHandler(oidcauth.ErrTokenMissing)
	}

	doc, err := i.verifier.Verify(ctx, token)
	if err != nil {
		if i.logger != nil {
			i.logger.Warn("token verification failed",
				"error", err,
				"grpc.method", method)
		}
		return ctx, i.errorHandler(err)
	}

	if i.logger != nil {
		i.logger.Debug("token verified, attaching token context",
			"grpc.method", method)
	}
	return oidcauth.WithTokenContext(ctx, &oidcauth.TokenContext{Token: token, Claims: doc}), nil
}

// wrappedServerStream overrides the stream context with the checked one.
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
