package oidcauth

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenMissing is returned when a request carries no credential and
	// credentials are not optional.
	ErrTokenMissing = errors.New("bearer token missing")

	// ErrTokenInvalid is returned when a presented credential fails
	// verification. The wrapped error carries the verifier's detail.
	ErrTokenInvalid = errors.New("bearer token invalid")

	// ErrNoTokenContext is returned by identity extraction when the request
	// carries no verified-token context, either because no middleware ran or
	// because the request was let through without a credential.
	ErrNoTokenContext = errors.New("no verified token in request context")

	// ErrClaimsShape is returned by identity extraction when a verified token
	// is present but its claims cannot populate the requested shape. The
	// wrapped error is a *claims.FieldError naming the offending claim.
	ErrClaimsShape = errors.New("claims do not fit the requested shape")
)

// invalidError wraps a token verification failure with the concrete error
// ErrTokenInvalid. It is not exposed publicly because the Is and Unwrap
// methods give callers all they need.
type invalidError struct {
	details error
}

// Is allows the error to support equality to ErrTokenInvalid.
func (e invalidError) Is(target error) bool {
	return target == ErrTokenInvalid
}

// Error returns a string representation of the error.
func (e invalidError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTokenInvalid, e.details)
}

// Unwrap allows the error to support equality to the underlying error and
// not just ErrTokenInvalid.
func (e invalidError) Unwrap() error {
	return e.details
}

// shapeError wraps the field-level detail of a failed claims conversion with
// the concrete error ErrClaimsShape, following the same pattern as
// invalidError.
type shapeError struct {
	details error
}

// Is allows the error to support equality to ErrClaimsShape.
func (e shapeError) Is(target error) bool {
	return target == ErrClaimsShape
}

// Error returns a string representation of the error.
func (e shapeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrClaimsShape, e.details)
}

// Unwrap exposes the underlying *claims.FieldError or schema error.
func (e shapeError) Unwrap() error {
	return e.details
}
