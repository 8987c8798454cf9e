package verifier

import "fmt"

// ErrorCode classifies verification failures into stable categories that
// callers can switch on without matching error strings.
type ErrorCode string

const (
	ErrCodeMalformed       ErrorCode = "token_malformed"
	ErrCodeSignature       ErrorCode = "invalid_signature"
	ErrCodeExpired         ErrorCode = "token_expired"
	ErrCodeNotYetValid     ErrorCode = "token_not_yet_valid"
	ErrCodeIssuedInFuture  ErrorCode = "issued_in_future"
	ErrCodeInvalidIssuer   ErrorCode = "invalid_issuer"
	ErrCodeInvalidAudience ErrorCode = "invalid_audience"
	ErrCodeJWKSUnavailable ErrorCode = "jwks_unavailable"
)

var errorMessages = map[ErrorCode]string{
	ErrCodeMalformed:       "token is malformed",
	ErrCodeSignature:       "token signature is invalid",
	ErrCodeExpired:         "token is expired",
	ErrCodeNotYetValid:     "token is not valid yet",
	ErrCodeIssuedInFuture:  "token was issued in the future",
	ErrCodeInvalidIssuer:   "token issuer does not match the expected issuer",
	ErrCodeInvalidAudience: "token audience does not contain an expected audience",
	ErrCodeJWKSUnavailable: "signing key set is unavailable",
}

// Error is the error type returned by Verifier.Verify. Code is stable and
// safe to branch on; Err carries the underlying cause, if any.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	base := e.Message
	if base == "" {
		base = string(e.Code)
	}
	if e.Err == nil {
		return base
	}
	return fmt.Sprintf("%s: %v", base, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, err error) error {
	msg, ok := errorMessages[code]
	if !ok {
		msg = string(code)
	}
	return &Error{Code: code, Message: msg, Err: err}
}
