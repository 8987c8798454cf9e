package claims

import (
	"fmt"
	"reflect"
)

// FieldError reports the first claim that could not be mapped onto the
// requested shape: the claim is either absent from the document or present
// with the wrong kind. Claim carries the full path for nested values, such
// as "aud[1]" or "address.city".
type FieldError struct {
	Claim string
	Want  Kind
	Got   Kind
}

func (e *FieldError) Error() string {
	if e.Got == Absent {
		return fmt.Sprintf("claim %q is required but absent", e.Claim)
	}
	return fmt.Sprintf("claim %q has kind %s, want %s", e.Claim, e.Got, e.Want)
}

// SyntaxError reports a payload that is not a well-formed JSON object.
type SyntaxError struct {
	err error
}

func (e *SyntaxError) Error() string {
	return "malformed claims payload: " + e.err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.err }

// UnsupportedTypeError reports a target shape built from a Go type the
// converter cannot populate from a claim document.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return "unsupported claims target type " + e.Type.String()
}
