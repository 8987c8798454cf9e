// Package claims models the decoded claim set of a verified token as an
// ordered, dynamically typed document and converts it into caller-defined
// claim shapes.
//
// A Document is produced once per request from the verified token payload
// (see Parse) and is immutable afterwards, so any number of conversions may
// read it concurrently. Conversion is schema driven: As derives the set of
// claims a target struct declares from its fields and json tags, then maps
// each declared claim individually, reporting the first claim that is absent
// or carries the wrong kind as a *FieldError. Claims the target does not
// declare are dropped, which keeps shapes forward compatible with documents
// that grow new claims.
//
// Field rules for target shapes:
//
//   - The claim name comes from the json tag (up to the first comma), or the
//     field name when untagged. A "-" tag skips the field.
//   - Pointer fields are optional: an absent or null claim leaves them nil.
//     Every other field is required.
//   - Integer fields reject fractional or out-of-range numbers rather than
//     truncating them. Use json.Number to keep a numeric literal untouched.
//   - Strings and lists never coerce into one another; a claim that may
//     arrive as either (such as "aud") should be declared as any.
//   - Nested structs, embedded structs, slices, string-keyed maps, and any
//     are supported. Timestamps arrive as numeric claims, so declare them as
//     int64, float64, or json.Number.
//
// Conversion performs no I/O, never blocks, and never mutates the document.
package claims
