package claims

import "encoding/json"

// Kind identifies the dynamic kind of a claim value, or the kind a target
// shape requires of one.
type Kind uint8

const (
	// Invalid is the zero Kind. Well-formed documents never report it.
	Invalid Kind = iota

	// Absent reports a claim that is not present in the document at all,
	// as opposed to one present with a null value.
	Absent

	Null
	Bool

	// Integer is the kind required by integer-typed target fields. Documents
	// report every numeric claim as Number; the distinction only shows up in
	// conversion errors, where it captures that a fractional or out-of-range
	// number cannot populate an integer field.
	Integer

	Number
	String
	List
	Object

	// Any places no kind constraint on a claim. Only target shapes express
	// it, through fields of type any.
	Any
)

var kindNames = [...]string{
	Invalid: "invalid",
	Absent:  "absent",
	Null:    "null",
	Bool:    "boolean",
	Integer: "integer",
	Number:  "number",
	String:  "string",
	List:    "list",
	Object:  "object",
	Any:     "any",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// kindOf maps a decoded document value onto the Kind it presents.
func kindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case json.Number:
		return Number
	case string:
		return String
	case []any:
		return List
	case *Document:
		return Object
	}
	return Invalid
}
