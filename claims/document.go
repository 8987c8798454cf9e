package claims

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Document is the decoded claim set of a verified token: an ordered,
// dynamically typed key/value view of the token payload.
//
// Values are one of nil (JSON null), bool, json.Number, string, []any with
// elements of these same kinds, or *Document for nested objects. The
// document preserves the order in which claim names first appear in the
// payload and is immutable once parsed, so concurrent readers need no
// synchronization.
type Document struct {
	names  []string
	values map[string]any
}

// Parse decodes payload, which must hold a single JSON object, into a
// Document. Numeric claims are kept as json.Number so no precision is lost
// before conversion into a typed shape.
func Parse(payload []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &SyntaxError{err: err}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, &SyntaxError{err: fmt.Errorf("payload is not a JSON object")}
	}

	doc, err := parseObject(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &SyntaxError{err: fmt.Errorf("trailing data after claims object")}
	}
	return doc, nil
}

// parseObject consumes object members up to and including the closing brace.
// The opening brace has already been consumed.
func parseObject(dec *json.Decoder) (*Document, error) {
	doc := &Document{values: make(map[string]any)}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &SyntaxError{err: err}
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return doc, nil
		}
		name := tok.(string) // the decoder guarantees object keys are strings
		v, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		if _, dup := doc.values[name]; !dup {
			doc.names = append(doc.names, name)
		}
		// A duplicated name keeps its first position but the last value.
		doc.values[name] = v
	}
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, &SyntaxError{err: err}
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil // nil, bool, json.Number or string
	}
	switch d {
	case '{':
		return parseObject(dec)
	case '[':
		list := []any{}
		for dec.More() {
			v, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		if _, err := dec.Token(); err != nil { // closing bracket
			return nil, &SyntaxError{err: err}
		}
		return list, nil
	}
	return nil, &SyntaxError{err: fmt.Errorf("unexpected delimiter %q", d.String())}
}

// Len reports the number of distinct claims in the document.
func (d *Document) Len() int { return len(d.names) }

// Names returns the claim names in document order. The returned slice is a
// copy, so callers may modify it freely.
func (d *Document) Names() []string {
	return append([]string(nil), d.names...)
}

// Get returns the raw value of the named claim and whether the claim is
// present. A claim present with a JSON null value yields (nil, true).
func (d *Document) Get(name string) (any, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Kind reports the kind of the named claim, or Absent when the document does
// not contain it.
func (d *Document) Kind(name string) Kind {
	v, ok := d.values[name]
	if !ok {
		return Absent
	}
	return kindOf(v)
}
