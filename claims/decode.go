package claims

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// As converts the document into a value of the caller's claims shape T,
// which must be a struct type. See the package documentation for the field
// rules shapes follow.
//
// On failure the result is the zero T: a document is never partially applied.
// The returned error is a *FieldError naming the first offending claim, or an
// *UnsupportedTypeError when T itself cannot be expressed as a claims shape.
func As[T any](doc *Document) (T, error) {
	var out T
	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() != reflect.Struct {
		var zero T
		return zero, &UnsupportedTypeError{Type: rv.Type()}
	}
	s, err := schemaFor(rv.Type())
	if err != nil {
		var zero T
		return zero, err
	}
	if err := decodeStruct(doc, s, rv, ""); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func decodeStruct(doc *Document, s *structSchema, dst reflect.Value, path string) error {
	for _, f := range s.fields {
		claim := f.name
		if path != "" {
			claim = path + "." + f.name
		}
		v, present := doc.Get(f.name)
		if !present {
			if f.optional {
				continue
			}
			return &FieldError{Claim: claim, Want: f.want, Got: Absent}
		}
		if err := decodeValue(v, fieldByIndex(dst, f.index), claim); err != nil {
			return err
		}
	}
	return nil
}

// decodeValue populates a single target value from a present document value.
func decodeValue(v any, dst reflect.Value, claim string) error {
	t := dst.Type()

	if v == nil {
		// A null claim satisfies any target that can hold "nothing".
		if t.Kind() == reflect.Pointer || (t.Kind() == reflect.Interface && t.NumMethod() == 0) {
			return nil
		}
		want, _ := kindFor(t)
		return &FieldError{Claim: claim, Want: want, Got: Null}
	}

	if t.Kind() == reflect.Pointer {
		p := reflect.New(t.Elem())
		if err := decodeValue(v, p.Elem(), claim); err != nil {
			return err
		}
		dst.Set(p)
		return nil
	}

	if t == numberType {
		n, ok := v.(json.Number)
		if !ok {
			return mismatch(claim, Number, v)
		}
		dst.SetString(string(n))
		return nil
	}

	switch t.Kind() {
	case reflect.Interface:
		dst.Set(reflect.ValueOf(materialize(v)))
		return nil

	case reflect.Bool:
		b, ok := v.(bool)
		if !ok {
			return mismatch(claim, Bool, v)
		}
		dst.SetBool(b)
		return nil

	case reflect.String:
		s, ok := v.(string)
		if !ok {
			return mismatch(claim, String, v)
		}
		dst.SetString(s)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.(json.Number)
		if !ok {
			return mismatch(claim, Integer, v)
		}
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil || dst.OverflowInt(i) {
			return mismatch(claim, Integer, v)
		}
		dst.SetInt(i)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := v.(json.Number)
		if !ok {
			return mismatch(claim, Integer, v)
		}
		u, err := strconv.ParseUint(n.String(), 10, 64)
		if err != nil || dst.OverflowUint(u) {
			return mismatch(claim, Integer, v)
		}
		dst.SetUint(u)
		return nil

	case reflect.Float32, reflect.Float64:
		n, ok := v.(json.Number)
		if !ok {
			return mismatch(claim, Number, v)
		}
		f, err := strconv.ParseFloat(n.String(), t.Bits())
		if err != nil {
			return mismatch(claim, Number, v)
		}
		dst.SetFloat(f)
		return nil

	case reflect.Slice:
		list, ok := v.([]any)
		if !ok {
			return mismatch(claim, List, v)
		}
		out := reflect.MakeSlice(t, len(list), len(list))
		for i, ev := range list {
			if err := decodeValue(ev, out.Index(i), fmt.Sprintf("%s[%d]", claim, i)); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil

	case reflect.Map:
		sub, ok := v.(*Document)
		if !ok {
			return mismatch(claim, Object, v)
		}
		out := reflect.MakeMapWithSize(t, sub.Len())
		for _, name := range sub.names {
			ev := reflect.New(t.Elem()).Elem()
			if err := decodeValue(sub.values[name], ev, claim+"."+name); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(name), ev)
		}
		dst.Set(out)
		return nil

	case reflect.Struct:
		sub, ok := v.(*Document)
		if !ok {
			return mismatch(claim, Object, v)
		}
		s, err := schemaFor(t)
		if err != nil {
			return err
		}
		return decodeStruct(sub, s, dst, claim)
	}

	return &UnsupportedTypeError{Type: t}
}

func fieldByIndex(v reflect.Value, index []int) reflect.Value {
	for _, i := range index {
		v = v.Field(i)
	}
	return v
}

func mismatch(claim string, want Kind, got any) *FieldError {
	return &FieldError{Claim: claim, Want: want, Got: kindOf(got)}
}

// materialize renders a document value for an untyped (any) target: nested
// documents become map[string]any so callers see plain JSON shapes.
func materialize(v any) any {
	switch t := v.(type) {
	case *Document:
		m := make(map[string]any, len(t.names))
		for _, name := range t.names {
			m[name] = materialize(t.values[name])
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = materialize(e)
		}
		return out
	}
	return v
}
