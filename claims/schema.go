package claims

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

var numberType = reflect.TypeOf(json.Number(""))

// structSchema is the declarative shape derived from a target struct type:
// one entry per claim the struct declares, in field order.
type structSchema struct {
	fields []fieldSchema
}

type fieldSchema struct {
	name     string // claim name from the json tag, or the field name
	index    []int  // field index path; embedded structs flatten into it
	want     Kind
	optional bool // pointer fields tolerate absent and null claims
}

var schemaCache sync.Map // reflect.Type -> *structSchema

// schemaFor derives the schema of a struct type, caching it per type the way
// encoding/json caches its field sets.
func schemaFor(t reflect.Type) (*structSchema, error) {
	if s, ok := schemaCache.Load(t); ok {
		return s.(*structSchema), nil
	}
	s := &structSchema{}
	if err := appendFields(s, t, nil); err != nil {
		return nil, err
	}
	cached, _ := schemaCache.LoadOrStore(t, s)
	return cached.(*structSchema), nil
}

func appendFields(s *structSchema, t reflect.Type, index []int) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tagName := ""
		if tag, ok := f.Tag.Lookup("json"); ok {
			tagName, _, _ = strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
		}
		if f.Anonymous && tagName == "" {
			if f.Type.Kind() == reflect.Struct {
				sub := append(append([]int(nil), index...), i)
				if err := appendFields(s, f.Type, sub); err != nil {
					return err
				}
				continue
			}
			if f.Type.Kind() == reflect.Pointer && f.Type.Elem().Kind() == reflect.Struct {
				return &UnsupportedTypeError{Type: f.Type}
			}
		}
		name := f.Name
		if tagName != "" {
			name = tagName
		}
		ft := f.Type
		optional := ft.Kind() == reflect.Pointer
		if optional {
			ft = ft.Elem()
		}
		want, err := kindFor(ft)
		if err != nil {
			return err
		}
		s.fields = append(s.fields, fieldSchema{
			name:     name,
			index:    append(append([]int(nil), index...), i),
			want:     want,
			optional: optional,
		})
	}
	return nil
}

// kindFor maps a Go type onto the claim kind it requires. Nested struct
// schemas are derived lazily at conversion time, which also keeps recursive
// shapes derivable.
func kindFor(t reflect.Type) (Kind, error) {
	if t == numberType {
		return Number, nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return Bool, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer, nil
	case reflect.Float32, reflect.Float64:
		return Number, nil
	case reflect.String:
		return String, nil
	case reflect.Slice:
		if _, err := kindFor(valueType(t.Elem())); err != nil {
			return Invalid, err
		}
		return List, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return Invalid, &UnsupportedTypeError{Type: t}
		}
		if _, err := kindFor(valueType(t.Elem())); err != nil {
			return Invalid, err
		}
		return Object, nil
	case reflect.Struct:
		return Object, nil
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return Any, nil
		}
	}
	return Invalid, &UnsupportedTypeError{Type: t}
}

// valueType unwraps the optionality pointer of a slice element or map value.
func valueType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}
