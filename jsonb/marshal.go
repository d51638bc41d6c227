package jsonb

import (
	"encoding"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

// Marshaler is implemented by types that encode themselves. The encoder
// is positioned at the value's slot; exactly one value must be written
// through it.
type Marshaler interface {
	MarshalJSONB(e *Encoder) error
}

// Marshal encodes v as a single JSONB element using default options.
func Marshal(v any) ([]byte, error) {
	return MarshalWithOptions(v, DefaultEncodeOptions())
}

// MarshalWithOptions encodes v as a single JSONB element.
//
// Struct fields use the `jsonb:"name,omitempty"` tag, falling back to
// the field name; "-" skips a field. nil pointers, nil slices, nil maps
// and untagged interface nils encode as null. Map keys must be strings
// or encoding.TextMarshaler and are always emitted in sorted order,
// since Go map iteration order would otherwise leak into the buffer.
func MarshalWithOptions(v any, opts EncodeOptions) ([]byte, error) {
	st := &encState{opts: opts}
	root := &encNode{}
	if err := encodeReflect(&Encoder{st: st, node: root, path: nil}, v); err != nil {
		return nil, err
	}
	return root.render(nil, &st.opts), nil
}

var (
	timeType          = reflect.TypeOf(time.Time{})
	marshalerType     = reflect.TypeOf((*Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

func encodeReflect(e *Encoder, v any) error {
	if v == nil {
		return e.Null()
	}
	return encodeValue(e, reflect.ValueOf(v))
}

// encodeValue dispatches on a closed set of primitive kinds once, then
// falls back to per-field traversal for composites.
func encodeValue(e *Encoder, rv reflect.Value) error {
	if !rv.IsValid() {
		return e.Null()
	}
	if rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return e.Null()
		}
	}
	if rv.Type() == timeType {
		return e.Time(rv.Interface().(time.Time))
	}
	if m, ok := marshalerOf(rv); ok {
		return m.MarshalJSONB(e)
	}
	if tm, ok := textMarshalerOf(rv); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return fmt.Errorf("jsonb: MarshalText of %s at %s: %w", rv.Type(), e.path, err)
		}
		return e.String(string(text))
	}

	switch rv.Kind() {
	case reflect.Bool:
		return e.Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return e.Uint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return e.Float(rv.Float())
	case reflect.String:
		return e.String(rv.String())
	case reflect.Pointer, reflect.Interface:
		return encodeValue(e, rv.Elem())
	case reflect.Slice:
		if rv.IsNil() {
			return e.Null()
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return e.Bytes(rv.Bytes())
		}
		return encodeSequence(e, rv)
	case reflect.Array:
		return encodeSequence(e, rv)
	case reflect.Map:
		return encodeMap(e, rv)
	case reflect.Struct:
		return encodeStruct(e, rv)
	default:
		return fmt.Errorf("jsonb: %w %s at %s", ErrUnsupported, rv.Type(), e.path)
	}
}

func encodeSequence(e *Encoder, rv reflect.Value) error {
	arr, err := e.Array()
	if err != nil {
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := encodeValue(arr.Encoder(), rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func encodeMap(e *Encoder, rv reflect.Value) error {
	if rv.IsNil() {
		return e.Null()
	}
	obj, err := e.Object()
	if err != nil {
		return err
	}
	keys := make([]string, 0, rv.Len())
	elems := make(map[string]reflect.Value, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		name, err := mapKeyName(iter.Key(), e.path)
		if err != nil {
			return err
		}
		keys = append(keys, name)
		elems[name] = iter.Value()
	}
	sort.Strings(keys)
	for _, name := range keys {
		if err := encodeValue(obj.Encoder(name), elems[name]); err != nil {
			return err
		}
	}
	return nil
}

func mapKeyName(rk reflect.Value, path *Path) (string, error) {
	if rk.Kind() == reflect.String {
		return rk.String(), nil
	}
	if tm, ok := textMarshalerOf(rk); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return "", fmt.Errorf("jsonb: MarshalText of map key at %s: %w", path, err)
		}
		return string(text), nil
	}
	return "", fmt.Errorf("jsonb: %w %s as map key at %s", ErrUnsupported, rk.Type(), path)
}

func encodeStruct(e *Encoder, rv reflect.Value) error {
	obj, err := e.Object()
	if err != nil {
		return err
	}
	for _, f := range structPlan(rv.Type()) {
		fv := rv.Field(f.index)
		if f.omitempty && isEmptyValue(fv) {
			continue
		}
		if err := encodeValue(obj.Encoder(f.name), fv); err != nil {
			return err
		}
	}
	return nil
}

// marshalerOf returns rv (or its address) as a Marshaler.
func marshalerOf(rv reflect.Value) (Marshaler, bool) {
	t := rv.Type()
	if t.Implements(marshalerType) {
		return rv.Interface().(Marshaler), true
	}
	if rv.CanAddr() && reflect.PointerTo(t).Implements(marshalerType) {
		return rv.Addr().Interface().(Marshaler), true
	}
	return nil, false
}

// textMarshalerOf returns rv (or its address) as a TextMarshaler.
func textMarshalerOf(rv reflect.Value) (encoding.TextMarshaler, bool) {
	t := rv.Type()
	if t.Implements(textMarshalerType) {
		return rv.Interface().(encoding.TextMarshaler), true
	}
	if rv.CanAddr() && reflect.PointerTo(t).Implements(textMarshalerType) {
		return rv.Addr().Interface().(encoding.TextMarshaler), true
	}
	return nil, false
}

// ============================================================
// Struct field plans
// ============================================================

// structField is one encodable field of a struct type.
type structField struct {
	name      string
	index     int
	omitempty bool
}

// planCache memoizes field plans per struct type so the tag parsing
// cost is paid once per type, not once per value.
var planCache sync.Map // reflect.Type -> []structField

func structPlan(t reflect.Type) []structField {
	if p, ok := planCache.Load(t); ok {
		return p.([]structField)
	}
	fields := make([]structField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		name := sf.Name
		var omitempty bool
		if tag, ok := sf.Tag.Lookup("jsonb"); ok {
			base, opts, _ := strings.Cut(tag, ",")
			if base == "-" && opts == "" {
				continue
			}
			if base != "" {
				name = base
			}
			for opts != "" {
				var o string
				o, opts, _ = strings.Cut(opts, ",")
				if o == "omitempty" {
					omitempty = true
				}
			}
		}
		fields = append(fields, structField{name: name, index: i, omitempty: omitempty})
	}
	planCache.Store(t, fields)
	return fields
}

// isEmptyValue mirrors the omitempty convention: zero numerics, empty
// strings and containers, nil pointers and interfaces.
func isEmptyValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
