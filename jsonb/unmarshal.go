package jsonb

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

// Unmarshaler is implemented by types that decode themselves. The
// decoder is positioned at the value being decoded.
type Unmarshaler interface {
	UnmarshalJSONB(d *Decoder) error
}

// Unmarshal decodes a single JSONB element into v, which must be a
// non-nil pointer.
//
// Struct members are matched by `jsonb` tag or field name; members
// absent from the buffer leave the field at its current value, while a
// present null zeroes it. Buffer member order never matters.
func Unmarshal(data []byte, v any) error {
	root, err := newDecTree(data)
	if err != nil {
		return err
	}
	return decodeReflect(&Decoder{node: root, path: nil}, v)
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func decodeReflect(d *Decoder, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("jsonb: decode target must be a non-nil pointer, got %T", v)
	}
	return decodeValue(d, rv.Elem())
}

func decodeValue(d *Decoder, rv reflect.Value) error {
	// Custom decoders see every element, null included.
	if rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(Unmarshaler); ok {
			return u.UnmarshalJSONB(d)
		}
	}
	if d.IsNull() {
		rv.SetZero()
		return nil
	}
	if rv.Type() == timeType {
		t, err := d.Time()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(t))
		return nil
	}
	if rv.CanAddr() && reflect.PointerTo(rv.Type()).Implements(textUnmarshalerType) {
		text, err := d.String()
		if err != nil {
			return err
		}
		tu := rv.Addr().Interface().(encoding.TextUnmarshaler)
		if err := tu.UnmarshalText([]byte(text)); err != nil {
			return &ValueError{Path: d.path, Tag: d.Tag(), Text: text, Reason: err.Error()}
		}
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		v, err := d.Bool()
		if err != nil {
			return err
		}
		rv.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := d.Int()
		if err != nil {
			return err
		}
		if rv.OverflowInt(v) {
			return overflowErr(d, v, rv.Type())
		}
		rv.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v, err := d.Uint()
		if err != nil {
			return err
		}
		if rv.OverflowUint(v) {
			return overflowErr(d, int64(v), rv.Type())
		}
		rv.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := d.Float()
		if err != nil {
			return err
		}
		rv.SetFloat(v)
	case reflect.String:
		v, err := d.String()
		if err != nil {
			return err
		}
		rv.SetString(v)
	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return decodeValue(d, rv.Elem())
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fmt.Errorf("jsonb: %w %s at %s", ErrUnsupported, rv.Type(), d.path)
		}
		v, err := decodeAny(d)
		if err != nil {
			return err
		}
		if v == nil {
			rv.SetZero()
		} else {
			rv.Set(reflect.ValueOf(v))
		}
	case reflect.Slice:
		return decodeSlice(d, rv)
	case reflect.Array:
		return decodeArray(d, rv)
	case reflect.Map:
		return decodeMap(d, rv)
	case reflect.Struct:
		return decodeStruct(d, rv)
	default:
		return fmt.Errorf("jsonb: %w %s at %s", ErrUnsupported, rv.Type(), d.path)
	}
	return nil
}

func overflowErr(d *Decoder, v int64, t reflect.Type) error {
	return &ValueError{
		Path:   d.path,
		Tag:    d.Tag(),
		Text:   strconv.FormatInt(v, 10),
		Reason: "overflows " + t.String(),
	}
}

func decodeSlice(d *Decoder, rv reflect.Value) error {
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		raw, err := d.Bytes()
		if err != nil {
			return err
		}
		rv.SetBytes(raw)
		return nil
	}
	arr, err := d.Array()
	if err != nil {
		return err
	}
	out := reflect.MakeSlice(rv.Type(), 0, arr.Len())
	for arr.More() {
		ed, err := arr.Decoder()
		if err != nil {
			return err
		}
		elem := reflect.New(rv.Type().Elem())
		if err := decodeValue(ed, elem.Elem()); err != nil {
			return err
		}
		out = reflect.Append(out, elem.Elem())
	}
	rv.Set(out)
	return nil
}

func decodeArray(d *Decoder, rv reflect.Value) error {
	arr, err := d.Array()
	if err != nil {
		return err
	}
	// Extra buffer elements are dropped, short buffers zero the rest.
	for i := 0; i < rv.Len(); i++ {
		if !arr.More() {
			rv.Index(i).SetZero()
			continue
		}
		ed, err := arr.Decoder()
		if err != nil {
			return err
		}
		if err := decodeValue(ed, rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func decodeMap(d *Decoder, rv reflect.Value) error {
	obj, err := d.Object()
	if err != nil {
		return err
	}
	kt := rv.Type().Key()
	if kt.Kind() != reflect.String && !reflect.PointerTo(kt).Implements(textUnmarshalerType) {
		return fmt.Errorf("jsonb: %w %s as map key at %s", ErrUnsupported, kt, d.path)
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMapWithSize(rv.Type(), obj.Len()))
	}
	for _, key := range obj.Keys() {
		fd := obj.Field(key)
		elem := reflect.New(rv.Type().Elem())
		if err := decodeValue(fd, elem.Elem()); err != nil {
			return err
		}
		kv := reflect.New(kt).Elem()
		if kt.Kind() == reflect.String {
			kv.SetString(key)
		} else {
			tu := kv.Addr().Interface().(encoding.TextUnmarshaler)
			if err := tu.UnmarshalText([]byte(key)); err != nil {
				return &ValueError{Path: fd.path, Tag: TagText, Text: key, Reason: err.Error()}
			}
		}
		rv.SetMapIndex(kv, elem.Elem())
	}
	return nil
}

func decodeStruct(d *Decoder, rv reflect.Value) error {
	obj, err := d.Object()
	if err != nil {
		return err
	}
	for _, f := range structPlan(rv.Type()) {
		fd := obj.Field(f.name)
		if fd == nil {
			continue // absent member leaves the field alone
		}
		if err := decodeValue(fd, rv.Field(f.index)); err != nil {
			return err
		}
	}
	return nil
}

// decodeAny materializes an element as the natural dynamic Go type:
// nil, bool, int64, float64, string, []any, or map[string]any.
func decodeAny(d *Decoder) (any, error) {
	switch tag := d.Tag(); {
	case tag == TagNull:
		return nil, nil
	case tag.IsBool():
		return d.Bool()
	case tag.IsInt():
		if v, err := d.Int(); err == nil {
			return v, nil
		}
		// out-of-range integers still read as floats
		return d.Float()
	case tag.IsNumeric():
		return d.Float()
	case tag.IsText():
		return d.String()
	case tag == TagArray:
		arr, err := d.Array()
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, arr.Len())
		for arr.More() {
			ed, err := arr.Decoder()
			if err != nil {
				return nil, err
			}
			v, err := decodeAny(ed)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		obj, err := d.Object()
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, obj.Len())
		for _, key := range obj.Keys() {
			v, err := decodeAny(obj.Field(key))
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil
	}
}
