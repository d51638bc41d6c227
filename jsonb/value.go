package jsonb

import (
	"fmt"
	"time"
)

// ============================================================
// Dynamic Value Model
// ============================================================

// Kind classifies a Value. Unlike Tag it is a semantic type, not a wire
// lexical form: all four text tags decode to KindStr, and blob and
// timestamp exist only on the encode side (the wire stores both as
// text, so decoding yields strings).
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindBlob
	KindTime
	KindArr
	KindObj
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindBlob:
		return "blob"
	case KindTime:
		return "time"
	case KindArr:
		return "arr"
	case KindObj:
		return "obj"
	default:
		return "unknown"
	}
}

// Value is a dynamically-typed JSONB value.
type Value struct {
	kind Kind

	// Scalar values (only one valid based on kind)
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string
	blobVal  []byte
	timeVal  time.Time

	// Container values
	arrVal []*Value
	objVal []Member
}

// Member is a key-value pair in an object. Insertion order is kept and
// rendered unless EncodeOptions.SortKeys is set.
type Member struct {
	Key   string
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Int creates an integer value.
func Int(v int64) *Value {
	return &Value{kind: KindInt, intVal: v}
}

// Float creates a float value.
func Float(v float64) *Value {
	return &Value{kind: KindFloat, floatVal: v}
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{kind: KindStr, strVal: v}
}

// Blob creates a byte-blob value.
func Blob(v []byte) *Value {
	return &Value{kind: KindBlob, blobVal: v}
}

// Timestamp creates a time value.
func Timestamp(v time.Time) *Value {
	return &Value{kind: KindTime, timeVal: v}
}

// Arr creates an array value.
func Arr(values ...*Value) *Value {
	return &Value{kind: KindArr, arrVal: values}
}

// Obj creates an object value from members.
func Obj(members ...Member) *Value {
	return &Value{kind: KindObj, objVal: members}
}

// Field creates a Member for use in Obj construction.
func Field(key string, value *Value) Member {
	return Member{Key: key, Value: value}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if v == nil || v.kind != KindBool {
		return false, fmt.Errorf("jsonb: expected bool, got %s", v.Kind())
	}
	return v.boolVal, nil
}

// AsInt returns the integer value.
func (v *Value) AsInt() (int64, error) {
	if v == nil || v.kind != KindInt {
		return 0, fmt.Errorf("jsonb: expected int, got %s", v.Kind())
	}
	return v.intVal, nil
}

// AsFloat returns the float value.
func (v *Value) AsFloat() (float64, error) {
	if v == nil || v.kind != KindFloat {
		return 0, fmt.Errorf("jsonb: expected float, got %s", v.Kind())
	}
	return v.floatVal, nil
}

// AsStr returns the string value.
func (v *Value) AsStr() (string, error) {
	if v == nil || v.kind != KindStr {
		return "", fmt.Errorf("jsonb: expected str, got %s", v.Kind())
	}
	return v.strVal, nil
}

// AsBlob returns the blob value.
func (v *Value) AsBlob() ([]byte, error) {
	if v == nil || v.kind != KindBlob {
		return nil, fmt.Errorf("jsonb: expected blob, got %s", v.Kind())
	}
	return v.blobVal, nil
}

// AsTime returns the time value.
func (v *Value) AsTime() (time.Time, error) {
	if v == nil || v.kind != KindTime {
		return time.Time{}, fmt.Errorf("jsonb: expected time, got %s", v.Kind())
	}
	return v.timeVal, nil
}

// AsArr returns the array elements.
func (v *Value) AsArr() ([]*Value, error) {
	if v == nil || v.kind != KindArr {
		return nil, fmt.Errorf("jsonb: expected arr, got %s", v.Kind())
	}
	return v.arrVal, nil
}

// AsObj returns the object members.
func (v *Value) AsObj() ([]Member, error) {
	if v == nil || v.kind != KindObj {
		return nil, fmt.Errorf("jsonb: expected obj, got %s", v.Kind())
	}
	return v.objVal, nil
}

// Number returns a numeric value as float64 if int or float.
func (v *Value) Number() (float64, bool) {
	switch v.Kind() {
	case KindInt:
		return float64(v.intVal), true
	case KindFloat:
		return v.floatVal, true
	default:
		return 0, false
	}
}

// Len returns the length of an array or object, 0 otherwise.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArr:
		return len(v.arrVal)
	case KindObj:
		return len(v.objVal)
	default:
		return 0
	}
}

// Get returns an object member value by key, or nil when absent.
func (v *Value) Get(key string) *Value {
	if v.Kind() != KindObj {
		return nil
	}
	for _, m := range v.objVal {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Index returns the i-th element of an array.
func (v *Value) Index(i int) (*Value, error) {
	if v == nil || v.kind != KindArr {
		return nil, fmt.Errorf("jsonb: not an arr")
	}
	if i < 0 || i >= len(v.arrVal) {
		return nil, fmt.Errorf("jsonb: index %d out of bounds (len=%d)", i, len(v.arrVal))
	}
	return v.arrVal[i], nil
}

// ============================================================
// Mutators
// ============================================================

// Set sets an object member, replacing an existing key or appending.
func (v *Value) Set(key string, val *Value) {
	if v.kind != KindObj {
		panic("jsonb: cannot set on non-obj")
	}
	for i := range v.objVal {
		if v.objVal[i].Key == key {
			v.objVal[i].Value = val
			return
		}
	}
	v.objVal = append(v.objVal, Member{Key: key, Value: val})
}

// Append adds an element to an array.
func (v *Value) Append(val *Value) {
	if v.kind != KindArr {
		panic("jsonb: cannot append to non-arr")
	}
	v.arrVal = append(v.arrVal, val)
}

// ============================================================
// Wire codec
// ============================================================

// Encode renders the value as a single JSONB element using default
// options.
func (v *Value) Encode() ([]byte, error) {
	return Marshal(v)
}

// DecodeValue materializes a whole buffer into a Value tree.
func DecodeValue(data []byte) (*Value, error) {
	var v Value
	if err := Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// MarshalJSONB encodes the value through the container protocol.
func (v *Value) MarshalJSONB(e *Encoder) error {
	if v == nil {
		return e.Null()
	}
	switch v.kind {
	case KindNull:
		return e.Null()
	case KindBool:
		return e.Bool(v.boolVal)
	case KindInt:
		return e.Int(v.intVal)
	case KindFloat:
		return e.Float(v.floatVal)
	case KindStr:
		return e.String(v.strVal)
	case KindBlob:
		return e.Bytes(v.blobVal)
	case KindTime:
		return e.Time(v.timeVal)
	case KindArr:
		arr, err := e.Array()
		if err != nil {
			return err
		}
		for _, elem := range v.arrVal {
			if err := elem.MarshalJSONB(arr.Encoder()); err != nil {
				return err
			}
		}
		return nil
	case KindObj:
		obj, err := e.Object()
		if err != nil {
			return err
		}
		for _, m := range v.objVal {
			if err := m.Value.MarshalJSONB(obj.Encoder(m.Key)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("jsonb: %w value kind %d", ErrUnsupported, v.kind)
	}
}

// UnmarshalJSONB decodes any element into the value. Text decodes to
// KindStr even when it was produced from a blob or timestamp; the wire
// does not preserve that distinction.
func (v *Value) UnmarshalJSONB(d *Decoder) error {
	switch tag := d.Tag(); {
	case tag == TagNull:
		*v = Value{kind: KindNull}
	case tag.IsBool():
		b, err := d.Bool()
		if err != nil {
			return err
		}
		*v = Value{kind: KindBool, boolVal: b}
	case tag.IsInt():
		i, err := d.Int()
		if err != nil {
			// out-of-range integers still read as floats
			f, ferr := d.Float()
			if ferr != nil {
				return err
			}
			*v = Value{kind: KindFloat, floatVal: f}
			return nil
		}
		*v = Value{kind: KindInt, intVal: i}
	case tag.IsNumeric():
		f, err := d.Float()
		if err != nil {
			return err
		}
		*v = Value{kind: KindFloat, floatVal: f}
	case tag.IsText():
		s, err := d.String()
		if err != nil {
			return err
		}
		*v = Value{kind: KindStr, strVal: s}
	case tag == TagArray:
		arr, err := d.Array()
		if err != nil {
			return err
		}
		elems := make([]*Value, 0, arr.Len())
		for arr.More() {
			ed, err := arr.Decoder()
			if err != nil {
				return err
			}
			var elem Value
			if err := elem.UnmarshalJSONB(ed); err != nil {
				return err
			}
			elems = append(elems, &elem)
		}
		*v = Value{kind: KindArr, arrVal: elems}
	default:
		obj, err := d.Object()
		if err != nil {
			return err
		}
		members := make([]Member, 0, obj.Len())
		for _, key := range obj.Keys() {
			var elem Value
			if err := elem.UnmarshalJSONB(obj.Field(key)); err != nil {
				return err
			}
			members = append(members, Member{Key: key, Value: &elem})
		}
		*v = Value{kind: KindObj, objVal: members}
	}
	return nil
}
