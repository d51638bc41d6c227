package jsonb

import "time"

// ============================================================
// Container Protocol Adapters — decode side
// ============================================================

// Decoder reads a single value from the decode tree. Unmarshaler
// implementations receive a Decoder positioned at the value being
// decoded.
type Decoder struct {
	node *decNode
	path *Path
}

// Path returns the location of the value, for diagnostics.
func (d *Decoder) Path() *Path { return d.path }

// Tag returns the value's type tag.
func (d *Decoder) Tag() Tag { return d.node.tag }

// IsNull reports whether the value is the null element.
func (d *Decoder) IsNull() bool { return d.node.isNull() }

// Bool decodes a boolean.
func (d *Decoder) Bool() (bool, error) {
	return decodeBool(d.node.tag, d.path)
}

// Int decodes an integer.
func (d *Decoder) Int() (int64, error) {
	return decodeInt(d.node.tag, d.node.payload, d.path)
}

// Uint decodes an unsigned integer.
func (d *Decoder) Uint() (uint64, error) {
	return decodeUint(d.node.tag, d.node.payload, d.path)
}

// Float decodes a float. Integer elements are accepted.
func (d *Decoder) Float() (float64, error) {
	return decodeFloat(d.node.tag, d.node.payload, d.path)
}

// String decodes text. All four text lexical forms are accepted.
func (d *Decoder) String() (string, error) {
	return decodeString(d.node.tag, d.node.payload, d.path)
}

// Bytes decodes a base64 text element into the raw blob.
func (d *Decoder) Bytes() ([]byte, error) {
	return decodeBytes(d.node.tag, d.node.payload, d.path)
}

// Time decodes an RFC 3339 text element.
func (d *Decoder) Time() (time.Time, error) {
	return decodeTime(d.node.tag, d.node.payload, d.path)
}

// Object returns the keyed view of the value. Fails with a TypeError
// if the value is not an object.
func (d *Decoder) Object() (*ObjectDecoder, error) {
	keyed, err := d.node.expandKeyed()
	if err != nil {
		return nil, err
	}
	if keyed == nil {
		return nil, &TypeError{Path: d.path, Got: d.node.tag, Want: "object"}
	}
	return &ObjectDecoder{node: d.node, path: d.path}, nil
}

// Array returns the unkeyed view of the value. Fails with a TypeError
// if the value is not an array.
func (d *Decoder) Array() (*ArrayDecoder, error) {
	elems, err := d.node.expandUnkeyed()
	if err != nil {
		return nil, err
	}
	if elems == nil {
		return nil, &TypeError{Path: d.path, Got: d.node.tag, Want: "array"}
	}
	return &ArrayDecoder{node: d.node, path: d.path}, nil
}

// Decode populates an arbitrary Go value via generic traversal. v must
// be a non-nil pointer.
func (d *Decoder) Decode(v any) error {
	return decodeReflect(d, v)
}

// ObjectDecoder reads the members of a keyed container. Member lookup
// is by name; buffer order never matters.
type ObjectDecoder struct {
	node *decNode
	path *Path
}

// Len returns the number of distinct members.
func (o *ObjectDecoder) Len() int { return len(o.node.keys) }

// Keys returns the member names in buffer order.
func (o *ObjectDecoder) Keys() []string {
	keys := make([]string, len(o.node.keys))
	copy(keys, o.node.keys)
	return keys
}

// Has reports whether a member named key is present. A member holding
// null is present; Has distinguishes missing from null.
func (o *ObjectDecoder) Has(key string) bool {
	_, ok := o.node.keyed[key]
	return ok
}

// Field returns the decoder for the member named key, or nil if the
// member is absent.
func (o *ObjectDecoder) Field(key string) *Decoder {
	c, ok := o.node.keyed[key]
	if !ok {
		return nil
	}
	return &Decoder{node: c, path: o.path.Key(key)}
}

// Require returns the decoder for the member named key, failing with a
// MissingError when absent.
func (o *ObjectDecoder) Require(key string) (*Decoder, error) {
	d := o.Field(key)
	if d == nil {
		return nil, &MissingError{Path: o.path.Key(key)}
	}
	return d, nil
}

func (o *ObjectDecoder) Bool(key string) (bool, error) {
	d, err := o.Require(key)
	if err != nil {
		return false, err
	}
	return d.Bool()
}

func (o *ObjectDecoder) Int(key string) (int64, error) {
	d, err := o.Require(key)
	if err != nil {
		return 0, err
	}
	return d.Int()
}

func (o *ObjectDecoder) Float(key string) (float64, error) {
	d, err := o.Require(key)
	if err != nil {
		return 0, err
	}
	return d.Float()
}

func (o *ObjectDecoder) String(key string) (string, error) {
	d, err := o.Require(key)
	if err != nil {
		return "", err
	}
	return d.String()
}

func (o *ObjectDecoder) Bytes(key string) ([]byte, error) {
	d, err := o.Require(key)
	if err != nil {
		return nil, err
	}
	return d.Bytes()
}

func (o *ObjectDecoder) Time(key string) (time.Time, error) {
	d, err := o.Require(key)
	if err != nil {
		return time.Time{}, err
	}
	return d.Time()
}

// ArrayDecoder reads the elements of an unkeyed container through a
// forward-only cursor. A successful read advances the cursor by one; a
// failed read leaves it in place, so the same element can be retried
// with a different expected type. IsNull advances only when the element
// is confirmed null. This asymmetry keeps nested escape-hatch reads
// aligned with what was actually consumed.
type ArrayDecoder struct {
	node *decNode
	path *Path
	cur  int
}

// Len returns the number of elements.
func (a *ArrayDecoder) Len() int { return len(a.node.unkeyed) }

// Index returns the cursor position.
func (a *ArrayDecoder) Index() int { return a.cur }

// More reports whether elements remain past the cursor.
func (a *ArrayDecoder) More() bool { return a.cur < len(a.node.unkeyed) }

// current returns the element at the cursor without consuming it.
func (a *ArrayDecoder) current() (*decNode, *Path, error) {
	if !a.More() {
		return nil, nil, &MissingError{Path: a.path.Index(a.cur)}
	}
	return a.node.unkeyed[a.cur], a.path.Index(a.cur), nil
}

// IsNull reports whether the element at the cursor is null, consuming
// it only when it is.
func (a *ArrayDecoder) IsNull() bool {
	if !a.More() {
		return false
	}
	if a.node.unkeyed[a.cur].isNull() {
		a.cur++
		return true
	}
	return false
}

func (a *ArrayDecoder) Bool() (bool, error) {
	n, path, err := a.current()
	if err != nil {
		return false, err
	}
	v, err := decodeBool(n.tag, path)
	if err == nil {
		a.cur++
	}
	return v, err
}

func (a *ArrayDecoder) Int() (int64, error) {
	n, path, err := a.current()
	if err != nil {
		return 0, err
	}
	v, err := decodeInt(n.tag, n.payload, path)
	if err == nil {
		a.cur++
	}
	return v, err
}

func (a *ArrayDecoder) Uint() (uint64, error) {
	n, path, err := a.current()
	if err != nil {
		return 0, err
	}
	v, err := decodeUint(n.tag, n.payload, path)
	if err == nil {
		a.cur++
	}
	return v, err
}

func (a *ArrayDecoder) Float() (float64, error) {
	n, path, err := a.current()
	if err != nil {
		return 0, err
	}
	v, err := decodeFloat(n.tag, n.payload, path)
	if err == nil {
		a.cur++
	}
	return v, err
}

func (a *ArrayDecoder) String() (string, error) {
	n, path, err := a.current()
	if err != nil {
		return "", err
	}
	v, err := decodeString(n.tag, n.payload, path)
	if err == nil {
		a.cur++
	}
	return v, err
}

func (a *ArrayDecoder) Bytes() ([]byte, error) {
	n, path, err := a.current()
	if err != nil {
		return nil, err
	}
	v, err := decodeBytes(n.tag, n.payload, path)
	if err == nil {
		a.cur++
	}
	return v, err
}

func (a *ArrayDecoder) Time() (time.Time, error) {
	n, path, err := a.current()
	if err != nil {
		return time.Time{}, err
	}
	v, err := decodeTime(n.tag, n.payload, path)
	if err == nil {
		a.cur++
	}
	return v, err
}

// Object decodes the element at the cursor as a nested keyed container,
// consuming it on success.
func (a *ArrayDecoder) Object() (*ObjectDecoder, error) {
	n, path, err := a.current()
	if err != nil {
		return nil, err
	}
	od, err := (&Decoder{node: n, path: path}).Object()
	if err == nil {
		a.cur++
	}
	return od, err
}

// Array decodes the element at the cursor as a nested unkeyed
// container, consuming it on success.
func (a *ArrayDecoder) Array() (*ArrayDecoder, error) {
	n, path, err := a.current()
	if err != nil {
		return nil, err
	}
	ad, err := (&Decoder{node: n, path: path}).Array()
	if err == nil {
		a.cur++
	}
	return ad, err
}

// Decoder consumes the element at the cursor and returns its
// single-value decoder. This is the escape hatch for custom codecs; the
// slot counts as read even if the caller never touches it.
func (a *ArrayDecoder) Decoder() (*Decoder, error) {
	n, path, err := a.current()
	if err != nil {
		return nil, err
	}
	a.cur++
	return &Decoder{node: n, path: path}, nil
}

// Decode populates an arbitrary Go value from the element at the
// cursor, consuming it on success.
func (a *ArrayDecoder) Decode(v any) error {
	n, path, err := a.current()
	if err != nil {
		return err
	}
	if err := decodeReflect(&Decoder{node: n, path: path}, v); err != nil {
		return err
	}
	a.cur++
	return nil
}
