package jsonb

import "time"

// ============================================================
// Encode Options
// ============================================================

// EncodeOptions configures the encoder.
type EncodeOptions struct {
	// SortKeys renders object members in lexicographic key order
	// instead of insertion order. Both orders decode identically; the
	// sorted form is deterministic across runs regardless of how the
	// members were produced.
	SortKeys bool

	// KeepFloats suppresses the integral-float collapse: 4.0 encodes
	// under the float tag instead of as the integer 4. The collapse
	// matches the reference encoder's observed behavior but is not a
	// documented guarantee of the format.
	KeepFloats bool
}

// DefaultEncodeOptions returns the options Marshal uses: insertion
// key order, integral floats collapsed.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{}
}

// encState carries encode-wide state shared by all adapters of one
// Marshal invocation.
type encState struct {
	opts EncodeOptions
}

// ============================================================
// Container Protocol Adapters — encode side
// ============================================================

// Encoder writes a single value into one slot of the encode tree.
// Marshaler implementations receive an Encoder positioned at the value
// being encoded; exactly one of its methods should be called.
type Encoder struct {
	st   *encState
	node *encNode
	path *Path
}

// Path returns the location of the slot, for diagnostics.
func (e *Encoder) Path() *Path { return e.path }

// Null encodes the null element.
func (e *Encoder) Null() error {
	return e.node.setScalar(elemNull(), e.path)
}

// Bool encodes a boolean.
func (e *Encoder) Bool(v bool) error {
	return e.node.setScalar(elemBool(v), e.path)
}

// Int encodes an integer in display form.
func (e *Encoder) Int(v int64) error {
	return e.node.setScalar(elemInt(v), e.path)
}

// Uint encodes an unsigned integer in display form.
func (e *Encoder) Uint(v uint64) error {
	return e.node.setScalar(elemUint(v), e.path)
}

// Float encodes a float. Non-finite values have no representation in
// the format and fail.
func (e *Encoder) Float(v float64) error {
	raw, err := elemFloat(v, e.st.opts.KeepFloats)
	if err != nil {
		return err
	}
	return e.node.setScalar(raw, e.path)
}

// String encodes text.
func (e *Encoder) String(v string) error {
	return e.node.setScalar(elemString(v), e.path)
}

// Bytes encodes a byte blob as base64 text.
func (e *Encoder) Bytes(v []byte) error {
	return e.node.setScalar(elemBytes(v), e.path)
}

// Time encodes a timestamp as RFC 3339 text.
func (e *Encoder) Time(v time.Time) error {
	return e.node.setScalar(elemTime(v), e.path)
}

// Object turns the slot into a keyed container.
func (e *Encoder) Object() (*ObjectEncoder, error) {
	if err := e.node.asKeyed(e.path); err != nil {
		return nil, err
	}
	return &ObjectEncoder{st: e.st, node: e.node, path: e.path}, nil
}

// Array turns the slot into an unkeyed container.
func (e *Encoder) Array() (*ArrayEncoder, error) {
	if err := e.node.asUnkeyed(e.path); err != nil {
		return nil, err
	}
	return &ArrayEncoder{st: e.st, node: e.node, path: e.path}, nil
}

// Encode encodes an arbitrary Go value into the slot via generic
// traversal.
func (e *Encoder) Encode(v any) error {
	return encodeReflect(e, v)
}

// ObjectEncoder writes the members of a keyed container.
type ObjectEncoder struct {
	st   *encState
	node *encNode
	path *Path
}

// Has reports whether a member has already been written under key.
func (o *ObjectEncoder) Has(key string) bool {
	c, ok := o.node.keyed.Get(key)
	return ok && c.kind != nodeEmpty
}

// Encoder returns a single-value encoder for the member under key.
// This is the escape hatch for custom codecs that need to place an
// arbitrary value at a key without a container wrapper. The returned
// encoder owns a fresh slot; writing the same key twice replaces the
// earlier member.
func (o *ObjectEncoder) Encoder(key string) *Encoder {
	c := &encNode{}
	o.node.put(key, c)
	return &Encoder{st: o.st, node: c, path: o.path.Key(key)}
}

// Object opens a nested keyed container under key (create-or-fetch).
func (o *ObjectEncoder) Object(key string) (*ObjectEncoder, error) {
	c := o.node.child(key)
	path := o.path.Key(key)
	if err := c.asKeyed(path); err != nil {
		return nil, err
	}
	return &ObjectEncoder{st: o.st, node: c, path: path}, nil
}

// Array opens a nested unkeyed container under key (create-or-fetch).
func (o *ObjectEncoder) Array(key string) (*ArrayEncoder, error) {
	c := o.node.child(key)
	path := o.path.Key(key)
	if err := c.asUnkeyed(path); err != nil {
		return nil, err
	}
	return &ArrayEncoder{st: o.st, node: c, path: path}, nil
}

func (o *ObjectEncoder) PutNull(key string) error           { return o.Encoder(key).Null() }
func (o *ObjectEncoder) PutBool(key string, v bool) error   { return o.Encoder(key).Bool(v) }
func (o *ObjectEncoder) PutInt(key string, v int64) error   { return o.Encoder(key).Int(v) }
func (o *ObjectEncoder) PutUint(key string, v uint64) error { return o.Encoder(key).Uint(v) }
func (o *ObjectEncoder) PutFloat(key string, v float64) error {
	return o.Encoder(key).Float(v)
}
func (o *ObjectEncoder) PutString(key, v string) error { return o.Encoder(key).String(v) }
func (o *ObjectEncoder) PutBytes(key string, v []byte) error {
	return o.Encoder(key).Bytes(v)
}
func (o *ObjectEncoder) PutTime(key string, v time.Time) error {
	return o.Encoder(key).Time(v)
}

// Put encodes an arbitrary Go value under key.
func (o *ObjectEncoder) Put(key string, v any) error {
	return o.Encoder(key).Encode(v)
}

// ArrayEncoder appends the elements of an unkeyed container.
type ArrayEncoder struct {
	st   *encState
	node *encNode
	path *Path
}

// Len returns the number of elements appended so far.
func (a *ArrayEncoder) Len() int { return len(a.node.unkeyed) }

// Encoder reserves the next slot and returns its single-value encoder.
// The slot may be filled after further elements have been appended; an
// unfilled slot encodes as null.
func (a *ArrayEncoder) Encoder() *Encoder {
	i := len(a.node.unkeyed)
	return &Encoder{st: a.st, node: a.node.reserve(), path: a.path.Index(i)}
}

// Object appends a nested keyed container.
func (a *ArrayEncoder) Object() (*ObjectEncoder, error) {
	return a.Encoder().Object()
}

// Array appends a nested unkeyed container.
func (a *ArrayEncoder) Array() (*ArrayEncoder, error) {
	return a.Encoder().Array()
}

func (a *ArrayEncoder) Null() error            { return a.Encoder().Null() }
func (a *ArrayEncoder) Bool(v bool) error      { return a.Encoder().Bool(v) }
func (a *ArrayEncoder) Int(v int64) error      { return a.Encoder().Int(v) }
func (a *ArrayEncoder) Uint(v uint64) error    { return a.Encoder().Uint(v) }
func (a *ArrayEncoder) Float(v float64) error  { return a.Encoder().Float(v) }
func (a *ArrayEncoder) String(v string) error  { return a.Encoder().String(v) }
func (a *ArrayEncoder) Bytes(v []byte) error   { return a.Encoder().Bytes(v) }
func (a *ArrayEncoder) Time(v time.Time) error { return a.Encoder().Time(v) }

// Add encodes an arbitrary Go value as the next element.
func (a *ArrayEncoder) Add(v any) error { return a.Encoder().Encode(v) }
