package jsonb

// ============================================================
// Decode Tree
// ============================================================
//
// A decode tree borrows from the input buffer and expands lazily: a
// node starts raw (tag + unparsed payload) and parses its members only
// when a keyed or unkeyed view is requested. Expansion goes exactly one
// level deep: member headers are parsed, member payloads are not, so
// deep structures cost nothing until they are actually walked. The
// first successful expansion is memoized; the raw payload never changes
// underneath it, so a node settles into at most one shape.

type decNode struct {
	tag     Tag
	payload []byte
	off     int // absolute offset of the element in the input buffer

	kind    nodeKind // expansion state; nodeEmpty means still raw
	keys    []string // keyed: member names in buffer order
	keyed   map[string]*decNode
	unkeyed []*decNode
}

// newDecTree parses the top-level element header of data. The buffer
// must hold exactly one element; trailing bytes are a corruption error.
func newDecTree(data []byte) (*decNode, error) {
	tag, payload, next, err := decodeHeader(data, 0)
	if err != nil {
		return nil, err
	}
	if next != len(data) {
		return nil, &CorruptError{Offset: next, Reason: "trailing bytes after top-level element"}
	}
	return &decNode{tag: tag, payload: payload, off: 0}, nil
}

// isNull reports whether the node holds the null element.
func (n *decNode) isNull() bool {
	return n.tag == TagNull
}

// expandKeyed returns the node's keyed view, parsing the member list on
// first use. It returns (nil, nil) when the underlying tag is not
// object: the caller decides whether that is a type error.
func (n *decNode) expandKeyed() (map[string]*decNode, error) {
	if n.tag != TagObject {
		return nil, nil
	}
	if n.kind == nodeKeyed {
		return n.keyed, nil
	}

	base := n.off + headerSize(len(n.payload))
	keyed := make(map[string]*decNode)
	var keys []string
	for off := 0; off < len(n.payload); {
		ktag, kpayload, knext, err := decodeHeader(n.payload, off)
		if err != nil {
			return nil, corruptAt(err, base)
		}
		if !ktag.IsText() {
			return nil, &CorruptError{Offset: base + off, Reason: "object key is not text"}
		}
		key, kerr := decodeString(ktag, kpayload, nil)
		if kerr != nil {
			return nil, &CorruptError{Offset: base + off, Reason: "undecodable object key"}
		}
		vtag, vpayload, vnext, err := decodeHeader(n.payload, knext)
		if err != nil {
			return nil, corruptAt(err, base)
		}
		if _, dup := keyed[key]; !dup {
			keyed[key] = &decNode{tag: vtag, payload: vpayload, off: base + knext}
			keys = append(keys, key)
		}
		off = vnext
	}
	n.kind = nodeKeyed
	n.keyed = keyed
	n.keys = keys
	return keyed, nil
}

// expandUnkeyed returns the node's unkeyed view, parsing the element
// list on first use. Returns (nil, nil) when the tag is not array; an
// empty array is a non-nil empty slice.
func (n *decNode) expandUnkeyed() ([]*decNode, error) {
	if n.tag != TagArray {
		return nil, nil
	}
	if n.kind == nodeUnkeyed {
		return n.unkeyed, nil
	}

	base := n.off + headerSize(len(n.payload))
	elems := []*decNode{}
	for off := 0; off < len(n.payload); {
		tag, payload, next, err := decodeHeader(n.payload, off)
		if err != nil {
			return nil, corruptAt(err, base)
		}
		elems = append(elems, &decNode{tag: tag, payload: payload, off: base + off})
		off = next
	}
	n.kind = nodeUnkeyed
	n.unkeyed = elems
	return elems, nil
}

// corruptAt rebases a CorruptError from payload-relative to absolute
// buffer offsets.
func corruptAt(err error, base int) error {
	if ce, ok := err.(*CorruptError); ok {
		return &CorruptError{Offset: base + ce.Offset, Reason: ce.Reason}
	}
	return err
}
