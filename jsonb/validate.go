package jsonb

// ============================================================
// Structural Validation
// ============================================================

// Check walks an entire buffer and returns the first structural defect:
// a reserved tag, a payload length past the end, trailing bytes, a
// container whose members don't tile its payload exactly, or an object
// key that is not text. It never allocates a decode tree.
func Check(data []byte) error {
	tag, payload, next, err := decodeHeader(data, 0)
	if err != nil {
		return err
	}
	if next != len(data) {
		return &CorruptError{Offset: next, Reason: "trailing bytes after top-level element"}
	}
	return checkElement(tag, payload, next-len(payload))
}

// Valid reports whether data is a structurally well-formed JSONB
// buffer.
func Valid(data []byte) bool {
	return Check(data) == nil
}

func checkElement(tag Tag, payload []byte, base int) error {
	switch tag {
	case TagArray:
		for off := 0; off < len(payload); {
			etag, epayload, next, err := decodeHeader(payload, off)
			if err != nil {
				return corruptAt(err, base)
			}
			if err := checkElement(etag, epayload, base+next-len(epayload)); err != nil {
				return err
			}
			off = next
		}
	case TagObject:
		for off := 0; off < len(payload); {
			ktag, _, knext, err := decodeHeader(payload, off)
			if err != nil {
				return corruptAt(err, base)
			}
			if !ktag.IsText() {
				return &CorruptError{Offset: base + off, Reason: "object key is not text"}
			}
			vtag, vpayload, vnext, err := decodeHeader(payload, knext)
			if err != nil {
				return corruptAt(err, base)
			}
			if err := checkElement(vtag, vpayload, base+vnext-len(vpayload)); err != nil {
				return err
			}
			off = vnext
		}
	default:
		if len(payload) == 0 && !tag.zeroPayload() {
			return &CorruptError{Offset: base, Reason: "empty " + tag.String() + " payload"}
		}
	}
	return nil
}
