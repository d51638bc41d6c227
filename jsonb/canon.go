package jsonb

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ============================================================
// Canonical Scalar Elements
// ============================================================
//
// The encoder only ever produces the canonical lexical forms (TagInt,
// TagFloat, TagText); the JSON5 variants exist on the wire for inputs
// produced elsewhere and are accepted on decode only.

var (
	elemNullBytes  = []byte{byte(TagNull)}
	elemTrueBytes  = []byte{byte(TagTrue)}
	elemFalseBytes = []byte{byte(TagFalse)}
)

// elemNull returns the encoded null element.
func elemNull() []byte { return elemNullBytes }

// elemBool returns the encoded boolean element. True and false are
// distinct tags with empty payloads.
func elemBool(v bool) []byte {
	if v {
		return elemTrueBytes
	}
	return elemFalseBytes
}

// elemInt encodes an integer in display form: the payload is the ASCII
// decimal text of the value, not its binary representation.
func elemInt(v int64) []byte {
	var scratch [20]byte
	text := strconv.AppendInt(scratch[:0], v, 10)
	return appendElement(nil, TagInt, text)
}

// elemUint encodes an unsigned integer in display form.
func elemUint(v uint64) []byte {
	var scratch [20]byte
	text := strconv.AppendUint(scratch[:0], v, 10)
	return appendElement(nil, TagInt, text)
}

// elemFloat encodes a float using the shortest text that round-trips.
// Values with no fractional part collapse to the integer element unless
// keepFloat is set; the external format treats integral floats and
// integers identically.
func elemFloat(v float64, keepFloat bool) ([]byte, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("jsonb: cannot encode non-finite float %v", v)
	}
	if !keepFloat && v == math.Trunc(v) {
		if i := int64(v); float64(i) == v {
			return elemInt(i), nil
		}
	}
	text := strconv.AppendFloat(nil, v, 'g', -1, 64)
	return appendElement(nil, TagFloat, text), nil
}

// textTagFor picks the tag for verbatim string storage. Payloads are
// length-prefixed so nothing is ever escaped, but the format reserves
// TagText for strings a JSON renderer could emit untouched; anything
// containing a quote, backslash, or control character is TagTextRaw.
func textTagFor(v string) Tag {
	for i := 0; i < len(v); i++ {
		if c := v[i]; c == '"' || c == '\\' || c < 0x20 {
			return TagTextRaw
		}
	}
	return TagText
}

// elemString encodes text verbatim as UTF-8. No escaping is applied.
func elemString(v string) []byte {
	return appendElement(nil, textTagFor(v), []byte(v))
}

// elemBytes encodes a byte blob. Blobs have no wire tag of their own;
// they piggyback on text as standard base64.
func elemBytes(v []byte) []byte {
	payload := make([]byte, base64.StdEncoding.EncodedLen(len(v)))
	base64.StdEncoding.Encode(payload, v)
	return appendElement(nil, TagText, payload)
}

// elemTime encodes a timestamp as RFC 3339 text, keeping sub-second
// precision when present.
func elemTime(v time.Time) []byte {
	return appendElement(nil, TagText, v.AppendFormat(nil, time.RFC3339Nano))
}
