// Package jsonb implements a bidirectional codec between Go values and
// SQLite's JSONB binary representation: a self-describing, recursively
// nested encoding of JSON values behind a compact type+length header.
//
// The codec is a pure byte-buffer transform. It neither talks to
// SQLite nor materializes textual JSON; it produces and consumes the
// exact bytes SQLite stores for a JSONB column value.
//
// # Wire Format
//
// Every element is a header followed by a payload. The header's first
// byte holds the type tag in its low nibble and the payload size in its
// high nibble: sizes 0-11 inline, larger sizes in 1, 2, 4, or 8
// big-endian bytes that follow. Numbers are stored in display form
// (the integer 1 is the ASCII byte '1'), arrays are concatenated
// elements, objects are concatenated key/value element pairs with text
// keys.
//
// # Encoding and Decoding
//
//	type Score struct {
//	    Player string  `jsonb:"player"`
//	    Points int     `jsonb:"points"`
//	    Bonus  *int    `jsonb:"bonus,omitempty"`
//	}
//
//	buf, err := jsonb.Marshal(Score{Player: "ada", Points: 42})
//	var s Score
//	err = jsonb.Unmarshal(buf, &s)
//
// Encoding builds a mutable node tree while traversing the source value
// and renders it bottom-up into one buffer. Decoding is lazy: container
// payloads are parsed one level at a time, on demand, so reading a
// single member of a deep structure never parses its siblings' guts.
//
// # Custom Codecs
//
// Types implement Marshaler and Unmarshaler to control their own
// layout, using the keyed (ObjectEncoder/ObjectDecoder), unkeyed
// (ArrayEncoder/ArrayDecoder) or single-value (Encoder/Decoder)
// container views. Array decoding is cursor-driven: a failed read does
// not consume the element, so it can be retried as a different type.
//
// Scalar-like nominal types that implement encoding.TextMarshaler and
// encoding.TextUnmarshaler ride on the text tag without further work.
//
// # Dynamic Values
//
// Value is a dynamically-typed tree for working with buffers whose
// shape is not known at compile time:
//
//	v := jsonb.Obj(
//	    jsonb.Field("id", jsonb.Int(7)),
//	    jsonb.Field("tags", jsonb.Arr(jsonb.Str("a"), jsonb.Str("b"))),
//	)
//	buf, err := v.Encode()
//
// # Errors
//
// Decode failures carry the Path of the offending element, and split
// into CorruptError (the buffer violates the format), TypeError (tag
// not accepted by the target), MissingError (absent member or past-end
// read) and ValueError (payload text fails the target's parse rule).
// Encode-side container misuse fails with ShapeError.
package jsonb
