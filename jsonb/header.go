package jsonb

import (
	"encoding/binary"
	"strconv"
)

// ============================================================
// Element Header Codec
// ============================================================
//
// Every JSONB element begins with a header byte whose low nibble is the
// type tag and whose high nibble encodes the payload size:
//
//   0x0-0xB  payload size inline (0-11 bytes)
//   0xC      1 big-endian size byte follows
//   0xD      2 big-endian size bytes follow
//   0xE      4 big-endian size bytes follow
//   0xF      8 big-endian size bytes follow
//
// The thresholds and byte order are fixed by the SQLite JSONB format.

const (
	sizeClass1 = 0xC0
	sizeClass2 = 0xD0
	sizeClass4 = 0xE0
	sizeClass8 = 0xF0

	maxInlineSize = 11
)

// headerSize returns the encoded header length for a payload of n bytes.
func headerSize(n int) int {
	switch {
	case n <= maxInlineSize:
		return 1
	case n <= 0xFF:
		return 2
	case n <= 0xFFFF:
		return 3
	case n <= 0xFFFFFFFF:
		return 5
	default:
		return 9
	}
}

// appendHeader appends the header for a payload of n bytes to dst.
func appendHeader(dst []byte, tag Tag, n int) []byte {
	switch {
	case n <= maxInlineSize:
		return append(dst, byte(tag)|byte(n)<<4)
	case n <= 0xFF:
		return append(dst, byte(tag)|sizeClass1, byte(n))
	case n <= 0xFFFF:
		return append(dst, byte(tag)|sizeClass2, byte(n>>8), byte(n))
	case n <= 0xFFFFFFFF:
		dst = append(dst, byte(tag)|sizeClass4)
		return binary.BigEndian.AppendUint32(dst, uint32(n))
	default:
		dst = append(dst, byte(tag)|sizeClass8)
		return binary.BigEndian.AppendUint64(dst, uint64(n))
	}
}

// appendElement appends a complete header-wrapped element to dst.
func appendElement(dst []byte, tag Tag, payload []byte) []byte {
	dst = appendHeader(dst, tag, len(payload))
	return append(dst, payload...)
}

// decodeHeader parses the element header at data[off:]. It returns the
// tag, the payload slice (borrowing from data), and the offset of the
// first byte past the element. The buffer is never copied.
func decodeHeader(data []byte, off int) (tag Tag, payload []byte, next int, err error) {
	if off >= len(data) {
		return 0, nil, 0, &CorruptError{Offset: off, Reason: "truncated element header"}
	}
	b := data[off]
	tag = Tag(b & 0x0F)
	if !tag.valid() {
		return 0, nil, 0, &CorruptError{Offset: off, Reason: "reserved type tag " + strconv.Itoa(int(tag))}
	}

	var n uint64
	hdr := 1
	switch hi := b >> 4; hi {
	case 0xC:
		hdr = 2
	case 0xD:
		hdr = 3
	case 0xE:
		hdr = 5
	case 0xF:
		hdr = 9
	default:
		n = uint64(hi)
	}
	if off+hdr > len(data) {
		return 0, nil, 0, &CorruptError{Offset: off, Reason: "truncated size field"}
	}
	switch hdr {
	case 2:
		n = uint64(data[off+1])
	case 3:
		n = uint64(binary.BigEndian.Uint16(data[off+1 : off+3]))
	case 5:
		n = uint64(binary.BigEndian.Uint32(data[off+1 : off+5]))
	case 9:
		n = binary.BigEndian.Uint64(data[off+1 : off+9])
	}

	start := off + hdr
	if n > uint64(len(data)-start) {
		return 0, nil, 0, &CorruptError{Offset: off, Reason: "payload length exceeds buffer"}
	}
	next = start + int(n)
	return tag, data[start:next], next, nil
}
