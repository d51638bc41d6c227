package jsonb

import "strconv"

// Tag identifies the on-disk type of a JSONB element.
//
// The numeric values are fixed by the SQLite JSONB format and must never
// be renumbered. Values 13-15 are reserved by the format; encountering
// one on decode is a corruption error.
type Tag uint8

const (
	TagNull    Tag = 0  // JSON null
	TagTrue    Tag = 1  // JSON true
	TagFalse   Tag = 2  // JSON false
	TagInt     Tag = 3  // integer, canonical decimal text payload
	TagInt5    Tag = 4  // integer, JSON5 lexical form (hex, leading +)
	TagFloat   Tag = 5  // float, canonical decimal text payload
	TagFloat5  Tag = 6  // float, JSON5 lexical form (Infinity, bare dot)
	TagText    Tag = 7  // text, no escapes needed
	TagTextJ   Tag = 8  // text with JSON escapes
	TagText5   Tag = 9  // text with JSON5 escapes
	TagTextRaw Tag = 10 // text stored verbatim, escapes not meaningful
	TagArray   Tag = 11 // array, payload is a sequence of elements
	TagObject  Tag = 12 // object, payload is a sequence of key/value elements

	tagMax = TagObject
)

// String returns the tag name.
func (t Tag) String() string {
	switch t {
	case TagNull:
		return "null"
	case TagTrue:
		return "true"
	case TagFalse:
		return "false"
	case TagInt:
		return "int"
	case TagInt5:
		return "int5"
	case TagFloat:
		return "float"
	case TagFloat5:
		return "float5"
	case TagText:
		return "text"
	case TagTextJ:
		return "textj"
	case TagText5:
		return "text5"
	case TagTextRaw:
		return "textraw"
	case TagArray:
		return "array"
	case TagObject:
		return "object"
	default:
		return "reserved"
	}
}

// valid reports whether the tag is one the format defines.
func (t Tag) valid() bool {
	return t <= tagMax
}

// IsText reports whether the tag is one of the four text lexical forms.
func (t Tag) IsText() bool {
	return t >= TagText && t <= TagTextRaw
}

// IsInt reports whether the tag is an integer form.
func (t Tag) IsInt() bool {
	return t == TagInt || t == TagInt5
}

// IsNumeric reports whether the tag is an integer or float form.
func (t Tag) IsNumeric() bool {
	return t >= TagInt && t <= TagFloat5
}

// IsBool reports whether the tag is true or false.
func (t Tag) IsBool() bool {
	return t == TagTrue || t == TagFalse
}

// IsContainer reports whether the tag is array or object.
func (t Tag) IsContainer() bool {
	return t == TagArray || t == TagObject
}

// zeroPayload reports whether the tag legitimately carries an empty
// payload. Text tags qualify because an empty payload is the empty
// string; numeric tags never do.
func (t Tag) zeroPayload() bool {
	switch t {
	case TagNull, TagTrue, TagFalse, TagArray, TagObject:
		return true
	}
	return t.IsText()
}

// PeekTag returns the type tag of the top-level element in data without
// decoding it.
func PeekTag(data []byte) (Tag, error) {
	if len(data) == 0 {
		return 0, &CorruptError{Offset: 0, Reason: "empty buffer"}
	}
	t := Tag(data[0] & 0x0F)
	if !t.valid() {
		return 0, &CorruptError{Offset: 0, Reason: "reserved type tag " + strconv.Itoa(int(t))}
	}
	return t, nil
}
