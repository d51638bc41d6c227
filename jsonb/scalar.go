package jsonb

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
	"unicode/utf8"
)

// ============================================================
// Scalar Payload Decoding
// ============================================================
//
// Each target scalar type accepts a fixed set of tags. Decoding
// validates the tag, checks the payload is non-empty where the format
// requires it, and parses the payload text into the target type. All
// failures carry the Path of the element.

func payloadCheck(tag Tag, payload []byte, path *Path) error {
	if len(payload) == 0 && !tag.zeroPayload() {
		return &ValueError{Path: path, Tag: tag, Text: "", Reason: "empty payload"}
	}
	return nil
}

// decodeBool parses a boolean element.
func decodeBool(tag Tag, path *Path) (bool, error) {
	switch tag {
	case TagTrue:
		return true, nil
	case TagFalse:
		return false, nil
	}
	return false, &TypeError{Path: path, Got: tag, Want: "bool"}
}

// decodeInt parses an integer element. TagInt payloads are canonical
// decimal; TagInt5 additionally admits JSON5 hex and a leading +.
func decodeInt(tag Tag, payload []byte, path *Path) (int64, error) {
	if !tag.IsInt() {
		return 0, &TypeError{Path: path, Got: tag, Want: "int"}
	}
	if err := payloadCheck(tag, payload, path); err != nil {
		return 0, err
	}
	text := string(payload)
	v, err := parseIntText(tag, text)
	if err != nil {
		return 0, &ValueError{Path: path, Tag: tag, Text: text, Reason: "bad integer"}
	}
	return v, nil
}

// decodeUint parses an integer element into an unsigned target.
func decodeUint(tag Tag, payload []byte, path *Path) (uint64, error) {
	if !tag.IsInt() {
		return 0, &TypeError{Path: path, Got: tag, Want: "uint"}
	}
	if err := payloadCheck(tag, payload, path); err != nil {
		return 0, err
	}
	text := string(payload)
	v, err := parseUintText(tag, text)
	if err != nil {
		return 0, &ValueError{Path: path, Tag: tag, Text: text, Reason: "bad unsigned integer"}
	}
	return v, nil
}

// decodeFloat parses a numeric element. Floating-point targets accept
// the integer tags as well.
func decodeFloat(tag Tag, payload []byte, path *Path) (float64, error) {
	if !tag.IsNumeric() {
		return 0, &TypeError{Path: path, Got: tag, Want: "float"}
	}
	if err := payloadCheck(tag, payload, path); err != nil {
		return 0, err
	}
	text := string(payload)
	if tag.IsInt() {
		if i, err := parseIntText(tag, text); err == nil {
			return float64(i), nil
		}
		// fall through: huge integers still parse as floats
	}
	v, err := parseFloatText(tag, text)
	if err != nil {
		return 0, &ValueError{Path: path, Tag: tag, Text: text, Reason: "bad float"}
	}
	return v, nil
}

// decodeString parses a text element. The JSON and JSON5 lexical forms
// are unescaped; TagText and TagTextRaw payloads are taken verbatim.
func decodeString(tag Tag, payload []byte, path *Path) (string, error) {
	if !tag.IsText() {
		return "", &TypeError{Path: path, Got: tag, Want: "string"}
	}
	if !utf8.Valid(payload) {
		return "", &ValueError{Path: path, Tag: tag, Text: string(payload), Reason: "invalid UTF-8"}
	}
	text := string(payload)
	switch tag {
	case TagText, TagTextRaw:
		return text, nil
	}
	out, ok := unescapeText(text, tag == TagText5)
	if !ok {
		return "", &ValueError{Path: path, Tag: tag, Text: text, Reason: "bad escape sequence"}
	}
	return out, nil
}

// decodeBytes parses a blob element: text holding standard base64.
func decodeBytes(tag Tag, payload []byte, path *Path) ([]byte, error) {
	text, err := decodeString(tag, payload, path)
	if err != nil {
		return nil, err
	}
	raw, derr := base64.StdEncoding.DecodeString(text)
	if derr != nil {
		return nil, &ValueError{Path: path, Tag: tag, Text: text, Reason: "bad base64"}
	}
	return raw, nil
}

// decodeTime parses a timestamp element: text holding RFC 3339.
func decodeTime(tag Tag, payload []byte, path *Path) (time.Time, error) {
	text, err := decodeString(tag, payload, path)
	if err != nil {
		return time.Time{}, err
	}
	t, perr := time.Parse(time.RFC3339Nano, text)
	if perr != nil {
		return time.Time{}, &ValueError{Path: path, Tag: tag, Text: text, Reason: "bad timestamp"}
	}
	return t, nil
}

// ============================================================
// Lexical forms
// ============================================================

func parseIntText(tag Tag, text string) (int64, error) {
	if tag == TagInt5 {
		text = normalizeInt5(text)
		if rest, ok := strings.CutPrefix(text, "0x"); ok {
			return strconv.ParseInt(rest, 16, 64)
		}
		if rest, ok := strings.CutPrefix(text, "-0x"); ok {
			v, err := strconv.ParseInt(rest, 16, 64)
			return -v, err
		}
	}
	return strconv.ParseInt(text, 10, 64)
}

func parseUintText(tag Tag, text string) (uint64, error) {
	if tag == TagInt5 {
		text = normalizeInt5(text)
		if rest, ok := strings.CutPrefix(text, "0x"); ok {
			return strconv.ParseUint(rest, 16, 64)
		}
	}
	return strconv.ParseUint(text, 10, 64)
}

// normalizeInt5 strips the leading + JSON5 permits and lowercases the
// hex marker.
func normalizeInt5(text string) string {
	text = strings.TrimPrefix(text, "+")
	if strings.HasPrefix(text, "0X") {
		text = "0x" + text[2:]
	} else if strings.HasPrefix(text, "-0X") {
		text = "-0x" + text[3:]
	}
	return text
}

func parseFloatText(tag Tag, text string) (float64, error) {
	if tag == TagFloat5 || tag == TagInt5 {
		text = strings.TrimPrefix(text, "+")
		// JSON5 admits bare leading/trailing dots and named infinities;
		// strconv accepts Inf/NaN spellings directly.
		switch {
		case strings.HasPrefix(text, "."):
			text = "0" + text
		case strings.HasPrefix(text, "-."):
			text = "-0" + text[1:]
		}
		if strings.HasSuffix(text, ".") {
			text += "0"
		}
		switch text {
		case "Infinity", "9e999":
			return strconv.ParseFloat("Inf", 64)
		case "-Infinity", "-9e999":
			return strconv.ParseFloat("-Inf", 64)
		}
	}
	return strconv.ParseFloat(text, 64)
}

// unescapeText resolves JSON escape sequences, plus the JSON5 additions
// when json5 is set. Returns false on any malformed sequence.
func unescapeText(text string, json5 bool) (string, bool) {
	if !strings.ContainsRune(text, '\\') {
		return text, true
	}
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); {
		c := text[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(text) {
			return "", false
		}
		e := text[i+1]
		i += 2
		switch e {
		case '"', '\\', '/':
			sb.WriteByte(e)
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			r, n, ok := unescapeUnicode(text[i:])
			if !ok {
				return "", false
			}
			sb.WriteRune(r)
			i += n
		default:
			if !json5 {
				return "", false
			}
			switch e {
			case '\'':
				sb.WriteByte('\'')
			case 'v':
				sb.WriteByte('\v')
			case '0':
				sb.WriteByte(0)
			case 'x':
				if i+2 > len(text) {
					return "", false
				}
				v, err := strconv.ParseUint(text[i:i+2], 16, 8)
				if err != nil {
					return "", false
				}
				sb.WriteByte(byte(v))
				i += 2
			case '\n':
				// escaped line continuation: swallow
			case '\r':
				if i < len(text) && text[i] == '\n' {
					i++
				}
			default:
				return "", false
			}
		}
	}
	return sb.String(), true
}

// unescapeUnicode parses the 4 hex digits after \u, combining surrogate
// pairs. Returns the rune and the number of input bytes consumed.
func unescapeUnicode(text string) (rune, int, bool) {
	if len(text) < 4 {
		return 0, 0, false
	}
	hi, err := strconv.ParseUint(text[:4], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	r := rune(hi)
	if !utf16.IsSurrogate(r) {
		return r, 4, true
	}
	if len(text) >= 10 && text[4] == '\\' && text[5] == 'u' {
		lo, err := strconv.ParseUint(text[6:10], 16, 32)
		if err == nil {
			if dec := utf16.DecodeRune(r, rune(lo)); dec != utf8.RuneError {
				return dec, 10, true
			}
		}
	}
	// lone surrogate: keep the replacement character, as SQLite does
	return utf8.RuneError, 4, true
}
