package jsonb

import (
	"errors"
	"math"
	"testing"
)

// ============================================================
// Scalar Payload Decoding Tests
// ============================================================

func TestDecodeInt_LexicalForms(t *testing.T) {
	tests := []struct {
		tag  Tag
		text string
		want int64
	}{
		{TagInt, "1", 1},
		{TagInt, "-42", -42},
		{TagInt, "9223372036854775807", math.MaxInt64},
		{TagInt5, "+7", 7},
		{TagInt5, "0x1A", 26},
		{TagInt5, "0XFF", 255},
		{TagInt5, "-0x10", -16},
	}

	for _, tt := range tests {
		got, err := decodeInt(tt.tag, []byte(tt.text), nil)
		if err != nil {
			t.Errorf("decodeInt(%s, %q) failed: %v", tt.tag, tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("decodeInt(%s, %q) = %d, want %d", tt.tag, tt.text, got, tt.want)
		}
	}
}

func TestDecodeInt_Errors(t *testing.T) {
	if _, err := decodeInt(TagText, []byte("1"), nil); err != nil {
		var te *TypeError
		if !errors.As(err, &te) {
			t.Errorf("text tag: error type %T, want *TypeError", err)
		}
	} else {
		t.Error("text tag should not decode as int")
	}

	if _, err := decodeInt(TagInt, []byte(""), nil); err == nil {
		t.Error("empty int payload should fail")
	}
	var ve *ValueError
	if _, err := decodeInt(TagInt, []byte("12.5"), nil); !errors.As(err, &ve) {
		t.Error("fractional text under the int tag should be a *ValueError")
	}
}

func TestDecodeFloat_LexicalForms(t *testing.T) {
	tests := []struct {
		tag  Tag
		text string
		want float64
	}{
		{TagFloat, "4.5", 4.5},
		{TagFloat, "1e3", 1000},
		{TagInt, "4", 4}, // float targets accept integer elements
		{TagFloat5, ".5", 0.5},
		{TagFloat5, "-.25", -0.25},
		{TagFloat5, "5.", 5},
		{TagFloat5, "+1.5", 1.5},
		{TagFloat5, "Infinity", math.Inf(1)},
		{TagFloat5, "-Infinity", math.Inf(-1)},
		{TagFloat5, "9e999", math.Inf(1)},
	}

	for _, tt := range tests {
		got, err := decodeFloat(tt.tag, []byte(tt.text), nil)
		if err != nil {
			t.Errorf("decodeFloat(%s, %q) failed: %v", tt.tag, tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("decodeFloat(%s, %q) = %v, want %v", tt.tag, tt.text, got, tt.want)
		}
	}
}

func TestDecodeString_Unescaping(t *testing.T) {
	tests := []struct {
		tag  Tag
		text string
		want string
	}{
		{TagText, "plain", "plain"},
		{TagTextRaw, `with "quotes"`, `with "quotes"`},
		{TagTextJ, `a\nb`, "a\nb"},
		{TagTextJ, `tab\there`, "tab\there"},
		{TagTextJ, `é`, "é"},
		{TagTextJ, `é`, "é"},
		{TagTextJ, `😀`, "😀"}, // surrogate pair
		{TagText5, `it\'s`, "it's"},
		{TagText5, `\x41B`, "AB"},
		{TagText5, "a\\\nb", "ab"}, // line continuation
	}

	for _, tt := range tests {
		got, err := decodeString(tt.tag, []byte(tt.text), nil)
		if err != nil {
			t.Errorf("decodeString(%s, %q) failed: %v", tt.tag, tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("decodeString(%s, %q) = %q, want %q", tt.tag, tt.text, got, tt.want)
		}
	}
}

func TestDecodeString_Errors(t *testing.T) {
	var ve *ValueError
	if _, err := decodeString(TagText, []byte{0xFF, 0xFE}, nil); !errors.As(err, &ve) {
		t.Error("invalid UTF-8 should be a *ValueError")
	}
	if _, err := decodeString(TagTextJ, []byte(`bad\q`), nil); !errors.As(err, &ve) {
		t.Error("unknown escape should be a *ValueError")
	}
	if _, err := decodeString(TagTextJ, []byte(`it\'s`), nil); !errors.As(err, &ve) {
		t.Error("JSON5 escape under the JSON tag should be a *ValueError")
	}
	var te *TypeError
	if _, err := decodeString(TagInt, []byte("1"), nil); !errors.As(err, &te) {
		t.Error("int tag should not decode as string")
	}
}

func TestDecodeString_EmptyIsEmptyString(t *testing.T) {
	for _, tag := range []Tag{TagText, TagTextJ, TagText5, TagTextRaw} {
		got, err := decodeString(tag, nil, nil)
		if err != nil {
			t.Errorf("%s: empty payload failed: %v", tag, err)
		}
		if got != "" {
			t.Errorf("%s: got %q", tag, got)
		}
	}
}

func TestDecodeBool(t *testing.T) {
	if v, err := decodeBool(TagTrue, nil); err != nil || !v {
		t.Errorf("true element: %v, %v", v, err)
	}
	if v, err := decodeBool(TagFalse, nil); err != nil || v {
		t.Errorf("false element: %v, %v", v, err)
	}
	if _, err := decodeBool(TagInt, nil); err == nil {
		t.Error("int tag should not decode as bool")
	}
}
