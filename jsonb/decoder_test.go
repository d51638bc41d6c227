package jsonb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// ============================================================
// Decode Adapter Tests
// ============================================================

func mustDecoder(t *testing.T, data []byte) *Decoder {
	t.Helper()
	root, err := newDecTree(data)
	require.NoError(t, err)
	return &Decoder{node: root}
}

func TestArrayDecoder_CursorNoAdvanceOnFailure(t *testing.T) {
	buf, err := Marshal([]any{"one", int64(2)})
	require.NoError(t, err)

	arr, err := mustDecoder(t, buf).Array()
	require.NoError(t, err)

	// element 0 is text; an int read fails and must not consume it
	_, err = arr.Int()
	var te *TypeError
	require.ErrorAs(t, err, &te)
	require.Equal(t, 0, arr.Index())

	// the same element then reads fine as a string
	s, err := arr.String()
	require.NoError(t, err)
	require.Equal(t, "one", s)
	require.Equal(t, 1, arr.Index())

	i, err := arr.Int()
	require.NoError(t, err)
	require.Equal(t, int64(2), i)
	require.False(t, arr.More())
}

func TestArrayDecoder_IsNullAdvancesConditionally(t *testing.T) {
	buf, err := Marshal([]any{nil, int64(1)})
	require.NoError(t, err)

	arr, err := mustDecoder(t, buf).Array()
	require.NoError(t, err)

	require.True(t, arr.IsNull(), "first element is null")
	require.Equal(t, 1, arr.Index(), "confirmed null is consumed")
	require.False(t, arr.IsNull(), "second element is not null")
	require.Equal(t, 1, arr.Index(), "non-null check must not consume")

	i, err := arr.Int()
	require.NoError(t, err)
	require.Equal(t, int64(1), i)
}

func TestArrayDecoder_PastEnd(t *testing.T) {
	buf, err := Marshal([]int{1})
	require.NoError(t, err)

	arr, err := mustDecoder(t, buf).Array()
	require.NoError(t, err)
	_, err = arr.Int()
	require.NoError(t, err)

	_, err = arr.Int()
	var me *MissingError
	require.ErrorAs(t, err, &me)
	require.Equal(t, "$[1]", me.Path.String())
	require.False(t, arr.IsNull(), "IsNull past the end is false, not a panic")
}

func TestObjectDecoder_MissingVersusNull(t *testing.T) {
	enc, root := newTestEncoder(DefaultEncodeOptions())
	obj, err := enc.Object()
	require.NoError(t, err)
	require.NoError(t, obj.PutNull("x"))
	buf := root.render(nil, &EncodeOptions{})

	od, err := mustDecoder(t, buf).Object()
	require.NoError(t, err)

	require.True(t, od.Has("x"), "a present null is present")
	require.True(t, od.Field("x").IsNull())

	require.False(t, od.Has("y"))
	require.Nil(t, od.Field("y"))
	_, err = od.Require("y")
	var me *MissingError
	require.ErrorAs(t, err, &me)
	require.Equal(t, "$.y", me.Path.String())
}

func TestObjectDecoder_OrderIndependence(t *testing.T) {
	// hand-build {b:true, a:false} with members in reverse declaration order
	var payload []byte
	payload = appendElement(payload, TagText, []byte("b"))
	payload = append(payload, elemBool(true)...)
	payload = appendElement(payload, TagText, []byte("a"))
	payload = append(payload, elemBool(false)...)
	buf := appendElement(nil, TagObject, payload)

	var v struct {
		A bool `jsonb:"a"`
		B bool `jsonb:"b"`
	}
	require.NoError(t, Unmarshal(buf, &v))
	require.False(t, v.A)
	require.True(t, v.B)
}

func TestDecoder_ContainerShapeIsFixed(t *testing.T) {
	buf, err := Marshal([]int{1, 2})
	require.NoError(t, err)
	d := mustDecoder(t, buf)

	_, err = d.Array()
	require.NoError(t, err)

	_, err = d.Object()
	var te *TypeError
	require.ErrorAs(t, err, &te)
	require.Equal(t, TagArray, te.Got)
}

func TestDecodeTree_ExpansionMemoized(t *testing.T) {
	buf, err := Marshal(map[string]int{"a": 1})
	require.NoError(t, err)
	d := mustDecoder(t, buf)

	o1, err := d.Object()
	require.NoError(t, err)
	o2, err := d.Object()
	require.NoError(t, err)
	require.Same(t, o1.Field("a").node, o2.Field("a").node,
		"re-expansion must return the cached members")
}

func TestDecode_DeepNestingPath(t *testing.T) {
	// object -> array -> object -> scalar, failure innermost
	type inner struct {
		N string `jsonb:"n"` // wire holds an int, not text
	}
	type outer struct {
		Rows []inner `jsonb:"rows"`
	}
	buf, err := Marshal(map[string]any{
		"rows": []any{map[string]any{"n": int64(7)}},
	})
	require.NoError(t, err)

	var v outer
	err = Unmarshal(buf, &v)
	var te *TypeError
	require.ErrorAs(t, err, &te)
	require.Equal(t, 3, te.Path.Depth())
	require.Equal(t, []string{"rows", "0", "n"}, te.Path.Segments())
	require.Equal(t, "$.rows[0].n", te.Path.String())
}

func TestUnmarshal_Corrupt(t *testing.T) {
	good, err := Marshal(map[string]int{"k": 1})
	require.NoError(t, err)

	var v map[string]int
	require.Error(t, Unmarshal(good[:len(good)-1], &v))

	var ce *CorruptError
	err = Unmarshal(append(good, 0x00), &v)
	require.ErrorAs(t, err, &ce, "trailing bytes are corruption")

	err = Unmarshal([]byte{0x0D}, &v)
	require.ErrorAs(t, err, &ce, "reserved tag is corruption")
}

func TestUnmarshal_CorruptInsideContainer(t *testing.T) {
	// array whose payload declares a child longer than the payload
	payload := []byte{byte(TagText) | 0xC0, 9, 'a'}
	buf := appendElement(nil, TagArray, payload)

	var v []string
	var ce *CorruptError
	err := Unmarshal(buf, &v)
	require.ErrorAs(t, err, &ce)
}

func TestUnmarshal_NotPointer(t *testing.T) {
	buf, err := Marshal(1)
	require.NoError(t, err)
	var n int
	require.Error(t, Unmarshal(buf, n))
	require.Error(t, Unmarshal(buf, nil))
}

func TestDecodeError_LeavesSiblingsUsable(t *testing.T) {
	buf, err := Marshal(map[string]any{"bad": "text", "good": int64(5)})
	require.NoError(t, err)

	od, err := mustDecoder(t, buf).Object()
	require.NoError(t, err)

	_, err = od.Int("bad")
	require.Error(t, err)

	// the failure above must not poison the rest of the object
	g, err := od.Int("good")
	require.NoError(t, err)
	require.Equal(t, int64(5), g)
}

func TestDecoder_TagAndErrors(t *testing.T) {
	buf, err := Marshal("hello")
	require.NoError(t, err)
	d := mustDecoder(t, buf)

	require.Equal(t, TagText, d.Tag())
	require.False(t, d.IsNull())

	_, err = d.Bool()
	var te *TypeError
	require.True(t, errors.As(err, &te))
	require.Equal(t, "$", te.Path.String())
}
