package jsonb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ============================================================
// Dynamic Value Tests
// ============================================================

func TestValue_RoundTrip(t *testing.T) {
	in := Obj(
		Field("id", Int(7)),
		Field("name", Str("vega")),
		Field("active", Bool(true)),
		Field("score", Float(9.25)),
		Field("misc", Null()),
		Field("tags", Arr(Str("a"), Str("b"))),
		Field("inner", Obj(Field("depth", Int(2)))),
	)

	buf, err := in.Encode()
	require.NoError(t, err)

	out, err := DecodeValue(buf)
	require.NoError(t, err)

	require.Equal(t, KindObj, out.Kind())
	require.Equal(t, 7, out.Len())

	id, err := out.Get("id").AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	name, err := out.Get("name").AsStr()
	require.NoError(t, err)
	assert.Equal(t, "vega", name)

	score, err := out.Get("score").AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 9.25, score)

	assert.True(t, out.Get("misc").IsNull())
	assert.Nil(t, out.Get("absent"))

	tags, err := out.Get("tags").AsArr()
	require.NoError(t, err)
	require.Len(t, tags, 2)

	depth, err := out.Get("inner").Get("depth").AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(2), depth)
}

func TestValue_BlobAndTimeDecodeAsStr(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	in := Obj(
		Field("raw", Blob([]byte{1, 2, 3})),
		Field("at", Timestamp(ts)),
	)
	buf, err := in.Encode()
	require.NoError(t, err)

	out, err := DecodeValue(buf)
	require.NoError(t, err)

	// the wire has no blob or time tag; both come back as text
	require.Equal(t, KindStr, out.Get("raw").Kind())
	require.Equal(t, KindStr, out.Get("at").Kind())

	at, err := out.Get("at").AsStr()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T03:04:05Z", at)
}

func TestValue_Mutators(t *testing.T) {
	v := Obj()
	v.Set("a", Int(1))
	v.Set("b", Int(2))
	v.Set("a", Int(3)) // replace keeps position

	members, err := v.AsObj()
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "a", members[0].Key)

	a, err := v.Get("a").AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(3), a)

	arr := Arr()
	arr.Append(Int(1))
	arr.Append(Str("x"))
	assert.Equal(t, 2, arr.Len())

	elem, err := arr.Index(1)
	require.NoError(t, err)
	s, err := elem.AsStr()
	require.NoError(t, err)
	assert.Equal(t, "x", s)

	_, err = arr.Index(5)
	assert.Error(t, err)
}

func TestValue_KindMismatch(t *testing.T) {
	v := Int(1)
	_, err := v.AsStr()
	assert.EqualError(t, err, "jsonb: expected str, got int")
	_, err = v.AsBool()
	assert.Error(t, err)
	_, err = v.AsArr()
	assert.Error(t, err)

	f, ok := v.Number()
	require.True(t, ok)
	assert.Equal(t, 1.0, f)
}

// TestValue_DeterministicFixtureOrder drives encoding from an ordered
// fixture map so the expected buffer key sequence is explicit.
func TestValue_DeterministicFixtureOrder(t *testing.T) {
	fixture := orderedmap.New[string, *Value]()
	fixture.Set("gamma", Int(3))
	fixture.Set("alpha", Int(1))
	fixture.Set("beta", Int(2))

	v := Obj()
	for pair := fixture.Oldest(); pair != nil; pair = pair.Next() {
		v.Set(pair.Key, pair.Value)
	}

	buf, err := v.Encode()
	require.NoError(t, err)

	out, err := DecodeValue(buf)
	require.NoError(t, err)
	members, err := out.AsObj()
	require.NoError(t, err)

	var keys []string
	for _, m := range members {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, keys,
		"insertion order must survive the wire")

	sortedBuf, err := MarshalWithOptions(v, EncodeOptions{SortKeys: true})
	require.NoError(t, err)
	sorted, err := DecodeValue(sortedBuf)
	require.NoError(t, err)
	sortedMembers, err := sorted.AsObj()
	require.NoError(t, err)
	assert.Equal(t, "alpha", sortedMembers[0].Key)
}

func TestValue_NilReceivers(t *testing.T) {
	var v *Value
	assert.True(t, v.IsNull())
	assert.Equal(t, KindNull, v.Kind())
	assert.Equal(t, 0, v.Len())
	assert.Nil(t, v.Get("k"))
}
