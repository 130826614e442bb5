package variant

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/bsatn"
)

type point struct {
	X int32 `bsatn:"x"`
	Y int32 `bsatn:"y"`
}

func TestCodec_RoundTrip(t *testing.T) {
	tbl := newTable(t, Alt[int32]("int"), Alt[string]("string"), Alt[point]("point"), Alt[Monostate]("none"))

	tests := []struct {
		name string
		v    *Variant
	}{
		{name: "int", v: mustAt(t, tbl, 0, int32(-4))},
		{name: "string", v: mustAt(t, tbl, 1, "hello")},
		{name: "struct", v: mustAt(t, tbl, 2, point{X: 1, Y: 2})},
		{name: "monostate", v: mustAt(t, tbl, 3, Monostate{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := MarshalBSATN(tt.v)
			require.NoError(t, err)
			assert.Equal(t, bsatn.TagEnum, buf[0])

			got, err := UnmarshalBSATN(tbl, buf)
			require.NoError(t, err)
			assert.True(t, Equal(tt.v, got), "got %v, want %v", got, tt.v)
		})
	}
}

func TestCodec_Layout(t *testing.T) {
	tbl := newTable(t, Alt[int32]("int"), Alt[uint8]("byte"))
	buf, err := MarshalBSATN(mustAt(t, tbl, 1, uint8(9)))
	require.NoError(t, err)
	assert.Equal(t, []byte{bsatn.TagEnum, 1, 0, 0, 0, bsatn.TagU8, 9}, buf)
}

func TestCodec_Errors(t *testing.T) {
	tbl := newTable(t, Alt[int]("int"), Alt[string]("string"))

	t.Run("valueless", func(t *testing.T) {
		_, err := MarshalBSATN(valueless(t, tbl))
		assert.ErrorIs(t, err, ErrValueless)
	})

	t.Run("index out of range", func(t *testing.T) {
		v, err := UnmarshalBSATN(tbl, []byte{bsatn.TagEnum, 5, 0, 0, 0})
		assert.ErrorIs(t, err, bsatn.ErrInvalidTag)
		assert.True(t, v.Valueless())
	})

	t.Run("payload mismatch", func(t *testing.T) {
		buf, err := MarshalBSATN(mustAt(t, tbl, 1, "s"))
		require.NoError(t, err)
		buf[1] = 0
		_, err = UnmarshalBSATN(tbl, buf)
		assert.ErrorIs(t, err, bsatn.ErrInvalidTag)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		buf, err := MarshalBSATN(mustAt(t, tbl, 0, 1))
		require.NoError(t, err)
		_, err = UnmarshalBSATN(tbl, append(buf, 0))
		assert.Error(t, err)
	})

	t.Run("decode keeps value on error", func(t *testing.T) {
		v := mustAt(t, tbl, 1, "keep")
		r := bsatn.NewReader(bytes.NewReader([]byte{bsatn.TagEnum, 0, 0, 0, 0}))
		assert.ErrorIs(t, v.ReadBSATN(r), bsatn.ErrBufferTooSmall)
		assert.Equal(t, "keep", v.Value())
	})
}

func TestCodec_NestedVariant(t *testing.T) {
	inner := newTable(t, Alt[int32]("int"), Alt[string]("string"))
	outer := newTable(t, Alt[Monostate]("none"), Alt[Variant]("inner"))

	iv := mustAt(t, inner, 1, "deep")
	ov, err := InPlaceIndexFunc(outer, 1, func(p *Variant) error { return p.CopyFrom(iv) })
	require.NoError(t, err)

	buf, err := MarshalBSATN(ov)
	require.NoError(t, err)

	want, err := MarshalBSATN(iv)
	require.NoError(t, err)
	assert.Equal(t, append([]byte{bsatn.TagEnum, 1, 0, 0, 0}, want...), buf)
}
